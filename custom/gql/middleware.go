package gql

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/romana/rlog"
)

// RequestID Tag every request with a generated id for log correlation.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestId := uuid.NewString()
		w.Header().Set("X-Request-Id", requestId)
		rlog.Infof("Request %s: %s %s", requestId, r.Method, r.URL.Path)
		next.ServeHTTP(w, r)
	})
}
