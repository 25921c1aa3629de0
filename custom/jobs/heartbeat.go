package jobs

import (
	"fmt"
	"time"

	"github.com/romana/rlog"
)

// Heartbeat Appends a liveness line on every run and probes the GraphQL
// boundary with a trivial query. An unreachable boundary only degrades the
// logged status, it never fails the job.
type Heartbeat struct {
	client *GraphqlClient
	sink   *LogSink
}

func NewHeartbeat(client *GraphqlClient, sink *LogSink) *Heartbeat {
	return &Heartbeat{client: client, sink: sink}
}

func (h *Heartbeat) Run() {
	status := "OK"
	result := struct {
		Hello string `json:"hello"`
	}{}
	if err := h.client.Execute("query { hello }", nil, &result); err != nil || result.Hello == "" {
		status = "Failed"
	}

	line := fmt.Sprintf("%s CRM is alive - GraphQL status: %s", Timestamp(time.Now()), status)
	if err := h.sink.Append(line); err != nil {
		rlog.Error("Write heartbeat log fail:", err.Error())
	}
}
