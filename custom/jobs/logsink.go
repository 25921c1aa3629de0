package jobs

import (
	"fmt"
	"os"
	"sync"
	"time"
)

// LogSink Append-only text log shared by a job's invocations. Lines for
// one invocation are buffered by the caller and written in a single call
// so a failed run leaves no partial output.
type LogSink struct {
	path string
	mu   sync.Mutex
}

func NewLogSink(path string) *LogSink {
	return &LogSink{path: path}
}

func (s *LogSink) Append(lines ...string) error {
	if len(lines) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(f, line); err != nil {
			f.Close()
			return err
		}
	}
	return f.Close()
}

// Timestamp One timestamp format shared by every job log.
func Timestamp(t time.Time) string {
	return t.Format("2006-01-02 15:04:05")
}
