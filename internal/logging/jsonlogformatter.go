package logging

import (
	"fmt"
	"github.com/go-chi/chi/middleware"
	"github.com/sirupsen/logrus"
	"net/http"
	"time"
)

// JSONLogFormatter formats the access log of the HTTP service as structured logrus entries
type JSONLogFormatter struct {
	App string
}

// JSONLogEntry prepares the Logrus context
type JSONLogEntry struct {
	request *http.Request
	app     string
}

// NewLogEntry creates a new entry for the Logrus log
func (j *JSONLogFormatter) NewLogEntry(r *http.Request) middleware.LogEntry {
	return &JSONLogEntry{
		request: r,
		app:     j.App,
	}
}

func (j *JSONLogEntry) fields() logrus.Fields {
	r := j.request
	return logrus.Fields{
		"hostname":        r.Host,
		"remote_addr":     r.RemoteAddr,
		"request":         fmt.Sprintf("%s %s %s", r.Method, r.RequestURI, r.Proto),
		"request_id":      middleware.GetReqID(r.Context()),
		"request_method":  r.Method,
		"request_uri":     r.RequestURI,
		"request_length":  r.ContentLength,
		"server_protocol": r.Proto,
		"user_agent":      r.UserAgent(),
		"protocol":        "HTTP",
		"app":             j.app,
		"type":            "access",
	}
}

// Write outputs the log entry into the log. Request bodies carry the values being encoded,
// so they are never logged.
func (j *JSONLogEntry) Write(status, bytes int, header http.Header, elapsed time.Duration, extra interface{}) {
	fields := j.fields()
	fields["status"] = status
	fields["sent_bytes"] = bytes
	fields["sent_content_type"] = header.Get("Content-Type")
	fields["request_time"] = elapsed.Seconds()

	logrus.WithFields(fields).Info()
}

// Panic outputs the log entry into the log
func (j *JSONLogEntry) Panic(v interface{}, stack []byte) {
	fields := j.fields()
	fields["error"] = v
	fields["stack"] = string(stack)

	logrus.WithFields(fields).Errorf("%+v", v)
}
