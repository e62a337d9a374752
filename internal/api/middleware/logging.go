package middleware

import (
	"bytes"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const maxLoggedBody = 80

type statusRecorder struct {
	http.ResponseWriter
	status int
	body   bytes.Buffer
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.body.Len() < maxLoggedBody {
		r.body.Write(b)
	}
	return r.ResponseWriter.Write(b)
}

// WithLogging logs one line per API request: method, path, status, duration
// and a truncated copy of the JSON response.
func WithLogging(next http.Handler) http.Handler {
	log := logrus.WithField("component", "api")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/api") {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		body := strings.TrimSpace(rec.body.String())
		if len(body) > maxLoggedBody {
			body = body[:maxLoggedBody-1] + "…"
		}

		log.WithFields(logrus.Fields{
			"status":   rec.status,
			"duration": time.Since(start).Round(time.Millisecond).String(),
			"response": body,
		}).Infof("%s %s", r.Method, r.URL.Path)
	})
}
