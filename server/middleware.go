package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const requestIDHeader = "X-Request-ID"

type ctxKey int

const loggerKey ctxKey = iota

// requestID tags each request with a UUID, exposes it in the response headers
// and logs the request once it completes.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set(requestIDHeader, id)

		entry := log.WithFields(log.Fields{
			"request_id": id,
			"method":     r.Method,
			"path":       r.URL.Path,
		})
		ctx := context.WithValue(r.Context(), loggerKey, entry)

		startTime := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r.WithContext(ctx))

		entry.WithFields(log.Fields{
			"status": ww.Status(),
			"bytes":  ww.BytesWritten(),
			"time":   time.Since(startTime),
		}).Info("Request handled")
	})
}

// logger returns the request-scoped entry, or the standard logger outside a
// request.
func logger(ctx context.Context) *log.Entry {
	if e, ok := ctx.Value(loggerKey).(*log.Entry); ok {
		return e
	}
	return log.NewEntry(log.StandardLogger())
}
