package httphandler

import (
	"log/slog"
	"net/http"
	"time"
)

// recorder remembers what a handler wrote so the access log can report it.
type recorder struct {
	http.ResponseWriter
	status      int
	bytes       int
	wroteHeader bool
}

func (rec *recorder) WriteHeader(status int) {
	if rec.wroteHeader {
		return
	}
	rec.status = status
	rec.wroteHeader = true
	rec.ResponseWriter.WriteHeader(status)
}

func (rec *recorder) Write(p []byte) (int, error) {
	if !rec.wroteHeader {
		rec.WriteHeader(http.StatusOK)
	}
	n, err := rec.ResponseWriter.Write(p)
	rec.bytes += n
	return n, err
}

// accessLevel picks the log level for a finished request. Ledger reads that
// fail server-side are the only ones worth surfacing above info.
func accessLevel(status int) slog.Level {
	if status >= http.StatusInternalServerError {
		return slog.LevelWarn
	}
	return slog.LevelInfo
}

func loggingMiddleware(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		began := time.Now()
		rec := &recorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		logger.Log(r.Context(), accessLevel(rec.status), "http request",
			"method", r.Method,
			"route", r.Pattern,
			"path", r.URL.Path,
			"status", rec.status,
			"bytes", rec.bytes,
			"remote", r.RemoteAddr,
			"elapsed", time.Since(began).Round(time.Microsecond),
		)
	})
}

// recoveryMiddleware answers a panicking handler with a JSON 500, unless the
// handler already started its response.
func recoveryMiddleware(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec, ok := w.(*recorder)
		if !ok {
			rec = &recorder{ResponseWriter: w, status: http.StatusOK}
		}

		defer func() {
			v := recover()
			if v == nil {
				return
			}
			logger.Error("handler panicked", "panic", v, "method", r.Method, "path", r.URL.Path)
			if !rec.wroteHeader {
				writeError(rec, http.StatusInternalServerError, "internal server error")
			}
		}()

		next.ServeHTTP(rec, r)
	})
}
