package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/seeksy/rate-desk/internal/metrics"
	"github.com/sirupsen/logrus"
)

// RequestIDHeader carries the request id back to the caller
const RequestIDHeader = "X-Request-ID"

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Logging tags each request with an id and logs it once it completes.
// m may be nil.
func Logging(log *logrus.Logger, m *metrics.Metrics) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			requestID := r.Header.Get(RequestIDHeader)
			if requestID == "" {
				requestID = uuid.NewString()
			}
			w.Header().Set(RequestIDHeader, requestID)

			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			r = r.WithContext(reserveSession(r.Context()))
			next.ServeHTTP(rec, r)

			route := r.URL.Path
			if cur := mux.CurrentRoute(r); cur != nil {
				if tmpl, err := cur.GetPathTemplate(); err == nil {
					route = tmpl
				}
			}
			if m != nil {
				m.RequestsProcessed.WithLabelValues(route, http.StatusText(rec.status)).Inc()
			}

			fields := logrus.Fields{
				"request_id": requestID,
				"method":     r.Method,
				"route":      route,
				"status":     rec.status,
				"duration":   time.Since(start).String(),
			}
			if s, ok := SessionFrom(r.Context()); ok {
				fields["tenant_id"] = s.TenantID
				fields["user_id"] = s.UserID
			}
			log.WithFields(fields).Info("Request handled")
		})
	}
}
