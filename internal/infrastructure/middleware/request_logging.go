package middleware

import (
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"fashion-unlimited/internal/infrastructure/metrics"
)

const RequestIDHeader = "X-Request-ID"

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (s *statusRecorder) WriteHeader(code int) {
	if s.status == 0 {
		s.status = code
	}
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	if s.status == 0 {
		s.status = http.StatusOK
	}
	n, err := s.ResponseWriter.Write(b)
	s.bytes += n
	return n, err
}

// RequestLogger returns middleware that logs requests using zerolog
// and updates OpenTelemetry-backed counters.
func RequestLogger(reg *metrics.Registry) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			start := time.Now()
			rid := req.Header.Get(RequestIDHeader)
			if rid == "" {
				rid = uuid.NewString()
			}
			w.Header().Set(RequestIDHeader, rid)

			path := routeTemplate(req)

			// Attach request-scoped logger
			logger := log.With().
				Str("request_id", rid).
				Str("method", req.Method).
				Str("path", path).
				Str("remote_ip", realIP(req)).
				Str("user_agent", req.UserAgent()).
				Logger()

			req = req.WithContext(logger.WithContext(req.Context()))
			rec := &statusRecorder{ResponseWriter: w}

			next.ServeHTTP(rec, req)

			status := rec.status
			if status == 0 {
				status = http.StatusOK
			}
			duration := time.Since(start)
			labels := map[string]string{
				"method": req.Method,
				"path":   path,
				"status": intToClass(status),
			}

			if reg != nil {
				reg.Inc(req.Context(), "http_requests_total", labels, 1)
			}

			if status >= 500 {
				logger.Error().
					Int("status", status).
					Int("bytes", rec.bytes).
					Dur("duration", duration).
					Msg("http request failed")
				if reg != nil {
					reg.Inc(req.Context(), "http_requests_errors_total", labels, 1)
				}
				return
			}

			logger.Info().
				Int("status", status).
				Int("bytes", rec.bytes).
				Dur("duration", duration).
				Msg("http request served")
		})
	}
}

// routeTemplate keeps metric label cardinality bounded to registered routes.
func routeTemplate(req *http.Request) string {
	if route := mux.CurrentRoute(req); route != nil {
		if tpl, err := route.GetPathTemplate(); err == nil {
			return tpl
		}
	}
	return req.URL.Path
}

func realIP(req *http.Request) string {
	if fwd := req.Header.Get("X-Forwarded-For"); fwd != "" {
		return strings.TrimSpace(strings.Split(fwd, ",")[0])
	}
	if ip := req.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	host, _, err := net.SplitHostPort(req.RemoteAddr)
	if err != nil {
		return req.RemoteAddr
	}
	return host
}

func intToClass(code int) string {
	switch {
	case code >= 100 && code < 200:
		return "1xx"
	case code >= 200 && code < 300:
		return "2xx"
	case code >= 300 && code < 400:
		return "3xx"
	case code >= 400 && code < 500:
		return "4xx"
	case code >= 500 && code < 600:
		return "5xx"
	default:
		return "0"
	}
}
