package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/Dosada05/playground-standings/metrics"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// RequestLogger пишет одну строку slog на запрос и отдаёт латентность в метрики
// с шаблоном маршрута chi вместо сырого пути.
func RequestLogger(logger *slog.Logger, recorder *metrics.Recorder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			route := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if pattern := rctx.RoutePattern(); pattern != "" {
					route = pattern
				}
			}
			elapsed := time.Since(start)
			recorder.ObserveRequest(r.Method, route, status, elapsed)

			level := slog.LevelInfo
			if status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			logger.LogAttrs(r.Context(), level, "http request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("route", route),
				slog.Int("status", status),
				slog.Int("bytes", ww.BytesWritten()),
				slog.Duration("duration", elapsed),
				slog.String("request_id", chimiddleware.GetReqID(r.Context())),
				slog.String("remote_ip", r.RemoteAddr))
		})
	}
}
