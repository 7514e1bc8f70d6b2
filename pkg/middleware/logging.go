package middleware

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/vfg2006/attribution-api/pkg/apiErrors"
	"github.com/vfg2006/attribution-api/pkg/log"
)

// CorrelationIDHeader propaga o ID de correlação entre serviços
const CorrelationIDHeader = "X-Correlation-ID"

const slowRequestThreshold = 2 * time.Second

// LoggingMiddleware registra início e fim de cada requisição HTTP
func LoggingMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, correlationID := correlationFromRequest(r)
			w.Header().Set(CorrelationIDHeader, correlationID)
			r = r.WithContext(ctx)

			lrw := newLoggingResponseWriter(w)
			startTime := time.Now()
			isDev := log.IsDevelopment()

			if isDev {
				log.L.WithFields(log.Fields{"method": r.Method, "path": r.URL.Path}).Info("→ Iniciando requisição")
			} else {
				log.L.WithFields(requestFields(r, correlationID)).Info("Requisição iniciada")
			}

			next.ServeHTTP(lrw, r)

			elapsed := time.Since(startTime)
			fields := log.Fields{
				"method":      r.Method,
				"path":        r.URL.Path,
				"status_code": lrw.statusCode,
			}

			if isDev {
				symbol := "✓"
				if lrw.statusCode >= http.StatusBadRequest {
					symbol = "✗"
				}
				logByStatus(log.L.WithFields(fields), lrw.statusCode, fmt.Sprintf("%s Completada em %s", symbol, formatDuration(elapsed)))
			} else {
				fields["correlation_id"] = correlationID
				fields["duration_ms"] = elapsed.Milliseconds()
				logByStatus(log.L.WithFields(fields), lrw.statusCode, "Requisição finalizada")
			}

			if elapsed > slowRequestThreshold {
				log.L.WithFields(fields).Warnf("Requisição lenta: %s %s (%s)", r.Method, r.URL.Path, formatDuration(elapsed))
			}
		})
	}
}

func requestFields(r *http.Request, correlationID string) log.Fields {
	return log.Fields{
		"correlation_id": correlationID,
		"remote_addr":    r.RemoteAddr,
		"method":         r.Method,
		"path":           r.URL.Path,
		"query":          r.URL.RawQuery,
		"user_agent":     r.UserAgent(),
		"content_length": r.ContentLength,
	}
}

func logByStatus(logger log.Logger, status int, msg string) {
	switch {
	case status >= http.StatusInternalServerError:
		logger.Error(msg)
	case status >= http.StatusBadRequest:
		logger.Warn(msg)
	default:
		logger.Info(msg)
	}
}

// correlationFromRequest reaproveita o ID enviado pelo cliente ou gera um novo
func correlationFromRequest(r *http.Request) (context.Context, string) {
	if id := r.Header.Get(CorrelationIDHeader); id != "" {
		return context.WithValue(r.Context(), log.CorrelationIDKey, id), id
	}
	return log.WithCorrelationID(r.Context())
}

func formatDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%d µs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%d ms", d.Milliseconds())
	default:
		return fmt.Sprintf("%.2f s", d.Seconds())
	}
}

// loggingResponseWriter captura o status code da resposta
type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func newLoggingResponseWriter(w http.ResponseWriter) *loggingResponseWriter {
	return &loggingResponseWriter{w, http.StatusOK}
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

// LogPanicMiddleware recupera panics, registra a pilha e responde com erro interno
func LogPanicMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}

				stack := make([]byte, 4096)
				stackTrace := string(stack[:runtime.Stack(stack, false)])

				if log.IsDevelopment() {
					log.L.WithFields(log.Fields{"error": rec, "path": r.URL.Path}).Error("❌ PANIC na aplicação")
					fmt.Fprintf(os.Stderr, "\n=== STACK TRACE ===\n%s\n", stackTrace)
				} else {
					log.L.WithFields(log.Fields{
						"correlation_id": log.GetCorrelationID(r.Context()),
						"panic_error":    rec,
						"method":         r.Method,
						"path":           r.URL.Path,
						"stack_trace":    stackTrace,
					}).Error("Erro não tratado na aplicação")
				}

				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno no servidor", nil)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
