package logger

import (
	"io"
	"os"
	"time"

	"atelier_lag/internal/infrastructure/config"
	"atelier_lag/internal/infrastructure/tracing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
)

const RequestIDHeader = "X-Request-ID"

// Setup configures the global zerolog logger. Loggers taken with
// zerolog.Ctx on a context without a request logger fall back to it.
func Setup(cfg config.Config) {
	SetupWriter(cfg, os.Stdout)
}

func SetupWriter(cfg config.Config, w io.Writer) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339Nano

	if cfg.LogFormat == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	zlog.Logger = zerolog.New(w).With().Timestamp().Str("service", cfg.ServiceName).Logger()
	zerolog.DefaultContextLogger = &zlog.Logger
}

// RequestLogger attaches a request-scoped logger (request id, trace id) to
// the request context and logs one line per request.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		reqID := c.GetHeader(RequestIDHeader)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Header(RequestIDHeader, reqID)

		ctx := c.Request.Context()
		lctx := zlog.With().Str("request_id", reqID)
		if traceID := tracing.TraceIDFromContext(ctx); traceID != "" {
			lctx = lctx.Str("trace_id", traceID)
		}
		l := lctx.Logger()
		c.Request = c.Request.WithContext(l.WithContext(ctx))

		c.Next()

		status := c.Writer.Status()
		evt := l.Info()
		switch {
		case status >= 500:
			evt = l.Error()
		case status >= 400:
			evt = l.Warn()
		}
		evt.
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Msg("[http] request")
	}
}
