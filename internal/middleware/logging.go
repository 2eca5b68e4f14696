package middleware

import (
	"time"

	"cosmeshop/internal/logger"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// RequestLoggerはリクエストごとにrequest_idを採番してコンテキストに入れ、
// 完了時に1行ログを出す。
func RequestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := c.Request().Header.Get(echo.HeaderXRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Response().Header().Set(echo.HeaderXRequestID, requestID)

		ctx := logger.WithRequestID(c.Request().Context(), requestID)
		c.SetRequest(c.Request().WithContext(ctx))

		start := time.Now()
		err := next(c)

		fields := []zap.Field{
			zap.String("request_id", requestID),
			zap.String("method", c.Request().Method),
			zap.String("path", c.Request().URL.Path),
			zap.Int("status", c.Response().Status),
			zap.Duration("latency", time.Since(start)),
			zap.String("remote_ip", c.RealIP()),
		}
		if err != nil {
			fields = append(fields, zap.Error(err))
			logger.L().Warn("request failed", fields...)
		} else {
			logger.L().Info("request", fields...)
		}

		return err
	}
}
