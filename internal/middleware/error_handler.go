package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/cargo-service/internal/cargoerr"
	"github.com/guttosm/cargo-service/internal/circuitbreaker"
	"github.com/guttosm/cargo-service/internal/domain/dto"
	"github.com/guttosm/cargo-service/internal/i18n"
	"github.com/guttosm/cargo-service/internal/logger"
)

// StatusFor maps an error returned by the cargo services to an HTTP status and
// the i18n key of its message.
func StatusFor(err error) (int, string) {
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		return http.StatusServiceUnavailable, i18n.ErrKeyServiceUnavailable
	}
	switch cargoerr.KindOf(err) {
	case cargoerr.KindNotFound:
		return http.StatusNotFound, i18n.ErrKeyNotFound
	case cargoerr.KindInvalidRequest:
		return http.StatusBadRequest, i18n.ErrKeyInvalidRequest
	case cargoerr.KindConcurrentModification:
		return http.StatusConflict, i18n.ErrKeyConflict
	case cargoerr.KindTimeout:
		return http.StatusGatewayTimeout, i18n.ErrKeyTimeout
	default:
		return http.StatusInternalServerError, i18n.ErrKeyInternalError
	}
}

// ErrorHandler returns a middleware that handles gin context errors.
// Errors attached by handlers that did not write a response are translated
// through StatusFor; every attached error is logged.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err
		status, key := StatusFor(err)
		if c.Writer.Written() {
			status = c.Writer.Status()
		}

		event := logger.Ctx(c.Request.Context()).Warn()
		if status >= http.StatusInternalServerError {
			event = logger.Ctx(c.Request.Context()).Error()
		}
		event.
			Str("error", err.Error()).
			Str("kind", cargoerr.KindOf(err).String()).
			Int("status", status).
			Str("path", c.Request.URL.Path).
			Str("method", c.Request.Method).
			Msg("Request error")

		if !c.Writer.Written() {
			message := i18n.GetTranslator().Translate(key, i18n.GetLocale(c))
			resp := dto.NewError(dto.ErrCodeFromStatus(status), message).
				WithRequestID(GetRequestID(c))
			resp.TraceID = TraceID(c.Request.Context())
			if status < http.StatusInternalServerError {
				resp.Details = map[string]string{"reason": err.Error()}
			}
			c.JSON(status, resp)
		}
	}
}
