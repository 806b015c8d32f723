package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/cargo-service/internal/domain/dto"
	"github.com/guttosm/cargo-service/internal/i18n"
	"github.com/guttosm/cargo-service/internal/logger"
)

// Recovery turns a handler panic into a 500 response and logs it with the
// stack. http.ErrAbortHandler is re-raised so the server drops the connection.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			err, ok := v.(error)
			if ok && errors.Is(err, http.ErrAbortHandler) {
				panic(v)
			}
			if !ok {
				err = fmt.Errorf("panic: %v", v)
			}

			logger.Ctx(c.Request.Context()).Error().
				Err(err).
				Str("path", c.Request.URL.Path).
				Bytes("stack", debug.Stack()).
				Msg("Panic recovered")

			_ = c.Error(err)
			msg := i18n.GetTranslator().Translate(i18n.ErrKeyInternalError, i18n.GetLocale(c))
			c.AbortWithStatusJSON(http.StatusInternalServerError,
				dto.NewError(dto.ErrCodeInternal, msg).WithRequestID(GetRequestID(c)))
		}()
		c.Next()
	}
}
