package http

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/cargo-service/internal/cargoerr"
	"github.com/guttosm/cargo-service/internal/domain/dto"
	"github.com/guttosm/cargo-service/internal/i18n"
	"github.com/guttosm/cargo-service/internal/middleware"
)

// Envelope pools. gin serializes synchronously, so an envelope can go back
// to its pool as soon as the JSON call returns.
var (
	successPool = sync.Pool{New: func() any { return new(dto.SuccessResponse) }}
	errorPool   = sync.Pool{New: func() any { return new(dto.ErrorResponse) }}
)

// RequestBuilder binds request bodies.
type RequestBuilder struct {
	c *gin.Context
}

// NewRequestBuilder creates a new request builder for the given context.
func NewRequestBuilder(c *gin.Context) *RequestBuilder {
	return &RequestBuilder{c: c}
}

// Bind decodes the JSON body into v and applies its binding tags.
func (b *RequestBuilder) Bind(v any) error {
	return b.c.ShouldBindJSON(v)
}

// ResponseBuilder writes the success and error envelopes.
type ResponseBuilder struct {
	c *gin.Context
}

// NewResponseBuilder creates a new response builder for the given context.
func NewResponseBuilder(c *gin.Context) *ResponseBuilder {
	return &ResponseBuilder{c: c}
}

// Success sends data in the success envelope.
func (b *ResponseBuilder) Success(statusCode int, data any) {
	resp := successPool.Get().(*dto.SuccessResponse)
	*resp = dto.SuccessResponse{
		Data:      data,
		RequestID: middleware.GetRequestID(b.c),
		Timestamp: time.Now(),
	}
	b.c.JSON(statusCode, resp)

	*resp = dto.SuccessResponse{}
	successPool.Put(resp)
}

// SuccessOK sends a 200 OK response with the given data.
func (b *ResponseBuilder) SuccessOK(data any) {
	b.Success(http.StatusOK, data)
}

// SuccessCreated sends a 201 Created response with the given data.
func (b *ResponseBuilder) SuccessCreated(data any) {
	b.Success(http.StatusCreated, data)
}

// Error aborts with statusCode and the translated messageKey. err, when not
// nil, is attached to the context for the error handler to log.
func (b *ResponseBuilder) Error(statusCode int, messageKey string, err error) {
	b.abort(statusCode, messageKey, nil, err)
}

// Fail sends the error response matching err's kind. Client errors carry
// the error text as the reason; server errors only the translated message.
func (b *ResponseBuilder) Fail(err error) {
	status, messageKey := middleware.StatusFor(err)
	var details map[string]string
	if status < http.StatusInternalServerError {
		details = map[string]string{"reason": err.Error()}
	}
	b.abort(status, messageKey, details, err)
}

func (b *ResponseBuilder) abort(status int, messageKey string, details map[string]string, err error) {
	if err != nil {
		_ = b.c.Error(err)
	}

	resp := errorPool.Get().(*dto.ErrorResponse)
	*resp = dto.ErrorResponse{
		Error:     dto.ErrCodeFromStatus(status),
		Message:   i18n.GetTranslator().Translate(messageKey, i18n.GetLocale(b.c)),
		Details:   details,
		RequestID: middleware.GetRequestID(b.c),
		Timestamp: time.Now(),
		TraceID:   middleware.TraceID(b.c.Request.Context()),
	}
	b.c.AbortWithStatusJSON(status, resp)

	*resp = dto.ErrorResponse{}
	errorPool.Put(resp)
}

// Validator is implemented by requests that check themselves after binding.
type Validator interface {
	Validate() error
}

// BuildRequestAndValidate binds a T and validates it when T is a Validator.
// Both failures are reported as invalid requests.
func BuildRequestAndValidate[T any](c *gin.Context) (*T, error) {
	var req T
	if err := NewRequestBuilder(c).Bind(&req); err != nil {
		return nil, asInvalid("http.bind", err)
	}
	if v, ok := any(&req).(Validator); ok {
		if err := v.Validate(); err != nil {
			return nil, asInvalid("http.validate", err)
		}
	}
	return &req, nil
}

// bindJSON binds and validates the request body, answering 400 on failure.
func bindJSON[T any](c *gin.Context) (*T, bool) {
	req, err := BuildRequestAndValidate[T](c)
	if err != nil {
		NewResponseBuilder(c).Fail(err)
		return nil, false
	}
	return req, true
}

// asInvalid keeps classified errors and marks everything else as bad input.
func asInvalid(op string, err error) error {
	var ce *cargoerr.Error
	if errors.As(err, &ce) {
		return err
	}
	return cargoerr.Wrap(cargoerr.KindInvalidRequest, op, err)
}
