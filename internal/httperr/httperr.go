package httperr

import (
	"errors"
	"net/http"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
	Error   string `json:"error,omitempty"`
	Stack   string `json:"stack,omitempty"`
}

var exposeStack atomic.Bool

// Configure controls whether internal error responses carry the stack
// recorded by Internal.
func Configure(production bool) {
	exposeStack.Store(!production)
}

// Status maps an error kind to its HTTP status. Forbidden keeps the 401 the
// API has always answered with.
func Status(kind Kind) int {
	switch kind {
	case KindInvalidInput:
		return http.StatusBadRequest
	case KindUnauthenticated, KindForbidden:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func Write(c *gin.Context, status int, body HTTPError) {
	c.AbortWithStatusJSON(status, body)
}

// Respond writes err as the JSON error body and records it on the gin context.
func Respond(c *gin.Context, err error) {
	_ = c.Error(err)

	var be *BusinessError
	if !errors.As(err, &be) {
		be = &BusinessError{Kind: KindInternal, Code: "internal_error", Message: "Server error", Err: err}
	}

	body := HTTPError{Message: be.Message, Code: be.Code}
	if be.Kind == KindInternal {
		if be.Err != nil {
			body.Error = be.Err.Error()
		}
		if exposeStack.Load() {
			body.Stack = string(be.stack)
		}
	}

	Write(c, Status(be.Kind), body)
}

func BadRequest(c *gin.Context, code, message string) {
	Respond(c, InvalidInput(code, message))
}

func NotImplemented(c *gin.Context, code, message string) {
	Write(c, http.StatusNotImplemented, HTTPError{Message: message, Code: code})
}
