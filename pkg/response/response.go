package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vidtube/backend/pkg/apperr"
)

type APIResponse[T any] struct {
	Status    int         `json:"status"`
	Timestamp time.Time   `json:"timestamp"`
	RequestID string      `json:"request_id"`
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Data      T           `json:"data,omitempty"`
	Meta      interface{} `json:"meta,omitempty"`
	Error     interface{} `json:"error,omitempty"`
}

// ErrorBody is the typed failure payload: stable code, kind tag, detail list.
type ErrorBody struct {
	Code    int      `json:"code"`
	Kind    string   `json:"kind"`
	Details []string `json:"details,omitempty"`
}

// Success writes a success envelope.
func Success[T any](ctx *gin.Context, status int, data T, message string, meta interface{}) {
	if status == 0 {
		status = http.StatusOK
	}
	ctx.JSON(status, APIResponse[T]{
		Status:    status,
		Timestamp: time.Now(),
		RequestID: ctx.GetString("request_id"),
		Success:   true,
		Message:   message,
		Data:      data,
		Meta:      meta,
	})
}

func failure(ctx *gin.Context, err error) (int, APIResponse[any]) {
	ae := apperr.From(err)
	status := ae.HTTPStatus()
	return status, APIResponse[any]{
		Status:    status,
		Timestamp: time.Now(),
		RequestID: ctx.GetString("request_id"),
		Success:   false,
		Message:   ae.Message,
		Error: ErrorBody{
			Code:    ae.Code(),
			Kind:    ae.Kind.String(),
			Details: ae.Details,
		},
	}
}

// Fail writes err as a typed error envelope, mapping kind onto HTTP status.
func Fail(ctx *gin.Context, err error) {
	status, resp := failure(ctx, err)
	ctx.JSON(status, resp)
}

// Abort writes err and stops the handler chain (middleware use).
func Abort(ctx *gin.Context, err error) {
	status, resp := failure(ctx, err)
	ctx.AbortWithStatusJSON(status, resp)
}
