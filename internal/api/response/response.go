package response

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Success bool `json:"success"`
	Code    int  `json:"code"`
	Extras  any  `json:"extras"`
}

func NewResponse(success bool, code int, extras any) Response {
	return Response{
		Success: success,
		Code:    code,
		Extras:  extras,
	}
}

// SuccessResponse returns a JSON response with a success message with no type limitation
func SuccessResponse(c *gin.Context, extras any) {
	c.JSON(
		http.StatusOK,
		NewResponse(
			true,
			http.StatusOK,
			extras,
		))
}

func ErrorResponse(c *gin.Context, code int, message string) {
	c.JSON(
		code,
		NewResponse(
			false,
			code,
			map[string]interface{}{
				"message": message,
			},
		))
}

// Write emits an endpoint variant. Only Payload variants get a body; the body
// is encoded before the status is written so an encoding failure can still
// become an empty 500.
func Write(c *gin.Context, v Variant) {
	p, ok := v.(Payload)
	if !ok {
		c.Status(v.Status())
		c.Writer.WriteHeaderNow()
		return
	}

	body, err := json.Marshal(p.Body())
	if err != nil {
		slog.ErrorContext(c.Request.Context(), "failed to encode response body", "error", err, "status", p.Status())
		c.Status(http.StatusInternalServerError)
		c.Writer.WriteHeaderNow()
		return
	}
	c.Data(p.Status(), gin.MIMEJSON, body)
}
