package handlers

import (
	"github.com/gin-gonic/gin"

	"motocare/services"
)

// APIResponse is the unified envelope every endpoint answers with.
type APIResponse struct {
	Status  bool        `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// SuccessResponse returns a successful reply.
func SuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, APIResponse{
		Status:  true,
		Message: message,
		Data:    data,
	})
}

// ErrorResponse returns a failed reply.
func ErrorResponse(c *gin.Context, statusCode int, message string, err string) {
	c.JSON(statusCode, APIResponse{
		Status:  false,
		Message: message,
		Error:   err,
	})
}

var flows *services.Flows

// Init wires the mutating flows into the handler package. Called once
// from main before the router starts.
func Init(f *services.Flows) {
	flows = f
}
