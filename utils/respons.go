package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type JSONResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondJSON(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, JSONResponse{
		Success: code >= 200 && code < 300,
		Message: message,
		Data:    data,
	})
}

// RespondWith writes an arbitrary payload with the success flag set from
// the status code. Used for the flat {token, user} and {count, data} shapes.
func RespondWith(c *gin.Context, code int, payload gin.H) {
	body := gin.H{"success": code >= 200 && code < 300}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(code, body)
}

func RespondError(c *gin.Context, code int, err error) {
	c.JSON(code, JSONResponse{
		Success: false,
		Message: err.Error(),
	})
}

// RespondServiceError picks the status for err. Internal errors are logged
// and hidden behind a generic message.
func RespondServiceError(c *gin.Context, err error) {
	code := StatusFor(err)
	if code == http.StatusInternalServerError {
		ErrorLogger.WithError(err).
			WithField("path", c.Request.URL.Path).
			Error("request failed")
		c.JSON(code, JSONResponse{Success: false, Message: "Server Error"})
		return
	}
	c.JSON(code, JSONResponse{Success: false, Message: PublicMessage(err)})
}
