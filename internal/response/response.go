package response

import (
	"net/http"

	"github.com/driveport/service-rental/internal/domain"
	"github.com/gin-gonic/gin"
)

// Every response carries a top-level success flag; failures additionally
// carry the error text in message, including raw internal error text.

// OK writes a 200 response with success=true merged into the payload.
func OK(c *gin.Context, payload gin.H) {
	body := gin.H{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}

// Message writes a 200 response with success=true and a message.
func Message(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{"success": true, "message": message})
}

// Created writes a 201 response with success=true and a message.
func Created(c *gin.Context, message string) {
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": message})
}

// BadRequest writes a 400 failure response.
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": message})
}

// Unauthorized writes a 401 failure response.
func Unauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": message})
}

// Error maps a domain error kind to an HTTP status and writes the uniform
// failure shape.
func Error(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"success": false, "message": err.Error()})
}

func statusFor(err error) int {
	switch domain.KindOf(err) {
	case domain.KindValidation:
		return http.StatusBadRequest
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindUnauthorized:
		return http.StatusUnauthorized
	case domain.KindForbidden:
		return http.StatusForbidden
	case domain.KindConflict, domain.KindUnavailable:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
