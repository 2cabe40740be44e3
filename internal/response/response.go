package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rentwheels/service-rental/internal/domain"
)

// Success writes a 200 envelope with the given payload.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

// Created writes a 201 envelope with the given payload.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": data})
}

// Paginated writes a 200 envelope with pagination metadata.
func Paginated(c *gin.Context, items interface{}, total int64, page, limit int) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    items,
		"total":   total,
		"page":    page,
		"limit":   limit,
	})
}

// BadRequest writes a 400 envelope with the given message.
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": message})
}

// Error maps a domain error to its HTTP status and writes the failure envelope.
// Unrecognized errors become opaque 500s.
func Error(c *gin.Context, err error) {
	var (
		validationErr   *domain.ValidationError
		notFoundErr     *domain.NotFoundError
		conflictErr     *domain.ConflictError
		forbiddenErr    *domain.ForbiddenError
		unauthorizedErr *domain.UnauthorizedError
		invalidStateErr *domain.InvalidStateError
	)

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": validationErr.Message})
	case errors.As(err, &notFoundErr):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": notFoundErr.Error()})
	case errors.As(err, &conflictErr):
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": conflictErr.Message})
	case errors.As(err, &forbiddenErr):
		c.JSON(http.StatusForbidden, gin.H{"success": false, "message": forbiddenErr.Message})
	case errors.As(err, &unauthorizedErr):
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": unauthorizedErr.Message})
	case errors.As(err, &invalidStateErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "message": invalidStateErr.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "internal server error"})
	}
}
