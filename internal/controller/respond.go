package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ndkhang/hirestage/internal/apperror"
	"github.com/ndkhang/hirestage/internal/dto"
)

// WriteError maps service errors onto HTTP responses. Terminal outcomes carry
// a machine-readable code so clients can branch without parsing messages.
func WriteError(c *gin.Context, err error, fallback string) {
	switch {
	case apperror.IsValidation(err):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error(), Code: dto.CodeValidation})
	case apperror.IsNotFound(err):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error(), Code: dto.CodeNotFound})
	case apperror.IsAlreadyCompleted(err):
		c.JSON(http.StatusConflict, dto.ErrorResponse{Error: err.Error(), Code: dto.CodeAlreadyCompleted})
	default:
		var ae *apperror.AtomicityError
		if errors.As(err, &ae) {
			c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error(), Code: dto.CodeAtomicity})
			return
		}
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: fallback, Code: dto.CodeInternal, Details: []string{err.Error()}})
	}
}

// ParseID reads a positive uint path parameter, writing the 400 itself on
// failure. The bool reports whether the handler should continue.
func ParseID(c *gin.Context, param string) (uint, bool) {
	val, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil || val == 0 {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid " + param + " format", Code: dto.CodeValidation})
		return 0, false
	}
	return uint(val), true
}
