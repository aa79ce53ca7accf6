package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shangour/URmine149/briefing"
	"github.com/shangour/URmine149/lifecycle"
)

// respondError maps engine error kinds onto HTTP statuses. The body
// shape is always {"error": "..."}.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, lifecycle.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, lifecycle.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, lifecycle.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, briefing.ErrUpstreamUnavailable):
		status = http.StatusBadGateway
	case errors.Is(err, lifecycle.ErrStorage):
		status = http.StatusInternalServerError
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
