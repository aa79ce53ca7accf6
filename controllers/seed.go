package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shangour/URmine149/lifecycle"
	"github.com/shangour/URmine149/seed"
)

// SeedConfirmPhrase must be echoed verbatim by the caller. The reset
// drops every stored entity, so a bare POST is not enough.
const SeedConfirmPhrase = "ERASE ALL DATA"

type SeedController struct {
	Engine *lifecycle.Engine
}

type seedInput struct {
	Confirm string             `json:"confirm" binding:"required"`
	Dataset *lifecycle.Dataset `json:"dataset"`
}

func (sc *SeedController) Reset(c *gin.Context) {
	var input seedInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Confirm != SeedConfirmPhrase {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Reset not confirmed; set confirm to \"" + SeedConfirmPhrase + "\""})
		return
	}

	ds := seed.Sample()
	if input.Dataset != nil {
		ds = *input.Dataset
	}

	if err := sc.Engine.ResetToSampleData(c.Request.Context(), ds); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Database seeded successfully"})
}
