package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pagedesk/internal/service"
)

// ListVariables returns variables, optionally narrowed by ?scope= and ?category=.
// Pass scope= with an empty value to list only global variables.
func (a *API) ListVariables(c *gin.Context) {
	filter := service.VariableFilter{Category: c.Query("category")}
	if scope, ok := c.GetQuery("scope"); ok {
		filter.Scope = &scope
	}

	variables, err := a.variables.List(filter)
	if err != nil {
		respondServiceError(c, err, "failed to load variables")
		return
	}
	c.JSON(http.StatusOK, gin.H{"variables": variables})
}

// CreateVariable stores a new variable.
func (a *API) CreateVariable(c *gin.Context) {
	var input service.VariableInput
	if !bindJSON(c, &input, "invalid variable payload") {
		return
	}

	variable, err := a.variables.Create(input)
	if err != nil {
		respondServiceError(c, err, "failed to create variable")
		return
	}
	c.JSON(http.StatusCreated, variable)
}

// UpdateVariable applies a partial update.
func (a *API) UpdateVariable(c *gin.Context) {
	var patch service.VariableUpdate
	if !bindJSON(c, &patch, "invalid variable payload") {
		return
	}

	variable, err := a.variables.Update(trimmedParam(c, "id"), patch)
	if err != nil {
		respondServiceError(c, err, "failed to update variable")
		return
	}
	c.JSON(http.StatusOK, variable)
}

// DeleteVariable removes a variable.
func (a *API) DeleteVariable(c *gin.Context) {
	if err := a.variables.Delete(trimmedParam(c, "id")); err != nil {
		respondServiceError(c, err, "failed to delete variable")
		return
	}
	c.Status(http.StatusNoContent)
}
