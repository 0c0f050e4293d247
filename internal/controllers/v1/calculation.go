package v1

import (
	"net/http"

	"github.com/foerdercheck/backend/internal/httputil"
	"github.com/foerdercheck/backend/internal/models"
	"github.com/foerdercheck/backend/internal/reconcile"
	"github.com/gin-gonic/gin"
)

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Calculation
// @Success		204
// @Param			id	path	URIID	true	"ID of the application"
// @Router			/v1/applications/{id}/calculation [options]
func OptionsCalculation(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Get household calculation
// @Description	Resolves all financial facts of the household and validates them against the minimum income policy. Business conditions are reported inside the result, not as HTTP errors.
// @Tags			Calculation
// @Produce		json
// @Success		200	{object}	CalculationResponse
// @Failure		400	{object}	CalculationResponse
// @Failure		404	{object}	CalculationResponse
// @Failure		500	{object}	CalculationResponse
// @Param			id	path		URIID	true	"ID of the application"
// @Router			/v1/applications/{id}/calculation [get]
func GetCalculation(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		e := err.Error()
		c.JSON(status(err), CalculationResponse{Error: &e})
		return
	}

	store := models.Store{}

	structure, err := store.ExtractionStructure(c.Request.Context(), uri.ID.UUID)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CalculationResponse{Error: &e})
		return
	}

	result, err := reconcile.NewAggregator(store).CalculateAvailableMonthlyIncome(c.Request.Context(), uri.ID.UUID, structure)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CalculationResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, CalculationResponse{Data: result})
}
