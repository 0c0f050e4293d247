package v1

import (
	"net/http"

	"github.com/foerdercheck/backend/internal/checklist"
	"github.com/foerdercheck/backend/internal/httputil"
	"github.com/foerdercheck/backend/internal/models"
	"github.com/foerdercheck/backend/internal/reconcile"
	"github.com/gin-gonic/gin"
)

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Checklist
// @Success		204
// @Param			id	path	URIID	true	"ID of the application"
// @Router			/v1/applications/{id}/checklist [options]
func OptionsChecklist(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Checklist
// @Success		204
// @Param			id		path	URIID	true	"ID of the application"
// @Param			index	path	int		true	"Index of the calculation line"
// @Router			/v1/applications/{id}/checklist/lines/{index} [options]
func OptionsChecklistLine(c *gin.Context) {
	httputil.OptionsPatch(c)
}

// @Summary		Get checklist item
// @Description	Returns the persisted income calculation checklist item of the application
// @Tags			Checklist
// @Produce		json
// @Success		200	{object}	ChecklistResponse
// @Failure		400	{object}	ChecklistResponse
// @Failure		404	{object}	ChecklistResponse
// @Param			id	path		URIID	true	"ID of the application"
// @Router			/v1/applications/{id}/checklist [get]
func GetChecklist(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		e := err.Error()
		c.JSON(status(err), ChecklistResponse{Error: &e})
		return
	}

	item, err := models.Store{}.ChecklistItem(c.Request.Context(), uri.ID.UUID)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ChecklistResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, ChecklistResponse{Data: &item})
}

// @Summary		Create checklist item
// @Description	Recomputes the household calculation and persists it as the reviewable checklist item, replacing any previous one
// @Tags			Checklist
// @Produce		json
// @Success		201	{object}	ChecklistResponse
// @Failure		400	{object}	ChecklistResponse
// @Failure		404	{object}	ChecklistResponse
// @Failure		500	{object}	ChecklistResponse
// @Param			id	path		URIID	true	"ID of the application"
// @Router			/v1/applications/{id}/checklist [post]
func CreateChecklist(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		e := err.Error()
		c.JSON(status(err), ChecklistResponse{Error: &e})
		return
	}

	store := models.Store{}
	ctx := c.Request.Context()

	structure, err := store.ExtractionStructure(ctx, uri.ID.UUID)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ChecklistResponse{Error: &e})
		return
	}

	result, err := reconcile.NewAggregator(store).CalculateAvailableMonthlyIncome(ctx, uri.ID.UUID, structure)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ChecklistResponse{Error: &e})
		return
	}

	item := checklist.Generate(result)
	if err := store.SaveChecklistItem(ctx, uri.ID.UUID, item); err != nil {
		e := err.Error()
		c.JSON(status(err), ChecklistResponse{Error: &e})
		return
	}

	c.JSON(http.StatusCreated, ChecklistResponse{Data: &item})
}

// @Summary		Update calculation line
// @Description	Replaces the value of one editable calculation line with a reviewer override. All subtotals and totals are recomputed from scratch before the item is persisted.
// @Tags			Checklist
// @Accept			json
// @Produce		json
// @Success		200		{object}	ChecklistResponse
// @Failure		400		{object}	ChecklistResponse
// @Failure		404		{object}	ChecklistResponse
// @Failure		500		{object}	ChecklistResponse
// @Param			id		path		URIID				true	"ID of the application"
// @Param			index	path		int					true	"Index of the calculation line"
// @Param			line	body		ChecklistLineUpdate	true	"Override value"
// @Router			/v1/applications/{id}/checklist/lines/{index} [patch]
func UpdateChecklistLine(c *gin.Context) {
	var uri URILine
	if err := c.ShouldBindUri(&uri); err != nil {
		e := err.Error()
		c.JSON(status(err), ChecklistResponse{Error: &e})
		return
	}

	var update ChecklistLineUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		e := err.Error()
		c.JSON(status(err), ChecklistResponse{Error: &e})
		return
	}

	store := models.Store{}
	ctx := c.Request.Context()

	item, err := store.ChecklistItem(ctx, uri.ID.UUID)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ChecklistResponse{Error: &e})
		return
	}

	updated, err := item.Edit(uri.Index, update.Value)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ChecklistResponse{Error: &e})
		return
	}

	if err := store.SaveChecklistItem(ctx, uri.ID.UUID, updated); err != nil {
		e := err.Error()
		c.JSON(status(err), ChecklistResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, ChecklistResponse{Data: &updated})
}
