package v1

import (
	"encoding/json"
	"net/http"

	"github.com/foerdercheck/backend/internal/extraction"
	"github.com/foerdercheck/backend/internal/httputil"
	"github.com/foerdercheck/backend/internal/models"
	"github.com/foerdercheck/backend/internal/reconcile"
	"github.com/gin-gonic/gin"
)

// RegisterApplicationRoutes registers the routes for applications with
// the RouterGroup that is passed.
func RegisterApplicationRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsApplications)
		r.POST("", CreateApplication)
	}

	// Application with ID
	{
		r.OPTIONS("/:id", OptionsApplicationDetail)
		r.GET("/:id", GetApplication)
	}

	// Derived records
	{
		r.OPTIONS("/:id/calculation", OptionsCalculation)
		r.GET("/:id/calculation", GetCalculation)
		r.OPTIONS("/:id/extraction", OptionsExtraction)
		r.POST("/:id/extraction", RunExtraction)
		r.OPTIONS("/:id/checklist", OptionsChecklist)
		r.GET("/:id/checklist", GetChecklist)
		r.POST("/:id/checklist", CreateChecklist)
		r.OPTIONS("/:id/checklist/lines/:index", OptionsChecklistLine)
		r.PATCH("/:id/checklist/lines/:index", UpdateChecklistLine)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Applications
// @Success		204
// @Router			/v1/applications [options]
func OptionsApplications(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Applications
// @Success		204
// @Failure		400	{object}	ApplicationResponse
// @Param			id	path		URIID	true	"ID of the application"
// @Router			/v1/applications/{id} [options]
func OptionsApplicationDetail(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Create application
// @Description	Creates a new application with its form data blobs
// @Tags			Applications
// @Accept			json
// @Produce		json
// @Success		201		{object}	ApplicationResponse
// @Failure		400		{object}	ApplicationResponse
// @Failure		500		{object}	ApplicationResponse
// @Param			application	body		ApplicationCreate	true	"Application"
// @Router			/v1/applications [post]
func CreateApplication(c *gin.Context) {
	var create ApplicationCreate
	if err := c.ShouldBindJSON(&create); err != nil {
		e := err.Error()
		c.JSON(status(err), ApplicationResponse{Error: &e})
		return
	}

	if err := validateBlobs(create); err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, ApplicationResponse{Error: &e})
		return
	}

	application := models.Application{
		Reference:             create.Reference,
		Profile:               create.Profile,
		Financials:            create.Financials,
		CoApplicantFinancials: create.CoApplicantFinancials,
		ExtractionStructure:   create.ExtractionStructure,
	}

	if err := models.DB.WithContext(c.Request.Context()).Create(&application).Error; err != nil {
		e := err.Error()
		c.JSON(status(err), ApplicationResponse{Error: &e})
		return
	}

	c.JSON(http.StatusCreated, ApplicationResponse{Data: &application})
}

// @Summary		Get application
// @Description	Returns a specific application
// @Tags			Applications
// @Produce		json
// @Success		200	{object}	ApplicationResponse
// @Failure		400	{object}	ApplicationResponse
// @Failure		404	{object}	ApplicationResponse
// @Param			id	path		URIID	true	"ID of the application"
// @Router			/v1/applications/{id} [get]
func GetApplication(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		e := err.Error()
		c.JSON(status(err), ApplicationResponse{Error: &e})
		return
	}

	application, err := models.Store{}.Application(c.Request.Context(), uri.ID.UUID)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ApplicationResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, ApplicationResponse{Data: &application})
}

// validateBlobs checks that the submitted blobs decode into their record
// types, so that garbage is rejected at the door instead of surfacing
// during a later calculation.
func validateBlobs(create ApplicationCreate) error {
	if len(create.Profile) > 0 {
		var profile reconcile.Profile
		if err := json.Unmarshal(create.Profile, &profile); err != nil {
			return errInvalidBlob
		}
	}

	if len(create.Financials) > 0 {
		var financials reconcile.Financials
		if err := json.Unmarshal(create.Financials, &financials); err != nil {
			return errInvalidBlob
		}
	}

	if len(create.CoApplicantFinancials) > 0 {
		var financials map[string]reconcile.Financials
		if err := json.Unmarshal(create.CoApplicantFinancials, &financials); err != nil {
			return errInvalidBlob
		}
	}

	if len(create.ExtractionStructure) > 0 {
		var structure extraction.Structure
		if err := json.Unmarshal(create.ExtractionStructure, &structure); err != nil {
			return errInvalidBlob
		}
	}

	return nil
}
