package v1

import (
	"net/http"
	"os"
	"strconv"

	"github.com/foerdercheck/backend/internal/extraction"
	"github.com/foerdercheck/backend/internal/httputil"
	"github.com/foerdercheck/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// extractionClient is the document AI collaborator. It is injected at
// startup (and replaced by a fake in tests) so that the handlers stay free
// of network concerns.
var extractionClient extraction.Client

// UseExtractionClient sets the document AI client used by the extraction
// endpoint.
func UseExtractionClient(client extraction.Client) {
	extractionClient = client
}

// extractionConcurrency returns the bound on concurrent document AI calls.
func extractionConcurrency() int {
	if raw, ok := os.LookupEnv("EXTRACTION_CONCURRENCY"); ok {
		if limit, err := strconv.Atoi(raw); err == nil && limit > 0 {
			return limit
		}
	}
	return extraction.DefaultConcurrency
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Extraction
// @Success		204
// @Param			id	path	URIID	true	"ID of the application"
// @Router			/v1/applications/{id}/extraction [options]
func OptionsExtraction(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Run document extraction
// @Description	Runs the document AI extraction over every uploaded file of the application and persists the updated extraction structure. Per-file failures are reported inside the result and do not abort the batch.
// @Tags			Extraction
// @Produce		json
// @Success		200	{object}	ExtractionRunResponse
// @Failure		400	{object}	ExtractionRunResponse
// @Failure		404	{object}	ExtractionRunResponse
// @Failure		500	{object}	ExtractionRunResponse
// @Param			id	path		URIID	true	"ID of the application"
// @Router			/v1/applications/{id}/extraction [post]
func RunExtraction(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		e := err.Error()
		c.JSON(status(err), ExtractionRunResponse{Error: &e})
		return
	}

	if extractionClient == nil {
		e := errNoExtractionClient.Error()
		c.JSON(status(errNoExtractionClient), ExtractionRunResponse{Error: &e})
		return
	}

	processor := extraction.NewProcessor(extractionClient, models.Store{}, extractionConcurrency())

	result, err := processor.Process(c.Request.Context(), uri.ID.UUID)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ExtractionRunResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, ExtractionRunResponse{Data: result})
}
