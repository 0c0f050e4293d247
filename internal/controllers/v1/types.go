package v1

import (
	"encoding/json"

	"github.com/foerdercheck/backend/internal/checklist"
	"github.com/foerdercheck/backend/internal/extraction"
	"github.com/foerdercheck/backend/internal/models"
	"github.com/foerdercheck/backend/internal/reconcile"
	ez_uuid "github.com/foerdercheck/backend/internal/uuid"
	"github.com/shopspring/decimal"
)

type URIID struct {
	ID ez_uuid.UUID `uri:"id" binding:"required" format:"UUID"` // ID of the application
}

type URILine struct {
	ID    ez_uuid.UUID `uri:"id" binding:"required" format:"UUID"` // ID of the application
	Index int          `uri:"index" binding:"min=0"`               // Index of the calculation line
}

// ApplicationCreate defines the values for a new application. The form data
// blobs are optional, they can be synchronized later.
type ApplicationCreate struct {
	Reference             string          `json:"reference" binding:"required" example:"WFB-2024-01395"`
	Profile               json.RawMessage `json:"profile,omitempty" swaggertype:"object"`
	Financials            json.RawMessage `json:"financials,omitempty" swaggertype:"object"`
	CoApplicantFinancials json.RawMessage `json:"coApplicantFinancials,omitempty" swaggertype:"object"`
	ExtractionStructure   json.RawMessage `json:"extractionStructure,omitempty" swaggertype:"object"`
}

// ChecklistLineUpdate is the reviewer override for one editable line.
type ChecklistLineUpdate struct {
	Value decimal.Decimal `json:"value" example:"1250.50"`
}

type ApplicationResponse struct {
	Data  *models.Application `json:"data"`
	Error *string             `json:"error" example:"the specified resource ID is not a valid UUID"`
}

type CalculationResponse struct {
	Data  *reconcile.HouseholdResult `json:"data"`
	Error *string                    `json:"error" example:"there is no application matching your query"`
}

type ExtractionRunResponse struct {
	Data  *extraction.Result `json:"data"`
	Error *string            `json:"error" example:"there is no application matching your query"`
}

type ChecklistResponse struct {
	Data  *checklist.Item `json:"data"`
	Error *string         `json:"error" example:"this calculation line cannot be edited"`
}
