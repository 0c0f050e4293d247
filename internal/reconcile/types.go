// Package reconcile resolves the financial facts of a housing subsidy
// application to authoritative values and aggregates them for the household.
//
// Every fact can be backed by extracted document values, the applicant's form
// input, or a case worker's manual override. The resolver decides which one
// wins and records the provenance.
package reconcile

import (
	"github.com/shopspring/decimal"
)

// Source is the provenance of a resolved value.
type Source string

const (
	SourceExtracted Source = "extracted"
	SourceForm      Source = "form"
	SourceManual    Source = "manual"
)

// ValueWithMetadata is a resolved financial value together with where it
// came from.
//
// Invariant: SourceExtracted implies a non-empty DocumentIDs.
type ValueWithMetadata struct {
	Value       decimal.Decimal `json:"value" example:"1250.50"`
	Source      Source          `json:"source" example:"extracted"`
	DocumentIDs []string        `json:"documentIds,omitempty"`
	Confidence  *float64        `json:"confidence,omitempty" example:"0.93"`
	Editable    bool            `json:"editable"`
}

// LineType classifies a calculation line for display.
type LineType string

const (
	LineTypePersonHeader LineType = "person_header"
	LineTypeIncomeItem   LineType = "income_item"
	LineTypeExpenseItem  LineType = "expense_item"
	LineTypeSubtotal     LineType = "subtotal"
	LineTypeTotal        LineType = "total"
	LineTypeValidation   LineType = "validation"
)

// CalculationLine is one display line of the household calculation. The
// order of lines is significant and reproduced verbatim by the review UI:
// per person a header, its income items, its expense items and a subtotal,
// followed by the household totals and the validation line.
type CalculationLine struct {
	Type     LineType           `json:"type" example:"income_item"`
	Label    string             `json:"label" example:"Monatliches Nettoeinkommen"`
	Value    *ValueWithMetadata `json:"value,omitempty"`
	PersonID string             `json:"personId,omitempty"`
}

// HouseholdResult is the full household calculation.
//
// Errors and Warnings carry business conditions as user-facing German
// messages. They never prevent the result from being returned, submission
// has to stay possible even below the statutory minimum income.
type HouseholdResult struct {
	Calculations    []CalculationLine `json:"calculations"`
	Errors          []string          `json:"errors"`
	Warnings        []string          `json:"warnings"`
	TotalIncome     decimal.Decimal   `json:"totalIncome" example:"3100.00"`
	TotalExpenses   decimal.Decimal   `json:"totalExpenses" example:"450.00"`
	AvailableIncome decimal.Decimal   `json:"availableIncome" example:"2650.00"`
}
