package models

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/foerdercheck/backend/internal/checklist"
	"github.com/foerdercheck/backend/internal/extraction"
	"github.com/foerdercheck/backend/internal/reconcile"
	"github.com/google/uuid"
)

// Application is one housing subsidy application.
//
// The form data and the two derived records are opaque JSON blobs that are
// always replaced wholesale, mirroring the hosted key-value store the portal
// runs against. Two concurrent writers race last-write-wins; there is no
// versioning layer.
type Application struct {
	DefaultModel
	Reference             string          `json:"reference"`                       // External case number
	Profile               json.RawMessage `json:"profile,omitempty"`               // Household composition form data
	Financials            json.RawMessage `json:"financials,omitempty"`            // Financial form data of the main applicant
	CoApplicantFinancials json.RawMessage `json:"coApplicantFinancials,omitempty"` // Financial form data keyed by co-applicant UUID
	ExtractionStructure   json.RawMessage `json:"extractionStructure,omitempty"`   // Written by the extraction processor
	Checklist             json.RawMessage `json:"checklist,omitempty"`             // Written by the checklist generator
}

// Store reads and writes the records of an application. It implements
// reconcile.ProfileSource and extraction.StructureStore.
type Store struct{}

// Application loads one application.
func (Store) Application(ctx context.Context, id uuid.UUID) (Application, error) {
	var application Application
	err := DB.WithContext(ctx).First(&application, "id = ?", id).Error
	return application, err
}

// Profile implements reconcile.ProfileSource.
func (s Store) Profile(ctx context.Context, id uuid.UUID) (reconcile.Profile, error) {
	application, err := s.Application(ctx, id)
	if err != nil {
		return reconcile.Profile{}, err
	}

	if len(application.Profile) == 0 {
		return reconcile.Profile{}, fmt.Errorf("%w: Profildaten", reconcile.ErrMissingRecord)
	}

	var profile reconcile.Profile
	if err := json.Unmarshal(application.Profile, &profile); err != nil {
		return reconcile.Profile{}, fmt.Errorf("decoding profile data: %w", err)
	}

	return profile, nil
}

// Financials implements reconcile.ProfileSource.
func (s Store) Financials(ctx context.Context, id uuid.UUID) (reconcile.Financials, error) {
	application, err := s.Application(ctx, id)
	if err != nil {
		return reconcile.Financials{}, err
	}

	if len(application.Financials) == 0 {
		return reconcile.Financials{}, fmt.Errorf("%w: Finanzangaben", reconcile.ErrMissingRecord)
	}

	var financials reconcile.Financials
	if err := json.Unmarshal(application.Financials, &financials); err != nil {
		return reconcile.Financials{}, fmt.Errorf("decoding financial data: %w", err)
	}

	return financials, nil
}

// CoApplicantFinancials implements reconcile.ProfileSource. An application
// without co-applicants yields an empty map.
func (s Store) CoApplicantFinancials(ctx context.Context, id uuid.UUID) (map[uuid.UUID]reconcile.Financials, error) {
	application, err := s.Application(ctx, id)
	if err != nil {
		return nil, err
	}

	if len(application.CoApplicantFinancials) == 0 {
		return map[uuid.UUID]reconcile.Financials{}, nil
	}

	var financials map[uuid.UUID]reconcile.Financials
	if err := json.Unmarshal(application.CoApplicantFinancials, &financials); err != nil {
		return nil, fmt.Errorf("decoding co-applicant financial data: %w", err)
	}

	return financials, nil
}

// ExtractionStructure implements extraction.StructureStore. An application
// without uploads yields an empty structure.
func (s Store) ExtractionStructure(ctx context.Context, id uuid.UUID) (extraction.Structure, error) {
	application, err := s.Application(ctx, id)
	if err != nil {
		return nil, err
	}

	if len(application.ExtractionStructure) == 0 {
		return extraction.Structure{}, nil
	}

	var structure extraction.Structure
	if err := json.Unmarshal(application.ExtractionStructure, &structure); err != nil {
		return nil, fmt.Errorf("decoding extraction structure: %w", err)
	}

	return structure, nil
}

// SaveExtractionStructure implements extraction.StructureStore. The blob is
// replaced as a whole, never patched per file.
func (Store) SaveExtractionStructure(ctx context.Context, id uuid.UUID, structure extraction.Structure) error {
	raw, err := json.Marshal(structure)
	if err != nil {
		return err
	}

	return DB.WithContext(ctx).
		Model(&Application{}).
		Where("id = ?", id).
		Update("extraction_structure", json.RawMessage(raw)).Error
}

// ChecklistItem loads the persisted checklist item of an application.
func (s Store) ChecklistItem(ctx context.Context, id uuid.UUID) (checklist.Item, error) {
	application, err := s.Application(ctx, id)
	if err != nil {
		return checklist.Item{}, err
	}

	if len(application.Checklist) == 0 {
		return checklist.Item{}, fmt.Errorf("%w checklist item matching your query", ErrResourceNotFound)
	}

	var item checklist.Item
	if err := json.Unmarshal(application.Checklist, &item); err != nil {
		return checklist.Item{}, fmt.Errorf("decoding checklist item: %w", err)
	}

	return item, nil
}

// SaveChecklistItem replaces the persisted checklist item as a whole.
func (Store) SaveChecklistItem(ctx context.Context, id uuid.UUID, item checklist.Item) error {
	raw, err := json.Marshal(item)
	if err != nil {
		return err
	}

	return DB.WithContext(ctx).
		Model(&Application{}).
		Where("id = ?", id).
		Update("checklist", json.RawMessage(raw)).Error
}
