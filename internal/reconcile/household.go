package reconcile

import (
	"context"
	"errors"
	"fmt"

	"github.com/foerdercheck/backend/internal/extraction"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrMissingRecord marks a profile or financial record that does not exist
// for the application. The aggregator turns it into a user-facing error
// instead of failing the request.
var ErrMissingRecord = errors.New("record missing")

// ProfileSource looks up the form data of an application. Implemented by
// the models package, faked in tests.
type ProfileSource interface {
	Profile(ctx context.Context, applicationID uuid.UUID) (Profile, error)
	Financials(ctx context.Context, applicationID uuid.UUID) (Financials, error)
	CoApplicantFinancials(ctx context.Context, applicationID uuid.UUID) (map[uuid.UUID]Financials, error)
}

// Aggregator computes the household calculation of an application.
type Aggregator struct {
	profiles ProfileSource
}

func NewAggregator(profiles ProfileSource) *Aggregator {
	return &Aggregator{profiles: profiles}
}

// Minimum income policy: statutory floor of disposable monthly income as a
// step function of household size.
var (
	minimumSingle     = decimal.NewFromInt(990)
	minimumCouple     = decimal.NewFromInt(1270)
	minimumPerFurther = decimal.NewFromInt(320)
)

// MinimumMonthlyIncome returns the statutory minimum disposable income for
// the household size.
func MinimumMonthlyIncome(householdSize int) decimal.Decimal {
	switch {
	case householdSize <= 1:
		return minimumSingle
	case householdSize == 2:
		return minimumCouple
	default:
		further := decimal.NewFromInt(int64(householdSize - 2))
		return minimumCouple.Add(further.Mul(minimumPerFurther))
	}
}

// CalculateAvailableMonthlyIncome runs the person calculation for the main
// applicant and every co-applicant counted in the household and validates
// the result against the minimum income policy.
//
// Missing profile or financial records end the computation immediately with
// zero totals and an entry in Errors; no partial household result is ever
// produced. Only collaborator failures (database unreachable) are returned
// as errors.
func (a *Aggregator) CalculateAvailableMonthlyIncome(ctx context.Context, applicationID uuid.UUID, structure extraction.Structure) (*HouseholdResult, error) {
	result := &HouseholdResult{
		Calculations:    []CalculationLine{},
		Errors:          []string{},
		Warnings:        []string{},
		TotalIncome:     decimal.Zero,
		TotalExpenses:   decimal.Zero,
		AvailableIncome: decimal.Zero,
	}

	profile, err := a.profiles.Profile(ctx, applicationID)
	if err != nil {
		if errors.Is(err, ErrMissingRecord) {
			result.Errors = append(result.Errors, "Die Profildaten des Antrags wurden nicht gefunden. Die Einkommensberechnung ist nicht möglich.")
			return result, nil
		}
		return nil, err
	}

	financials, err := a.profiles.Financials(ctx, applicationID)
	if err != nil {
		if errors.Is(err, ErrMissingRecord) {
			result.Errors = append(result.Errors, "Die Finanzangaben des Antrags wurden nicht gefunden. Die Einkommensberechnung ist nicht möglich.")
			return result, nil
		}
		return nil, err
	}

	coFinancials, err := a.profiles.CoApplicantFinancials(ctx, applicationID)
	if err != nil {
		if !errors.Is(err, ErrMissingRecord) {
			return nil, err
		}
		coFinancials = map[uuid.UUID]Financials{}
	}

	if !profile.NoIncome {
		appendPerson(result, extraction.PersonMainApplicant, profile.FullName(), financials, structure)
	}

	for _, co := range profile.AdditionalApplicants {
		if co.NotHousehold || co.NoIncome {
			continue
		}

		fin, ok := coFinancials[co.ID]
		if !ok {
			result.Warnings = append(result.Warnings, fmt.Sprintf("Für %s liegen keine Finanzangaben vor. Die Person wurde nicht berücksichtigt.", co.FullName()))
			continue
		}

		appendPerson(result, co.ID.String(), co.FullName(), fin, structure)
	}

	result.AvailableIncome = result.TotalIncome.Sub(result.TotalExpenses)

	appendTotals(result)

	size := profile.HouseholdSize()
	minimum := MinimumMonthlyIncome(size)

	minimumValue := ValueWithMetadata{
		Value:    minimum,
		Source:   SourceForm,
		Editable: false,
	}
	result.Calculations = append(result.Calculations, CalculationLine{
		Type:  LineTypeValidation,
		Label: fmt.Sprintf("Mindesteinkommen bei %d Personen im Haushalt", size),
		Value: &minimumValue,
	})

	if deficit := minimum.Sub(result.AvailableIncome); deficit.IsPositive() {
		result.Errors = append(result.Errors, ShortfallMessage(deficit))
	}

	return result, nil
}

// appendPerson emits the header, item and subtotal lines of one person and
// adds their sums to the household totals.
func appendPerson(result *HouseholdResult, personID, name string, financials Financials, structure extraction.Structure) {
	result.Calculations = append(result.Calculations, CalculationLine{
		Type:     LineTypePersonHeader,
		Label:    name,
		PersonID: personID,
	})

	calc := CalculatePersonIncome(personID, financials, structure.ByPerson(personID))

	result.Calculations = append(result.Calculations, calc.IncomeLines...)
	result.Calculations = append(result.Calculations, calc.ExpenseLines...)

	subtotal := ValueWithMetadata{
		Value:    calc.Income.Sub(calc.Expenses),
		Source:   SourceForm,
		Editable: false,
	}
	result.Calculations = append(result.Calculations, CalculationLine{
		Type:     LineTypeSubtotal,
		Label:    fmt.Sprintf("Verfügbares Einkommen %s", name),
		Value:    &subtotal,
		PersonID: personID,
	})

	result.TotalIncome = result.TotalIncome.Add(calc.Income)
	result.TotalExpenses = result.TotalExpenses.Add(calc.Expenses)
}

// appendTotals emits the three household total lines.
func appendTotals(result *HouseholdResult) {
	for _, total := range []struct {
		label string
		value decimal.Decimal
	}{
		{"Gesamteinkommen", result.TotalIncome},
		{"Gesamtausgaben", result.TotalExpenses},
		{"Verfügbares Monatseinkommen", result.AvailableIncome},
	} {
		value := ValueWithMetadata{
			Value:    total.value,
			Source:   SourceForm,
			Editable: false,
		}
		result.Calculations = append(result.Calculations, CalculationLine{
			Type:  LineTypeTotal,
			Label: total.label,
			Value: &value,
		})
	}
}
