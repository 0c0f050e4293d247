// Package checklist turns a household calculation into the persisted,
// reviewable summary shown in the case worker dashboard.
package checklist

import (
	"errors"
	"time"

	"github.com/foerdercheck/backend/internal/reconcile"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

var (
	ErrLineOutOfRange  = errors.New("there is no calculation line with this index")
	ErrLineNotEditable = errors.New("this calculation line cannot be edited")
)

// Item is the persisted review object for the income calculation. It is an
// editable snapshot: reviewers may replace the value of any editable line,
// after which all derived lines are recomputed from scratch.
type Item struct {
	Calculations    []reconcile.CalculationLine `json:"calculations"`
	TotalIncome     decimal.Decimal             `json:"totalIncome"`
	TotalExpenses   decimal.Decimal             `json:"totalExpenses"`
	AvailableIncome decimal.Decimal             `json:"availableIncome"`
	Errors          []string                    `json:"errors"`
	Warnings        []string                    `json:"warnings"`
	SystemPassed    bool                        `json:"systemPassed"`
	LinkedDocuments []string                    `json:"linkedDocuments"`
	GeneratedAt     time.Time                   `json:"generatedAt"`
}

// Generate wraps a household calculation into a checklist item.
func Generate(result *reconcile.HouseholdResult) Item {
	return Item{
		Calculations:    cloneLines(result.Calculations),
		TotalIncome:     result.TotalIncome,
		TotalExpenses:   result.TotalExpenses,
		AvailableIncome: result.AvailableIncome,
		Errors:          slices.Clone(result.Errors),
		Warnings:        slices.Clone(result.Warnings),
		SystemPassed:    len(result.Errors) == 0,
		LinkedDocuments: linkedDocuments(result.Calculations),
		GeneratedAt:     time.Now().In(time.UTC),
	}
}

// Edit replaces the value of one editable line with a reviewer override and
// recomputes every subtotal and total before returning the updated item.
// The input item is left untouched.
func (i Item) Edit(index int, value decimal.Decimal) (Item, error) {
	if index < 0 || index >= len(i.Calculations) {
		return Item{}, ErrLineOutOfRange
	}

	line := i.Calculations[index]
	if line.Value == nil || !line.Value.Editable {
		return Item{}, ErrLineNotEditable
	}

	updated := i
	updated.Calculations = cloneLines(i.Calculations)
	updated.Errors = slices.Clone(i.Errors)
	updated.Warnings = slices.Clone(i.Warnings)

	edited := updated.Calculations[index].Value
	edited.Value = value
	edited.Source = reconcile.SourceManual
	edited.Confidence = nil

	updated.recompute()
	return updated, nil
}

// recompute rebuilds every subtotal, the three household totals and the
// minimum income validation from the leaf lines in a single pass. Derived
// lines are never updated incrementally; a stale subtotal next to fresh
// totals must be impossible.
func (i *Item) recompute() {
	personIncome := decimal.Zero
	personExpenses := decimal.Zero

	totalIncome := decimal.Zero
	totalExpenses := decimal.Zero

	minimum := decimal.Zero
	totalsSeen := 0

	for idx := range i.Calculations {
		line := &i.Calculations[idx]

		switch line.Type {
		case reconcile.LineTypePersonHeader:
			personIncome = decimal.Zero
			personExpenses = decimal.Zero

		case reconcile.LineTypeIncomeItem:
			personIncome = personIncome.Add(line.Value.Value)
			totalIncome = totalIncome.Add(line.Value.Value)

		case reconcile.LineTypeExpenseItem:
			personExpenses = personExpenses.Add(line.Value.Value)
			totalExpenses = totalExpenses.Add(line.Value.Value)

		case reconcile.LineTypeSubtotal:
			line.Value.Value = personIncome.Sub(personExpenses)

		case reconcile.LineTypeTotal:
			// The three total lines appear in fixed order: income,
			// expenses, available.
			switch totalsSeen {
			case 0:
				line.Value.Value = totalIncome
			case 1:
				line.Value.Value = totalExpenses
			default:
				line.Value.Value = totalIncome.Sub(totalExpenses)
			}
			totalsSeen++

		case reconcile.LineTypeValidation:
			// The minimum is a function of household size only and is
			// unaffected by value edits.
			minimum = line.Value.Value
		}
	}

	i.TotalIncome = totalIncome
	i.TotalExpenses = totalExpenses
	i.AvailableIncome = totalIncome.Sub(totalExpenses)

	errs := i.Errors[:0:0]
	for _, e := range i.Errors {
		if !reconcile.IsShortfallMessage(e) {
			errs = append(errs, e)
		}
	}
	if deficit := minimum.Sub(i.AvailableIncome); deficit.IsPositive() {
		errs = append(errs, reconcile.ShortfallMessage(deficit))
	}

	i.Errors = errs
	if i.Errors == nil {
		i.Errors = []string{}
	}
	i.SystemPassed = len(i.Errors) == 0
}

// linkedDocuments collects the union of all document ids referenced by any
// line, for cross-linking in the dashboard.
func linkedDocuments(lines []reconcile.CalculationLine) []string {
	seen := map[string]bool{}
	var ids []string

	for _, line := range lines {
		if line.Value == nil {
			continue
		}

		for _, id := range line.Value.DocumentIDs {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}

	slices.Sort(ids)
	if ids == nil {
		ids = []string{}
	}
	return ids
}

func cloneLines(lines []reconcile.CalculationLine) []reconcile.CalculationLine {
	cloned := make([]reconcile.CalculationLine, len(lines))
	for idx, line := range lines {
		cloned[idx] = line
		if line.Value != nil {
			value := *line.Value
			value.DocumentIDs = slices.Clone(line.Value.DocumentIDs)
			cloned[idx].Value = &value
		}
	}
	return cloned
}
