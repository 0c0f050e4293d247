package reconcile

import (
	"github.com/foerdercheck/backend/internal/extraction"
	"github.com/shopspring/decimal"
)

var twelve = decimal.NewFromInt(12)

// categoryDef is one entry of the fixed income/expense catalogue. A category
// appears in the output only when its presence flag in the form data is set.
//
// List-valued categories (entries set) are pre-summed from the form and not
// resolved through extraction. Annual categories are converted to a monthly
// figure by dividing by twelve.
type categoryDef struct {
	fieldID   string
	label     string
	lineType  LineType
	enabled   func(Financials) bool
	formValue func(Financials) string
	entries   func(Financials) []ListEntry
	annual    bool
}

// catalogue is the fixed, ordered category walk of the person calculation.
// The order is the display order of the review UI.
var catalogue = []categoryDef{
	{
		fieldID:   "monthly_net_salary",
		label:     "Monatliches Nettoeinkommen aus Erwerbstätigkeit",
		lineType:  LineTypeIncomeItem,
		enabled:   func(f Financials) bool { return f.HasSalaryIncome },
		formValue: func(f Financials) string { return f.MonthlyNetSalary },
	},
	{
		fieldID:   "weihnachtsgeld_annual",
		label:     "Weihnachtsgeld (monatlicher Anteil)",
		lineType:  LineTypeIncomeItem,
		enabled:   func(f Financials) bool { return f.HasWeihnachtsgeld },
		formValue: func(f Financials) string { return f.WeihnachtsgeldAnnual },
		annual:    true,
	},
	{
		fieldID:   "urlaubsgeld_annual",
		label:     "Urlaubsgeld (monatlicher Anteil)",
		lineType:  LineTypeIncomeItem,
		enabled:   func(f Financials) bool { return f.HasUrlaubsgeld },
		formValue: func(f Financials) string { return f.UrlaubsgeldAnnual },
		annual:    true,
	},
	{
		fieldID:   "monthly_pension",
		label:     "Rente / Pension",
		lineType:  LineTypeIncomeItem,
		enabled:   func(f Financials) bool { return f.HasPensionIncome },
		formValue: func(f Financials) string { return f.MonthlyPension },
	},
	{
		fieldID:   "monthly_unemployment_benefit",
		label:     "Arbeitslosengeld",
		lineType:  LineTypeIncomeItem,
		enabled:   func(f Financials) bool { return f.HasUnemploymentBenefit },
		formValue: func(f Financials) string { return f.MonthlyUnemploymentBenefit },
	},
	{
		fieldID:   "monthly_sickness_benefit",
		label:     "Krankengeld",
		lineType:  LineTypeIncomeItem,
		enabled:   func(f Financials) bool { return f.HasSicknessBenefit },
		formValue: func(f Financials) string { return f.MonthlySicknessBenefit },
	},
	{
		fieldID:   "monthly_business_income",
		label:     "Einkünfte aus selbstständiger Tätigkeit",
		lineType:  LineTypeIncomeItem,
		enabled:   func(f Financials) bool { return f.HasBusinessIncome },
		formValue: func(f Financials) string { return f.MonthlyBusinessIncome },
	},
	{
		fieldID:   "monthly_rent_income",
		label:     "Einkünfte aus Vermietung und Verpachtung",
		lineType:  LineTypeIncomeItem,
		enabled:   func(f Financials) bool { return f.HasRentIncome },
		formValue: func(f Financials) string { return f.MonthlyRentIncome },
	},
	{
		fieldID:   "monthly_kindergeld",
		label:     "Kindergeld",
		lineType:  LineTypeIncomeItem,
		enabled:   func(f Financials) bool { return f.HasKindergeld },
		formValue: func(f Financials) string { return f.MonthlyKindergeld },
	},
	{
		fieldID:   "monthly_elterngeld",
		label:     "Elterngeld",
		lineType:  LineTypeIncomeItem,
		enabled:   func(f Financials) bool { return f.HasElterngeld },
		formValue: func(f Financials) string { return f.MonthlyElterngeld },
	},
	{
		fieldID:   "monthly_maintenance_income",
		label:     "Erhaltene Unterhaltszahlungen",
		lineType:  LineTypeIncomeItem,
		enabled:   func(f Financials) bool { return f.HasMaintenanceIncome },
		formValue: func(f Financials) string { return f.MonthlyMaintenanceIncome },
	},
	{
		fieldID:   "monthly_other_income",
		label:     "Sonstige Einkünfte",
		lineType:  LineTypeIncomeItem,
		enabled:   func(f Financials) bool { return f.HasOtherIncome },
		formValue: func(f Financials) string { return f.MonthlyOtherIncome },
	},
	{
		fieldID:   "monthly_taxes",
		label:     "Steuern",
		lineType:  LineTypeExpenseItem,
		enabled:   func(f Financials) bool { return f.HasTaxes },
		formValue: func(f Financials) string { return f.MonthlyTaxes },
	},
	{
		fieldID:   "monthly_krankenversicherung",
		label:     "Kranken- und Pflegeversicherung",
		lineType:  LineTypeExpenseItem,
		enabled:   func(f Financials) bool { return f.HasKrankenversicherung },
		formValue: func(f Financials) string { return f.MonthlyKrankenversicherung },
	},
	{
		fieldID:   "monthly_rentenversicherung",
		label:     "Rentenversicherung",
		lineType:  LineTypeExpenseItem,
		enabled:   func(f Financials) bool { return f.HasRentenversicherung },
		formValue: func(f Financials) string { return f.MonthlyRentenversicherung },
	},
	{
		fieldID:   "monthly_werbungskosten",
		label:     "Werbungskosten",
		lineType:  LineTypeExpenseItem,
		enabled:   func(f Financials) bool { return f.HasWerbungskosten },
		formValue: func(f Financials) string { return f.MonthlyWerbungskosten },
	},
	{
		fieldID:  "monthly_kinderbetreuungskosten",
		label:    "Kinderbetreuungskosten",
		lineType: LineTypeExpenseItem,
		enabled:  func(f Financials) bool { return f.HasKinderbetreuungskosten },
		formValue: func(f Financials) string {
			return f.MonthlyKinderbetreuungskosten
		},
	},
	{
		fieldID:  "loans",
		label:    "Kreditraten",
		lineType: LineTypeExpenseItem,
		enabled:  func(f Financials) bool { return f.HasLoans },
		entries:  func(f Financials) []ListEntry { return f.Loans },
	},
	{
		fieldID:  "maintenance_payments",
		label:    "Unterhaltsverpflichtungen",
		lineType: LineTypeExpenseItem,
		enabled:  func(f Financials) bool { return f.HasMaintenancePayments },
		entries:  func(f Financials) []ListEntry { return f.MaintenancePayments },
	},
}

// PersonCalculation is the outcome of the category walk for one person.
type PersonCalculation struct {
	Income       decimal.Decimal
	Expenses     decimal.Decimal
	IncomeLines  []CalculationLine
	ExpenseLines []CalculationLine
}

// CalculatePersonIncome walks the category catalogue for one household
// member, resolving every enabled category through ResolveValue against the
// person's extraction subtree.
func CalculatePersonIncome(personID string, financials Financials, docs extraction.PersonDocuments) PersonCalculation {
	calc := PersonCalculation{
		Income:   decimal.Zero,
		Expenses: decimal.Zero,
	}

	for _, category := range catalogue {
		if !category.enabled(financials) {
			continue
		}

		var value ValueWithMetadata
		if category.entries != nil {
			// List categories are summed straight from the form, they
			// are not backed by extraction yet.
			sum := decimal.Zero
			for _, entry := range category.entries(financials) {
				sum = sum.Add(ParseCurrency(entry.Amount))
			}

			value = ValueWithMetadata{
				Value:    sum,
				Source:   SourceForm,
				Editable: true,
			}
		} else {
			value = ResolveValue(category.fieldID, category.formValue(financials), personID, docs)

			// Annual figures are divided by twelve regardless of
			// provenance. Whether extracted annual figures should be
			// exempt is unconfirmed, the behavior is kept as is.
			if category.annual {
				value.Value = value.Value.Div(twelve)
			}
		}

		line := CalculationLine{
			Type:     category.lineType,
			Label:    category.label,
			Value:    &value,
			PersonID: personID,
		}

		if category.lineType == LineTypeIncomeItem {
			calc.Income = calc.Income.Add(value.Value)
			calc.IncomeLines = append(calc.IncomeLines, line)
		} else {
			calc.Expenses = calc.Expenses.Add(value.Value)
			calc.ExpenseLines = append(calc.ExpenseLines, line)
		}
	}

	return calc
}
