package reconcile

import (
	"strings"

	"github.com/google/uuid"
)

// Profile is the household composition of an application as entered in the
// personal data forms.
type Profile struct {
	FirstName            string                `json:"firstName"`
	LastName             string                `json:"lastName"`
	AdultCount           int                   `json:"adultCount"`
	ChildCount           int                   `json:"childCount"`
	NoIncome             bool                  `json:"noIncome"`
	AdditionalApplicants []AdditionalApplicant `json:"additionalApplicants"`
}

// AdditionalApplicant is a co-applicant of the main applicant. Someone
// flagged NotHousehold or NoIncome contributes nothing to the calculation.
type AdditionalApplicant struct {
	ID           uuid.UUID `json:"id"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	NotHousehold bool      `json:"notHousehold"`
	NoIncome     bool      `json:"noIncome"`
}

// HouseholdSize is the number of persons the minimum income policy counts.
func (p Profile) HouseholdSize() int {
	size := p.AdultCount + p.ChildCount
	if size < 1 {
		size = 1
	}
	return size
}

// FullName returns the display name of the main applicant.
func (p Profile) FullName() string {
	return joinName(p.FirstName, p.LastName)
}

// FullName returns the display name of the co-applicant.
func (a AdditionalApplicant) FullName() string {
	return joinName(a.FirstName, a.LastName)
}

func joinName(first, last string) string {
	return strings.TrimSpace(strings.TrimSpace(first) + " " + strings.TrimSpace(last))
}

// ListEntry is one entry of a list-valued form field, e.g. a single loan.
// Amounts are kept in the raw form encoding and parsed with ParseCurrency.
type ListEntry struct {
	Description string `json:"description"`
	Amount      string `json:"amount"`
}

// Financials is the manually entered financial form data of one person.
// Every category has a presence flag; amounts are raw form strings.
type Financials struct {
	HasSalaryIncome      bool   `json:"hasSalaryIncome"`
	MonthlyNetSalary     string `json:"monthlyNetSalary"`
	HasWeihnachtsgeld    bool   `json:"hasWeihnachtsgeld"`
	WeihnachtsgeldAnnual string `json:"weihnachtsgeldAnnual"`
	HasUrlaubsgeld       bool   `json:"hasUrlaubsgeld"`
	UrlaubsgeldAnnual    string `json:"urlaubsgeldAnnual"`

	HasPensionIncome bool   `json:"hasPensionIncome"`
	MonthlyPension   string `json:"monthlyPension"`

	HasUnemploymentBenefit     bool   `json:"hasUnemploymentBenefit"`
	MonthlyUnemploymentBenefit string `json:"monthlyUnemploymentBenefit"`

	HasSicknessBenefit     bool   `json:"hasSicknessBenefit"`
	MonthlySicknessBenefit string `json:"monthlySicknessBenefit"`

	HasBusinessIncome     bool   `json:"hasBusinessIncome"`
	MonthlyBusinessIncome string `json:"monthlyBusinessIncome"`

	HasRentIncome     bool   `json:"hasRentIncome"`
	MonthlyRentIncome string `json:"monthlyRentIncome"`

	HasKindergeld     bool   `json:"hasKindergeld"`
	MonthlyKindergeld string `json:"monthlyKindergeld"`

	HasElterngeld     bool   `json:"hasElterngeld"`
	MonthlyElterngeld string `json:"monthlyElterngeld"`

	HasMaintenanceIncome     bool   `json:"hasMaintenanceIncome"`
	MonthlyMaintenanceIncome string `json:"monthlyMaintenanceIncome"`

	HasOtherIncome     bool   `json:"hasOtherIncome"`
	MonthlyOtherIncome string `json:"monthlyOtherIncome"`

	HasTaxes     bool   `json:"hasTaxes"`
	MonthlyTaxes string `json:"monthlyTaxes"`

	HasKrankenversicherung     bool   `json:"hasKrankenversicherung"`
	MonthlyKrankenversicherung string `json:"monthlyKrankenversicherung"`

	HasRentenversicherung     bool   `json:"hasRentenversicherung"`
	MonthlyRentenversicherung string `json:"monthlyRentenversicherung"`

	HasWerbungskosten     bool   `json:"hasWerbungskosten"`
	MonthlyWerbungskosten string `json:"monthlyWerbungskosten"`

	HasKinderbetreuungskosten     bool   `json:"hasKinderbetreuungskosten"`
	MonthlyKinderbetreuungskosten string `json:"monthlyKinderbetreuungskosten"`

	HasLoans bool        `json:"hasLoans"`
	Loans    []ListEntry `json:"loans"`

	HasMaintenancePayments bool        `json:"hasMaintenancePayments"`
	MaintenancePayments    []ListEntry `json:"maintenancePayments"`
}
