package extraction

// backendDocumentTypes maps the portal document type ids to the type hints
// the document AI service expects.
var backendDocumentTypes = map[string]string{
	"lohn_gehaltsbescheinigungen":  "lohn_gehaltsbescheinigung",
	"rentenbescheid":               "rentenbescheid",
	"arbeitslosengeldbescheid":     "arbeitslosengeldbescheid",
	"werbungskosten_nachweis":      "werbungskosten_nachweis",
	"guv_euer_nachweis":            "guv_euer",
	"unterhaltsnachweis":           "unterhaltsnachweis",
	"krankengeld_nachweis":         "krankengeldbescheid",
	"elterngeldbescheid":           "elterngeldbescheid",
}

// BackendDocumentType returns the document AI type hint for a portal
// document type. Unknown types are passed through unchanged.
func BackendDocumentType(docType string) string {
	if mapped, ok := backendDocumentTypes[docType]; ok {
		return mapped
	}
	return docType
}

// The generic keys of the document AI output.
const (
	genericNetValue    = "net_value"
	genericGrossValue  = "gross_value"
	genericAmount      = "amount"
	genericYear        = "year"
	genericMonth       = "month"
	genericIsMonthly   = "isMonthly"
	genericConfidence  = "confidence"
	genericIsRecurring = "isRecurring"
)

// fieldMapping binds one semantic field id to the generic output key that
// feeds it and the figure kind its ValueRecord uses.
type fieldMapping struct {
	generic string
	kind    FigureKind
}

// fieldMappings is the fixed table translating the generic document AI
// output to the semantic field ids of each document type. Every entry of a
// document type's relevantValues must appear here, otherwise the processor
// writes an empty amount record for it.
var fieldMappings = map[string]map[string]fieldMapping{
	"lohn_gehaltsbescheinigungen": {
		"monthly_net_salary":    {genericNetValue, KindNet},
		"weihnachtsgeld_annual": {genericGrossValue, KindGross},
		"urlaubsgeld_annual":    {genericGrossValue, KindGross},
	},
	"rentenbescheid": {
		"monthly_pension": {genericNetValue, KindNet},
	},
	"arbeitslosengeldbescheid": {
		"monthly_unemployment_benefit": {genericAmount, KindAmount},
	},
	"werbungskosten_nachweis": {
		"monthly_werbungskosten": {genericAmount, KindAmount},
	},
	"guv_euer_nachweis": {
		"monthly_business_income": {genericAmount, KindAmount},
	},
	"unterhaltsnachweis": {
		"monthly_maintenance_income": {genericAmount, KindAmount},
	},
	"krankengeld_nachweis": {
		"monthly_sickness_benefit": {genericAmount, KindAmount},
	},
	"elterngeldbescheid": {
		"monthly_elterngeld": {genericAmount, KindAmount},
	},
}

// mappingFor returns the field mapping of a relevant value within a document
// type. Fields without a mapping fall back to a generic amount lookup under
// their own id, so new relevant values degrade gracefully instead of being
// dropped.
func mappingFor(docType, fieldID string) fieldMapping {
	if byField, ok := fieldMappings[docType]; ok {
		if m, ok := byField[fieldID]; ok {
			return m
		}
	}
	return fieldMapping{generic: fieldID, kind: KindAmount}
}
