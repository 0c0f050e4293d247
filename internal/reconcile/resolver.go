package reconcile

import (
	"strings"

	"github.com/foerdercheck/backend/internal/extraction"
	"github.com/ryanuber/go-glob"
)

// Field id patterns deciding which figure of a ValueRecord a field reads.
// Salary-like fields read net figures, annual bonus fields gross figures,
// everything else the generic amount. The generic amount is always the
// fallback figure.
var (
	netFirstPatterns   = []string{"*salary*", "*gehalt*", "*lohn*", "*pension*", "*rente*"}
	grossFirstPatterns = []string{"*weihnachtsgeld*", "*urlaubsgeld*"}
)

// acceptedKinds returns the figure kinds a field accepts, in preference
// order.
func acceptedKinds(fieldID string) []extraction.FigureKind {
	lower := strings.ToLower(fieldID)

	for _, pattern := range grossFirstPatterns {
		if glob.Glob(pattern, lower) {
			return []extraction.FigureKind{extraction.KindGross, extraction.KindAmount}
		}
	}

	for _, pattern := range netFirstPatterns {
		if glob.Glob(pattern, lower) {
			return []extraction.FigureKind{extraction.KindNet, extraction.KindAmount}
		}
	}

	return []extraction.FigureKind{extraction.KindAmount}
}

// documentIDPrefix returns the prefix documents of a person are referenced
// by in the review UI.
func documentIDPrefix(personID string) string {
	if personID == extraction.PersonMainApplicant {
		return "applicant"
	}
	return "applicant_" + personID
}

// ResolveValue resolves one financial field of one person to a value with
// provenance.
//
// Document types and their files are walked in stable sorted order; the
// first file whose record yields a strictly positive figure wins. There is
// no averaging and no recency or confidence tie-break across files of the
// same type. When no positive extracted figure exists anywhere in the
// subtree, the form value is used.
func ResolveValue(fieldID, formValue, personID string, docs extraction.PersonDocuments) ValueWithMetadata {
	kinds := acceptedKinds(fieldID)

	for _, docType := range docs.DocumentTypes() {
		group := docs[docType]

		for _, fileName := range group.FileNames() {
			file := group.Files[fileName]

			record, ok := file.Values[fieldID]
			if !ok {
				continue
			}

			if !kindAccepted(kinds, record.Kind) {
				continue
			}

			value := ParseCurrency(record.Figure)
			if !value.IsPositive() {
				continue
			}

			resolved := ValueWithMetadata{
				Value:       value,
				Source:      SourceExtracted,
				DocumentIDs: []string{documentIDPrefix(personID) + "_" + docType + "_0"},
				Editable:    true,
			}
			if confidence, ok := file.ParsedConfidence(); ok {
				resolved.Confidence = &confidence
			}

			return resolved
		}
	}

	return ValueWithMetadata{
		Value:    ParseCurrency(formValue),
		Source:   SourceForm,
		Editable: true,
	}
}

func kindAccepted(kinds []extraction.FigureKind, kind extraction.FigureKind) bool {
	for _, k := range kinds {
		if k == kind {
			return true
		}
	}
	return false
}
