package extraction

import (
	"encoding/json"
)

// FigureKind names the concrete figure a ValueRecord carries. Which kind a
// field uses is fixed by the field's semantics: salaries store net figures,
// annual bonuses gross figures, generic amounts everything else.
type FigureKind string

const (
	KindNet    FigureKind = "net"
	KindGross  FigureKind = "gross"
	KindAmount FigureKind = "amount"
)

// figureKey returns the JSON key for the kind.
func (k FigureKind) figureKey() string {
	switch k {
	case KindNet:
		return "netValue"
	case KindGross:
		return "grossValue"
	default:
		return "amount"
	}
}

// ValueRecord is one extracted field value inside a file entry.
//
// It is a tagged variant: exactly one of the figure keys "netValue",
// "grossValue" and "amount" is present, selected by Kind, plus shared
// metadata. An empty Figure with the key still present means the pipeline
// checked the document and found nothing, which is different from the field
// never having been extracted at all.
type ValueRecord struct {
	Kind        FigureKind
	Figure      string
	Year        string
	Month       string
	IsMonthly   *bool
	Confidence  string
	IsRecurring *bool
}

// NewEmptyRecord returns the "checked, not found" marker for a field of the
// given kind. All fields are blank, but the figure key is emitted so the
// record keeps the expected shape.
func NewEmptyRecord(kind FigureKind) ValueRecord {
	return ValueRecord{Kind: kind}
}

// MarshalJSON implements the json.Marshaler interface.
func (r ValueRecord) MarshalJSON() ([]byte, error) {
	kind := r.Kind
	if kind == "" {
		kind = KindAmount
	}

	out := map[string]any{
		kind.figureKey(): r.Figure,
		"year":           r.Year,
		"month":          r.Month,
		"confidence":     r.Confidence,
	}

	if r.IsMonthly != nil {
		out["isMonthly"] = *r.IsMonthly
	}
	if r.IsRecurring != nil {
		out["isRecurring"] = *r.IsRecurring
	}

	return json.Marshal(out)
}

// UnmarshalJSON implements the json.Unmarshaler interface. When a record
// carries more than one figure key, net wins over gross over amount.
func (r *ValueRecord) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	r.Kind = ""
	for _, kind := range []FigureKind{KindNet, KindGross, KindAmount} {
		if v, ok := raw[kind.figureKey()]; ok {
			r.Kind = kind
			r.Figure = flexibleString(v)
			break
		}
	}
	if r.Kind == "" {
		r.Kind = KindAmount
	}

	if v, ok := raw["year"]; ok {
		r.Year = flexibleString(v)
	}
	if v, ok := raw["month"]; ok {
		r.Month = flexibleString(v)
	}
	if v, ok := raw["confidence"]; ok {
		r.Confidence = flexibleString(v)
	}

	for key, target := range map[string]**bool{"isMonthly": &r.IsMonthly, "isRecurring": &r.IsRecurring} {
		if v, ok := raw[key]; ok {
			var b bool
			if err := json.Unmarshal(v, &b); err == nil {
				*target = &b
			}
		}
	}

	return nil
}
