// Package extraction holds the per-person, per-document extraction structure
// that the document AI pipeline fills and the reconciliation engine reads.
package extraction

import (
	"encoding/json"
	"strconv"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// PersonMainApplicant is the structure key for the main applicant. All other
// person keys are co-applicant UUIDs.
const PersonMainApplicant = "main_applicant"

// Structure is the persisted extraction tree for one application,
// keyed by person.
type Structure map[string]PersonDocuments

// PersonDocuments holds all document groups of one person, keyed by the
// portal document type id.
type PersonDocuments map[string]DocumentGroup

// The structural keys of a document group. Everything else on that JSON
// level is a file name.
const (
	keyNumberOfFiles      = "numberOfFiles"
	keyRelevantValues     = "relevantValues"
	keyExtractionComplete = "extractionComplete"
)

// DocumentGroup is one document type of one person: its bookkeeping fields
// plus one entry per uploaded file.
//
// On the wire the file entries are siblings of the bookkeeping fields, so the
// group needs custom JSON handling to keep the two apart.
type DocumentGroup struct {
	NumberOfFiles      int
	RelevantValues     []string
	ExtractionComplete bool
	Files              map[string]FileData
}

// MarshalJSON implements the json.Marshaler interface.
func (g DocumentGroup) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(g.Files)+3)

	out[keyNumberOfFiles] = g.NumberOfFiles
	out[keyRelevantValues] = g.RelevantValues
	out[keyExtractionComplete] = g.ExtractionComplete

	for name, file := range g.Files {
		out[name] = file
	}

	return json.Marshal(out)
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (g *DocumentGroup) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if v, ok := raw[keyNumberOfFiles]; ok {
		if err := json.Unmarshal(v, &g.NumberOfFiles); err != nil {
			return err
		}
	}

	if v, ok := raw[keyRelevantValues]; ok {
		if err := json.Unmarshal(v, &g.RelevantValues); err != nil {
			return err
		}
	}

	if v, ok := raw[keyExtractionComplete]; ok {
		if err := json.Unmarshal(v, &g.ExtractionComplete); err != nil {
			return err
		}
	}

	g.Files = make(map[string]FileData)
	for key, v := range raw {
		if key == keyNumberOfFiles || key == keyRelevantValues || key == keyExtractionComplete {
			continue
		}

		var file FileData
		if err := json.Unmarshal(v, &file); err != nil {
			return err
		}
		g.Files[key] = file
	}

	return nil
}

// FileNames returns the file names of the group in stable, sorted order.
func (g DocumentGroup) FileNames() []string {
	names := maps.Keys(g.Files)
	slices.Sort(names)
	return names
}

// The metadata keys of a file entry. Everything else on that JSON level is a
// field id carrying a ValueRecord.
const (
	keyFilePath   = "filePath"
	keyConfidence = "confidence"
	keyMethodUsed = "methodUsed"
	keyUploadedAt = "uploadedAt"
)

// FileData is the extraction state of one uploaded file: where it lives, how
// it was processed, and one ValueRecord per extracted field.
type FileData struct {
	FilePath   string
	Confidence string
	MethodUsed string
	UploadedAt string
	Values     map[string]ValueRecord
}

// MarshalJSON implements the json.Marshaler interface.
func (f FileData) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(f.Values)+4)

	out[keyFilePath] = f.FilePath
	out[keyConfidence] = f.Confidence
	out[keyMethodUsed] = f.MethodUsed
	out[keyUploadedAt] = f.UploadedAt

	for fieldID, record := range f.Values {
		out[fieldID] = record
	}

	return json.Marshal(out)
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (f *FileData) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	meta := map[string]*string{
		keyFilePath:   &f.FilePath,
		keyConfidence: &f.Confidence,
		keyMethodUsed: &f.MethodUsed,
		keyUploadedAt: &f.UploadedAt,
	}

	f.Values = make(map[string]ValueRecord)
	for key, v := range raw {
		if target, ok := meta[key]; ok {
			*target = flexibleString(v)
			continue
		}

		var record ValueRecord
		if err := json.Unmarshal(v, &record); err != nil {
			return err
		}
		f.Values[key] = record
	}

	return nil
}

// ParsedConfidence returns the file confidence as a float, reporting
// whether it could be parsed.
func (f FileData) ParsedConfidence() (float64, bool) {
	c, err := strconv.ParseFloat(strings.TrimSpace(f.Confidence), 64)
	if err != nil {
		return 0, false
	}
	return c, true
}

// ByPerson returns the document groups of one person. A missing person is a
// valid, empty subtree.
func (s Structure) ByPerson(personID string) PersonDocuments {
	return s[personID]
}

// DocumentTypes returns the document type ids of the person in stable,
// sorted order.
func (d PersonDocuments) DocumentTypes() []string {
	types := maps.Keys(d)
	slices.Sort(types)
	return types
}

// flexibleString reads a raw JSON scalar as a string, accepting both string
// and numeric encodings. The extraction pipeline is not consistent here.
func flexibleString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}

	return ""
}
