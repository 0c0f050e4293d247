package extraction

import (
	"context"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds the number of document AI calls in flight. The
// service is rate and latency bound, one call per file would overwhelm it.
const DefaultConcurrency = 4

var filesProcessed = prometheus.NewCounter(prometheus.CounterOpts{
	Name: "extraction_files_processed_total",
	Help: "Number of files successfully processed by the document AI pipeline.",
})

var fileErrors = prometheus.NewCounter(prometheus.CounterOpts{
	Name: "extraction_file_errors_total",
	Help: "Number of files whose document AI extraction failed.",
})

// Metrics returns the collectors of the extraction engine for registration
// with the Prometheus registry.
func Metrics() []prometheus.Collector {
	return []prometheus.Collector{filesProcessed, fileErrors}
}

// StructureStore persists the extraction structure of an application. The
// structure is always replaced wholesale, never patched per file.
type StructureStore interface {
	ExtractionStructure(ctx context.Context, applicationID uuid.UUID) (Structure, error)
	SaveExtractionStructure(ctx context.Context, applicationID uuid.UUID, s Structure) error
}

// Result is the outcome of one batch run over an application's documents.
// Per-file failures are collected in Errors and never abort the batch.
type Result struct {
	Success          bool      `json:"success"`
	ProcessedFiles   int       `json:"processedFiles"`
	TotalFiles       int       `json:"totalFiles"`
	Errors           []string  `json:"errors"`
	UpdatedStructure Structure `json:"updatedStructure"`
}

// Processor drives the document AI client over every uploaded file of an
// application and writes the updated structure back.
type Processor struct {
	client Client
	store  StructureStore
	limit  int
}

// NewProcessor returns a Processor. A limit below 1 falls back to
// DefaultConcurrency.
func NewProcessor(client Client, store StructureStore, limit int) *Processor {
	if limit < 1 {
		limit = DefaultConcurrency
	}

	return &Processor{
		client: client,
		store:  store,
		limit:  limit,
	}
}

// fileJob identifies one file to extract.
type fileJob struct {
	personID string
	docType  string
	fileName string
	filePath string
}

// fileResult is the document AI outcome for one fileJob.
type fileResult struct {
	outcome Outcome
	err     error
}

// Process runs the document AI extraction over every file of the
// application and persists the updated structure as one full replacement.
//
// The run is idempotent: re-processing unchanged uploads reproduces the same
// structure byte for byte.
func (p *Processor) Process(ctx context.Context, applicationID uuid.UUID) (*Result, error) {
	structure, err := p.store.ExtractionStructure(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	jobs := collectJobs(structure)

	result := &Result{
		TotalFiles: len(jobs),
		Errors:     []string{},
	}

	// Extraction calls run concurrently, results are applied sequentially
	// afterwards so that the structure update stays deterministic.
	results := make([]fileResult, len(jobs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.limit)
	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			outcome, err := p.client.Extract(gctx, job.filePath, BackendDocumentType(job.docType))
			results[i] = fileResult{outcome: outcome, err: err}
			return nil
		})
	}
	_ = g.Wait()

	for i, job := range jobs {
		group := structure[job.personID][job.docType]
		file := group.Files[job.fileName]

		res := results[i]
		if res.err != nil || !res.outcome.Success {
			fileErrors.Inc()
			result.Errors = append(result.Errors, extractionError(job, res))
			log.Warn().
				Str("applicationID", applicationID.String()).
				Str("documentType", job.docType).
				Str("file", job.fileName).
				Msg("document extraction failed")
			continue
		}

		applyOutcome(&file, group.RelevantValues, job.docType, res.outcome)
		group.Files[job.fileName] = file
		structure[job.personID][job.docType] = group

		filesProcessed.Inc()
		result.ProcessedFiles++
	}

	markCompleteGroups(structure)

	if err := p.store.SaveExtractionStructure(ctx, applicationID, structure); err != nil {
		return nil, err
	}

	result.Success = len(result.Errors) == 0
	result.UpdatedStructure = structure
	return result, nil
}

// collectJobs enumerates every file of every document group that has
// uploads, in stable sorted order.
func collectJobs(structure Structure) []fileJob {
	var jobs []fileJob

	for _, personID := range personIDs(structure) {
		docs := structure[personID]
		for _, docType := range docs.DocumentTypes() {
			group := docs[docType]
			if group.NumberOfFiles <= 0 {
				continue
			}

			for _, fileName := range group.FileNames() {
				jobs = append(jobs, fileJob{
					personID: personID,
					docType:  docType,
					fileName: fileName,
					filePath: group.Files[fileName].FilePath,
				})
			}
		}
	}

	return jobs
}

// applyOutcome maps the generic document AI output onto the semantic
// relevant values of the document type.
//
// Relevant values the output does not cover get an explicit empty record of
// the right kind. Downstream code can then tell "checked, not found" apart
// from "never checked".
func applyOutcome(file *FileData, relevantValues []string, docType string, outcome Outcome) {
	file.Confidence = formatConfidence(outcome.Confidence)
	file.MethodUsed = outcome.Method

	if file.Values == nil {
		file.Values = make(map[string]ValueRecord, len(relevantValues))
	}

	for _, fieldID := range relevantValues {
		m := mappingFor(docType, fieldID)

		raw, ok := outcome.Values[m.generic]
		if !ok {
			file.Values[fieldID] = NewEmptyRecord(m.kind)
			continue
		}

		record := ValueRecord{
			Kind:        m.kind,
			Figure:      coerceString(raw),
			Year:        coerceString(outcome.Values[genericYear]),
			Month:       coerceString(outcome.Values[genericMonth]),
			Confidence:  coerceString(outcome.Values[genericConfidence]),
			IsMonthly:   coerceBool(outcome.Values[genericIsMonthly]),
			IsRecurring: coerceBool(outcome.Values[genericIsRecurring]),
		}
		if record.Confidence == "" {
			record.Confidence = file.Confidence
		}

		file.Values[fieldID] = record
	}
}

// markCompleteGroups sets extractionComplete on every document group whose
// files all carry a non-zero confidence.
func markCompleteGroups(structure Structure) {
	for _, docs := range structure {
		for docType, group := range docs {
			if group.NumberOfFiles <= 0 {
				continue
			}

			complete := len(group.Files) > 0
			for _, file := range group.Files {
				c, ok := file.ParsedConfidence()
				if !ok || c == 0 {
					complete = false
					break
				}
			}

			group.ExtractionComplete = complete
			docs[docType] = group
		}
	}
}

func extractionError(job fileJob, res fileResult) string {
	reason := res.outcome.Message
	if res.err != nil {
		reason = res.err.Error()
	}
	if reason == "" {
		reason = "keine Werte erkannt"
	}

	return fmt.Sprintf("Die Datei %q (%s) konnte nicht ausgewertet werden: %s", job.fileName, job.docType, reason)
}

func formatConfidence(c float64) string {
	return strconv.FormatFloat(c, 'f', -1, 64)
}

// coerceString converts a generic output value to its string form. The
// document AI emits numbers, strings and booleans interchangeably.
func coerceString(v any) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(value)
	default:
		return fmt.Sprintf("%v", value)
	}
}

func coerceBool(v any) *bool {
	switch value := v.(type) {
	case bool:
		return &value
	case string:
		if b, err := strconv.ParseBool(value); err == nil {
			return &b
		}
	}

	return nil
}

// personIDs returns the person keys of the structure in stable sorted
// order, the main applicant first.
func personIDs(structure Structure) []string {
	ids := make([]string, 0, len(structure))
	for id := range structure {
		if id == PersonMainApplicant {
			continue
		}
		ids = append(ids, id)
	}

	slices.Sort(ids)

	if _, ok := structure[PersonMainApplicant]; ok {
		ids = append([]string{PersonMainApplicant}, ids...)
	}

	return ids
}
