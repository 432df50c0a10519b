package app

import (
	"context"
	"io"
	"strings"

	"boxplot/adapters/excel"
	"boxplot/adapters/stats/engine"
	"boxplot/domain/boxplot"
	"boxplot/domain/core"
	"boxplot/internal"
	"boxplot/internal/dataset"
	"boxplot/internal/errors"
	"boxplot/ports"
)

// ServiceConfig tunes the analysis service
type ServiceConfig struct {
	MaxUploadBytes   int64
	BatchConcurrency int64
	MemoCapacity     int
	RecentLimit      int
}

// DefaultServiceConfig returns the settings used when none are configured
func DefaultServiceConfig() ServiceConfig {
	return ServiceConfig{
		MaxUploadBytes:   excel.DefaultMaxBytes,
		BatchConcurrency: 4,
		MemoCapacity:     256,
		RecentLimit:      10,
	}
}

// Recorder observes analysis outcomes
type Recorder interface {
	AnalysisRecorded(source string, outliers int)
	AnalysisRejected(code string)
}

type nopRecorder struct{}

func (nopRecorder) AnalysisRecorded(string, int) {}
func (nopRecorder) AnalysisRejected(string)      {}

// AnalysisService turns raw input into persisted box plot analyses
type AnalysisService struct {
	repo     ports.AnalysisRepository
	memo     *engine.Memo
	batch    *engine.Batch
	config   ServiceConfig
	logger   *internal.Logger
	recorder Recorder
}

// BatchItem is one entry of a batch analysis. Exactly one of Analysis and Err
// is set.
type BatchItem struct {
	Index    int
	Analysis *boxplot.Analysis
	Err      error
}

// NewAnalysisService creates an analysis service storing results in repo
func NewAnalysisService(repo ports.AnalysisRepository, config ServiceConfig, logger *internal.Logger) *AnalysisService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	if config.RecentLimit <= 0 {
		config.RecentLimit = DefaultServiceConfig().RecentLimit
	}
	memo := engine.NewMemo(engine.ComputeSummary, config.MemoCapacity)
	s := &AnalysisService{
		repo:     repo,
		memo:     memo,
		config:   config,
		logger:   logger.With("component", "AnalysisService"),
		recorder: nopRecorder{},
	}
	s.batch = engine.NewBatch(s.summarize, config.BatchConcurrency)
	return s
}

// WithRecorder reports analysis outcomes to r from now on
func (s *AnalysisService) WithRecorder(r Recorder) *AnalysisService {
	if r != nil {
		s.recorder = r
	}
	return s
}

// AnalyzeText parses free-form text (numbers separated by commas, spaces or
// newlines) and analyses the result
func (s *AnalysisService) AnalyzeText(ctx context.Context, name, text string) (*boxplot.Analysis, error) {
	if strings.TrimSpace(text) == "" {
		return nil, s.reject(errors.InsufficientData("Please enter at least 4 numbers", core.NewInsufficientDataError(0)))
	}
	return s.analyze(ctx, name, boxplot.SourceText, dataset.ParseText(text))
}

// AnalyzeFile reads numbers from an uploaded CSV, TXT or XLSX file
func (s *AnalysisService) AnalyzeFile(ctx context.Context, fileName string, r io.Reader) (*boxplot.Analysis, error) {
	reader, err := excel.NewDataReader(fileName)
	if err != nil {
		return nil, s.reject(err)
	}
	if s.config.MaxUploadBytes > 0 {
		reader = reader.WithMaxBytes(s.config.MaxUploadBytes)
	}

	data, err := reader.ReadNumbers(r)
	if err != nil {
		s.logger.Warn("rejected upload %q: %v", fileName, err)
		return nil, s.reject(err)
	}
	return s.analyze(ctx, fileName, reader.Source(), data)
}

// AnalyzeJSON analyses a JSON array body or an object with a "data" array
func (s *AnalysisService) AnalyzeJSON(ctx context.Context, name string, body []byte) (*boxplot.Analysis, error) {
	data, err := dataset.ParseJSON(body, dataset.DefaultJSONPath)
	if err != nil {
		return nil, s.reject(err)
	}
	return s.analyze(ctx, name, boxplot.SourceJSON, data)
}

// AnalyzeSample analyses one of the bundled sample datasets
func (s *AnalysisService) AnalyzeSample(ctx context.Context, index int) (*boxplot.Analysis, error) {
	sample := boxplot.Sample(index)
	return s.analyze(ctx, sample.Name, boxplot.SourceSample, sample.Data)
}

// AnalyzeBatch analyses independent datasets concurrently. Invalid datasets
// fail on their own item; the returned error is only set when ctx ended.
func (s *AnalysisService) AnalyzeBatch(ctx context.Context, datasets [][]float64) ([]BatchItem, error) {
	results, runErr := s.batch.Run(ctx, datasets)

	items := make([]BatchItem, len(results))
	for i, res := range results {
		items[i].Index = res.Index
		if res.Err != nil {
			items[i].Err = s.reject(res.Err)
			continue
		}
		a := newAnalysis("", boxplot.SourceJSON, datasets[i], res.Summary)
		if err := s.repo.Create(ctx, a); err != nil {
			items[i].Err = errors.DatabaseError("failed to save analysis", err)
			continue
		}
		items[i].Analysis = a
		s.recorder.AnalysisRecorded(string(a.Source), len(a.Summary.Outliers))
	}

	s.logger.Debug("batch of %d datasets finished", len(datasets))
	return items, runErr
}

// Get loads a stored analysis
func (s *AnalysisService) Get(ctx context.Context, id core.ID) (*boxplot.Analysis, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, s.repoError(err, "failed to load analysis")
	}
	return a, nil
}

// Recent lists the newest analyses. A non-positive limit uses the configured
// default.
func (s *AnalysisService) Recent(ctx context.Context, limit int) ([]*boxplot.Analysis, error) {
	if limit <= 0 {
		limit = s.config.RecentLimit
	}
	analyses, err := s.repo.ListRecent(ctx, limit)
	if err != nil {
		return nil, s.repoError(err, "failed to list analyses")
	}
	return analyses, nil
}

// Delete removes a stored analysis
func (s *AnalysisService) Delete(ctx context.Context, id core.ID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return s.repoError(err, "failed to delete analysis")
	}
	s.logger.Info("deleted analysis %s", id)
	return nil
}

// Summarize validates data and computes its summary without persisting
func (s *AnalysisService) Summarize(data []float64) (boxplot.Summary, error) {
	return s.summarize(data)
}

// CacheStats reports summary cache hits and misses
func (s *AnalysisService) CacheStats() (hits, misses uint64) {
	return s.memo.Stats()
}

func (s *AnalysisService) summarize(data []float64) (boxplot.Summary, error) {
	if err := dataset.Validate(data); err != nil {
		return boxplot.Summary{}, err
	}
	return s.memo.Compute(data)
}

func (s *AnalysisService) analyze(ctx context.Context, name string, source boxplot.Source, data []float64) (*boxplot.Analysis, error) {
	summary, err := s.summarize(data)
	if err != nil {
		return nil, s.reject(err)
	}

	a := newAnalysis(name, source, data, summary)
	if err := s.repo.Create(ctx, a); err != nil {
		s.logger.Error("failed to save analysis: %v", err)
		return nil, errors.DatabaseError("failed to save analysis", err)
	}

	s.recorder.AnalysisRecorded(string(source), len(summary.Outliers))
	s.logger.Info("analysed %d values from %s (%d outliers)", len(data), source, len(summary.Outliers))
	return a, nil
}

func (s *AnalysisService) reject(err error) error {
	s.recorder.AnalysisRejected(errors.GetCode(err))
	return err
}

func (s *AnalysisService) repoError(err error, message string) error {
	if core.IsNotFoundError(err) {
		return errors.NotFound("analysis", err)
	}
	return errors.DatabaseError(message, err)
}

func newAnalysis(name string, source boxplot.Source, data []float64, summary boxplot.Summary) *boxplot.Analysis {
	if strings.TrimSpace(name) == "" {
		name = defaultName(source)
	}
	return &boxplot.Analysis{
		ID:        core.NewID(),
		Name:      name,
		Source:    source,
		Data:      append([]float64(nil), data...),
		Summary:   summary,
		CreatedAt: core.Now(),
	}
}

func defaultName(source boxplot.Source) string {
	switch source {
	case boxplot.SourceCSV, boxplot.SourceXLSX:
		return "Uploaded file"
	case boxplot.SourceJSON:
		return "API dataset"
	default:
		return "Pasted data"
	}
}
