// Package analysis runs the full essay assessment pipeline: statistics,
// model and rule scoring, error detection, score fusion, feedback and
// structure analysis.
package analysis

import (
	"context"
	"fmt"
	"time"

	"github.com/abhisek/essaylens/internal/catalog"
	"github.com/abhisek/essaylens/internal/detect"
	"github.com/abhisek/essaylens/internal/feedback"
	"github.com/abhisek/essaylens/internal/logging"
	"github.com/abhisek/essaylens/internal/metrics"
	"github.com/abhisek/essaylens/internal/scoring"
	"github.com/abhisek/essaylens/internal/structure"
	"github.com/abhisek/essaylens/internal/textstats"
)

// ModelScorer supplies externally computed aspect scores.
type ModelScorer interface {
	Score(ctx context.Context, essay string) (*scoring.Aspects, error)
}

// Options configures a Service. Only Catalog is required.
type Options struct {
	Catalog *catalog.Catalog
	Scorer  ModelScorer
	Logger  logging.Logger
	Metrics *metrics.Metrics
	Now     func() time.Time
}

// Service owns the pipeline components. It holds no per-request state and
// is safe for concurrent use.
type Service struct {
	catalog   *catalog.Catalog
	detector  *detect.Engine
	structure *structure.Analyzer
	rules     *scoring.RuleScorer
	scorer    ModelScorer
	log       logging.Logger
	metrics   *metrics.Metrics
	now       func() time.Time
}

// NewService builds a Service from opts.
func NewService(opts Options) (*Service, error) {
	if opts.Catalog == nil {
		return nil, fmt.Errorf("analysis: catalog is required")
	}
	if opts.Logger == nil {
		opts.Logger = logging.NewNopLogger()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Service{
		catalog:   opts.Catalog,
		detector:  detect.NewEngine(opts.Catalog),
		structure: structure.NewAnalyzer(opts.Catalog),
		rules:     scoring.NewRuleScorer(opts.Catalog),
		scorer:    opts.Scorer,
		log:       opts.Logger.Named("analysis"),
		metrics:   opts.Metrics,
		now:       opts.Now,
	}, nil
}

// Analyze assesses one essay. It never fails: a cancelled context or a
// fault anywhere in the pipeline yields the fallback analysis instead.
// Callers validate the request first.
func (s *Service) Analyze(ctx context.Context, req Request) (res *Result) {
	req = req.Normalize()
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			s.log.Error("analysis panicked, using fallback", logging.Any("panic", r))
			res = s.fallback(req)
		}
		s.metrics.ObserveAnalysis(res.AnalysisMethod, time.Since(start))
	}()

	res, err := s.analyze(ctx, req)
	if err != nil {
		s.log.Error("analysis aborted, using fallback", logging.Err(err))
		return s.fallback(req)
	}
	s.log.Info("analysis completed",
		logging.Float64("overall_score", res.OverallScore),
		logging.Int("error_count", res.ErrorCount),
		logging.String("level", string(req.Level)))
	return res
}

func (s *Service) analyze(ctx context.Context, req Request) (*Result, error) {
	stats := textstats.Compute(req.Essay)

	model, source := s.modelScores(ctx, req.Essay)
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("model scoring: %w", err)
	}

	errs := s.detector.Run(req.Essay)
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("error detection: %w", err)
	}

	features := textstats.ExtractFeatures(req.Essay, &s.catalog.Features)
	rule := s.rules.Score(req.Essay, req.Prompt, features, errs, req.Level)
	final := scoring.AdjustForErrors(scoring.Fuse(model, rule), errs).Finalize()
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("score fusion: %w", err)
	}

	items, suggestions := feedback.Synthesize(final, errs, req.Level)
	st := s.structure.Analyze(req.Essay)
	grouped := detect.Group(errs)
	for _, c := range detect.Categories {
		s.metrics.AddErrors(string(c), len(grouped[c]))
	}

	detailed := final
	detailed.Overall = 0

	return &Result{
		OverallScore:      final.Overall,
		DetailedScores:    detailed,
		Feedback:          items,
		Improvements:      suggestions,
		StructureAnalysis: StructureAnalysis{Result: &st},
		Statistics:        stats,
		Errors:            errs,
		GroupedErrors:     grouped,
		ErrorCount:        len(errs),
		Level:             req.Level,
		AnalysisMethod:    MethodHybrid,
		ModelScoresSource: source,
		Timestamp:         s.timestamp(),
	}, nil
}

// modelScores asks the scorer for aspect scores, substituting neutral
// scores when there is no scorer or it fails.
func (s *Service) modelScores(ctx context.Context, essay string) (scoring.Aspects, string) {
	if s.scorer == nil {
		s.metrics.ModelFallback()
		return scoring.Neutral(), SourceDefault
	}
	a, err := s.scorer.Score(ctx, essay)
	if err != nil || a == nil {
		s.log.Warn("model scoring failed, using neutral scores", logging.Err(err))
		s.metrics.ModelFallback()
		return scoring.Neutral(), SourceDefault
	}
	return a.Sanitize(), SourceModel
}

// fallbackBase is the score of a fallback analysis before the word count
// adjustment.
const fallbackBase = 6.0

func (s *Service) fallback(req Request) *Result {
	stats := textstats.Compute(req.Essay)

	score := fallbackBase
	switch {
	case stats.WordCount >= 300:
		score += 1.0
	case stats.WordCount < 150:
		score -= 1.0
	}

	items, suggestions := feedback.Fallback()
	return &Result{
		OverallScore:      score,
		DetailedScores:    scoring.Uniform(score),
		Feedback:          items,
		Improvements:      suggestions,
		StructureAnalysis: StructureAnalysis{BasicStructure: true},
		Statistics:        stats,
		Errors:            []detect.Record{},
		GroupedErrors:     map[detect.Category][]detect.Record{},
		Level:             req.Level,
		AnalysisMethod:    MethodFallback,
		Timestamp:         s.timestamp(),
	}
}

func (s *Service) timestamp() string {
	return s.now().Format(time.RFC3339)
}
