package analysis

import (
	"github.com/abhisek/essaylens/internal/detect"
	"github.com/abhisek/essaylens/internal/feedback"
	"github.com/abhisek/essaylens/internal/scoring"
	"github.com/abhisek/essaylens/internal/structure"
	"github.com/abhisek/essaylens/internal/textstats"
)

// Analysis methods reported in Result.AnalysisMethod.
const (
	MethodHybrid   = "comprehensive_ml_rule_hybrid"
	MethodFallback = "fallback"
)

// Where the model half of the fused scores came from.
const (
	SourceModel   = "model"
	SourceDefault = "default"
)

// Result is the complete assessment of one essay.
type Result struct {
	OverallScore      float64                             `json:"overall_score"`
	DetailedScores    scoring.Aspects                     `json:"detailed_scores"`
	Feedback          []feedback.Item                     `json:"feedback"`
	Improvements      []feedback.Suggestion               `json:"improvements"`
	StructureAnalysis StructureAnalysis                   `json:"structure_analysis"`
	Statistics        textstats.Statistics                `json:"statistics"`
	Errors            []detect.Record                     `json:"errors"`
	GroupedErrors     map[detect.Category][]detect.Record `json:"grouped_errors"`
	ErrorCount        int                                 `json:"error_count"`
	Level             scoring.Level                       `json:"level"`
	AnalysisMethod    string                              `json:"analysis_method"`
	ModelScoresSource string                              `json:"model_scores_source,omitempty"`
	Timestamp         string                              `json:"timestamp"`
}

// StructureAnalysis carries the full structure result, or only
// BasicStructure for a fallback analysis.
type StructureAnalysis struct {
	*structure.Result
	BasicStructure bool `json:"basic_structure,omitempty"`
}
