package feedback

import (
	"github.com/abhisek/essaylens/internal/detect"
	"github.com/abhisek/essaylens/internal/scoring"
)

// band is one row of a threshold table. A score at or above Min selects it;
// the last row of every table has Min 0 and always matches.
type band struct {
	Min         float64
	Type        Polarity
	Severity    Severity
	Comment     string
	Suggestions []string
}

var overallBands = []band{
	{
		Min: 8.5, Type: Positive, Severity: SeverityInfo,
		Comment:     "Excellent essay with strong performance across all areas.",
		Suggestions: []string{"Continue developing your advanced writing skills", "Consider more complex rhetorical strategies"},
	},
	{
		Min: 7.0, Type: Positive, Severity: SeverityInfo,
		Comment:     "Good essay with solid foundation and clear strengths.",
		Suggestions: []string{"Focus on areas for improvement", "Continue practicing regularly"},
	},
	{
		Min: 5.5, Type: Neutral, Severity: SeverityInfo,
		Comment:     "Developing essay with room for improvement in several areas.",
		Suggestions: []string{"Focus on fundamental writing skills", "Practice essay structure and organization"},
	},
	{
		Type: Improvement, Severity: SeverityWarn,
		Comment:     "Essay needs significant development across multiple areas.",
		Suggestions: []string{"Review basic essay writing principles", "Practice with simpler prompts first", "Seek additional writing support"},
	},
}

// aspectFeedback covers content, organization and language, which share the
// 7.5 / 6.0 cut points.
var aspectFeedback = []struct {
	Aspect   scoring.Aspect
	Category string
	Bands    []band
}{
	{
		Aspect:   scoring.Content,
		Category: "Content Development",
		Bands: []band{
			{
				Min: 7.5, Type: Positive, Severity: SeverityLow,
				Comment:     "Strong content with good evidence and analysis.",
				Suggestions: []string{"Continue developing complex arguments", "Consider multiple perspectives"},
			},
			{
				Min: 6.0, Type: Neutral, Severity: SeverityMedium,
				Comment:     "Good content foundation with room for deeper development.",
				Suggestions: []string{"Add more specific examples", "Strengthen evidence-to-claim connections", "Develop arguments more thoroughly"},
			},
			{
				Type: Improvement, Severity: SeverityHigh,
				Comment:     "Content needs significant development and stronger evidence.",
				Suggestions: []string{"Focus on addressing the prompt directly", "Add relevant examples and evidence", "Develop a clear thesis statement"},
			},
		},
	},
	{
		Aspect:   scoring.Organization,
		Category: "Organization",
		Bands: []band{
			{
				Min: 7.5, Type: Positive, Severity: SeverityLow,
				Comment:     "Well-organized with clear structure and good flow.",
				Suggestions: []string{"Maintain this organizational strength", "Experiment with advanced transition techniques"},
			},
			{
				Min: 6.0, Type: Neutral, Severity: SeverityMedium,
				Comment:     "Good basic organization with opportunities for improvement.",
				Suggestions: []string{"Strengthen paragraph transitions", "Ensure clear topic sentences", "Improve conclusion strength"},
			},
			{
				Type: Improvement, Severity: SeverityHigh,
				Comment:     "Essay structure needs significant improvement.",
				Suggestions: []string{"Create clear introduction with thesis", "Use topic sentences for each paragraph", "Add strong conclusion", "Practice basic essay structure"},
			},
		},
	},
	{
		Aspect:   scoring.Language,
		Category: "Language Use",
		Bands: []band{
			{
				Min: 7.5, Type: Positive, Severity: SeverityLow,
				Comment:     "Sophisticated language with good variety and precision.",
				Suggestions: []string{"Continue expanding vocabulary", "Experiment with rhetorical devices"},
			},
			{
				Min: 6.0, Type: Neutral, Severity: SeverityMedium,
				Comment:     "Good language use with room for more sophistication.",
				Suggestions: []string{"Vary sentence structures more", "Use more precise vocabulary", "Avoid word repetition"},
			},
			{
				Type: Improvement, Severity: SeverityHigh,
				Comment:     "Language use needs development for clarity and variety.",
				Suggestions: []string{"Practice sentence combining", "Build vocabulary through reading", "Focus on clarity first, then sophistication"},
			},
		},
	},
}

const conventionsCategory = "Writing Conventions"

var (
	conventionsExcellent = []string{"Maintain this high standard", "Continue careful proofreading"}
	conventionsGood      = []string{"Review and correct identified errors", "Proofread more carefully", "Focus on common error patterns"}
	conventionsWeak      = []string{"Systematic proofreading needed", "Review grammar and punctuation rules", "Consider using writing tools for error checking"}
)

var (
	advancedExpectations = Item{
		Category:    "Advanced Level Expectations",
		Type:        Improvement,
		Severity:    SeverityMedium,
		Comment:     "For advanced level, higher sophistication is expected.",
		Suggestions: []string{"Develop more complex arguments", "Use advanced vocabulary and syntax", "Incorporate nuanced analysis"},
	}
	beginnerAchievement = Item{
		Category:    "Beginner Level Achievement",
		Type:        Positive,
		Severity:    SeverityInfo,
		Comment:     "Excellent work for beginner level! Consider advancing to intermediate.",
		Suggestions: []string{"Try intermediate level prompts", "Challenge yourself with more complex topics"},
	}
)

// aspectImprovements are offered for every aspect scoring below 8.0.
var aspectImprovements = map[scoring.Aspect]Suggestion{
	scoring.Content: {
		Area:        "Content Development",
		Description: "Strengthen your argument development and evidence use.",
		Tips: []string{
			"Develop a clear, arguable thesis statement",
			"Use specific examples and evidence from sources",
			"Explain how evidence supports your claims",
			"Address counterarguments to strengthen your position",
			"Ensure all content directly relates to the prompt",
		},
	},
	scoring.Organization: {
		Area:        "Essay Organization",
		Description: "Improve the structure and logical flow of your essay.",
		Tips: []string{
			"Create a clear introduction with thesis statement",
			"Use topic sentences to start each body paragraph",
			"Add transition words and phrases between ideas",
			"Ensure logical progression of arguments",
			"Write a strong conclusion that reinforces your thesis",
		},
	},
	scoring.Language: {
		Area:        "Language and Style",
		Description: "Enhance your vocabulary and sentence variety.",
		Tips: []string{
			"Vary sentence lengths and structures",
			"Use more precise and sophisticated vocabulary",
			"Avoid repetitive word choices",
			"Practice combining simple sentences into complex ones",
			"Read academic texts to improve language patterns",
		},
	},
	scoring.Conventions: {
		Area:        "Writing Conventions",
		Description: "Improve accuracy in grammar, punctuation, and mechanics.",
		Tips: []string{
			"Proofread carefully for grammar and spelling errors",
			"Review punctuation rules and usage",
			"Check subject-verb agreement throughout",
			"Use spell-check and grammar tools",
			"Read your essay aloud to catch errors",
		},
	},
}

// advancedTips extend the content and language improvements for advanced
// writers.
var advancedTips = []string{
	"Incorporate sophisticated rhetorical strategies",
	"Develop nuanced, complex arguments",
	"Use discipline-specific vocabulary appropriately",
}

const beginnerTipLimit = 3

// errorImprovement describes the suggestion for a dominant error category.
// Description is a format string taking the error count.
type errorImprovement struct {
	Area        string
	Description string
	Tips        []string
}

var errorImprovements = map[detect.Category]errorImprovement{
	detect.CategorySpelling: {
		Area:        "Spelling Accuracy",
		Description: "Focus on correcting spelling errors (%d detected).",
		Tips: []string{
			"Use spell-check tools during writing",
			"Keep a personal list of commonly misspelled words",
			"Practice spelling rules and patterns",
			"Proofread specifically for spelling errors",
		},
	},
	detect.CategoryGrammar: {
		Area:        "Grammar Accuracy",
		Description: "Address grammar issues (%d detected).",
		Tips: []string{
			"Review basic grammar rules",
			"Pay attention to subject-verb agreement",
			"Check verb tenses for consistency",
			"Use grammar checking tools",
		},
	},
	detect.CategoryPunctuation: {
		Area:        "Punctuation Accuracy",
		Description: "Improve punctuation usage (%d errors detected).",
		Tips: []string{
			"Review punctuation rules",
			"Pay attention to comma usage",
			"Ensure proper sentence endings",
			"Check spacing around punctuation marks",
		},
	},
	detect.CategoryWordChoice: {
		Area:        "Word Choice",
		Description: "Check commonly confused words (%d detected).",
		Tips: []string{
			"Double-check homophones such as their, there and they're",
			"Keep a list of word pairs you tend to mix up",
			"Reread each flagged sentence for the intended meaning",
			"Look up a word when unsure which form fits",
		},
	},
	detect.CategoryStyle: {
		Area:        "Writing Style",
		Description: "Address style issues (%d detected).",
		Tips: []string{
			"Vary sentence structures for better flow",
			"Avoid repetitive word choices",
			"Use active voice when appropriate",
			"Eliminate wordy or redundant phrases",
		},
	},
	detect.CategoryCoherence: {
		Area:        "Paragraph Coherence",
		Description: "Improve the flow between paragraphs (%d issues detected).",
		Tips: []string{
			"Open body paragraphs with a transition",
			"Link each paragraph back to your thesis",
			"Use topic sentences that follow from the previous paragraph",
			"Outline the order of your ideas before drafting",
		},
	},
	detect.CategoryRedundancy: {
		Area:        "Concise Wording",
		Description: "Remove redundant phrasing (%d instances detected).",
		Tips: []string{
			"Cut words that repeat the meaning of their neighbor",
			"Prefer a single precise word over a padded phrase",
			"Reread sentences looking for words you can delete",
		},
	},
	detect.CategoryClarity: {
		Area:        "Sentence Clarity",
		Description: "Break up overlong sentences (%d detected).",
		Tips: []string{
			"Keep most sentences under 25 words",
			"Give each sentence one main idea",
			"Split sentences joined by several conjunctions",
			"Read long sentences aloud to check they are easy to follow",
		},
	},
}

var generalDevelopment = Suggestion{
	Area:        "General Writing Development",
	Priority:    PriorityMedium,
	Description: "Continue developing your writing skills across all areas.",
	Tips: []string{
		"Read widely to improve vocabulary and style",
		"Practice writing regularly with varied prompts",
		"Seek feedback from teachers or peers",
		"Study model essays in your field",
	},
}
