package textstats

import (
	"strings"
	"unicode"

	"github.com/abhisek/essaylens/internal/catalog"
)

// complexSentenceWords is the token count above which a sentence counts as
// complex.
const complexSentenceWords = 15

// Features are the inputs to rule-based scoring. Unlike Statistics, word
// counts here use whitespace tokens.
type Features struct {
	WordCount                int     `json:"word_count"`
	SentenceCount            int     `json:"sentence_count"`
	ParagraphCount           int     `json:"paragraph_count"`
	AvgWordsPerSentence      float64 `json:"avg_words_per_sentence"`
	AvgSentencesPerParagraph float64 `json:"avg_sentences_per_paragraph"`
	UniqueWords              int     `json:"unique_words"`
	VocabularyDiversity      float64 `json:"vocabulary_diversity"`
	ComplexSentenceRatio     float64 `json:"complex_sentence_ratio"`
	AcademicVocabularyCount  int     `json:"academic_vocabulary_count"`
	AcademicVocabularyRatio  float64 `json:"academic_vocabulary_ratio"`
	TransitionCount          int     `json:"transition_count"`
	HasIntroduction          bool    `json:"has_introduction"`
	HasConclusion            bool    `json:"has_conclusion"`
	HasThesis                bool    `json:"has_thesis"`
	BodyParagraphCount       int     `json:"body_paragraph_count"`
}

// ExtractFeatures computes scoring features for text using the lexicon.
func ExtractFeatures(text string, lex *catalog.FeatureLexicon) Features {
	words := strings.Fields(text)
	sentences := Sentences(text)
	paragraphs := Paragraphs(text)

	f := Features{
		WordCount:                len(words),
		SentenceCount:            len(sentences),
		ParagraphCount:           len(paragraphs),
		AvgWordsPerSentence:      ratio(len(words), len(sentences)),
		AvgSentencesPerParagraph: ratio(len(sentences), len(paragraphs)),
	}

	vocab := make(map[string]struct{})
	for _, w := range words {
		lw := strings.ToLower(w)
		if isAlpha(w) {
			vocab[lw] = struct{}{}
		}
		if lex.IsAcademic(lw) {
			f.AcademicVocabularyCount++
		}
	}
	f.UniqueWords = len(vocab)
	f.VocabularyDiversity = ratio(len(vocab), len(words))
	f.AcademicVocabularyRatio = ratio(f.AcademicVocabularyCount, len(words))

	complexCount := 0
	for _, s := range sentences {
		if len(strings.Fields(s)) > complexSentenceWords {
			complexCount++
		}
	}
	f.ComplexSentenceRatio = ratio(complexCount, len(sentences))

	f.TransitionCount = CountPresent(strings.ToLower(text), lex.Transitions)
	f.HasThesis = ContainsAny(strings.ToLower(thesisRegion(text, lex.ThesisWindow)), lex.Thesis)

	if len(paragraphs) > 0 {
		f.HasIntroduction = ContainsAny(strings.ToLower(paragraphs[0]), lex.Introductions)
		f.HasConclusion = ContainsAny(strings.ToLower(paragraphs[len(paragraphs)-1]), lex.Conclusions)
		f.BodyParagraphCount = max(0, len(paragraphs)-2)
	}
	return f
}

// thesisRegion is the first line of text, or its first window runes when the
// text is a single line.
func thesisRegion(text string, window int) string {
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		return text[:i]
	}
	r := []rune(text)
	if len(r) > window {
		r = r[:window]
	}
	return string(r)
}

func isAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
