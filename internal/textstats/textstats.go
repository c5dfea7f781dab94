// Package textstats computes descriptive statistics and scoring features for
// an essay. Everything here is a pure function of its input.
package textstats

import (
	"math"
	"regexp"
	"strings"
)

var (
	wordPattern   = regexp.MustCompile(`\b\w+\b`)
	sentenceSplit = regexp.MustCompile(`[.!?]+`)
	whitespaceRun = regexp.MustCompile(`\s+`)
)

// WordsPerMinute is the reading speed behind ReadingTimeMinutes.
const WordsPerMinute = 200

// Statistics describes the surface shape of a text.
type Statistics struct {
	WordCount                int     `json:"word_count"`
	SentenceCount            int     `json:"sentence_count"`
	ParagraphCount           int     `json:"paragraph_count"`
	CharacterCount           int     `json:"character_count"`
	CharacterCountNoSpaces   int     `json:"character_count_no_spaces"`
	AvgWordsPerSentence      float64 `json:"avg_words_per_sentence"`
	AvgSentencesPerParagraph float64 `json:"avg_sentences_per_paragraph"`
	UniqueWords              int     `json:"unique_words"`
	VocabularyDiversity      float64 `json:"vocabulary_diversity"`
	ReadingTimeMinutes       float64 `json:"reading_time_minutes"`
}

// Compute returns the statistics for text. Word tokens are \w runs, so
// counts treat "don't" as two words.
func Compute(text string) Statistics {
	cleaned := whitespaceRun.ReplaceAllString(strings.TrimSpace(text), " ")

	words := Words(cleaned)
	sentences := Sentences(cleaned)
	paragraphs := Paragraphs(text)

	unique := make(map[string]struct{}, len(words))
	for _, w := range words {
		unique[strings.ToLower(w)] = struct{}{}
	}

	return Statistics{
		WordCount:                len(words),
		SentenceCount:            len(sentences),
		ParagraphCount:           len(paragraphs),
		CharacterCount:           len([]rune(cleaned)),
		CharacterCountNoSpaces:   len([]rune(strings.ReplaceAll(cleaned, " ", ""))),
		AvgWordsPerSentence:      Round(ratio(len(words), len(sentences)), 1),
		AvgSentencesPerParagraph: Round(ratio(len(sentences), len(paragraphs)), 1),
		UniqueWords:              len(unique),
		VocabularyDiversity:      Round(ratio(len(unique), len(words)), 3),
		ReadingTimeMinutes:       Round(float64(len(words))/WordsPerMinute, 1),
	}
}

// Words returns the \w+ tokens of text in order.
func Words(text string) []string {
	return wordPattern.FindAllString(text, -1)
}

// WordIndexes returns the byte spans of the \w+ tokens of text.
func WordIndexes(text string) [][]int {
	return wordPattern.FindAllStringIndex(text, -1)
}

// Sentences splits text on runs of terminal punctuation and drops blank
// pieces.
func Sentences(text string) []string {
	return nonBlank(sentenceSplit.Split(text, -1))
}

// SentencePieces is the raw split on terminal punctuation, blanks included.
func SentencePieces(text string) []string {
	return sentenceSplit.Split(text, -1)
}

// Paragraphs splits text on blank lines ("\n\n") and drops blank pieces.
func Paragraphs(text string) []string {
	return nonBlank(strings.Split(text, "\n\n"))
}

func nonBlank(pieces []string) []string {
	out := make([]string, 0, len(pieces))
	for _, p := range pieces {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ContainsAny reports whether s contains any of the substrings.
func ContainsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// CountPresent counts how many of the substrings occur in s at least once.
func CountPresent(s string, subs []string) int {
	n := 0
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			n++
		}
	}
	return n
}

// Round rounds x to the given number of decimal places, halves away from
// zero.
func Round(x float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(x*p) / p
}

func ratio(n, d int) float64 {
	if d < 1 {
		d = 1
	}
	return float64(n) / float64(d)
}
