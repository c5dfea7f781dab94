package detect

import (
	"fmt"

	"github.com/abhisek/essaylens/internal/catalog"
)

// SpellingDetector flags known misspellings as whole words, any case.
type SpellingDetector struct {
	corrections []catalog.Correction
}

func (d *SpellingDetector) Category() Category { return CategorySpelling }

func (d *SpellingDetector) Detect(text string) []Record {
	var out []Record
	for _, c := range d.corrections {
		for _, loc := range c.Pattern.FindAllStringIndex(text, -1) {
			match := text[loc[0]:loc[1]]
			out = append(out, newRecord(CategorySpelling, match, loc[0], loc[1], c.Right,
				fmt.Sprintf("'%s' should be '%s'", match, c.Right), SeverityMedium, confidenceSpelling))
		}
	}
	return out
}
