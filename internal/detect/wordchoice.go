package detect

import (
	"fmt"
	"strings"

	"github.com/abhisek/essaylens/internal/catalog"
	"github.com/abhisek/essaylens/internal/textstats"
)

// contextWindow is how many bytes either side of a word are searched for
// disambiguating cues.
const contextWindow = 50

// WordChoiceDetector flags every occurrence of a commonly confused word.
type WordChoiceDetector struct {
	confusables []catalog.Confusable
	cues        []catalog.ContextCue
}

func (d *WordChoiceDetector) Category() Category { return CategoryWordChoice }

func (d *WordChoiceDetector) Detect(text string) []Record {
	positions := make(map[string][][]int)
	for _, loc := range textstats.WordIndexes(text) {
		w := strings.ToLower(text[loc[0]:loc[1]])
		positions[w] = append(positions[w], loc)
	}

	var out []Record
	for _, cf := range d.confusables {
		for _, loc := range positions[cf.Word] {
			orig := text[loc[0]:loc[1]]
			out = append(out, newRecord(CategoryWordChoice, orig, loc[0], loc[1],
				d.choose(text, cf, loc[0]),
				fmt.Sprintf("'%s' might be confused with similar words. Check context.", orig),
				SeverityMedium, confidenceWordChoice))
		}
	}
	return out
}

// choose picks the alternative suggested by nearby cue words, falling back
// to the first listed alternative.
func (d *WordChoiceDetector) choose(text string, cf catalog.Confusable, pos int) string {
	lo := max(0, pos-contextWindow)
	hi := min(len(text), pos+len(cf.Word)+contextWindow)
	context := strings.ToLower(text[lo:hi])

	for _, cue := range d.cues {
		if cue.Word == cf.Word && textstats.ContainsAny(context, cue.Keywords) {
			return cue.Choose
		}
	}
	if len(cf.Alternatives) > 0 {
		return cf.Alternatives[0]
	}
	return cf.Word
}
