package detect

import (
	"reflect"
	"testing"
)

func rec(start, end int, conf float64, text string) Record {
	return Record{Category: CategoryStyle, Text: text, Start: start, End: end, Confidence: conf}
}

func TestResolve_HigherConfidenceWins(t *testing.T) {
	low := rec(0, 5, 0.6, "low")
	high := rec(2, 7, 0.9, "high")

	for _, in := range [][]Record{{low, high}, {high, low}} {
		got := Resolve(in)
		if len(got) != 1 || got[0].Text != "high" {
			t.Errorf("got %+v, want only the 0.9 record", got)
		}
	}
}

func TestResolve_EqualConfidenceKeepsFirst(t *testing.T) {
	a := rec(0, 5, 0.8, "a")
	b := rec(3, 9, 0.8, "b")
	got := Resolve([]Record{a, b})
	if len(got) != 1 || got[0].Text != "a" {
		t.Errorf("got %+v, want only a", got)
	}
}

func TestResolve_SameStartPrefersConfidence(t *testing.T) {
	a := rec(4, 8, 0.5, "a")
	b := rec(4, 6, 0.7, "b")
	got := Resolve([]Record{a, b})
	if len(got) != 1 || got[0].Text != "b" {
		t.Errorf("got %+v, want only b", got)
	}
}

func TestResolve_ReplacementMovesLastEnd(t *testing.T) {
	a := rec(0, 10, 0.5, "a")
	b := rec(2, 4, 0.9, "b")
	c := rec(5, 8, 0.6, "c")
	got := Resolve([]Record{a, b, c})

	want := []Record{b, c}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestResolve_AdjacentRecordsKept(t *testing.T) {
	a := rec(0, 4, 0.5, "a")
	b := rec(4, 8, 0.5, "b")
	got := Resolve([]Record{b, a})
	if len(got) != 2 || got[0].Text != "a" || got[1].Text != "b" {
		t.Errorf("got %+v, want [a b]", got)
	}
}

func TestResolve_DoesNotModifyInput(t *testing.T) {
	in := []Record{rec(5, 9, 0.5, "later"), rec(0, 3, 0.9, "earlier")}
	snapshot := append([]Record(nil), in...)
	Resolve(in)
	if !reflect.DeepEqual(in, snapshot) {
		t.Errorf("input modified: %+v", in)
	}
}

func TestResolve_Empty(t *testing.T) {
	got := Resolve(nil)
	if got == nil || len(got) != 0 {
		t.Errorf("got %#v, want empty non-nil", got)
	}
}
