package utils

import (
	"strings"
	"testing"
)

func TestSplitSentencesShortText(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "empty text yields nothing",
			text: "",
			want: nil,
		},
		{
			name: "whitespace only yields nothing",
			text: "   \n\t  ",
			want: nil,
		},
		{
			name: "text shorter than one window yields one chunk",
			text: "A single short sentence.",
			want: []string{"A single short sentence."},
		},
		{
			name: "surrounding whitespace is trimmed",
			text: "  padded text  ",
			want: []string{"padded text"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitSentences(tt.text, 100, 20)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d chunks, want %d (%v)", len(got), len(tt.want), got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("chunk %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestSplitSentencesBreaksAtSentenceBoundary(t *testing.T) {
	text := "First sentence is right here. Second sentence follows along nicely. Third sentence closes it out with some extra words at the end."

	chunks := SplitSentences(text, 60, 10)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}

	// Every chunk except possibly the last should end on a terminator,
	// proving the backtracking found a sentence boundary.
	for i, c := range chunks[:len(chunks)-1] {
		last := c[len(c)-1]
		if last != '.' && last != '!' && last != '?' {
			t.Errorf("chunk %d does not end at a sentence boundary: %q", i, c)
		}
	}
}

func TestSplitSentencesCoversWholeText(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 40; i++ {
		b.WriteString("Sentence number with a handful of words inside it. ")
	}
	text := strings.TrimSpace(b.String())

	size, overlap := 200, 50
	chunks := SplitSentences(text, size, overlap)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}

	// Consecutive chunks must overlap or at least touch: no gap in the
	// source text may exceed the configured overlap.
	searchFrom := 0
	prevEnd := -1
	for i, c := range chunks {
		idx := strings.Index(text[searchFrom:], c)
		if idx < 0 {
			t.Fatalf("chunk %d not found in source after offset %d", i, searchFrom)
		}
		chunkStart := searchFrom + idx
		if prevEnd >= 0 {
			if gap := chunkStart - prevEnd; gap > overlap {
				t.Errorf("gap of %d chars before chunk %d exceeds overlap %d", gap, i, overlap)
			}
		}
		prevEnd = chunkStart + len(c)
		searchFrom = chunkStart + 1
	}

	last := chunks[len(chunks)-1]
	if !strings.HasSuffix(text, last) {
		t.Error("final chunk does not reach the end of the source text")
	}
}

func TestSplitSentencesAbsorbsTrailingRemainder(t *testing.T) {
	// Sized so the leftover after the second window is shorter than the
	// overlap; it must be folded into the final chunk, not emitted alone.
	text := strings.Repeat("word ", 45) // 225 chars
	chunks := SplitSentences(text, 100, 30)

	final := chunks[len(chunks)-1]
	if len(final) < 30 {
		t.Errorf("degenerate trailing fragment emitted: %q", final)
	}
	if !strings.HasSuffix(strings.TrimSpace(text), final) {
		t.Error("final chunk must carry the text tail")
	}
}

func TestSplitSentencesDeterministic(t *testing.T) {
	text := strings.Repeat("Deterministic input sentence here. ", 30)
	a := SplitSentences(text, 120, 40)
	b := SplitSentences(text, 120, 40)
	if len(a) != len(b) {
		t.Fatalf("chunk counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("chunk %d differs between runs", i)
		}
	}
}

func TestSplitSentencesOverlapLargerThanSize(t *testing.T) {
	text := strings.Repeat("abc def ghi jkl. ", 30)
	chunks := SplitSentences(text, 50, 60)
	if len(chunks) == 0 {
		t.Fatal("expected chunks despite overlap >= size")
	}
}
