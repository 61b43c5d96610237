package utils

import (
	"strings"
	"unicode"
)

// SplitSentences splits a long string into chunks of approximately 'chunkSize'
// characters with 'overlap' characters shared between consecutive chunks.
// Unlike a plain character splitter it backtracks to the nearest sentence
// terminator so chunks do not sever sentences mid-way, which keeps each
// embedding semantically coherent. The next window starts 'overlap'
// characters before the previous cut, so consecutive chunks always share
// context and the source text is covered without gaps.
func SplitSentences(text string, chunkSize int, overlap int) []string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}

	runes := []rune(trimmed)
	totalLen := len(runes)

	if totalLen <= chunkSize {
		return []string{trimmed}
	}

	step := chunkSize - overlap
	if step <= 0 {
		step = chunkSize // fallback if overlap >= chunkSize
	}

	var chunks []string
	start := 0
	for start < totalLen {
		end := start + chunkSize

		if end >= totalLen {
			end = totalLen
		} else if totalLen-end < overlap {
			// The trailing remainder would be almost pure overlap;
			// absorb it instead of emitting a degenerate fragment.
			end = totalLen
		} else {
			// Backtrack to a sentence boundary, but never further than
			// half a window so chunks stay reasonably sized.
			if cut := lastSentenceEnd(runes, start+chunkSize/2, end); cut > 0 {
				end = cut
			}
		}

		chunk := strings.TrimSpace(string(runes[start:end]))
		if chunk != "" {
			chunks = append(chunks, chunk)
		}

		if end == totalLen {
			break
		}

		next := end - overlap
		if next <= start {
			next = start + step
		}
		start = next
	}

	return chunks
}

// lastSentenceEnd scans backward from 'end' down to 'floor' and returns the
// index just past the latest sentence terminator ('.', '!' or '?' followed by
// whitespace), or 0 when no boundary exists in that range.
func lastSentenceEnd(runes []rune, floor, end int) int {
	if floor < 0 {
		floor = 0
	}
	for i := end - 1; i >= floor; i-- {
		if !isSentenceTerminator(runes[i]) {
			continue
		}
		if i+1 >= len(runes) || unicode.IsSpace(runes[i+1]) {
			return i + 1
		}
	}
	return 0
}

func isSentenceTerminator(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}
