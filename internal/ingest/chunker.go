package ingest

import "strings"

// SplitWords splits text into ordered fragments of at most maxWords
// whitespace-separated words each. Words are rejoined with single spaces, so
// reassembling the fragments reproduces the original word sequence.
//
// The result is never empty: text with no words (empty or whitespace-only)
// yields exactly one empty fragment, so every document gets at least one
// chunk. The function is pure and deterministic.
func SplitWords(text string, maxWords int) []string {
	if maxWords < 1 {
		maxWords = 1
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}

	chunks := make([]string, 0, (len(words)+maxWords-1)/maxWords)
	for start := 0; start < len(words); start += maxWords {
		end := start + maxWords
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, strings.Join(words[start:end], " "))
	}
	return chunks
}

// WordCount returns the number of whitespace-separated words in s. It is the
// size unit used for chunk accounting, matching SplitWords.
func WordCount(s string) int {
	return len(strings.Fields(s))
}
