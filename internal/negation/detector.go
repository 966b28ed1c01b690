// Package negation detects whether an intent phrase in a reply is negated by
// nearby wording ("don't", "not really", ...). It is the leaf dependency of
// the stage classifier and holds no state beyond precompiled vocabulary.
package negation

import (
	"regexp"
	"strings"
)

// Lookback bounds. Token and character windows both exist because
// punctuation fragments tokens inconsistently; the character pass catches
// phrase matches the tokenizer desynchronizes.
const (
	tokenLookback = 8
	charLookback  = 50
)

var (
	// tokenRe splits text into lowercase word tokens, keeping apostrophes so
	// contractions like "don't" survive as single tokens.
	tokenRe = regexp.MustCompile(`[a-z0-9']+`)

	// negatorRe is the fixed negator vocabulary checked inside a lookback
	// window.
	negatorRe = regexp.MustCompile(`\b(?:not|no|never|don'?t|doesn'?t|didn'?t|can'?t|cannot|won'?t|wouldn'?t|shouldn'?t|couldn'?t|isn'?t|aren'?t|rather not|prefer not|not really|not sure)\b`)

	// cancelRe reinstates a positive match: "not only am I interested" is
	// emphasis, not refusal.
	cancelRe = regexp.MustCompile(`\bnot\s+(?:only|just)\b`)
)

// HasNegatedIntent reports whether any of the intent phrases occurs in text
// with a negator in the preceding window. Each phrase is first located as an
// exact token sequence with an 8-token lookback; phrases the tokenizer
// fragments fall back to a 50-character window of raw text before the first
// occurrence. A window containing "not only"/"not just" counts as positive.
// Returns true on the first negated match found.
func HasNegatedIntent(text string, intentPhrases []string) bool {
	lower := normalize(text)
	tokens := tokenRe.FindAllString(lower, -1)

	for _, phrase := range intentPhrases {
		p := normalize(phrase)
		phraseTokens := tokenRe.FindAllString(p, -1)
		if len(phraseTokens) == 0 {
			continue
		}

		if idx := findSequence(tokens, phraseTokens); idx >= 0 {
			start := idx - tokenLookback
			if start < 0 {
				start = 0
			}
			window := strings.Join(tokens[start:idx], " ")
			if windowNegated(window) {
				return true
			}
		}

		if pos := strings.Index(lower, p); pos >= 0 {
			start := pos - charLookback
			if start < 0 {
				start = 0
			}
			if windowNegated(lower[start:pos]) {
				return true
			}
		}
	}

	return false
}

// windowNegated applies the negator vocabulary and the cancellation rule to a
// lookback window.
func windowNegated(window string) bool {
	if window == "" {
		return false
	}
	return negatorRe.MatchString(window) && !cancelRe.MatchString(window)
}

// findSequence returns the index in tokens where phrase begins as an exact
// token-sequence match, or -1.
func findSequence(tokens, phrase []string) int {
	if len(phrase) == 0 || len(phrase) > len(tokens) {
		return -1
	}
	for i := 0; i <= len(tokens)-len(phrase); i++ {
		matched := true
		for j, p := range phrase {
			if tokens[i+j] != p {
				matched = false
				break
			}
		}
		if matched {
			return i
		}
	}
	return -1
}

// normalize lowercases and folds typographic apostrophes so "don’t" and
// "don't" negate identically.
func normalize(text string) string {
	return strings.ToLower(strings.ReplaceAll(text, "’", "'"))
}
