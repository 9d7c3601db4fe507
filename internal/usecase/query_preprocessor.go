package usecase

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// maxFoodNameLength is the longest raw food name accepted for lookup
const maxFoodNameLength = 200

// Compiled regex patterns for query preprocessing
var (
	// Anything that is not a letter, digit or space becomes a separator ("frango (grelhado)", "rice_white")
	separatorPattern = regexp.MustCompile(`[^a-z0-9\s]+`)

	// Multiple spaces cleanup
	multiSpacePattern = regexp.MustCompile(`\s+`)
)

// QueryPreprocessor normalizes raw food names before they are matched against the nutrition table
type QueryPreprocessor struct {
	enableDebugLogging bool
}

// NewQueryPreprocessor creates a new query preprocessor
func NewQueryPreprocessor(enableDebugLogging bool) *QueryPreprocessor {
	return &QueryPreprocessor{
		enableDebugLogging: enableDebugLogging,
	}
}

// PreprocessQuery lowercases a food name, strips diacritics and punctuation and
// collapses whitespace. It reports false for empty, whitespace-only or over-long names.
func (p *QueryPreprocessor) PreprocessQuery(name string) (string, bool) {
	if strings.TrimSpace(name) == "" || utf8.RuneCountInString(name) > maxFoodNameLength {
		return "", false
	}

	cleaned := NormalizeFoodName(name)

	if p.enableDebugLogging {
		log.Debug().Str("component", "preprocess").Str("input", name).Str("output", cleaned).Msg("normalized food name")
	}

	return cleaned, cleaned != ""
}

// NormalizeFoodName lowercases s, removes Portuguese diacritics (á, ã, ç, é, ô, ...)
// and reduces punctuation to single spaces.
func NormalizeFoodName(s string) string {
	result := strings.ToLower(StripDiacritics(s))
	result = separatorPattern.ReplaceAllString(result, " ")
	result = multiSpacePattern.ReplaceAllString(result, " ")
	return strings.TrimSpace(result)
}

// StripDiacritics removes combining marks after canonical decomposition, so "feijão" becomes "feijao"
func StripDiacritics(s string) string {
	// transform.Chain keeps internal state, so it is built per call
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// containsPhrase reports whether phrase occurs in s on word boundaries.
// A trailing plural "s" or "es" on the last word is tolerated ("eggs", "tomatoes").
func containsPhrase(s, phrase string) bool {
	padded := " " + s + " "
	for _, suffix := range []string{"", "s", "es"} {
		if strings.Contains(padded, " "+phrase+suffix+" ") {
			return true
		}
	}
	return false
}
