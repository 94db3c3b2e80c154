package genericproduct

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripDiacritics decomposes accented runes and drops the combining marks,
// so "feijão" and "feijao" normalize identically.
var stripDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize lowercases a product name, strips diacritics, drops punctuation
// and collapses runs of whitespace. All matching strategies operate on
// normalized names.
func Normalize(name string) string {
	lowered := strings.ToLower(strings.TrimSpace(name))

	stripped, _, err := transform.String(stripDiacritics, lowered)
	if err != nil {
		stripped = lowered
	}

	var b strings.Builder
	b.Grow(len(stripped))
	pendingSpace := false
	for _, r := range stripped {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if pendingSpace && b.Len() > 0 {
				b.WriteByte(' ')
			}
			pendingSpace = false
			b.WriteRune(r)
		case unicode.IsSpace(r):
			pendingSpace = true
		}
	}
	return b.String()
}

// stopWords carry no product meaning and are excluded from word-based
// matching. Unit tokens count as stop words because measurements are
// extracted separately.
var stopWords = map[string]bool{
	"de": true, "da": true, "do": true, "das": true, "dos": true,
	"com": true, "sem": true, "em": true, "para": true, "e": true,
	"o": true, "a": true, "os": true, "as": true, "um": true, "uma": true,
	"kg": true, "g": true, "ml": true, "l": true, "un": true, "tipo": true,
}

// SignificantWords returns the normalized words of a name that carry
// meaning: at least three runes, not a stop word, not purely numeric.
func SignificantWords(name string) []string {
	var words []string
	for _, word := range strings.Fields(Normalize(name)) {
		if len([]rune(word)) < 3 || stopWords[word] || isNumeric(word) {
			continue
		}
		words = append(words, word)
	}
	return words
}

func isNumeric(word string) bool {
	for _, r := range word {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// Levenshtein computes the edit distance between two strings, rune-wise.
func Levenshtein(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)

	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, min(curr[j-1]+1, prev[j-1]+cost))
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

// Similarity is the normalized Levenshtein similarity in [0,1]. Two empty
// strings are identical by definition.
func Similarity(a, b string) float64 {
	maxLen := len([]rune(a))
	if l := len([]rune(b)); l > maxLen {
		maxLen = l
	}
	if maxLen == 0 {
		return 1.0
	}
	return 1.0 - float64(Levenshtein(a, b))/float64(maxLen)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
