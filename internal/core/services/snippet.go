package services

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// SnippetWindow is the default number of context characters kept on
	// each side of the match.
	SnippetWindow = 200

	// HighlightOpen and HighlightClose are the neutral markers wrapped
	// around matched terms. Each surface renders them in its own way.
	HighlightOpen  = "[["
	HighlightClose = "]]"

	ellipsis = "..."
)

// stemSuffixes is the fixed-priority suffix list for the fallback
// stemmer. The order matters: the first suffix that strips to a root of
// at least three characters and is found in the text wins.
var stemSuffixes = []string{
	"ation", "tional", "tion", "sion", "ment", "ing", "ed", "es", "s", "al",
}

// minStemRoot is the shortest root the stemmer will search for.
const minStemRoot = 3

// Snippet produces a bounded excerpt of content centred on the first
// query match, with matched terms wrapped in highlight markers. Pure and
// deterministic. The match is attempted literally first, then via the
// suffix-stripping fallback; when neither finds anything the head of the
// content is returned as an unhighlighted preview.
func Snippet(content, query string, window int) string {
	if window <= 0 {
		window = SnippetWindow
	}

	text := strings.Join(strings.Fields(content), " ")
	words := queryWords(query)

	idx, root := findMatch(text, words)
	if idx < 0 {
		if len(text) > 2*window {
			text = text[:runeStart(text, 2*window)]
		}
		return text + ellipsis
	}

	start := idx - window
	if start < 0 {
		start = 0
	}
	start = runeStart(text, start)
	end := idx + window
	if end > len(text) {
		end = len(text)
	}
	end = runeStart(text, end)

	terms := words
	if root != "" {
		terms = append(append([]string{}, words...), root)
	}
	snippet := highlightTerms(text[start:end], terms)

	if start > 0 {
		snippet = ellipsis + snippet
	}
	if end < len(text) {
		snippet += ellipsis
	}
	return snippet
}

// queryWords strips punctuation from the query and splits it into
// words, discarding single-character ones. Punctuation is deleted, not
// replaced, so "e-mail" yields the term "email" rather than splitting.
func queryWords(query string) []string {
	var cleaned strings.Builder
	for _, r := range query {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			cleaned.WriteRune(r)
		}
	}

	var words []string
	for _, w := range strings.Fields(cleaned.String()) {
		if utf8.RuneCountInString(w) > 1 {
			words = append(words, w)
		}
	}
	return words
}

// runeStart moves i back to the nearest rune boundary so byte slicing
// never cuts a multi-byte rune.
func runeStart(s string, i int) int {
	for i > 0 && i < len(s) && !utf8.RuneStart(s[i]) {
		i--
	}
	return i
}

// lowerPreserving lowercases s rune by rune, keeping any rune whose
// lowered form has a different encoded length. Byte offsets into the
// result are therefore valid offsets into s.
func lowerPreserving(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		lr := unicode.ToLower(r)
		if utf8.RuneLen(lr) != utf8.RuneLen(r) {
			lr = r
		}
		sb.WriteRune(lr)
	}
	return sb.String()
}

// findMatch locates the first query word in the text, literally first
// and then via suffix stripping. Returns the byte offset of the match
// and the stripped root when the stemmer produced it, or (-1, "").
func findMatch(text string, words []string) (int, string) {
	lower := lowerPreserving(text)

	for _, w := range words {
		if idx := strings.Index(lower, strings.ToLower(w)); idx >= 0 {
			return idx, ""
		}
	}

	for _, w := range words {
		lw := strings.ToLower(w)
		if utf8.RuneCountInString(lw) <= 4 {
			continue
		}
		for _, suffix := range stemSuffixes {
			if !strings.HasSuffix(lw, suffix) {
				continue
			}
			r := lw[:len(lw)-len(suffix)]
			if len(r) < minStemRoot {
				continue
			}
			if idx := strings.Index(lower, r); idx >= 0 {
				return idx, r
			}
		}
	}

	return -1, ""
}

// highlightTerms wraps every occurrence of any term in the highlight
// markers. One left-to-right pass, longest term first at each position,
// so a stemmed root never splits a full-word match it sits inside.
func highlightTerms(s string, terms []string) string {
	lowered := make([]string, 0, len(terms))
	seen := make(map[string]bool)
	for _, t := range terms {
		lt := strings.ToLower(t)
		if lt == "" || seen[lt] {
			continue
		}
		seen[lt] = true
		lowered = append(lowered, lt)
	}
	if len(lowered) == 0 {
		return s
	}
	// Longest first so "completing" beats its root "complet".
	for i := range lowered {
		for j := i + 1; j < len(lowered); j++ {
			if len(lowered[j]) > len(lowered[i]) {
				lowered[i], lowered[j] = lowered[j], lowered[i]
			}
		}
	}

	ls := lowerPreserving(s)
	var sb strings.Builder
	i := 0
	for i < len(s) {
		matched := false
		for _, t := range lowered {
			if strings.HasPrefix(ls[i:], t) {
				sb.WriteString(HighlightOpen)
				sb.WriteString(s[i : i+len(t)])
				sb.WriteString(HighlightClose)
				i += len(t)
				matched = true
				break
			}
		}
		if !matched {
			sb.WriteByte(s[i])
			i++
		}
	}
	return sb.String()
}
