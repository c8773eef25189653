package services

import (
	"html"
	"math"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// WordsPerMinute is the reading speed used for time_reading.
const WordsPerMinute = 250

const maxTags = 10

var (
	wordPattern = regexp.MustCompile(`[\p{L}\p{N}_]+`)

	ugcPolicy    = bluemonday.UGCPolicy()
	strictPolicy = bluemonday.StrictPolicy()
)

// ReadingTime estimates minutes to read body: ceil(words / WordsPerMinute), at
// least 1 for any non-blank body and 0 for a blank one. Markup is not counted.
func ReadingTime(body string) int {
	if strings.TrimSpace(body) == "" {
		return 0
	}

	words := len(wordPattern.FindAllString(plainText(body), -1))
	minutes := int(math.Ceil(float64(words) / WordsPerMinute))
	if minutes < 1 {
		return 1
	}
	return minutes
}

// SanitizeBody strips unsafe markup from user supplied HTML. Plain text is returned as is.
func SanitizeBody(body string) string {
	if !strings.ContainsAny(body, "<>") {
		return body
	}
	return ugcPolicy.Sanitize(body)
}

func plainText(s string) string {
	if !strings.ContainsAny(s, "<>") {
		return s
	}
	return html.UnescapeString(strictPolicy.Sanitize(s))
}

var accentMap = map[rune]rune{
	'á': 'a', 'à': 'a', 'ã': 'a', 'â': 'a', 'ä': 'a', 'å': 'a', 'ā': 'a',
	'é': 'e', 'è': 'e', 'ê': 'e', 'ë': 'e', 'ē': 'e',
	'í': 'i', 'ì': 'i', 'î': 'i', 'ï': 'i', 'ī': 'i',
	'ó': 'o', 'ò': 'o', 'õ': 'o', 'ô': 'o', 'ö': 'o', 'ø': 'o', 'ō': 'o',
	'ú': 'u', 'ù': 'u', 'û': 'u', 'ü': 'u', 'ū': 'u',
	'ç': 'c', 'ć': 'c', 'č': 'c',
	'ñ': 'n', 'ń': 'n',
	'ý': 'y', 'ÿ': 'y',
	'ß': 's',
}

const maxSlugLength = 200

// Slugify turns a title into a lower-case, hyphen separated ASCII slug.
// Titles with no usable characters become "article".
func Slugify(title string) string {
	var b strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(title) {
		if repl, ok := accentMap[r]; ok {
			r = repl
		}
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
			continue
		}
		pendingDash = true
	}

	slug := b.String()
	if len(slug) > maxSlugLength {
		slug = strings.TrimRight(slug[:maxSlugLength], "-")
	}
	if slug == "" {
		return "article"
	}
	return slug
}

func normalizeTags(in []string) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0, len(in))
	for _, t := range in {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	if len(out) > maxTags {
		out = out[:maxTags]
	}
	return out
}
