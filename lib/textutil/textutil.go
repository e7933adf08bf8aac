package textutil

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// collapses runs of whitespace into single spaces and trims the ends
func NormalizeWhitespace(s string) string {
	s = whitespaceRegex.ReplaceAllString(s, " ")
	return strings.Trim(s, " ")
}

const maxSlugLen = 200

// Slugify lowercases, strips diacritics and collapses every run of
// non-alphanumeric characters into a single hyphen.
func Slugify(s string) string {
	s = strings.ToLower(s)
	s = norm.NFKD.String(s)

	b := strings.Builder{}
	pendingHyphen := false
	for _, r := range s {
		if unicode.Is(unicode.Mn, r) {
			// combining mark left over from NFKD decomposition
			continue
		}
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}

	out := b.String()
	if len(out) > maxSlugLen {
		out = out[:maxSlugLen]
	}
	return out
}

// MasterSlug derives the stable catalog identity of a card from its label
// fields. Missing fields fall back to fixed placeholders so the slug always
// has three segments.
func MasterSlug(setName, collectorNumber, name string) string {
	if setName == "" {
		setName = "unknown"
	}
	if collectorNumber == "" {
		collectorNumber = "x"
	}
	if name == "" {
		name = "card"
	}

	parts := []string{
		Slugify(setName),
		Slugify(collectorNumber),
		Slugify(name),
	}
	nonEmpty := parts[:0]
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, "_")
}

var digitsRegex = regexp.MustCompile(`\d+`)

// CollectorNumberValue extracts the first run of digits as an integer, 0 when
// there is none. Collector numbers like "4a" or "#12" sort by their numeric
// part.
func CollectorNumberValue(collectorNumber string) int {
	digits := digitsRegex.FindString(collectorNumber)
	if digits == "" {
		return 0
	}
	n := 0
	for _, c := range digits {
		n = n*10 + int(c-'0')
		if n > 1<<30 {
			break
		}
	}
	return n
}
