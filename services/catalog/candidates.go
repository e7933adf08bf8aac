package catalog

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// resolution variants the image host is known to serve, best first
var imageSizeOrder = []int{1600, 1200, 1000, 800, 600, 480, 400, 360, 320, 300, 240, 180, 120, 90, 60}
var imageWidthOrder = []int{1600, 1200, 1000, 800, 600, 480}

var (
	sizePathRegex   = regexp.MustCompile(`(?i)/(\d+)(\.(?:jpg|png))$`)
	widthParamRegex = regexp.MustCompile(`(?i)([?&])w=(\d+)`)
)

type imageCandidate struct {
	url string
	tag string
}

// imageCandidates expands a base image url into the ranked variants worth
// probing. Urls carrying a numeric pixel size in their path get the size
// ladder, urls carrying a width parameter get the width ladder, and the
// base url itself is always the final fallback.
func imageCandidates(base string) []imageCandidate {
	if base == "" {
		return nil
	}

	seen := map[string]bool{}
	var out []imageCandidate
	push := func(u string) {
		if u == "" || seen[u] {
			return
		}
		seen[u] = true
		out = append(out, imageCandidate{url: u, tag: qualityTag(u)})
	}

	pathOnly, query, hasQuery := strings.Cut(base, "?")
	querySuffix := ""
	if hasQuery {
		querySuffix = "?" + query
	}

	if m := sizePathRegex.FindStringSubmatch(pathOnly); m != nil {
		prefix := pathOnly[:len(pathOnly)-len(m[0])]
		ext := m[2]
		for _, size := range imageSizeOrder {
			push(fmt.Sprintf("%s/%d%s%s", prefix, size, ext, querySuffix))
		}
	}

	if widthParamRegex.MatchString(base) {
		for _, width := range imageWidthOrder {
			push(widthParamRegex.ReplaceAllString(base, fmt.Sprintf("${1}w=%d", width)))
		}
	}

	push(base)
	return out
}

// qualityTag derives the tag a url implies: the numeric pixel size in its
// path, "w<N>" for a width parameter, "orig" otherwise.
func qualityTag(u string) string {
	pathOnly, _, _ := strings.Cut(u, "?")
	if m := sizePathRegex.FindStringSubmatch(pathOnly); m != nil {
		return m[1]
	}
	if m := widthParamRegex.FindStringSubmatch(u); m != nil {
		return "w" + m[2]
	}
	return "orig"
}

// tag ranking classes, lower class wins, higher value wins within a class
const (
	tagClassSize = iota
	tagClassWidth
	tagClassOpaque
)

func tagRank(tag string) (class int, value int) {
	if tag == "" || tag == "orig" {
		return tagClassOpaque, 0
	}
	if strings.HasPrefix(tag, "w") {
		n, err := strconv.Atoi(tag[1:])
		if err == nil {
			return tagClassWidth, n
		}
		return tagClassOpaque, 0
	}
	n, err := strconv.Atoi(tag)
	if err == nil {
		return tagClassSize, n
	}
	return tagClassOpaque, 0
}

// betterTag reports whether a ranks strictly above b.
func betterTag(a, b string) bool {
	aClass, aValue := tagRank(a)
	bClass, bValue := tagRank(b)
	if aClass != bClass {
		return aClass < bClass
	}
	return aValue > bValue
}
