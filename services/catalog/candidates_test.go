package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func candidateUrls(base string) []string {
	var urls []string
	for _, c := range imageCandidates(base) {
		urls = append(urls, c.url)
	}
	return urls
}

func TestImageCandidatesSizePath(t *testing.T) {
	urls := candidateUrls("https://img.example.com/cards/abc/60.jpg")
	require.Contains(t, urls, "https://img.example.com/cards/abc/300.jpg")
	require.Contains(t, urls, "https://img.example.com/cards/abc/180.jpg")
	require.Contains(t, urls, "https://img.example.com/cards/abc/1600.jpg")
	// original is the final fallback, deduplicated into its ladder slot
	require.Equal(t, "https://img.example.com/cards/abc/60.jpg", urls[len(urls)-1])

	// descending quality order
	require.Equal(t, "https://img.example.com/cards/abc/1600.jpg", urls[0])
}

func TestImageCandidatesKeepQuery(t *testing.T) {
	urls := candidateUrls("https://img.example.com/x/180.png?v=3")
	require.Equal(t, "https://img.example.com/x/1600.png?v=3", urls[0])
	require.Contains(t, urls, "https://img.example.com/x/180.png?v=3")
	require.Equal(t, "https://img.example.com/x/60.png?v=3", urls[len(urls)-1])
}

func TestImageCandidatesWidthParam(t *testing.T) {
	urls := candidateUrls("https://img.example.com/card.jpg?w=60")
	require.Equal(t, "https://img.example.com/card.jpg?w=1600", urls[0])
	require.Contains(t, urls, "https://img.example.com/card.jpg?w=480")
	require.Equal(t, "https://img.example.com/card.jpg?w=60", urls[len(urls)-1])
}

func TestImageCandidatesOpaque(t *testing.T) {
	urls := candidateUrls("https://img.example.com/card")
	require.Equal(t, []string{"https://img.example.com/card"}, urls)
	require.Nil(t, candidateUrls(""))
}

func TestQualityTag(t *testing.T) {
	require.Equal(t, "300", qualityTag("https://img.example.com/a/300.jpg"))
	require.Equal(t, "60", qualityTag("https://img.example.com/a/60.png?v=1"))
	require.Equal(t, "w480", qualityTag("https://img.example.com/a.jpg?w=480"))
	require.Equal(t, "orig", qualityTag("https://img.example.com/a.jpg"))
}

func TestBetterTag(t *testing.T) {
	// numeric pixel tags rank above width tags rank above orig
	require.True(t, betterTag("300", "w1600"))
	require.True(t, betterTag("60", "w1600"))
	require.True(t, betterTag("w480", "orig"))
	require.True(t, betterTag("300", "180"))
	require.True(t, betterTag("w480", "w60"))
	require.False(t, betterTag("orig", "60"))
	require.False(t, betterTag("180", "300"))
}
