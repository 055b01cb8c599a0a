// Package filter holds the content predicates applied to fetched posts.
// Both are pure functions over a post; applying one twice always yields
// the same decision.
package filter

import (
	"strings"

	"github.com/Aanerud/Reddit-MCP/internal/domain"
)

// Policy decides whether a fetched post is kept.
type Policy func(domain.Post) bool

// Obvious spam/gambling/adult/malware markers checked against URL+domain.
var spamPatterns = []string{
	"spam", "casino", "gambling", "porn", "xxx", "adult",
	"malware", "phishing", "scam",
}

// Known article/news/blog domains and markers.
var readablePatterns = []string{
	"news", "article", "blog", "medium.com", "arxiv.org", "github.com",
	"techcrunch.com", "theverge.com", "arstechnica.com", "wired.com",
	"reuters.com", "bbc.com", "cnn.com", "npr.org", "nytimes.com",
	"washingtonpost.com", "guardian.com", "economist.com",
}

// Image/video hosting markers that make a link post unreadable.
var mediaPatterns = []string{
	"jpg", "jpeg", "png", "gif", "webp", "mp4", "webm", "youtube.com",
	"youtu.be", "tiktok.com", "instagram.com", "imgur.com", "v.redd.it",
	"i.redd.it", "gfycat.com", "streamable.com",
}

// Title keywords suggesting discussion/text content.
var discussionWords = []string{
	"discussion", "question", "ask", "help", "thoughts", "opinion",
	"analysis", "review",
}

// Permissive keeps everything except link posts pointing at obvious
// spam. It minimizes false negatives and leaves the relevance judgment
// to a downstream LLM.
func Permissive(p domain.Post) bool {
	if p.Kind == domain.KindText {
		return true
	}
	if p.Kind == domain.KindLink {
		content := strings.ToLower(p.URL + " " + p.Domain)
		if containsAny(content, spamPatterns) {
			return false
		}
	}
	return true
}

// Readable keeps text posts and link posts that look like articles:
// media hosting is rejected, known article domains are accepted, and
// otherwise the title has to carry a discussion keyword.
func Readable(p domain.Post) bool {
	if p.Kind == domain.KindText {
		return true
	}
	if p.Kind != domain.KindLink {
		return false
	}

	content := strings.ToLower(p.URL + " " + p.Domain)
	if containsAny(content, mediaPatterns) {
		return false
	}
	if containsAny(content, readablePatterns) {
		return true
	}
	return containsAny(strings.ToLower(p.Title), discussionWords)
}

// ByName resolves a policy name from configuration. Unknown names fall
// back to the permissive policy.
func ByName(name string) Policy {
	if name == "readable" {
		return Readable
	}
	return Permissive
}

func containsAny(s string, patterns []string) bool {
	for _, p := range patterns {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}
