// Package render formats posts and comment trees as plain text for the
// MCP surface. The layout is emoji-labeled and truncated for LLM
// consumption; the REST surface returns typed objects instead.
package render

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Aanerud/Reddit-MCP/internal/domain"
)

const contentLimit = 300

// PermalinkURL builds the canonical reddit.com URL for a permalink.
func PermalinkURL(permalink string) string {
	return "https://reddit.com" + permalink
}

// Truncate caps s at n runes, appending "..." when something was cut.
func Truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}

// Post formats one post as a labeled block ending in a "---" separator.
// The subreddit line is included only when the post carries one, so
// single-subreddit listings stay uncluttered.
func Post(p domain.Post) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Title: %s\n", p.Title)
	if p.Subreddit != "" {
		fmt.Fprintf(&b, "Subreddit: r/%s\n", p.Subreddit)
	}
	fmt.Fprintf(&b, "Score: %d\n", p.Score)
	fmt.Fprintf(&b, "Comments: %d\n", p.CommentCount)
	fmt.Fprintf(&b, "Author: %s\n", p.Author)
	fmt.Fprintf(&b, "Type: %s\n", p.Kind)
	fmt.Fprintf(&b, "Content: %s\n", p.Content)
	fmt.Fprintf(&b, "Link: %s\n", PermalinkURL(p.Permalink))
	b.WriteString("---")
	return b.String()
}

// Posts joins post blocks with blank lines.
func Posts(posts []domain.Post) string {
	blocks := make([]string, 0, len(posts))
	for _, p := range posts {
		blocks = append(blocks, Post(p))
	}
	return strings.Join(blocks, "\n\n")
}

// CommentTree renders a reply tree depth-first, indenting each level
// with a "-- " prefix.
func CommentTree(node *domain.CommentNode, depth int) string {
	indent := strings.Repeat("-- ", depth)
	content := fmt.Sprintf(
		"%s* Author: %s\n%s  Score: %d\n%s  %s\n",
		indent, node.Author, indent, node.Score, indent, node.Body,
	)

	for _, child := range node.Children {
		content += "\n" + CommentTree(child, depth+1)
	}
	return content
}

// Thread renders a post followed by its comment tree.
func Thread(t *domain.Thread) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Title: %s\n", t.Post.Title)
	fmt.Fprintf(&b, "Score: %d\n", t.Post.Score)
	fmt.Fprintf(&b, "Author: %s\n", t.Post.Author)
	fmt.Fprintf(&b, "Type: %s\n", t.Post.Kind)
	fmt.Fprintf(&b, "Content: %s\n", t.Post.Content)

	if len(t.Comments) == 0 {
		b.WriteString("\nNo comments found.")
		return b.String()
	}

	b.WriteString("\nComments:\n")
	for _, c := range t.Comments {
		b.WriteString("\n" + CommentTree(c, 0))
	}
	return b.String()
}

// CommentsOnly renders just the comment trees, used by the REST
// post-content response where comments travel as one text field.
func CommentsOnly(comments []*domain.CommentNode) string {
	if len(comments) == 0 {
		return "No comments found."
	}
	blocks := make([]string, 0, len(comments))
	for _, c := range comments {
		blocks = append(blocks, CommentTree(c, 0))
	}
	return strings.Join(blocks, "\n\n")
}

// TopicDigest renders an aggregation result as a numbered digest with
// per-post metadata lines.
func TopicDigest(topic string, res *domain.AggregationResult) string {
	if len(res.Posts) == 0 {
		return fmt.Sprintf("No readable content found for topic '%s'", topic)
	}

	lines := []string{fmt.Sprintf(
		"Latest content for topic: %s (from %d subreddits, sorted by recency)\n",
		topic, res.SourceCount,
	)}

	for i, p := range res.Posts {
		created := "unknown"
		if p.CreatedUTC > 0 {
			created = time.Unix(p.CreatedUTC, 0).Format("2006-01-02 15:04:05")
		}
		domainName := p.Domain
		if domainName == "" {
			domainName = "self"
		}
		flair := p.Flair
		if flair == "" {
			flair = "none"
		}

		lines = append(lines, fmt.Sprintf(
			"%d. [%s] %s\n"+
				"   📊 Score: %d | 💬 Comments: %d | 👤 Author: %s\n"+
				"   📅 Created: %s | 📈 Upvote ratio: %.2f\n"+
				"   🏷️ Type: %s | Domain: %s | Flair: %s\n"+
				"   📝 Content: %s\n"+
				"   🔗 Link: %s\n",
			i+1, p.SourceSubreddit, p.Title,
			p.Score, p.CommentCount, p.Author,
			created, p.UpvoteRatio,
			p.Kind, domainName, flair,
			Truncate(p.Content, contentLimit),
			PermalinkURL(p.Permalink),
		))
	}
	return strings.Join(lines, "\n")
}

// SubredditInfo renders subreddit metadata as a labeled block.
func SubredditInfo(info *domain.SubredditInfo) string {
	desc := info.Description
	if desc == "" {
		desc = "No description available"
	}
	nsfw := "No"
	if info.NSFW {
		nsfw = "Yes"
	}
	return fmt.Sprintf(
		"Subreddit: r/%s\nSubscribers: %s\nTitle: %s\nDescription: %s\nCreated: %s\nNSFW: %s\nType: %s\n",
		info.Name, groupDigits(info.Subscribers), info.Title, desc,
		info.CreatedAt.Format(time.DateTime), nsfw, info.Type,
	)
}

// groupDigits inserts thousands separators, e.g. 1234567 -> 1,234,567.
func groupDigits(n int) string {
	s := strconv.Itoa(n)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	out := strings.Join(parts, ",")
	if neg {
		out = "-" + out
	}
	return out
}
