package domain

import (
	"context"
	"time"
)

// PostKind tags the content variant of a post.
type PostKind string

const (
	KindLink    PostKind = "link"
	KindText    PostKind = "text"
	KindGallery PostKind = "gallery"
	KindUnknown PostKind = "unknown"
)

// Post is the clean data structure shared by both surfaces.
// Content is kind-dependent: permalink for link posts, body text for text
// posts, the gallery link for gallery posts, empty for unknown.
type Post struct {
	Title           string   `json:"title"`
	Score           int      `json:"score"`
	CommentCount    int      `json:"comment_count"`
	Author          string   `json:"author"`
	Subreddit       string   `json:"subreddit,omitempty"`
	Kind            PostKind `json:"type"`
	Content         string   `json:"content"`
	Permalink       string   `json:"permalink"`
	CreatedUTC      int64    `json:"created_utc"`
	URL             string   `json:"url"`
	Domain          string   `json:"domain"`
	UpvoteRatio     float64  `json:"upvote_ratio"`
	IsSelf          bool     `json:"is_self"`
	Flair           string   `json:"flair"`
	SourceSubreddit string   `json:"source_subreddit,omitempty"`
}

// CommentNode is one node of a post's reply tree. The client builds the
// tree; the rest of the system only traverses it.
type CommentNode struct {
	Author   string
	Score    int
	Body     string
	Children []*CommentNode
}

// Thread is a post together with its comment tree.
type Thread struct {
	Post     Post
	Comments []*CommentNode
}

// SubredditInfo describes a single subreddit.
type SubredditInfo struct {
	Name        string
	Title       string
	Description string
	Subscribers int
	CreatedAt   time.Time
	NSFW        bool
	Type        string
}

// AggregationResult is the output of a topic fan-out.
type AggregationResult struct {
	Posts             []Post
	SubredditsQueried int
	SourceCount       int
}

// Client defines the interface for the upstream Reddit API. Implementations
// handle auth, HTTP, and pagination; everything above works on Posts.
type Client interface {
	HotPosts(ctx context.Context, subreddit string, limit int) ([]Post, error)
	NewPosts(ctx context.Context, subreddit string, limit int) ([]Post, error)
	TopPosts(ctx context.Context, subreddit, period string, limit int) ([]Post, error)
	RisingPosts(ctx context.Context, subreddit string, limit int) ([]Post, error)
	FrontPage(ctx context.Context, sort, period string, limit int) ([]Post, error)
	PostWithComments(ctx context.Context, postID string, commentLimit, commentDepth int) (*Thread, error)
	SubredditInfo(ctx context.Context, subreddit string) (*SubredditInfo, error)
}
