package api

import (
	"github.com/Aanerud/Reddit-MCP/internal/domain"
	"github.com/Aanerud/Reddit-MCP/internal/render"
)

// Request bodies. Zero or negative numeric fields fall back to the
// documented defaults in the handler.

type HotThreadsRequest struct {
	Subreddit string `json:"subreddit" binding:"required"`
	Limit     int    `json:"limit"`
}

type PostContentRequest struct {
	PostID       string `json:"post_id" binding:"required"`
	CommentLimit *int   `json:"comment_limit"`
	CommentDepth *int   `json:"comment_depth"`
}

type FrontPageRequest struct {
	Sort       string `json:"sort"`
	Limit      int    `json:"limit"`
	TimeFilter string `json:"time_filter"`
}

type SubredditPostsByTimeRequest struct {
	Subreddit  string `json:"subreddit" binding:"required"`
	TimePeriod string `json:"time_period"`
	Limit      int    `json:"limit"`
}

type SubredditNewPostsRequest struct {
	Subreddit string `json:"subreddit" binding:"required"`
	Limit     int    `json:"limit"`
}

type SubredditRisingPostsRequest struct {
	Subreddit string `json:"subreddit" binding:"required"`
	Limit     int    `json:"limit"`
}

type SubredditInfoRequest struct {
	Subreddit string `json:"subreddit" binding:"required"`
}

type TopicLatestRequest struct {
	Topic         string `json:"topic" binding:"required"`
	Limit         int    `json:"limit"`
	MaxSubreddits int    `json:"max_subreddits"`
}

// RedditPost is the wire form of a post for single-subreddit listings.
type RedditPost struct {
	Title    string `json:"title"`
	Score    int    `json:"score"`
	Comments int    `json:"comments"`
	Author   string `json:"author"`
	PostType string `json:"post_type"`
	Content  string `json:"content"`
	Link     string `json:"link"`
}

// TopicPost extends RedditPost with the aggregation metadata.
type TopicPost struct {
	RedditPost
	SourceSubreddit string  `json:"source_subreddit"`
	CreatedUTC      int64   `json:"created_utc"`
	URL             string  `json:"url"`
	Domain          string  `json:"domain"`
	UpvoteRatio     float64 `json:"upvote_ratio"`
	IsSelf          bool    `json:"is_self"`
	Flair           string  `json:"flair"`
}

type HotThreadsResponse struct {
	Subreddit string       `json:"subreddit"`
	Posts     []RedditPost `json:"posts"`
}

type PostContentResponse struct {
	PostID   string `json:"post_id"`
	Title    string `json:"title"`
	Score    int    `json:"score"`
	Author   string `json:"author"`
	PostType string `json:"post_type"`
	Content  string `json:"content"`
	Comments string `json:"comments"`
}

type FrontPageResponse struct {
	Sort       string       `json:"sort"`
	TimeFilter string       `json:"time_filter"`
	Posts      []RedditPost `json:"posts"`
}

type SubredditInfoResponse struct {
	Subreddit     string `json:"subreddit"`
	Subscribers   int    `json:"subscribers"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	CreatedAt     string `json:"created_at"`
	NSFW          bool   `json:"nsfw"`
	SubredditType string `json:"subreddit_type"`
}

type TopicLatestResponse struct {
	Topic             string      `json:"topic"`
	TotalPosts        int         `json:"total_posts"`
	SubredditsQueried int         `json:"subreddits_queried"`
	Posts             []TopicPost `json:"posts"`
}

type TopicsResponse struct {
	Topics      []string `json:"topics"`
	TotalCount  int      `json:"total_count"`
	Description string   `json:"description"`
}

// ErrorResponse is the structured error body for the REST surface.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

func toRedditPost(p domain.Post) RedditPost {
	return RedditPost{
		Title:    p.Title,
		Score:    p.Score,
		Comments: p.CommentCount,
		Author:   p.Author,
		PostType: string(p.Kind),
		Content:  p.Content,
		Link:     render.PermalinkURL(p.Permalink),
	}
}

func toRedditPosts(posts []domain.Post) []RedditPost {
	out := make([]RedditPost, 0, len(posts))
	for _, p := range posts {
		out = append(out, toRedditPost(p))
	}
	return out
}

func toTopicPost(p domain.Post) TopicPost {
	return TopicPost{
		RedditPost:      toRedditPost(p),
		SourceSubreddit: p.SourceSubreddit,
		CreatedUTC:      p.CreatedUTC,
		URL:             p.URL,
		Domain:          p.Domain,
		UpvoteRatio:     p.UpvoteRatio,
		IsSelf:          p.IsSelf,
		Flair:           p.Flair,
	}
}
