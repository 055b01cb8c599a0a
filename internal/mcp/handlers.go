package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/Aanerud/Reddit-MCP/internal/domain"
	"github.com/Aanerud/Reddit-MCP/internal/render"
)

const (
	defaultListingLimit = 10
	defaultTopicLimit   = 50
	defaultMaxSubs      = 20
	defaultCommentLimit = 20
	defaultCommentDepth = 3
)

// Tool handlers. Upstream failures are rendered as plain text so the
// protocol call still succeeds; only malformed arguments are protocol
// errors.

func (s *Server) handleRedditTopic(ctx context.Context, id any, arguments json.RawMessage) *Response {
	var args struct {
		Topic         string `json:"topic"`
		Limit         int    `json:"limit"`
		MaxSubreddits int    `json:"max_subreddits"`
	}
	if err := json.Unmarshal(arguments, &args); err != nil {
		return s.errorResponse(id, InvalidParams, "Invalid arguments: "+err.Error())
	}
	if args.Topic == "" {
		return s.errorResponse(id, InvalidParams, "topic is required")
	}
	if args.Limit <= 0 {
		args.Limit = defaultTopicLimit
	}
	if args.MaxSubreddits <= 0 {
		args.MaxSubreddits = defaultMaxSubs
	}

	res, err := s.aggregator.Aggregate(ctx, args.Topic, args.Limit, args.MaxSubreddits)
	if err != nil {
		// Unknown topic included: the message lists the known topics.
		return s.textResult(id, err.Error())
	}
	return s.textResult(id, render.TopicDigest(args.Topic, res))
}

func (s *Server) handleRedditHot(ctx context.Context, id any, arguments json.RawMessage) *Response {
	var args struct {
		Subreddit string `json:"subreddit"`
		Limit     int    `json:"limit"`
	}
	if err := json.Unmarshal(arguments, &args); err != nil {
		return s.errorResponse(id, InvalidParams, "Invalid arguments: "+err.Error())
	}
	if args.Subreddit == "" {
		return s.errorResponse(id, InvalidParams, "subreddit is required")
	}
	if args.Limit <= 0 {
		args.Limit = defaultListingLimit
	}

	posts, err := s.client.HotPosts(ctx, args.Subreddit, args.Limit)
	if err != nil {
		return s.fetchFailure(id, err)
	}
	return s.textResult(id, render.Posts(capPosts(posts, args.Limit)))
}

func (s *Server) handleRedditPost(ctx context.Context, id any, arguments json.RawMessage) *Response {
	var args struct {
		PostID       string `json:"post_id"`
		CommentLimit *int   `json:"comment_limit"`
		CommentDepth *int   `json:"comment_depth"`
	}
	if err := json.Unmarshal(arguments, &args); err != nil {
		return s.errorResponse(id, InvalidParams, "Invalid arguments: "+err.Error())
	}
	if args.PostID == "" {
		return s.errorResponse(id, InvalidParams, "post_id is required")
	}
	commentLimit := defaultCommentLimit
	if args.CommentLimit != nil {
		commentLimit = *args.CommentLimit
	}
	commentDepth := defaultCommentDepth
	if args.CommentDepth != nil {
		commentDepth = *args.CommentDepth
	}

	thread, err := s.client.PostWithComments(ctx, args.PostID, commentLimit, commentDepth)
	if err != nil {
		return s.fetchFailure(id, err)
	}
	return s.textResult(id, render.Thread(thread))
}

func (s *Server) handleRedditFront(ctx context.Context, id any, arguments json.RawMessage) *Response {
	var args struct {
		Sort       string `json:"sort"`
		Limit      int    `json:"limit"`
		TimeFilter string `json:"time_filter"`
	}
	if err := json.Unmarshal(arguments, &args); err != nil {
		return s.errorResponse(id, InvalidParams, "Invalid arguments: "+err.Error())
	}
	if args.Sort == "" {
		args.Sort = "hot"
	}
	if args.Sort != "hot" && args.Sort != "top" && args.Sort != "new" {
		return s.textResult(id, fmt.Sprintf("Invalid sort method: %s. Use 'hot', 'top', or 'new'", args.Sort))
	}
	if args.Limit <= 0 {
		args.Limit = defaultListingLimit
	}
	if args.TimeFilter == "" {
		args.TimeFilter = "day"
	}

	posts, err := s.client.FrontPage(ctx, args.Sort, args.TimeFilter, args.Limit)
	if err != nil {
		return s.fetchFailure(id, err)
	}
	return s.textResult(id, render.Posts(capPosts(posts, args.Limit)))
}

func (s *Server) handleRedditTop(ctx context.Context, id any, arguments json.RawMessage) *Response {
	var args struct {
		Subreddit  string `json:"subreddit"`
		TimePeriod string `json:"time_period"`
		Limit      int    `json:"limit"`
	}
	if err := json.Unmarshal(arguments, &args); err != nil {
		return s.errorResponse(id, InvalidParams, "Invalid arguments: "+err.Error())
	}
	if args.Subreddit == "" {
		return s.errorResponse(id, InvalidParams, "subreddit is required")
	}
	if args.TimePeriod == "" {
		args.TimePeriod = "week"
	}
	if args.Limit <= 0 {
		args.Limit = defaultListingLimit
	}

	posts, err := s.client.TopPosts(ctx, args.Subreddit, args.TimePeriod, args.Limit)
	if err != nil {
		return s.fetchFailure(id, err)
	}
	header := fmt.Sprintf("Top posts from r/%s in the last %s:\n\n", args.Subreddit, args.TimePeriod)
	return s.textResult(id, header+render.Posts(capPosts(posts, args.Limit)))
}

func (s *Server) handleRedditNew(ctx context.Context, id any, arguments json.RawMessage) *Response {
	var args struct {
		Subreddit string `json:"subreddit"`
		Limit     int    `json:"limit"`
	}
	if err := json.Unmarshal(arguments, &args); err != nil {
		return s.errorResponse(id, InvalidParams, "Invalid arguments: "+err.Error())
	}
	if args.Subreddit == "" {
		return s.errorResponse(id, InvalidParams, "subreddit is required")
	}
	if args.Limit <= 0 {
		args.Limit = defaultListingLimit
	}

	posts, err := s.client.NewPosts(ctx, args.Subreddit, args.Limit)
	if err != nil {
		return s.fetchFailure(id, err)
	}
	header := fmt.Sprintf("Newest posts from r/%s:\n\n", args.Subreddit)
	return s.textResult(id, header+render.Posts(capPosts(posts, args.Limit)))
}

func (s *Server) handleRedditRising(ctx context.Context, id any, arguments json.RawMessage) *Response {
	var args struct {
		Subreddit string `json:"subreddit"`
		Limit     int    `json:"limit"`
	}
	if err := json.Unmarshal(arguments, &args); err != nil {
		return s.errorResponse(id, InvalidParams, "Invalid arguments: "+err.Error())
	}
	if args.Subreddit == "" {
		return s.errorResponse(id, InvalidParams, "subreddit is required")
	}
	if args.Limit <= 0 {
		args.Limit = defaultListingLimit
	}

	posts, err := s.client.RisingPosts(ctx, args.Subreddit, args.Limit)
	if err != nil {
		return s.fetchFailure(id, err)
	}
	header := fmt.Sprintf("Rising posts from r/%s:\n\n", args.Subreddit)
	return s.textResult(id, header+render.Posts(capPosts(posts, args.Limit)))
}

func (s *Server) handleRedditInfo(ctx context.Context, id any, arguments json.RawMessage) *Response {
	var args struct {
		Subreddit string `json:"subreddit"`
	}
	if err := json.Unmarshal(arguments, &args); err != nil {
		return s.errorResponse(id, InvalidParams, "Invalid arguments: "+err.Error())
	}
	if args.Subreddit == "" {
		return s.errorResponse(id, InvalidParams, "subreddit is required")
	}

	info, err := s.client.SubredditInfo(ctx, args.Subreddit)
	if err != nil {
		return s.fetchFailure(id, err)
	}
	return s.textResult(id, render.SubredditInfo(info))
}

// capPosts enforces the requested limit locally; the upstream limit
// parameter is only a hint.
func capPosts(posts []domain.Post, limit int) []domain.Post {
	if limit >= 0 && len(posts) > limit {
		return posts[:limit]
	}
	return posts
}

func (s *Server) fetchFailure(id any, err error) *Response {
	slog.Error("Tool fetch failed", "err", err)
	return s.textResult(id, fmt.Sprintf("An error occurred: %v", err))
}
