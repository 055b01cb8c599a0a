package api

import (
	"errors"
	"log/slog"
	"net/http"
	"sort"

	"github.com/Aanerud/Reddit-MCP/internal/aggregate"
	"github.com/Aanerud/Reddit-MCP/internal/domain"
	"github.com/Aanerud/Reddit-MCP/internal/render"
	"github.com/gin-gonic/gin"
)

const serviceName = "Reddit MCP API"

const (
	defaultListingLimit = 10
	defaultCommentLimit = 20
	defaultCommentDepth = 3
	defaultTopicLimit   = 50
	defaultMaxSubs      = 20
)

// Handler holds the REST request handlers.
type Handler struct {
	client     domain.Client
	aggregator *aggregate.Aggregator
	mcpEnabled bool
}

func NewHandler(client domain.Client, aggregator *aggregate.Aggregator, mcpEnabled bool) *Handler {
	return &Handler{client: client, aggregator: aggregator, mcpEnabled: mcpEnabled}
}

// Health reports liveness for the container platform.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": serviceName})
}

// Root describes the available endpoints.
func (h *Handler) Root(c *gin.Context) {
	mcpEndpoint := "(disabled - set MCP_API_KEY)"
	if h.mcpEnabled {
		mcpEndpoint = "/mcp"
	}
	c.JSON(http.StatusOK, gin.H{
		"message": serviceName,
		"version": "2.0.0",
		"endpoints": gin.H{
			"rest_api": gin.H{
				"hot_threads":       "/api/hot-threads",
				"post_content":      "/api/post-content",
				"front_page":        "/api/front-page",
				"subreddit_by_time": "/api/subreddit-posts-by-time",
				"subreddit_new":     "/api/subreddit-new-posts",
				"subreddit_rising":  "/api/subreddit-rising-posts",
				"subreddit_info":    "/api/subreddit-info",
				"topic_latest":      "/api/topic-latest",
				"topics":            "/api/topics",
			},
			"mcp_protocol": gin.H{
				"endpoint": mcpEndpoint,
				"info":     "/mcp-info",
			},
			"utilities": gin.H{
				"health":     "/health",
				"openapi_30": "/openapi-3.0.json",
				"dashboard":  "/dashboard",
			},
		},
	})
}

// MCPInfo documents the MCP endpoint for integrators.
func (h *Handler) MCPInfo(c *gin.Context) {
	tools := []string{}
	var endpoint any
	var auth any
	if h.mcpEnabled {
		endpoint = "/mcp"
		auth = "API Key (X-API-Key header)"
		tools = []string{
			"reddit_topic", "reddit_hot", "reddit_post", "reddit_front",
			"reddit_top", "reddit_new", "reddit_rising", "reddit_info",
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"mcp_enabled":     h.mcpEnabled,
		"endpoint":        endpoint,
		"transport":       "Streamable HTTP",
		"authentication":  auth,
		"tools_available": tools,
	})
}

func (h *Handler) HotThreads(c *gin.Context) {
	var req HotThreadsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Detail: "Invalid request body: " + err.Error()})
		return
	}
	if req.Limit <= 0 {
		req.Limit = defaultListingLimit
	}

	posts, err := h.client.HotPosts(c.Request.Context(), req.Subreddit, req.Limit)
	if err != nil {
		h.upstreamError(c, "Error fetching hot threads", err)
		return
	}
	c.JSON(http.StatusOK, HotThreadsResponse{Subreddit: req.Subreddit, Posts: toRedditPosts(capPosts(posts, req.Limit))})
}

func (h *Handler) PostContent(c *gin.Context) {
	var req PostContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Detail: "Invalid request body: " + err.Error()})
		return
	}
	commentLimit := defaultCommentLimit
	if req.CommentLimit != nil {
		commentLimit = *req.CommentLimit
	}
	commentDepth := defaultCommentDepth
	if req.CommentDepth != nil {
		commentDepth = *req.CommentDepth
	}

	thread, err := h.client.PostWithComments(c.Request.Context(), req.PostID, commentLimit, commentDepth)
	if err != nil {
		h.upstreamError(c, "Error fetching post content", err)
		return
	}
	c.JSON(http.StatusOK, PostContentResponse{
		PostID:   req.PostID,
		Title:    thread.Post.Title,
		Score:    thread.Post.Score,
		Author:   thread.Post.Author,
		PostType: string(thread.Post.Kind),
		Content:  thread.Post.Content,
		Comments: render.CommentsOnly(thread.Comments),
	})
}

func (h *Handler) FrontPage(c *gin.Context) {
	var req FrontPageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Detail: "Invalid request body: " + err.Error()})
		return
	}
	if req.Sort == "" {
		req.Sort = "hot"
	}
	if req.Sort != "hot" && req.Sort != "top" && req.Sort != "new" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Detail: "Invalid sort method. Use 'hot', 'top', or 'new'"})
		return
	}
	if req.Limit <= 0 {
		req.Limit = defaultListingLimit
	}
	if req.TimeFilter == "" {
		req.TimeFilter = "day"
	}

	posts, err := h.client.FrontPage(c.Request.Context(), req.Sort, req.TimeFilter, req.Limit)
	if err != nil {
		h.upstreamError(c, "Error fetching front page posts", err)
		return
	}
	c.JSON(http.StatusOK, FrontPageResponse{Sort: req.Sort, TimeFilter: req.TimeFilter, Posts: toRedditPosts(capPosts(posts, req.Limit))})
}

func (h *Handler) SubredditPostsByTime(c *gin.Context) {
	var req SubredditPostsByTimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Detail: "Invalid request body: " + err.Error()})
		return
	}
	if req.TimePeriod == "" {
		req.TimePeriod = "week"
	}
	if req.Limit <= 0 {
		req.Limit = defaultListingLimit
	}

	posts, err := h.client.TopPosts(c.Request.Context(), req.Subreddit, req.TimePeriod, req.Limit)
	if err != nil {
		h.upstreamError(c, "Error fetching subreddit posts by time", err)
		return
	}
	c.JSON(http.StatusOK, HotThreadsResponse{Subreddit: req.Subreddit, Posts: toRedditPosts(capPosts(posts, req.Limit))})
}

func (h *Handler) SubredditNewPosts(c *gin.Context) {
	var req SubredditNewPostsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Detail: "Invalid request body: " + err.Error()})
		return
	}
	if req.Limit <= 0 {
		req.Limit = defaultListingLimit
	}

	posts, err := h.client.NewPosts(c.Request.Context(), req.Subreddit, req.Limit)
	if err != nil {
		h.upstreamError(c, "Error fetching subreddit new posts", err)
		return
	}
	c.JSON(http.StatusOK, HotThreadsResponse{Subreddit: req.Subreddit, Posts: toRedditPosts(capPosts(posts, req.Limit))})
}

func (h *Handler) SubredditRisingPosts(c *gin.Context) {
	var req SubredditRisingPostsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Detail: "Invalid request body: " + err.Error()})
		return
	}
	if req.Limit <= 0 {
		req.Limit = defaultListingLimit
	}

	posts, err := h.client.RisingPosts(c.Request.Context(), req.Subreddit, req.Limit)
	if err != nil {
		h.upstreamError(c, "Error fetching subreddit rising posts", err)
		return
	}
	c.JSON(http.StatusOK, HotThreadsResponse{Subreddit: req.Subreddit, Posts: toRedditPosts(capPosts(posts, req.Limit))})
}

func (h *Handler) SubredditInfo(c *gin.Context) {
	var req SubredditInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Detail: "Invalid request body: " + err.Error()})
		return
	}

	info, err := h.client.SubredditInfo(c.Request.Context(), req.Subreddit)
	if err != nil {
		h.upstreamError(c, "Error fetching subreddit info", err)
		return
	}
	c.JSON(http.StatusOK, SubredditInfoResponse{
		Subreddit:     info.Name,
		Subscribers:   info.Subscribers,
		Title:         info.Title,
		Description:   orDefault(info.Description, "No description available"),
		CreatedAt:     info.CreatedAt.String(),
		NSFW:          info.NSFW,
		SubredditType: info.Type,
	})
}

func (h *Handler) TopicLatest(c *gin.Context) {
	var req TopicLatestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Detail: "Invalid request body: " + err.Error()})
		return
	}
	if req.Limit <= 0 {
		req.Limit = defaultTopicLimit
	}
	if req.MaxSubreddits <= 0 {
		req.MaxSubreddits = defaultMaxSubs
	}

	res, err := h.aggregator.Aggregate(c.Request.Context(), req.Topic, req.Limit, req.MaxSubreddits)
	if err != nil {
		var unknown *aggregate.UnknownTopicError
		if errors.As(err, &unknown) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Detail: unknown.Error()})
			return
		}
		h.upstreamError(c, "Error fetching topic latest", err)
		return
	}

	posts := make([]TopicPost, 0, len(res.Posts))
	for _, p := range res.Posts {
		posts = append(posts, toTopicPost(p))
	}
	c.JSON(http.StatusOK, TopicLatestResponse{
		Topic:             req.Topic,
		TotalPosts:        len(posts),
		SubredditsQueried: res.SubredditsQueried,
		Posts:             posts,
	})
}

func (h *Handler) Topics(c *gin.Context) {
	names := h.aggregator.Topics().Names()
	sort.Strings(names)
	c.JSON(http.StatusOK, TopicsResponse{
		Topics:      names,
		TotalCount:  len(names),
		Description: "Available topics for content aggregation",
	})
}

// capPosts enforces the requested limit locally. Listing endpoints treat
// the upstream limit as a hint; a client that over-returns must not leak
// past what the caller asked for.
func capPosts(posts []domain.Post, limit int) []domain.Post {
	if limit >= 0 && len(posts) > limit {
		return posts[:limit]
	}
	return posts
}

func (h *Handler) upstreamError(c *gin.Context, msg string, err error) {
	slog.Error(msg, "err", err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Detail: msg + ": " + err.Error()})
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
