package api

import (
	"github.com/gin-gonic/gin"
)

// SetupRoutes registers the REST surface. The MCP handler is mounted
// behind API-key auth only when a key is configured; with no key the
// endpoint does not exist at all.
func SetupRoutes(router *gin.Engine, h *Handler, mcpHandler gin.HandlerFunc, mcpAPIKey string, extra ...RouteOption) {
	router.GET("/", h.Root)
	router.GET("/health", h.Health)
	router.GET("/openapi-3.0.json", h.OpenAPI)
	router.GET("/mcp-info", h.MCPInfo)

	api := router.Group("/api")
	{
		api.POST("/hot-threads", h.HotThreads)
		api.POST("/post-content", h.PostContent)
		api.POST("/front-page", h.FrontPage)
		api.POST("/subreddit-posts-by-time", h.SubredditPostsByTime)
		api.POST("/subreddit-new-posts", h.SubredditNewPosts)
		api.POST("/subreddit-rising-posts", h.SubredditRisingPosts)
		api.POST("/subreddit-info", h.SubredditInfo)
		api.POST("/topic-latest", h.TopicLatest)
		api.GET("/topics", h.Topics)
	}

	if mcpHandler != nil && mcpAPIKey != "" {
		router.POST("/mcp", APIKeyAuth(mcpAPIKey), mcpHandler)
	}

	for _, opt := range extra {
		opt(router)
	}
}

// RouteOption lets main attach optional routes (e.g. the dashboard)
// without this package importing their dependencies.
type RouteOption func(*gin.Engine)
