package mcp

// getAllTools returns the tool definitions advertised by tools/list.
func getAllTools() []Tool {
	subredditProp := map[string]any{
		"type":        "string",
		"description": "Subreddit name (without r/)",
	}
	limitProp := func(def int) map[string]any {
		return map[string]any{
			"type":        "integer",
			"description": "Posts to fetch",
			"default":     def,
		}
	}

	return []Tool{
		{
			Name:        "reddit_topic",
			Description: "Get latest posts from subreddits related to a topic, deduplicated and sorted by recency.",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"topic": map[string]any{
						"type":        "string",
						"description": "Topic name (e.g. programming)",
					},
					"limit": limitProp(50),
					"max_subreddits": map[string]any{
						"type":        "integer",
						"description": "Max subreddits to query",
						"default":     20,
					},
				},
				"required": []string{"topic"},
			},
		},
		{
			Name:        "reddit_hot",
			Description: "Get hot posts from a subreddit.",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"subreddit": subredditProp,
					"limit":     limitProp(10),
				},
				"required": []string{"subreddit"},
			},
		},
		{
			Name:        "reddit_post",
			Description: "Get post content and comments.",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"post_id": map[string]any{
						"type":        "string",
						"description": "Reddit post ID",
					},
					"comment_limit": map[string]any{
						"type":        "integer",
						"description": "Comments to fetch",
						"default":     20,
					},
					"comment_depth": map[string]any{
						"type":        "integer",
						"description": "Thread depth",
						"default":     3,
					},
				},
				"required": []string{"post_id"},
			},
		},
		{
			Name:        "reddit_front",
			Description: "Get Reddit front page posts.",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"sort": map[string]any{
						"type":        "string",
						"description": "hot, top, or new",
						"enum":        []string{"hot", "top", "new"},
						"default":     "hot",
					},
					"limit": limitProp(10),
					"time_filter": map[string]any{
						"type":        "string",
						"description": "hour/day/week/month/year/all",
						"default":     "day",
					},
				},
			},
		},
		{
			Name:        "reddit_top",
			Description: "Get top posts from a subreddit by time.",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"subreddit": subredditProp,
					"time_period": map[string]any{
						"type":        "string",
						"description": "hour/day/week/month/year/all",
						"default":     "week",
					},
					"limit": limitProp(10),
				},
				"required": []string{"subreddit"},
			},
		},
		{
			Name:        "reddit_new",
			Description: "Get newest posts from a subreddit.",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"subreddit": subredditProp,
					"limit":     limitProp(10),
				},
				"required": []string{"subreddit"},
			},
		},
		{
			Name:        "reddit_rising",
			Description: "Get rising/trending posts from a subreddit.",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"subreddit": subredditProp,
					"limit":     limitProp(10),
				},
				"required": []string{"subreddit"},
			},
		},
		{
			Name:        "reddit_info",
			Description: "Get subreddit info (subscribers, description).",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"subreddit": subredditProp,
				},
				"required": []string{"subreddit"},
			},
		},
	}
}
