package config

import "os"

// Config is read once at startup and passed explicitly to whatever
// needs it. No package reads the environment after this.
type Config struct {
	Port          string
	CollectorMode string

	RedditClientID     string
	RedditClientSecret string
	RedditUsername     string
	RedditPassword     string
	RedditUserAgent    string

	// MCPAPIKey guards the MCP endpoint; empty disables the endpoint.
	MCPAPIKey string

	TopicFile    string
	FilterPolicy string
}

// Load reads configuration from the environment, applying defaults.
func Load() *Config {
	return &Config{
		Port:          getenv("PORT", "8080"),
		CollectorMode: getenv("COLLECTOR_MODE", "api"),

		RedditClientID:     os.Getenv("REDDIT_CLIENT_ID"),
		RedditClientSecret: os.Getenv("REDDIT_CLIENT_SECRET"),
		RedditUsername:     os.Getenv("REDDIT_USERNAME"),
		RedditPassword:     os.Getenv("REDDIT_PASSWORD"),
		RedditUserAgent:    getenv("REDDIT_USER_AGENT", "reddit-mcp/2.0"),

		MCPAPIKey: os.Getenv("MCP_API_KEY"),

		TopicFile:    getenv("TOPIC_FILE", "list.txt"),
		FilterPolicy: getenv("FILTER_POLICY", "permissive"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
