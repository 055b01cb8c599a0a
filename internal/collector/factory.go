package collector

import (
	"fmt"

	"github.com/Aanerud/Reddit-MCP/internal/domain"
)

// Config carries the credential bundle and mode for client construction.
// Credentials come from the environment; the caller resolves them once at
// startup and passes them here.
type Config struct {
	Mode      string
	ID        string
	Secret    string
	Username  string
	Password  string
	UserAgent string
}

// New selects the correct implementation based on the mode. A wholly
// absent credential bundle fails construction here, at startup, rather
// than lazily on first request.
func New(cfg Config) (domain.Client, error) {
	switch cfg.Mode {
	case "", "api":
		if cfg.ID == "" && cfg.Secret == "" && cfg.Username == "" && cfg.Password == "" {
			return nil, fmt.Errorf("reddit API credentials not found in environment")
		}
		return NewAPIClient(cfg.ID, cfg.Secret, cfg.Username, cfg.Password, cfg.UserAgent)
	case "public":
		return NewPublicClient(cfg.UserAgent)
	case "mock":
		return NewMockClient(), nil
	default:
		return nil, fmt.Errorf("unknown COLLECTOR_MODE: %s (use 'api', 'public', or 'mock')", cfg.Mode)
	}
}
