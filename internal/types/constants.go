package types

import (
	"strings"
)

const ContextUserKey = "user"

const (
	ScopeAccess  = "access"
	ScopeRefresh = "refresh"
)

const (
	SortByFavoriteCount = "favorite_count"
	SortBySaveCount     = "save_count"
)

const (
	DefaultListLimit = 100
	MaxListLimit     = 100
)

const (
	MinDifficulty = 1
	MaxDifficulty = 5
	MinRating     = 1
	MaxRating     = 5
)

var (
	// Default allowed origins for development
	defaultOrigins = []string{
		"http://localhost:3000",
		"http://localhost:5173",
	}
)

// AllowedOrigins merges the development defaults with the configured client URL
// and the comma separated ALLOWED_ORIGINS list.
func AllowedOrigins(clientURL, extra string) []string {
	origins := make([]string, len(defaultOrigins))
	copy(origins, defaultOrigins)

	if clientURL != "" {
		origins = append(origins, clientURL)
	}

	for _, origin := range strings.Split(extra, ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}

	return origins
}
