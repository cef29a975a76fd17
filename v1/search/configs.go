package search

// DefaultMaxDepth bounds full-text path discovery. Deeper branches are
// dropped, which keeps cyclic schema graphs finite.
const DefaultMaxDepth = 10

// Config defines the tunables of the search compiler and executor.
type Config struct {
	// MaxDepth is the recursion bound of full-text path discovery.
	//
	// This setting can be configured via:
	//   - YAML configuration with the "max_depth" key
	//   - Environment variable SEARCH_FULLTEXT_MAX_DEPTH
	//
	// Default: 10
	MaxDepth int `yaml:"max_depth" envconfig:"SEARCH_FULLTEXT_MAX_DEPTH"`

	// DefaultLimit is the page size used when a request has no limit.
	// Zero means unbounded.
	DefaultLimit int `yaml:"default_limit" envconfig:"SEARCH_DEFAULT_LIMIT"`

	// MaxLimit caps the page size of any request. Zero means no cap.
	MaxLimit int `yaml:"max_limit" envconfig:"SEARCH_MAX_LIMIT"`
}

func (c Config) maxDepth() int {
	if c.MaxDepth <= 0 {
		return DefaultMaxDepth
	}
	return c.MaxDepth
}

// pageSize returns the effective limit for a request, zero meaning unbounded.
func (c Config) pageSize(requested int) int {
	limit := requested
	if limit <= 0 {
		limit = c.DefaultLimit
	}
	if c.MaxLimit > 0 && (limit <= 0 || limit > c.MaxLimit) {
		limit = c.MaxLimit
	}
	if limit < 0 {
		return 0
	}
	return limit
}
