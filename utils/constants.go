package utils

import "time"

// SearchSessionPrefix is the prefix for cached multi-party search sessions.
const SearchSessionPrefix = "search:"

// SearchSessionTTL is how long a cached search session stays retrievable.
const SearchSessionTTL = 15 * time.Minute
