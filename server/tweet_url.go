package server

import (
	"strings"

	"github.com/pkg/errors"
)

var errInvalidTweetURL = errors.New("not a valid single-tweet url")

// ExtractTweetID pulls the numeric post id out of a submitted status URL,
// e.g. https://twitter.com/user/status/1234567890123456789. Anything
// without a numeric /status/ suffix is an input-validation failure and
// never reaches the network layer.
func ExtractTweetID(rawURL string) (string, error) {
	if !strings.Contains(rawURL, "twitter.com/") {
		return "", errInvalidTweetURL
	}

	parts := strings.SplitN(rawURL, "/status/", 2)
	if len(parts) != 2 {
		return "", errInvalidTweetURL
	}

	// Trim trailing path segments and query parameters like ?s=20.
	id := parts[1]
	if i := strings.IndexAny(id, "/?"); i >= 0 {
		id = id[:i]
	}

	if id == "" || !isDigits(id) {
		return "", errInvalidTweetURL
	}
	return id, nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
