package server

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractTweetID(t *testing.T) {
	id, err := ExtractTweetID("https://twitter.com/user/status/1234567890123456789")
	require.NoError(t, err)
	require.Equal(t, "1234567890123456789", id)

	id, err = ExtractTweetID("https://twitter.com/user/status/123?s=20")
	require.NoError(t, err)
	require.Equal(t, "123", id)

	id, err = ExtractTweetID("https://twitter.com/user/status/123/photo/1")
	require.NoError(t, err)
	require.Equal(t, "123", id)
}

func TestExtractTweetIDValidationFailures(t *testing.T) {
	cases := []string{
		"https://twitter.com/user",
		"https://twitter.com/user/status/",
		"https://twitter.com/user/status/notanumber",
		"https://example.com/user/status/123",
		"",
	}
	for _, url := range cases {
		_, err := ExtractTweetID(url)
		require.Error(t, err, url)
	}
}
