package normalizer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/politimux/politimux/collector/clients"
)

func rawTweet(id int64, handle string) clients.Tweet {
	return clients.Tweet{
		ID:               id,
		CreatedAt:        "Wed Oct 10 20:19:24 +0000 2018",
		FullText:         "hello world",
		DisplayTextRange: []int{0, 11},
		Lang:             "en",
		FavoriteCount:    2,
		RetweetCount:     1,
		Entities: clients.Entities{
			Hashtags:     []clients.Hashtag{{Text: "Politics"}},
			UserMentions: []clients.UserMention{{ScreenName: "SomeoneElse"}},
		},
		User: clients.User{
			ID:             id * 10,
			ScreenName:     handle,
			CreatedAt:      "Mon Mar 06 15:00:00 +0000 2009",
			FollowersCount: 1000,
		},
	}
}

func TestNormalizeDeduplicatesProfileSnapshots(t *testing.T) {
	now := time.Now()
	raw := []clients.Tweet{
		rawTweet(1, "Alice"),
		rawTweet(2, "Alice"),
		rawTweet(3, "Alice"),
	}

	batch, err := Normalize(raw, now)
	require.NoError(t, err)
	require.Len(t, batch.Tweets, 3)
	require.Len(t, batch.Profiles, 1)
	require.Equal(t, "alice", batch.Profiles[0].ScreenName)
	require.Equal(t, now, batch.Profiles[0].TimeCollected)
}

func TestNormalizeAppliesUniformCollectionTime(t *testing.T) {
	now := time.Now()
	batch, err := Normalize([]clients.Tweet{rawTweet(1, "alice"), rawTweet(2, "bob")}, now)
	require.NoError(t, err)
	for _, tweet := range batch.Tweets {
		require.Equal(t, now, tweet.TimeCollected)
	}
}

func TestNormalizeMissingMediaYieldsEmptyList(t *testing.T) {
	raw := rawTweet(1, "alice")
	require.Nil(t, raw.Entities.Media)

	batch, err := Normalize([]clients.Tweet{raw}, time.Now())
	require.NoError(t, err)
	require.NotNil(t, batch.Tweets[0].MediaType)
	require.Empty(t, batch.Tweets[0].MediaType)
}

func TestNormalizeDerivedFields(t *testing.T) {
	raw := rawTweet(1, "Alice")
	raw.Entities.Media = []clients.Media{{Type: "photo"}, {Type: "video"}}

	batch, err := Normalize([]clients.Tweet{raw}, time.Now())
	require.NoError(t, err)

	tweet := batch.Tweets[0]
	require.Equal(t, 11, tweet.TextLength)
	require.Equal(t, []string{"Politics"}, tweet.Hashtags)
	require.Equal(t, []string{"photo", "video"}, tweet.MediaType)
	require.Equal(t, []string{"SomeoneElse"}, tweet.UserMentions)
	require.Equal(t, "alice", tweet.ScreenName)
}

func TestNormalizeExcludesProfileFieldsFromTweets(t *testing.T) {
	batch, err := Normalize([]clients.Tweet{rawTweet(1, "alice")}, time.Now())
	require.NoError(t, err)
	// Follower counts and other profile attributes live only in the
	// snapshot set.
	require.Equal(t, 1000, batch.Profiles[0].FollowersCount)
}

func TestNormalizeRejectsRecordWithoutID(t *testing.T) {
	raw := rawTweet(1, "alice")
	raw.ID = 0

	_, err := Normalize([]clients.Tweet{raw}, time.Now())
	require.Error(t, err)
}

func TestNormalizeFallsBackToRuneLengthWithoutRange(t *testing.T) {
	raw := rawTweet(1, "alice")
	raw.DisplayTextRange = nil

	batch, err := Normalize([]clients.Tweet{raw}, time.Now())
	require.NoError(t, err)
	require.Equal(t, len("hello world"), batch.Tweets[0].TextLength)
}
