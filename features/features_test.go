package features

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/politimux/politimux/normalizer"
)

func TestBuildRow(t *testing.T) {
	tweet := normalizer.TweetRecord{
		ID:            1,
		CreatedAt:     "Wed Oct 10 20:19:24 +0000 2018",
		Text:          "VOTE today for America",
		TextLength:    22,
		MediaType:     []string{"photo"},
		FavoriteCount: 50,
		RetweetCount:  10,
		TimeCollected: time.Now(),
	}

	row, err := BuildRow(tweet, 1000)
	require.NoError(t, err)
	require.Equal(t, float64(20), row.HourCreated)
	require.Equal(t, float64(time.Wednesday), row.WeekdayCreated)
	require.Equal(t, float64(1), row.PhotoExists)
	require.InDelta(t, 0.01, row.RetweetsPerFollower, 1e-9)
	require.InDelta(t, 0.05, row.FavsPerFollower, 1e-9)
	// "VOTE" is the only all-caps word of four.
	require.InDelta(t, 0.25, row.RateAllCaps, 1e-9)
	require.Equal(t, float64(22), row.TextLength)
}

func TestBuildRowZeroFollowers(t *testing.T) {
	tweet := normalizer.TweetRecord{
		ID:            1,
		CreatedAt:     "Wed Oct 10 20:19:24 +0000 2018",
		FavoriteCount: 50,
		RetweetCount:  10,
	}

	row, err := BuildRow(tweet, 0)
	require.NoError(t, err)
	require.Zero(t, row.RetweetsPerFollower)
	require.Zero(t, row.FavsPerFollower)
}

func TestBuildRowBadTimestamp(t *testing.T) {
	_, err := BuildRow(normalizer.TweetRecord{ID: 1, CreatedAt: "garbage"}, 10)
	require.Error(t, err)
}

func TestRateAllCaps(t *testing.T) {
	require.Zero(t, rateAllCaps(""))
	require.Equal(t, 1.0, rateAllCaps("SAD!"))
	require.Equal(t, 0.5, rateAllCaps("VERY sad"))
	// Numbers and punctuation alone don't count as shouting.
	require.Zero(t, rateAllCaps("123 ..."))
}
