// Package features derives the predictive feature row from one normalized
// post and scores it with the two-model party ensemble.
package features

import (
	"strings"

	"github.com/araddon/dateparse"
	"github.com/pkg/errors"

	"github.com/politimux/politimux/normalizer"
	"github.com/politimux/politimux/utils"
)

// Row is the base (non-text) feature set for one post.
type Row struct {
	HourCreated         float64
	WeekdayCreated      float64
	PhotoExists         float64
	RetweetsPerFollower float64
	FavsPerFollower     float64
	RateAllCaps         float64
	RetweetCount        float64
	FavoriteCount       float64
	TextLength          float64
}

// Vector returns the row in the fixed column order the base model was
// trained against.
func (r Row) Vector() []float64 {
	return []float64{
		r.HourCreated,
		r.WeekdayCreated,
		r.PhotoExists,
		r.RetweetsPerFollower,
		r.FavsPerFollower,
		r.RateAllCaps,
		r.RetweetCount,
		r.FavoriteCount,
		r.TextLength,
	}
}

// BuildRow derives the base feature row from a normalized post and the
// author's follower count at collection time.
func BuildRow(tweet normalizer.TweetRecord, userFollowers int) (Row, error) {
	createdAt, err := dateparse.ParseAny(tweet.CreatedAt)
	if err != nil {
		return Row{}, errors.Wrapf(err, "fail to parse creation time for tweet %d", tweet.ID)
	}

	row := Row{
		HourCreated:    float64(createdAt.Hour()),
		WeekdayCreated: float64(createdAt.Weekday()),
		RateAllCaps:    rateAllCaps(tweet.Text),
		RetweetCount:   float64(tweet.RetweetCount),
		FavoriteCount:  float64(tweet.FavoriteCount),
		TextLength:     float64(tweet.TextLength),
	}
	if utils.ContainsString(tweet.MediaType, "photo") {
		row.PhotoExists = 1
	}
	if userFollowers > 0 {
		row.RetweetsPerFollower = float64(tweet.RetweetCount) / float64(userFollowers)
		row.FavsPerFollower = float64(tweet.FavoriteCount) / float64(userFollowers)
	}
	return row, nil
}

// rateAllCaps is the share of words written in all upper case, a shouting
// signal the base model weighs.
func rateAllCaps(text string) float64 {
	words := strings.Fields(text)
	if len(words) == 0 {
		return 0
	}

	uppers := 0
	for _, word := range words {
		if word == strings.ToUpper(word) && word != strings.ToLower(word) {
			uppers++
		}
	}
	return float64(uppers) / float64(len(words))
}
