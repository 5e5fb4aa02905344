// Package normalizer flattens raw nested timeline records into the two
// tabular shapes the warehouse stores: posts and author-profile snapshots.
package normalizer

import (
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/politimux/politimux/collector/clients"
)

// TweetRecord is one flattened post. Author-profile fields are excluded;
// they live only in ProfileRecord. CreatedAt stays in provider-native form
// until the loader coerces it.
type TweetRecord struct {
	ID            int64
	ScreenName    string
	CreatedAt     string
	Text          string
	TextLength    int
	Hashtags      []string
	MediaType     []string
	UserMentions  []string
	Lang          string
	FavoriteCount int
	RetweetCount  int
	TimeCollected time.Time
}

// ProfileRecord is one flattened author-profile snapshot.
type ProfileRecord struct {
	UserID          int64
	ScreenName      string
	CreatedAt       string
	Description     string
	Location        string
	ProfileImageURL string
	TimeZone        string
	FavouritesCount int
	FollowersCount  int
	FriendsCount    int
	StatusesCount   int
	TimeCollected   time.Time
}

// Batch is the output of one normalization pass. Profiles are de-duplicated
// by (screen name, time collected), first occurrence wins: N posts by one
// author in a batch yield exactly one snapshot.
type Batch struct {
	Tweets   []TweetRecord
	Profiles []ProfileRecord
}

// Normalize flattens a batch of raw records. The collection timestamp now
// is applied uniformly to every record in the batch. Records missing the
// fields the warehouse schema requires fail the whole pass.
func Normalize(raw []clients.Tweet, now time.Time) (Batch, error) {
	batch := Batch{
		Tweets:   []TweetRecord{},
		Profiles: []ProfileRecord{},
	}
	seen := map[string]bool{}

	for i := range raw {
		tweet := &raw[i]
		if err := validate(tweet); err != nil {
			return Batch{}, errors.Wrapf(err, "record %d failed validation", i)
		}

		handle := strings.ToLower(tweet.User.ScreenName)

		batch.Tweets = append(batch.Tweets, TweetRecord{
			ID:            tweet.ID,
			ScreenName:    handle,
			CreatedAt:     tweet.CreatedAt,
			Text:          tweet.FullText,
			TextLength:    textLength(tweet),
			Hashtags:      hashtagTexts(tweet.Entities.Hashtags),
			MediaType:     mediaTypes(tweet.Entities.Media),
			UserMentions:  mentionHandles(tweet.Entities.UserMentions),
			Lang:          tweet.Lang,
			FavoriteCount: tweet.FavoriteCount,
			RetweetCount:  tweet.RetweetCount,
			TimeCollected: now,
		})

		if seen[handle] {
			continue
		}
		seen[handle] = true

		profile := ProfileRecord{
			UserID:          tweet.User.ID,
			ScreenName:      handle,
			CreatedAt:       tweet.User.CreatedAt,
			Description:     tweet.User.Description,
			Location:        tweet.User.Location,
			ProfileImageURL: tweet.User.ProfileImageURL,
			FavouritesCount: tweet.User.FavouritesCount,
			FollowersCount:  tweet.User.FollowersCount,
			FriendsCount:    tweet.User.FriendsCount,
			StatusesCount:   tweet.User.StatusesCount,
			TimeCollected:   now,
		}
		if tweet.User.TimeZone != nil {
			profile.TimeZone = *tweet.User.TimeZone
		}
		batch.Profiles = append(batch.Profiles, profile)
	}

	return batch, nil
}

// NormalizeOne flattens a single record, as used by the prediction endpoint.
func NormalizeOne(tweet clients.Tweet, now time.Time) (TweetRecord, ProfileRecord, error) {
	batch, err := Normalize([]clients.Tweet{tweet}, now)
	if err != nil {
		return TweetRecord{}, ProfileRecord{}, err
	}
	return batch.Tweets[0], batch.Profiles[0], nil
}

func validate(tweet *clients.Tweet) error {
	if tweet.ID == 0 {
		return errors.New("missing id")
	}
	if tweet.User.ScreenName == "" {
		return errors.New("missing author screen name")
	}
	if tweet.CreatedAt == "" {
		return errors.New("missing creation time")
	}
	return nil
}

// textLength is the upper bound of the provider's display-text range,
// falling back to the rune length when the range is absent.
func textLength(tweet *clients.Tweet) int {
	if len(tweet.DisplayTextRange) == 2 {
		return tweet.DisplayTextRange[1]
	}
	return len([]rune(tweet.FullText))
}

func hashtagTexts(hashtags []clients.Hashtag) []string {
	texts := []string{}
	for _, h := range hashtags {
		texts = append(texts, h.Text)
	}
	return texts
}

// mediaTypes tolerates an absent media entity list: no media means an empty
// list, never a failure.
func mediaTypes(media []clients.Media) []string {
	types := []string{}
	for _, m := range media {
		types = append(types, m.Type)
	}
	return types
}

func mentionHandles(mentions []clients.UserMention) []string {
	handles := []string{}
	for _, m := range mentions {
		handles = append(handles, m.ScreenName)
	}
	return handles
}
