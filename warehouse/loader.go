// Package warehouse owns all writes to the relational store plus the
// watermark read bounding incremental fetches. One gorm handle is shared
// for a whole pipeline run; exactly one run executes at a time.
package warehouse

import (
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/politimux/politimux/model"
	"github.com/politimux/politimux/normalizer"
)

const insertBatchSize = 500

// WriteMode is the caller-supplied write policy. The loader never decides
// the mode itself.
type WriteMode int

const (
	// Append adds rows, ignoring conflicts on already-stored keys. Used for
	// incremental runs; duplicate post ids across runs keep the first
	// written row.
	Append WriteMode = iota
	// Replace drops and recreates the table before writing. Used only for
	// the initial bootstrap.
	Replace
)

type Loader struct {
	db *gorm.DB
}

func NewLoader(db *gorm.DB) *Loader {
	return &Loader{db: db}
}

// LoadTweets coerces a normalized posts set to the tweets schema and
// writes it. Any coercion failure aborts the whole call; no partial-row
// skipping.
func (l *Loader) LoadTweets(records []normalizer.TweetRecord, mode WriteMode) error {
	rows := make([]model.Tweet, 0, len(records))
	for _, r := range records {
		createdAt, err := coerceTimestamp(r.CreatedAt)
		if err != nil {
			return errors.Wrapf(err, "fail to coerce created_at for tweet %d", r.ID)
		}
		rows = append(rows, model.Tweet{
			TweetID:           strconv.FormatInt(r.ID, 10),
			TwitterScreenName: strings.ToLower(r.ScreenName),
			CreatedAt:         createdAt,
			Text:              r.Text,
			TextLength:        r.TextLength,
			Hashtags:          pq.StringArray(r.Hashtags),
			MediaType:         pq.StringArray(r.MediaType),
			UserMentions:      pq.StringArray(r.UserMentions),
			Lang:              r.Lang,
			FavoriteCount:     r.FavoriteCount,
			RetweetCount:      r.RetweetCount,
			TimeCollected:     r.TimeCollected,
		})
	}
	return l.write(TableTweets, rows, len(rows), mode)
}

// LoadProfiles coerces a normalized snapshot set to the user_profile_log
// schema and writes it. Snapshots are only ever inserted, never updated.
func (l *Loader) LoadProfiles(records []normalizer.ProfileRecord, mode WriteMode) error {
	rows := make([]model.ProfileSnapshot, 0, len(records))
	for _, r := range records {
		createdAt, err := coerceTimestamp(r.CreatedAt)
		if err != nil {
			return errors.Wrapf(err, "fail to coerce created_at for profile %s", r.ScreenName)
		}
		rows = append(rows, model.ProfileSnapshot{
			TwitterUserID:   strconv.FormatInt(r.UserID, 10),
			ScreenName:      strings.ToLower(r.ScreenName),
			CreatedAt:       createdAt,
			Description:     r.Description,
			Location:        r.Location,
			ProfileImageURL: r.ProfileImageURL,
			TimeZone:        r.TimeZone,
			FavouritesCount: r.FavouritesCount,
			FollowersCount:  r.FollowersCount,
			FriendsCount:    r.FriendsCount,
			StatusesCount:   r.StatusesCount,
			TimeCollected:   r.TimeCollected,
		})
	}
	return l.write(TableProfiles, rows, len(rows), mode)
}

// LoadLegislators bootstraps the biographical table from the roster.
func (l *Loader) LoadLegislators(rows []model.Legislator, mode WriteMode) error {
	return l.write(TableLegislators, rows, len(rows), mode)
}

// LoadSocialAccounts bootstraps the social handle table from the roster.
func (l *Loader) LoadSocialAccounts(rows []model.SocialAccount, mode WriteMode) error {
	return l.write(TableSocial, rows, len(rows), mode)
}

func (l *Loader) write(kind TableKind, rows interface{}, count int, mode WriteMode) error {
	if mode == Replace {
		if err := resetTable(l.db, kind); err != nil {
			return err
		}
	}
	if count == 0 {
		return nil
	}

	res := l.db.Clauses(clause.OnConflict{DoNothing: true}).
		CreateInBatches(rows, insertBatchSize)
	return errors.Wrap(res.Error, "fail to write table "+kind.Name())
}

// coerceTimestamp parses a provider-native timestamp into the canonical
// date-time type. The provider uses a ruby-style layout but dateparse keeps
// this lenient across API versions.
func coerceTimestamp(raw string) (time.Time, error) {
	return dateparse.ParseAny(raw)
}
