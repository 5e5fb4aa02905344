package model

import (
	"time"

	"github.com/lib/pq"
)

/*

Tweet is one post fetched from the provider timeline API, flattened and
coerced to the warehouse schema.

TweetID: provider-assigned id, stored as text to avoid precision loss on
	19-digit ids across heterogeneous numeric columns
TwitterScreenName: author handle, always lower-cased before write so that
	downstream joins are case-insensitive
CreatedAt: provider creation time of the post
Text: full post text
TextLength: upper bound of the provider display-text range
Hashtags / MediaType / UserMentions: entity lists parsed out of the raw
	nested record, stored as postgres text arrays
TimeCollected: wall-clock time of the pipeline run that observed this post

Posts are immutable once fetched. The same id may be observed again in a
later run; ingestion is upsert-by-id with first write wins.
*/
type Tweet struct {
	TweetID           string `gorm:"column:tweet_id;primaryKey"`
	TwitterScreenName string `gorm:"column:twitter_screen_name;index"`
	CreatedAt         time.Time
	Text              string
	TextLength        int
	Hashtags          pq.StringArray `gorm:"type:text[]"`
	MediaType         pq.StringArray `gorm:"type:text[]"`
	UserMentions      pq.StringArray `gorm:"type:text[]"`
	Lang              string
	FavoriteCount     int
	RetweetCount      int
	TimeCollected     time.Time
}

func (Tweet) TableName() string {
	return "tweets"
}
