package warehouse

import (
	"time"

	"github.com/lib/pq"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// FeatureRow is the read contract of the downstream feature layer: tweet
// columns joined with the author's follower count from the snapshot taken
// in the same collection pass.
type FeatureRow struct {
	TweetID           string
	TwitterScreenName string
	Party             string
	CreatedAt         time.Time
	Text              string
	TextLength        int
	Hashtags          pq.StringArray `gorm:"type:text[]"`
	MediaType         pq.StringArray `gorm:"type:text[]"`
	FavoriteCount     int
	RetweetCount      int
	UserFollowers     int
}

const featureRowsSQL = `
	SELECT t.tweet_id,
		t.twitter_screen_name,
		l.party,
		t.created_at,
		t.text,
		t.text_length,
		t.hashtags,
		t.media_type,
		t.favorite_count,
		t.retweet_count,
		MAX(u.followers_count) AS user_followers
	FROM tweets t
	LEFT JOIN social s
		ON t.twitter_screen_name = s.twitter_screen_name
	LEFT JOIN legislators l
		ON s.legislator_id = l.legislator_id
	LEFT JOIN user_profile_log u
		ON (t.twitter_screen_name = u.screen_name
			AND DATE(t.time_collected) = DATE(u.time_collected))
	WHERE l.party <> 'Independent'
	GROUP BY 1,2,3,4,5,6,7,8,9,10;
`

// FetchFeatureRows reads the joined training view. Read-only; the feature
// and classification layers never write.
func FetchFeatureRows(db *gorm.DB) ([]FeatureRow, error) {
	var rows []FeatureRow
	res := db.Raw(featureRowsSQL).Scan(&rows)
	return rows, errors.Wrap(res.Error, "fail to fetch feature rows")
}
