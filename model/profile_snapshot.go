package model

import "time"

/*

ProfileSnapshot is a point-in-time copy of an author's mutable profile
attributes, taken whenever a pipeline run observes a post by that author.

Composite key (screen_name, time_collected): a new snapshot is created on
every fetch, never updated in place. This supports longitudinal follower
count tracking in the feature layer.

TwitterUserID: provider user id, stored as text for the same precision
reason as Tweet.TweetID.
*/
type ProfileSnapshot struct {
	TwitterUserID   string `gorm:"column:twitter_user_id"`
	ScreenName      string `gorm:"column:screen_name;primaryKey"`
	CreatedAt       time.Time
	Description     string
	Location        string
	ProfileImageURL string `gorm:"column:profile_image_url"`
	TimeZone        string
	FavouritesCount int
	FollowersCount  int
	FriendsCount    int
	StatusesCount   int
	TimeCollected   time.Time `gorm:"primaryKey"`
}

func (ProfileSnapshot) TableName() string {
	return "user_profile_log"
}
