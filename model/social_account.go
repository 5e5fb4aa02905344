package model

// SocialAccount links a legislator to their social handles. The twitter
// handle is nullable in the roster source; rows without one are filtered
// out before any fetch.
type SocialAccount struct {
	LegislatorID      string `gorm:"column:legislator_id;primaryKey"`
	Facebook          string
	TwitterScreenName string `gorm:"column:twitter_screen_name"`
	TwitterID         string `gorm:"column:twitter_id"`
}

func (SocialAccount) TableName() string {
	return "social"
}
