package warehouse

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/politimux/politimux/model"
)

// TableKind enumerates the warehouse tables. Table selection is always
// through this mapping, never through dynamic name resolution.
type TableKind int

const (
	TableTweets TableKind = iota
	TableProfiles
	TableLegislators
	TableSocial
)

func (k TableKind) Model() (interface{}, error) {
	switch k {
	case TableTweets:
		return &model.Tweet{}, nil
	case TableProfiles:
		return &model.ProfileSnapshot{}, nil
	case TableLegislators:
		return &model.Legislator{}, nil
	case TableSocial:
		return &model.SocialAccount{}, nil
	}
	return nil, errors.Errorf("unknown table kind %d", k)
}

func (k TableKind) Name() string {
	switch k {
	case TableTweets:
		return "tweets"
	case TableProfiles:
		return "user_profile_log"
	case TableLegislators:
		return "legislators"
	case TableSocial:
		return "social"
	}
	return "unknown"
}

// Migrate creates or updates every warehouse table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Legislator{},
		&model.SocialAccount{},
		&model.ProfileSnapshot{},
		&model.Tweet{},
	)
}

// resetTable drops and recreates one table for a destructive full reload.
func resetTable(db *gorm.DB, kind TableKind) error {
	m, err := kind.Model()
	if err != nil {
		return err
	}
	if db.Migrator().HasTable(m) {
		if err := db.Migrator().DropTable(m); err != nil {
			return errors.Wrap(err, "fail to drop table "+kind.Name())
		}
	}
	return errors.Wrap(db.AutoMigrate(m), "fail to recreate table "+kind.Name())
}
