package model

import "time"

// Legislator is one row of the static biographical roster. Loaded once at
// bootstrap from the roster YAML files, immutable during a run.
type Legislator struct {
	LegislatorID string `gorm:"column:legislator_id;primaryKey"`
	Birthday     *time.Time
	Gender       string
	Religion     string
	FirstName    string
	LastName     string
	Party        string
}

func (Legislator) TableName() string {
	return "legislators"
}
