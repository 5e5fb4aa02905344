package warehouse

import (
	"database/sql"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/politimux/politimux/model"
)

// ErrNoSnapshots means no profile snapshot has been stored yet. The
// resolver has no fallback window by contract; on a first run the caller
// must pick an explicit initial window instead of calling it.
var ErrNoSnapshots = errors.New("warehouse: no profile snapshots stored")

// ResolveWatermark returns the maximum collection timestamp across all
// stored profile snapshots, the exclusive lower bound for the next
// incremental fetch.
func ResolveWatermark(db *gorm.DB) (time.Time, error) {
	var max sql.NullTime
	row := db.Model(&model.ProfileSnapshot{}).Select("max(time_collected)").Row()
	if err := row.Scan(&max); err != nil {
		return time.Time{}, errors.Wrap(err, "fail to resolve watermark")
	}
	if !max.Valid {
		return time.Time{}, ErrNoSnapshots
	}
	return max.Time, nil
}
