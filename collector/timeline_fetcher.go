// Package collector implements the tweet ingestion core: a rate-limit
// aware timeline fetcher and the batch orchestrator iterating the roster.
package collector

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/politimux/politimux/collector/clients"
	Logger "github.com/politimux/politimux/utils/log"
)

const (
	// PageSize is the provider maximum for one timeline page.
	PageSize = 200

	// RateLimitBackoff is how long a fetch suspends when the provider
	// signals the credential is throttled. The provider window is 15
	// minutes, so retrying earlier is pointless.
	RateLimitBackoff = 15 * time.Minute

	// maxConsecutiveBackoffs bounds the retry state machine. A credential
	// that is still throttled after this many full windows is misconfigured
	// or revoked, and the run should fail instead of hanging forever.
	maxConsecutiveBackoffs = 4
)

// TimelineAPI is the capability the fetcher consumes from the provider
// client.
type TimelineAPI interface {
	UserTimeline(ctx context.Context, q clients.TimelineQuery) ([]clients.Tweet, error)
}

// fetchState drives the per-account fetch loop. The explicit states make
// the suspension and resumption contract testable: Backoff never discards
// already-accumulated records and resumes from the same cursor.
type fetchState int

const (
	stateFetching fetchState = iota
	stateBackoff
	stateDone
)

// TimelineFetcher pages through one account's timeline until it reaches
// records at or before a cutoff timestamp.
type TimelineFetcher struct {
	api      TimelineAPI
	pageSize int

	// sleep is injectable so tests don't wait 15 minutes.
	sleep   func(time.Duration)
	backoff time.Duration
}

func NewTimelineFetcher(api TimelineAPI) *TimelineFetcher {
	return &TimelineFetcher{
		api:      api,
		pageSize: PageSize,
		sleep:    time.Sleep,
		backoff:  RateLimitBackoff,
	}
}

// FetchSince returns the raw records for one account created strictly after
// cutoff, most-recent-first. It stops paging as soon as a page's oldest
// record is at or before cutoff, or the provider returns an empty page.
//
// A provider rate-limit signal suspends the fetch for the backoff interval
// and resumes where it left off; the caller only observes the final result.
// A not-found account is propagated as clients.ErrNotFound for the
// orchestrator to recover.
func (f *TimelineFetcher) FetchSince(ctx context.Context, handle string, cutoff time.Time, includeRts bool) ([]clients.Tweet, error) {
	var (
		collected []clients.Tweet
		cursor    int64
		backoffs  int
		state     = stateFetching
	)

	for state != stateDone {
		switch state {
		case stateFetching:
			page, err := f.api.UserTimeline(ctx, clients.TimelineQuery{
				ScreenName: handle,
				Count:      f.pageSize,
				MaxID:      cursor,
				IncludeRts: includeRts,
			})
			if errors.Is(err, clients.ErrRateLimited) {
				state = stateBackoff
				continue
			}
			if err != nil {
				return nil, errors.Wrap(err, "fail to fetch timeline for "+handle)
			}
			backoffs = 0

			if len(page) == 0 {
				state = stateDone
				continue
			}

			reachedCutoff, err := f.appendNewerThan(&collected, page, cutoff)
			if err != nil {
				return nil, errors.Wrap(err, "bad record in timeline for "+handle)
			}
			if reachedCutoff {
				state = stateDone
				continue
			}
			// Continuation cursor: everything at or below the oldest id of
			// this page has been seen.
			cursor = page[len(page)-1].ID - 1

		case stateBackoff:
			backoffs++
			if backoffs > maxConsecutiveBackoffs {
				return nil, errors.Errorf("still rate limited after %d backoffs fetching %s", maxConsecutiveBackoffs, handle)
			}
			Logger.Log.Warnf("rate limited fetching %s, sleeping %s", handle, f.backoff)
			f.sleep(f.backoff)
			state = stateFetching
		}
	}

	return collected, nil
}

// appendNewerThan adds the records created strictly after cutoff to dst and
// reports whether the page reached the cutoff boundary.
func (f *TimelineFetcher) appendNewerThan(dst *[]clients.Tweet, page []clients.Tweet, cutoff time.Time) (bool, error) {
	for _, tweet := range page {
		createdAt, err := tweet.CreationTime()
		if err != nil {
			return false, err
		}
		if !createdAt.After(cutoff) {
			return true, nil
		}
		*dst = append(*dst, tweet)
	}
	return false, nil
}
