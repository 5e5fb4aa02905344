package collector

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/politimux/politimux/collector/clients"
	"github.com/politimux/politimux/roster"
	Logger "github.com/politimux/politimux/utils/log"
)

// BatchOrchestrator runs one fetch per roster account against a shared
// cutoff and concatenates the results.
//
// Accounts are fetched strictly sequentially. The provider enforces one
// rate-limit budget against the whole credential, so concurrency would not
// add throughput once the limit is hit and would complicate the backoff
// accounting inside the fetcher.
type BatchOrchestrator struct {
	fetcher *TimelineFetcher
}

func NewBatchOrchestrator(fetcher *TimelineFetcher) *BatchOrchestrator {
	return &BatchOrchestrator{fetcher: fetcher}
}

// FetchAll fetches every account in the roster. A not-found account yields
// nothing and the batch continues; any other fetch error aborts the whole
// batch, leaving remaining accounts unfetched.
func (b *BatchOrchestrator) FetchAll(ctx context.Context, accounts []roster.Account, cutoff time.Time, includeRts bool) ([]clients.Tweet, error) {
	var batch []clients.Tweet

	for i, account := range accounts {
		timeline, err := b.fetcher.FetchSince(ctx, account.Handle, cutoff, includeRts)
		if errors.Is(err, clients.ErrNotFound) {
			Logger.Log.Warnf("(%d) account %s not found, skipping", i, account.Handle)
			continue
		}
		if err != nil {
			return nil, err
		}

		Logger.Log.Infof("(%d) %s: %d new tweets since %s", i, account.Handle, len(timeline), cutoff)
		batch = append(batch, timeline...)
	}

	return batch, nil
}
