package collector

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/politimux/politimux/collector/clients"
	"github.com/politimux/politimux/roster"
)

func TestFetchAllSkipsNotFoundAccounts(t *testing.T) {
	now := time.Now()
	cutoff := now.AddDate(0, 0, -7)
	api := &fakeTimelineAPI{script: map[string][]scriptedCall{
		"alice": {{err: clients.ErrNotFound}},
		"bob": {{page: []clients.Tweet{
			rawTweet(500, "bob", now.Add(-1 * time.Hour)),
			rawTweet(400, "bob", cutoff.AddDate(0, 0, -1)),
		}}},
	}}
	f, _ := newTestFetcher(api)
	orchestrator := NewBatchOrchestrator(f)

	accounts := []roster.Account{
		{Handle: "alice", LegislatorID: "L1"},
		{Handle: "bob", LegislatorID: "L2"},
	}
	batch, err := orchestrator.FetchAll(context.Background(), accounts, cutoff, false)
	require.NoError(t, err)
	require.Len(t, batch, 1)
	require.Equal(t, "bob", batch[0].User.ScreenName)
}

func TestFetchAllAbortsOnGenericError(t *testing.T) {
	api := &fakeTimelineAPI{script: map[string][]scriptedCall{
		"alice": {{err: errors.New("connection reset")}},
	}}
	f, _ := newTestFetcher(api)
	orchestrator := NewBatchOrchestrator(f)

	accounts := []roster.Account{
		{Handle: "alice", LegislatorID: "L1"},
		{Handle: "bob", LegislatorID: "L2"},
	}
	_, err := orchestrator.FetchAll(context.Background(), accounts, time.Now(), false)
	require.Error(t, err)

	// The batch aborted before bob was ever fetched.
	for _, call := range api.calls {
		require.NotEqual(t, "bob", call.ScreenName)
	}
}
