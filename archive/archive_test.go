package archive

import (
	"encoding/json"
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLocalBatchStoreRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "raw")
	store, err := NewLocalBatchStore(dir)
	require.NoError(t, err)

	payload := map[string]int{"tweets": 3}
	key, err := store.Store("run-1", payload)
	require.NoError(t, err)

	data, err := ioutil.ReadFile(key)
	require.NoError(t, err)

	var got map[string]int
	require.NoError(t, json.Unmarshal(data, &got))
	require.Equal(t, payload, got)
}
