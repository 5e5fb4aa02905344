// Package archive persists the raw fetched batches as JSON before
// normalization, so a bad pipeline run can be replayed without refetching.
package archive

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
)

// RawBatchStore stores one raw batch payload under a run-scoped key.
type RawBatchStore interface {
	Store(runID string, payload interface{}) (key string, err error)
	CleanUp()
}

// LocalBatchStore writes batches to a local directory, one file per run.
type LocalBatchStore struct {
	dir string
}

func NewLocalBatchStore(dir string) (*LocalBatchStore, error) {
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return nil, errors.Wrap(err, "fail to create archive dir "+dir)
	}
	return &LocalBatchStore{dir: dir}, nil
}

func (s *LocalBatchStore) Store(runID string, payload interface{}) (string, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return "", errors.Wrap(err, "fail to serialize raw batch")
	}

	key := filepath.Join(s.dir, time.Now().UTC().Format("20060102")+"_"+runID+".json")
	if err := ioutil.WriteFile(key, data, 0644); err != nil {
		return "", errors.Wrap(err, "fail to write raw batch "+key)
	}
	return key, nil
}

func (s *LocalBatchStore) CleanUp() {
	os.RemoveAll(s.dir)
}

// FakeBatchStore is used in tests and for runs with archival disabled.
type FakeBatchStore struct{}

func (*FakeBatchStore) Store(runID string, payload interface{}) (string, error) {
	return runID, nil
}

func (*FakeBatchStore) CleanUp() {}
