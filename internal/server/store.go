package server

import (
	"sort"
	"sync"
	"time"

	"github.com/gyeh/claimstats/internal/claims"
)

// maxDatasets bounds the in-memory memo; the oldest upload is evicted first.
const maxDatasets = 16

type storedDataset struct {
	ID         string // SHA-256 of the uploaded bytes
	FileName   string
	UploadedAt time.Time
	Dataset    *claims.Dataset
}

// datasetStore memoizes cleaned datasets by file hash so that filter changes
// only rerun filter and aggregation. Nothing is persisted.
type datasetStore struct {
	mu   sync.RWMutex
	byID map[string]*storedDataset
}

func newDatasetStore() *datasetStore {
	return &datasetStore{byID: make(map[string]*storedDataset)}
}

func (s *datasetStore) get(id string) (*storedDataset, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.byID[id]
	return d, ok
}

func (s *datasetStore) put(d *storedDataset) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID[d.ID] = d
	if len(s.byID) <= maxDatasets {
		return
	}
	all := make([]*storedDataset, 0, len(s.byID))
	for _, v := range s.byID {
		all = append(all, v)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].UploadedAt.Before(all[j].UploadedAt) })
	for _, v := range all[:len(all)-maxDatasets] {
		delete(s.byID, v.ID)
	}
}

func (s *datasetStore) len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}
