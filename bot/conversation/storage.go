package conversation

import (
	"context"
	"sync"
)

// RecordRepository defines the database operations for conversation records.
type RecordRepository interface {
	SaveConversation(ctx context.Context, rec *Record) error
	LoadConversation(ctx context.Context, chatID int64) (*Record, error)
	DeleteConversation(ctx context.Context, chatID int64) error
}

// MongoRecordStorage adapts the database repository to RecordStorage.
type MongoRecordStorage struct {
	repo RecordRepository
}

func NewMongoRecordStorage(repo RecordRepository) *MongoRecordStorage {
	return &MongoRecordStorage{repo: repo}
}

func (s *MongoRecordStorage) Save(ctx context.Context, rec *Record) error {
	return s.repo.SaveConversation(ctx, rec)
}

func (s *MongoRecordStorage) Load(ctx context.Context, chatID int64) (*Record, error) {
	return s.repo.LoadConversation(ctx, chatID)
}

func (s *MongoRecordStorage) Delete(ctx context.Context, chatID int64) error {
	return s.repo.DeleteConversation(ctx, chatID)
}

// MemoryStorage keeps records in process memory. Records are copied on the
// way in and out so callers never share slices with the store.
type MemoryStorage struct {
	mu      sync.RWMutex
	records map[int64]Record
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{records: make(map[int64]Record)}
}

func (s *MemoryStorage) Save(_ context.Context, rec *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[rec.ChatID] = cloneRecord(*rec)
	return nil
}

func (s *MemoryStorage) Load(_ context.Context, chatID int64) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[chatID]
	if !ok {
		return nil, nil
	}
	c := cloneRecord(rec)
	return &c, nil
}

func (s *MemoryStorage) Delete(_ context.Context, chatID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, chatID)
	return nil
}

func cloneRecord(rec Record) Record {
	rec.History = append([]int64{}, rec.History...)
	if rec.Fields.DisplayedImpressions != nil {
		rec.Fields.DisplayedImpressions = append([]int64{}, rec.Fields.DisplayedImpressions...)
	}
	return rec
}
