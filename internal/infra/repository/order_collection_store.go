package repository

import (
	"context"
	"encoding/json"
	"sync"

	"pearlify/internal/domain/model"
	repo "pearlify/internal/repository"

	"github.com/labstack/gommon/log"
)

// orderCollectionStore reads every named collection and presents one deduplicated list.
// Writes are mirrored into all of them so pages that still read an alias stay in sync.
type orderCollectionStore struct {
	kv          repo.KeyValueStore
	collections []string
	logger      *log.Logger

	// serializes load-mutate-save inside this process; other writers still race (last write wins)
	mu sync.Mutex
}

func NewOrderCollectionStore(kv repo.KeyValueStore, collections []string, logger *log.Logger) repo.OrderRepository {
	return &orderCollectionStore{
		kv:          kv,
		collections: append([]string(nil), collections...),
		logger:      logger,
	}
}

// LoadAll merges the collections in configured order. First occurrence of an id wins.
func (s *orderCollectionStore) LoadAll(ctx context.Context) []model.Order {
	seen := map[string]bool{}
	out := []model.Order{}
	for _, name := range s.collections {
		for _, o := range s.readCollection(ctx, name) {
			if seen[o.ID] {
				continue
			}
			seen[o.ID] = true
			out = append(out, o)
		}
	}
	return out
}

func (s *orderCollectionStore) readCollection(ctx context.Context, name string) []model.Order {
	raw, ok, err := s.kv.Get(ctx, name)
	if err != nil {
		s.logger.Warnf("%v", &repo.StorageError{Op: repo.StorageRead, Key: name, Err: err})
		return nil
	}
	if !ok || raw == "" {
		return nil
	}

	var records []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		s.logger.Warnf("%v", &repo.StorageError{Op: repo.StorageRead, Key: name, Err: err})
		return nil
	}

	orders := make([]model.Order, 0, len(records))
	for i, rec := range records {
		o, ok := decodeOrder(rec)
		if !ok {
			s.logger.Warnf("collection %q: skipping record %d without a usable id/status", name, i)
			continue
		}
		orders = append(orders, o)
	}
	return orders
}

// decodeOrder rejects records whose id is not a non-empty string or whose status is not a string.
func decodeOrder(rec json.RawMessage) (model.Order, bool) {
	var probe struct {
		ID     any `json:"id"`
		Status any `json:"status"`
	}
	if err := json.Unmarshal(rec, &probe); err != nil {
		return model.Order{}, false
	}
	id, ok := probe.ID.(string)
	if !ok || id == "" {
		return model.Order{}, false
	}
	if _, ok := probe.Status.(string); !ok {
		return model.Order{}, false
	}

	var o model.Order
	if err := json.Unmarshal(rec, &o); err != nil {
		return model.Order{}, false
	}
	return o, true
}

// SaveAll overwrites every collection with the same serialized list.
// A failed collection is logged and the rest are still written.
func (s *orderCollectionStore) SaveAll(ctx context.Context, orders []model.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saveAll(ctx, orders)
}

func (s *orderCollectionStore) saveAll(ctx context.Context, orders []model.Order) {
	if orders == nil {
		orders = []model.Order{}
	}
	b, err := json.Marshal(orders)
	if err != nil {
		for _, name := range s.collections {
			s.logger.Errorf("%v", &repo.StorageError{Op: repo.StorageWrite, Key: name, Err: err})
		}
		return
	}
	payload := string(b)
	for _, name := range s.collections {
		if err := s.kv.Set(ctx, name, payload); err != nil {
			s.logger.Errorf("%v", &repo.StorageError{Op: repo.StorageWrite, Key: name, Err: err})
		}
	}
}

func (s *orderCollectionStore) FindByID(ctx context.Context, id string) (model.Order, error) {
	if id == "" {
		return model.Order{}, repo.ErrNotFound
	}
	for _, o := range s.LoadAll(ctx) {
		if o.ID == id {
			return o, nil
		}
	}
	return model.Order{}, repo.ErrNotFound
}

func (s *orderCollectionStore) Upsert(ctx context.Context, order model.Order) error {
	if order.ID == "" {
		return repo.ErrInvalidOrder
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	orders := s.LoadAll(ctx)
	replaced := false
	for i := range orders {
		if orders[i].ID == order.ID {
			orders[i] = order
			replaced = true
			break
		}
	}
	if !replaced {
		orders = append(orders, order)
	}
	s.saveAll(ctx, orders)
	return nil
}
