package adapter

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/paulvitic/cqrs-go/example/inventory/domain"
)

type memoryRepo struct {
	items map[uuid.UUID]domain.Item
	mutex sync.RWMutex
}

func MemoryRepo() domain.Repository {
	return &memoryRepo{items: make(map[uuid.UUID]domain.Item)}
}

func (r *memoryRepo) Save(_ context.Context, item *domain.Item) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	if _, ok := r.items[item.ID]; ok {
		return &domain.ItemExistsError{ID: item.ID}
	}
	r.items[item.ID] = *item
	return nil
}

func (r *memoryRepo) Update(_ context.Context, item *domain.Item) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	if _, ok := r.items[item.ID]; !ok {
		return &domain.ItemNotFoundError{ID: item.ID}
	}
	r.items[item.ID] = *item
	return nil
}

func (r *memoryRepo) Load(_ context.Context, id uuid.UUID) (*domain.Item, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	item, ok := r.items[id]
	if !ok {
		return nil, &domain.ItemNotFoundError{ID: id}
	}
	return &item, nil
}

func (r *memoryRepo) LoadAll(_ context.Context, offset, limit int) ([]domain.Item, error) {
	r.mutex.RLock()
	items := make([]domain.Item, 0, len(r.items))
	for _, item := range r.items {
		items = append(items, item)
	}
	r.mutex.RUnlock()

	slices.SortFunc(items, func(a, b domain.Item) int {
		return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.ID.String(), b.ID.String()))
	})
	start := min(max(offset, 0), len(items))
	end := min(start+max(limit, 0), len(items))
	return items[start:end], nil
}

func (r *memoryRepo) Count(context.Context) (int, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return len(r.items), nil
}

func (r *memoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	if _, ok := r.items[id]; !ok {
		return &domain.ItemNotFoundError{ID: id}
	}
	delete(r.items, id)
	return nil
}
