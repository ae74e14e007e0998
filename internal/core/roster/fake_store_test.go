package roster

import (
	"context"
	"errors"
	"sync"

	"github.com/JonMunkholm/portal/internal/models"
)

// memStore is an in-memory Store. Inserts become visible to other batches
// only after Commit.
type memStore struct {
	mu        sync.Mutex
	users     map[string]models.User
	nextID    int64
	failOn    map[string]error // username -> insert error
	commitErr error
	beginErr  error
	batches   int
}

func newMemStore(existing ...models.User) *memStore {
	s := &memStore{users: make(map[string]models.User), failOn: make(map[string]error)}
	for _, u := range existing {
		s.nextID++
		u.ID = s.nextID
		s.users[u.Username] = u
	}
	return s
}

func (s *memStore) BeginImport(ctx context.Context) (Batch, error) {
	if s.beginErr != nil {
		return nil, s.beginErr
	}
	s.mu.Lock()
	s.batches++
	s.mu.Unlock()
	return &memBatch{store: s, pending: make(map[string]models.User)}, nil
}

func (s *memStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}

func (s *memStore) has(username string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.users[username]
	return ok
}

type memBatch struct {
	store   *memStore
	pending map[string]models.User
	order   []string
	done    bool
}

func (b *memBatch) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	if u, ok := b.pending[username]; ok {
		return &u, nil
	}
	b.store.mu.Lock()
	defer b.store.mu.Unlock()
	if u, ok := b.store.users[username]; ok {
		return &u, nil
	}
	return nil, nil
}

func (b *memBatch) Insert(ctx context.Context, u models.User) (int64, error) {
	if err := b.store.failOn[u.Username]; err != nil {
		return 0, err
	}
	if _, ok := b.pending[u.Username]; ok {
		return 0, errors.New("duplicate key value violates unique constraint \"users_username_key\"")
	}
	b.store.mu.Lock()
	b.store.nextID++
	u.ID = b.store.nextID
	b.store.mu.Unlock()
	b.pending[u.Username] = u
	b.order = append(b.order, u.Username)
	return u.ID, nil
}

func (b *memBatch) Commit(ctx context.Context) error {
	if b.done {
		return errors.New("tx is closed")
	}
	b.done = true
	if b.store.commitErr != nil {
		return b.store.commitErr
	}
	b.store.mu.Lock()
	defer b.store.mu.Unlock()
	for _, name := range b.order {
		b.store.users[name] = b.pending[name]
	}
	return nil
}

func (b *memBatch) Rollback(ctx context.Context) error {
	b.done = true
	return nil
}
