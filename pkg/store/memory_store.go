package store

import (
	"context"
	"sync"
)

// MemoryStore 进程内用户存储
type MemoryStore struct {
	mu     sync.RWMutex
	users  []User // 按 ID 升序
	nextID int64
}

// NewMemoryStore 创建空的内存存储
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{nextID: 1}
}

// List 实现 UserStore
func (s *MemoryStore) List(_ context.Context) ([]User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]User, len(s.users))
	copy(users, s.users)
	return users, nil
}

// Get 实现 UserStore
func (s *MemoryStore) Get(_ context.Context, id int64) (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

// GetByUsername 实现 UserStore
func (s *MemoryStore) GetByUsername(_ context.Context, username string) (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := indexByUsername(s.users, username); i >= 0 {
		return s.users[i], nil
	}
	return User{}, ErrNotFound
}

// Create 实现 UserStore
func (s *MemoryStore) Create(_ context.Context, username, passwordHash string) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if indexByUsername(s.users, username) >= 0 {
		return User{}, ErrConflict
	}
	u := User{
		ID:           s.nextID,
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    nowFunc(),
	}
	s.nextID++
	s.users = append(s.users, u)
	return u, nil
}

// Close 实现 UserStore
func (s *MemoryStore) Close() error {
	return nil
}

func indexByUsername(users []User, username string) int {
	for i, u := range users {
		if u.Username == username {
			return i
		}
	}
	return -1
}
