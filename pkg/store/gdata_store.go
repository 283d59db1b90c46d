package store

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// gdata 存储位置
const (
	usersObject   = "users"
	usersProperty = "list"
)

// userListData 用户表在 gdata 中的 YAML 结构
type userListData struct {
	NextID int64  `yaml:"nextID"`
	Users  []User `yaml:"users"`
}

// GdataStore 基于 gdata 的用户存储
//
// 整张用户表作为一个 YAML 属性保存，每次创建用户后整体写回。
// 适合单机少量用户的场景。
type GdataStore struct {
	mu      sync.RWMutex
	manager *gdata.Manager
	data    userListData
}

// NewGdataStore 打开 gdata 里的用户表
//
// 参数:
//   - manager: gdata 管理器，不能为 nil
//
// 返回:
//   - *GdataStore: 已加载现有用户的存储
//   - error: 读取或解析失败
func NewGdataStore(manager *gdata.Manager) (*GdataStore, error) {
	if manager == nil {
		return nil, fmt.Errorf("gdata manager is nil")
	}
	s := &GdataStore{
		manager: manager,
		data:    userListData{NextID: 1},
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	log.Printf("[GdataStore] loaded %d users", len(s.data.Users))
	return s, nil
}

// OpenGdataStore 按应用名打开 gdata 并创建用户存储
func OpenGdataStore(appName string) (*GdataStore, error) {
	manager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("failed to open gdata: %w", err)
	}
	return NewGdataStore(manager)
}

func (s *GdataStore) load() error {
	if !s.manager.ObjectPropExists(usersObject, usersProperty) {
		return nil
	}
	raw, err := s.manager.LoadObjectProp(usersObject, usersProperty)
	if err != nil {
		return fmt.Errorf("failed to load user list: %w", err)
	}
	var data userListData
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("failed to parse user list: %w", err)
	}
	// 兼容 nextID 丢失的旧文件
	for _, u := range data.Users {
		if u.ID >= data.NextID {
			data.NextID = u.ID + 1
		}
	}
	if data.NextID < 1 {
		data.NextID = 1
	}
	s.data = data
	return nil
}

func (s *GdataStore) save() error {
	raw, err := yaml.Marshal(&s.data)
	if err != nil {
		return fmt.Errorf("failed to marshal user list: %w", err)
	}
	if err := s.manager.SaveObjectProp(usersObject, usersProperty, raw); err != nil {
		return fmt.Errorf("failed to save user list: %w", err)
	}
	return nil
}

// List 实现 UserStore
func (s *GdataStore) List(_ context.Context) ([]User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]User, len(s.data.Users))
	copy(users, s.data.Users)
	return users, nil
}

// Get 实现 UserStore
func (s *GdataStore) Get(_ context.Context, id int64) (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.data.Users {
		if u.ID == id {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

// GetByUsername 实现 UserStore
func (s *GdataStore) GetByUsername(_ context.Context, username string) (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := indexByUsername(s.data.Users, username); i >= 0 {
		return s.data.Users[i], nil
	}
	return User{}, ErrNotFound
}

// Create 实现 UserStore，写入失败时内存中的表回滚
func (s *GdataStore) Create(_ context.Context, username, passwordHash string) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if indexByUsername(s.data.Users, username) >= 0 {
		return User{}, ErrConflict
	}
	u := User{
		ID:           s.data.NextID,
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    nowFunc(),
	}

	prev := s.data
	s.data.Users = append(s.data.Users[:len(s.data.Users):len(s.data.Users)], u)
	s.data.NextID++
	if err := s.save(); err != nil {
		s.data = prev
		return User{}, err
	}
	return u, nil
}

// Close 实现 UserStore
func (s *GdataStore) Close() error {
	return nil
}
