// Package store 提供用户数据的存储接口和三种实现：
// 内存（测试和默认）、gdata（本地跨平台存储）、SQLite（sqlx）。
//
// 所有实现都是并发安全的，HTTP 处理器可以直接共享一个实例。
package store

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound 用户不存在
	ErrNotFound = errors.New("user not found")
	// ErrConflict 用户名已存在
	ErrConflict = errors.New("username already exists")
)

// User 存储层的用户记录
// PasswordHash 只在存储层和处理器内部使用，序列化给客户端前必须去掉
type User struct {
	ID           int64     `db:"id" yaml:"id"`
	Username     string    `db:"username" yaml:"username"`
	PasswordHash string    `db:"password_hash" yaml:"passwordHash"`
	CreatedAt    time.Time `db:"created_at" yaml:"createdAt"`
}

// UserStore 用户存储接口
type UserStore interface {
	// List 按 ID 升序返回所有用户
	List(ctx context.Context) ([]User, error)
	// Get 按 ID 查找，不存在返回 ErrNotFound
	Get(ctx context.Context, id int64) (User, error)
	// GetByUsername 按用户名精确查找，不存在返回 ErrNotFound
	GetByUsername(ctx context.Context, username string) (User, error)
	// Create 创建用户并分配递增 ID（从 1 开始），用户名重复返回 ErrConflict
	Create(ctx context.Context, username, passwordHash string) (User, error)
	// Close 释放底层资源
	Close() error
}

// nowFunc 创建时间来源，测试中可替换
var nowFunc = func() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}
