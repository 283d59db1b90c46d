package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/url"

	"github.com/jmoiron/sqlx"
	"github.com/mattn/go-sqlite3"
)

const sqliteSchema = `
	CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at DATETIME NOT NULL
	);
`

// SQLiteStore 基于 SQLite 的用户存储
type SQLiteStore struct {
	db *sqlx.DB
}

// OpenSQLiteStore 打开（必要时创建）SQLite 数据库并建表
//
// 参数:
//   - path: 数据库文件路径，":memory:" 使用内存数据库
//
// 返回:
//   - *SQLiteStore: 可用的存储
//   - error: 连接或建表失败
func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	v := url.Values{}
	v.Add("_journal_mode", "WAL")
	v.Add("_busy_timeout", "5000")
	dsn := fmt.Sprintf("file:%s?%s", path, v.Encode())

	db, err := sqlx.Connect("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect sqlite %s: %w", path, err)
	}
	// SQLite 单写者，内存库每个连接是独立的数据库
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	log.Printf("[SQLiteStore] connected to %s", path)
	return &SQLiteStore{db: db}, nil
}

// List 实现 UserStore
func (s *SQLiteStore) List(ctx context.Context) ([]User, error) {
	users := []User{}
	if err := s.db.SelectContext(ctx, &users, `SELECT id, username, password_hash, created_at FROM users ORDER BY id`); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// Get 实现 UserStore
func (s *SQLiteStore) Get(ctx context.Context, id int64) (User, error) {
	var u User
	err := s.db.GetContext(ctx, &u, `SELECT id, username, password_hash, created_at FROM users WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, fmt.Errorf("failed to get user %d: %w", id, err)
	}
	return u, nil
}

// GetByUsername 实现 UserStore
func (s *SQLiteStore) GetByUsername(ctx context.Context, username string) (User, error) {
	var u User
	err := s.db.GetContext(ctx, &u, `SELECT id, username, password_hash, created_at FROM users WHERE username = ?`, username)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, fmt.Errorf("failed to get user %q: %w", username, err)
	}
	return u, nil
}

// Create 实现 UserStore，唯一约束冲突映射为 ErrConflict
func (s *SQLiteStore) Create(ctx context.Context, username, passwordHash string) (User, error) {
	u := User{
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    nowFunc(),
	}
	res, err := s.db.NamedExecContext(ctx,
		`INSERT INTO users (username, password_hash, created_at) VALUES (:username, :password_hash, :created_at)`, &u)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return User{}, ErrConflict
		}
		return User{}, fmt.Errorf("failed to insert user %q: %w", username, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return User{}, fmt.Errorf("failed to read inserted id: %w", err)
	}
	u.ID = id
	return u, nil
}

// Close 实现 UserStore
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
