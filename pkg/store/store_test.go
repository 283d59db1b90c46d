package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/quasilyte/gdata/v2"
)

// openTestGdata 在临时 HOME 下打开 gdata，环境不支持时跳过
func openTestGdata(t *testing.T) *gdata.Manager {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(home, ".local", "share"))
	manager, err := gdata.Open(gdata.Config{AppName: "gravity_jump_store_test"})
	if err != nil {
		t.Skipf("gdata not available: %v", err)
	}
	return manager
}

// storeFactories 返回所有待测实现
func storeFactories() map[string]func(t *testing.T) UserStore {
	return map[string]func(t *testing.T) UserStore{
		"memory": func(t *testing.T) UserStore {
			return NewMemoryStore()
		},
		"sqlite": func(t *testing.T) UserStore {
			s, err := OpenSQLiteStore(filepath.Join(t.TempDir(), "users.db"))
			if err != nil {
				t.Fatalf("OpenSQLiteStore failed: %v", err)
			}
			return s
		},
		"gdata": func(t *testing.T) UserStore {
			s, err := NewGdataStore(openTestGdata(t))
			if err != nil {
				t.Fatalf("NewGdataStore failed: %v", err)
			}
			return s
		},
	}
}

func TestUserStoreContract(t *testing.T) {
	for name, open := range storeFactories() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := open(t)
			defer s.Close()

			users, err := s.List(ctx)
			if err != nil {
				t.Fatalf("List failed: %v", err)
			}
			if len(users) != 0 {
				t.Fatalf("new store should be empty, got %d users", len(users))
			}

			alice, err := s.Create(ctx, "alice", "hash-a")
			if err != nil {
				t.Fatalf("Create alice failed: %v", err)
			}
			bob, err := s.Create(ctx, "bob", "hash-b")
			if err != nil {
				t.Fatalf("Create bob failed: %v", err)
			}
			if alice.ID != 1 || bob.ID != 2 {
				t.Errorf("IDs should start at 1 and increase, got %d and %d", alice.ID, bob.ID)
			}

			if _, err := s.Create(ctx, "alice", "other"); !errors.Is(err, ErrConflict) {
				t.Errorf("duplicate username: got %v, want ErrConflict", err)
			}

			got, err := s.Get(ctx, bob.ID)
			if err != nil {
				t.Fatalf("Get failed: %v", err)
			}
			if got.Username != "bob" || got.PasswordHash != "hash-b" {
				t.Errorf("Get returned %+v", got)
			}

			if _, err := s.Get(ctx, 99); !errors.Is(err, ErrNotFound) {
				t.Errorf("missing id: got %v, want ErrNotFound", err)
			}

			byName, err := s.GetByUsername(ctx, "alice")
			if err != nil || byName.ID != alice.ID {
				t.Errorf("GetByUsername: got %+v, %v", byName, err)
			}
			if _, err := s.GetByUsername(ctx, "ALICE"); !errors.Is(err, ErrNotFound) {
				t.Errorf("username lookup should be exact, got %v", err)
			}

			users, err = s.List(ctx)
			if err != nil {
				t.Fatalf("List failed: %v", err)
			}
			if len(users) != 2 || users[0].ID != 1 || users[1].ID != 2 {
				t.Errorf("List should be ordered by id, got %+v", users)
			}
		})
	}
}

func TestMemoryStoreConcurrentCreate(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	const n = 20
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Create(ctx, "same", "hash")
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	created := 0
	for err := range errs {
		switch {
		case err == nil:
			created++
		case !errors.Is(err, ErrConflict):
			t.Errorf("unexpected error: %v", err)
		}
	}
	if created != 1 {
		t.Errorf("exactly one create should win, got %d", created)
	}
}

func TestSQLiteStorePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.db")
	ctx := context.Background()

	s, err := OpenSQLiteStore(path)
	if err != nil {
		t.Fatalf("OpenSQLiteStore failed: %v", err)
	}
	if _, err := s.Create(ctx, "carol", "hash"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	s.Close()

	reopened, err := OpenSQLiteStore(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer reopened.Close()

	u, err := reopened.GetByUsername(ctx, "carol")
	if err != nil {
		t.Fatalf("user should survive reopen: %v", err)
	}
	if u.CreatedAt.IsZero() {
		t.Error("created_at should be stored")
	}
}

func TestGdataStorePersists(t *testing.T) {
	manager := openTestGdata(t)
	ctx := context.Background()

	s, err := NewGdataStore(manager)
	if err != nil {
		t.Fatalf("NewGdataStore failed: %v", err)
	}
	if _, err := s.Create(ctx, "dave", "hash"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	reloaded, err := NewGdataStore(manager)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	users, _ := reloaded.List(ctx)
	if len(users) != 1 || users[0].Username != "dave" {
		t.Fatalf("reloaded users: %+v", users)
	}

	// 新用户继续使用递增 ID
	erin, err := reloaded.Create(ctx, "erin", "hash")
	if err != nil || erin.ID != 2 {
		t.Errorf("next id after reload: got %+v, %v", erin, err)
	}
}

func TestGdataStoreCorruptedData(t *testing.T) {
	manager := openTestGdata(t)
	if err := manager.SaveObjectProp(usersObject, usersProperty, []byte("users: [")); err != nil {
		t.Fatalf("SaveObjectProp failed: %v", err)
	}
	if _, err := NewGdataStore(manager); err == nil {
		t.Error("corrupted user list should fail to load")
	}
}

func TestNewGdataStoreNilManager(t *testing.T) {
	if _, err := NewGdataStore(nil); err == nil {
		t.Error("nil manager should be rejected")
	}
}

func TestOpenSQLiteStoreBadPath(t *testing.T) {
	dir := t.TempDir()
	// 以普通文件作为父目录，连接必然失败
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := OpenSQLiteStore(filepath.Join(blocker, "users.db")); err == nil {
		t.Error("opening a database under a regular file should fail")
	}
}
