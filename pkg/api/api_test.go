package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gonewx/gravity-jump/pkg/store"
	"golang.org/x/crypto/bcrypt"
)

func newTestServer(t *testing.T) (*httptest.Server, *store.MemoryStore) {
	t.Helper()
	users := store.NewMemoryStore()
	srv := httptest.NewServer(NewServer(users, Options{BcryptCost: bcrypt.MinCost}).Handler())
	t.Cleanup(srv.Close)
	return srv, users
}

func doRequest(t *testing.T, method, url, body string) (*http.Response, map[string]any) {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	if err != nil {
		t.Fatalf("NewRequest failed: %v", err)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, url, err)
	}
	defer resp.Body.Close()

	var decoded any
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	obj, _ := decoded.(map[string]any)
	return resp, obj
}

func TestCreateAndGetUser(t *testing.T) {
	srv, users := newTestServer(t)

	resp, body := doRequest(t, http.MethodPost, srv.URL+"/api/users", `{"username":"neil","password":"moonwalk"}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create: status %d, body %v", resp.StatusCode, body)
	}
	if body["id"] != float64(1) || body["username"] != "neil" {
		t.Errorf("create body: %v", body)
	}
	if _, ok := body["password"]; ok {
		t.Error("password must not be serialized")
	}

	// 存储里只有哈希
	stored, err := users.Get(context.Background(), 1)
	if err != nil {
		t.Fatalf("stored user missing: %v", err)
	}
	if stored.PasswordHash == "moonwalk" {
		t.Error("password should be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("moonwalk")); err != nil {
		t.Errorf("hash should match password: %v", err)
	}

	resp, body = doRequest(t, http.MethodGet, srv.URL+"/api/users/1", "")
	if resp.StatusCode != http.StatusOK || body["username"] != "neil" {
		t.Errorf("get: status %d, body %v", resp.StatusCode, body)
	}
	if _, ok := body["passwordHash"]; ok {
		t.Error("password hash must not be serialized")
	}
}

func TestListUsers(t *testing.T) {
	srv, users := newTestServer(t)
	ctx := context.Background()
	users.Create(ctx, "a", "x")
	users.Create(ctx, "b", "y")

	resp, err := http.Get(srv.URL + "/api/users")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d", resp.StatusCode)
	}

	var list []map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 || list[0]["username"] != "a" || list[1]["username"] != "b" {
		t.Errorf("list: %v", list)
	}
	for _, u := range list {
		if len(u) != 2 {
			t.Errorf("public user should only have id and username, got %v", u)
		}
	}
}

func TestListUsersEmptyIsArray(t *testing.T) {
	srv, _ := newTestServer(t)
	resp, err := http.Get(srv.URL + "/api/users")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var raw json.RawMessage
	json.NewDecoder(resp.Body).Decode(&raw)
	if strings.TrimSpace(string(raw)) != "[]" {
		t.Errorf("empty list should encode as [], got %s", raw)
	}
}

func TestGetUserInvalidID(t *testing.T) {
	srv, _ := newTestServer(t)

	tests := []struct {
		name   string
		id     string
		status int
		msg    string
	}{
		{"非整数", "abc", http.StatusBadRequest, "Invalid user id"},
		{"小数", "1.5", http.StatusBadRequest, "Invalid user id"},
		{"零", "0", http.StatusBadRequest, "Invalid user id"},
		{"负数", "-3", http.StatusBadRequest, "Invalid user id"},
		{"不存在", "42", http.StatusNotFound, "User not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := doRequest(t, http.MethodGet, srv.URL+"/api/users/"+tt.id, "")
			if resp.StatusCode != tt.status {
				t.Errorf("status: got %d, want %d", resp.StatusCode, tt.status)
			}
			if body["message"] != tt.msg {
				t.Errorf("message: got %v, want %q", body["message"], tt.msg)
			}
		})
	}
}

func TestCreateUserValidation(t *testing.T) {
	srv, _ := newTestServer(t)

	tests := []struct {
		name       string
		body       string
		wantFields []string
		wantForm   bool
	}{
		{"缺少全部字段", `{}`, []string{"username", "password"}, false},
		{"缺少密码", `{"username":"buzz"}`, []string{"password"}, false},
		{"类型错误", `{"username":5,"password":"x"}`, []string{"username"}, false},
		{"用户名过长", `{"username":"` + strings.Repeat("u", 65) + `","password":"x"}`, []string{"username"}, false},
		{"不是对象", `[1,2]`, nil, true},
		{"非法 JSON", `{"username":`, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := doRequest(t, http.MethodPost, srv.URL+"/api/users", tt.body)
			if resp.StatusCode != http.StatusBadRequest {
				t.Fatalf("status: got %d, want 400", resp.StatusCode)
			}
			if body["message"] != "Invalid user data" {
				t.Errorf("message: %v", body["message"])
			}

			errs, ok := body["errors"].(map[string]any)
			if !ok {
				t.Fatalf("errors object missing: %v", body)
			}
			formErrors, _ := errs["formErrors"].([]any)
			fieldErrors, _ := errs["fieldErrors"].(map[string]any)
			if fieldErrors == nil {
				t.Fatalf("fieldErrors should always be an object: %v", errs)
			}
			if tt.wantForm != (len(formErrors) > 0) {
				t.Errorf("formErrors: %v", formErrors)
			}
			for _, f := range tt.wantFields {
				msgs, ok := fieldErrors[f].([]any)
				if !ok || len(msgs) == 0 {
					t.Errorf("field %q should have errors, got %v", f, fieldErrors)
				}
			}
			if len(fieldErrors) != len(tt.wantFields) {
				t.Errorf("unexpected field errors: %v", fieldErrors)
			}
		})
	}
}

func TestCreateUserRequiredMessage(t *testing.T) {
	srv, _ := newTestServer(t)
	_, body := doRequest(t, http.MethodPost, srv.URL+"/api/users", `{"password":"x"}`)

	fields := body["errors"].(map[string]any)["fieldErrors"].(map[string]any)
	msgs := fields["username"].([]any)
	if msgs[0] != "Required" {
		t.Errorf("required message: got %v", msgs[0])
	}
}

func TestCreateUserConflict(t *testing.T) {
	srv, _ := newTestServer(t)

	doRequest(t, http.MethodPost, srv.URL+"/api/users", `{"username":"sally","password":"ride"}`)
	resp, body := doRequest(t, http.MethodPost, srv.URL+"/api/users", `{"username":"sally","password":"other"}`)
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("status: got %d, want 409", resp.StatusCode)
	}
	if body["message"] != "Username already exists" {
		t.Errorf("message: %v", body["message"])
	}
}

// faultyStore 模拟存储层故障
type faultyStore struct {
	store.MemoryStore
	panicOnList bool
}

func (f *faultyStore) List(ctx context.Context) ([]store.User, error) {
	if f.panicOnList {
		panic("disk on fire")
	}
	return nil, errors.New("connection reset")
}

func TestInternalErrors(t *testing.T) {
	tests := []struct {
		name  string
		store *faultyStore
	}{
		{"返回错误", &faultyStore{}},
		{"panic", &faultyStore{panicOnList: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(NewServer(tt.store, Options{BcryptCost: bcrypt.MinCost}).Handler())
			defer srv.Close()

			resp, body := doRequest(t, http.MethodGet, srv.URL+"/api/users", "")
			if resp.StatusCode != http.StatusInternalServerError {
				t.Errorf("status: got %d, want 500", resp.StatusCode)
			}
			if body["message"] != "Internal Server Error" {
				t.Errorf("message: %v", body["message"])
			}
		})
	}
}

func TestPlanetsEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)
	resp, body := doRequest(t, http.MethodGet, srv.URL+"/api/planets", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d", resp.StatusCode)
	}
	if body["default"] != "earth" {
		t.Errorf("default: %v", body["default"])
	}

	planets := body["planets"].([]any)
	if len(planets) != 5 {
		t.Fatalf("planets: got %d", len(planets))
	}
	moon := planets[1].(map[string]any)
	if moon["key"] != "moon" {
		t.Fatalf("second planet: %v", moon["key"])
	}
	if h := moon["maxHeight"].(float64); h < 2.24 || h > 2.26 {
		t.Errorf("moon max height: %v", h)
	}
	if len(body["comparison"].([]any)) != 5 {
		t.Error("comparison should list every planet")
	}
}

func TestMethodNotAllowed(t *testing.T) {
	srv, _ := newTestServer(t)
	req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/api/users/1", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("status: got %d, want 405", resp.StatusCode)
	}
}
