// Package api 实现用户 CRUD 和行星数据的 HTTP 接口
//
// 路由：
//   - GET  /api/users       列出全部用户（不含密码）
//   - GET  /api/users/{id}  按 ID 查询
//   - POST /api/users       创建用户
//   - GET  /api/planets     行星表和跳跃高度对比
//
// 所有响应都是 JSON，未处理的错误和 panic 统一返回 500。
package api

import (
	"bufio"
	"log"
	"net"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gonewx/gravity-jump/pkg/config"
	"github.com/gonewx/gravity-jump/pkg/store"
	"golang.org/x/crypto/bcrypt"
)

// Options 创建 Server 的可选参数
type Options struct {
	// BcryptCost 密码哈希强度，0 使用 bcrypt.DefaultCost
	BcryptCost int
	// Registry 行星表，nil 使用内置行星表
	Registry *config.PlanetRegistry
}

// Server HTTP 处理器集合
type Server struct {
	store      store.UserStore
	registry   *config.PlanetRegistry
	validate   *validator.Validate
	bcryptCost int
}

// NewServer 创建 API 服务
//
// 参数:
//   - users: 用户存储
//   - opts: 可选参数
func NewServer(users store.UserStore, opts Options) *Server {
	cost := opts.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	registry := opts.Registry
	if registry == nil {
		registry = config.DefaultPlanetRegistry()
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	// 校验错误使用 JSON 字段名
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	return &Server{
		store:      users,
		registry:   registry,
		validate:   validate,
		bcryptCost: cost,
	}
}

// Register 把路由注册到 mux
func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/users", s.handleListUsers)
	mux.HandleFunc("GET /api/users/{id}", s.handleGetUser)
	mux.HandleFunc("POST /api/users", s.handleCreateUser)
	mux.HandleFunc("GET /api/planets", s.handlePlanets)
}

// Handler 返回带 recover 和访问日志中间件的完整处理器
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.Register(mux)
	return Recover(AccessLog(mux))
}

// Recover 把处理器中的 panic 转为 500 响应
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				log.Printf("[API] panic in %s %s: %v", r.Method, r.URL.Path, rec)
				writeInternalError(w)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// statusRecorder 记录响应状态码
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Unwrap 让 http.ResponseController 能取到底层 ResponseWriter
func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

// Hijack websocket 升级需要接管底层连接
func (r *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	r.status = http.StatusSwitchingProtocols
	return http.NewResponseController(r.ResponseWriter).Hijack()
}

// AccessLog 记录每个请求的方法、路径、状态码和耗时
func AccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Printf("[API] %s %s -> %d (%s)", r.Method, r.URL.Path, rec.status, time.Since(start).Round(time.Microsecond))
	})
}
