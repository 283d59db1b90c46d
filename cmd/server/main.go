// server 提供用户 CRUD 接口和 websocket 模拟流
//
// 用法:
//
//	go run ./cmd/server -addr :8080 -store sqlite -db users.db -verbose
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gonewx/gravity-jump/pkg/api"
	"github.com/gonewx/gravity-jump/pkg/config"
	"github.com/gonewx/gravity-jump/pkg/store"
	"github.com/gonewx/gravity-jump/pkg/stream"
)

var (
	addr        = flag.String("addr", ":8080", "监听地址")
	storeKind   = flag.String("store", "memory", "用户存储: memory | gdata | sqlite")
	dbPath      = flag.String("db", "gravity-jump.db", "SQLite 数据库路径（-store sqlite）")
	planetsFile = flag.String("planets", "", "自定义行星表 YAML 路径")
	tickRate    = flag.Int("tick", 60, "websocket 模拟每秒步数")
	verbose     = flag.Bool("verbose", false, "显示详细日志")
)

func main() {
	flag.Parse()
	if !*verbose {
		log.SetOutput(io.Discard)
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "server: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	registry := config.DefaultPlanetRegistry()
	if *planetsFile != "" {
		loaded, err := config.LoadPlanetRegistry(*planetsFile)
		if err != nil {
			return err
		}
		registry = loaded
	}

	users, err := openStore(*storeKind, *dbPath)
	if err != nil {
		return err
	}
	defer users.Close()

	sim := stream.NewHandler(stream.Options{TickRate: *tickRate, Registry: registry})
	defer sim.Close()

	mux := http.NewServeMux()
	api.NewServer(users, api.Options{Registry: registry}).Register(mux)
	mux.Handle("GET /ws/sim", sim)

	srv := &http.Server{
		Addr:              *addr,
		Handler:           api.Recover(api.AccessLog(mux)),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		fmt.Printf("listening on %s (store=%s)\n", *addr, *storeKind)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Printf("[Server] shutting down")
	sim.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}

// openStore 按名称创建用户存储
func openStore(kind, path string) (store.UserStore, error) {
	switch kind {
	case "memory":
		return store.NewMemoryStore(), nil
	case "gdata":
		s, err := store.OpenGdataStore("gravity-jump")
		if err != nil {
			return nil, err
		}
		return s, nil
	case "sqlite":
		s, err := store.OpenSQLiteStore(path)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown store %q (want memory, gdata or sqlite)", kind)
	}
}
