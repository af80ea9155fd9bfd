package main

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ignite/ppc-optimizer/internal/api"
	"github.com/ignite/ppc-optimizer/internal/config"
	"github.com/ignite/ppc-optimizer/internal/pkg/logger"
	"github.com/ignite/ppc-optimizer/internal/session"
)

const defaultConfigPath = "config/config.yaml"

// checkPortAvailable verifies that the target port is not already in use.
func checkPortAvailable(host string, port int) error {
	addr := fmt.Sprintf("%s:%d", host, port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("port %d is already in use (addr %s): %v\n"+
			"  Hint: Run 'lsof -i :%d' to find the blocking process", port, addr, err, port)
	}
	ln.Close()
	return nil
}

// configPath prefers CONFIG_PATH, then config/config.yaml when present.
// An empty result means defaults plus environment.
func configPath() string {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}
	if _, err := os.Stat(defaultConfigPath); err == nil {
		return defaultConfigPath
	}
	return ""
}

// openStore connects to Redis when enabled and falls back to process memory
// when Redis is disabled or unreachable.
func openStore(ctx context.Context, cfg *config.Config) (session.Store, func()) {
	ttl := cfg.Session.TTL()
	if cfg.Redis.Enabled {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		err := client.Ping(pingCtx).Err()
		cancel()
		if err == nil {
			log.Printf("Redis connected: %s (sessions expire after %s)", cfg.Redis.Addr, ttl)
			return session.NewRedisStore(client, cfg.Redis.KeyPrefix, ttl), func() { client.Close() }
		}
		log.Printf("Warning: Redis connection failed (%s): %v; falling back to in-memory sessions", cfg.Redis.Addr, err)
		client.Close()
	} else {
		log.Println("Redis not configured, using in-memory sessions")
	}

	mem := session.NewMemoryStore(ttl)
	go func() {
		ticker := time.NewTicker(10 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := mem.Sweep(); n > 0 {
					logger.Debug("expired sessions swept", "count", n)
				}
			}
		}
	}()
	return mem, func() {}
}

func main() {
	log.Println("╔════════════════════════════════════════════════════════════╗")
	log.Println("║  PPC Optimizer API Server (cmd/server/main.go)            ║")
	log.Println("║  Search term analysis and bulk upload generation          ║")
	log.Println("╚════════════════════════════════════════════════════════════╝")

	// Load configuration
	cfg, err := config.LoadFromEnv(configPath())
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger.SetLevel(logger.ParseLevel(cfg.Log.Level))
	defer logger.Sync()

	if err := checkPortAvailable(cfg.Server.Host, cfg.Server.Port); err != nil {
		log.Fatalf("Pre-flight check FAILED: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, closeStore := openStore(ctx, cfg)
	defer closeStore()

	server, err := api.NewServer(cfg, store)
	if err != nil {
		log.Fatalf("Failed to initialize API: %v", err)
	}

	// Setup graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		log.Printf("Starting server on %s", addr)
		if err := server.ListenAndServe(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-done
	log.Println("Shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server stopped")
}
