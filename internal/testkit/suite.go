package testkit

import (
	"context"
	"fmt"
	"os"
	"testing"
)

// redisModule is set by Run for the lifetime of the test binary.
var redisModule *RedisModule

// RedisAddr returns the host:port of the Redis started by Run, or "" before it.
func RedisAddr() string {
	if redisModule == nil {
		return ""
	}
	return redisModule.Addr()
}

// Run starts Redis, calls the optional afterSetup callbacks, runs the tests
// and exits. Intended for use in TestMain.
func Run(m *testing.M, afterSetup ...func() error) {
	ctx := context.Background()
	cfg := LoadConfig()

	rdb, err := StartRedis(ctx, &cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "integration test setup failed: %v\n", err)
		os.Exit(1)
	}
	redisModule = rdb

	code := 0
	for _, fn := range afterSetup {
		if err := fn(); err != nil {
			fmt.Fprintf(os.Stderr, "afterSetup callback failed: %v\n", err)
			code = 1
			break
		}
	}
	if code == 0 {
		code = m.Run()
	}

	shutdown(ctx, &cfg, rdb)
	os.Exit(code)
}

func shutdown(ctx context.Context, cfg *Config, rdb *RedisModule) {
	if cfg.KeepContainers {
		fmt.Println("KEEP_CONTAINERS=true, leaving Redis at", rdb.Addr())
		return
	}
	if err := rdb.Terminate(ctx); err != nil {
		fmt.Println("warning: failed to terminate redis container:", err)
	}
}
