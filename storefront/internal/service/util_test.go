package service

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	testRedis "github.com/testcontainers/testcontainers-go/modules/redis"

	"github.com/prakoso/storely/internal/repository"
)

type testEnv struct {
	pool           *pgxpool.Pool
	cache          *redis.Client
	pgContainer    *postgres.PostgresContainer
	redisContainer *testRedis.RedisContainer
	service        CartService
}

func setup(t *testing.T, c context.Context) testEnv {
	t.Helper()

	migrationsDir := filepath.Join("..", "..", "..", "migrations")
	pgContainer, err := postgres.Run(
		c,
		"postgres:16.6-alpine3.21",
		testcontainers.WithEnv(map[string]string{
			"POSTGRES_DB":       "postgres",
			"POSTGRES_PASSWORD": "postgres",
			"POSTGRES_USER":     "postgres",
		}),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		postgres.WithDatabase("postgres"),
		postgres.BasicWaitStrategies(),
		postgres.WithInitScripts(
			filepath.Join(migrationsDir, "000001_create_merchants.up.sql"),
			filepath.Join(migrationsDir, "000002_create_shops.up.sql"),
			filepath.Join(migrationsDir, "000003_create_customers.up.sql"),
			filepath.Join(migrationsDir, "000004_create_products.up.sql"),
			filepath.Join(migrationsDir, "000005_create_product_variants.up.sql"),
			filepath.Join(migrationsDir, "000006_create_coupons.up.sql"),
			filepath.Join(migrationsDir, "000007_create_carts.up.sql"),
			filepath.Join("seed", "storefront.seed.sql"),
		),
	)
	if err != nil {
		t.Fatalf("failed running postgres container with error: %s", err)
	}

	pgConnStr, err := pgContainer.ConnectionString(c)
	if err != nil {
		t.Fatalf("failed getting postgres connection string with error: %s", err)
	}

	pool, err := pgxpool.New(c, pgConnStr)
	if err != nil {
		t.Fatalf("failed creating postgres pool with error: %s", err)
	}
	if err = pool.Ping(c); err != nil {
		t.Fatalf("failed pinging postgres pool with error: %s", err)
	}

	redisContainer, err := testRedis.Run(c, "redis:7.4.2-alpine3.21")
	if err != nil {
		t.Fatalf("failed running redis container with error: %s", err)
	}
	redisHost, err := redisContainer.Host(c)
	if err != nil {
		t.Fatalf("failed getting redis host with error: %s", err)
	}
	redisPort, err := redisContainer.MappedPort(c, "6379/tcp")
	if err != nil {
		t.Fatalf("failed getting redis port with error: %s", err)
	}
	cache := redis.NewClient(&redis.Options{
		Addr: fmt.Sprintf("%s:%s", redisHost, redisPort.Port()),
	})
	if err = cache.Ping(c).Err(); err != nil {
		t.Fatalf("failed pinging redis with error: %s", err)
	}

	queries := repository.New(pool)
	return testEnv{
		pool:           pool,
		cache:          cache,
		pgContainer:    pgContainer,
		redisContainer: redisContainer,
		service:        NewCartService(pool, queries, cache),
	}
}

func teardown(t *testing.T, c context.Context, env testEnv) {
	t.Helper()

	env.pool.Close()
	if err := env.cache.Close(); err != nil {
		t.Logf("failed closing redis client with error: %s", err)
	}
	if err := env.redisContainer.Terminate(c); err != nil {
		t.Logf("failed terminating redis container with error: %s", err)
	}
	if err := env.pgContainer.Terminate(c); err != nil {
		t.Logf("failed terminating postgres container with error: %s", err)
	}
}
