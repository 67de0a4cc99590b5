package auth

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

func redisStore(t *testing.T) *RedisRevocationStore {
	t.Helper()
	_ = godotenv.Load("../../.env")
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set")
	}

	opts, err := redis.ParseURL(url)
	if err != nil {
		t.Fatalf("redis url: %v", err)
	}
	client := redis.NewClient(opts)
	t.Cleanup(func() { _ = client.Close() })

	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Fatalf("redis ping: %v", err)
	}
	return NewRedisRevocationStore(client)
}

func TestRedisRevocationStore(t *testing.T) {
	s := redisStore(t)
	ctx := context.Background()

	jti := uuid.NewString()
	if err := s.Revoke(ctx, jti, time.Now().Add(time.Minute)); err != nil {
		t.Fatalf("revoke: %v", err)
	}

	revoked, err := s.IsRevoked(ctx, jti)
	if err != nil || !revoked {
		t.Fatalf("expected revoked, got %v (err %v)", revoked, err)
	}

	revoked, err = s.IsRevoked(ctx, uuid.NewString())
	if err != nil || revoked {
		t.Fatalf("unknown jti reported revoked (err %v)", err)
	}

	expired := uuid.NewString()
	if err := s.Revoke(ctx, expired, time.Now().Add(-time.Second)); err != nil {
		t.Fatalf("revoke expired: %v", err)
	}
	if revoked, _ := s.IsRevoked(ctx, expired); revoked {
		t.Fatalf("already-expired token must not be stored")
	}
}

func TestRedisRevocationKeyExpires(t *testing.T) {
	s := redisStore(t)
	ctx := context.Background()

	jti := uuid.NewString()
	if err := s.Revoke(ctx, jti, time.Now().Add(30*time.Second)); err != nil {
		t.Fatalf("revoke: %v", err)
	}

	ttl, err := s.client.TTL(ctx, revokedKeyPrefix+jti).Result()
	if err != nil {
		t.Fatalf("ttl: %v", err)
	}
	if ttl <= 0 || ttl > 30*time.Second {
		t.Fatalf("unexpected ttl %v", ttl)
	}
}
