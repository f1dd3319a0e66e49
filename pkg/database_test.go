package pkg

import (
	"testing"

	"github.com/alicebob/miniredis/v2"

	"github.com/grindboard/practice-service/internal/config"
)

func TestNewRedisClient(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := NewRedisClient(&config.Config{Redis: config.RedisConfig{URL: "redis://" + mr.Addr() + "/0"}})
	if err != nil {
		t.Fatalf("NewRedisClient() error = %v", err)
	}
	defer client.Close()

	if _, err := NewRedisClient(&config.Config{Redis: config.RedisConfig{URL: "not a url"}}); err == nil {
		t.Errorf("NewRedisClient() with a bad url should fail")
	}
}
