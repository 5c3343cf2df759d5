package redis

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient_URLInvalida(t *testing.T) {
	_, err := NewClient(context.Background(), "http://no-es-redis")
	assert.Error(t, err)
}

func TestIdempotencyGuard_ErrorDeConexion(t *testing.T) {
	// Puerto cerrado: el guard propaga el error en vez de dejar pasar el pedido.
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 100 * time.Millisecond, MaxRetries: -1})
	defer client.Close()
	g := NewIdempotencyGuard(client, time.Minute)

	ok, err := g.Acquire(context.Background(), "order:u1:k1")
	require.Error(t, err)
	assert.False(t, ok)
	assert.Error(t, g.Release(context.Background(), "order:u1:k1"))
}
