package utils

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestCheckHealth(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	ok := pingFunc(func(context.Context) error { return nil })
	status := CheckHealth(context.Background(), []*redis.Client{client}, ok)
	assert.True(t, status.Healthy())
	assert.Equal(t, []bool{true}, status.Redis)
	assert.Equal(t, status, GetHealthStatus())

	down := pingFunc(func(context.Context) error { return errors.New("unavailable") })
	status = CheckHealth(context.Background(), []*redis.Client{client}, down)
	assert.False(t, status.Store)
	assert.False(t, status.Healthy())

	mr.Close()
	status = CheckHealth(context.Background(), []*redis.Client{client}, ok)
	assert.Equal(t, []bool{false}, status.Redis)
	assert.False(t, status.Healthy())
}
