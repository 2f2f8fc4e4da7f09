package redis

import (
	"context"
	"fmt"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClientWithConfigAppliesOptions(t *testing.T) {
	s := miniredis.RunT(t)

	client, err := NewClientWithConfig(context.Background(), ClientConfig{
		URL:         fmt.Sprintf("redis://%s/2", s.Addr()),
		PoolSize:    4,
		DialTimeout: time.Second,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	opts := client.Options()
	assert.Equal(t, 4, opts.PoolSize)
	assert.Equal(t, 2, opts.DB)
	assert.Equal(t, "gcashledger", opts.ClientName)
}

func TestClientOptionsRejectsBadURL(t *testing.T) {
	_, err := clientOptions(ClientConfig{URL: "://bad-url"})
	assert.ErrorContains(t, err, "parse redis URL")
}

func TestNewClientFailsWhenServerDown(t *testing.T) {
	s := miniredis.RunT(t)
	url := fmt.Sprintf("redis://%s", s.Addr())
	s.Close()

	_, err := NewClient(context.Background(), url)
	assert.ErrorContains(t, err, "redis unreachable")
}

func TestNewClientWaitsForLateServer(t *testing.T) {
	s := miniredis.RunT(t)
	addr := s.Addr()
	s.Close()

	go func() {
		time.Sleep(300 * time.Millisecond)
		_ = s.Restart()
	}()

	client, err := NewClientWithConfig(context.Background(), ClientConfig{
		URL:         "redis://" + addr,
		StartupWait: 5 * time.Second,
	})
	require.NoError(t, err)
	_ = client.Close()
}
