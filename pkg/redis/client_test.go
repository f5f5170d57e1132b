package redis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nmorales/distromart-storefront/pkg/config"
)

func TestOptionsFromConfigRequiresTarget(t *testing.T) {
	t.Parallel()

	_, err := optionsFromConfig(config.RedisConfig{})
	require.Error(t, err)
}

func TestOptionsFromConfigParsesURL(t *testing.T) {
	t.Parallel()

	opts, err := optionsFromConfig(config.RedisConfig{
		URL:         "redis://:pw@localhost:6380/2",
		PoolSize:    7,
		DialTimeout: 2 * time.Second,
	})
	require.NoError(t, err)
	require.Equal(t, "localhost:6380", opts.Addr)
	require.Equal(t, "pw", opts.Password)
	require.Equal(t, 2, opts.DB)
	require.Equal(t, 7, opts.PoolSize)
	require.Equal(t, 2*time.Second, opts.DialTimeout)
}

func TestOptionsFromConfigAddressFallback(t *testing.T) {
	t.Parallel()

	opts, err := optionsFromConfig(config.RedisConfig{Address: "cache:6379", Password: "s", DB: 1})
	require.NoError(t, err)
	require.Equal(t, "cache:6379", opts.Addr)
	require.Equal(t, 1, opts.DB)
}

func TestDraftKey(t *testing.T) {
	t.Parallel()

	c := &Client{}
	require.Equal(t, "dm:draft:rep-1:sess-2", c.DraftKey("rep-1", "sess-2"))
	require.Equal(t, "dm:draft:rep-1", c.DraftKey("rep-1", ""))
}
