package cluster

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNodeOptionsDefaults(t *testing.T) {
	opts := &NodeOptions{Rank: 1, Size: 2}
	require.Nil(t, ensureDefaultNodeOptionsValues(opts))
	require.Equal(t, "127.0.0.1", opts.Host)
	require.Equal(t, "127.0.0.1:1644", opts.listenString())
	require.Equal(t, "127.0.0.1:1643", opts.connectionString(0))
	require.Equal(t, 5*time.Second, opts.RPCTimeout)

	require.NotNil(t, ensureDefaultNodeOptionsValues(&NodeOptions{}))
	require.NotNil(t, ensureDefaultNodeOptionsValues(&NodeOptions{Rank: 2, Size: 2}))
	require.NotNil(t, ensureDefaultNodeOptionsValues(&NodeOptions{Size: 2, Peers: []string{"a:1"}}))
}

func TestNodeOptionsWithPeers(t *testing.T) {
	opts := &NodeOptions{Rank: 1, Size: 2, Host: "0.0.0.0", Peers: []string{"alpha:4000", "beta:4001"}}
	require.Nil(t, ensureDefaultNodeOptionsValues(opts))
	require.Equal(t, "alpha:4000", opts.connectionString(0))
	require.Equal(t, "0.0.0.0:4001", opts.listenString())

	clone := CloneNodeOptions(opts)
	clone.Peers[0] = "gamma:1"
	require.Equal(t, "alpha:4000", opts.Peers[0])
}

func TestNodeOptionsFromEnv(t *testing.T) {
	for k, v := range map[string]string{"VISPIPE_RANK": "2", "VISPIPE_SIZE": "4", "VISPIPE_BASE_PORT": "9000", "VISPIPE_PEERS": ""} {
		old, had := os.LookupEnv(k)
		os.Setenv(k, v)
		defer func(k, old string, had bool) {
			if had {
				os.Setenv(k, old)
			} else {
				os.Unsetenv(k)
			}
		}(k, old, had)
	}
	opts, err := NodeOptionsFromEnv()
	require.Nil(t, err)
	require.Equal(t, 2, opts.Rank)
	require.Equal(t, 4, opts.Size)
	require.Equal(t, 9000, opts.BasePort)
	require.Nil(t, opts.Peers)

	os.Setenv("VISPIPE_SIZE", "four")
	_, err = NodeOptionsFromEnv()
	require.NotNil(t, err)
}

func TestNodeOptionsFromJSON(t *testing.T) {
	opts, err := NodeOptionsFromJSON([]byte(`{"rank": 1, "size": 3, "peers": ["a:1", "b:2", "c:3"], "rpcTimeout": "250ms"}`))
	require.Nil(t, err)
	require.Equal(t, 1, opts.Rank)
	require.Equal(t, 3, opts.Size)
	require.Equal(t, []string{"a:1", "b:2", "c:3"}, opts.Peers)
	require.Equal(t, 250*time.Millisecond, opts.RPCTimeout)
	require.Equal(t, time.Duration(0), opts.DialTimeout)

	_, err = NodeOptionsFromJSON([]byte(`{"rpcTimeout": "soon"}`))
	require.NotNil(t, err)
	_, err = NodeOptionsFromJSON([]byte(`{`))
	require.NotNil(t, err)
}
