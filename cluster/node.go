package cluster

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// NodeOptions are options for a Node, configuring its place in a parallel job
type NodeOptions struct {
	Rank        int           // rank of this Node, in [0, Size)
	Size        int           // [REQUIRED] the number of ranks in the job
	Host        string        // hostname for this Node to bind to, and of every peer when Peers is unset
	BasePort    int           // rank r listens on BasePort+r when Peers is unset
	Peers       []string      // address of every rank, indexed by rank (overrides Host and BasePort for peers)
	RPCTimeout  time.Duration // timeout for delivering a single message
	DialTimeout time.Duration // how long to wait for a peer to start listening
}

// CloneNodeOptions makes a copy of a NodeOptions
func CloneNodeOptions(opts *NodeOptions) *NodeOptions {
	return &NodeOptions{
		Rank:        opts.Rank,
		Size:        opts.Size,
		Host:        opts.Host,
		BasePort:    opts.BasePort,
		Peers:       append([]string(nil), opts.Peers...),
		RPCTimeout:  opts.RPCTimeout,
		DialTimeout: opts.DialTimeout,
	}
}

func ensureDefaultNodeOptionsValues(opts *NodeOptions) error {
	// fail if certain required options are not supplied
	if opts.Size < 1 {
		return fmt.Errorf("NodeOptions.Size must be greater than 0")
	}
	if opts.Rank < 0 || opts.Rank >= opts.Size {
		return fmt.Errorf("NodeOptions.Rank %d must be in [0, %d)", opts.Rank, opts.Size)
	}
	if len(opts.Peers) > 0 && len(opts.Peers) != opts.Size {
		return fmt.Errorf("NodeOptions.Peers lists %d addresses for %d ranks", len(opts.Peers), opts.Size)
	}
	// default certain options if not supplied
	if len(opts.Host) == 0 {
		opts.Host = "127.0.0.1"
	}
	if opts.BasePort == 0 {
		opts.BasePort = 1643
	}
	if opts.RPCTimeout == 0 {
		opts.RPCTimeout = time.Duration(5) * time.Second
	}
	if opts.DialTimeout == 0 {
		opts.DialTimeout = time.Duration(10) * time.Second
	}
	return nil
}

// connectionString returns the address a rank listens on
func (o *NodeOptions) connectionString(rank int) string {
	if len(o.Peers) > 0 {
		return o.Peers[rank]
	}
	return fmt.Sprintf("%s:%d", o.Host, o.BasePort+rank)
}

// listenString returns the address this Node binds to
func (o *NodeOptions) listenString() string {
	if len(o.Peers) > 0 {
		if idx := strings.LastIndex(o.Peers[o.Rank], ":"); idx >= 0 {
			return fmt.Sprintf("%s:%s", o.Host, o.Peers[o.Rank][idx+1:])
		}
	}
	return fmt.Sprintf("%s:%d", o.Host, o.BasePort+o.Rank)
}

// NodeOptionsFromEnv reads NodeOptions from $VISPIPE_RANK, $VISPIPE_SIZE, $VISPIPE_HOST,
// $VISPIPE_BASE_PORT and $VISPIPE_PEERS (a comma-separated list of addresses)
func NodeOptionsFromEnv() (*NodeOptions, error) {
	opts := &NodeOptions{Host: os.Getenv("VISPIPE_HOST")}
	var err error
	if opts.Rank, err = envInt("VISPIPE_RANK"); err != nil {
		return nil, err
	}
	if opts.Size, err = envInt("VISPIPE_SIZE"); err != nil {
		return nil, err
	}
	if opts.BasePort, err = envInt("VISPIPE_BASE_PORT"); err != nil {
		return nil, err
	}
	if peers := os.Getenv("VISPIPE_PEERS"); len(peers) > 0 {
		opts.Peers = strings.Split(peers, ",")
	}
	return opts, nil
}

func envInt(name string) (int, error) {
	v := os.Getenv(name)
	if len(v) == 0 {
		return 0, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("$%s=\"%s\" is not an integer", name, v)
	}
	return i, nil
}

// NodeOptionsFromJSON reads NodeOptions from a JSON document of the form
//   {"rank": 0, "size": 4, "host": "0.0.0.0", "basePort": 1643, "peers": ["a:1643", ...], "rpcTimeout": "5s"}
func NodeOptionsFromJSON(doc []byte) (*NodeOptions, error) {
	if !gjson.ValidBytes(doc) {
		return nil, fmt.Errorf("node options are not valid JSON")
	}
	parsed := gjson.ParseBytes(doc)
	opts := &NodeOptions{
		Rank:     int(parsed.Get("rank").Int()),
		Size:     int(parsed.Get("size").Int()),
		Host:     parsed.Get("host").String(),
		BasePort: int(parsed.Get("basePort").Int()),
	}
	for _, p := range parsed.Get("peers").Array() {
		opts.Peers = append(opts.Peers, p.String())
	}
	for key, dst := range map[string]*time.Duration{"rpcTimeout": &opts.RPCTimeout, "dialTimeout": &opts.DialTimeout} {
		if v := parsed.Get(key); v.Exists() {
			d, err := time.ParseDuration(v.String())
			if err != nil {
				return nil, fmt.Errorf("%s: %v", key, err)
			}
			*dst = d
		}
	}
	return opts, nil
}
