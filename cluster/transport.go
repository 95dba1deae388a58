package cluster

import (
	"context"
	"fmt"
	"net"
	"sync"

	"github.com/go-sif/vispipe"
	"github.com/go-sif/vispipe/errors"
	"github.com/go-sif/vispipe/logging"
	uuid "github.com/gofrs/uuid"
	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// reserved tags for collectives; user tags must be non-negative
const (
	broadcastTag = -1 - iota
	gatherTag
	reduceTag
)

// Node is one rank of a parallel job. It serves a mailbox over gRPC and implements
// vispipe.Transport by delivering frames to the mailboxes of its peers.
type Node struct {
	id            string
	opts          *NodeOptions
	log           *logrus.Entry
	box           *mailbox
	lifecycleLock sync.Mutex
	server        *grpc.Server
	connsLock     sync.Mutex
	conns         map[int]*grpc.ClientConn
}

// CreateNode is a factory for Nodes
func CreateNode(opts *NodeOptions) (*Node, error) {
	// default certain options if not supplied
	if err := ensureDefaultNodeOptionsValues(opts); err != nil {
		return nil, err
	}
	// generate node ID
	id, err := uuid.NewV4()
	if err != nil {
		return nil, fmt.Errorf("failed to generate UUID: %v", err)
	}
	return &Node{
		id:    id.String(),
		opts:  opts,
		log:   logging.GetLogger().WithFields(logrus.Fields{"node": id.String(), "rank": opts.Rank}),
		box:   createMailbox(),
		conns: make(map[int]*grpc.ClientConn),
	}, nil
}

// ID returns the ID of this Node
func (n *Node) ID() string {
	return n.id
}

// Rank returns the rank of this Node
func (n *Node) Rank() int {
	return n.opts.Rank
}

// Size returns the number of ranks in the job
func (n *Node) Size() int {
	return n.opts.Size
}

// ExecutionContext describes this Node's place in the job, using it as Transport
func (n *Node) ExecutionContext() vispipe.ExecutionContext {
	return vispipe.ExecutionContext{Rank: n.opts.Rank, Size: n.opts.Size, Transport: n}
}

// Start listening for frames from peers. Serving continues in the background until Stop.
func (n *Node) Start() error {
	lis, err := net.Listen("tcp", n.opts.listenString())
	if err != nil {
		return fmt.Errorf("failed to listen: %v", err)
	}
	n.lifecycleLock.Lock()
	n.server = grpc.NewServer()
	registerMailboxServer(n.server, createMailboxServer(n.box, n.log))
	server := n.server
	n.lifecycleLock.Unlock()
	go func() {
		if err := server.Serve(lis); err != nil {
			n.log.WithError(err).Error("mailbox server failed")
		}
	}()
	n.log.WithField("address", lis.Addr().String()).Debug("node started")
	return nil
}

// GracefulStop the Node, waiting for deliveries in progress to finish
func (n *Node) GracefulStop() error {
	n.closeConns()
	n.lifecycleLock.Lock()
	defer n.lifecycleLock.Unlock()
	if n.server != nil {
		n.server.GracefulStop()
		n.server = nil
	}
	return nil
}

// Stop the Node immediately
func (n *Node) Stop() error {
	n.closeConns()
	n.lifecycleLock.Lock()
	defer n.lifecycleLock.Unlock()
	if n.server != nil {
		n.server.Stop()
		n.server = nil
	}
	return nil
}

// Close stops the Node gracefully
func (n *Node) Close() error {
	return n.GracefulStop()
}

func (n *Node) closeConns() {
	n.connsLock.Lock()
	defer n.connsLock.Unlock()
	for rank, conn := range n.conns {
		if err := conn.Close(); err != nil {
			n.log.WithError(err).WithField("peer", rank).Warn("unable to close connection")
		}
		delete(n.conns, rank)
	}
}

func (n *Node) connect(rank int) (*grpc.ClientConn, error) {
	n.connsLock.Lock()
	defer n.connsLock.Unlock()
	if conn, ok := n.conns[rank]; ok {
		return conn, nil
	}
	conn, err := grpc.Dial(n.opts.connectionString(rank), grpc.WithInsecure())
	if err != nil {
		return nil, fmt.Errorf("fail to dial: %v", err)
	}
	n.conns[rank] = conn
	return conn, nil
}

func (n *Node) checkPeer(peer int, tag int) error {
	if peer < 0 || peer >= n.opts.Size {
		return errors.TransportError{Rank: n.opts.Rank, Peer: peer, Tag: tag, Reason: "no such rank"}
	}
	return nil
}

// send delivers values to a peer's mailbox under tag
func (n *Node) send(ctx context.Context, values []float64, dest int, tag int) error {
	if err := n.checkPeer(dest, tag); err != nil {
		return err
	}
	f := &frame{source: n.opts.Rank, tag: tag, values: append([]float64(nil), values...)}
	if dest == n.opts.Rank {
		n.box.deliver(f)
		return nil
	}
	payload, err := encodeFrame(f)
	if err != nil {
		return errors.TransportError{Rank: n.opts.Rank, Peer: dest, Tag: tag, Reason: err.Error()}
	}
	conn, err := n.connect(dest)
	if err != nil {
		return errors.TransportError{Rank: n.opts.Rank, Peer: dest, Tag: tag, Reason: err.Error()}
	}
	// peers may still be starting, so wait for them up to the dial timeout
	dctx, cancel := context.WithTimeout(ctx, n.opts.DialTimeout+n.opts.RPCTimeout)
	defer cancel()
	err = conn.Invoke(dctx, deliverMethod, &wrapperspb.BytesValue{Value: payload}, new(emptypb.Empty), grpc.WaitForReady(true))
	if err != nil {
		return errors.TransportError{Rank: n.opts.Rank, Peer: dest, Tag: tag, Reason: err.Error()}
	}
	return nil
}

// receive fills buf with the next frame from (src, tag)
func (n *Node) receive(ctx context.Context, buf []float64, src int, tag int) (int, error) {
	if err := n.checkPeer(src, tag); err != nil {
		return 0, err
	}
	f, err := n.box.receive(ctx, src, tag)
	if err != nil {
		return 0, errors.TransportError{Rank: n.opts.Rank, Peer: src, Tag: tag, Reason: err.Error()}
	}
	if len(f.values) > len(buf) {
		return 0, errors.TransportError{Rank: n.opts.Rank, Peer: src, Tag: tag, Reason: fmt.Sprintf("%d values do not fit in a buffer of %d", len(f.values), len(buf))}
	}
	return copy(buf, f.values), nil
}

// Send delivers buf to rank dest. Tags must be non-negative.
func (n *Node) Send(ctx context.Context, buf []float64, dest int, tag int) error {
	if tag < 0 {
		return errors.TransportError{Rank: n.opts.Rank, Peer: dest, Tag: tag, Reason: "negative tags are reserved"}
	}
	return n.send(ctx, buf, dest, tag)
}

// Receive blocks until a message from rank src with tag arrives, copying it into buf
func (n *Node) Receive(ctx context.Context, buf []float64, src int, tag int) (int, error) {
	if tag < 0 {
		return 0, errors.TransportError{Rank: n.opts.Rank, Peer: src, Tag: tag, Reason: "negative tags are reserved"}
	}
	return n.receive(ctx, buf, src, tag)
}

// Broadcast copies buf on root into buf on every rank
func (n *Node) Broadcast(ctx context.Context, buf []float64, root int) error {
	if n.opts.Rank != root {
		_, err := n.receive(ctx, buf, root, broadcastTag)
		return err
	}
	for r := 0; r < n.opts.Size; r++ {
		if r == root {
			continue
		}
		if err := n.send(ctx, buf, r, broadcastTag); err != nil {
			return err
		}
	}
	return nil
}

// Gather concatenates send from every rank, in rank order, into recv on root
func (n *Node) Gather(ctx context.Context, send []float64, recv []float64, root int) error {
	if n.opts.Rank != root {
		return n.send(ctx, send, root, gatherTag)
	}
	width := len(send)
	if len(recv) < width*n.opts.Size {
		return errors.TransportError{Rank: n.opts.Rank, Peer: root, Tag: gatherTag, Reason: "receive buffer too small"}
	}
	for r := 0; r < n.opts.Size; r++ {
		slot := recv[r*width : (r+1)*width]
		if r == root {
			copy(slot, send)
			continue
		}
		if _, err := n.receive(ctx, slot, r, gatherTag); err != nil {
			return err
		}
	}
	return nil
}

// ReduceMax combines send from every rank by element-wise maximum into recv on root
func (n *Node) ReduceMax(ctx context.Context, send []float64, recv []float64, root int) error {
	return n.reduce(ctx, send, recv, root, func(a, b float64) float64 {
		if b > a {
			return b
		}
		return a
	})
}

// ReduceMin combines send from every rank by element-wise minimum into recv on root
func (n *Node) ReduceMin(ctx context.Context, send []float64, recv []float64, root int) error {
	return n.reduce(ctx, send, recv, root, func(a, b float64) float64 {
		if b < a {
			return b
		}
		return a
	})
}

// ReduceSum combines send from every rank by element-wise sum into recv on root
func (n *Node) ReduceSum(ctx context.Context, send []float64, recv []float64, root int) error {
	return n.reduce(ctx, send, recv, root, func(a, b float64) float64 { return a + b })
}

func (n *Node) reduce(ctx context.Context, send []float64, recv []float64, root int, op func(a, b float64) float64) error {
	if n.opts.Rank != root {
		return n.send(ctx, send, root, reduceTag)
	}
	if len(recv) < len(send) {
		return errors.TransportError{Rank: n.opts.Rank, Peer: root, Tag: reduceTag, Reason: "receive buffer too small"}
	}
	copy(recv, send)
	tmp := make([]float64, len(send))
	for r := 0; r < n.opts.Size; r++ {
		if r == root {
			continue
		}
		count, err := n.receive(ctx, tmp, r, reduceTag)
		if err != nil {
			return err
		}
		for i := 0; i < count; i++ {
			recv[i] = op(recv[i], tmp[i])
		}
	}
	return nil
}
