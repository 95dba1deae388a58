package cluster

import (
	"context"
	"fmt"
	"sync"

	"github.com/docker/docker/pkg/locker"
)

// mailbox holds delivered frames in one FIFO queue per (source, tag)
type mailbox struct {
	qlocks    *locker.Locker
	queueLock sync.Mutex
	queues    map[string]*queue
}

type queue struct {
	frames []*frame
	ready  chan struct{} // signalled when frames become non-empty
}

func createMailbox() *mailbox {
	return &mailbox{
		qlocks: locker.New(),
		queues: make(map[string]*queue),
	}
}

func mailboxKey(source, tag int) string {
	return fmt.Sprintf("%d/%d", source, tag)
}

func (m *mailbox) queue(key string) *queue {
	m.queueLock.Lock()
	defer m.queueLock.Unlock()
	q, ok := m.queues[key]
	if !ok {
		q = &queue{ready: make(chan struct{}, 1)}
		m.queues[key] = q
	}
	return q
}

// deliver appends a frame to its queue
func (m *mailbox) deliver(f *frame) {
	key := mailboxKey(f.source, f.tag)
	q := m.queue(key)
	m.qlocks.Lock(key)
	q.frames = append(q.frames, f)
	m.qlocks.Unlock(key)
	select {
	case q.ready <- struct{}{}:
	default:
	}
}

// receive removes the oldest frame from (source, tag), blocking until one arrives or ctx ends
func (m *mailbox) receive(ctx context.Context, source, tag int) (*frame, error) {
	key := mailboxKey(source, tag)
	q := m.queue(key)
	for {
		m.qlocks.Lock(key)
		if len(q.frames) > 0 {
			f := q.frames[0]
			q.frames[0] = nil
			q.frames = q.frames[1:]
			more := len(q.frames) > 0
			m.qlocks.Unlock(key)
			if more {
				select {
				case q.ready <- struct{}{}:
				default:
				}
			}
			return f, nil
		}
		m.qlocks.Unlock(key)
		select {
		case <-q.ready:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}
