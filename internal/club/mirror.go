package club

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/charmbracelet/log"
	"github.com/mauv0809/pickleball-courts/internal/database"
	"github.com/mauv0809/pickleball-courts/internal/metrics"
)

const (
	defaultMaxRetries = 3
	defaultRetryDelay = 200 * time.Millisecond
	writeTimeout      = 10 * time.Second
)

// mirror writes bucket payloads in the background. Saves are coalesced per
// bucket so only the latest payload of a burst is written. A write that
// still fails after its retries is logged and dropped; the in-memory store
// stays authoritative and the next save of that bucket rewrites it.
type mirror struct {
	buckets    database.Buckets
	metrics    metrics.Metrics
	maxRetries uint64
	retryDelay time.Duration

	mu      sync.Mutex
	pending map[string][]byte

	wake chan struct{}
	done chan struct{}
	once sync.Once
	wg   sync.WaitGroup
}

func newMirror(buckets database.Buckets, m metrics.Metrics, maxRetries uint64, retryDelay time.Duration) *mirror {
	if maxRetries == 0 {
		maxRetries = defaultMaxRetries
	}
	if retryDelay <= 0 {
		retryDelay = defaultRetryDelay
	}
	mr := &mirror{
		buckets:    buckets,
		metrics:    m,
		maxRetries: maxRetries,
		retryDelay: retryDelay,
		pending:    make(map[string][]byte),
		wake:       make(chan struct{}, 1),
		done:       make(chan struct{}),
	}
	mr.wg.Add(1)
	go mr.run()
	return mr
}

// save queues payload for bucket name without blocking.
func (m *mirror) save(name string, payload []byte) {
	m.mu.Lock()
	m.pending[name] = payload
	m.mu.Unlock()

	select {
	case m.wake <- struct{}{}:
	default:
	}
}

func (m *mirror) run() {
	defer m.wg.Done()
	for {
		select {
		case <-m.wake:
			m.flush()
		case <-m.done:
			m.flush()
			return
		}
	}
}

func (m *mirror) flush() {
	m.mu.Lock()
	batch := m.pending
	m.pending = make(map[string][]byte)
	m.mu.Unlock()

	names := make([]string, 0, len(batch))
	for name := range batch {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		m.write(name, batch[name])
	}
}

func (m *mirror) write(name string, payload []byte) {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = m.retryDelay
	policy.MaxElapsedTime = 0
	b := backoff.WithContext(backoff.WithMaxRetries(policy, m.maxRetries), ctx)

	op := func() error {
		return m.buckets.Put(ctx, name, payload)
	}
	notify := func(err error, next time.Duration) {
		log.Warn("Bucket write failed, retrying", "bucket", name, "error", err, "retry_in", next)
	}
	if err := backoff.RetryNotify(op, b, notify); err != nil {
		log.Error("Giving up on bucket write", "bucket", name, "error", err)
		if m.metrics != nil {
			m.metrics.IncPersistFailures()
		}
		return
	}
	log.Debug("Persisted bucket", "bucket", name, "bytes", len(payload))
}

// close stops the worker after writing everything still pending.
func (m *mirror) close(ctx context.Context) error {
	m.once.Do(func() { close(m.done) })

	finished := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(finished)
	}()
	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
