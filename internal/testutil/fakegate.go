package testutil

import (
	"context"
	"sync"

	"github.com/agencyops/timeclock/internal/capture"
)

// FakeGate is a scripted capture.Gate for state-machine tests. It
// records every acquire/release in order so tests can assert the
// acquire-then-persist / persist-then-release protocol.
type FakeGate struct {
	mu sync.Mutex

	// AcquireErr is returned by every Acquire call. Nil grants.
	AcquireErr error
	// ReleaseErr is returned by every Release call.
	ReleaseErr error
	// Block, when non-nil, is waited on inside Acquire before the
	// scripted outcome is returned; lets tests hold a clock-in in the
	// pending-capture state.
	Block chan struct{}

	// Calls holds "acquire:<worker>" / "release:<worker>" in order.
	Calls []string
}

var _ capture.Gate = (*FakeGate)(nil)

func (g *FakeGate) Acquire(ctx context.Context, workerID string) error {
	if g.Block != nil {
		select {
		case <-g.Block:
		case <-ctx.Done():
			g.record("acquire:" + workerID)
			return ctx.Err()
		}
	}
	g.record("acquire:" + workerID)
	if g.AcquireErr != nil {
		return g.AcquireErr
	}
	return ctx.Err()
}

func (g *FakeGate) Release(ctx context.Context, workerID string) error {
	g.record("release:" + workerID)
	return g.ReleaseErr
}

func (g *FakeGate) record(call string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.Calls = append(g.Calls, call)
}

// CallLog returns a copy of the recorded calls.
func (g *FakeGate) CallLog() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]string, len(g.Calls))
	copy(out, g.Calls)
	return out
}
