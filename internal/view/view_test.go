package view

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"portfolio-web/internal/backend"
	"portfolio-web/internal/domain"
)

// gatedClient bloquea cada fetch hasta que el test libera su gate.
type gatedClient struct {
	calls chan chan result
}

type result struct {
	resp domain.ApiResponse
	err  error
}

func newGatedClient() *gatedClient {
	return &gatedClient{calls: make(chan chan result, 10)}
}

func (g *gatedClient) FetchPortfolio(ctx context.Context) (domain.ApiResponse, error) {
	gate := make(chan result, 1)
	g.calls <- gate
	select {
	case r := <-gate:
		return r.resp, r.err
	case <-ctx.Done():
		return domain.ApiResponse{}, ctx.Err()
	}
}

func (g *gatedClient) next(t *testing.T) chan result {
	t.Helper()
	select {
	case gate := <-g.calls:
		return gate
	case <-time.After(2 * time.Second):
		t.Fatalf("expected a fetch to be issued")
		return nil
	}
}

func wait(t *testing.T, ch <-chan State) State {
	t.Helper()
	select {
	case s := <-ch:
		return s
	case <-time.After(2 * time.Second):
		t.Fatalf("timeout waiting for state")
		return State{}
	}
}

func TestViewScenarios(t *testing.T) {
	tests := []struct {
		name       string
		resp       domain.ApiResponse
		err        error
		wantStatus Status
		wantErr    string
	}{
		{name: "Jane Doe", resp: janeDoe(), wantStatus: StatusLoaded},
		{name: "DB down", resp: domain.ApiResponse{Error: domain.Some("DB down")}, wantStatus: StatusErrored, wantErr: "DB down"},
		{name: "network failure", err: backend.ErrTransport, wantStatus: StatusErrored, wantErr: TransportErrorMessage},
		{name: "profile null", resp: domain.ApiResponse{Success: true}, wantStatus: StatusEmpty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &backend.MockClient{Response: tt.resp, Err: tt.err}
			v := New(client, zap.NewNop())
			defer v.Close()

			if got := v.Snapshot().Status(); got != StatusLoading {
				t.Fatalf("expected initial loading, got %s", got)
			}

			s := wait(t, v.Mount(context.Background()))
			if s.Status() != tt.wantStatus {
				t.Fatalf("expected %s, got %s", tt.wantStatus, s.Status())
			}
			if s.Err != tt.wantErr {
				t.Fatalf("expected error %q, got %q", tt.wantErr, s.Err)
			}
			if client.Calls() != 1 {
				t.Fatalf("expected exactly one fetch on mount, got %d", client.Calls())
			}
			if snap := v.Snapshot(); snap.Status() != tt.wantStatus {
				t.Fatalf("expected snapshot %s, got %s", tt.wantStatus, snap.Status())
			}
		})
	}
}

func TestViewMountOnce(t *testing.T) {
	client := &backend.MockClient{Response: janeDoe()}
	v := New(client, zap.NewNop())
	defer v.Close()

	wait(t, v.Mount(context.Background()))
	if again := v.Mount(context.Background()); again != nil {
		t.Fatalf("expected second mount to be a no-op")
	}
	if client.Calls() != 1 {
		t.Fatalf("expected one fetch, got %d", client.Calls())
	}
}

func TestViewRetryIssuesOneRequest(t *testing.T) {
	client := newGatedClient()
	v := New(client, zap.NewNop())
	defer v.Close()

	first := v.Mount(context.Background())
	client.next(t) <- result{err: errors.New("connection refused")}
	if s := wait(t, first); s.Status() != StatusErrored {
		t.Fatalf("expected errored, got %s", s.Status())
	}

	retry := v.Load()
	gate := client.next(t)
	if s := v.Snapshot(); s.Status() != StatusLoading {
		t.Fatalf("expected retry to go through loading, got %s", s.Status())
	}
	gate <- result{resp: janeDoe()}

	s := wait(t, retry)
	if s.Status() != StatusLoaded {
		t.Fatalf("expected loaded after retry, got %s", s.Status())
	}
	if s.Generation != 2 {
		t.Fatalf("expected generation 2, got %d", s.Generation)
	}
	select {
	case <-client.calls:
		t.Fatalf("expected no extra fetch")
	default:
	}
}

func TestViewDiscardsStaleResponse(t *testing.T) {
	client := newGatedClient()
	v := New(client, zap.NewNop())
	defer v.Close()

	first := v.Mount(context.Background())
	firstGate := client.next(t)

	second := v.Load()
	secondGate := client.next(t)

	secondGate <- result{resp: janeDoe()}
	if s := wait(t, second); s.Status() != StatusLoaded {
		t.Fatalf("expected loaded, got %s", s.Status())
	}

	firstGate <- result{resp: domain.ApiResponse{Error: domain.Some("stale")}}
	s := wait(t, first)
	if s.Status() != StatusLoaded || s.Err != "" {
		t.Fatalf("expected stale response discarded, got %s %q", s.Status(), s.Err)
	}
}

func TestViewCloseReleasesWaiters(t *testing.T) {
	client := newGatedClient()
	v := New(client, zap.NewNop())

	first := v.Mount(context.Background())
	client.next(t)
	v.Close()

	if s := wait(t, first); s.Status() != StatusLoading {
		t.Fatalf("expected pending load to report last state, got %s", s.Status())
	}
	if s := wait(t, v.Load()); s.Status() != StatusLoading {
		t.Fatalf("expected closed view to keep its last state, got %s", s.Status())
	}
}

func TestViewUnmounted(t *testing.T) {
	client := &backend.MockClient{Response: janeDoe()}
	v := New(client, zap.NewNop())
	v.Close()

	if s := wait(t, v.Load()); s.Status() != StatusLoading {
		t.Fatalf("expected initial state, got %s", s.Status())
	}
	if client.Calls() != 0 {
		t.Fatalf("expected no fetch before mount")
	}
}
