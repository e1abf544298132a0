package view

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"portfolio-web/internal/backend"
)

type loadRequest struct {
	waiter chan State
}

type snapshotRequest struct {
	reply chan State
}

// View es la vista del portfolio. Un unico goroutine (run) es dueño del estado;
// los fetch corren aparte y reportan su resultado por canal.
type View struct {
	client backend.Client
	logger *zap.Logger

	requests  chan loadRequest
	snapshots chan snapshotRequest
	results   chan LoadFinished

	mountOnce sync.Once
	mounted   chan struct{}
	cancel    context.CancelFunc
	done      chan struct{}
	final     State
}

// New crea una vista sin montar. Hasta Mount, Snapshot devuelve el estado inicial (loading).
func New(client backend.Client, logger *zap.Logger) *View {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &View{
		client:    client,
		logger:    logger,
		requests:  make(chan loadRequest),
		snapshots: make(chan snapshotRequest),
		results:   make(chan LoadFinished),
		mounted:   make(chan struct{}),
		done:      make(chan struct{}),
	}
}

// Mount arranca el loop y dispara el primer load. Devuelve el canal de ese load;
// si la vista ya estaba montada devuelve nil y no hace nada.
func (v *View) Mount(ctx context.Context) <-chan State {
	var first <-chan State
	v.mountOnce.Do(func() {
		ctx, v.cancel = context.WithCancel(ctx)
		close(v.mounted)
		go v.run(ctx)
		first = v.Load()
	})
	return first
}

// Load (loadPortfolioData) pasa a loading y lanza exactamente un fetch.
// El canal devuelto recibe el estado una vez aplicado (o descartado) el resultado de ese fetch.
func (v *View) Load() <-chan State {
	waiter := make(chan State, 1)
	if !v.isMounted() {
		waiter <- initialState()
		return waiter
	}
	select {
	case v.requests <- loadRequest{waiter: waiter}:
	case <-v.done:
		waiter <- v.final
	}
	return waiter
}

// Snapshot devuelve una copia del estado actual.
func (v *View) Snapshot() State {
	if !v.isMounted() {
		return initialState()
	}
	reply := make(chan State, 1)
	select {
	case v.snapshots <- snapshotRequest{reply: reply}:
		return <-reply
	case <-v.done:
		return v.final
	}
}

// Close detiene el loop y cancela los fetch en curso.
func (v *View) Close() {
	if !v.isMounted() {
		return
	}
	v.cancel()
	<-v.done
}

func (v *View) isMounted() bool {
	select {
	case <-v.mounted:
		return true
	default:
		return false
	}
}

func (v *View) run(ctx context.Context) {
	state := initialState()
	var generation uint64
	waiters := make(map[uint64]chan State)

	defer func() {
		v.final = state
		for _, w := range waiters {
			w <- state
		}
		close(v.done)
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case req := <-v.requests:
			generation++
			waiters[generation] = req.waiter
			state = Reduce(state, LoadStarted{Generation: generation})
			v.logger.Info("portfolio load started", zap.Uint64("generation", generation))
			go v.fetch(ctx, generation)

		case res := <-v.results:
			if res.Generation != state.Generation {
				v.logger.Info("discarding stale portfolio response",
					zap.Uint64("generation", res.Generation),
					zap.Uint64("current", state.Generation),
				)
			}
			state = Reduce(state, res)
			if res.Err != nil && res.Generation == state.Generation {
				v.logger.Warn("portfolio load failed", zap.Error(res.Err))
			}
			if w, ok := waiters[res.Generation]; ok {
				w <- state
				delete(waiters, res.Generation)
			}
			v.logger.Info("portfolio state",
				zap.String("status", state.Status().String()),
				zap.Uint64("generation", state.Generation),
			)

		case req := <-v.snapshots:
			req.reply <- state
		}
	}
}

func (v *View) fetch(ctx context.Context, generation uint64) {
	resp, err := v.client.FetchPortfolio(ctx)
	if ctx.Err() != nil {
		// vista cerrada
		return
	}
	msg := LoadFinished{Generation: generation, Response: resp, Err: err}
	select {
	case v.results <- msg:
	case <-v.done:
	}
}
