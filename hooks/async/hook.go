// usage:
//
// import (
//
//	"log/slog"
//
//	"github.com/unkn0wn-root/rescache"
//	"github.com/unkn0wn-root/rescache/hooks/async"
//	"github.com/unkn0wn-root/rescache/sloghooks"
//
// )
//
//	raw := sloghooks.New(slog.Default(), sloghooks.Options{
//	    MissEvery: 10, // sample logs: ~every 10th miss
//	})
//
// hooks := asynchook.New(raw, 1, 1000) // 1 worker; queue 1000 events
// defer hooks.Close()
//
//	cache, _ := rescache.New(rescache.Options{
//	    Name:     "User",
//	    Fetcher:  fetcher,
//	    Provider: provider,
//	    Hooks:    hooks, // or `raw` if you don’t want async
//	})
package asynchook

import (
	"sync"

	"github.com/unkn0wn-root/rescache"
)

type Hooks struct {
	inner rescache.Hooks
	q     chan func()
	wg    sync.WaitGroup
	once  sync.Once
}

var _ rescache.Hooks = (*Hooks)(nil)

func New(inner rescache.Hooks, workers, qlen int) *Hooks {
	if workers <= 0 {
		workers = 1
	}
	if qlen <= 0 {
		qlen = 1024
	}

	h := &Hooks{inner: inner, q: make(chan func(), qlen)}
	h.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer h.wg.Done()
			for f := range h.q {
				f()
			}
		}()
	}
	return h
}

func (h *Hooks) Close() {
	h.once.Do(func() {
		close(h.q)
		h.wg.Wait()
	})
}

func (h *Hooks) try(f func()) {
	select {
	case h.q <- f:
	default: // drop
	}
}

func (h *Hooks) Miss(k, r string)        { h.try(func() { h.inner.Miss(k, r) }) }
func (h *Hooks) WriteRejected(k string)  { h.try(func() { h.inner.WriteRejected(k) }) }
func (h *Hooks) StorageError(op, k string, err error) {
	h.try(func() { h.inner.StorageError(op, k, err) })
}
func (h *Hooks) SyncMerged(k string, u, i int) {
	h.try(func() { h.inner.SyncMerged(k, u, i) })
}
func (h *Hooks) SyncSkipped(k, r string) { h.try(func() { h.inner.SyncSkipped(k, r) }) }
