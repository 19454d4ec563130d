package sloghooks

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"sync/atomic"

	"github.com/unkn0wn-root/rescache"
)

type Options struct {
	// Sampling to avoid floods; 0/1 = log all.
	MissEvery uint64
	// Optional key redactor. Defaults to SHA-256 prefix.
	Redact func(string) string
}

type Hooks struct {
	l    *slog.Logger
	opts Options

	missCtr atomic.Uint64
}

var _ rescache.Hooks = (*Hooks)(nil)

func New(l *slog.Logger, opts Options) *Hooks {
	return &Hooks{l: l, opts: opts}
}

func (h *Hooks) redact(k string) string {
	if h.opts.Redact != nil {
		return h.opts.Redact(k)
	}
	sum := sha256.Sum256([]byte(k))
	return hex.EncodeToString(sum[:8])
}

func sample(n uint64, ctr *atomic.Uint64) bool {
	if n == 0 || n == 1 {
		return true
	}
	return ctr.Add(1)%n == 0
}

func (h *Hooks) Miss(key, reason string) {
	if h.l == nil || !sample(h.opts.MissEvery, &h.missCtr) {
		return
	}
	h.l.Debug("rescache.miss",
		"key", h.redact(key),
		"reason", reason)
}

func (h *Hooks) StorageError(op, key string, err error) {
	if h.l == nil {
		return
	}
	h.l.Warn("rescache.storage_error",
		"op", op,
		"key", h.redact(key),
		"err", err)
}

func (h *Hooks) WriteRejected(key string) {
	if h.l == nil {
		return
	}
	h.l.Warn("rescache.write_rejected",
		"key", h.redact(key))
}

func (h *Hooks) SyncMerged(motherKey string, updated, inserted int) {
	if h.l == nil {
		return
	}
	h.l.Debug("rescache.sync_merged",
		"mother", h.redact(motherKey),
		"updated", updated,
		"inserted", inserted)
}

func (h *Hooks) SyncSkipped(motherKey, reason string) {
	if h.l == nil {
		return
	}
	h.l.Debug("rescache.sync_skipped",
		"mother", h.redact(motherKey),
		"reason", reason)
}
