package dataunifier

import (
	"sync"

	"github.com/agentstation/dataunifier/pkg/accumulator"
	"github.com/agentstation/dataunifier/pkg/unify"
)

// Hook function types for pipeline events
type (
	// FileProcessedHook is called after every input file, including skipped ones
	FileProcessedHook func(stats accumulator.FileStats)

	// RecordUnifiedHook is called for every unified record
	RecordUnifiedHook func(rec accumulator.Record, result *unify.Result)
)

// Hooks provides event callback registration.
type Hooks interface {
	OnFileProcessed(FileProcessedHook)
	OnRecordUnified(RecordUnifiedHook)
}

// hooks manages event callbacks for a run
type hooks struct {
	mu              sync.RWMutex
	onFileProcessed []FileProcessedHook
	onRecordUnified []RecordUnifiedHook
}

// newHooks creates a new hooks instance
func newHooks() *hooks {
	return &hooks{}
}

// OnFileProcessed registers a callback for processed files
func (h *hooks) OnFileProcessed(fn FileProcessedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onFileProcessed = append(h.onFileProcessed, fn)
}

// OnRecordUnified registers a callback for unified records
func (h *hooks) OnRecordUnified(fn RecordUnifiedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onRecordUnified = append(h.onRecordUnified, fn)
}

func (h *hooks) fileProcessed(stats accumulator.FileStats) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, fn := range h.onFileProcessed {
		fn(stats)
	}
}

func (h *hooks) recordUnified(rec accumulator.Record, result *unify.Result) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, fn := range h.onRecordUnified {
		fn(rec, result)
	}
}
