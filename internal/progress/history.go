package progress

import (
	"sync"

	"mindbloom/internal/models"
	"mindbloom/internal/structures"
)

const defaultHistoryLimit = 1000

// History keeps the recent computed reports for snapshot persistence.
// It is bounded: the oldest reports are dropped once the limit is hit.
// Reports in here are history only — the aggregator never reads them.
type History struct {
	mu      sync.RWMutex
	reports []*models.ProgressReport
	limit   int
}

func NewHistory(conf *structures.Config) *History {
	limit := conf.Progress.HistoryLimit
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	return &History{limit: limit}
}

func (h *History) Append(report *models.ProgressReport) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.reports = append(h.reports, report)
	if len(h.reports) > h.limit {
		h.reports = h.reports[len(h.reports)-h.limit:]
	}
}

func (h *History) Reports() []*models.ProgressReport {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]*models.ProgressReport, len(h.reports))
	copy(out, h.reports)
	return out
}

func (h *History) Put(reports []*models.ProgressReport) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(reports) > h.limit {
		reports = reports[len(reports)-h.limit:]
	}
	h.reports = reports
}

func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.reports)
}
