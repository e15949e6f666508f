package pipeline

import "github.com/poiesic/casefile/core"

// IngestMonitor provides hooks to observe a document's run through the
// cascade. Implement this interface to track tier evaluations and outcomes.
type IngestMonitor interface {
	Start(filename string, contentHash string)
	TierEvaluated(edge *core.DuplicateEdge)
	Finish(decision *Decision)
}

// noopMonitor is a no-op implementation of IngestMonitor
type noopMonitor struct{}

var _ IngestMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string, _ string)            {}
func (n *noopMonitor) TierEvaluated(_ *core.DuplicateEdge) {}
func (n *noopMonitor) Finish(_ *Decision)                  {}
