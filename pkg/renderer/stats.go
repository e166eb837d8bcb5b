package renderer

import "log/slog"

// TraceStats counts the work done while rendering
type TraceStats struct {
	PrimaryRays        int // Rays cast from the eye
	Segments           int // Surface hits shaded, primary and reflected
	ShadowProbes       int // Rays cast toward lights
	BudgetTerminations int // Reflection chains cut off by the distance budget
	LongestChain       int // Most segments along a single path
}

func (s *TraceStats) recordChain(length int) {
	if length > s.LongestChain {
		s.LongestChain = length
	}
}

// LogValue implements slog.LogValuer
func (s TraceStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("primary_rays", s.PrimaryRays),
		slog.Int("segments", s.Segments),
		slog.Int("shadow_probes", s.ShadowProbes),
		slog.Int("budget_terminations", s.BudgetTerminations),
		slog.Int("longest_chain", s.LongestChain),
	)
}
