package model

// Stats holds aggregate totals derived from a full scan of a model. It is
// derived data, never persisted; a loaded model computes it once and caches
// the result for its lifetime.
type Stats struct {
	TotalSpam    uint32
	TotalHam     uint32
	TotalTokens  uint32
	UniqueTokens uint32
}

// Stats returns the aggregate totals for the model, scanning it on the
// first call and serving the cached value afterwards.
func (m *Model) Stats() Stats {
	m.statsOnce.Do(func() {
		var s Stats
		it := m.Iterator()
		for it.Next() {
			c := it.Count()
			s.TotalSpam += c.Spam
			s.TotalHam += c.Ham
			s.UniqueTokens++
		}
		s.TotalTokens = s.TotalSpam + s.TotalHam
		m.stats = s
	})
	return m.stats
}

// PriorSpam returns P(spam) estimated from the aggregate counts, or 0.5
// for an empty model.
func (s Stats) PriorSpam() float64 {
	if s.TotalTokens == 0 {
		return 0.5
	}
	return float64(s.TotalSpam) / float64(s.TotalTokens)
}

// PriorHam returns P(ham).
func (s Stats) PriorHam() float64 {
	return 1 - s.PriorSpam()
}
