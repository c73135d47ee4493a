// file: rtrie/servs/s_trie/trie_serv/metrics.go
package trie_serv

import "maps"

// ----------------------------------------------------
// Service metrics management
// ----------------------------------------------------

func (s *Service) IncMetric(name string) {
	s.AddMetric(name, 1)
}

func (s *Service) AddMetric(name string, delta int64) {
	s.metricsMu.Lock()
	defer s.metricsMu.Unlock()
	s.metrics[name] += delta
}

func (s *Service) ResetMetrics() {
	s.metricsMu.Lock()
	defer s.metricsMu.Unlock()
	s.metrics = make(map[string]int64)
}

// Metrics returns a copy of the counters.
func (s *Service) Metrics() map[string]int64 {
	s.metricsMu.Lock()
	defer s.metricsMu.Unlock()
	return maps.Clone(s.metrics)
}
