package manager

import (
	"time"

	"gestured/pkg/types"
)

// Health returns the registry-derived health view.
func (m *Manager) Health() types.HealthResponse {
	h := m.core().reg.Health()
	h.Timestamp = timestamp()
	return h
}

// Available returns metadata for every loaded model.
func (m *Manager) Available() types.AvailableResponse {
	return types.AvailableResponse{
		Status:    "success",
		Timestamp: timestamp(),
		Models:    m.core().reg.Available(),
	}
}

// Status combines health with load diagnostics.
func (m *Manager) Status() types.StatusResponse {
	c := m.core()
	return types.StatusResponse{
		Status:        "success",
		Timestamp:     timestamp(),
		Health:        m.Health(),
		FailedModels:  c.reg.FailureMessages(),
		Runtime:       m.SanityCheck(),
		UptimeSeconds: int64(time.Since(m.startTime).Seconds()),
	}
}
