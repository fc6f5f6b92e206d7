package manager

import "gestured/pkg/types"

// runtimeChecker is implemented by backends whose failure is global, such as
// a missing inference runtime library.
type runtimeChecker interface {
	Err() error
}

// SanityCheck reports whether the inference backend is usable.
// It does not mutate state and is safe to call at any time.
func (m *Manager) SanityCheck() types.RuntimeReport {
	if m.backend == nil {
		return types.RuntimeReport{Available: false, Error: "no inference backend configured"}
	}
	if rc, ok := m.backend.(runtimeChecker); ok {
		if err := rc.Err(); err != nil {
			return types.RuntimeReport{Available: false, Error: err.Error()}
		}
	}
	return types.RuntimeReport{Available: true}
}
