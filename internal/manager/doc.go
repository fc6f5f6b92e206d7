// Package manager is the service facade in front of the model registry.
// It is structured into small files by concern:
//
//   - manager.go: Manager type, one-time registry construction, getters.
//   - config.go: ManagerConfig and package defaults; NewWithConfig applies defaults.
//   - types.go: request Defaults.
//   - predictor.go: single-model prediction (lookup, normalize, infer, rank).
//   - compare.go: fan-out comparison across several models.
//   - errors.go: failure taxonomy (KindOf, IsInferenceFailure).
//   - status_report.go: health, availability and status views.
//   - sanity.go: backend runtime availability check.
//   - events.go, eventpub_memory.go, eventpub_log.go: lifecycle/prediction event publishing.
//   - metrics.go: Prometheus collectors for loads and predictions.
//
// Every prediction failure is returned as a PredictionResult with
// Success=false; no method panics or returns an error for per-request
// failures. After the registry is built nothing in this package is mutated,
// so concurrent requests need no locking.
package manager
