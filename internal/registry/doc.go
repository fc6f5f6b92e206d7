// Package registry materializes catalog descriptors into loaded model
// handles. LoadAll tolerates per-model failures: a model that is missing,
// unreadable or shape-incompatible is logged, recorded in Failures and left
// out of the servable set, and loading continues with the next descriptor.
//
// A Registry is immutable once LoadAll returns. Every method is a read and
// may be called from any number of goroutines without coordination.
package registry
