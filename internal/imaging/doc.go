// Package imaging turns decoded pixel buffers into model input tensors.
//
// The pipeline is the same for every entry point: channel adaptation, then a
// bilinear resize to the target height/width when the sizes differ, then a
// linear rescale of every 0..255 sample into 0.0..1.0. No mean subtraction or
// channel reordering is applied. All functions are pure and may be called
// concurrently.
package imaging
