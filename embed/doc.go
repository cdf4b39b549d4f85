// Package embed computes vector embeddings for chunks through a remote
// provider, one consecutive batch at a time.
//
// The client is all-or-nothing: a failed batch aborts the operation and no
// partial embedding list is ever returned. Progress is reported after each
// batch through a ProgressReporter, decoupled from any presentation layer.
// Provider calls can be wrapped in bounded retry with exponential backoff.
package embed
