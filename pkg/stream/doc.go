// Package stream provides datasets iterated one observation at a time.
//
// Datasets are registered under a name; IterDataset builds one by name and Available lists
// them. A dataset sends its samples on a channel, like the steps of a channel pipeline, so
// that consumers can stop early by cancelling a context.
package stream
