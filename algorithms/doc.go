// Package algorithms provides small Algorithms over dataset containers: sources, a halo filter,
// converters between structured and unstructured data, a chunked streamer and a piece cache.
package algorithms
