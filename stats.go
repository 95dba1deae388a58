package vispipe

import "time"

// RuntimeStatistics facilitates the retrieval of statistics about a running pipeline
type RuntimeStatistics interface {
	// GetStartTime returns the time the executive was created
	GetStartTime() time.Time
	// GetRuntime returns the time spent inside algorithm RequestData calls
	GetRuntime() time.Duration
	// GetNumExecutions returns the number of RequestData calls, counted by stage
	GetNumExecutions() []int64
	// GetNumPropagations returns the number of update extent requests handled, counted by stage
	GetNumPropagations() []int64
	// GetNumSatisfiedRequests returns the number of requests served from cached data, counted by stage
	GetNumSatisfiedRequests() []int64
	// GetStageRuntimes returns the most recent RequestData runtime of each stage
	GetStageRuntimes() []time.Duration
}
