package stats

import (
	"sync"
	"time"
)

// RunStatistics contains statistics about a running pipeline, counted by stage
type RunStatistics struct {
	lock                sync.Mutex
	startTime           time.Time
	totalRuntime        time.Duration
	executions          []int64
	propagations        []int64
	satisfiedRequests   []int64
	stageRuntimes       []time.Duration // most recent RequestData runtime for a stage
	currentExecuteStart []time.Time
}

// CreateRunStatistics creates a RunStatistics, starting its clock
func CreateRunStatistics() *RunStatistics {
	return &RunStatistics{startTime: time.Now()}
}

// AddStage grows the statistics to track one more stage
func (rs *RunStatistics) AddStage() {
	rs.lock.Lock()
	defer rs.lock.Unlock()
	rs.executions = append(rs.executions, 0)
	rs.propagations = append(rs.propagations, 0)
	rs.satisfiedRequests = append(rs.satisfiedRequests, 0)
	rs.stageRuntimes = append(rs.stageRuntimes, 0)
	rs.currentExecuteStart = append(rs.currentExecuteStart, time.Time{})
}

func (rs *RunStatistics) valid(sidx int) bool {
	return sidx >= 0 && sidx < len(rs.executions)
}

// StartExecute tracks the beginning of a RequestData call
func (rs *RunStatistics) StartExecute(sidx int) {
	rs.lock.Lock()
	defer rs.lock.Unlock()
	if rs.valid(sidx) {
		rs.currentExecuteStart[sidx] = time.Now()
	}
}

// EndExecute tracks the end of a RequestData call
func (rs *RunStatistics) EndExecute(sidx int) {
	rs.lock.Lock()
	defer rs.lock.Unlock()
	if !rs.valid(sidx) {
		return
	}
	d := time.Since(rs.currentExecuteStart[sidx])
	rs.stageRuntimes[sidx] = d
	rs.totalRuntime += d
	rs.executions[sidx]++
}

// Propagated tracks an update extent request handled by a stage
func (rs *RunStatistics) Propagated(sidx int) {
	rs.lock.Lock()
	defer rs.lock.Unlock()
	if rs.valid(sidx) {
		rs.propagations[sidx]++
	}
}

// Satisfied tracks a request a stage served from cached data
func (rs *RunStatistics) Satisfied(sidx int) {
	rs.lock.Lock()
	defer rs.lock.Unlock()
	if rs.valid(sidx) {
		rs.satisfiedRequests[sidx]++
	}
}

// GetStartTime returns the start time of the pipeline
func (rs *RunStatistics) GetStartTime() time.Time {
	return rs.startTime
}

// GetRuntime returns the total time spent in RequestData calls
func (rs *RunStatistics) GetRuntime() time.Duration {
	rs.lock.Lock()
	defer rs.lock.Unlock()
	return rs.totalRuntime
}

// GetNumExecutions returns the number of RequestData calls so far, counted by stage
func (rs *RunStatistics) GetNumExecutions() []int64 {
	rs.lock.Lock()
	defer rs.lock.Unlock()
	return append([]int64(nil), rs.executions...)
}

// GetNumPropagations returns the number of update extent requests handled so far, counted by stage
func (rs *RunStatistics) GetNumPropagations() []int64 {
	rs.lock.Lock()
	defer rs.lock.Unlock()
	return append([]int64(nil), rs.propagations...)
}

// GetNumSatisfiedRequests returns the number of requests served from cached data, counted by stage
func (rs *RunStatistics) GetNumSatisfiedRequests() []int64 {
	rs.lock.Lock()
	defer rs.lock.Unlock()
	return append([]int64(nil), rs.satisfiedRequests...)
}

// GetStageRuntimes returns the most recent RequestData runtime of each stage
func (rs *RunStatistics) GetStageRuntimes() []time.Duration {
	rs.lock.Lock()
	defer rs.lock.Unlock()
	return append([]time.Duration(nil), rs.stageRuntimes...)
}
