package od2veh

import (
	"runtime"
	"sync"

	"github.com/pkg/errors"
)

// DefaultChunkSize Number of OD records dispatched to a worker at once
const DefaultChunkSize = 64

// RoutingSession Batch evaluation over a fixed-size worker pool.
/*
	Every worker owns an independent copy of the road network (fresh
	contraction hierarchies included), so no locking is needed: the only
	shared data is read-only. Records are dispatched in fixed-size chunks
	to amortize scheduling overhead and results are written back by
	original row index, so output order always matches input order no
	matter which worker finished first.
*/
type RoutingSession struct {
	pipeline  *Pipeline
	workers   int
	chunkSize int
}

// NewRoutingSession returns session with given pool size and chunk size.
// Non-positive workers count falls back to the number of CPUs, non-positive chunk size to DefaultChunkSize
func NewRoutingSession(pipeline *Pipeline, workers, chunkSize int) *RoutingSession {
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	if chunkSize < 1 {
		chunkSize = DefaultChunkSize
	}
	return &RoutingSession{pipeline: pipeline, workers: workers, chunkSize: chunkSize}
}

type sessionChunk struct {
	start   int
	records []ODRecord
}

type sessionResult struct {
	start       int
	evaluations []TripEvaluation
	err         error
}

// EvaluateAll evaluates all records across the worker pool preserving input order
func (session *RoutingSession) EvaluateAll(records []ODRecord) ([]TripEvaluation, error) {
	if len(records) == 0 {
		return []TripEvaluation{}, nil
	}
	workers := session.workers
	numChunks := (len(records) + session.chunkSize - 1) / session.chunkSize
	if workers > numChunks {
		workers = numChunks
	}
	if workers == 1 {
		return session.pipeline.EvaluateAll(records)
	}

	// clone before spawning anything: a failed copy must not leave
	// goroutines behind blocked on the tasks channel
	workerPipelines := make([]*Pipeline, workers)
	for w := 0; w < workers; w++ {
		workerNet, err := session.pipeline.net.Clone()
		if err != nil {
			return nil, errors.Wrap(err, "Can not copy network for worker")
		}
		workerPipelines[w] = NewPipeline(workerNet, session.pipeline.catalog, session.pipeline.capacity)
	}

	tasks := make(chan sessionChunk, numChunks)
	results := make(chan sessionResult, numChunks)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(pipeline *Pipeline) {
			defer wg.Done()
			for task := range tasks {
				evaluations, err := pipeline.EvaluateAll(task.records)
				results <- sessionResult{start: task.start, evaluations: evaluations, err: err}
			}
		}(workerPipelines[w])
	}

	for start := 0; start < len(records); start += session.chunkSize {
		end := start + session.chunkSize
		if end > len(records) {
			end = len(records)
		}
		tasks <- sessionChunk{start: start, records: records[start:end]}
	}
	close(tasks)
	wg.Wait()
	close(results)

	evaluations := make([]TripEvaluation, len(records))
	var firstErr error
	for result := range results {
		if result.err != nil {
			if firstErr == nil {
				firstErr = result.err
			}
			continue
		}
		copy(evaluations[result.start:], result.evaluations)
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return evaluations, nil
}
