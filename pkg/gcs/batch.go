package gcs

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/fivetwenty-io/gcs-client/internal/constants"
)

// Static errors for err113 compliance.
var (
	ErrBatchOperationFailed = errors.New("batch operation failed")
	ErrNoBatchRun           = errors.New("batch operation has no run function")
)

// BatchOperation is one independent unit of a batch.
type BatchOperation struct {
	ID       string
	Run      func(ctx context.Context) (interface{}, error)
	Callback func(result *BatchResult)
}

// NewCallOperation wraps one call as a batch operation.
func NewCallOperation[R any](id string, d Dispatcher, call Call[R]) BatchOperation {
	return BatchOperation{
		ID: id,
		Run: func(ctx context.Context) (interface{}, error) {
			return Invoke(ctx, d, call)
		},
	}
}

// BatchResult represents the result of a batch operation.
type BatchResult struct {
	ID       string
	Success  bool
	Data     interface{}
	Error    error
	Duration time.Duration
}

// BatchExecutor runs operations concurrently, bounded by a semaphore.
type BatchExecutor struct {
	concurrency int
	timeout     time.Duration
}

// NewBatchExecutor creates a new batch executor.
func NewBatchExecutor(concurrency int) *BatchExecutor {
	if concurrency <= 0 {
		concurrency = constants.DefaultConcurrencyLimit
	}

	return &BatchExecutor{
		concurrency: concurrency,
		timeout:     constants.DefaultBatchOperationTimeout,
	}
}

// SetTimeout sets the timeout of each operation.
func (b *BatchExecutor) SetTimeout(timeout time.Duration) {
	b.timeout = timeout
}

// Execute runs a batch of operations. Results are in the order of operations.
// The returned error is the context error if ctx ended before every operation
// started; operation failures are reported in the results only.
func (b *BatchExecutor) Execute(ctx context.Context, operations []BatchOperation) ([]BatchResult, error) {
	results := make([]BatchResult, len(operations))

	var waitGroup sync.WaitGroup

	semaphore := make(chan struct{}, b.concurrency)

	for index, operation := range operations {
		waitGroup.Add(1)

		go func(index int, operation BatchOperation) {
			defer waitGroup.Done()

			select {
			case semaphore <- struct{}{}:
			case <-ctx.Done():
				results[index] = BatchResult{ID: operation.ID, Error: ctx.Err()}

				return
			}

			defer func() { <-semaphore }()

			opCtx, cancel := context.WithTimeout(ctx, b.timeout)
			defer cancel()

			start := time.Now()
			result := b.executeOperation(opCtx, operation)
			result.Duration = time.Since(start)
			results[index] = *result

			if operation.Callback != nil {
				operation.Callback(result)
			}
		}(index, operation)
	}

	waitGroup.Wait()

	return results, ctx.Err()
}

func (b *BatchExecutor) executeOperation(ctx context.Context, operation BatchOperation) *BatchResult {
	result := &BatchResult{ID: operation.ID}

	if operation.Run == nil {
		result.Error = fmt.Errorf("%w: %s", ErrNoBatchRun, operation.ID)

		return result
	}

	data, err := operation.Run(ctx)
	result.Success = err == nil
	result.Data = data
	result.Error = err

	return result
}

// BatchError joins the failures of results, or returns nil.
func BatchError(results []BatchResult) error {
	var errs []error

	for _, r := range results {
		if r.Error != nil {
			errs = append(errs, fmt.Errorf("%w %s: %w", ErrBatchOperationFailed, r.ID, r.Error))
		}
	}

	return errors.Join(errs...)
}
