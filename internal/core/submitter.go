package core

import (
	"context"
	"fmt"

	"github.com/JonMunkholm/crmimport/internal/logging"
)

// MaxBatchSize is the largest number of contacts sent in one CreateMany call.
const MaxBatchSize = 50

// BatchError reports the batch that stopped a submission. Batches before it
// were persisted and are not rolled back.
type BatchError struct {
	Batch     int   // 0-based index of the failed batch
	Offset    int   // index of the batch's first record in the submitted slice
	Size      int   // records in the failed batch
	Remaining int   // records never persisted, the failed batch included
	Err       error // underlying creator error
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("batch submission failed: batch %d (records %d-%d): %v",
		e.Batch+1, e.Offset+1, e.Offset+e.Size, e.Err)
}

func (e *BatchError) Unwrap() error {
	return e.Err
}

// SubmitResult holds what a submission persisted.
type SubmitResult struct {
	Created []Contact // created records in submission order
	Batches int       // CreateMany calls issued, the failed one included
}

// Submitter sends contacts to a ContactCreator in consecutive batches.
type Submitter struct {
	creator   ContactCreator
	batchSize int
}

// NewSubmitter returns a Submitter using batchSize, or MaxBatchSize when
// batchSize is outside 1..MaxBatchSize.
func NewSubmitter(creator ContactCreator, batchSize int) *Submitter {
	if batchSize <= 0 || batchSize > MaxBatchSize {
		batchSize = MaxBatchSize
	}
	return &Submitter{creator: creator, batchSize: batchSize}
}

// BatchSize returns the configured batch size.
func (s *Submitter) BatchSize() int {
	return s.batchSize
}

// Submit creates contacts one batch at a time, in order. The first failed
// batch ends the submission with a *BatchError; the result still carries the
// records created before it.
func (s *Submitter) Submit(ctx context.Context, contacts []CandidateContact) (SubmitResult, error) {
	var result SubmitResult
	logger := logging.FromContext(ctx)

	for index, start := 0, 0; start < len(contacts); index, start = index+1, start+s.batchSize {
		end := min(start+s.batchSize, len(contacts))
		batch := contacts[start:end]

		fail := func(err error) (SubmitResult, error) {
			return result, &BatchError{
				Batch:     index,
				Offset:    start,
				Size:      len(batch),
				Remaining: len(contacts) - start,
				Err:       err,
			}
		}

		if err := ctx.Err(); err != nil {
			return fail(err)
		}

		result.Batches++
		created, err := s.creator.CreateMany(ctx, batch)
		if err != nil {
			logger.Warn("batch failed", "batch", result.Batches, "size", len(batch), "error", err)
			return fail(err)
		}
		if len(created) != len(batch) {
			return fail(fmt.Errorf("created %d of %d records", len(created), len(batch)))
		}

		result.Created = append(result.Created, created...)
		logger.Debug("batch created", "batch", result.Batches, "size", len(batch))
	}

	return result, nil
}

// BatchCount returns how many batches n records need at the given size.
func BatchCount(n, size int) int {
	if n <= 0 {
		return 0
	}
	if size <= 0 || size > MaxBatchSize {
		size = MaxBatchSize
	}
	return (n + size - 1) / size
}
