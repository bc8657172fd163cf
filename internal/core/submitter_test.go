package core

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSubmitter_BatchSizes(t *testing.T) {
	tests := []struct {
		name      string
		records   int
		batchSize int
		want      []int
	}{
		{"nothing to submit", 0, 50, []int{}},
		{"one record", 1, 50, []int{1}},
		{"exactly one batch", 50, 50, []int{50}},
		{"one over", 51, 50, []int{50, 1}},
		{"two full batches", 100, 50, []int{50, 50}},
		{"custom size", 25, 10, []int{10, 10, 5}},
		{"oversized falls back", 120, 500, []int{50, 50, 20}},
		{"zero falls back", 60, 0, []int{50, 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			creator := &recordingCreator{}
			res, err := NewSubmitter(creator, tt.batchSize).Submit(context.Background(), candidates(tt.records))
			if err != nil {
				t.Fatalf("Submit() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, creator.sizes()); diff != "" {
				t.Errorf("batch sizes mismatch (-want +got):\n%s", diff)
			}
			if res.Batches != len(tt.want) {
				t.Errorf("Batches = %d, want %d", res.Batches, len(tt.want))
			}
			if len(res.Created) != tt.records {
				t.Errorf("Created = %d, want %d", len(res.Created), tt.records)
			}
		})
	}
}

func TestSubmitter_PreservesOrder(t *testing.T) {
	in := candidates(75)
	creator := &recordingCreator{}

	res, err := NewSubmitter(creator, MaxBatchSize).Submit(context.Background(), in)
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	for i, c := range res.Created {
		if c.Email != in[i].Email {
			t.Fatalf("Created[%d].Email = %q, want %q", i, c.Email, in[i].Email)
		}
	}
	if res.Created[0].ID != "c-1" || res.Created[74].ID != "c-75" {
		t.Errorf("ids out of order: first %q, last %q", res.Created[0].ID, res.Created[74].ID)
	}
}

func TestSubmitter_StopsAtFailedBatch(t *testing.T) {
	dbErr := errors.New("connection reset by peer")
	creator := &recordingCreator{failOn: 2, err: dbErr}

	res, err := NewSubmitter(creator, 50).Submit(context.Background(), candidates(120))

	var be *BatchError
	if !errors.As(err, &be) {
		t.Fatalf("Submit() error = %v, want *BatchError", err)
	}
	if !errors.Is(err, dbErr) {
		t.Error("BatchError should unwrap to the creator error")
	}
	want := BatchError{Batch: 1, Offset: 50, Size: 50, Remaining: 70, Err: dbErr}
	if *be != want {
		t.Errorf("BatchError = %+v, want %+v", *be, want)
	}
	if creator.calls() != 2 {
		t.Errorf("CreateMany calls = %d, want 2", creator.calls())
	}
	if len(res.Created) != 50 {
		t.Errorf("Created = %d, want 50", len(res.Created))
	}
	if res.Batches != 2 {
		t.Errorf("Batches = %d, want 2", res.Batches)
	}

	wantMsg := "batch submission failed: batch 2 (records 51-100): connection reset by peer"
	if err.Error() != wantMsg {
		t.Errorf("Error() = %q, want %q", err.Error(), wantMsg)
	}
}

func TestSubmitter_ShortResponseFails(t *testing.T) {
	creator := &recordingCreator{short: true}

	res, err := NewSubmitter(creator, 50).Submit(context.Background(), candidates(3))

	var be *BatchError
	if !errors.As(err, &be) {
		t.Fatalf("Submit() error = %v, want *BatchError", err)
	}
	if be.Remaining != 3 {
		t.Errorf("Remaining = %d, want 3", be.Remaining)
	}
	if len(res.Created) != 0 {
		t.Errorf("Created = %d, want 0", len(res.Created))
	}
}

func TestSubmitter_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	creator := &recordingCreator{}

	res, err := NewSubmitter(creator, 50).Submit(ctx, candidates(10))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Submit() error = %v, want context.Canceled", err)
	}
	if creator.calls() != 0 {
		t.Errorf("CreateMany calls = %d, want 0", creator.calls())
	}
	if res.Batches != 0 {
		t.Errorf("Batches = %d, want 0", res.Batches)
	}
}

// cancelingCreator cancels the submission context after its first call.
type cancelingCreator struct {
	recordingCreator
	cancel context.CancelFunc
}

func (c *cancelingCreator) CreateMany(ctx context.Context, batch []CandidateContact) ([]Contact, error) {
	defer c.cancel()
	return c.recordingCreator.CreateMany(ctx, batch)
}

func TestSubmitter_CanceledBetweenBatches(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	creator := &cancelingCreator{cancel: cancel}

	res, err := NewSubmitter(creator, 50).Submit(ctx, candidates(120))

	var be *BatchError
	if !errors.As(err, &be) {
		t.Fatalf("Submit() error = %v, want *BatchError", err)
	}
	want := BatchError{Batch: 1, Offset: 50, Size: 50, Remaining: 70, Err: context.Canceled}
	if *be != want {
		t.Errorf("BatchError = %+v, want %+v", *be, want)
	}
	if res.Batches != 1 {
		t.Errorf("Batches = %d, want 1", res.Batches)
	}
	if creator.calls() != 1 {
		t.Errorf("CreateMany calls = %d, want 1", creator.calls())
	}
}

func TestNewSubmitter_BatchSize(t *testing.T) {
	tests := map[int]int{-1: 50, 0: 50, 1: 1, 25: 25, 50: 50, 51: 50}
	for in, want := range tests {
		if got := NewSubmitter(&recordingCreator{}, in).BatchSize(); got != want {
			t.Errorf("NewSubmitter(%d).BatchSize() = %d, want %d", in, got, want)
		}
	}
}

func TestBatchCount(t *testing.T) {
	tests := []struct {
		n, size, want int
	}{
		{0, 50, 0},
		{1, 50, 1},
		{50, 50, 1},
		{51, 50, 2},
		{100, 50, 2},
		{101, 50, 3},
		{10, 3, 4},
		{75, 0, 2},
	}
	for _, tt := range tests {
		if got := BatchCount(tt.n, tt.size); got != tt.want {
			t.Errorf("BatchCount(%d, %d) = %d, want %d", tt.n, tt.size, got, tt.want)
		}
	}
}
