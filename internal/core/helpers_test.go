package core

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"sync"
	"time"
)

// recordingCreator is a ContactCreator that remembers every batch it saw.
type recordingCreator struct {
	mu      sync.Mutex
	batches [][]CandidateContact
	failOn  int // 1-based call that fails; 0 never fails
	err     error
	short   bool // drop the last created record of every batch
	next    int
}

func (f *recordingCreator) CreateMany(_ context.Context, contacts []CandidateContact) ([]Contact, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.batches = append(f.batches, append([]CandidateContact(nil), contacts...))
	if f.failOn == len(f.batches) {
		return nil, f.err
	}

	out := make([]Contact, 0, len(contacts))
	for _, c := range contacts {
		f.next++
		out = append(out, Contact{
			ID:               fmt.Sprintf("c-%d", f.next),
			CandidateContact: c,
			CreatedAt:        time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		})
	}
	if f.short && len(out) > 0 {
		out = out[:len(out)-1]
	}
	return out, nil
}

func (f *recordingCreator) sizes() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	sizes := make([]int, len(f.batches))
	for i, b := range f.batches {
		sizes[i] = len(b)
	}
	return sizes
}

func (f *recordingCreator) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.batches)
}

// candidates returns n valid candidates with distinct emails.
func candidates(n int) []CandidateContact {
	out := make([]CandidateContact, n)
	for i := range out {
		out[i] = CandidateContact{
			Name:          fmt.Sprintf("Contact %d", i+1),
			Email:         fmt.Sprintf("contact%d@example.com", i+1),
			Company:       "Acme",
			Sources:       []string{DefaultSource},
			Tags:          []string{},
			InterestLevel: InterestMedium,
			Status:        StatusLead,
		}
	}
	return out
}

// contactCSV generates a CSV with a header and n valid contact rows.
func contactCSV(n int) []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	w.Write([]string{"firstName", "lastName", "email", "company", "interestLevel", "status", "tags"})
	for i := 0; i < n; i++ {
		w.Write([]string{
			"John",
			fmt.Sprintf("Doe%d", i+1),
			fmt.Sprintf("john%d@example.com", i+1),
			"Acme Corp",
			"hot",
			"prospect",
			"vip; enterprise",
		})
	}
	w.Flush()

	return buf.Bytes()
}
