package core

import (
	"context"
	"time"
)

// RawRow is one parsed CSV line: trimmed cells in column order.
type RawRow []string

// Interest levels accepted for a contact.
const (
	InterestHot    = "hot"
	InterestMedium = "medium"
	InterestLow    = "low"
	InterestCold   = "cold"
)

// Contact statuses accepted for a contact.
const (
	StatusLead     = "lead"
	StatusProspect = "prospect"
	StatusCustomer = "customer"
	StatusChurned  = "churned"
	StatusActive   = "active"
	StatusPending  = "pending"
	StatusInactive = "inactive"
)

// InterestLevels lists the allowed interest levels in display order.
var InterestLevels = []string{InterestHot, InterestMedium, InterestLow, InterestCold}

// Statuses lists the allowed statuses in display order.
var Statuses = []string{
	StatusLead, StatusProspect, StatusCustomer, StatusChurned,
	StatusActive, StatusPending, StatusInactive,
}

// DefaultSource is assigned when a row carries no sources.
const DefaultSource = "Manual Import"

// CandidateContact is a contact built from one CSV row that has not been
// persisted yet.
type CandidateContact struct {
	Name          string   `json:"name"`
	FirstName     string   `json:"firstName,omitempty"`
	LastName      string   `json:"lastName,omitempty"`
	Email         string   `json:"email"`
	Phone         string   `json:"phone,omitempty"`
	Title         string   `json:"title,omitempty"`
	Company       string   `json:"company"`
	Industry      string   `json:"industry,omitempty"`
	Sources       []string `json:"sources"`
	InterestLevel string   `json:"interestLevel"`
	Status        string   `json:"status"`
	Notes         string   `json:"notes,omitempty"`
	Tags          []string `json:"tags"`
}

// Contact is a persisted contact with its server-assigned identity.
type Contact struct {
	ID string `json:"id"`
	CandidateContact
	CreatedAt time.Time `json:"createdAt"`
}

// ContactCreator persists a batch of candidates and returns the created
// records in the same order. Calls are not idempotent.
type ContactCreator interface {
	CreateMany(ctx context.Context, contacts []CandidateContact) ([]Contact, error)
}

// ValidationError lists every rule a single data row violated.
// Row is the 1-based data row number; the header row is not counted.
type ValidationError struct {
	Row      int      `json:"row"`
	Messages []string `json:"messages"`
}
