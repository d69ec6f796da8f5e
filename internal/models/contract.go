package models

import (
	"errors"
	"fmt"
	"time"
)

// ContractStatus is the lifecycle state of a rental contract.
type ContractStatus string

const (
	ContractPending   ContractStatus = "pending"
	ContractSigned    ContractStatus = "signed"
	ContractActive    ContractStatus = "active"
	ContractCompleted ContractStatus = "completed"
	ContractCancelled ContractStatus = "cancelled"
)

// Valid reports whether s is a known status.
func (s ContractStatus) Valid() bool {
	switch s {
	case ContractPending, ContractSigned, ContractActive, ContractCompleted, ContractCancelled:
		return true
	}
	return false
}

// Contract is a row of the contracts table.
type Contract struct {
	ID        string         `db:"id" json:"id"`
	HostID    string         `db:"host_id" json:"host_id"`
	StudentID string         `db:"student_id" json:"student_id"`
	ListingID string         `db:"listing_id" json:"listing_id"`
	Terms     JSON           `db:"terms" json:"terms"`
	Status    ContractStatus `db:"status" json:"status"`
	SignedAt  *time.Time     `db:"signed_at" json:"signed_at,omitempty"`
	CreatedAt time.Time      `db:"created_at" json:"created_at"`
}

// IsParty reports whether the profile is the host or the student.
func (c Contract) IsParty(profileID string) bool {
	return profileID != "" && (c.HostID == profileID || c.StudentID == profileID)
}

// NewContract is the payload of a contract creation.
type NewContract struct {
	HostID    string         `json:"host_id" binding:"required"`
	StudentID string         `json:"student_id" binding:"required"`
	ListingID string         `json:"listing_id" binding:"required"`
	Terms     JSON           `json:"terms" binding:"required"`
	Status    ContractStatus `json:"status"`
}

// ErrInvalidContract is returned for contract payloads missing required fields.
var ErrInvalidContract = errors.New("invalid contract")

// Normalize validates the payload and fills the default status.
func (n NewContract) Normalize() (NewContract, error) {
	switch {
	case n.HostID == "":
		return n, fmt.Errorf("%w: host_id is required", ErrInvalidContract)
	case n.StudentID == "":
		return n, fmt.Errorf("%w: student_id is required", ErrInvalidContract)
	case n.ListingID == "":
		return n, fmt.Errorf("%w: listing_id is required", ErrInvalidContract)
	case n.Terms.IsEmpty():
		return n, fmt.Errorf("%w: terms are required", ErrInvalidContract)
	}
	if n.Status == "" {
		n.Status = ContractPending
	}
	if !n.Status.Valid() {
		return n, fmt.Errorf("%w: unknown status %q", ErrInvalidContract, n.Status)
	}
	return n, nil
}

// ContractParty is the profile slice joined into a contract read.
type ContractParty struct {
	ID        string  `json:"id"`
	Username  *string `json:"username,omitempty"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	AvatarURL string  `json:"avatar_url"`
}

// ListingSummary is the listing slice joined into a contract read.
type ListingSummary struct {
	ID           string       `json:"id"`
	Title        string       `json:"title"`
	Price        float64      `json:"price"`
	Location     string       `json:"location"`
	HousingRules HousingRules `json:"housing_rules"`
}

// ContractDetails is a contract with both parties and the listing.
type ContractDetails struct {
	Contract
	Host    ContractParty  `json:"host"`
	Student ContractParty  `json:"student"`
	Listing ListingSummary `json:"listing"`
}
