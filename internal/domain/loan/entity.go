package loan

import (
	"time"

	"github.com/google/uuid"

	"electrotrack/internal/domain/equipment"
)

// Loan is a set of assets checked out together under one order.
type Loan struct {
	ID                uuid.UUID
	OrderID           string
	LoanDate          time.Time
	Status            Status
	Requester         Person
	Deliverer         Person
	Mission           Mission
	ReturnInfo        *ReturnInfo
	Signatures        Signatures
	LiabilityAccepted bool
	Items             []Item
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type Status string

const (
	StatusActive    Status = "active"
	StatusReturned  Status = "returned"
	StatusCancelled Status = "cancelled"
)

func (s Status) IsValid() bool {
	return s == StatusActive || s == StatusReturned || s == StatusCancelled
}

// Person is a snapshot of an employee taken when the loan is recorded.
type Person struct {
	EmployeeID *uuid.UUID
	FullName   string
	NationalID string
	Position   string
	Department string
	Email      string
	Phone      string
}

type Mission struct {
	Destination       string
	PlannedReturnDate *time.Time
	Justification     string
}

// ReturnInfo is filled in by the return flow, possibly over several partial returns.
type ReturnInfo struct {
	ReturnDate   *time.Time
	ReturnedBy   string
	ReceivedBy   string
	Observations string
}

// Signatures holds base64 encoded images.
type Signatures struct {
	Requester       string
	Deliverer       string
	ReturnRequester string
	ReturnReceiver  string
}

// Item is one borrowed asset within a loan.
type Item struct {
	ID                  uuid.UUID
	LoanID              uuid.UUID
	EquipmentID         uuid.UUID
	ChipID              *uuid.UUID
	SerialNumber        string
	Description         string
	ExitCondition       equipment.Condition
	Accessories         []string
	Observations        string
	ReturnCondition     *equipment.Condition
	ReturnAccessories   []string
	ReturnObservations  string
	RequiresMaintenance *string
	IsDeviceReturned    bool
	IsChipReturned      bool
}

// ItemReturn carries the return data for the item holding EquipmentID.
type ItemReturn struct {
	EquipmentID         uuid.UUID
	ReturnCondition     *equipment.Condition
	ReturnAccessories   []string
	ReturnObservations  string
	RequiresMaintenance *string
	IsDeviceReturned    bool
	IsChipReturned      bool
}

type ReturnRequest struct {
	Items      []ItemReturn
	ReturnInfo *ReturnInfo
	Signatures *Signatures
}

// ReturnOutcome tells the caller what a return call did to the loan.
type ReturnOutcome string

const (
	ReturnOutcomeComplete        ReturnOutcome = "complete"
	ReturnOutcomePartial         ReturnOutcome = "partial"
	ReturnOutcomeAlreadyReturned ReturnOutcome = "already_returned"
)
