package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// LoanModel represents the database model for Loans.
type LoanModel struct {
	ID                uuid.UUID                          `gorm:"type:uuid;primaryKey"`
	OrderID           string                             `gorm:"type:varchar(50);not null;uniqueIndex"`
	LoanDate          time.Time                          `gorm:"not null;index"`
	Status            string                             `gorm:"type:varchar(20);not null;index"`
	Requester         datatypes.JSONType[PersonDoc]      `gorm:"column:solicitante;not null"`
	Deliverer         datatypes.JSONType[PersonDoc]      `gorm:"column:entrega_responsable;not null"`
	Mission           datatypes.JSONType[MissionDoc]     `gorm:"not null"`
	PlannedReturnDate *time.Time                         `gorm:"index"`
	ReturnInfo        datatypes.JSONType[*ReturnInfoDoc] `gorm:"not null"`
	Signatures        datatypes.JSONType[SignaturesDoc]  `gorm:"not null"`
	LiabilityAccepted bool                               `gorm:"not null"`
	CreatedAt         time.Time                          `gorm:"not null;index"`
	UpdatedAt         time.Time                          `gorm:"not null"`

	Items []LoanItemModel `gorm:"foreignKey:LoanID;constraint:OnDelete:CASCADE"`
}

func (LoanModel) TableName() string {
	return "loans"
}

// LoanItemModel represents one borrowed asset of a loan.
type LoanItemModel struct {
	ID                  uuid.UUID                   `gorm:"type:uuid;primaryKey"`
	LoanID              uuid.UUID                   `gorm:"type:uuid;not null;index"`
	Position            int                         `gorm:"type:integer;not null"`
	EquipmentID         uuid.UUID                   `gorm:"type:uuid;not null;index"`
	ChipID              *uuid.UUID                  `gorm:"type:uuid;index"`
	SerialNumber        string                      `gorm:"type:varchar(255)"`
	Description         string                      `gorm:"type:text"`
	ExitCondition       string                      `gorm:"type:varchar(50)"`
	Accessories         datatypes.JSONSlice[string] `gorm:"not null"`
	Observations        string                      `gorm:"type:text"`
	ReturnCondition     *string                     `gorm:"type:varchar(50)"`
	ReturnAccessories   datatypes.JSONSlice[string] `gorm:"not null"`
	ReturnObservations  string                      `gorm:"type:text"`
	RequiresMaintenance *string                     `gorm:"type:varchar(50)"`
	IsDeviceReturned    bool                        `gorm:"not null"`
	IsChipReturned      bool                        `gorm:"not null"`
}

func (LoanItemModel) TableName() string {
	return "loan_items"
}

// PersonDoc is the JSON shape of the solicitante and entrega_responsable columns.
type PersonDoc struct {
	EmployeeID *uuid.UUID `json:"employeeId,omitempty"`
	FullName   string     `json:"fullName"`
	NationalID string     `json:"nationalId,omitempty"`
	Position   string     `json:"position,omitempty"`
	Department string     `json:"department,omitempty"`
	Email      string     `json:"email,omitempty"`
	Phone      string     `json:"phone,omitempty"`
}

type MissionDoc struct {
	Destination       string     `json:"destination,omitempty"`
	PlannedReturnDate *time.Time `json:"plannedReturnDate,omitempty"`
	Justification     string     `json:"justification,omitempty"`
}

type ReturnInfoDoc struct {
	ReturnDate   *time.Time `json:"returnDate,omitempty"`
	ReturnedBy   string     `json:"returnedBy,omitempty"`
	ReceivedBy   string     `json:"receivedBy,omitempty"`
	Observations string     `json:"observations,omitempty"`
}

type SignaturesDoc struct {
	Requester       string `json:"requester,omitempty"`
	Deliverer       string `json:"deliverer,omitempty"`
	ReturnRequester string `json:"returnRequester,omitempty"`
	ReturnReceiver  string `json:"returnReceiver,omitempty"`
}
