package models

import (
	"time"

	"github.com/google/uuid"
)

// EquipmentModel represents the database model for Equipment.
type EquipmentModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	SerialNumber  string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	InventoryCode *string   `gorm:"type:varchar(100);index"`
	Category      string    `gorm:"type:varchar(100);not null;index"`
	SubCategory   *string   `gorm:"type:varchar(100)"`
	Brand         *string   `gorm:"type:varchar(100)"`
	Model         *string   `gorm:"type:varchar(255)"`
	Status        string    `gorm:"type:varchar(50);not null;index"`
	Condition     string    `gorm:"type:varchar(50);not null"`
	Location      *string   `gorm:"type:varchar(255)"`
	Notes         *string   `gorm:"type:text"`
	CreatedAt     time.Time `gorm:"not null;index"`
	UpdatedAt     time.Time `gorm:"not null"`

	// Owned hardware details
	Screen      *EquipmentScreenModel      `gorm:"foreignKey:EquipmentID;constraint:OnDelete:CASCADE"`
	Keyboard    *EquipmentKeyboardModel    `gorm:"foreignKey:EquipmentID;constraint:OnDelete:CASCADE"`
	Battery     *EquipmentBatteryModel     `gorm:"foreignKey:EquipmentID;constraint:OnDelete:CASCADE"`
	Peripherals []EquipmentPeripheralModel `gorm:"foreignKey:EquipmentID;constraint:OnDelete:CASCADE"`
}

func (EquipmentModel) TableName() string {
	return "equipment"
}

type EquipmentScreenModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	EquipmentID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	SizeInches  *float64  `gorm:"type:decimal(4,1)"`
	Resolution  *string   `gorm:"type:varchar(50)"`
	Condition   *string   `gorm:"type:varchar(50)"`
	Notes       *string   `gorm:"type:text"`
}

func (EquipmentScreenModel) TableName() string {
	return "equipment_screens"
}

type EquipmentKeyboardModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	EquipmentID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Layout      *string   `gorm:"type:varchar(50)"`
	Condition   *string   `gorm:"type:varchar(50)"`
	Notes       *string   `gorm:"type:text"`
}

func (EquipmentKeyboardModel) TableName() string {
	return "equipment_keyboards"
}

type EquipmentBatteryModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	EquipmentID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	HealthPercent *int      `gorm:"type:integer"`
	CycleCount    *int      `gorm:"type:integer"`
	Condition     *string   `gorm:"type:varchar(50)"`
	Notes         *string   `gorm:"type:text"`
}

func (EquipmentBatteryModel) TableName() string {
	return "equipment_batteries"
}

type EquipmentPeripheralModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	EquipmentID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Position     int       `gorm:"type:integer;not null"`
	Name         string    `gorm:"type:varchar(255);not null"`
	SerialNumber *string   `gorm:"type:varchar(255)"`
	Condition    *string   `gorm:"type:varchar(50)"`
}

func (EquipmentPeripheralModel) TableName() string {
	return "equipment_peripherals"
}

// ChipModel represents the database model for satellite chips.
type ChipModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	ICCID       string    `gorm:"column:iccid;type:varchar(32);not null;uniqueIndex"`
	PhoneNumber *string   `gorm:"type:varchar(30)"`
	Carrier     *string   `gorm:"type:varchar(100);index"`
	Plan        *string   `gorm:"type:varchar(100)"`
	Status      string    `gorm:"type:varchar(50);not null;index"`
	Notes       *string   `gorm:"type:text"`
	CreatedAt   time.Time `gorm:"not null;index"`
	UpdatedAt   time.Time `gorm:"not null"`
}

func (ChipModel) TableName() string {
	return "satellite_chips"
}

// EmployeeModel represents the database model for the personnel registry.
type EmployeeModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	FullName   string    `gorm:"type:varchar(255);not null;index"`
	NationalID string    `gorm:"type:varchar(50);not null;uniqueIndex"`
	Position   *string   `gorm:"type:varchar(255)"`
	Department *string   `gorm:"type:varchar(255);index"`
	Email      *string   `gorm:"type:varchar(255)"`
	Phone      *string   `gorm:"type:varchar(30)"`
	IsActive   bool      `gorm:"not null;index"`
	CreatedAt  time.Time `gorm:"not null"`
	UpdatedAt  time.Time `gorm:"not null"`
}

func (EmployeeModel) TableName() string {
	return "employees"
}
