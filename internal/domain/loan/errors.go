package loan

import "errors"

var (
	ErrLoanNotFound         = errors.New("loan not found")
	ErrLoanNotActive        = errors.New("loan is not active")
	ErrLoanCancelled        = errors.New("loan has been cancelled")
	ErrLoanHasReturns       = errors.New("loan already has returned assets")
	ErrNoItems              = errors.New("loan must contain at least one item")
	ErrLiabilityNotAccepted = errors.New("liability must be accepted")
	ErrPersonNameRequired   = errors.New("full name is required")
	ErrEquipmentRequired    = errors.New("equipment id is required")
	ErrDuplicateEquipment   = errors.New("equipment appears more than once in the loan")
	ErrDuplicateChip        = errors.New("satellite chip appears more than once in the loan")
	ErrInvalidItem          = errors.New("invalid loan item")
	ErrItemNotInLoan        = errors.New("equipment is not part of this loan")
	ErrInvalidMission       = errors.New("planned return date is before the loan date")
	ErrInvalidSignature     = errors.New("signature must be a base64 image")
	ErrOrderIDExists        = errors.New("order id already exists")
	ErrIDMismatch           = errors.New("loan id in body is missing or does not match the URL")
)
