package chip

import "errors"

var (
	ErrChipNotFound            = errors.New("satellite chip not found")
	ErrChipAlreadyExists       = errors.New("satellite chip with this ICCID already exists")
	ErrChipUnavailable         = errors.New("satellite chip is not available")
	ErrChipLoaned              = errors.New("satellite chip is currently loaned")
	ErrInvalidStatus           = errors.New("invalid chip status")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
)
