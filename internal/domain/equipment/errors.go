package equipment

import "errors"

var (
	ErrEquipmentNotFound       = errors.New("equipment not found")
	ErrEquipmentAlreadyExists  = errors.New("equipment with this serial number already exists")
	ErrEquipmentUnavailable    = errors.New("equipment is not available")
	ErrEquipmentLoaned         = errors.New("equipment is currently loaned")
	ErrInvalidStatus           = errors.New("invalid equipment status")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
)
