package loan

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Validate checks a loan before it is created or replaced.
func (l *Loan) Validate() error {
	if len(l.Items) == 0 {
		return ErrNoItems
	}
	if !l.LiabilityAccepted {
		return ErrLiabilityNotAccepted
	}
	if err := l.Requester.Validate(); err != nil {
		return fmt.Errorf("solicitante: %w", err)
	}
	if err := l.Mission.Validate(l.LoanDate); err != nil {
		return err
	}
	if err := l.Signatures.Validate(); err != nil {
		return err
	}

	seenEquipment := make(map[uuid.UUID]struct{}, len(l.Items))
	seenChips := make(map[uuid.UUID]struct{})
	for idx := range l.Items {
		item := &l.Items[idx]
		if item.EquipmentID == uuid.Nil {
			return fmt.Errorf("%w: item %d", ErrEquipmentRequired, idx)
		}
		if _, dup := seenEquipment[item.EquipmentID]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateEquipment, item.EquipmentID)
		}
		seenEquipment[item.EquipmentID] = struct{}{}

		if item.ChipID != nil {
			if _, dup := seenChips[*item.ChipID]; dup {
				return fmt.Errorf("%w: %s", ErrDuplicateChip, *item.ChipID)
			}
			seenChips[*item.ChipID] = struct{}{}
		}
		if item.IsChipReturned && item.ChipID == nil {
			return fmt.Errorf("%w: item %d has no chip", ErrInvalidItem, idx)
		}
	}

	return nil
}

func (p *Person) Validate() error {
	if strings.TrimSpace(p.FullName) == "" {
		return ErrPersonNameRequired
	}
	return nil
}

// Validate rejects a planned return date earlier than the loan date.
func (m *Mission) Validate(loanDate time.Time) error {
	if m.PlannedReturnDate == nil || loanDate.IsZero() {
		return nil
	}
	if m.PlannedReturnDate.Before(truncateDay(loanDate)) {
		return ErrInvalidMission
	}
	return nil
}

func (s *Signatures) Validate() error {
	for name, value := range map[string]string{
		"requester":       s.Requester,
		"deliverer":       s.Deliverer,
		"returnRequester": s.ReturnRequester,
		"returnReceiver":  s.ReturnReceiver,
	} {
		if !isBase64Image(value) {
			return fmt.Errorf("%w: %s", ErrInvalidSignature, name)
		}
	}
	return nil
}

// Validate checks the payload of a return call.
func (r *ReturnRequest) Validate() error {
	seen := make(map[uuid.UUID]struct{}, len(r.Items))
	for _, item := range r.Items {
		if item.EquipmentID == uuid.Nil {
			return ErrEquipmentRequired
		}
		if _, dup := seen[item.EquipmentID]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateEquipment, item.EquipmentID)
		}
		seen[item.EquipmentID] = struct{}{}
	}
	if r.Signatures != nil {
		return r.Signatures.Validate()
	}
	return nil
}

// isBase64Image accepts empty values, data URLs and bare base64 payloads.
func isBase64Image(value string) bool {
	if value == "" {
		return true
	}
	if strings.HasPrefix(value, "data:") {
		header, payload, ok := strings.Cut(value, ",")
		if !ok || !strings.HasPrefix(header, "data:image/") || !strings.HasSuffix(header, ";base64") {
			return false
		}
		value = payload
	}
	_, err := base64.StdEncoding.DecodeString(value)
	return err == nil
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
