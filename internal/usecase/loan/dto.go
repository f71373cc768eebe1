package loan

import (
	"time"

	"github.com/google/uuid"

	domainEquipment "electrotrack/internal/domain/equipment"
	domainLoan "electrotrack/internal/domain/loan"
	"electrotrack/pkg/utils"
)

type PersonDTO struct {
	EmployeeID *uuid.UUID `json:"employeeId,omitempty"`
	FullName   string     `json:"fullName" validate:"max=255"`
	NationalID string     `json:"nationalId" validate:"max=50"`
	Position   string     `json:"position" validate:"max=100"`
	Department string     `json:"department" validate:"max=100"`
	Email      string     `json:"email" validate:"omitempty,email"`
	Phone      string     `json:"phone" validate:"max=50"`
}

type MissionDTO struct {
	Destination       string      `json:"destination" validate:"max=255"`
	PlannedReturnDate *utils.Date `json:"plannedReturnDate"`
	Justification     string      `json:"justification" validate:"max=2000"`
}

type ReturnInfoDTO struct {
	ReturnDate   *utils.Date `json:"returnDate"`
	ReturnedBy   string      `json:"returnedBy" validate:"max=255"`
	ReceivedBy   string      `json:"receivedBy" validate:"max=255"`
	Observations string      `json:"observations" validate:"max=2000"`
}

type SignaturesDTO struct {
	Requester       string `json:"requester"`
	Deliverer       string `json:"deliverer"`
	ReturnRequester string `json:"returnRequester"`
	ReturnReceiver  string `json:"returnReceiver"`
}

type ItemRequest struct {
	EquipmentID         uuid.UUID  `json:"equipmentId" validate:"required"`
	ChipID              *uuid.UUID `json:"chipId"`
	SerialNumber        string     `json:"serialNumber" validate:"max=100"`
	Description         string     `json:"description" validate:"max=255"`
	ExitCondition       string     `json:"exitCondition" validate:"omitempty,asset_condition"`
	Accessories         []string   `json:"accessories" validate:"max=50,dive,max=100"`
	Observations        string     `json:"observations" validate:"max=2000"`
	ReturnCondition     *string    `json:"returnCondition" validate:"omitempty,asset_condition"`
	ReturnAccessories   []string   `json:"returnAccessories" validate:"max=50,dive,max=100"`
	ReturnObservations  string     `json:"returnObservations" validate:"max=2000"`
	RequiresMaintenance *string    `json:"requiresMaintenance" validate:"omitempty,max=20"`
	IsDeviceReturned    bool       `json:"isDeviceReturned"`
	IsChipReturned      bool       `json:"isChipReturned"`
}

// LoanRequest is the body of both create and edit. On edit the optional id
// must match the URL.
type LoanRequest struct {
	ID                *uuid.UUID     `json:"id"`
	OrderID           string         `json:"orderId" validate:"max=50"`
	LoanDate          *utils.Date    `json:"loanDate"`
	Requester         PersonDTO      `json:"solicitante"`
	Deliverer         PersonDTO      `json:"entregaResponsable"`
	Mission           MissionDTO     `json:"mission"`
	ReturnInfo        *ReturnInfoDTO `json:"returnInfo"`
	Signatures        SignaturesDTO  `json:"signatures"`
	LiabilityAccepted bool           `json:"liabilityAccepted"`
	Items             []ItemRequest  `json:"items" validate:"required,min=1,max=100,dive"`
}

type ItemReturnRequest struct {
	EquipmentID         uuid.UUID `json:"equipmentId" validate:"required"`
	ReturnCondition     *string   `json:"returnCondition" validate:"omitempty,asset_condition"`
	ReturnAccessories   []string  `json:"returnAccessories" validate:"max=50,dive,max=100"`
	ReturnObservations  string    `json:"returnObservations" validate:"max=2000"`
	RequiresMaintenance *string   `json:"requiresMaintenance" validate:"omitempty,max=20"`
	IsDeviceReturned    bool      `json:"isDeviceReturned"`
	IsChipReturned      bool      `json:"isChipReturned"`
}

type ReturnLoanRequest struct {
	Items      []ItemReturnRequest `json:"items" validate:"max=100,dive"`
	ReturnInfo *ReturnInfoDTO      `json:"returnInfo"`
	Signatures *SignaturesDTO      `json:"signatures"`
}

type LoanFilterRequest struct {
	Status   string `form:"status" validate:"omitempty,oneof=active returned cancelled"`
	Search   string `form:"search" validate:"max=100"`
	Page     int    `form:"page" validate:"omitempty,min=1"`
	PageSize int    `form:"page_size" validate:"omitempty,min=1,max=100"`
}

type ItemResponse struct {
	ID                  uuid.UUID  `json:"id"`
	EquipmentID         uuid.UUID  `json:"equipmentId"`
	ChipID              *uuid.UUID `json:"chipId"`
	SerialNumber        string     `json:"serialNumber"`
	Description         string     `json:"description"`
	ExitCondition       string     `json:"exitCondition"`
	Accessories         []string   `json:"accessories"`
	Observations        string     `json:"observations"`
	ReturnCondition     *string    `json:"returnCondition"`
	ReturnAccessories   []string   `json:"returnAccessories"`
	ReturnObservations  string     `json:"returnObservations"`
	RequiresMaintenance *string    `json:"requiresMaintenance"`
	IsDeviceReturned    bool       `json:"isDeviceReturned"`
	IsChipReturned      bool       `json:"isChipReturned"`
}

type LoanResponse struct {
	ID                  uuid.UUID         `json:"id"`
	OrderID             string            `json:"orderId"`
	LoanDate            time.Time         `json:"loanDate"`
	Status              domainLoan.Status `json:"status"`
	Requester           PersonDTO         `json:"solicitante"`
	Deliverer           PersonDTO         `json:"entregaResponsable"`
	Mission             MissionDTO        `json:"mission"`
	ReturnInfo          *ReturnInfoDTO    `json:"returnInfo"`
	Signatures          SignaturesDTO     `json:"signatures"`
	LiabilityAccepted   bool              `json:"liabilityAccepted"`
	IsPartiallyReturned bool              `json:"isPartiallyReturned"`
	IsOverdue           bool              `json:"isOverdue"`
	Items               []ItemResponse    `json:"items"`
	CreatedAt           time.Time         `json:"createdAt"`
	UpdatedAt           time.Time         `json:"updatedAt"`
}

type ReturnResponse struct {
	Loan    *LoanResponse            `json:"loan"`
	Outcome domainLoan.ReturnOutcome `json:"outcome"`
}

type LoanListResponse struct {
	Loans      []LoanResponse `json:"loans"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	PageSize   int            `json:"pageSize"`
	TotalPages int            `json:"totalPages"`
}

// ToDomainLoan sanitizes the request and converts it. Signatures are kept
// verbatim since they are validated as base64 by the domain.
func ToDomainLoan(req *LoanRequest) *domainLoan.Loan {
	l := &domainLoan.Loan{
		OrderID:           utils.SanitizeString(req.OrderID),
		Requester:         toPerson(req.Requester),
		Deliverer:         toPerson(req.Deliverer),
		Mission:           toMission(req.Mission),
		ReturnInfo:        toReturnInfo(req.ReturnInfo),
		Signatures:        toSignatures(req.Signatures),
		LiabilityAccepted: req.LiabilityAccepted,
		Items:             make([]domainLoan.Item, len(req.Items)),
	}
	if t := req.LoanDate.TimePtr(); t != nil {
		l.LoanDate = *t
	}

	for i, item := range req.Items {
		l.Items[i] = domainLoan.Item{
			EquipmentID:         item.EquipmentID,
			ChipID:              item.ChipID,
			SerialNumber:        utils.SanitizeString(item.SerialNumber),
			Description:         utils.SanitizeString(item.Description),
			ExitCondition:       domainEquipment.Condition(item.ExitCondition),
			Accessories:         utils.SanitizeList(item.Accessories),
			Observations:        utils.SanitizeText(item.Observations),
			ReturnCondition:     toCondition(item.ReturnCondition),
			ReturnAccessories:   utils.SanitizeList(item.ReturnAccessories),
			ReturnObservations:  utils.SanitizeText(item.ReturnObservations),
			RequiresMaintenance: utils.SanitizeOptional(item.RequiresMaintenance),
			IsDeviceReturned:    item.IsDeviceReturned,
			IsChipReturned:      item.IsChipReturned,
		}
	}

	return l
}

func ToDomainReturn(req *ReturnLoanRequest) *domainLoan.ReturnRequest {
	r := &domainLoan.ReturnRequest{
		Items:      make([]domainLoan.ItemReturn, len(req.Items)),
		ReturnInfo: toReturnInfo(req.ReturnInfo),
	}
	if req.Signatures != nil {
		s := toSignatures(*req.Signatures)
		r.Signatures = &s
	}

	for i, item := range req.Items {
		r.Items[i] = domainLoan.ItemReturn{
			EquipmentID:         item.EquipmentID,
			ReturnCondition:     toCondition(item.ReturnCondition),
			ReturnAccessories:   utils.SanitizeList(item.ReturnAccessories),
			ReturnObservations:  utils.SanitizeText(item.ReturnObservations),
			RequiresMaintenance: utils.SanitizeOptional(item.RequiresMaintenance),
			IsDeviceReturned:    item.IsDeviceReturned,
			IsChipReturned:      item.IsChipReturned,
		}
	}

	return r
}

func ToDomainFilter(req *LoanFilterRequest) *domainLoan.Filter {
	if req == nil {
		return &domainLoan.Filter{}
	}
	f := &domainLoan.Filter{
		Search:   req.Search,
		Page:     req.Page,
		PageSize: req.PageSize,
	}
	if req.Status != "" {
		status := domainLoan.Status(req.Status)
		f.Status = &status
	}
	return f
}

func ToLoanResponse(l *domainLoan.Loan, now time.Time) *LoanResponse {
	if l == nil {
		return nil
	}

	resp := &LoanResponse{
		ID:                  l.ID,
		OrderID:             l.OrderID,
		LoanDate:            l.LoanDate,
		Status:              l.Status,
		Requester:           fromPerson(l.Requester),
		Deliverer:           fromPerson(l.Deliverer),
		Mission:             fromMission(l.Mission),
		Signatures:          fromSignatures(l.Signatures),
		LiabilityAccepted:   l.LiabilityAccepted,
		IsPartiallyReturned: l.IsPartiallyReturned(),
		IsOverdue:           l.IsOverdue(now),
		Items:               make([]ItemResponse, len(l.Items)),
		CreatedAt:           l.CreatedAt,
		UpdatedAt:           l.UpdatedAt,
	}
	if l.ReturnInfo != nil {
		resp.ReturnInfo = &ReturnInfoDTO{
			ReturnDate:   utils.DateFrom(l.ReturnInfo.ReturnDate),
			ReturnedBy:   l.ReturnInfo.ReturnedBy,
			ReceivedBy:   l.ReturnInfo.ReceivedBy,
			Observations: l.ReturnInfo.Observations,
		}
	}

	for i, item := range l.Items {
		resp.Items[i] = ItemResponse{
			ID:                  item.ID,
			EquipmentID:         item.EquipmentID,
			ChipID:              item.ChipID,
			SerialNumber:        item.SerialNumber,
			Description:         item.Description,
			ExitCondition:       string(item.ExitCondition),
			Accessories:         nonNil(item.Accessories),
			Observations:        item.Observations,
			ReturnCondition:     fromCondition(item.ReturnCondition),
			ReturnAccessories:   item.ReturnAccessories,
			ReturnObservations:  item.ReturnObservations,
			RequiresMaintenance: item.RequiresMaintenance,
			IsDeviceReturned:    item.IsDeviceReturned,
			IsChipReturned:      item.IsChipReturned,
		}
	}

	return resp
}

func toPerson(p PersonDTO) domainLoan.Person {
	return domainLoan.Person{
		EmployeeID: p.EmployeeID,
		FullName:   utils.SanitizeString(p.FullName),
		NationalID: utils.SanitizeString(p.NationalID),
		Position:   utils.SanitizeString(p.Position),
		Department: utils.SanitizeString(p.Department),
		Email:      utils.SanitizeEmail(p.Email),
		Phone:      utils.SanitizePhone(p.Phone),
	}
}

func fromPerson(p domainLoan.Person) PersonDTO {
	return PersonDTO{
		EmployeeID: p.EmployeeID,
		FullName:   p.FullName,
		NationalID: p.NationalID,
		Position:   p.Position,
		Department: p.Department,
		Email:      p.Email,
		Phone:      p.Phone,
	}
}

func toMission(m MissionDTO) domainLoan.Mission {
	return domainLoan.Mission{
		Destination:       utils.SanitizeString(m.Destination),
		PlannedReturnDate: m.PlannedReturnDate.TimePtr(),
		Justification:     utils.SanitizeText(m.Justification),
	}
}

func fromMission(m domainLoan.Mission) MissionDTO {
	return MissionDTO{
		Destination:       m.Destination,
		PlannedReturnDate: utils.DateFrom(m.PlannedReturnDate),
		Justification:     m.Justification,
	}
}

func toReturnInfo(r *ReturnInfoDTO) *domainLoan.ReturnInfo {
	if r == nil {
		return nil
	}
	return &domainLoan.ReturnInfo{
		ReturnDate:   r.ReturnDate.TimePtr(),
		ReturnedBy:   utils.SanitizeString(r.ReturnedBy),
		ReceivedBy:   utils.SanitizeString(r.ReceivedBy),
		Observations: utils.SanitizeText(r.Observations),
	}
}

func toSignatures(s SignaturesDTO) domainLoan.Signatures {
	return domainLoan.Signatures{
		Requester:       s.Requester,
		Deliverer:       s.Deliverer,
		ReturnRequester: s.ReturnRequester,
		ReturnReceiver:  s.ReturnReceiver,
	}
}

func fromSignatures(s domainLoan.Signatures) SignaturesDTO {
	return SignaturesDTO{
		Requester:       s.Requester,
		Deliverer:       s.Deliverer,
		ReturnRequester: s.ReturnRequester,
		ReturnReceiver:  s.ReturnReceiver,
	}
}

func toCondition(c *string) *domainEquipment.Condition {
	if c == nil || *c == "" {
		return nil
	}
	cond := domainEquipment.Condition(*c)
	return &cond
}

func fromCondition(c *domainEquipment.Condition) *string {
	if c == nil {
		return nil
	}
	s := string(*c)
	return &s
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
