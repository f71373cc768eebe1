package postgres

import (
	"time"

	"gorm.io/datatypes"

	"electrotrack/internal/domain/equipment"
	"electrotrack/internal/domain/loan"
	"electrotrack/internal/infrastructure/database/postgres/models"
)

// Conversions between the loan aggregate and its JSON columns live here only.

func toLoanModel(l *loan.Loan) *models.LoanModel {
	var planned *time.Time
	if l.Mission.PlannedReturnDate != nil {
		utc := l.Mission.PlannedReturnDate.UTC()
		planned = &utc
	}

	return &models.LoanModel{
		ID:                l.ID,
		OrderID:           l.OrderID,
		LoanDate:          l.LoanDate.UTC(),
		Status:            string(l.Status),
		Requester:         datatypes.NewJSONType(toPersonDoc(l.Requester)),
		Deliverer:         datatypes.NewJSONType(toPersonDoc(l.Deliverer)),
		Mission:           datatypes.NewJSONType(toMissionDoc(l.Mission)),
		PlannedReturnDate: planned,
		ReturnInfo:        datatypes.NewJSONType(toReturnInfoDoc(l.ReturnInfo)),
		Signatures:        datatypes.NewJSONType(toSignaturesDoc(l.Signatures)),
		LiabilityAccepted: l.LiabilityAccepted,
		CreatedAt:         l.CreatedAt,
		UpdatedAt:         l.UpdatedAt,
	}
}

func toLoanEntity(m *models.LoanModel) *loan.Loan {
	l := &loan.Loan{
		ID:                m.ID,
		OrderID:           m.OrderID,
		LoanDate:          m.LoanDate,
		Status:            loan.Status(m.Status),
		Requester:         toPersonEntity(m.Requester.Data()),
		Deliverer:         toPersonEntity(m.Deliverer.Data()),
		Mission:           toMissionEntity(m.Mission.Data()),
		ReturnInfo:        toReturnInfoEntity(m.ReturnInfo.Data()),
		Signatures:        toSignaturesEntity(m.Signatures.Data()),
		LiabilityAccepted: m.LiabilityAccepted,
		Items:             make([]loan.Item, len(m.Items)),
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
	for i := range m.Items {
		l.Items[i] = toItemEntity(&m.Items[i])
	}
	return l
}

func toLoanEntities(rows []models.LoanModel) []*loan.Loan {
	loans := make([]*loan.Loan, len(rows))
	for i := range rows {
		loans[i] = toLoanEntity(&rows[i])
	}
	return loans
}

func toItemModel(item *loan.Item, position int) *models.LoanItemModel {
	accessories := item.Accessories
	if accessories == nil {
		accessories = []string{}
	}

	var returnCondition *string
	if item.ReturnCondition != nil {
		returnCondition = strPtr(string(*item.ReturnCondition))
	}

	return &models.LoanItemModel{
		ID:                  item.ID,
		LoanID:              item.LoanID,
		Position:            position,
		EquipmentID:         item.EquipmentID,
		ChipID:              item.ChipID,
		SerialNumber:        item.SerialNumber,
		Description:         item.Description,
		ExitCondition:       string(item.ExitCondition),
		Accessories:         datatypes.JSONSlice[string](accessories),
		Observations:        item.Observations,
		ReturnCondition:     returnCondition,
		ReturnAccessories:   datatypes.JSONSlice[string](item.ReturnAccessories),
		ReturnObservations:  item.ReturnObservations,
		RequiresMaintenance: item.RequiresMaintenance,
		IsDeviceReturned:    item.IsDeviceReturned,
		IsChipReturned:      item.IsChipReturned,
	}
}

func toItemEntity(m *models.LoanItemModel) loan.Item {
	item := loan.Item{
		ID:                  m.ID,
		LoanID:              m.LoanID,
		EquipmentID:         m.EquipmentID,
		ChipID:              m.ChipID,
		SerialNumber:        m.SerialNumber,
		Description:         m.Description,
		ExitCondition:       equipment.Condition(m.ExitCondition),
		Accessories:         []string(m.Accessories),
		Observations:        m.Observations,
		ReturnAccessories:   []string(m.ReturnAccessories),
		ReturnObservations:  m.ReturnObservations,
		RequiresMaintenance: m.RequiresMaintenance,
		IsDeviceReturned:    m.IsDeviceReturned,
		IsChipReturned:      m.IsChipReturned,
	}
	if item.Accessories == nil {
		item.Accessories = []string{}
	}
	if m.ReturnCondition != nil {
		c := equipment.Condition(*m.ReturnCondition)
		item.ReturnCondition = &c
	}
	return item
}

func toPersonDoc(p loan.Person) models.PersonDoc {
	return models.PersonDoc{
		EmployeeID: p.EmployeeID,
		FullName:   p.FullName,
		NationalID: p.NationalID,
		Position:   p.Position,
		Department: p.Department,
		Email:      p.Email,
		Phone:      p.Phone,
	}
}

func toPersonEntity(d models.PersonDoc) loan.Person {
	return loan.Person{
		EmployeeID: d.EmployeeID,
		FullName:   d.FullName,
		NationalID: d.NationalID,
		Position:   d.Position,
		Department: d.Department,
		Email:      d.Email,
		Phone:      d.Phone,
	}
}

func toMissionDoc(m loan.Mission) models.MissionDoc {
	return models.MissionDoc{
		Destination:       m.Destination,
		PlannedReturnDate: m.PlannedReturnDate,
		Justification:     m.Justification,
	}
}

func toMissionEntity(d models.MissionDoc) loan.Mission {
	return loan.Mission{
		Destination:       d.Destination,
		PlannedReturnDate: d.PlannedReturnDate,
		Justification:     d.Justification,
	}
}

func toReturnInfoDoc(r *loan.ReturnInfo) *models.ReturnInfoDoc {
	if r == nil {
		return nil
	}
	return &models.ReturnInfoDoc{
		ReturnDate:   r.ReturnDate,
		ReturnedBy:   r.ReturnedBy,
		ReceivedBy:   r.ReceivedBy,
		Observations: r.Observations,
	}
}

func toReturnInfoEntity(d *models.ReturnInfoDoc) *loan.ReturnInfo {
	if d == nil {
		return nil
	}
	return &loan.ReturnInfo{
		ReturnDate:   d.ReturnDate,
		ReturnedBy:   d.ReturnedBy,
		ReceivedBy:   d.ReceivedBy,
		Observations: d.Observations,
	}
}

func toSignaturesDoc(s loan.Signatures) models.SignaturesDoc {
	return models.SignaturesDoc{
		Requester:       s.Requester,
		Deliverer:       s.Deliverer,
		ReturnRequester: s.ReturnRequester,
		ReturnReceiver:  s.ReturnReceiver,
	}
}

func toSignaturesEntity(d models.SignaturesDoc) loan.Signatures {
	return loan.Signatures{
		Requester:       d.Requester,
		Deliverer:       d.Deliverer,
		ReturnRequester: d.ReturnRequester,
		ReturnReceiver:  d.ReturnReceiver,
	}
}
