package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"electrotrack/internal/domain/audit"
	domainChip "electrotrack/internal/domain/chip"
	domainEquipment "electrotrack/internal/domain/equipment"
	"electrotrack/internal/domain/loan"
	"electrotrack/internal/infrastructure/database/postgres/models"
)

// LoanRepository implements loan.Repository. Each mutating method is one
// transaction that keeps equipment and chip statuses in step with the items.
type LoanRepository struct {
	db *DB
}

func NewLoanRepository(db *DB) loan.Repository {
	return &LoanRepository{db: db}
}

func (r *LoanRepository) Create(ctx context.Context, l *loan.Loan, actor string) error {
	now := time.Now().UTC()
	l.ID = uuid.New()
	if strings.TrimSpace(l.OrderID) == "" {
		l.OrderID = loan.NewOrderID(now)
	}
	if l.LoanDate.IsZero() {
		l.LoanDate = now
	}
	l.Status = loan.StatusActive
	l.ReturnInfo = nil
	l.CreatedAt = now
	l.UpdatedAt = now

	for i := range l.Items {
		item := &l.Items[i]
		item.ID = uuid.New()
		item.LoanID = l.ID
		item.ReturnCondition = nil
		item.ReturnAccessories = nil
		item.ReturnObservations = ""
		item.RequiresMaintenance = nil
		item.IsDeviceReturned = false
		item.IsChipReturned = false
	}

	return r.db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range l.Items {
			if err := claimAssets(tx, &l.Items[i], now); err != nil {
				return err
			}
		}

		if err := tx.Omit(clause.Associations).Create(toLoanModel(l)).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return loan.ErrOrderIDExists
			}
			return fmt.Errorf("failed to create loan: %w", err)
		}
		if err := insertItems(tx, l.ID, l.Items); err != nil {
			return err
		}

		return recordAudit(tx, &audit.Entry{
			Entity:   audit.EntityLoan,
			EntityID: l.ID,
			Action:   audit.ActionCreate,
			Actor:    actor,
			Details: map[string]interface{}{
				"orderId": l.OrderID,
				"items":   len(l.Items),
			},
		})
	})
}

// Update replaces the header and the item list. Current holdings are released
// first, then the new list re-claims whatever it does not mark as returned.
func (r *LoanRepository) Update(ctx context.Context, l *loan.Loan, actor string) error {
	now := time.Now().UTC()

	return r.db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := lockLoan(tx, l.ID)
		if err != nil {
			return err
		}
		if current.Status != string(loan.StatusActive) {
			return fmt.Errorf("%w: status is %s", loan.ErrLoanNotActive, current.Status)
		}

		if strings.TrimSpace(l.OrderID) == "" {
			l.OrderID = current.OrderID
		}
		if l.LoanDate.IsZero() {
			l.LoanDate = current.LoanDate
		}
		if l.ReturnInfo == nil {
			l.ReturnInfo = toReturnInfoEntity(current.ReturnInfo.Data())
		}
		l.Status = loan.StatusActive
		l.CreatedAt = current.CreatedAt
		l.UpdatedAt = now

		header := toLoanModel(l)
		err = tx.Model(&models.LoanModel{}).
			Where("id = ?", l.ID).
			Updates(map[string]interface{}{
				"order_id":            header.OrderID,
				"loan_date":           header.LoanDate,
				"solicitante":         header.Requester,
				"entrega_responsable": header.Deliverer,
				"mission":             header.Mission,
				"planned_return_date": header.PlannedReturnDate,
				"return_info":         header.ReturnInfo,
				"signatures":          header.Signatures,
				"liability_accepted":  header.LiabilityAccepted,
				"updated_at":          header.UpdatedAt,
			}).Error
		if err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return loan.ErrOrderIDExists
			}
			return fmt.Errorf("failed to update loan: %w", err)
		}

		existing, err := loadItems(tx, l.ID)
		if err != nil {
			return err
		}
		for i := range existing {
			held := toItemEntity(&existing[i])
			if err := releaseAssets(tx, &held, now); err != nil {
				return err
			}
		}

		if err := tx.Where("loan_id = ?", l.ID).Delete(&models.LoanItemModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete loan items: %w", err)
		}

		for i := range l.Items {
			item := &l.Items[i]
			item.ID = uuid.New()
			item.LoanID = l.ID
			if item.ChipID == nil {
				item.IsChipReturned = false
			}
			if err := claimAssets(tx, item, now); err != nil {
				return err
			}
		}
		if err := insertItems(tx, l.ID, l.Items); err != nil {
			return err
		}

		return recordAudit(tx, &audit.Entry{
			Entity:   audit.EntityLoan,
			EntityID: l.ID,
			Action:   audit.ActionUpdate,
			Actor:    actor,
			Details: map[string]interface{}{
				"orderId":       l.OrderID,
				"previousItems": len(existing),
				"items":         len(l.Items),
			},
		})
	})
}

// Return applies full or partial return data. A loan that is already
// returned is left untouched and reported as ReturnOutcomeAlreadyReturned.
func (r *LoanRepository) Return(ctx context.Context, loanID uuid.UUID, req *loan.ReturnRequest, actor string) (*loan.Loan, loan.ReturnOutcome, error) {
	now := time.Now().UTC()
	var outcome loan.ReturnOutcome

	err := r.db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := lockLoan(tx, loanID)
		if err != nil {
			return err
		}
		switch loan.Status(current.Status) {
		case loan.StatusReturned:
			outcome = loan.ReturnOutcomeAlreadyReturned
			return nil
		case loan.StatusCancelled:
			return loan.ErrLoanCancelled
		}

		items, err := loadItems(tx, loanID)
		if err != nil {
			return err
		}
		entities := make([]loan.Item, len(items))
		for i := range items {
			entities[i] = toItemEntity(&items[i])
		}

		for _, payload := range req.Items {
			idx := loan.FindItemByEquipment(entities, payload.EquipmentID)
			if idx < 0 {
				return fmt.Errorf("%w: %s", loan.ErrItemNotInLoan, payload.EquipmentID)
			}
			item := &entities[idx]
			deviceBack, chipBack := item.ApplyReturn(payload)

			m := toItemModel(item, items[idx].Position)
			err := tx.Model(&models.LoanItemModel{}).
				Where("id = ?", item.ID).
				Updates(map[string]interface{}{
					"return_condition":     m.ReturnCondition,
					"return_accessories":   m.ReturnAccessories,
					"return_observations":  m.ReturnObservations,
					"requires_maintenance": m.RequiresMaintenance,
					"is_device_returned":   m.IsDeviceReturned,
					"is_chip_returned":     m.IsChipReturned,
				}).Error
			if err != nil {
				return fmt.Errorf("failed to update loan item: %w", err)
			}

			if deviceBack {
				status := loan.ReturnedEquipmentStatus(item.ReturnCondition, item.RequiresMaintenance)
				if err := setEquipmentStatus(tx, item.EquipmentID, status, now); err != nil {
					return err
				}
			}
			if chipBack {
				if err := setChipStatus(tx, *item.ChipID, domainChip.StatusAvailable, now); err != nil {
					return err
				}
			}
		}

		reread, err := loadItems(tx, loanID)
		if err != nil {
			return err
		}
		final := make([]loan.Item, len(reread))
		for i := range reread {
			final[i] = toItemEntity(&reread[i])
		}

		status := loan.StatusActive
		outcome = loan.ReturnOutcomePartial
		action := audit.ActionPartialReturn
		if loan.AllReturned(final) {
			status = loan.StatusReturned
			outcome = loan.ReturnOutcomeComplete
			action = audit.ActionReturn
		}

		returnInfo := current.ReturnInfo.Data()
		if req.ReturnInfo != nil {
			returnInfo = toReturnInfoDoc(req.ReturnInfo)
		}
		signatures := toSignaturesEntity(current.Signatures.Data()).Merge(req.Signatures)

		err = tx.Model(&models.LoanModel{}).
			Where("id = ?", loanID).
			Updates(map[string]interface{}{
				"status":      string(status),
				"return_info": datatypes.NewJSONType(returnInfo),
				"signatures":  datatypes.NewJSONType(toSignaturesDoc(signatures)),
				"updated_at":  now,
			}).Error
		if err != nil {
			return fmt.Errorf("failed to update loan status: %w", err)
		}

		return recordAudit(tx, &audit.Entry{
			Entity:   audit.EntityLoan,
			EntityID: loanID,
			Action:   action,
			Actor:    actor,
			Details: map[string]interface{}{
				"orderId":       current.OrderID,
				"returnedItems": len(req.Items),
				"status":        string(status),
			},
		})
	})
	if err != nil {
		return nil, "", err
	}

	l, err := r.GetByID(ctx, loanID)
	if err != nil {
		return nil, "", err
	}
	return l, outcome, nil
}

// Cancel voids an active loan nothing has been returned from and releases its assets.
func (r *LoanRepository) Cancel(ctx context.Context, loanID uuid.UUID, actor string) (*loan.Loan, error) {
	now := time.Now().UTC()

	err := r.db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := lockLoan(tx, loanID)
		if err != nil {
			return err
		}
		if current.Status != string(loan.StatusActive) {
			return fmt.Errorf("%w: status is %s", loan.ErrLoanNotActive, current.Status)
		}

		items, err := loadItems(tx, loanID)
		if err != nil {
			return err
		}
		entities := make([]loan.Item, len(items))
		for i := range items {
			entities[i] = toItemEntity(&items[i])
		}
		if loan.AnyReturned(entities) {
			return loan.ErrLoanHasReturns
		}

		for i := range entities {
			if err := releaseAssets(tx, &entities[i], now); err != nil {
				return err
			}
		}

		err = tx.Model(&models.LoanModel{}).
			Where("id = ?", loanID).
			Updates(map[string]interface{}{
				"status":     string(loan.StatusCancelled),
				"updated_at": now,
			}).Error
		if err != nil {
			return fmt.Errorf("failed to cancel loan: %w", err)
		}

		return recordAudit(tx, &audit.Entry{
			Entity:   audit.EntityLoan,
			EntityID: loanID,
			Action:   audit.ActionCancel,
			Actor:    actor,
			Details:  map[string]interface{}{"orderId": current.OrderID},
		})
	})
	if err != nil {
		return nil, err
	}

	return r.GetByID(ctx, loanID)
}

func (r *LoanRepository) GetByID(ctx context.Context, loanID uuid.UUID) (*loan.Loan, error) {
	var dbModel models.LoanModel
	err := r.db.DB.WithContext(ctx).
		Preload("Items", orderItems).
		First(&dbModel, "id = ?", loanID).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, loan.ErrLoanNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get loan: %w", err)
	}

	return toLoanEntity(&dbModel), nil
}

func (r *LoanRepository) List(ctx context.Context, filter *loan.Filter) ([]*loan.Loan, int64, error) {
	var dbModels []models.LoanModel
	var total int64

	db := r.db.DB.WithContext(ctx).Model(&models.LoanModel{})
	if filter.Status != nil {
		db = db.Where("status = ?", string(*filter.Status))
	}
	if filter.Search != "" {
		db = db.Where("LOWER(order_id) LIKE ?", likePattern(filter.Search))
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count loans: %w", err)
	}

	query := db.Preload("Items", orderItems).
		Order("loan_date DESC").
		Order("created_at DESC")
	if filter.Paginated() {
		limit, offset := paginate(filter.Page, filter.PageSize)
		query = query.Limit(limit).Offset(offset)
	}
	err := query.Find(&dbModels).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list loans: %w", err)
	}

	return toLoanEntities(dbModels), total, nil
}

func (r *LoanRepository) ListByEquipment(ctx context.Context, equipmentID uuid.UUID) ([]*loan.Loan, error) {
	var dbModels []models.LoanModel
	err := r.db.DB.WithContext(ctx).
		Preload("Items", orderItems).
		Where("id IN (?)", r.db.DB.Model(&models.LoanItemModel{}).Select("loan_id").Where("equipment_id = ?", equipmentID)).
		Order("loan_date DESC").
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list equipment loans: %w", err)
	}

	return toLoanEntities(dbModels), nil
}

func orderItems(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

func lockLoan(tx *gorm.DB, loanID uuid.UUID) (*models.LoanModel, error) {
	var m models.LoanModel
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&m, "id = ?", loanID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, loan.ErrLoanNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock loan: %w", err)
	}
	return &m, nil
}

func loadItems(tx *gorm.DB, loanID uuid.UUID) ([]models.LoanItemModel, error) {
	var items []models.LoanItemModel
	if err := tx.Where("loan_id = ?", loanID).Order("position ASC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to load loan items: %w", err)
	}
	return items, nil
}

func insertItems(tx *gorm.DB, loanID uuid.UUID, items []loan.Item) error {
	if len(items) == 0 {
		return nil
	}
	rows := make([]models.LoanItemModel, len(items))
	for i := range items {
		items[i].LoanID = loanID
		rows[i] = *toItemModel(&items[i], i)
	}
	if err := tx.Create(&rows).Error; err != nil {
		return fmt.Errorf("failed to insert loan items: %w", err)
	}
	return nil
}

// claimAssets marks the item's equipment and chip as Loaned unless the item
// already records them as returned. Both rows are locked and must be Available.
func claimAssets(tx *gorm.DB, item *loan.Item, now time.Time) error {
	if item.HoldsEquipment() {
		var eq models.EquipmentModel
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id", "serial_number", "brand", "model", "status").
			First(&eq, "id = ?", item.EquipmentID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: %s", domainEquipment.ErrEquipmentNotFound, item.EquipmentID)
		}
		if err != nil {
			return fmt.Errorf("failed to lock equipment: %w", err)
		}
		if eq.Status != string(domainEquipment.StatusAvailable) {
			return fmt.Errorf("%w: %s is %s", domainEquipment.ErrEquipmentUnavailable, eq.SerialNumber, eq.Status)
		}
		if item.SerialNumber == "" {
			item.SerialNumber = eq.SerialNumber
		}
		if item.Description == "" {
			item.Description = describe(eq.Brand, eq.Model)
		}
		if err := setEquipmentStatus(tx, item.EquipmentID, domainEquipment.StatusLoaned, now); err != nil {
			return err
		}
	}

	if item.HoldsChip() {
		var c models.ChipModel
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id", "iccid", "status").
			First(&c, "id = ?", *item.ChipID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: %s", domainChip.ErrChipNotFound, *item.ChipID)
		}
		if err != nil {
			return fmt.Errorf("failed to lock chip: %w", err)
		}
		if c.Status != string(domainChip.StatusAvailable) {
			return fmt.Errorf("%w: %s is %s", domainChip.ErrChipUnavailable, c.ICCID, c.Status)
		}
		if err := setChipStatus(tx, *item.ChipID, domainChip.StatusLoaned, now); err != nil {
			return err
		}
	}

	return nil
}

// releaseAssets makes whatever the item still holds Available again.
func releaseAssets(tx *gorm.DB, item *loan.Item, now time.Time) error {
	if item.HoldsEquipment() {
		if err := setEquipmentStatus(tx, item.EquipmentID, domainEquipment.StatusAvailable, now); err != nil {
			return err
		}
	}
	if item.HoldsChip() {
		if err := setChipStatus(tx, *item.ChipID, domainChip.StatusAvailable, now); err != nil {
			return err
		}
	}
	return nil
}

func setEquipmentStatus(tx *gorm.DB, equipmentID uuid.UUID, status domainEquipment.Status, now time.Time) error {
	result := tx.Model(&models.EquipmentModel{}).
		Where("id = ?", equipmentID).
		Updates(map[string]interface{}{"status": string(status), "updated_at": now})
	if result.Error != nil {
		return fmt.Errorf("failed to update equipment status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", domainEquipment.ErrEquipmentNotFound, equipmentID)
	}
	return nil
}

func setChipStatus(tx *gorm.DB, chipID uuid.UUID, status domainChip.Status, now time.Time) error {
	result := tx.Model(&models.ChipModel{}).
		Where("id = ?", chipID).
		Updates(map[string]interface{}{"status": string(status), "updated_at": now})
	if result.Error != nil {
		return fmt.Errorf("failed to update chip status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", domainChip.ErrChipNotFound, chipID)
	}
	return nil
}

func describe(brand, model *string) string {
	var parts []string
	if brand != nil && *brand != "" {
		parts = append(parts, *brand)
	}
	if model != nil && *model != "" {
		parts = append(parts, *model)
	}
	return strings.Join(parts, " ")
}
