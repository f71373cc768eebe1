package postgres_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"electrotrack/internal/domain/audit"
	"electrotrack/internal/domain/chip"
	"electrotrack/internal/domain/equipment"
	"electrotrack/internal/domain/loan"
	"electrotrack/internal/infrastructure/database/postgres"
	"electrotrack/internal/testutil"
)

type lifecycleFixture struct {
	db        *postgres.DB
	equipment equipment.Repository
	chips     chip.Repository
	loans     loan.Repository
	audit     audit.Repository
}

func newLifecycleFixture(t *testing.T) *lifecycleFixture {
	db := testutil.NewDB(t)
	return &lifecycleFixture{
		db:        db,
		equipment: postgres.NewEquipmentRepository(db),
		chips:     postgres.NewChipRepository(db),
		loans:     postgres.NewLoanRepository(db),
		audit:     postgres.NewAuditRepository(db),
	}
}

func (f *lifecycleFixture) addEquipment(t *testing.T, serial string) *equipment.Equipment {
	t.Helper()
	brand, model := "Dell", "Latitude 5420"
	e := &equipment.Equipment{
		SerialNumber: serial,
		Category:     "Laptop",
		Brand:        &brand,
		Model:        &model,
		Condition:    equipment.ConditionExcellent,
	}
	require.NoError(t, f.equipment.Create(context.Background(), e))
	return e
}

func (f *lifecycleFixture) addChip(t *testing.T, iccid string) *chip.Chip {
	t.Helper()
	c := &chip.Chip{ICCID: iccid}
	require.NoError(t, f.chips.Create(context.Background(), c))
	return c
}

func (f *lifecycleFixture) equipmentStatus(t *testing.T, id uuid.UUID) equipment.Status {
	t.Helper()
	e, err := f.equipment.GetByID(context.Background(), id)
	require.NoError(t, err)
	return e.Status
}

func (f *lifecycleFixture) chipStatus(t *testing.T, id uuid.UUID) chip.Status {
	t.Helper()
	c, err := f.chips.GetByID(context.Background(), id)
	require.NoError(t, err)
	return c.Status
}

func newLoan(items ...loan.Item) *loan.Loan {
	return &loan.Loan{
		Requester:         loan.Person{FullName: "Ana Quispe", NationalID: "4455667"},
		Deliverer:         loan.Person{FullName: "Luis Mamani"},
		Mission:           loan.Mission{Destination: "Oruro", Justification: "Inventario regional"},
		Signatures:        loan.Signatures{Requester: "iVBORw0KGgo="},
		LiabilityAccepted: true,
		Items:             items,
	}
}

func no() *string { s := "No"; return &s }

func cond(c equipment.Condition) *equipment.Condition { return &c }

func TestLoanCreateMarksAssetsLoaned(t *testing.T) {
	ctx := context.Background()
	f := newLifecycleFixture(t)
	e1 := f.addEquipment(t, "SN-E1")
	e2 := f.addEquipment(t, "SN-E2")
	c1 := f.addChip(t, "8988169000000000001")

	l := newLoan(
		loan.Item{EquipmentID: e1.ID, ExitCondition: equipment.ConditionExcellent, Accessories: []string{"Cargador"}},
		loan.Item{EquipmentID: e2.ID, ChipID: &c1.ID, ExitCondition: equipment.ConditionGood},
	)
	require.NoError(t, f.loans.Create(ctx, l, "operador"))

	assert.Equal(t, equipment.StatusLoaned, f.equipmentStatus(t, e1.ID))
	assert.Equal(t, equipment.StatusLoaned, f.equipmentStatus(t, e2.ID))
	assert.Equal(t, chip.StatusLoaned, f.chipStatus(t, c1.ID))

	stored, err := f.loans.GetByID(ctx, l.ID)
	require.NoError(t, err)
	assert.Equal(t, loan.StatusActive, stored.Status)
	assert.Regexp(t, `^PR-\d{8}-[0-9A-F]{6}$`, stored.OrderID)
	assert.Equal(t, "Ana Quispe", stored.Requester.FullName)
	assert.Equal(t, "Oruro", stored.Mission.Destination)
	assert.Nil(t, stored.ReturnInfo)
	require.Len(t, stored.Items, 2)
	assert.Equal(t, e1.ID, stored.Items[0].EquipmentID)
	assert.Equal(t, "SN-E1", stored.Items[0].SerialNumber)
	assert.Equal(t, "Dell Latitude 5420", stored.Items[0].Description)
	assert.Equal(t, []string{"Cargador"}, stored.Items[0].Accessories)
	assert.Nil(t, stored.Items[0].ReturnAccessories)
	assert.Nil(t, stored.Items[0].ReturnCondition)
	assert.False(t, stored.Items[1].IsDeviceReturned)

	entries, total, err := f.audit.List(ctx, &audit.Filter{Entity: audit.EntityLoan, EntityID: &l.ID})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, audit.ActionCreate, entries[0].Action)
	assert.Equal(t, "operador", entries[0].Actor)
}

func TestLoanCreateRejectsUnavailableEquipmentAtomically(t *testing.T) {
	ctx := context.Background()
	f := newLifecycleFixture(t)
	free := f.addEquipment(t, "SN-FREE")
	busy := f.addEquipment(t, "SN-BUSY")
	require.NoError(t, f.equipment.UpdateStatus(ctx, busy.ID, equipment.StatusMaintenance))

	err := f.loans.Create(ctx, newLoan(loan.Item{EquipmentID: free.ID}, loan.Item{EquipmentID: busy.ID}), "operador")
	assert.ErrorIs(t, err, equipment.ErrEquipmentUnavailable)

	assert.Equal(t, equipment.StatusAvailable, f.equipmentStatus(t, free.ID), "no partial loan may remain")
	loans, total, err := f.loans.List(ctx, &loan.Filter{})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, loans)
}

func TestLoanCreateUnknownAssets(t *testing.T) {
	ctx := context.Background()
	f := newLifecycleFixture(t)
	e := f.addEquipment(t, "SN-1")
	missingChip := uuid.New()

	err := f.loans.Create(ctx, newLoan(loan.Item{EquipmentID: uuid.New()}), "operador")
	assert.ErrorIs(t, err, equipment.ErrEquipmentNotFound)

	err = f.loans.Create(ctx, newLoan(loan.Item{EquipmentID: e.ID, ChipID: &missingChip}), "operador")
	assert.ErrorIs(t, err, chip.ErrChipNotFound)
	assert.Equal(t, equipment.StatusAvailable, f.equipmentStatus(t, e.ID))
}

func TestLoanCreateRejectsChipOnAnotherLoan(t *testing.T) {
	ctx := context.Background()
	f := newLifecycleFixture(t)
	e1 := f.addEquipment(t, "SN-1")
	e2 := f.addEquipment(t, "SN-2")
	c := f.addChip(t, "8988169000000000002")

	require.NoError(t, f.loans.Create(ctx, newLoan(loan.Item{EquipmentID: e1.ID, ChipID: &c.ID}), "operador"))

	err := f.loans.Create(ctx, newLoan(loan.Item{EquipmentID: e2.ID, ChipID: &c.ID}), "operador")
	assert.ErrorIs(t, err, chip.ErrChipUnavailable)
	assert.Equal(t, equipment.StatusAvailable, f.equipmentStatus(t, e2.ID))
}

func TestLoanFullReturnScenario(t *testing.T) {
	ctx := context.Background()
	f := newLifecycleFixture(t)
	e1 := f.addEquipment(t, "SN-E1")

	l1 := newLoan(loan.Item{EquipmentID: e1.ID, ExitCondition: equipment.ConditionExcellent})
	require.NoError(t, f.loans.Create(ctx, l1, "operador"))
	assert.Equal(t, equipment.StatusLoaned, f.equipmentStatus(t, e1.ID))

	returnedAt := time.Now().UTC().Truncate(time.Second)
	got, outcome, err := f.loans.Return(ctx, l1.ID, &loan.ReturnRequest{
		Items: []loan.ItemReturn{{
			EquipmentID:         e1.ID,
			ReturnCondition:     cond(equipment.ConditionGood),
			RequiresMaintenance: no(),
			IsDeviceReturned:    true,
		}},
		ReturnInfo: &loan.ReturnInfo{ReturnDate: &returnedAt, ReceivedBy: "Luis Mamani"},
		Signatures: &loan.Signatures{ReturnReceiver: "cmV0"},
	}, "operador")
	require.NoError(t, err)

	assert.Equal(t, loan.ReturnOutcomeComplete, outcome)
	assert.Equal(t, loan.StatusReturned, got.Status)
	assert.Equal(t, equipment.StatusAvailable, f.equipmentStatus(t, e1.ID))
	require.NotNil(t, got.ReturnInfo)
	assert.Equal(t, "Luis Mamani", got.ReturnInfo.ReceivedBy)
	assert.Equal(t, "iVBORw0KGgo=", got.Signatures.Requester, "signatures are merged")
	assert.Equal(t, "cmV0", got.Signatures.ReturnReceiver)
	assert.Equal(t, []string{}, got.Items[0].ReturnAccessories)
}

func TestLoanPartialReturnScenario(t *testing.T) {
	ctx := context.Background()
	f := newLifecycleFixture(t)
	e2 := f.addEquipment(t, "SN-E2")
	e3 := f.addEquipment(t, "SN-E3")
	c1 := f.addChip(t, "8988169000000000003")

	l2 := newLoan(loan.Item{EquipmentID: e2.ID, ChipID: &c1.ID}, loan.Item{EquipmentID: e3.ID})
	require.NoError(t, f.loans.Create(ctx, l2, "operador"))

	got, outcome, err := f.loans.Return(ctx, l2.ID, &loan.ReturnRequest{
		Items: []loan.ItemReturn{
			{EquipmentID: e2.ID, ReturnCondition: cond(equipment.ConditionGood), RequiresMaintenance: no(), IsDeviceReturned: true, IsChipReturned: true},
			{EquipmentID: e3.ID, IsDeviceReturned: false},
		},
	}, "operador")
	require.NoError(t, err)

	assert.Equal(t, loan.ReturnOutcomePartial, outcome)
	assert.Equal(t, loan.StatusActive, got.Status)
	assert.Equal(t, equipment.StatusAvailable, f.equipmentStatus(t, e2.ID))
	assert.Equal(t, chip.StatusAvailable, f.chipStatus(t, c1.ID))
	assert.Equal(t, equipment.StatusLoaned, f.equipmentStatus(t, e3.ID))

	got, outcome, err = f.loans.Return(ctx, l2.ID, &loan.ReturnRequest{
		Items: []loan.ItemReturn{{EquipmentID: e3.ID, ReturnCondition: cond(equipment.ConditionGood), RequiresMaintenance: no(), IsDeviceReturned: true}},
	}, "operador")
	require.NoError(t, err)
	assert.Equal(t, loan.ReturnOutcomeComplete, outcome)
	assert.Equal(t, loan.StatusReturned, got.Status)
	assert.Equal(t, equipment.StatusAvailable, f.equipmentStatus(t, e3.ID))
}

func TestLoanReturnWithPendingChipStaysActive(t *testing.T) {
	ctx := context.Background()
	f := newLifecycleFixture(t)
	e := f.addEquipment(t, "SN-1")
	c := f.addChip(t, "8988169000000000004")

	l := newLoan(loan.Item{EquipmentID: e.ID, ChipID: &c.ID})
	require.NoError(t, f.loans.Create(ctx, l, "operador"))

	got, outcome, err := f.loans.Return(ctx, l.ID, &loan.ReturnRequest{
		Items: []loan.ItemReturn{{EquipmentID: e.ID, RequiresMaintenance: no(), IsDeviceReturned: true}},
	}, "operador")
	require.NoError(t, err)

	assert.Equal(t, loan.ReturnOutcomePartial, outcome)
	assert.Equal(t, loan.StatusActive, got.Status)
	assert.Equal(t, chip.StatusLoaned, f.chipStatus(t, c.ID))
}

func TestLoanDamagedReturnGoesToMaintenance(t *testing.T) {
	ctx := context.Background()
	f := newLifecycleFixture(t)
	e := f.addEquipment(t, "SN-1")

	l := newLoan(loan.Item{EquipmentID: e.ID})
	require.NoError(t, f.loans.Create(ctx, l, "operador"))

	_, _, err := f.loans.Return(ctx, l.ID, &loan.ReturnRequest{
		Items: []loan.ItemReturn{{EquipmentID: e.ID, ReturnCondition: cond(equipment.ConditionDamaged), RequiresMaintenance: no(), IsDeviceReturned: true}},
	}, "operador")
	require.NoError(t, err)

	assert.Equal(t, equipment.StatusMaintenance, f.equipmentStatus(t, e.ID))
}

func TestLoanReturnTwiceIsIdempotent(t *testing.T) {
	ctx := context.Background()
	f := newLifecycleFixture(t)
	e := f.addEquipment(t, "SN-1")

	l := newLoan(loan.Item{EquipmentID: e.ID})
	require.NoError(t, f.loans.Create(ctx, l, "operador"))

	payload := &loan.ReturnRequest{
		Items: []loan.ItemReturn{{EquipmentID: e.ID, ReturnCondition: cond(equipment.ConditionGood), RequiresMaintenance: no(), IsDeviceReturned: true}},
	}
	first, _, err := f.loans.Return(ctx, l.ID, payload, "operador")
	require.NoError(t, err)

	// The equipment goes out again on another loan; repeating the return must not free it.
	require.NoError(t, f.loans.Create(ctx, newLoan(loan.Item{EquipmentID: e.ID}), "operador"))

	second, outcome, err := f.loans.Return(ctx, l.ID, payload, "operador")
	require.NoError(t, err)
	assert.Equal(t, loan.ReturnOutcomeAlreadyReturned, outcome)
	assert.Equal(t, loan.StatusReturned, second.Status)
	assert.Equal(t, first.UpdatedAt, second.UpdatedAt)
	assert.Equal(t, equipment.StatusLoaned, f.equipmentStatus(t, e.ID))
}

func TestLoanReturnErrors(t *testing.T) {
	ctx := context.Background()
	f := newLifecycleFixture(t)
	e := f.addEquipment(t, "SN-1")

	_, _, err := f.loans.Return(ctx, uuid.New(), &loan.ReturnRequest{}, "operador")
	assert.ErrorIs(t, err, loan.ErrLoanNotFound)

	l := newLoan(loan.Item{EquipmentID: e.ID})
	require.NoError(t, f.loans.Create(ctx, l, "operador"))

	_, _, err = f.loans.Return(ctx, l.ID, &loan.ReturnRequest{
		Items: []loan.ItemReturn{{EquipmentID: uuid.New(), IsDeviceReturned: true}},
	}, "operador")
	assert.ErrorIs(t, err, loan.ErrItemNotInLoan)
	assert.Equal(t, equipment.StatusLoaned, f.equipmentStatus(t, e.ID))

	_, err = f.loans.Cancel(ctx, l.ID, "operador")
	require.NoError(t, err)
	_, _, err = f.loans.Return(ctx, l.ID, &loan.ReturnRequest{}, "operador")
	assert.ErrorIs(t, err, loan.ErrLoanCancelled)
}

func TestLoanEditReleasesDroppedItems(t *testing.T) {
	ctx := context.Background()
	f := newLifecycleFixture(t)
	e1 := f.addEquipment(t, "SN-1")
	e2 := f.addEquipment(t, "SN-2")
	e3 := f.addEquipment(t, "SN-3")
	c1 := f.addChip(t, "8988169000000000005")

	l := newLoan(loan.Item{EquipmentID: e1.ID, ChipID: &c1.ID}, loan.Item{EquipmentID: e2.ID})
	require.NoError(t, f.loans.Create(ctx, l, "operador"))

	edited := newLoan(loan.Item{EquipmentID: e2.ID}, loan.Item{EquipmentID: e3.ID})
	edited.ID = l.ID
	edited.Requester.FullName = "Ana Quispe Mamani"
	require.NoError(t, f.loans.Update(ctx, edited, "operador"))

	assert.Equal(t, equipment.StatusAvailable, f.equipmentStatus(t, e1.ID))
	assert.Equal(t, chip.StatusAvailable, f.chipStatus(t, c1.ID))
	assert.Equal(t, equipment.StatusLoaned, f.equipmentStatus(t, e2.ID), "kept item is re-claimed")
	assert.Equal(t, equipment.StatusLoaned, f.equipmentStatus(t, e3.ID))

	stored, err := f.loans.GetByID(ctx, l.ID)
	require.NoError(t, err)
	assert.Equal(t, l.OrderID, stored.OrderID)
	assert.Equal(t, "Ana Quispe Mamani", stored.Requester.FullName)
	assert.Equal(t, loan.StatusActive, stored.Status)
	require.Len(t, stored.Items, 2)
	assert.Equal(t, e2.ID, stored.Items[0].EquipmentID)
	assert.Equal(t, e3.ID, stored.Items[1].EquipmentID)
}

func TestLoanEditMarkedReturnedIsNotReclaimed(t *testing.T) {
	ctx := context.Background()
	f := newLifecycleFixture(t)
	e1 := f.addEquipment(t, "SN-1")
	e2 := f.addEquipment(t, "SN-2")

	l := newLoan(loan.Item{EquipmentID: e1.ID}, loan.Item{EquipmentID: e2.ID})
	require.NoError(t, f.loans.Create(ctx, l, "operador"))

	edited := newLoan(loan.Item{EquipmentID: e1.ID, IsDeviceReturned: true}, loan.Item{EquipmentID: e2.ID})
	edited.ID = l.ID
	require.NoError(t, f.loans.Update(ctx, edited, "operador"))

	assert.Equal(t, equipment.StatusAvailable, f.equipmentStatus(t, e1.ID))
	assert.Equal(t, equipment.StatusLoaned, f.equipmentStatus(t, e2.ID))
}

func TestLoanEditRejectsAssetOfAnotherLoan(t *testing.T) {
	ctx := context.Background()
	f := newLifecycleFixture(t)
	e1 := f.addEquipment(t, "SN-1")
	other := f.addEquipment(t, "SN-OTHER")

	l := newLoan(loan.Item{EquipmentID: e1.ID})
	require.NoError(t, f.loans.Create(ctx, l, "operador"))
	require.NoError(t, f.loans.Create(ctx, newLoan(loan.Item{EquipmentID: other.ID}), "operador"))

	edited := newLoan(loan.Item{EquipmentID: e1.ID}, loan.Item{EquipmentID: other.ID})
	edited.ID = l.ID
	err := f.loans.Update(ctx, edited, "operador")
	assert.ErrorIs(t, err, equipment.ErrEquipmentUnavailable)

	stored, err := f.loans.GetByID(ctx, l.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Items, 1, "failed edit is rolled back")
	assert.Equal(t, equipment.StatusLoaned, f.equipmentStatus(t, e1.ID))
}

func TestLoanEditRequiresActiveLoan(t *testing.T) {
	ctx := context.Background()
	f := newLifecycleFixture(t)
	e := f.addEquipment(t, "SN-1")

	missing := newLoan(loan.Item{EquipmentID: e.ID})
	missing.ID = uuid.New()
	assert.ErrorIs(t, f.loans.Update(ctx, missing, "operador"), loan.ErrLoanNotFound)

	l := newLoan(loan.Item{EquipmentID: e.ID})
	require.NoError(t, f.loans.Create(ctx, l, "operador"))
	_, _, err := f.loans.Return(ctx, l.ID, &loan.ReturnRequest{
		Items: []loan.ItemReturn{{EquipmentID: e.ID, RequiresMaintenance: no(), IsDeviceReturned: true}},
	}, "operador")
	require.NoError(t, err)

	edited := newLoan(loan.Item{EquipmentID: e.ID})
	edited.ID = l.ID
	assert.ErrorIs(t, f.loans.Update(ctx, edited, "operador"), loan.ErrLoanNotActive)
	assert.Equal(t, equipment.StatusAvailable, f.equipmentStatus(t, e.ID))
}

func TestLoanCancelReleasesAssets(t *testing.T) {
	ctx := context.Background()
	f := newLifecycleFixture(t)
	e := f.addEquipment(t, "SN-1")
	c := f.addChip(t, "8988169000000000006")

	l := newLoan(loan.Item{EquipmentID: e.ID, ChipID: &c.ID})
	require.NoError(t, f.loans.Create(ctx, l, "operador"))

	got, err := f.loans.Cancel(ctx, l.ID, "admin")
	require.NoError(t, err)
	assert.Equal(t, loan.StatusCancelled, got.Status)
	assert.Equal(t, equipment.StatusAvailable, f.equipmentStatus(t, e.ID))
	assert.Equal(t, chip.StatusAvailable, f.chipStatus(t, c.ID))

	_, err = f.loans.Cancel(ctx, l.ID, "admin")
	assert.ErrorIs(t, err, loan.ErrLoanNotActive)
}

func TestLoanCancelRefusedAfterPartialReturn(t *testing.T) {
	ctx := context.Background()
	f := newLifecycleFixture(t)
	e1 := f.addEquipment(t, "SN-1")
	e2 := f.addEquipment(t, "SN-2")

	l := newLoan(loan.Item{EquipmentID: e1.ID}, loan.Item{EquipmentID: e2.ID})
	require.NoError(t, f.loans.Create(ctx, l, "operador"))
	_, _, err := f.loans.Return(ctx, l.ID, &loan.ReturnRequest{
		Items: []loan.ItemReturn{{EquipmentID: e1.ID, RequiresMaintenance: no(), IsDeviceReturned: true}},
	}, "operador")
	require.NoError(t, err)

	_, err = f.loans.Cancel(ctx, l.ID, "admin")
	assert.ErrorIs(t, err, loan.ErrLoanHasReturns)
	assert.Equal(t, equipment.StatusLoaned, f.equipmentStatus(t, e2.ID))
}

func TestLoanListAndHistory(t *testing.T) {
	ctx := context.Background()
	f := newLifecycleFixture(t)
	e1 := f.addEquipment(t, "SN-1")
	e2 := f.addEquipment(t, "SN-2")

	first := newLoan(loan.Item{EquipmentID: e1.ID})
	first.LoanDate = time.Now().Add(-48 * time.Hour)
	require.NoError(t, f.loans.Create(ctx, first, "operador"))
	_, _, err := f.loans.Return(ctx, first.ID, &loan.ReturnRequest{
		Items: []loan.ItemReturn{{EquipmentID: e1.ID, RequiresMaintenance: no(), IsDeviceReturned: true}},
	}, "operador")
	require.NoError(t, err)

	second := newLoan(loan.Item{EquipmentID: e1.ID}, loan.Item{EquipmentID: e2.ID})
	require.NoError(t, f.loans.Create(ctx, second, "operador"))

	all, total, err := f.loans.List(ctx, &loan.Filter{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Equal(t, second.ID, all[0].ID, "newest first")
	assert.Len(t, all[0].Items, 2)

	active := loan.StatusActive
	onlyActive, total, err := f.loans.List(ctx, &loan.Filter{Status: &active})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, second.ID, onlyActive[0].ID)

	history, err := f.loans.ListByEquipment(ctx, e1.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, second.ID, history[0].ID)

	history, err = f.loans.ListByEquipment(ctx, e2.ID)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestLoanListWithoutPageReturnsEverything(t *testing.T) {
	ctx := context.Background()
	f := newLifecycleFixture(t)

	for i := 0; i < 25; i++ {
		e := f.addEquipment(t, fmt.Sprintf("SN-%02d", i))
		require.NoError(t, f.loans.Create(ctx, newLoan(loan.Item{EquipmentID: e.ID}), "operador"))
	}

	all, total, err := f.loans.List(ctx, &loan.Filter{})
	require.NoError(t, err)
	assert.EqualValues(t, 25, total)
	assert.Len(t, all, 25)

	page, total, err := f.loans.List(ctx, &loan.Filter{Page: 3, PageSize: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 25, total)
	assert.Len(t, page, 5)

	firstPage, _, err := f.loans.List(ctx, &loan.Filter{Page: 1})
	require.NoError(t, err)
	assert.Len(t, firstPage, 20)
}

func TestLoanRepeatedItemReturnKeepsFirstReturnData(t *testing.T) {
	ctx := context.Background()
	f := newLifecycleFixture(t)
	e1 := f.addEquipment(t, "SN-1")
	e2 := f.addEquipment(t, "SN-2")

	l := newLoan(loan.Item{EquipmentID: e1.ID}, loan.Item{EquipmentID: e2.ID})
	require.NoError(t, f.loans.Create(ctx, l, "operador"))

	_, _, err := f.loans.Return(ctx, l.ID, &loan.ReturnRequest{
		Items: []loan.ItemReturn{{EquipmentID: e1.ID, ReturnCondition: cond(equipment.ConditionDamaged), IsDeviceReturned: true}},
	}, "operador")
	require.NoError(t, err)

	got, outcome, err := f.loans.Return(ctx, l.ID, &loan.ReturnRequest{
		Items: []loan.ItemReturn{{EquipmentID: e1.ID, ReturnCondition: cond(equipment.ConditionExcellent), RequiresMaintenance: no(), IsDeviceReturned: true}},
	}, "operador")
	require.NoError(t, err)

	assert.Equal(t, loan.ReturnOutcomePartial, outcome)
	require.NotNil(t, got.Items[0].ReturnCondition)
	assert.Equal(t, equipment.ConditionDamaged, *got.Items[0].ReturnCondition)
	assert.Nil(t, got.Items[0].RequiresMaintenance)
	assert.Equal(t, equipment.StatusMaintenance, f.equipmentStatus(t, e1.ID))
}
