package repository

import (
	"testing"
	"time"

	"github.com/evsuite/chargepoint-server/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	// A single connection keeps every query on the same in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.ChargePoint{}, &models.Connector{}))
	return db
}

func createChargePoint(t *testing.T, r *ChargePointRepository, name string, status models.Status) *models.ChargePoint {
	t.Helper()
	cp := &models.ChargePoint{Name: name, Status: status}
	require.NoError(t, r.Create(cp))
	return cp
}

func TestAliveDeadAllScopes(t *testing.T) {
	db := newTestDB(t)
	r := NewChargePointRepository(db)

	cp1 := createChargePoint(t, r, "CP-001", models.StatusReady)
	cp2 := createChargePoint(t, r, "CP-002", models.StatusCharging)
	createChargePoint(t, r, "CP-003", models.StatusReady)

	_, err := r.SoftDelete(cp1.ID)
	require.NoError(t, err)

	alive, total, err := r.ListAlive(ListFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, alive, 2)
	for _, cp := range alive {
		assert.Nil(t, cp.DeletedAt)
		assert.NotEqual(t, cp1.ID, cp.ID)
	}

	dead, total, err := r.ListDead(ListFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, dead, 1)
	assert.Equal(t, cp1.ID, dead[0].ID)
	assert.NotNil(t, dead[0].DeletedAt)

	all, total, err := r.ListAll(ListFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, all, 3)

	// soft-deleted rows disappear from the default single lookup too
	_, err = r.GetAlive(cp1.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	got, err := r.GetAny(cp1.ID)
	require.NoError(t, err)
	assert.NotNil(t, got.DeletedAt)

	_, err = r.GetAlive(cp2.ID)
	assert.NoError(t, err)
}

func TestSoftDeleteIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	r := NewChargePointRepository(db)
	cp := createChargePoint(t, r, "CP-001", models.StatusReady)

	affected, err := r.SoftDelete(cp.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, affected)

	first, err := r.GetAny(cp.ID)
	require.NoError(t, err)
	require.NotNil(t, first.DeletedAt)

	// second application is a no-op, not an error
	affected, err = r.SoftDelete(cp.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, affected)

	again, err := r.GetAny(cp.ID)
	require.NoError(t, err)
	assert.Equal(t, first.DeletedAt.Unix(), again.DeletedAt.Unix())
}

func TestRestore(t *testing.T) {
	db := newTestDB(t)
	r := NewChargePointRepository(db)
	cp := createChargePoint(t, r, "CP-001", models.StatusReady)

	_, err := r.SoftDelete(cp.ID)
	require.NoError(t, err)
	_, err = r.GetAlive(cp.ID)
	require.ErrorIs(t, err, ErrNotFound)

	affected, err := r.Restore(cp.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, affected)

	got, err := r.GetAlive(cp.ID)
	require.NoError(t, err)
	assert.Nil(t, got.DeletedAt)
}

func TestHardDeleteCascadesToConnectors(t *testing.T) {
	db := newTestDB(t)
	r := NewChargePointRepository(db)
	connectors := NewConnectorRepository(db)

	cp := createChargePoint(t, r, "CP-001", models.StatusReady)
	for _, evse := range []string{"EVSE-001-00", "EVSE-001-01"} {
		require.NoError(t, connectors.Create(&models.Connector{
			EVSENumber:    evse,
			ChargePointID: cp.ID,
		}))
	}

	affected, err := r.HardDelete(cp.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, affected)

	// gone from the administrative scope as well
	_, err = r.GetAny(cp.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, total, err := connectors.ListAll(ListFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 0, total)
}

func TestOperationsOnMissingIDsReturnNotFound(t *testing.T) {
	db := newTestDB(t)
	r := NewChargePointRepository(db)
	cp := createChargePoint(t, r, "CP-001", models.StatusReady)

	_, err := r.SoftDelete(9999)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = r.Restore(9999)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = r.HardDelete(9999)
	assert.ErrorIs(t, err, ErrNotFound)

	// one known id mixed with an unknown one still fails, and the known row
	// is left untouched
	_, err = r.SoftDelete(cp.ID, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
	got, err := r.GetAlive(cp.ID)
	require.NoError(t, err)
	assert.Nil(t, got.DeletedAt)

	_, err = r.GetAlive(9999)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = r.GetAny(9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNameUniqueAcrossDeleteStates(t *testing.T) {
	db := newTestDB(t)
	r := NewChargePointRepository(db)
	cp := createChargePoint(t, r, "CP-001", models.StatusReady)

	err := r.Create(&models.ChargePoint{Name: "CP-001", Status: models.StatusReady})
	assert.ErrorIs(t, err, ErrDuplicate)

	// a soft-deleted row keeps occupying the name
	_, err = r.SoftDelete(cp.ID)
	require.NoError(t, err)
	err = r.Create(&models.ChargePoint{Name: "CP-001", Status: models.StatusReady})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestListFilterSearchOrdering(t *testing.T) {
	db := newTestDB(t)
	r := NewChargePointRepository(db)

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	rows := []models.ChargePoint{
		{Name: "AA-READY", Status: models.StatusReady, CreatedAt: base},
		{Name: "MM-MID", Status: models.StatusWaiting, CreatedAt: base.Add(time.Hour)},
		{Name: "ZZ-CHARG", Status: models.StatusCharging, CreatedAt: base.Add(2 * time.Hour)},
	}
	for i := range rows {
		require.NoError(t, r.Create(&rows[i]))
	}

	byStatus, _, err := r.ListAlive(ListFilter{Status: "ready"})
	require.NoError(t, err)
	require.Len(t, byStatus, 1)
	assert.Equal(t, "AA-READY", byStatus[0].Name)

	// case-insensitive containment
	bySearch, _, err := r.ListAlive(ListFilter{Search: "aa-rea"})
	require.NoError(t, err)
	require.Len(t, bySearch, 1)
	assert.Equal(t, "AA-READY", bySearch[0].Name)

	asc, _, err := r.ListAlive(ListFilter{Ordering: "name"})
	require.NoError(t, err)
	assert.Equal(t, []string{"AA-READY", "MM-MID", "ZZ-CHARG"}, names(asc))

	desc, _, err := r.ListAlive(ListFilter{Ordering: "-created_at"})
	require.NoError(t, err)
	assert.Equal(t, []string{"ZZ-CHARG", "MM-MID", "AA-READY"}, names(desc))

	// unknown ordering falls back to id
	fallback, _, err := r.ListAlive(ListFilter{Ordering: "nonsense"})
	require.NoError(t, err)
	assert.Equal(t, []string{"AA-READY", "MM-MID", "ZZ-CHARG"}, names(fallback))
}

func TestSearchTreatsLikeMetacharactersLiterally(t *testing.T) {
	db := newTestDB(t)
	r := NewChargePointRepository(db)

	createChargePoint(t, r, "CP-001", models.StatusReady)
	createChargePoint(t, r, "CP-002", models.StatusReady)
	createChargePoint(t, r, "CP_3", models.StatusReady)
	createChargePoint(t, r, "CP%4", models.StatusReady)

	// a bare wildcard must not match everything
	got, total, err := r.ListAlive(ListFilter{Search: "%"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, []string{"CP%4"}, names(got))

	// "_" is a literal underscore, not a single-character wildcard
	got, total, err = r.ListAlive(ListFilter{Search: "CP_"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, []string{"CP_3"}, names(got))

	got, total, err = r.ListAlive(ListFilter{Search: `\`})
	require.NoError(t, err)
	assert.EqualValues(t, 0, total)
	assert.Empty(t, got)
}

func TestListPagination(t *testing.T) {
	db := newTestDB(t)
	r := NewChargePointRepository(db)
	for i := 0; i < 12; i++ {
		createChargePoint(t, r, "CP-"+string(rune('A'+i)), models.StatusReady)
	}

	page1, total, err := r.ListAlive(ListFilter{Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 12, total)
	assert.Len(t, page1, 10)

	page2, total, err := r.ListAlive(ListFilter{Offset: 10, Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 12, total)
	assert.Len(t, page2, 2)
}

func names(cps []models.ChargePoint) []string {
	out := make([]string, len(cps))
	for i, cp := range cps {
		out[i] = cp.Name
	}
	return out
}
