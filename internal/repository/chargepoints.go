package repository

import (
	"errors"
	"time"

	"github.com/evsuite/chargepoint-server/internal/models"
	"gorm.io/gorm"
)

// ChargePointRepository is the soft-delete data access layer for charge
// points. Visibility is always chosen by name: the Alive methods serve the
// public API, the All/Dead methods serve the administrative surface, and
// HardDelete is the only way a row is ever physically removed.
type ChargePointRepository struct {
	db *gorm.DB
}

func NewChargePointRepository(db *gorm.DB) *ChargePointRepository {
	return &ChargePointRepository{db: db}
}

func (r *ChargePointRepository) Create(cp *models.ChargePoint) error {
	return translateErr(r.db.Omit("Connectors").Create(cp).Error)
}

// Update persists field changes only; the preloaded connector association is
// read-only and never written back.
func (r *ChargePointRepository) Update(cp *models.ChargePoint) error {
	return translateErr(r.db.Omit("Connectors").Save(cp).Error)
}

// GetAlive fetches one alive charge point with its alive connectors
// preloaded. Absent or soft-deleted rows yield ErrNotFound.
func (r *ChargePointRepository) GetAlive(id uint) (*models.ChargePoint, error) {
	var cp models.ChargePoint
	err := r.db.Scopes(Alive).
		Preload("Connectors", "deleted_at IS NULL").
		First(&cp, id).Error
	if err != nil {
		return nil, translateErr(err)
	}
	return &cp, nil
}

// GetAny fetches one charge point regardless of delete state, with every
// connector preloaded.
func (r *ChargePointRepository) GetAny(id uint) (*models.ChargePoint, error) {
	var cp models.ChargePoint
	err := r.db.Preload("Connectors").First(&cp, id).Error
	if err != nil {
		return nil, translateErr(err)
	}
	return &cp, nil
}

func (r *ChargePointRepository) ListAlive(f ListFilter) ([]models.ChargePoint, int64, error) {
	return r.list(r.db.Scopes(Alive), f, true)
}

func (r *ChargePointRepository) ListDead(f ListFilter) ([]models.ChargePoint, int64, error) {
	return r.list(r.db.Scopes(Dead), f, false)
}

func (r *ChargePointRepository) ListAll(f ListFilter) ([]models.ChargePoint, int64, error) {
	return r.list(r.db, f, false)
}

func (r *ChargePointRepository) list(tx *gorm.DB, f ListFilter, aliveConnectors bool) ([]models.ChargePoint, int64, error) {
	q := tx.Model(&models.ChargePoint{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Search != "" {
		q = searchClause(q, "name", f.Search)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q = q.Order(orderClause(f.Ordering))
	if f.Limit > 0 {
		q = q.Offset(f.Offset).Limit(f.Limit)
	}
	if aliveConnectors {
		q = q.Preload("Connectors", "deleted_at IS NULL")
	} else {
		q = q.Preload("Connectors")
	}

	var cps []models.ChargePoint
	if err := q.Find(&cps).Error; err != nil {
		return nil, 0, err
	}
	return cps, total, nil
}

// SoftDelete marks the given charge points deleted. Rows that are already
// dead are left untouched, so re-applying is a no-op rather than an error.
// Every id must exist (in any state) or the call fails with ErrNotFound.
func (r *ChargePointRepository) SoftDelete(ids ...uint) (int64, error) {
	var affected int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := requireAll(tx, &models.ChargePoint{}, ids); err != nil {
			return err
		}
		res := tx.Model(&models.ChargePoint{}).Scopes(Alive).
			Where("id IN ?", uniqueIDs(ids)).
			Update("deleted_at", time.Now().UTC())
		affected = res.RowsAffected
		return res.Error
	})
	return affected, err
}

// Restore clears the delete mark on the given charge points.
func (r *ChargePointRepository) Restore(ids ...uint) (int64, error) {
	var affected int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := requireAll(tx, &models.ChargePoint{}, ids); err != nil {
			return err
		}
		res := tx.Model(&models.ChargePoint{}).Scopes(Dead).
			Where("id IN ?", uniqueIDs(ids)).
			Update("deleted_at", nil)
		affected = res.RowsAffected
		return res.Error
	})
	return affected, err
}

// HardDelete physically removes the given charge points and their
// connectors. Irreversible; both deletes commit or roll back together.
func (r *ChargePointRepository) HardDelete(ids ...uint) (int64, error) {
	var affected int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := requireAll(tx, &models.ChargePoint{}, ids); err != nil {
			return err
		}
		if err := tx.Where("charge_point_id IN ?", uniqueIDs(ids)).
			Delete(&models.Connector{}).Error; err != nil {
			return err
		}
		res := tx.Where("id IN ?", uniqueIDs(ids)).Delete(&models.ChargePoint{})
		affected = res.RowsAffected
		return res.Error
	})
	return affected, err
}

// requireAll verifies every id references an existing row of the given
// model, in any delete state.
func requireAll(tx *gorm.DB, model interface{}, ids []uint) error {
	distinct := uniqueIDs(ids)
	if len(distinct) == 0 {
		return ErrNotFound
	}
	var n int64
	if err := tx.Model(model).Where("id IN ?", distinct).Count(&n).Error; err != nil {
		return err
	}
	if n != int64(len(distinct)) {
		return ErrNotFound
	}
	return nil
}

func translateErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	default:
		return err
	}
}
