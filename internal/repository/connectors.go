package repository

import (
	"time"

	"github.com/evsuite/chargepoint-server/internal/models"
	"gorm.io/gorm"
)

// ConnectorRepository mirrors the charge point repository for connectors.
// Connectors have no public write path; this is exercised by the admin
// surface and the seeder.
type ConnectorRepository struct {
	db *gorm.DB
}

func NewConnectorRepository(db *gorm.DB) *ConnectorRepository {
	return &ConnectorRepository{db: db}
}

func (r *ConnectorRepository) Create(cn *models.Connector) error {
	return translateErr(r.db.Create(cn).Error)
}

func (r *ConnectorRepository) GetAny(id uint) (*models.Connector, error) {
	var cn models.Connector
	if err := r.db.First(&cn, id).Error; err != nil {
		return nil, translateErr(err)
	}
	return &cn, nil
}

func (r *ConnectorRepository) ListAlive(f ListFilter) ([]models.Connector, int64, error) {
	return r.list(r.db.Scopes(Alive), f)
}

func (r *ConnectorRepository) ListDead(f ListFilter) ([]models.Connector, int64, error) {
	return r.list(r.db.Scopes(Dead), f)
}

func (r *ConnectorRepository) ListAll(f ListFilter) ([]models.Connector, int64, error) {
	return r.list(r.db, f)
}

func (r *ConnectorRepository) list(tx *gorm.DB, f ListFilter) ([]models.Connector, int64, error) {
	q := tx.Model(&models.Connector{})
	if f.Search != "" {
		q = searchClause(q, "evse_number", f.Search)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q = q.Order(connectorOrderClause(f.Ordering))
	if f.Limit > 0 {
		q = q.Offset(f.Offset).Limit(f.Limit)
	}

	var cns []models.Connector
	if err := q.Find(&cns).Error; err != nil {
		return nil, 0, err
	}
	return cns, total, nil
}

func connectorOrderClause(ordering string) string {
	switch ordering {
	case "evse_number":
		return "evse_number"
	case "-evse_number":
		return "evse_number DESC"
	case "created_at":
		return "created_at"
	case "-created_at":
		return "created_at DESC"
	default:
		return "id"
	}
}

func (r *ConnectorRepository) SoftDelete(ids ...uint) (int64, error) {
	var affected int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := requireAll(tx, &models.Connector{}, ids); err != nil {
			return err
		}
		res := tx.Model(&models.Connector{}).Scopes(Alive).
			Where("id IN ?", uniqueIDs(ids)).
			Update("deleted_at", time.Now().UTC())
		affected = res.RowsAffected
		return res.Error
	})
	return affected, err
}

func (r *ConnectorRepository) Restore(ids ...uint) (int64, error) {
	var affected int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := requireAll(tx, &models.Connector{}, ids); err != nil {
			return err
		}
		res := tx.Model(&models.Connector{}).Scopes(Dead).
			Where("id IN ?", uniqueIDs(ids)).
			Update("deleted_at", nil)
		affected = res.RowsAffected
		return res.Error
	})
	return affected, err
}

func (r *ConnectorRepository) HardDelete(ids ...uint) (int64, error) {
	var affected int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := requireAll(tx, &models.Connector{}, ids); err != nil {
			return err
		}
		res := tx.Where("id IN ?", uniqueIDs(ids)).Delete(&models.Connector{})
		affected = res.RowsAffected
		return res.Error
	})
	return affected, err
}

// SoftDeleteConnectorsByOwner marks every alive connector of the given charge points
// deleted. Used when an owner and its connectors go down together; runs in
// the caller's transaction.
func SoftDeleteConnectorsByOwner(tx *gorm.DB, ownerIDs []uint, at time.Time) (int64, error) {
	res := tx.Model(&models.Connector{}).Scopes(Alive).
		Where("charge_point_id IN ?", ownerIDs).
		Update("deleted_at", at)
	return res.RowsAffected, res.Error
}
