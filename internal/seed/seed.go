package seed

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/evsuite/chargepoint-server/internal/models"
	"github.com/evsuite/chargepoint-server/internal/repository"
	"gorm.io/gorm"
)

// Options controls demo data generation. A fixed Seed makes the run
// reproducible; ConnectorsPer of -1 means a random 0..3 per charge point.
type Options struct {
	Count           int
	ConnectorsPer   int
	Seed            int64
	SoftDeleteRatio float64
}

type Result struct {
	ChargePoints int
	Connectors   int
	SoftDeleted  int
}

func (o Options) validate() error {
	if o.Count < 0 {
		return fmt.Errorf("count must be >= 0, got %d", o.Count)
	}
	if o.ConnectorsPer < -1 {
		return fmt.Errorf("connectors must be >= 0, or -1 for random, got %d", o.ConnectorsPer)
	}
	if o.SoftDeleteRatio < 0 || o.SoftDeleteRatio > 1 {
		return fmt.Errorf("soft-delete ratio must be within [0, 1], got %g", o.SoftDeleteRatio)
	}
	return nil
}

// Populate creates Count charge points named CP-000, CP-001, ... with random
// statuses and connectors, all inside one transaction. A second transaction
// then soft-deletes round(Count*SoftDeleteRatio) of the new charge points
// together with their connectors, so the pair always goes down atomically.
func Populate(db *gorm.DB, opts Options) (Result, error) {
	if err := opts.validate(); err != nil {
		return Result{}, err
	}

	source := opts.Seed
	if source == 0 {
		source = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(source))

	var (
		res        Result
		createdIDs []uint
	)
	err := db.Transaction(func(tx *gorm.DB) error {
		chargePoints := repository.NewChargePointRepository(tx)
		connectors := repository.NewConnectorRepository(tx)

		for i := 0; i < opts.Count; i++ {
			cp := models.ChargePoint{
				Name:   fmt.Sprintf("CP-%03d", i),
				Status: models.StatusChoices[rng.Intn(len(models.StatusChoices))],
			}
			if err := chargePoints.Create(&cp); err != nil {
				return err
			}
			createdIDs = append(createdIDs, cp.ID)
			res.ChargePoints++

			count := opts.ConnectorsPer
			if count < 0 {
				count = rng.Intn(4)
			}
			for j := 0; j < count; j++ {
				cn := models.Connector{
					EVSENumber:    fmt.Sprintf("EVSE-%03d-%02d-%s", i, j, evseSuffix(rng)),
					ChargePointID: cp.ID,
				}
				if err := connectors.Create(&cn); err != nil {
					return err
				}
				res.Connectors++
			}
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	if opts.SoftDeleteRatio > 0 && len(createdIDs) > 0 {
		n := int(math.Round(float64(len(createdIDs)) * opts.SoftDeleteRatio))
		if n > len(createdIDs) {
			n = len(createdIDs)
		}
		if n > 0 {
			rng.Shuffle(len(createdIDs), func(i, j int) {
				createdIDs[i], createdIDs[j] = createdIDs[j], createdIDs[i]
			})
			sample := createdIDs[:n]
			now := time.Now().UTC()

			err = db.Transaction(func(tx *gorm.DB) error {
				if err := tx.Model(&models.ChargePoint{}).Scopes(repository.Alive).
					Where("id IN ?", sample).
					Update("deleted_at", now).Error; err != nil {
					return err
				}
				_, err := repository.SoftDeleteConnectorsByOwner(tx, sample, now)
				return err
			})
			if err != nil {
				return Result{}, err
			}
			res.SoftDeleted = n
		}
	}

	return res, nil
}

// Clean hard-deletes every connector and charge point. Irreversible; the
// caller is responsible for confirming intent first.
func Clean(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		wipe := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
		if err := wipe.Delete(&models.Connector{}).Error; err != nil {
			return err
		}
		return wipe.Delete(&models.ChargePoint{}).Error
	})
}

const suffixLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

func evseSuffix(rng *rand.Rand) string {
	return fmt.Sprintf("%c%c%d%d",
		suffixLetters[rng.Intn(len(suffixLetters))],
		suffixLetters[rng.Intn(len(suffixLetters))],
		rng.Intn(10), rng.Intn(10))
}
