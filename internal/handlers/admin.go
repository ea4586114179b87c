package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/evsuite/chargepoint-server/internal/models"
	"github.com/evsuite/chargepoint-server/internal/repository"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AdminHandler is the administrative surface: it can see dead rows, restore
// them, and is the only HTTP path to a physical delete. Hard deletes are
// gated behind an explicit confirm flag.
type AdminHandler struct {
	chargePoints *repository.ChargePointRepository
	connectors   *repository.ConnectorRepository
}

func NewAdminHandler(db *gorm.DB) *AdminHandler {
	return &AdminHandler{
		chargePoints: repository.NewChargePointRepository(db),
		connectors:   repository.NewConnectorRepository(db),
	}
}

type bulkRequest struct {
	IDs     []uint `json:"ids" binding:"required,min=1"`
	Confirm bool   `json:"confirm"`
}

type AdminChargePointResponse struct {
	ID         uint                `json:"id"`
	Name       string              `json:"name"`
	Status     models.Status       `json:"status"`
	CreatedAt  time.Time           `json:"created_at"`
	DeletedAt  *time.Time          `json:"deleted_at"`
	Connectors []ConnectorResponse `json:"connectors"`
}

type AdminConnectorResponse struct {
	ID            uint       `json:"id"`
	EVSENumber    string     `json:"evse_number"`
	ChargePointID uint       `json:"charge_point_id"`
	CreatedAt     time.Time  `json:"created_at"`
	DeletedAt     *time.Time `json:"deleted_at"`
}

// GET /admin/chargepoints?deleted=alive|deleted|all
func (h *AdminHandler) ListChargePoints(c *gin.Context) {
	page, err := parsePage(c.DefaultQuery("page", "1"))
	if err != nil {
		FailDetail(c, http.StatusNotFound, "Invalid page.")
		return
	}

	filter := repository.ListFilter{
		Status:   c.Query("status"),
		Search:   c.Query("search"),
		Ordering: c.Query("ordering"),
		Offset:   (page - 1) * PageSize,
		Limit:    PageSize,
	}
	if filter.Status != "" && !models.Status(filter.Status).Valid() {
		BadRequest(c, FieldErrors{"status": {fmt.Sprintf("%q is not a valid choice.", filter.Status)}})
		return
	}

	var (
		cps   []models.ChargePoint
		total int64
	)
	switch c.DefaultQuery("deleted", "alive") {
	case "alive":
		cps, total, err = h.chargePoints.ListAlive(filter)
	case "deleted":
		cps, total, err = h.chargePoints.ListDead(filter)
	case "all":
		cps, total, err = h.chargePoints.ListAll(filter)
	default:
		BadRequest(c, FieldErrors{"deleted": {"Must be one of: alive, deleted, all."}})
		return
	}
	if err != nil {
		InternalError(c)
		return
	}

	results := make([]AdminChargePointResponse, len(cps))
	for i := range cps {
		cp := &cps[i]
		connectors := make([]ConnectorResponse, len(cp.Connectors))
		for j, cn := range cp.Connectors {
			connectors[j] = ConnectorResponse{ID: cn.ID, EVSENumber: cn.EVSENumber, DeletedAt: cn.DeletedAt}
		}
		results[i] = AdminChargePointResponse{
			ID:         cp.ID,
			Name:       cp.Name,
			Status:     cp.Status,
			CreatedAt:  cp.CreatedAt,
			DeletedAt:  cp.DeletedAt,
			Connectors: connectors,
		}
	}
	OK(c, pageEnvelope(c, total, page, results))
}

// POST /admin/chargepoints/soft-delete
func (h *AdminHandler) SoftDeleteChargePoints(c *gin.Context) {
	h.bulk(c, "soft_deleted", func(ids []uint) (int64, error) {
		return h.chargePoints.SoftDelete(ids...)
	}, false)
}

// POST /admin/chargepoints/restore
func (h *AdminHandler) RestoreChargePoints(c *gin.Context) {
	h.bulk(c, "restored", func(ids []uint) (int64, error) {
		return h.chargePoints.Restore(ids...)
	}, false)
}

// POST /admin/chargepoints/hard-delete
func (h *AdminHandler) HardDeleteChargePoints(c *gin.Context) {
	h.bulk(c, "hard_deleted", func(ids []uint) (int64, error) {
		return h.chargePoints.HardDelete(ids...)
	}, true)
}

// GET /admin/connectors
func (h *AdminHandler) ListConnectors(c *gin.Context) {
	page, err := parsePage(c.DefaultQuery("page", "1"))
	if err != nil {
		FailDetail(c, http.StatusNotFound, "Invalid page.")
		return
	}

	filter := repository.ListFilter{
		Search:   c.Query("search"),
		Ordering: c.Query("ordering"),
		Offset:   (page - 1) * PageSize,
		Limit:    PageSize,
	}

	var (
		cns   []models.Connector
		total int64
	)
	switch c.DefaultQuery("deleted", "alive") {
	case "alive":
		cns, total, err = h.connectors.ListAlive(filter)
	case "deleted":
		cns, total, err = h.connectors.ListDead(filter)
	case "all":
		cns, total, err = h.connectors.ListAll(filter)
	default:
		BadRequest(c, FieldErrors{"deleted": {"Must be one of: alive, deleted, all."}})
		return
	}
	if err != nil {
		InternalError(c)
		return
	}

	results := make([]AdminConnectorResponse, len(cns))
	for i, cn := range cns {
		results[i] = AdminConnectorResponse{
			ID:            cn.ID,
			EVSENumber:    cn.EVSENumber,
			ChargePointID: cn.ChargePointID,
			CreatedAt:     cn.CreatedAt,
			DeletedAt:     cn.DeletedAt,
		}
	}
	OK(c, pageEnvelope(c, total, page, results))
}

type createConnectorRequest struct {
	EVSENumber    string `json:"evse_number"`
	ChargePointID uint   `json:"charge_point_id"`
}

// POST /admin/connectors
func (h *AdminHandler) CreateConnector(c *gin.Context) {
	var req createConnectorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		FailDetail(c, http.StatusBadRequest, "Malformed request body.")
		return
	}

	fields := FieldErrors{}
	evse := strings.TrimSpace(req.EVSENumber)
	if evse == "" {
		fields.Add("evse_number", "This field may not be blank.")
	} else if len(evse) > 32 {
		fields.Add("evse_number", "Ensure this field has no more than 32 characters.")
	}
	if req.ChargePointID == 0 {
		fields.Add("charge_point_id", "This field is required.")
	} else if _, err := h.chargePoints.GetAny(req.ChargePointID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			fields.Add("charge_point_id", fmt.Sprintf("Invalid pk %d - object does not exist.", req.ChargePointID))
		} else {
			InternalError(c)
			return
		}
	}
	if len(fields) > 0 {
		BadRequest(c, fields)
		return
	}

	cn := models.Connector{EVSENumber: evse, ChargePointID: req.ChargePointID}
	if err := h.connectors.Create(&cn); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			fields.Add("evse_number", "connector with this evse number already exists.")
			BadRequest(c, fields)
			return
		}
		InternalError(c)
		return
	}
	Created(c, AdminConnectorResponse{
		ID:            cn.ID,
		EVSENumber:    cn.EVSENumber,
		ChargePointID: cn.ChargePointID,
		CreatedAt:     cn.CreatedAt,
		DeletedAt:     cn.DeletedAt,
	})
}

// POST /admin/connectors/soft-delete
func (h *AdminHandler) SoftDeleteConnectors(c *gin.Context) {
	h.bulk(c, "soft_deleted", func(ids []uint) (int64, error) {
		return h.connectors.SoftDelete(ids...)
	}, false)
}

// POST /admin/connectors/restore
func (h *AdminHandler) RestoreConnectors(c *gin.Context) {
	h.bulk(c, "restored", func(ids []uint) (int64, error) {
		return h.connectors.Restore(ids...)
	}, false)
}

// POST /admin/connectors/hard-delete
func (h *AdminHandler) HardDeleteConnectors(c *gin.Context) {
	h.bulk(c, "hard_deleted", func(ids []uint) (int64, error) {
		return h.connectors.HardDelete(ids...)
	}, true)
}

func (h *AdminHandler) bulk(c *gin.Context, key string, op func([]uint) (int64, error), needsConfirm bool) {
	var req bulkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		FailDetail(c, http.StatusBadRequest, "A non-empty ids list is required.")
		return
	}
	if needsConfirm && !req.Confirm {
		FailDetail(c, http.StatusBadRequest, "Hard delete is irreversible; pass confirm=true to proceed.")
		return
	}

	affected, err := op(req.IDs)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			FailDetail(c, http.StatusNotFound, "One or more ids were not found.")
			return
		}
		InternalError(c)
		return
	}
	OK(c, gin.H{key: affected})
}
