package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/evsuite/chargepoint-server/internal/models"
	"github.com/evsuite/chargepoint-server/internal/repository"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ChargePointHandler is the public resource service: every operation here
// sees alive rows only. Soft-deleted data is reachable through the admin
// surface alone.
type ChargePointHandler struct {
	repo *repository.ChargePointRepository
}

func NewChargePointHandler(db *gorm.DB) *ChargePointHandler {
	return &ChargePointHandler{repo: repository.NewChargePointRepository(db)}
}

// chargePointRequest deliberately has no connectors field: a nested
// connectors payload is dropped during binding, never an error.
type chargePointRequest struct {
	Name   *string `json:"name"`
	Status *string `json:"status"`
}

type ConnectorResponse struct {
	ID         uint       `json:"id"`
	EVSENumber string     `json:"evse_number"`
	DeletedAt  *time.Time `json:"deleted_at"`
}

type ChargePointResponse struct {
	ID         uint                `json:"id"`
	Name       string              `json:"name"`
	Status     models.Status       `json:"status"`
	CreatedAt  time.Time           `json:"created_at"`
	Connectors []ConnectorResponse `json:"connectors"`
}

func newChargePointResponse(cp *models.ChargePoint) ChargePointResponse {
	connectors := make([]ConnectorResponse, len(cp.Connectors))
	for i, cn := range cp.Connectors {
		connectors[i] = ConnectorResponse{
			ID:         cn.ID,
			EVSENumber: cn.EVSENumber,
			DeletedAt:  cn.DeletedAt,
		}
	}
	return ChargePointResponse{
		ID:         cp.ID,
		Name:       cp.Name,
		Status:     cp.Status,
		CreatedAt:  cp.CreatedAt,
		Connectors: connectors,
	}
}

// GET /api/v1/chargepoint
func (h *ChargePointHandler) List(c *gin.Context) {
	page, err := parsePage(c.DefaultQuery("page", "1"))
	if err != nil {
		FailDetail(c, http.StatusNotFound, "Invalid page.")
		return
	}

	fields := FieldErrors{}
	status := c.Query("status")
	if status != "" && !models.Status(status).Valid() {
		fields.Add("status", fmt.Sprintf("%q is not a valid choice.", status))
	}
	if len(fields) > 0 {
		BadRequest(c, fields)
		return
	}

	filter := repository.ListFilter{
		Status:   status,
		Search:   c.Query("search"),
		Ordering: c.Query("ordering"),
		Offset:   (page - 1) * PageSize,
		Limit:    PageSize,
	}
	cps, total, err := h.repo.ListAlive(filter)
	if err != nil {
		InternalError(c)
		return
	}

	results := make([]ChargePointResponse, len(cps))
	for i := range cps {
		results[i] = newChargePointResponse(&cps[i])
	}
	OK(c, pageEnvelope(c, total, page, results))
}

// GET /api/v1/chargepoint/:id
func (h *ChargePointHandler) Get(c *gin.Context) {
	cp, ok := h.resolve(c)
	if !ok {
		return
	}
	OK(c, newChargePointResponse(cp))
}

// POST /api/v1/chargepoint
func (h *ChargePointHandler) Create(c *gin.Context) {
	var req chargePointRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		FailDetail(c, http.StatusBadRequest, "Malformed request body.")
		return
	}

	fields := FieldErrors{}
	name := validateName(req.Name, false, fields)
	status := validateStatus(req.Status, fields)
	if len(fields) > 0 {
		BadRequest(c, fields)
		return
	}

	cp := models.ChargePoint{Name: name, Status: status}
	if err := h.repo.Create(&cp); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			fields.Add("name", "charge point with this name already exists.")
			BadRequest(c, fields)
			return
		}
		InternalError(c)
		return
	}

	cp.Connectors = []models.Connector{}
	Created(c, newChargePointResponse(&cp))
}

// PUT /api/v1/chargepoint/:id
func (h *ChargePointHandler) Update(c *gin.Context) {
	h.update(c, false)
}

// PATCH /api/v1/chargepoint/:id
func (h *ChargePointHandler) PartialUpdate(c *gin.Context) {
	h.update(c, true)
}

func (h *ChargePointHandler) update(c *gin.Context, partial bool) {
	cp, ok := h.resolve(c)
	if !ok {
		return
	}

	var req chargePointRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		FailDetail(c, http.StatusBadRequest, "Malformed request body.")
		return
	}

	fields := FieldErrors{}
	if req.Name != nil || !partial {
		if name := validateName(req.Name, partial, fields); name != "" {
			cp.Name = name
		}
	}
	if req.Status != nil || !partial {
		// A full update with status omitted falls back to the field default.
		cp.Status = validateStatus(req.Status, fields)
	}
	if len(fields) > 0 {
		BadRequest(c, fields)
		return
	}

	if err := h.repo.Update(cp); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			fields.Add("name", "charge point with this name already exists.")
			BadRequest(c, fields)
			return
		}
		InternalError(c)
		return
	}

	OKWithMessage(c, newChargePointResponse(cp), "Actualizado")
}

// DELETE /api/v1/chargepoint/:id
func (h *ChargePointHandler) Destroy(c *gin.Context) {
	cp, ok := h.resolve(c)
	if !ok {
		return
	}
	if _, err := h.repo.SoftDelete(cp.ID); err != nil {
		InternalError(c)
		return
	}
	NoContent(c)
}

// resolve fetches the alive target or writes the 404 envelope. Non-numeric
// ids 404 like unknown ones; the id namespace simply has no such resource.
func (h *ChargePointHandler) resolve(c *gin.Context) (*models.ChargePoint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		NotFound(c)
		return nil, false
	}
	cp, err := h.repo.GetAlive(uint(id))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c)
		} else {
			InternalError(c)
		}
		return nil, false
	}
	return cp, true
}

// validateName trims and checks the name field, collecting errors. Returns
// the normalized value, or "" when absent/invalid.
func validateName(raw *string, partial bool, fields FieldErrors) string {
	if raw == nil {
		if !partial {
			fields.Add("name", "This field is required.")
		}
		return ""
	}
	name := strings.TrimSpace(*raw)
	if name == "" {
		fields.Add("name", "This field may not be blank.")
		return ""
	}
	if len(name) > 32 {
		fields.Add("name", "Ensure this field has no more than 32 characters.")
		return ""
	}
	return name
}

// validateStatus resolves the status field. An absent field falls back to the
// default; a present but empty or unknown value is a choice error.
func validateStatus(raw *string, fields FieldErrors) models.Status {
	if raw == nil {
		return models.StatusReady
	}
	status := models.Status(*raw)
	if !status.Valid() {
		fields.Add("status", fmt.Sprintf("%q is not a valid choice.", *raw))
		return models.StatusReady
	}
	return status
}
