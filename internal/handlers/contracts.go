package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"unimate/internal/models"
	"unimate/internal/repositories"
	"unimate/internal/session"
	"unimate/internal/telemetry"
)

// ContractHandler exposes the contract record operations.
type ContractHandler struct {
	contracts repositories.ContractRepository
	audit     *telemetry.AuditEmitter
	logger    *zap.Logger
}

// NewContractHandler builds a ContractHandler.
func NewContractHandler(contracts repositories.ContractRepository, audit *telemetry.AuditEmitter, logger *zap.Logger) *ContractHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ContractHandler{contracts: contracts, audit: audit, logger: logger}
}

// CreateContract inserts a contract the caller is a party of.
func (h *ContractHandler) CreateContract(c *gin.Context) {
	var req models.NewContract
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !validIDs(req.HostID, req.StudentID, req.ListingID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	s := session.FromContext(c)
	me := s.ProfileID()
	if req.HostID != me && req.StudentID != me && !s.Profile.IsAdmin() {
		c.JSON(http.StatusForbidden, gin.H{"error": "not a party of the contract"})
		return
	}

	if err := h.contracts.CreateContract(c.Request.Context(), req); err != nil {
		h.respondError(c, "create contract", err)
		return
	}

	h.audit.EmitAction(c.Request.Context(), "contract_created", requestIDFromContext(c), profileIDFromContext(c), map[string]string{
		"host_id":    req.HostID,
		"student_id": req.StudentID,
		"listing_id": req.ListingID,
	})
	c.JSON(http.StatusCreated, gin.H{"status": "created"})
}

// GetContract returns a contract with its parties and listing.
func (h *ContractHandler) GetContract(c *gin.Context) {
	details, ok := h.loadForParty(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"contract": details})
}

// SignContract marks the contract signed.
func (h *ContractHandler) SignContract(c *gin.Context) {
	details, ok := h.loadForParty(c)
	if !ok {
		return
	}

	if err := h.contracts.SignContract(c.Request.Context(), details.ID); err != nil {
		h.respondError(c, "sign contract", err)
		return
	}

	h.audit.EmitAction(c.Request.Context(), "contract_signed", requestIDFromContext(c), profileIDFromContext(c), map[string]string{
		"contract_id":     details.ID,
		"previous_status": string(details.Status),
	})
	c.JSON(http.StatusOK, gin.H{"id": details.ID, "status": models.ContractSigned})
}

func (h *ContractHandler) loadForParty(c *gin.Context) (models.ContractDetails, bool) {
	id := c.Param("id")
	if !validIDs(id) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid contract id"})
		return models.ContractDetails{}, false
	}
	details, err := h.contracts.GetContract(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, "get contract", err)
		return models.ContractDetails{}, false
	}

	s := session.FromContext(c)
	if !details.IsParty(s.ProfileID()) && !s.Profile.IsAdmin() {
		c.JSON(http.StatusForbidden, gin.H{"error": "not a party of the contract"})
		return models.ContractDetails{}, false
	}
	return details, true
}

func (h *ContractHandler) respondError(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, models.ErrInvalidContract):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, repositories.ErrUnknownReference):
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown host, student or listing"})
	case errors.Is(err, repositories.ErrContractNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "contract not found"})
	case errors.Is(err, repositories.ErrContractAmbiguous):
		c.JSON(http.StatusConflict, gin.H{"error": "contract id is ambiguous"})
	default:
		h.logger.Error(op, zap.String("contract_id", c.Param("id")), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not " + op})
	}
}
