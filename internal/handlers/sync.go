package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/customerbridge-backend/internal/logger"
	"github.com/yungbote/customerbridge-backend/internal/platform/registry"
	"github.com/yungbote/customerbridge-backend/internal/services"
	"github.com/yungbote/customerbridge-backend/internal/types"
)

type SyncHandler struct {
	log         *logger.Logger
	syncService services.SyncService
	registry    *registry.Registry
}

func NewSyncHandler(log *logger.Logger, syncService services.SyncService, reg *registry.Registry) *SyncHandler {
	return &SyncHandler{
		log:         log.With("handler", "SyncHandler"),
		syncService: syncService,
		registry:    reg,
	}
}

type syncRequest struct {
	Records      []types.RawPlatformRecordInput `json:"records"`
	Transactions []types.RawTransactionInput    `json:"transactions"`
}

// RunSync ingests one connector batch. Structurally invalid payloads are a
// 400; record-level problems inside a valid batch (missing email, bad
// engagement metadata) are counted in the report, not rejected here.
func (h *SyncHandler) RunSync(c *gin.Context) {
	var req syncRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_payload", err)
		return
	}
	if len(req.Records) == 0 {
		RespondError(c, http.StatusBadRequest, "empty_batch", fmt.Errorf("batch contains no records"))
		return
	}

	records := make([]types.RawPlatformRecord, 0, len(req.Records))
	for i, in := range req.Records {
		rec, err := types.ParseRawPlatformRecord(in)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "invalid_record",
				fmt.Errorf("records[%d]: %w", i, err))
			return
		}
		records = append(records, rec)
	}
	transactions := make([]types.RawTransaction, 0, len(req.Transactions))
	for i, in := range req.Transactions {
		tx, err := types.ParseRawTransaction(in)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "invalid_transaction",
				fmt.Errorf("transactions[%d]: %w", i, err))
			return
		}
		transactions = append(transactions, tx)
	}

	if h.registry != nil {
		h.registry.WarnUnknown(batchPlatforms(records))
	}

	report, err := h.syncService.RunBatch(c.Request.Context(), records, transactions)
	if err != nil {
		h.log.Error("RunSync failed", "error", err)
		RespondError(c, http.StatusInternalServerError, "sync_failed", err)
		return
	}
	RespondOK(c, report)
}

func batchPlatforms(records []types.RawPlatformRecord) []string {
	seen := map[string]bool{}
	var names []string
	for _, r := range records {
		if !seen[r.PlatformName] {
			seen[r.PlatformName] = true
			names = append(names, r.PlatformName)
		}
	}
	return names
}

func (h *SyncHandler) ListRuns(c *gin.Context) {
	limit := queryInt(c, "limit", 20)
	runs, err := h.syncService.GetRecentRuns(c.Request.Context(), limit)
	if err != nil {
		h.log.Error("ListRuns failed", "error", err)
		RespondError(c, http.StatusInternalServerError, "list_runs_failed", err)
		return
	}
	RespondOK(c, gin.H{"runs": runs})
}
