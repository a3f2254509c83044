package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/checkmint/checkmint/internal/domain"
	"github.com/checkmint/checkmint/internal/mintqueue"
	"github.com/checkmint/checkmint/internal/orchestrator"
	"github.com/checkmint/checkmint/internal/store"
)

// Handler defines the interface for REST API handlers
// This interface allows for easy mocking and testing
//
//go:generate mockgen -source=handler.go -destination=../../mocks/api_handler.go -package=mocks -mock_names=Handler=MockAPIHandler
type Handler interface {
	// HealthCheck returns the health status of the service
	// GET /healthz
	HealthCheck(c *gin.Context)

	// GetStatus returns sync loop, breaker and queue state
	// GET /api/v1/status
	GetStatus(c *gin.Context)

	// StartSync starts the sync loops
	// POST /api/v1/sync/start
	StartSync(c *gin.Context)

	// StopSync stops the sync loops
	// POST /api/v1/sync/stop
	StopSync(c *gin.Context)

	// RestartSync restarts the sync loops
	// POST /api/v1/sync/restart
	RestartSync(c *gin.Context)

	// TriggerSync runs immediate sync passes for the selected phases
	// POST /api/v1/sync/trigger
	TriggerSync(c *gin.Context)

	// UpdateIntervals changes the sync loop cadence at runtime
	// PUT /api/v1/sync/intervals
	UpdateIntervals(c *gin.Context)

	// GetQueue returns mint queue statistics
	// GET /api/v1/queue
	GetQueue(c *gin.Context)

	// RetryMint re-queues a failed mint
	// POST /api/v1/nfts/:id/retry
	RetryMint(c *gin.Context)

	// BulkMint enqueues mints for every checked-in guest of an event
	// POST /api/v1/events/:id/bulk-mint
	BulkMint(c *gin.Context)

	// ListEventNFTs returns the mint records of an event
	// GET /api/v1/events/:id/nfts
	ListEventNFTs(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	orchestrator *orchestrator.Orchestrator
	queue        *mintqueue.Manager
	store        store.Store
}

// NewHandler creates a new REST API handler
func NewHandler(orch *orchestrator.Orchestrator, queue *mintqueue.Manager, st store.Store) Handler {
	return &handler{
		orchestrator: orch,
		queue:        queue,
		store:        st,
	}
}

func (h *handler) HealthCheck(c *gin.Context) {
	health := h.orchestrator.CheckHealth(c.Request.Context())
	status := http.StatusOK
	if !health.Healthy {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, health)
}

func (h *handler) GetStatus(c *gin.Context) {
	status, err := h.orchestrator.Status(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "Failed to get status")
		return
	}
	c.JSON(http.StatusOK, status)
}

func (h *handler) StartSync(c *gin.Context) {
	// The loops outlive the request
	ctx := context.WithoutCancel(c.Request.Context())
	if err := h.orchestrator.Start(ctx); err != nil {
		if errors.Is(err, orchestrator.ErrAlreadyRunning) {
			respondConflict(c, "Sync already running")
			return
		}
		respondInternalError(c, err, "Failed to start sync")
		return
	}
	c.JSON(http.StatusOK, gin.H{"running": true})
}

func (h *handler) StopSync(c *gin.Context) {
	h.orchestrator.Stop()
	c.JSON(http.StatusOK, gin.H{"running": false})
}

func (h *handler) RestartSync(c *gin.Context) {
	ctx := context.WithoutCancel(c.Request.Context())
	if err := h.orchestrator.Restart(ctx); err != nil {
		respondInternalError(c, err, "Failed to restart sync")
		return
	}
	c.JSON(http.StatusOK, gin.H{"running": true})
}

// triggerSyncRequest selects what an immediate pass covers. An empty
// account_id means all active accounts; at least one phase flag must be
// set.
type triggerSyncRequest struct {
	Events    bool   `json:"events"`
	CheckIns  bool   `json:"checkins"`
	AccountID string `json:"account_id"`
}

func (h *handler) TriggerSync(c *gin.Context) {
	var req triggerSyncRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}
	if !req.Events && !req.CheckIns {
		respondValidationError(c, "at least one of events or checkins must be true")
		return
	}

	result, err := h.orchestrator.Trigger(c.Request.Context(), req.AccountID, orchestrator.TriggerOptions{
		Events:   req.Events,
		CheckIns: req.CheckIns,
	})
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			respondNotFound(c, "Account not found")
			return
		}
		respondInternalError(c, err, "Trigger failed",
			zap.String("account_id", req.AccountID))
		return
	}
	c.JSON(http.StatusOK, result)
}

// updateIntervalsRequest carries the new cadences in seconds. Zero or
// omitted values keep the current interval.
type updateIntervalsRequest struct {
	EventsSeconds   int `json:"events_seconds"`
	CheckInsSeconds int `json:"checkins_seconds"`
}

func (h *handler) UpdateIntervals(c *gin.Context) {
	var req updateIntervalsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}
	if req.EventsSeconds < 0 || req.CheckInsSeconds < 0 {
		respondValidationError(c, "intervals must not be negative")
		return
	}

	current := h.orchestrator.UpdateIntervals(orchestrator.Intervals{
		Events:   time.Duration(req.EventsSeconds) * time.Second,
		CheckIns: time.Duration(req.CheckInsSeconds) * time.Second,
	})
	c.JSON(http.StatusOK, gin.H{
		"events_seconds":   int(current.Events / time.Second),
		"checkins_seconds": int(current.CheckIns / time.Second),
	})
}

func (h *handler) GetQueue(c *gin.Context) {
	stats, err := h.queue.Stats(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "Failed to get queue stats")
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *handler) RetryMint(c *gin.Context) {
	nftID := c.Param("id")
	if nftID == "" {
		respondBadRequest(c, "NFT ID is required")
		return
	}

	err := h.queue.RetryMint(c.Request.Context(), nftID)
	switch {
	case err == nil:
		c.JSON(http.StatusAccepted, gin.H{"nft_id": nftID, "status": string(domain.MintStatusPending)})
	case errors.Is(err, domain.ErrNFTNotFound):
		respondNotFound(c, "NFT not found")
	case errors.Is(err, domain.ErrNotRetryable):
		respondConflict(c, "Only failed mints can be retried")
	default:
		respondInternalError(c, err, "Failed to retry mint", zap.String("nft_id", nftID))
	}
}

func (h *handler) BulkMint(c *gin.Context) {
	eventID := c.Param("id")
	if eventID == "" {
		respondBadRequest(c, "Event ID is required")
		return
	}

	summary, err := h.queue.BulkMintForEvent(c.Request.Context(), eventID)
	if err != nil {
		if errors.Is(err, domain.ErrEventNotFound) {
			respondNotFound(c, "Event not found")
			return
		}
		respondInternalError(c, err, "Bulk mint failed", zap.String("event_id", eventID))
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *handler) ListEventNFTs(c *gin.Context) {
	eventID := c.Param("id")
	if eventID == "" {
		respondBadRequest(c, "Event ID is required")
		return
	}

	if _, err := h.store.GetEventByID(c.Request.Context(), eventID); err != nil {
		if errors.Is(err, domain.ErrEventNotFound) {
			respondNotFound(c, "Event not found")
			return
		}
		respondInternalError(c, err, "Failed to get event", zap.String("event_id", eventID))
		return
	}

	nfts, err := h.store.ListNFTsByEvent(c.Request.Context(), eventID)
	if err != nil {
		respondInternalError(c, err, "Failed to list NFTs", zap.String("event_id", eventID))
		return
	}
	c.JSON(http.StatusOK, gin.H{"event_id": eventID, "nfts": nfts})
}
