package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eshaffer321/recurscan/internal/api/dto"
	"github.com/eshaffer321/recurscan/internal/application/service"
	"github.com/eshaffer321/recurscan/internal/domain/dates"
	"github.com/eshaffer321/recurscan/internal/domain/features"
	"github.com/eshaffer321/recurscan/internal/domain/transaction"
	"github.com/eshaffer321/recurscan/internal/domain/validator"
	"github.com/eshaffer321/recurscan/internal/infrastructure/storage"
)

// RunCreator persists a feature run.
type RunCreator interface {
	Run(ctx context.Context, source string, txs []transaction.Transaction, labels []transaction.Label) (*storage.FeatureRun, []features.Features, error)
}

// RunsHandler handles feature run HTTP requests.
type RunsHandler struct {
	*Base
	runner RunCreator
}

// NewRunsHandler creates a new runs handler. runner may be nil, in which
// case Create is not routed.
func NewRunsHandler(repo storage.Repository, runner RunCreator) *RunsHandler {
	return &RunsHandler{
		Base:   NewBase(repo),
		runner: runner,
	}
}

// List handles GET /api/runs - returns recent runs.
func (h *RunsHandler) List(c *gin.Context) {
	limit := ParseIntParam(c, "limit", 20)

	runs, err := h.repo.ListRuns(limit)
	if err != nil {
		h.WriteError(c, http.StatusInternalServerError, dto.InternalError())
		return
	}

	response := dto.RunListResponse{
		Runs:  make([]dto.RunResponse, 0, len(runs)),
		Count: len(runs),
	}
	for _, run := range runs {
		response.Runs = append(response.Runs, dto.NewRunResponse(run))
	}

	h.WriteJSON(c, http.StatusOK, response)
}

// Get handles GET /api/runs/:id - returns a single run.
func (h *RunsHandler) Get(c *gin.Context) {
	run, ok := h.lookup(c)
	if !ok {
		return
	}
	h.WriteJSON(c, http.StatusOK, dto.NewRunResponse(*run))
}

// Features handles GET /api/runs/:id/features - returns a page of rows.
func (h *RunsHandler) Features(c *gin.Context) {
	run, ok := h.lookup(c)
	if !ok {
		return
	}

	page, err := h.repo.ListFeatures(run.ID, ParseIntParam(c, "limit", 50), ParseIntParam(c, "offset", 0))
	if err != nil {
		h.WriteError(c, http.StatusInternalServerError, dto.InternalError())
		return
	}

	h.WriteJSON(c, http.StatusOK, dto.FeatureRowListResponse{
		Rows:       page.Rows,
		TotalCount: page.TotalCount,
		Limit:      page.Limit,
		Offset:     page.Offset,
	})
}

// Create handles POST /api/runs - extracts and stores features for a batch.
func (h *RunsHandler) Create(c *gin.Context) {
	var req dto.CreateRunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.WriteError(c, http.StatusBadRequest, dto.BadRequestError("invalid request body: "+err.Error()))
		return
	}

	source := req.Source
	if source == "" {
		source = "api"
	}

	txs := make([]transaction.Transaction, len(req.Transactions))
	labels := make([]transaction.Label, len(req.Transactions))
	allLabeled := true
	for i, lt := range req.Transactions {
		txs[i] = lt.Transaction
		if txs[i].ID == 0 {
			txs[i].ID = int64(i + 1)
		}
		if lt.Recurring == nil {
			allLabeled = false
			continue
		}
		if *lt.Recurring == int(transaction.Recurring) {
			labels[i] = transaction.Recurring
		}
	}
	if !allLabeled {
		labels = nil
	}

	run, _, err := h.runner.Run(c.Request.Context(), source, txs, labels)
	if err != nil {
		var verr *validator.Error
		var dateErr *dates.DateFormatError
		if errors.As(err, &verr) || errors.As(err, &dateErr) {
			h.WriteError(c, http.StatusBadRequest, dto.ValidationError(err.Error()))
			return
		}
		var runErr *service.RunError
		if errors.As(err, &runErr) {
			h.WriteError(c, http.StatusInternalServerError, dto.RunFailedError(runErr.RunID))
			return
		}
		h.WriteError(c, http.StatusInternalServerError, dto.InternalError())
		return
	}

	h.WriteJSON(c, http.StatusCreated, dto.NewRunResponse(*run))
}

func (h *RunsHandler) lookup(c *gin.Context) (*storage.FeatureRun, bool) {
	id := c.Param("id")
	if id == "" {
		h.WriteError(c, http.StatusBadRequest, dto.BadRequestError("run ID is required"))
		return nil, false
	}

	run, err := h.repo.GetRun(id)
	if errors.Is(err, storage.ErrNotFound) {
		h.WriteError(c, http.StatusNotFound, dto.NotFoundError("run"))
		return nil, false
	}
	if err != nil {
		h.WriteError(c, http.StatusInternalServerError, dto.InternalError())
		return nil, false
	}
	return run, true
}
