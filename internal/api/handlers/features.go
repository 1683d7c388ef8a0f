package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eshaffer321/recurscan/internal/api/dto"
	"github.com/eshaffer321/recurscan/internal/domain/dates"
	"github.com/eshaffer321/recurscan/internal/domain/features"
	"github.com/eshaffer321/recurscan/internal/domain/transaction"
)

// FeatureExtractor computes one feature vector.
type FeatureExtractor interface {
	ExtractOne(ref transaction.Transaction, history []transaction.Transaction) (features.Features, error)
}

// FeaturesHandler handles on-demand feature extraction.
type FeaturesHandler struct {
	*Base
	extractor FeatureExtractor
}

// NewFeaturesHandler creates a new features handler.
func NewFeaturesHandler(extractor FeatureExtractor) *FeaturesHandler {
	return &FeaturesHandler{
		Base:      NewBase(nil),
		extractor: extractor,
	}
}

// Compute handles POST /api/features - returns the features of one transaction.
func (h *FeaturesHandler) Compute(c *gin.Context) {
	var req dto.FeaturesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.WriteError(c, http.StatusBadRequest, dto.BadRequestError("invalid request body: "+err.Error()))
		return
	}

	f, err := h.extractor.ExtractOne(req.Transaction, req.History)
	if err != nil {
		var dateErr *dates.DateFormatError
		if errors.As(err, &dateErr) {
			h.WriteError(c, http.StatusBadRequest, dto.ValidationError(err.Error()))
			return
		}
		h.WriteError(c, http.StatusInternalServerError, dto.InternalError())
		return
	}

	h.WriteJSON(c, http.StatusOK, dto.FeaturesResponse{
		Features: f,
		Names:    features.Names,
		Values:   f.Vector(),
	})
}
