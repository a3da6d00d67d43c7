package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/jonathan/vendor-insights/internal/faq"
	"github.com/jonathan/vendor-insights/internal/types"
	"go.uber.org/zap"
)

// maxFAQBody bounds a FAQ create request body
const maxFAQBody = 64 << 10

// faqValidationResponse is the 400 body for a rejected FAQ item
type faqValidationResponse struct {
	Error   string   `json:"error"`
	Missing []string `json:"missing,omitempty"`
	Invalid []string `json:"invalid,omitempty"`
}

func (s *Server) handleListFAQ(w http.ResponseWriter, r *http.Request) {
	if s.faq == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "FAQ store not configured")
		return
	}

	items, err := s.faq.List(r.Context())
	if err != nil {
		s.logger.Error("failed to list FAQ items", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "failed to load FAQ items")
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"items": items, "total": len(items)})
}

func (s *Server) handleCreateFAQ(w http.ResponseWriter, r *http.Request) {
	if s.faq == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "FAQ store not configured")
		return
	}

	var req types.CreateFAQRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxFAQBody)).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	item, err := s.faq.Create(r.Context(), req)
	if err != nil {
		var invalid *faq.ValidationError
		if errors.As(err, &invalid) {
			s.jsonResponse(w, http.StatusBadRequest, faqValidationResponse{
				Error:   invalid.Error(),
				Missing: invalid.Missing,
				Invalid: invalid.Invalid,
			})
			return
		}
		s.logger.Error("failed to save FAQ item", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "failed to save FAQ item")
		return
	}

	s.metrics.faqCreated.Inc()
	s.jsonResponse(w, http.StatusCreated, item)
}
