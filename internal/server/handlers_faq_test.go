package server

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"testing"

	"github.com/jonathan/vendor-insights/internal/faq"
	"github.com/jonathan/vendor-insights/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingStore validates like the real stores but can never persist.
type failingStore struct{}

func (failingStore) List(context.Context) ([]types.FAQItem, error) {
	return nil, &faq.StorageError{Op: "read", Cause: errors.New("disk gone")}
}

func (failingStore) Create(_ context.Context, req types.CreateFAQRequest) (*types.FAQItem, error) {
	if err := faq.Validate(faq.Normalize(req)); err != nil {
		return nil, err
	}
	return nil, &faq.StorageError{Op: "write", Cause: errors.New("disk gone")}
}

func TestHandleCreateFAQ(t *testing.T) {
	srv := newTestServer(t)

	rec := serve(t, srv, http.MethodPost, "/api/faq",
		`{"question":" How are fees billed? ","answer":"Monthly.","category":"Pricing","tags":["billing",""]}`, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	item := decodeJSON[types.FAQItem](t, rec)
	assert.Regexp(t, regexp.MustCompile(`^custom-faq-\d+$`), item.ID)
	assert.Equal(t, "How are fees billed?", item.Question)
	assert.Equal(t, types.FAQCategoryPricing, item.Category)
	assert.Equal(t, []string{"billing"}, item.Tags)

	list := serve(t, srv, http.MethodGet, "/api/faq", "", "")
	require.Equal(t, http.StatusOK, list.Code)
	resp := decodeJSON[struct {
		Items []types.FAQItem `json:"items"`
		Total int             `json:"total"`
	}](t, list)
	assert.Equal(t, 1, resp.Total)
	assert.Equal(t, item, resp.Items[0])

	metrics := serve(t, srv, http.MethodGet, "/metrics", "", "")
	assert.Contains(t, metrics.Body.String(), "vendor_insights_faq_items_created_total 1")
}

func TestHandleListFAQ_Empty(t *testing.T) {
	srv := newTestServer(t)

	rec := serve(t, srv, http.MethodGet, "/api/faq", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"items":[],"total":0}`, rec.Body.String())
}

func TestHandleCreateFAQ_Validation(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name        string
		body        string
		wantMissing []string
		wantInvalid []string
	}{
		{
			name:        "everything missing",
			body:        `{}`,
			wantMissing: []string{"question", "answer", "category"},
		},
		{
			name:        "whitespace only answer",
			body:        `{"question":"Q?","answer":"   ","category":"Technical"}`,
			wantMissing: []string{"answer"},
		},
		{
			name:        "unknown category",
			body:        `{"question":"Q?","answer":"A.","category":"Gossip"}`,
			wantInvalid: []string{"category"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, srv, http.MethodPost, "/api/faq", tt.body, "")
			require.Equal(t, http.StatusBadRequest, rec.Code)

			resp := decodeJSON[faqValidationResponse](t, rec)
			assert.NotEmpty(t, resp.Error)
			assert.Equal(t, tt.wantMissing, resp.Missing)
			assert.Equal(t, tt.wantInvalid, resp.Invalid)
		})
	}

	// Nothing was written
	rec := serve(t, srv, http.MethodGet, "/api/faq", "", "")
	assert.JSONEq(t, `{"items":[],"total":0}`, rec.Body.String())
}

func TestHandleCreateFAQ_MalformedBody(t *testing.T) {
	srv := newTestServer(t)

	rec := serve(t, srv, http.MethodPost, "/api/faq", `{"question":`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleFAQ_StorageFailure(t *testing.T) {
	srv := newTestServer(t, func(c *Config) { c.FAQ = failingStore{} })

	rec := serve(t, srv, http.MethodPost, "/api/faq", `{"question":"Q?","answer":"A.","category":"Features"}`, "")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"failed to save FAQ item"}`, rec.Body.String())

	rec = serve(t, srv, http.MethodGet, "/api/faq", "", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHandleFAQ_NotConfigured(t *testing.T) {
	srv := newTestServer(t, func(c *Config) { c.FAQ = nil })

	assert.Equal(t, http.StatusServiceUnavailable, serve(t, srv, http.MethodGet, "/api/faq", "", "").Code)
	assert.Equal(t, http.StatusServiceUnavailable, serve(t, srv, http.MethodPost, "/api/faq", `{}`, "").Code)
}
