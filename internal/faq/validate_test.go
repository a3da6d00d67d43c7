package faq

import (
	"errors"
	"testing"

	"github.com/jonathan/vendor-insights/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		req         types.CreateFAQRequest
		wantMissing []string
		wantInvalid []string
	}{
		{
			name: "valid",
			req:  types.CreateFAQRequest{Question: "Q", Answer: "A", Category: types.FAQCategoryIntegration},
		},
		{
			name:        "all missing",
			req:         types.CreateFAQRequest{},
			wantMissing: []string{"question", "answer", "category"},
		},
		{
			name:        "answer missing",
			req:         types.CreateFAQRequest{Question: "Q", Category: types.FAQCategoryPricing},
			wantMissing: []string{"answer"},
		},
		{
			name:        "unknown category",
			req:         types.CreateFAQRequest{Question: "Q", Answer: "A", Category: "Gossip"},
			wantInvalid: []string{"category"},
		},
		{
			name:        "category is case sensitive",
			req:         types.CreateFAQRequest{Question: "Q", Answer: "A", Category: "pricing"},
			wantInvalid: []string{"category"},
		},
		{
			name:        "tag containing the separator",
			req:         types.CreateFAQRequest{Question: "Q", Answer: "A", Category: types.FAQCategoryTechnical, Tags: []string{"ok", "a;b"}},
			wantInvalid: []string{"tags"},
		},
		{
			name:        "bad category and tag",
			req:         types.CreateFAQRequest{Question: "Q", Answer: "A", Category: "Gossip", Tags: []string{"a;b"}},
			wantInvalid: []string{"category", "tags"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.req)
			if tt.wantMissing == nil && tt.wantInvalid == nil {
				assert.NoError(t, err)
				return
			}

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.wantMissing, verr.Missing)
			assert.Equal(t, tt.wantInvalid, verr.Invalid)
		})
	}
}

func TestNormalize(t *testing.T) {
	got := Normalize(types.CreateFAQRequest{
		Question: "  Q ",
		Answer:   "\tA\n",
		Category: " Features ",
		Tags:     []string{" a ", "", "   ", "b"},
	})

	assert.Equal(t, types.CreateFAQRequest{
		Question: "Q",
		Answer:   "A",
		Category: "Features",
		Tags:     []string{"a", "b"},
	}, got)
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{Missing: []string{"question"}, Invalid: []string{"category"}}
	assert.Equal(t, "missing required fields: question; invalid fields: category", err.Error())
	assert.Equal(t, "invalid FAQ item", (&ValidationError{}).Error())
}

func TestStorageError_Unwrap(t *testing.T) {
	cause := errors.New("disk full")
	err := &StorageError{Op: "write", Cause: cause}
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "faq storage write failed")
}
