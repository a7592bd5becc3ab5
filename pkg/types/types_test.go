package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisplayName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		productName string
		variantName string
		want        string
	}{
		{"real variant appended", "Widget", "Red", "Widget - Red"},
		{"empty variant dropped", "Widget", "", "Widget"},
		{"sentinel variant dropped", "Widget", "Default Title", "Widget"},
		{"sentinel is case sensitive", "Widget", "default title", "Widget - default title"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, DisplayName(tt.productName, tt.variantName))
		})
	}
}

func TestUrgencyDescription(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Stock is low (< 5). Immediate restock required", UrgencyLow.Description())
	assert.Equal(t, "Stock is moderate (>= 5 and < 10). Plan restock soon", UrgencyMedium.Description())
	assert.Equal(t, "Stock is decreasing (>= 10 and < 20). Restock recommended", UrgencyHigh.Description())
	assert.Equal(t, "Stock level is high (>= 20). Monitor regularly", UrgencyCritical.Description())
	assert.Equal(t, "No urgency level found.", UrgencyLevel("").Description())
}

func TestCountUnmarshal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		json          string
		wantCount     int
		wantPrecision string
		wantErr       bool
	}{
		{"bare integer", `42`, 42, "", false},
		{"object with precision", `{"count":250,"precision":"AT_LEAST"}`, 250, "AT_LEAST", false},
		{"object without precision", `{"count":7}`, 7, "", false},
		{"zero", `0`, 0, "", false},
		{"non-numeric scalar", `"many"`, 0, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var c Count
			err := json.Unmarshal([]byte(tt.json), &c)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantCount, c.Count)
			assert.Equal(t, tt.wantPrecision, c.Precision)
		})
	}
}

func TestCountMarshalPreservesShape(t *testing.T) {
	t.Parallel()

	bare, err := json.Marshal(Count{Count: 42})
	require.NoError(t, err)
	assert.Equal(t, `42`, string(bare))

	obj, err := json.Marshal(Count{Count: 250, Precision: "AT_LEAST"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"count":250,"precision":"AT_LEAST"}`, string(obj))
}

func TestProductRecordKey(t *testing.T) {
	t.Parallel()

	r := ProductRecord{ProductID: "p1", VariantID: 11}
	assert.Equal(t, ProductKey{ProductID: "p1", VariantID: 11}, r.Key())
}

func TestProductRecordSKUNull(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(ProductRecord{ProductID: "p1"})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"sku":null`, "missing SKU stays an explicit null")
}
