package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAddStockEntry(t *testing.T) {
	ta := setupTestAPI(t, nil)

	rec := ta.do(t, http.MethodPost, "/api/inventory", ta.token, map[string]any{
		"productId": "P1", "variant": "5kg", "quantity": 3, "type": "IN", "note": "supplier",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := decodeBody(t, rec)
	require.Equal(t, float64(5), body["stock"])
	entry := body["entry"].(map[string]any)
	require.Equal(t, "IN", entry["type"])
	require.Equal(t, "supplier", entry["note"])

	rec = ta.do(t, http.MethodPost, "/api/inventory", ta.token, map[string]any{
		"productId": "P1", "variant": "5kg", "quantity": 6, "type": "OUT",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "Insufficient stock. Only 5 available.", decodeBody(t, rec)["message"])

	rec = ta.do(t, http.MethodGet, "/api/products/P1", "", nil)
	require.Contains(t, rec.Body.String(), `{"stock":5,"unit":"5kg"}`)
}

func TestAddStockEntry_Validation(t *testing.T) {
	ta := setupTestAPI(t, nil)

	tests := []struct {
		name string
		body map[string]any
		want int
	}{
		{"Bad type", map[string]any{"productId": "P1", "variant": "1kg", "quantity": 1, "type": "MOVE"}, http.StatusBadRequest},
		{"Zero quantity", map[string]any{"productId": "P1", "variant": "1kg", "quantity": 0, "type": "IN"}, http.StatusBadRequest},
		{"Unknown variant", map[string]any{"productId": "P1", "variant": "9kg", "quantity": 1, "type": "IN"}, http.StatusBadRequest},
		{"Unknown product", map[string]any{"productId": "P9", "variant": "1kg", "quantity": 1, "type": "IN"}, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := ta.do(t, http.MethodPost, "/api/inventory", ta.token, tt.body)
			require.Equal(t, tt.want, rec.Code, rec.Body.String())
		})
	}
}

func TestListStockEntries(t *testing.T) {
	ta := setupTestAPI(t, nil)

	for _, typ := range []string{"IN", "OUT"} {
		rec := ta.do(t, http.MethodPost, "/api/inventory", ta.token, map[string]any{
			"productId": "P1", "variant": "1kg", "quantity": 1, "type": typ,
		})
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := ta.do(t, http.MethodGet, "/api/inventory/P1", ta.token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"type":"OUT"`)

	rec = ta.do(t, http.MethodGet, "/api/inventory/P1", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
