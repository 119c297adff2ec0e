package http

import "net/http"

func (a *API) handleStockReport(w http.ResponseWriter, r *http.Request) {
	report, err := a.analyticsSvc.StockReport(r.Context())
	if err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"lowStock":   mapStockRows(report.LowStock),
		"outOfStock": mapStockRows(report.OutOfStock),
	})
}
