package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	dominventory "example.com/shop-admin/app/internal/domain/inventory"
	inventoryuc "example.com/shop-admin/app/internal/usecase/inventory"
)

type addStockEntryRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Variant   string `json:"variant" validate:"required"`
	Quantity  int64  `json:"quantity" validate:"required,gt=0"`
	Type      string `json:"type" validate:"required,oneof=IN OUT"`
	Note      string `json:"note"`
}

func (a *API) handleAddStockEntry(w http.ResponseWriter, r *http.Request) {
	var req addStockEntryRequest
	if err := a.decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	res, err := a.inventorySvc.AddEntry(r.Context(), inventoryuc.AddEntryInput{
		ProductID: req.ProductID,
		Variant:   req.Variant,
		Quantity:  req.Quantity,
		Type:      dominventory.EntryType(req.Type),
		Note:      req.Note,
	})
	if err != nil {
		handleDomainError(w, err)
		return
	}

	if admin := getAuthAdmin(r.Context()); admin != nil {
		a.log.Info("stock entry recorded",
			"product_id", res.Entry.ProductID,
			"variant", res.Entry.Variant,
			"type", res.Entry.Type,
			"stock", res.Stock,
			"admin", admin.Email,
		)
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"entry": mapEntry(res.Entry),
		"stock": res.Stock,
	})
}

func (a *API) handleListStockEntries(w http.ResponseWriter, r *http.Request) {
	entries, err := a.inventorySvc.ListEntries(r.Context(), chi.URLParam(r, "productId"))
	if err != nil {
		handleDomainError(w, err)
		return
	}

	resp := make([]map[string]any, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, mapEntry(e))
	}
	writeJSON(w, http.StatusOK, resp)
}
