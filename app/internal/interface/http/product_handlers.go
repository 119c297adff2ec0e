package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	domproduct "example.com/shop-admin/app/internal/domain/product"
)

type variantRequest struct {
	Unit  string `json:"unit" validate:"required"`
	Stock int64  `json:"stock" validate:"gte=0"`
}

type createProductRequest struct {
	Name        string           `json:"name" validate:"required"`
	Description string           `json:"description"`
	Category    string           `json:"category"`
	Image       string           `json:"image"`
	Price       decimal.Decimal  `json:"price"`
	IsActive    *bool            `json:"isActive"`
	Variants    []variantRequest `json:"variants" validate:"dive"`
}

type updateProductRequest struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Category    string           `json:"category"`
	Image       string           `json:"image"`
	Price       decimal.Decimal  `json:"price"`
	IsActive    *bool            `json:"isActive"`
	Variants    []variantRequest `json:"variants" validate:"dive"`
}

func (a *API) handleListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	onlyActive, _ := strconv.ParseBool(q.Get("active"))

	products, err := a.productSvc.List(r.Context(), domproduct.ListFilter{
		Category:   q.Get("category"),
		Search:     q.Get("search"),
		OnlyActive: onlyActive,
	})
	if err != nil {
		handleDomainError(w, err)
		return
	}

	resp := make([]map[string]any, 0, len(products))
	for _, p := range products {
		resp = append(resp, mapProduct(p))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (a *API) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := a.productSvc.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapProduct(p))
}

func (a *API) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if err := a.decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	p, err := a.productSvc.Create(r.Context(), &domproduct.Product{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Image:       req.Image,
		Price:       req.Price,
		IsActive:    isActive,
		Variants:    toVariants(req.Variants),
	})
	if err != nil {
		handleDomainError(w, err)
		return
	}

	if admin := getAuthAdmin(r.Context()); admin != nil {
		a.log.Info("product created", "product_id", p.ID, "admin", admin.Email)
	}
	writeJSON(w, http.StatusCreated, mapProduct(p))
}

func (a *API) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	var req updateProductRequest
	if err := a.decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	id := chi.URLParam(r, "id")
	var isActive bool
	if req.IsActive != nil {
		isActive = *req.IsActive
	} else {
		current, err := a.productSvc.GetByID(r.Context(), id)
		if err != nil {
			handleDomainError(w, err)
			return
		}
		isActive = current.IsActive
	}

	p, err := a.productSvc.Update(r.Context(), &domproduct.Product{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Image:       req.Image,
		Price:       req.Price,
		IsActive:    isActive,
		Variants:    toVariants(req.Variants),
	})
	if err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapProduct(p))
}

func (a *API) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := a.productSvc.Delete(r.Context(), id); err != nil {
		handleDomainError(w, err)
		return
	}

	if admin := getAuthAdmin(r.Context()); admin != nil {
		a.log.Info("product deleted", "product_id", id, "admin", admin.Email)
	}
	w.WriteHeader(http.StatusNoContent)
}

func toVariants(reqs []variantRequest) []domproduct.Variant {
	if len(reqs) == 0 {
		return nil
	}
	variants := make([]domproduct.Variant, 0, len(reqs))
	for _, v := range reqs {
		variants = append(variants, domproduct.Variant{Unit: v.Unit, Stock: v.Stock})
	}
	return variants
}
