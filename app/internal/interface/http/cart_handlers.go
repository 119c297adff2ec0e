package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	cartuc "example.com/shop-admin/app/internal/usecase/cart"
)

type addCartItemRequest struct {
	CartID    string          `json:"cartId" validate:"required"`
	ProductID string          `json:"productId" validate:"required"`
	Name      string          `json:"name"`
	Variant   string          `json:"variant"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int64           `json:"quantity" validate:"required,gt=0"`
	Image     string          `json:"image"`
}

// Quantity is a pointer so that an explicit 0 (remove the line) passes
// the required check.
type updateCartItemRequest struct {
	CartID    string `json:"cartId" validate:"required"`
	ProductID string `json:"productId" validate:"required"`
	Variant   string `json:"variant"`
	Quantity  *int64 `json:"quantity" validate:"required"`
}

type removeCartItemRequest struct {
	CartID    string `json:"cartId" validate:"required"`
	ProductID string `json:"productId"`
	Variant   string `json:"variant"`
}

func (a *API) handleAddCartItem(w http.ResponseWriter, r *http.Request) {
	var req addCartItemRequest
	if err := a.decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	cart, err := a.cartSvc.AddItem(r.Context(), cartuc.AddItemInput{
		CartID:    req.CartID,
		ProductID: req.ProductID,
		Name:      req.Name,
		Variant:   req.Variant,
		Price:     req.Price,
		Quantity:  req.Quantity,
		Image:     req.Image,
	})
	if err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapCart(cart))
}

func (a *API) handleUpdateCartItem(w http.ResponseWriter, r *http.Request) {
	var req updateCartItemRequest
	if err := a.decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	cart, err := a.cartSvc.UpdateItem(r.Context(), cartuc.UpdateItemInput{
		CartID:    req.CartID,
		ProductID: req.ProductID,
		Variant:   req.Variant,
		Quantity:  *req.Quantity,
	})
	if err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapCart(cart))
}

func (a *API) handleRemoveCartItem(w http.ResponseWriter, r *http.Request) {
	var req removeCartItemRequest
	if err := a.decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	cart, err := a.cartSvc.RemoveItem(r.Context(), cartuc.RemoveItemInput{
		CartID:    req.CartID,
		ProductID: req.ProductID,
		Variant:   req.Variant,
	})
	if err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapCart(cart))
}

func (a *API) handleGetCart(w http.ResponseWriter, r *http.Request) {
	cart, err := a.cartSvc.GetCart(r.Context(), chi.URLParam(r, "cartId"))
	if err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapCart(cart))
}
