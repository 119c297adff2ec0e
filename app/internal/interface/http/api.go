package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/rs/cors"
	"github.com/shopspring/decimal"

	domadmin "example.com/shop-admin/app/internal/domain/admin"
	domcart "example.com/shop-admin/app/internal/domain/cart"
	dominventory "example.com/shop-admin/app/internal/domain/inventory"
	domproduct "example.com/shop-admin/app/internal/domain/product"
	"example.com/shop-admin/app/internal/infra/logger"
	analyticsuc "example.com/shop-admin/app/internal/usecase/analytics"
	authuc "example.com/shop-admin/app/internal/usecase/auth"
	cartuc "example.com/shop-admin/app/internal/usecase/cart"
	inventoryuc "example.com/shop-admin/app/internal/usecase/inventory"
	productuc "example.com/shop-admin/app/internal/usecase/product"
)

// Pinger reports whether a backing store is reachable.
type Pinger func(ctx context.Context) error

type API struct {
	authSvc      *authuc.Service
	productSvc   *productuc.Service
	cartSvc      *cartuc.Service
	inventorySvc *inventoryuc.Service
	analyticsSvc *analyticsuc.Service
	tokenSvc     authuc.TokenService
	validator    *validator.Validate
	log          *logger.Logger
	corsOrigins  []string
	dbChecks     map[string]Pinger
}

type Dependencies struct {
	AuthService      *authuc.Service
	ProductService   *productuc.Service
	CartService      *cartuc.Service
	InventoryService *inventoryuc.Service
	AnalyticsService *analyticsuc.Service
	TokenService     authuc.TokenService
	Logger           *logger.Logger
	CORSOrigins      []string
	DBChecks         map[string]Pinger
}

func NewAPI(deps Dependencies) *API {
	log := deps.Logger
	if log == nil {
		log = logger.NewNop()
	}
	return &API{
		authSvc:      deps.AuthService,
		productSvc:   deps.ProductService,
		cartSvc:      deps.CartService,
		inventorySvc: deps.InventoryService,
		analyticsSvc: deps.AnalyticsService,
		tokenSvc:     deps.TokenService,
		validator:    validator.New(),
		log:          log,
		corsOrigins:  deps.CORSOrigins,
		dbChecks:     deps.DBChecks,
	}
}

func (a *API) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(a.requestLogger)
	r.Use(chimw.Recoverer)
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   a.corsOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}).Handler)
	r.Use(chimw.AllowContentType("application/json", "text/plain"))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/health/db", a.handleHealthDB)

	r.Route("/api", func(r chi.Router) {
		r.Post("/admin/login", a.handleLogin)

		r.Route("/cart", func(cr chi.Router) {
			cr.Post("/add", a.handleAddCartItem)
			cr.Put("/update", a.handleUpdateCartItem)
			cr.Delete("/remove", a.handleRemoveCartItem)
			cr.Post("/remove", a.handleRemoveCartItem)
			cr.Get("/{cartId}", a.handleGetCart)
		})

		r.Get("/products", a.handleListProducts)
		r.Get("/products/{id}", a.handleGetProduct)

		r.Group(func(ar chi.Router) {
			ar.Use(a.authMiddleware)

			ar.Post("/products", a.handleCreateProduct)
			ar.Put("/products/{id}", a.handleUpdateProduct)
			ar.Delete("/products/{id}", a.handleDeleteProduct)

			ar.Post("/inventory", a.handleAddStockEntry)
			ar.Get("/inventory/{productId}", a.handleListStockEntries)

			ar.Get("/admin/analytics/stock", a.handleStockReport)
		})
	})

	return r
}

func (a *API) handleHealthDB(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	result := make(map[string]string, len(a.dbChecks))
	for name, ping := range a.dbChecks {
		if err := ping(ctx); err != nil {
			status = http.StatusServiceUnavailable
			result[name] = err.Error()
			continue
		}
		result[name] = "ok"
	}
	writeJSON(w, status, result)
}

func (a *API) decodeAndValidate(r *http.Request, dst any) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return err
	}
	return a.validator.Struct(dst)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

type errorResponse struct {
	Message string `json:"message"`
}

func respondError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Message: err.Error()})
}

// money renders a decimal as a bare JSON number.
func money(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}

func mapCart(c *domcart.Cart) map[string]any {
	items := make([]map[string]any, 0, len(c.Items))
	for _, item := range c.Items {
		items = append(items, map[string]any{
			"productId": item.ProductID,
			"name":      item.Name,
			"variant":   item.Variant,
			"price":     money(item.Price),
			"quantity":  item.Quantity,
			"image":     item.Image,
		})
	}
	return map[string]any{
		"cartId":      c.CartID,
		"items":       items,
		"totalAmount": money(c.TotalAmount),
	}
}

func mapProduct(p *domproduct.Product) map[string]any {
	variants := make([]map[string]any, 0, len(p.Variants))
	for _, v := range p.Variants {
		variants = append(variants, map[string]any{
			"unit":  v.Unit,
			"stock": v.Stock,
		})
	}
	return map[string]any{
		"id":          p.ID,
		"name":        p.Name,
		"description": p.Description,
		"category":    p.Category,
		"image":       p.Image,
		"price":       money(p.Price),
		"isActive":    p.IsActive,
		"variants":    variants,
		"createdAt":   p.CreatedAt,
		"updatedAt":   p.UpdatedAt,
	}
}

func mapEntry(e *dominventory.Entry) map[string]any {
	return map[string]any{
		"id":        e.ID,
		"productId": e.ProductID,
		"variant":   e.Variant,
		"quantity":  e.Quantity,
		"type":      e.Type,
		"note":      e.Note,
		"createdAt": e.CreatedAt,
	}
}

func mapStockRows(rows []analyticsuc.StockRow) []map[string]any {
	out := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		out = append(out, map[string]any{
			"productId": row.ProductID,
			"name":      row.Name,
			"variant":   row.Variant,
			"stock":     row.Stock,
		})
	}
	return out
}

func mapAdmin(ad *domadmin.Admin) map[string]any {
	return map[string]any{
		"id":    ad.ID,
		"name":  ad.Name,
		"email": ad.Email,
	}
}

func handleDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domcart.ErrInvalidInput),
		errors.Is(err, domproduct.ErrVariantNotFound),
		errors.Is(err, domproduct.ErrInvalidProduct),
		errors.Is(err, domproduct.ErrOutOfStock),
		errors.Is(err, dominventory.ErrInvalidEntryType),
		errors.Is(err, dominventory.ErrInvalidQuantity),
		errors.Is(err, domadmin.ErrInvalidCredential):
		respondError(w, http.StatusBadRequest, err)
	case errors.Is(err, domcart.ErrCartNotFound),
		errors.Is(err, domcart.ErrItemNotFound),
		errors.Is(err, domproduct.ErrProductNotFound),
		errors.Is(err, domadmin.ErrAdminNotFound):
		respondError(w, http.StatusNotFound, err)
	case errors.Is(err, domadmin.ErrEmailAlreadyUsed):
		respondError(w, http.StatusConflict, err)
	case errors.Is(err, domadmin.ErrUnauthorized):
		respondError(w, http.StatusUnauthorized, err)
	default:
		respondError(w, http.StatusInternalServerError, err)
	}
}
