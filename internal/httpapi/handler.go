package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/nikolayk812/storefront-cart/internal/cart"
	"github.com/nikolayk812/storefront-cart/internal/domain"
	"github.com/nikolayk812/storefront-cart/internal/shopify"
	"go.uber.org/zap"
)

// Handler exposes the cart facade and the catalog over HTTP. The cart
// endpoints mirror the facade surface one to one; checkout answers with a
// redirect to the URL the bridge returns.
type Handler struct {
	cart    *cart.Service
	catalog *shopify.Client
	logger  *zap.Logger
}

func NewHandler(cartService *cart.Service, catalog *shopify.Client, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Handler{
		cart:    cartService,
		catalog: catalog,
		logger:  logger,
	}
}

func (h *Handler) Router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/api/cart", h.getCart).Methods(http.MethodGet)
	r.HandleFunc("/api/cart", h.clearCart).Methods(http.MethodDelete)
	r.HandleFunc("/api/cart/items", h.addItem).Methods(http.MethodPost)
	r.HandleFunc("/api/cart/items/{id}", h.updateQuantity).Methods(http.MethodPut)
	r.HandleFunc("/api/cart/items/{id}", h.removeItem).Methods(http.MethodDelete)
	r.HandleFunc("/api/checkout", h.checkout).Methods(http.MethodPost)

	r.HandleFunc("/api/products", h.listProducts).Methods(http.MethodGet)
	r.HandleFunc("/api/products/{handle}", h.getProduct).Methods(http.MethodGet)
	r.HandleFunc("/api/collections", h.listCollections).Methods(http.MethodGet)

	return r
}

type cartResponse struct {
	domain.Cart
	IsLoading bool `json:"isLoading"`
}

func (h *Handler) currentCart() cartResponse {
	return cartResponse{
		Cart:      h.cart.Cart(),
		IsLoading: h.cart.Loading(),
	}
}

func (h *Handler) getCart(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, h.currentCart())
}

func (h *Handler) clearCart(w http.ResponseWriter, r *http.Request) {
	h.cart.ClearCart(r.Context())
	h.writeJSON(w, http.StatusOK, h.currentCart())
}

type addItemRequest struct {
	ProductID string             `json:"productId"`
	VariantID string             `json:"variantId"`
	Title     string             `json:"title"`
	Image     string             `json:"image"`
	Price     domain.Money       `json:"price"`
	Quantity  int                `json:"quantity"`
	Variant   domain.VariantInfo `json:"variant"`
}

func (h *Handler) addItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.ProductID == "" || req.VariantID == "" {
		h.writeError(w, http.StatusBadRequest, "productId and variantId are required")
		return
	}

	h.cart.AddItem(r.Context(), domain.LineItem{
		ID:        domain.LineItemID(req.ProductID, req.VariantID),
		ProductID: req.ProductID,
		VariantID: req.VariantID,
		Title:     req.Title,
		Image:     req.Image,
		Price:     req.Price,
		Quantity:  req.Quantity,
		Variant:   req.Variant,
	})

	h.writeJSON(w, http.StatusOK, h.currentCart())
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func (h *Handler) updateQuantity(w http.ResponseWriter, r *http.Request) {
	var req updateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	h.cart.UpdateQuantity(r.Context(), mux.Vars(r)["id"], req.Quantity)
	h.writeJSON(w, http.StatusOK, h.currentCart())
}

func (h *Handler) removeItem(w http.ResponseWriter, r *http.Request) {
	h.cart.RemoveItem(r.Context(), mux.Vars(r)["id"])
	h.writeJSON(w, http.StatusOK, h.currentCart())
}

func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	url, err := h.cart.Checkout(r.Context())
	if err != nil {
		h.writeCheckoutError(w, err)
		return
	}

	http.Redirect(w, r, url, http.StatusSeeOther)
}

// writeCheckoutError maps the checkout error taxonomy onto responses:
// rejections carry the service's field/message list verbatim, transport
// failures get a generic message with the cause logged only.
func (h *Handler) writeCheckoutError(w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrEmptyCart) {
		h.writeError(w, http.StatusUnprocessableEntity, "cart is empty")
		return
	}

	var rejected *shopify.RejectedError
	if errors.As(err, &rejected) {
		h.writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":      rejected.Error(),
			"userErrors": rejected.Errors,
		})
		return
	}

	h.logger.Error("checkout failed", zap.Error(err))
	h.writeError(w, http.StatusBadGateway, "failed to create checkout")
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	first := 20
	if raw := r.URL.Query().Get("first"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			h.writeError(w, http.StatusBadRequest, "first must be a positive integer")
			return
		}
		first = parsed
	}

	page, err := h.catalog.Products(r.Context(), first, r.URL.Query().Get("after"))
	if err != nil {
		h.logger.Error("listing products failed", zap.Error(err))
		h.writeError(w, http.StatusBadGateway, "failed to fetch products")
		return
	}

	h.writeJSON(w, http.StatusOK, page)
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	product, found, err := h.catalog.ProductByHandle(r.Context(), mux.Vars(r)["handle"])
	if err != nil {
		h.logger.Error("fetching product failed", zap.Error(err))
		h.writeError(w, http.StatusBadGateway, "failed to fetch product")
		return
	}
	if !found {
		h.writeError(w, http.StatusNotFound, "product not found")
		return
	}

	h.writeJSON(w, http.StatusOK, product)
}

func (h *Handler) listCollections(w http.ResponseWriter, r *http.Request) {
	collections, err := h.catalog.Collections(r.Context(), 10)
	if err != nil {
		h.logger.Error("listing collections failed", zap.Error(err))
		h.writeError(w, http.StatusBadGateway, "failed to fetch collections")
		return
	}

	h.writeJSON(w, http.StatusOK, collections)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Warn("encoding response failed", zap.Error(err))
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
