package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/favoritesapp/favorites-api/internal/catalog"
)

// CatalogHandler exposes the external catalog browse endpoints. It proxies the
// live upstream data without touching local storage.
type CatalogHandler struct {
	client *catalog.Client
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(client *catalog.Client) *CatalogHandler {
	return &CatalogHandler{client: client}
}

// ListProducts handles GET /products
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.client.GetAllProducts(r.Context())
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "Failed to fetch products")
		return
	}

	h.respondJSON(w, http.StatusOK, products)
}

// GetProduct handles GET /products/{id}
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil || id == 0 {
		h.respondError(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	product, err := h.client.GetProductByID(r.Context(), uint(id))
	if err != nil {
		h.respondError(w, http.StatusNotFound, "Product not found")
		return
	}

	h.respondJSON(w, http.StatusOK, product)
}

func (h *CatalogHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *CatalogHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"message": message})
}

// RegisterRoutes registers catalog browse routes behind the auth middleware
func (h *CatalogHandler) RegisterRoutes(router *mux.Router, authenticate func(http.HandlerFunc) http.HandlerFunc) {
	router.HandleFunc("/products", authenticate(h.ListProducts)).Methods("GET")
	router.HandleFunc("/products/{id}", authenticate(h.GetProduct)).Methods("GET")
}
