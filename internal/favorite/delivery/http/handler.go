package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/favoritesapp/favorites-api/internal/favorite/domain"
	"github.com/favoritesapp/favorites-api/internal/favorite/usecase/command"
	"github.com/favoritesapp/favorites-api/internal/favorite/usecase/query"
	userhttp "github.com/favoritesapp/favorites-api/internal/user/delivery/http"
	userdomain "github.com/favoritesapp/favorites-api/internal/user/domain"
	"github.com/favoritesapp/favorites-api/pkg/logger"
)

// FavoriteHandler handles HTTP requests for favorites
type FavoriteHandler struct {
	// Command handlers
	addHandler    *command.AddFavoriteHandler
	removeHandler *command.RemoveFavoriteHandler

	// Query handlers
	listHandler    *query.ListFavoritesHandler
	listAllHandler *query.ListAllFavoritesHandler
	detailHandler  *query.GetUserFavoritesHandler

	presenter *Presenter

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	addedCounter   prometheus.Counter
	removedCounter prometheus.Counter
}

// NewFavoriteHandler creates a new favorite handler (manual DI)
func NewFavoriteHandler(
	favorites domain.FavoriteRepository,
	products domain.ProductRepository,
	catalogGateway domain.CatalogGateway,
	events domain.EventPublisher,
) *FavoriteHandler {
	return NewFavoriteHandlerWithDI(
		command.NewAddFavoriteHandler(favorites, products, catalogGateway, events),
		command.NewRemoveFavoriteHandler(favorites, events),
		query.NewListFavoritesHandler(favorites),
		query.NewListAllFavoritesHandler(favorites),
		query.NewGetUserFavoritesHandler(favorites),
		NewPresenter(catalogGateway),
	)
}

// NewFavoriteHandlerWithDI creates a new favorite handler from prebuilt
// usecase handlers. Used by Wire.
func NewFavoriteHandlerWithDI(
	addHandler *command.AddFavoriteHandler,
	removeHandler *command.RemoveFavoriteHandler,
	listHandler *query.ListFavoritesHandler,
	listAllHandler *query.ListAllFavoritesHandler,
	detailHandler *query.GetUserFavoritesHandler,
	presenter *Presenter,
) *FavoriteHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "favorite_service_requests_total",
			Help: "Total number of requests to the favorite endpoints",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "favorite_service_request_duration_seconds",
			Help:    "Duration of favorite endpoint requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	addedCounter := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "favorite_service_favorites_added_total",
		Help: "Total number of favorites added",
	})

	removedCounter := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "favorite_service_favorites_removed_total",
		Help: "Total number of favorites removed",
	})

	prometheus.MustRegister(requestCounter, requestLatency, addedCounter, removedCounter)

	return &FavoriteHandler{
		addHandler:     addHandler,
		removeHandler:  removeHandler,
		listHandler:    listHandler,
		listAllHandler: listAllHandler,
		detailHandler:  detailHandler,
		presenter:      presenter,
		requestCounter: requestCounter,
		requestLatency: requestLatency,
		addedCounter:   addedCounter,
		removedCounter: removedCounter,
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// metricsMiddleware wraps handlers with Prometheus metrics
func (h *FavoriteHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
	}
}

// ListFavorites handles GET /favorites (authenticated user's own favorites)
func (h *FavoriteHandler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(userhttp.UserIDKey).(uint)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	page, perPage := pagingParams(r)
	result, err := h.listHandler.Handle(r.Context(), query.ListFavoritesQuery{
		UserID:  userID,
		Page:    page,
		PerPage: perPage,
	})
	if err != nil {
		h.respondDomainError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"data":       h.presenter.PresentProducts(r.Context(), result.Items),
		"pagination": NewPagination(result.Page, result.PerPage, result.Total, len(result.Items)),
	})
}

// ListAllFavorites handles GET /admin/favorites (admin only; the role check
// happens in the admin middleware before this runs)
func (h *FavoriteHandler) ListAllFavorites(w http.ResponseWriter, r *http.Request) {
	page, perPage := pagingParams(r)
	result, err := h.listAllHandler.Handle(r.Context(), query.ListAllFavoritesQuery{
		Page:    page,
		PerPage: perPage,
	})
	if err != nil {
		h.respondDomainError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"data":       h.presenter.PresentUsers(r.Context(), result.Items),
		"pagination": NewPagination(result.Page, result.PerPage, result.Total, len(result.Items)),
	})
}

// GetUserFavorites handles GET /users/{id}/favorites (self or admin)
func (h *FavoriteHandler) GetUserFavorites(w http.ResponseWriter, r *http.Request) {
	authUserID, _ := r.Context().Value(userhttp.UserIDKey).(uint)
	role, _ := r.Context().Value(userhttp.RoleKey).(string)

	vars := mux.Vars(r)
	targetID, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	// Capability check at the boundary: the usecase itself is role-agnostic
	isAdmin := role == userdomain.RoleAdmin
	isSelf := uint(targetID) == authUserID
	if !isAdmin && !isSelf {
		h.respondError(w, http.StatusForbidden, "Access denied")
		return
	}

	user, err := h.detailHandler.Handle(r.Context(), query.GetUserFavoritesQuery{UserID: uint(targetID)})
	if err != nil {
		h.respondDomainError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, h.presenter.PresentUser(r.Context(), *user))
}

// AddFavorite handles POST /favorites. The body carries the external catalog
// product id, not a local mirror id.
func (h *FavoriteHandler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(userhttp.UserIDKey).(uint)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	var req struct {
		ProductID uint `json:"product_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	product, err := h.addHandler.Handle(r.Context(), command.AddFavoriteCommand{
		UserID:            userID,
		ExternalProductID: req.ProductID,
	})
	if err != nil {
		h.respondDomainError(w, r, err)
		return
	}

	h.addedCounter.Inc()
	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Product added to favorites",
		"product": product,
	})
}

// RemoveFavorite handles DELETE /favorites/{productId}. The path carries the
// local mirror id returned by the add operation.
func (h *FavoriteHandler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(userhttp.UserIDKey).(uint)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	vars := mux.Vars(r)
	productID, err := strconv.ParseUint(vars["productId"], 10, 32)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	err = h.removeHandler.Handle(r.Context(), command.RemoveFavoriteCommand{
		UserID:    userID,
		ProductID: uint(productID),
	})
	if err != nil {
		h.respondDomainError(w, r, err)
		return
	}

	h.removedCounter.Inc()
	h.respondJSON(w, http.StatusOK, map[string]string{
		"message": "Product removed from favorites",
	})
}

// respondDomainError maps the domain error taxonomy onto HTTP statuses
func (h *FavoriteHandler) respondDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidProductID):
		h.respondError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, domain.ErrAlreadyFavorited):
		h.respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrProductNotFound),
		errors.Is(err, domain.ErrNotFavorited),
		errors.Is(err, domain.ErrUserNotFound):
		h.respondError(w, http.StatusNotFound, err.Error())
	default:
		logger.Error(r.Context()).Err(err).Msg("Favorite operation failed")
		h.respondError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func (h *FavoriteHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *FavoriteHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"message": message})
}

func pagingParams(r *http.Request) (int, int) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))
	return page, perPage
}

// RegisterRoutes registers all favorite routes
func (h *FavoriteHandler) RegisterRoutes(router *mux.Router, mw *userhttp.Middleware) {
	router.HandleFunc("/favorites", h.metricsMiddleware("/favorites", mw.Authenticate(h.ListFavorites))).Methods("GET")
	router.HandleFunc("/favorites", h.metricsMiddleware("/favorites", mw.Authenticate(h.AddFavorite))).Methods("POST")
	router.HandleFunc("/favorites/{productId}", h.metricsMiddleware("/favorites/{productId}", mw.Authenticate(h.RemoveFavorite))).Methods("DELETE")
	router.HandleFunc("/users/{id}/favorites", h.metricsMiddleware("/users/{id}/favorites", mw.Authenticate(h.GetUserFavorites))).Methods("GET")

	router.HandleFunc("/admin/favorites", h.metricsMiddleware("/admin/favorites", mw.AdminOnly(h.ListAllFavorites))).Methods("GET")
}
