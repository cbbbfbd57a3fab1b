package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"rentaldesk-backend/internal/security"
	"rentaldesk-backend/internal/service"
)

// NewRouter builds the API surface. Everything under /api/v1 except the auth
// endpoints requires a valid access token; every mutating route additionally
// requires a managing role. Reads are open to any authenticated user.
func NewRouter(
	auth service.AuthService,
	clients service.ClientService,
	providers service.ProviderService,
	products service.ProductService,
	rents service.RentService,
	tokens security.TokenManager,
) *mux.Router {
	router := mux.NewRouter()
	router.Use(RequestIDMiddleware)

	api := router.PathPrefix("/api/v1").Subrouter()

	authHandler := NewAuthHandler(auth)
	api.HandleFunc("/auth/register", authHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/refresh", authHandler.Refresh).Methods(http.MethodPost)

	protected := api.NewRoute().Subrouter()
	protected.Use(AuthMiddleware(tokens))

	clientHandler := NewClientHandler(clients)
	protected.HandleFunc("/clients", RequireManager(clientHandler.Create)).Methods(http.MethodPost)
	protected.HandleFunc("/clients", clientHandler.List).Methods(http.MethodGet)
	protected.HandleFunc("/clients/{id}", clientHandler.Get).Methods(http.MethodGet)
	protected.HandleFunc("/clients/{id}", RequireManager(clientHandler.Update)).Methods(http.MethodPatch)
	protected.HandleFunc("/clients/{id}", RequireManager(clientHandler.Delete)).Methods(http.MethodDelete)

	providerHandler := NewProviderHandler(providers)
	protected.HandleFunc("/providers", RequireManager(providerHandler.Create)).Methods(http.MethodPost)
	protected.HandleFunc("/providers", providerHandler.List).Methods(http.MethodGet)
	protected.HandleFunc("/providers/{id}", providerHandler.Get).Methods(http.MethodGet)
	protected.HandleFunc("/providers/{id}", RequireManager(providerHandler.Update)).Methods(http.MethodPatch)
	protected.HandleFunc("/providers/{id}", RequireManager(providerHandler.Delete)).Methods(http.MethodDelete)

	productHandler := NewProductHandler(products)
	protected.HandleFunc("/products", RequireManager(productHandler.Create)).Methods(http.MethodPost)
	protected.HandleFunc("/products", productHandler.List).Methods(http.MethodGet)
	protected.HandleFunc("/products/{id}", productHandler.Get).Methods(http.MethodGet)
	protected.HandleFunc("/products/{id}", RequireManager(productHandler.Update)).Methods(http.MethodPatch)
	protected.HandleFunc("/products/{id}", RequireManager(productHandler.Delete)).Methods(http.MethodDelete)

	rentHandler := NewRentHandler(rents)
	protected.HandleFunc("/rents", RequireManager(rentHandler.Create)).Methods(http.MethodPost)
	protected.HandleFunc("/rents", rentHandler.List).Methods(http.MethodGet)
	protected.HandleFunc("/rents/{id}", rentHandler.Get).Methods(http.MethodGet)
	protected.HandleFunc("/rents/{id}", RequireManager(rentHandler.Update)).Methods(http.MethodPatch)
	protected.HandleFunc("/rents/{id}", RequireManager(rentHandler.Delete)).Methods(http.MethodDelete)
	protected.HandleFunc("/rents/{id}/pickup", RequireManager(rentHandler.Pickup)).Methods(http.MethodPost)
	protected.HandleFunc("/rents/{id}/end-time", RequireManager(rentHandler.EndTime)).Methods(http.MethodPost)
	protected.HandleFunc("/rents/{id}/flag-for-pickup", RequireManager(rentHandler.FlagForPickup)).Methods(http.MethodPost)
	protected.HandleFunc("/rents/{id}/finalize", RequireManager(rentHandler.Finalize)).Methods(http.MethodPost)

	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	return router
}
