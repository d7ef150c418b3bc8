package routes

import (
	"net/http"

	"github.com/caresure/providerportal/internal/api/handlers"
	"github.com/caresure/providerportal/internal/api/middleware"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	providerHandler     *handlers.ProviderHandler
	verificationHandler *handlers.VerificationHandler
	empanelmentHandler  *handlers.EmpanelmentHandler
	censusHandler       *handlers.CensusHandler
	geolocationHandler  *handlers.GeolocationHandler
	sseHandler          *handlers.SSEHandler

	tracing bool
}

// NewRouter creates a new router
func NewRouter(
	providerHandler *handlers.ProviderHandler,
	verificationHandler *handlers.VerificationHandler,
	empanelmentHandler *handlers.EmpanelmentHandler,
	censusHandler *handlers.CensusHandler,
	geolocationHandler *handlers.GeolocationHandler,
	sseHandler *handlers.SSEHandler,
	tracing bool,
) *Router {
	return &Router{
		mux: http.NewServeMux(),

		providerHandler:     providerHandler,
		verificationHandler: verificationHandler,
		empanelmentHandler:  empanelmentHandler,
		censusHandler:       censusHandler,
		geolocationHandler:  geolocationHandler,
		sseHandler:          sseHandler,

		tracing: tracing,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Provider endpoints
	r.mux.HandleFunc("GET /api/providers", r.providerHandler.ListProviders)
	r.mux.HandleFunc("GET /api/providers/{id}", r.providerHandler.GetProvider)
	r.mux.HandleFunc("PATCH /api/providers/{id}", r.providerHandler.UpdateProvider)
	r.mux.HandleFunc("GET /api/providers/{id}/history", r.providerHandler.GetProviderHistory)

	// Verification endpoints
	r.mux.HandleFunc("POST /api/verification/{providerID}", r.verificationHandler.RunVerification)
	r.mux.HandleFunc("GET /api/verification/{providerID}/stream", r.verificationHandler.StreamPlayback)

	// Empanelment endpoints
	r.mux.HandleFunc("GET /api/empanelment", r.empanelmentHandler.ListRequests)
	r.mux.HandleFunc("GET /api/empanelment/{id}", r.empanelmentHandler.GetRequest)
	r.mux.HandleFunc("PATCH /api/empanelment/{id}", r.empanelmentHandler.TransitionRequest)

	// Patient and claim views
	r.mux.HandleFunc("GET /api/patients", r.censusHandler.ListPatients)
	r.mux.HandleFunc("GET /api/claims", r.censusHandler.ListClaims)

	// Geolocation endpoints
	r.mux.HandleFunc("GET /api/geocode", r.geolocationHandler.Geocode)
	r.mux.HandleFunc("GET /api/distance", r.geolocationHandler.Distance)

	// Live event streams
	if r.sseHandler != nil {
		r.mux.HandleFunc("GET /api/stream/verifications", r.sseHandler.StreamVerificationEvents)
		r.mux.HandleFunc("GET /api/stream/providers/{id}", r.sseHandler.StreamProviderEvents)
	}

	// Apply middleware in reverse order (last middleware wraps first).
	// CORS must be outermost so error responses also get CORS headers.
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)
	if r.tracing {
		handler = middleware.TracingMiddleware(handler)
	}
	handler = middleware.CORSMiddleware(handler)

	return handler
}
