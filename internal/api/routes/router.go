package routes

import (
	"net/http"

	"github.com/nwachie/skillswap/backend/internal/api/handlers"
	"github.com/nwachie/skillswap/backend/internal/api/middleware"
	"github.com/nwachie/skillswap/backend/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	dealHandler         *handlers.DealHandler
	messageHandler      *handlers.MessageHandler
	reviewHandler       *handlers.ReviewHandler
	notificationHandler *handlers.NotificationHandler
	profileHandler      *handlers.ProfileHandler
	sseHandler          *handlers.SSEHandler

	metrics *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	dealHandler *handlers.DealHandler,
	messageHandler *handlers.MessageHandler,
	reviewHandler *handlers.ReviewHandler,
	notificationHandler *handlers.NotificationHandler,
	profileHandler *handlers.ProfileHandler,
	sseHandler *handlers.SSEHandler,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux: http.NewServeMux(),

		dealHandler:         dealHandler,
		messageHandler:      messageHandler,
		reviewHandler:       reviewHandler,
		notificationHandler: notificationHandler,
		profileHandler:      profileHandler,
		sseHandler:          sseHandler,

		metrics: metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Deal lifecycle endpoints
	r.mux.HandleFunc("POST /api/deals", r.dealHandler.CreateDeal)
	r.mux.HandleFunc("GET /api/deals", r.dealHandler.ListDeals)
	r.mux.HandleFunc("GET /api/deals/{id}", r.dealHandler.GetDeal)
	r.mux.HandleFunc("POST /api/deals/{id}/accept", r.dealHandler.AcceptDeal)
	r.mux.HandleFunc("POST /api/deals/{id}/complete", r.dealHandler.CompleteDeal)
	r.mux.HandleFunc("POST /api/deals/{id}/cancel", r.dealHandler.CancelDeal)

	// Message thread endpoints
	r.mux.HandleFunc("POST /api/deals/{id}/messages", r.messageHandler.SendMessage)
	r.mux.HandleFunc("GET /api/deals/{id}/messages", r.messageHandler.ListDealMessages)
	r.mux.HandleFunc("GET /api/messages", r.messageHandler.ListInbox)
	r.mux.HandleFunc("POST /api/messages/{id}/read", r.messageHandler.MarkMessageRead)
	r.mux.HandleFunc("POST /api/messages/read-all", r.messageHandler.MarkAllRead)

	// Review endpoints
	r.mux.HandleFunc("POST /api/skills/{id}/reviews", r.reviewHandler.SubmitReview)
	r.mux.HandleFunc("GET /api/skills/{id}/reviews", r.reviewHandler.ListSkillReviews)
	r.mux.HandleFunc("GET /api/skills/{id}/reviews/eligibility", r.reviewHandler.GetReviewEligibility)

	// Notification endpoints
	r.mux.HandleFunc("GET /api/notifications/summary", r.notificationHandler.GetSummary)
	r.mux.HandleFunc("GET /api/notifications/unread", r.notificationHandler.GetUnreadCount)
	r.mux.HandleFunc("GET /api/notifications/deal-counts", r.notificationHandler.GetDealCounts)

	// Profile and balance endpoints
	r.mux.HandleFunc("POST /api/profiles", r.profileHandler.CreateProfile)
	r.mux.HandleFunc("GET /api/profiles/me", r.profileHandler.GetProfile)
	r.mux.HandleFunc("GET /api/profiles/me/balance", r.profileHandler.GetBalance)
	r.mux.HandleFunc("GET /api/profiles/me/transfers", r.profileHandler.ListTransfers)

	// Streaming endpoint
	if r.sseHandler != nil {
		r.mux.HandleFunc("GET /api/stream/deals", r.sseHandler.StreamUserUpdates)
	}

	// Apply middleware in reverse order (last middleware wraps first).
	// CORS must be outermost so even rejected requests get CORS headers.
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.IdentityMiddleware("/health")(handler)
	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	handler = middleware.CORSMiddleware(handler)

	return handler
}
