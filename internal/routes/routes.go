package routes

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/plannerhub/planner-api/internal/handlers"
)

// NewRouter sets up the API routes
func NewRouter(health *handlers.HealthHandler, notifications *handlers.NotificationHandler) *mux.Router {
	router := mux.NewRouter()

	// Health check route
	router.HandleFunc("/health", health.Check).Methods(http.MethodGet)

	// Notification inbox
	router.HandleFunc("/api/users/{userID}/notifications", notifications.List).Methods(http.MethodGet)
	router.HandleFunc("/api/users/{userID}/notifications/{notificationID}/read", notifications.MarkRead).Methods(http.MethodPost)

	return router
}
