package controllers

import (
	"net/http"

	json "github.com/goccy/go-json"

	"mindbloom/internal/providers"
	"mindbloom/internal/services"
)

type NotificationController struct {
	logger  providers.Logger
	service services.NotificationServiceInterface
}

func NewNotificationController(logger providers.Logger, service services.NotificationServiceInterface) *NotificationController {
	return &NotificationController{
		logger:  logger,
		service: service,
	}
}

// GetNotifications is never served from cache: join links and reply
// affordances must reflect the store as of this request.
func (nc *NotificationController) GetNotifications(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("u")
	if userID == "" {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	enriched, err := nc.service.Enriched(r.Context(), userID)
	if err != nil {
		nc.logger.Errorf(providers.TypeNotify, "enrichment failed for %s: %s", userID, err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	gson, err := json.Marshal(enriched)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

func (nc *NotificationController) MarkRead(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	if err := nc.service.MarkRead(r.Context(), id); err != nil {
		nc.logger.Warnf(providers.TypeNotify, "mark read failed for %s: %s", id, err)
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
