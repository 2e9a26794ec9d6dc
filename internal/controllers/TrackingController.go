package controllers

import (
	"net/http"

	json "github.com/goccy/go-json"

	"mindbloom/internal/models"
	"mindbloom/internal/providers"
	"mindbloom/internal/services"
)

const maxRequestBodySize = 1 << 20 // 1 MB

type TrackingController struct {
	logger  providers.Logger
	service services.TrackingServiceInterface
}

func NewTrackingController(logger providers.Logger, service services.TrackingServiceInterface) *TrackingController {
	return &TrackingController{
		logger:  logger,
		service: service,
	}
}

func writeCreated(w http.ResponseWriter, v any) {
	gson, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_, _ = w.Write(gson)
}

func (tc *TrackingController) ReceiveMood(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var payload models.MoodRecord
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	entry, err := tc.service.AddMood(r.Context(), payload)
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	writeCreated(w, entry)
}

func (tc *TrackingController) ReceiveStress(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var payload models.StressRecord
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	entry, err := tc.service.AddStress(r.Context(), payload)
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	writeCreated(w, entry)
}

func (tc *TrackingController) ReceiveSleep(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var payload models.SleepRecord
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	entry, err := tc.service.AddSleep(r.Context(), payload)
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	writeCreated(w, entry)
}

type habitCompletionPayload struct {
	UserID  string `json:"user_id"`
	HabitID string `json:"habit_id"`
}

func (tc *TrackingController) ReceiveHabitCompletion(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var payload habitCompletionPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	if payload.UserID == "" || payload.HabitID == "" {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	completion, err := tc.service.CompleteHabit(r.Context(), payload.UserID, payload.HabitID)
	if err != nil {
		tc.logger.Warnf(providers.TypePost, "habit completion rejected: %s", err)
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	writeCreated(w, completion)
}
