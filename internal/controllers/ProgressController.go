package controllers

import (
	"net/http"
	"strconv"
	"time"

	json "github.com/goccy/go-json"

	"mindbloom/internal/progress"
	"mindbloom/internal/providers"
	"mindbloom/internal/services"
)

const defaultWindowDays = 30

type ProgressController struct {
	logger  providers.Logger
	service services.ProgressServiceInterface
	cache   providers.CacheProviderInterface
}

func NewProgressController(logger providers.Logger, service services.ProgressServiceInterface, cache providers.CacheProviderInterface) *ProgressController {
	return &ProgressController{
		logger:  logger,
		service: service,
		cache:   cache,
	}
}

func (pc *ProgressController) serveFromCacheOrCompute(w http.ResponseWriter, cacheKey string, compute func() (any, error)) {
	if data, ok := pc.cache.Get(cacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}

	result, err := compute()
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	gson, err := json.Marshal(result)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	pc.cache.Set(cacheKey, gson)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

func parseWindow(r *http.Request) (progress.Window, error) {
	now := time.Now()
	window := progress.Window{
		Start: now.AddDate(0, 0, -defaultWindowDays),
		End:   now,
	}
	if from := r.URL.Query().Get("from"); from != "" {
		t, err := time.Parse(time.RFC3339, from)
		if err != nil {
			return window, err
		}
		window.Start = t
	}
	if to := r.URL.Query().Get("to"); to != "" {
		t, err := time.Parse(time.RFC3339, to)
		if err != nil {
			return window, err
		}
		window.End = t
	}
	return window, nil
}

func (pc *ProgressController) GetProgress(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("u")
	if userID == "" {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	window, err := parseWindow(r)
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	gen := pc.service.CacheGeneration(userID)
	cacheKey := "progress:" + userID +
		":" + window.Start.Format(time.RFC3339) +
		":" + window.End.Format(time.RFC3339) +
		":g" + strconv.FormatInt(gen, 10)

	pc.serveFromCacheOrCompute(w, cacheKey, func() (any, error) {
		return pc.service.Report(r.Context(), userID, window)
	})
}

func (pc *ProgressController) GetCoping(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("u")
	if userID == "" {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	gen := pc.service.CacheGeneration(userID)
	cacheKey := "coping:" + userID + ":g" + strconv.FormatInt(gen, 10)

	pc.serveFromCacheOrCompute(w, cacheKey, func() (any, error) {
		return map[string]string{"suggestion": pc.service.Coping(r.Context(), userID)}, nil
	})
}
