package services

import (
	"context"
	"fmt"
	"sort"

	"mindbloom/internal/models"
	"mindbloom/internal/progress"
	"mindbloom/internal/providers"
	"mindbloom/internal/store"
)

type NotificationServiceInterface interface {
	Enriched(ctx context.Context, userID string) ([]models.EnrichedNotification, error)
	MarkRead(ctx context.Context, id string) error
}

type NotificationService struct {
	store    store.Store
	enricher *progress.Enricher
	logger   providers.Logger
}

func NewNotificationService(st store.Store, enricher *progress.Enricher, logger providers.Logger) NotificationServiceInterface {
	return &NotificationService{
		store:    st,
		enricher: enricher,
		logger:   logger,
	}
}

// Enriched loads the user's notifications newest-first and runs the
// enrichment join over the whole batch. The primary list query is the
// one fetch that can fail the call; secondary fetches only degrade
// individual records.
func (ns *NotificationService) Enriched(ctx context.Context, userID string) ([]models.EnrichedNotification, error) {
	recs, err := ns.store.QueryEqual(ctx, models.CollectionNotifications, "user_id", userID)
	if err != nil {
		return nil, fmt.Errorf("notification query: %w", err)
	}
	var batch []models.Notification
	if err := store.DecodeAll(recs, &batch); err != nil {
		return nil, fmt.Errorf("notification decode: %w", err)
	}

	sort.Slice(batch, func(i, j int) bool {
		return batch[i].CreatedAt.After(batch[j].CreatedAt)
	})

	return ns.enricher.Enrich(ctx, userID, batch)
}

func (ns *NotificationService) MarkRead(ctx context.Context, id string) error {
	raw, found, err := ns.store.Get(ctx, models.CollectionNotifications, id)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("notification %s not found", id)
	}

	var notification models.Notification
	if err := store.Decode(raw, &notification); err != nil {
		return err
	}
	notification.Read = true

	rec, err := store.Encode(notification)
	if err != nil {
		return err
	}
	return ns.store.Set(ctx, models.CollectionNotifications, id, rec)
}
