package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mindbloom/internal/models"
	"mindbloom/internal/progress"
	"mindbloom/internal/store"
	"mindbloom/internal/testutil"
)

func newNotificationService(fs *testutil.FakeStore) NotificationServiceInterface {
	logger := &testutil.MockLogger{}
	enricher := progress.NewEnricher(fs, logger, testutil.NewMockMetrics())
	return NewNotificationService(fs, enricher, logger)
}

func TestNotificationService_EnrichedNewestFirst(t *testing.T) {
	fs := testutil.NewFakeStore()
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	fs.Seed(models.CollectionNotifications, "n-old", models.Notification{
		ID: "n-old", UserID: "u1", Type: models.NotificationSystem, CreatedAt: base,
	})
	fs.Seed(models.CollectionNotifications, "n-new", models.Notification{
		ID: "n-new", UserID: "u1", Type: models.NotificationSystem, CreatedAt: base.AddDate(0, 0, 5),
	})
	fs.Seed(models.CollectionNotifications, "n-other", models.Notification{
		ID: "n-other", UserID: "u2", Type: models.NotificationSystem, CreatedAt: base,
	})

	ns := newNotificationService(fs)
	out, err := ns.Enriched(context.Background(), "u1")

	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "n-new", out[0].ID)
	assert.Equal(t, "n-old", out[1].ID)
}

func TestNotificationService_EnrichedJoinsSessions(t *testing.T) {
	fs := testutil.NewFakeStore()
	fs.Seed(models.CollectionSessions, "sess-1", models.Session{
		ID: "sess-1", TherapistID: "t1", TherapistName: "Dr. Rahman",
		ClientID: "u1", ClientName: "Ana",
		ScheduledAt: time.Date(2024, 5, 27, 15, 30, 0, 0, time.UTC),
		ZoomLink:    "https://zoom.example/j/123",
	})
	fs.Seed(models.CollectionNotifications, "n1", models.Notification{
		ID: "n1", UserID: "u1", Type: models.NotificationSessionConfirmed, RelatedEntityID: "sess-1",
	})

	ns := newNotificationService(fs)
	out, err := ns.Enriched(context.Background(), "u1")

	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.True(t, out[0].Joinable)
	assert.Equal(t, "Dr. Rahman", out[0].CounterpartName)
}

func TestNotificationService_EnrichedQueryFailure(t *testing.T) {
	fs := testutil.NewFakeStore()
	fs.QueryErr[models.CollectionNotifications] = errors.New("store down")

	ns := newNotificationService(fs)
	_, err := ns.Enriched(context.Background(), "u1")

	assert.Error(t, err)
}

func TestNotificationService_MarkRead(t *testing.T) {
	fs := testutil.NewFakeStore()
	fs.Seed(models.CollectionNotifications, "n1", models.Notification{
		ID: "n1", UserID: "u1", Type: models.NotificationSystem,
	})

	ns := newNotificationService(fs)
	require.NoError(t, ns.MarkRead(context.Background(), "n1"))

	var updated models.Notification
	require.NoError(t, store.Decode(fs.Data[models.CollectionNotifications]["n1"], &updated))
	assert.True(t, updated.Read)
}

func TestNotificationService_MarkReadMissing(t *testing.T) {
	fs := testutil.NewFakeStore()

	ns := newNotificationService(fs)
	assert.Error(t, ns.MarkRead(context.Background(), "ghost"))
}
