package progress

import (
	"context"
	"strings"

	"go.uber.org/atomic"

	"mindbloom/internal/models"
	"mindbloom/internal/providers"
	"mindbloom/internal/store"
)

// titleSenderMarker is how message notifications have always embedded
// the sender display name ("New message from Dr. Rahman"). The parsing
// rule is kept verbatim for compatibility with records already in the
// store.
const titleSenderMarker = "from "

const sessionTimeLayout = "Mon, Jan 2 at 3:04 PM"

// Enricher augments a batch of notifications with data from secondary
// per-record fetches: session notifications gain join details, message
// notifications gain reply details. The output batch always has the
// same length and order as the input; enrichment failures degrade the
// single affected record's capability flags.
type Enricher struct {
	store   store.Store
	logger  providers.Logger
	metrics providers.MetricsProviderInterface
}

func NewEnricher(st store.Store, logger providers.Logger, metrics providers.MetricsProviderInterface) *Enricher {
	return &Enricher{store: st, logger: logger, metrics: metrics}
}

// Enrich scatters one secondary fetch per session notification and
// gathers behind an outstanding counter: the batch completes only once
// every scheduled fetch has resolved, success or failure. A batch with
// nothing to fetch completes immediately.
func (e *Enricher) Enrich(ctx context.Context, userID string, batch []models.Notification) ([]models.EnrichedNotification, error) {
	out := make([]models.EnrichedNotification, len(batch))
	var fetches []int

	for i, n := range batch {
		out[i] = models.EnrichedNotification{Notification: n}
		switch n.Type {
		case models.NotificationSessionAccepted, models.NotificationSessionConfirmed:
			if n.RelatedEntityID != "" {
				fetches = append(fetches, i)
			}
		case models.NotificationMessage:
			e.enrichMessage(&out[i], userID)
		}
	}

	done := make(chan struct{})
	if len(fetches) == 0 {
		close(done)
	} else {
		outstanding := atomic.NewInt32(int32(len(fetches)))
		for _, i := range fetches {
			go func(rec *models.EnrichedNotification) {
				e.enrichSession(ctx, userID, rec)
				if outstanding.Dec() == 0 {
					close(done)
				}
			}(&out[i])
		}
	}

	select {
	case <-ctx.Done():
	case <-done:
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	e.metrics.ObserveEnrichmentBatchSize(len(batch))
	return out, nil
}

func (e *Enricher) enrichSession(ctx context.Context, userID string, rec *models.EnrichedNotification) {
	raw, found, err := e.store.Get(ctx, models.CollectionSessions, rec.RelatedEntityID)
	if err != nil {
		e.logger.Warnf(providers.TypeNotify, "session lookup for notification %s degraded: %s", rec.ID, err)
		e.metrics.IncDegradedFetches("session")
		return
	}
	if !found {
		e.logger.Debugf(providers.TypeNotify, "notification %s references missing session %s", rec.ID, rec.RelatedEntityID)
		return
	}
	var session models.Session
	if err := store.Decode(raw, &session); err != nil {
		e.logger.Warnf(providers.TypeNotify, "session %s undecodable: %s", rec.RelatedEntityID, err)
		e.metrics.IncDegradedFetches("session")
		return
	}

	rec.Joinable = true
	rec.ZoomLink = session.ZoomLink
	rec.SessionTime = session.ScheduledAt.Format(sessionTimeLayout)
	rec.CounterpartName = session.CounterpartName(userID)
}

func (e *Enricher) enrichMessage(rec *models.EnrichedNotification, userID string) {
	name, nameOK := senderNameFromTitle(rec.Title)
	senderID, idOK := senderIDFromConversation(rec.RelatedEntityID, userID)
	if !nameOK || !idOK {
		e.logger.Debugf(providers.TypeNotify, "notification %s not replyable", rec.ID)
		return
	}
	rec.Replyable = true
	rec.SenderName = name
	rec.SenderID = senderID
}

func senderNameFromTitle(title string) (string, bool) {
	idx := strings.Index(title, titleSenderMarker)
	if idx < 0 {
		return "", false
	}
	name := strings.TrimSpace(title[idx+len(titleSenderMarker):])
	if name == "" {
		return "", false
	}
	return name, true
}

// senderIDFromConversation recovers the other participant from a
// composite conversation id of the form "<idA>_<idB>".
func senderIDFromConversation(conversationID, userID string) (string, bool) {
	parts := strings.Split(conversationID, "_")
	if len(parts) != 2 {
		return "", false
	}
	sender := parts[0]
	if sender == userID {
		sender = parts[1]
	}
	if sender == "" || sender == userID {
		return "", false
	}
	return sender, true
}
