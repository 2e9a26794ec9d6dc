package controllers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mindbloom/internal/models"
	"mindbloom/internal/testutil"
)

type stubTrackingService struct {
	moodErr  error
	habitErr error
}

func (s *stubTrackingService) AddMood(_ context.Context, entry models.MoodRecord) (models.MoodRecord, error) {
	if s.moodErr != nil {
		return models.MoodRecord{}, s.moodErr
	}
	entry.ID = "m1"
	return entry, nil
}

func (s *stubTrackingService) AddStress(_ context.Context, entry models.StressRecord) (models.StressRecord, error) {
	entry.ID = "s1"
	entry.DerivedScore = entry.Subscales.Sum()
	return entry, nil
}

func (s *stubTrackingService) AddSleep(_ context.Context, entry models.SleepRecord) (models.SleepRecord, error) {
	entry.ID = "sl1"
	return entry, nil
}

func (s *stubTrackingService) CompleteHabit(_ context.Context, userID, habitID string) (models.HabitCompletion, error) {
	if s.habitErr != nil {
		return models.HabitCompletion{}, s.habitErr
	}
	return models.HabitCompletion{ID: "c1", UserID: userID, HabitID: habitID}, nil
}

func newTrackingController(service *stubTrackingService) *TrackingController {
	return NewTrackingController(&testutil.MockLogger{}, service)
}

func postJSON(handler http.HandlerFunc, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	handler(w, r)
	return w
}

func TestTrackingController_ReceiveMood(t *testing.T) {
	tc := newTrackingController(&stubTrackingService{})

	w := postJSON(tc.ReceiveMood, "/mood", `{"user_id":"u1","rating":4}`)

	require.Equal(t, http.StatusCreated, w.Code)
	var entry models.MoodRecord
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entry))
	assert.Equal(t, "m1", entry.ID)
	assert.Equal(t, 4, entry.Rating)
}

func TestTrackingController_ReceiveMoodBadJSON(t *testing.T) {
	tc := newTrackingController(&stubTrackingService{})

	w := postJSON(tc.ReceiveMood, "/mood", `{"rating":`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTrackingController_ReceiveMoodRejected(t *testing.T) {
	tc := newTrackingController(&stubTrackingService{moodErr: fmt.Errorf("mood rating 9 out of range 1..5")})

	w := postJSON(tc.ReceiveMood, "/mood", `{"user_id":"u1","rating":9}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTrackingController_ReceiveStress(t *testing.T) {
	tc := newTrackingController(&stubTrackingService{})

	w := postJSON(tc.ReceiveStress, "/stress", `{"user_id":"u1","subscales":{"workload":3,"anxiety":2}}`)

	require.Equal(t, http.StatusCreated, w.Code)
	var entry models.StressRecord
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entry))
	assert.Equal(t, 5, entry.DerivedScore)
}

func TestTrackingController_ReceiveSleep(t *testing.T) {
	tc := newTrackingController(&stubTrackingService{})

	w := postJSON(tc.ReceiveSleep, "/sleep",
		`{"user_id":"u1","quality":4,"sleep_start":"2024-05-01T23:00:00Z","sleep_end":"2024-05-02T07:00:00Z"}`)

	require.Equal(t, http.StatusCreated, w.Code)
	var entry models.SleepRecord
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entry))
	assert.Equal(t, "sl1", entry.ID)
}

func TestTrackingController_ReceiveHabitCompletion(t *testing.T) {
	tc := newTrackingController(&stubTrackingService{})

	w := postJSON(tc.ReceiveHabitCompletion, "/habits/complete", `{"user_id":"u1","habit_id":"h1"}`)

	require.Equal(t, http.StatusCreated, w.Code)
	var completion models.HabitCompletion
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &completion))
	assert.Equal(t, "h1", completion.HabitID)
}

func TestTrackingController_ReceiveHabitCompletionMissingFields(t *testing.T) {
	tc := newTrackingController(&stubTrackingService{})

	w := postJSON(tc.ReceiveHabitCompletion, "/habits/complete", `{"user_id":"u1"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = postJSON(tc.ReceiveHabitCompletion, "/habits/complete", `{"habit_id":"h1"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTrackingController_ReceiveHabitCompletionRejected(t *testing.T) {
	tc := newTrackingController(&stubTrackingService{habitErr: fmt.Errorf("habit h1 does not belong to user u2")})

	w := postJSON(tc.ReceiveHabitCompletion, "/habits/complete", `{"user_id":"u2","habit_id":"h1"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
