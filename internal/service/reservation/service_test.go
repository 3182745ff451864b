package reservation

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casaluna/reservations/internal/model"
	"github.com/casaluna/reservations/internal/notifier"
)

type fakeRepo struct {
	saved   []model.Reservation
	listed  []model.Reservation
	saveErr error
	listErr error
}

func (f *fakeRepo) Save(_ context.Context, rec model.Reservation) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, rec)
	return nil
}

func (f *fakeRepo) ListAll(_ context.Context) ([]model.Reservation, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listed, nil
}

type fakeNotifier struct {
	state     notifier.State
	result    notifier.Result
	resultFor map[string]notifier.Result
	notified  []model.Reservation
}

func (f *fakeNotifier) NotifyBoth(rec model.Reservation) notifier.Result {
	f.notified = append(f.notified, rec)
	if res, ok := f.resultFor[rec.ID]; ok {
		return res
	}
	return f.result
}

func (f *fakeNotifier) State() notifier.State { return f.state }

func validInput() Input {
	return Input{
		Name:   "Grace Hopper",
		Phone:  "+1 555 0101",
		Email:  "grace@example.com",
		Date:   "2026-12-25",
		Time:   "19:30",
		Guests: 4,
		Notes:  "anniversary dinner",
	}
}

func TestSubmit_AssignsIdentifierAndTimestamp(t *testing.T) {
	repo := &fakeRepo{}
	ntf := &fakeNotifier{result: notifier.Result{Restaurant: true, Guest: true}}
	s := NewService(repo, ntf)

	rec, res, err := s.Submit(context.Background(), validInput())
	require.NoError(t, err)

	_, err = strconv.ParseInt(rec.ID, 10, 64)
	assert.NoError(t, err, "identifier must be a millisecond epoch string")

	_, err = time.Parse(createdAtLayout, rec.CreatedAt)
	assert.NoError(t, err, "submission timestamp must keep the fixed-width layout")

	in := validInput()
	assert.Equal(t, in.Name, rec.Name)
	assert.Equal(t, in.Phone, rec.Phone)
	assert.Equal(t, in.Email, rec.Email)
	assert.Equal(t, in.Date, rec.Date)
	assert.Equal(t, in.Time, rec.Time)
	assert.Equal(t, in.Guests, rec.Guests)
	assert.Equal(t, in.Notes, rec.Notes)

	require.Len(t, repo.saved, 1)
	assert.Equal(t, rec, repo.saved[0])
	assert.True(t, res.Full())
}

func TestSubmit_MissingField_NoSideEffects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Input)
	}{
		{"name", func(in *Input) { in.Name = "" }},
		{"phone", func(in *Input) { in.Phone = "" }},
		{"email", func(in *Input) { in.Email = "" }},
		{"date", func(in *Input) { in.Date = "" }},
		{"time", func(in *Input) { in.Time = "" }},
		{"guests", func(in *Input) { in.Guests = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeRepo{}
			ntf := &fakeNotifier{}
			s := NewService(repo, ntf)

			in := validInput()
			tt.mutate(&in)

			_, _, err := s.Submit(context.Background(), in)
			assert.ErrorIs(t, err, ErrMissingFields)
			assert.Empty(t, repo.saved)
			assert.Empty(t, ntf.notified)
		})
	}
}

func TestSubmit_StorageFailure_AbortsBeforeNotify(t *testing.T) {
	repo := &fakeRepo{saveErr: errors.New("disk full")}
	ntf := &fakeNotifier{}
	s := NewService(repo, ntf)

	_, _, err := s.Submit(context.Background(), validInput())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrMissingFields)
	assert.Empty(t, ntf.notified)
}

func TestSubmit_NotificationFailureDoesNotFailSubmission(t *testing.T) {
	repo := &fakeRepo{}
	ntf := &fakeNotifier{result: notifier.Result{}}
	s := NewService(repo, ntf)

	rec, res, err := s.Submit(context.Background(), validInput())
	require.NoError(t, err)
	assert.False(t, res.Full())
	require.Len(t, repo.saved, 1)
	require.Len(t, ntf.notified, 1)
	assert.Equal(t, rec.ID, ntf.notified[0].ID)
}

func TestSubmit_SkippedNotifierStillSucceeds(t *testing.T) {
	repo := &fakeRepo{}
	ntf := &fakeNotifier{state: notifier.StateDisabled, result: notifier.Result{Skipped: true}}
	s := NewService(repo, ntf)

	_, res, err := s.Submit(context.Background(), validInput())
	require.NoError(t, err)
	assert.True(t, res.Skipped)
	assert.Len(t, repo.saved, 1)
}

func TestSubmit_IdentifiersStrictlyIncreasing(t *testing.T) {
	repo := &fakeRepo{}
	ntf := &fakeNotifier{}
	s := NewService(repo, ntf)

	var last int64
	for i := 0; i < 20; i++ {
		rec, _, err := s.Submit(context.Background(), validInput())
		require.NoError(t, err)

		id, err := strconv.ParseInt(rec.ID, 10, 64)
		require.NoError(t, err)
		assert.Greater(t, id, last, "identifiers must never repeat, even within one clock tick")
		last = id
	}
}

func TestList_SortsBySubmissionTimeDescending(t *testing.T) {
	repo := &fakeRepo{listed: []model.Reservation{
		{ID: "2", CreatedAt: "2026-08-27T10:00:01.000Z"},
		{ID: "3", CreatedAt: "2026-08-27T10:00:02.000Z"},
		{ID: "1", CreatedAt: "2026-08-27T10:00:00.000Z"},
	}}
	s := NewService(repo, &fakeNotifier{})

	recs, err := s.List(context.Background())
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, "3", recs[0].ID)
	assert.Equal(t, "2", recs[1].ID)
	assert.Equal(t, "1", recs[2].ID)
}

func TestList_StorageFailure(t *testing.T) {
	repo := &fakeRepo{listErr: errors.New("permission denied")}
	s := NewService(repo, &fakeNotifier{})

	_, err := s.List(context.Background())
	assert.Error(t, err)
}

func TestHealth(t *testing.T) {
	assert.True(t, NewService(&fakeRepo{}, &fakeNotifier{state: notifier.StateReady}).Health())
	assert.False(t, NewService(&fakeRepo{}, &fakeNotifier{state: notifier.StateDisabled}).Health())
	assert.False(t, NewService(&fakeRepo{}, &fakeNotifier{state: notifier.StateUnavailable}).Health())
}

func TestResendAll_ContinuesPastFailures(t *testing.T) {
	repo := &fakeRepo{listed: []model.Reservation{
		{ID: "1"}, {ID: "2"}, {ID: "3"},
	}}
	ntf := &fakeNotifier{
		result: notifier.Result{Restaurant: true, Guest: true},
		resultFor: map[string]notifier.Result{
			"2": {Restaurant: true, Guest: false},
		},
	}
	s := NewService(repo, ntf)

	results, err := s.ResendAll(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 3)

	// Every record gets its dual-send attempt, failures included.
	assert.Len(t, ntf.notified, 3)
	assert.True(t, results[0].Outcome.Full())
	assert.False(t, results[1].Outcome.Full())
	assert.True(t, results[1].Outcome.Restaurant)
	assert.True(t, results[2].Outcome.Full())
}

func TestResendAll_EmptyStore(t *testing.T) {
	s := NewService(&fakeRepo{}, &fakeNotifier{})

	results, err := s.ResendAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, results)
}
