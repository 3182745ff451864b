package reservation

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/casaluna/reservations/internal/model"
	"github.com/casaluna/reservations/internal/notifier"
)

// ErrMissingFields is returned when a submission lacks a required field.
// Nothing is persisted and no notification is attempted in that case.
var ErrMissingFields = errors.New("missing required fields")

// createdAtLayout is a fixed-width ISO-8601 UTC layout. Fixed width
// means lexical order of rendered timestamps equals chronological
// order, which List relies on.
const createdAtLayout = "2006-01-02T15:04:05.000Z"

type reservationRepository interface {
	Save(ctx context.Context, rec model.Reservation) error
	ListAll(ctx context.Context) ([]model.Reservation, error)
}

type reservationNotifier interface {
	NotifyBoth(rec model.Reservation) notifier.Result
	State() notifier.State
}

// Input carries the caller-supplied fields of a submission.
type Input struct {
	Name   string
	Phone  string
	Email  string
	Date   string
	Time   string
	Guests int
	Notes  string
}

// Service implements the reservation submission pipeline:
// validate, assign identifier, persist, then best-effort dual notify.
type Service struct {
	repo reservationRepository
	ntf  reservationNotifier

	mu     sync.Mutex
	lastID int64
}

// NewService creates a new reservation service.
func NewService(repo reservationRepository, ntf reservationNotifier) *Service {
	return &Service{repo: repo, ntf: ntf}
}

// nextID issues a millisecond-epoch identifier. Two submissions landing
// in the same clock tick would collide, so the last issued value is
// bumped instead; ordering by identifier stays insertion order.
func (s *Service) nextID() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := time.Now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id

	return strconv.FormatInt(id, 10)
}

// Submit validates the input, persists a new record and attempts both
// notifications. A storage failure aborts before any notification; a
// notification failure never fails the submission, the outcome is only
// reflected in the returned Result.
func (s *Service) Submit(ctx context.Context, in Input) (model.Reservation, notifier.Result, error) {
	if in.Name == "" || in.Phone == "" || in.Email == "" || in.Date == "" || in.Time == "" || in.Guests <= 0 {
		return model.Reservation{}, notifier.Result{}, ErrMissingFields
	}

	rec := model.Reservation{
		ID:        s.nextID(),
		Name:      in.Name,
		Phone:     in.Phone,
		Email:     in.Email,
		Date:      in.Date,
		Time:      in.Time,
		Guests:    in.Guests,
		Notes:     in.Notes,
		CreatedAt: time.Now().UTC().Format(createdAtLayout),
	}

	if err := s.repo.Save(ctx, rec); err != nil {
		return model.Reservation{}, notifier.Result{}, fmt.Errorf("save reservation: %w", err)
	}

	res := s.ntf.NotifyBoth(rec)

	return rec, res, nil
}

// List returns all stored reservations, newest first.
func (s *Service) List(ctx context.Context) ([]model.Reservation, error) {
	recs, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}

	// createdAt is fixed-width ISO-8601 UTC, so comparing the strings
	// compares the instants.
	sort.Slice(recs, func(i, j int) bool {
		return recs[i].CreatedAt > recs[j].CreatedAt
	})

	return recs, nil
}

// Health reports whether the outbound mail channel is ready.
func (s *Service) Health() bool {
	return s.ntf.State() == notifier.StateReady
}

// ResendResult is the outcome of re-sending notifications for one record.
type ResendResult struct {
	ID      string
	Outcome notifier.Result
}

// ResendAll re-sends both notifications for every stored record,
// sequentially. One record's failure does not halt the rest.
func (s *Service) ResendAll(ctx context.Context) ([]ResendResult, error) {
	recs, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}

	results := make([]ResendResult, 0, len(recs))
	for _, rec := range recs {
		results = append(results, ResendResult{ID: rec.ID, Outcome: s.ntf.NotifyBoth(rec)})
	}

	return results, nil
}
