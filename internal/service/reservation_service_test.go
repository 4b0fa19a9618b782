package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Eursukkul/local-event-finder/internal/dto"
	"github.com/Eursukkul/local-event-finder/internal/models"
	"github.com/Eursukkul/local-event-finder/internal/repository"
	"github.com/Eursukkul/local-event-finder/pkg/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// --- Fixtures ---

type published struct {
	key     string
	payload any
}

type recordingPublisher struct {
	mu   sync.Mutex
	sent []published
}

func (p *recordingPublisher) Publish(routingKey string, payload any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sent = append(p.sent, published{key: routingKey, payload: payload})
	return nil
}

func (p *recordingPublisher) keys() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	keys := make([]string, 0, len(p.sent))
	for _, s := range p.sent {
		keys = append(keys, s.key)
	}
	return keys
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_", "#", "_").Replace(t.Name())
	db, err := database.NewSQLiteDB(database.MemoryDSN(name))
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

type reservationFixture struct {
	db        *gorm.DB
	svc       *reservationService
	publisher *recordingPublisher
}

func newReservationFixture(t *testing.T) *reservationFixture {
	t.Helper()
	db := newTestDB(t)
	pub := &recordingPublisher{}
	svc := NewReservationService(
		repository.NewEventRepository(db),
		repository.NewInterestRepository(db),
		pub,
	).(*reservationService)
	return &reservationFixture{db: db, svc: svc, publisher: pub}
}

func seats(n int) *int { return &n }

func (f *reservationFixture) seedEvent(t *testing.T, totalSeats *int, availableSeats int, cancelled bool) *models.Event {
	t.Helper()
	start := time.Date(2026, 3, 14, 19, 0, 0, 0, time.UTC)
	event := &models.Event{
		Title:          "Community Jazz Night",
		StartUTC:       start,
		EndUTC:         start.Add(2 * time.Hour),
		City:           "Seattle",
		Category:       "Music",
		TotalSeats:     totalSeats,
		AvailableSeats: availableSeats,
	}
	require.NoError(t, f.db.Create(event).Error)
	if cancelled {
		require.NoError(t, f.db.Model(event).Update("is_cancelled", true).Error)
	}
	return event
}

func (f *reservationFixture) seedInterest(t *testing.T, eventID uint, userID string) {
	t.Helper()
	require.NoError(t, f.db.Create(&models.Interest{
		EventID:      eventID,
		UserID:       userID,
		InterestedAt: time.Now().UTC(),
		Status:       models.StatusInterested,
	}).Error)
}

func (f *reservationFixture) reload(t *testing.T, id uint) *models.Event {
	t.Helper()
	var event models.Event
	require.NoError(t, f.db.First(&event, id).Error)
	return &event
}

func (f *reservationFixture) count(t *testing.T, eventID uint) int {
	t.Helper()
	n, err := f.svc.InterestCount(context.Background(), eventID)
	require.NoError(t, err)
	return n
}

// --- ToggleInterest ---

func TestToggleInterest_ReserveThenRelease(t *testing.T) {
	f := newReservationFixture(t)
	ctx := context.Background()
	event := f.seedEvent(t, seats(3), 3, false)

	res, err := f.svc.ToggleInterest(ctx, event.ID, "alice")
	require.NoError(t, err)
	assert.True(t, res.Interested)
	assert.False(t, res.Refused())
	assert.Equal(t, 2, res.AvailableSeats)
	assert.Equal(t, 1, f.count(t, event.ID))

	res, err = f.svc.ToggleInterest(ctx, event.ID, "alice")
	require.NoError(t, err)
	assert.False(t, res.Interested)
	assert.Equal(t, 3, res.AvailableSeats)
	assert.Equal(t, 0, f.count(t, event.ID))
	assert.Equal(t, 3, f.reload(t, event.ID).AvailableSeats)

	assert.Equal(t, []string{dto.KeyInterestToggled, dto.KeyInterestToggled}, f.publisher.keys())
}

func TestToggleInterest_LastSeatHandover(t *testing.T) {
	f := newReservationFixture(t)
	ctx := context.Background()
	event := f.seedEvent(t, seats(1), 1, false)

	res, err := f.svc.ToggleInterest(ctx, event.ID, "user-a")
	require.NoError(t, err)
	assert.True(t, res.Interested)
	assert.Equal(t, 0, res.AvailableSeats)

	res, err = f.svc.ToggleInterest(ctx, event.ID, "user-b")
	require.NoError(t, err)
	assert.False(t, res.Interested)
	assert.Equal(t, RefusalNoSeats, res.Refusal)
	assert.Equal(t, 0, f.reload(t, event.ID).AvailableSeats)

	res, err = f.svc.ToggleInterest(ctx, event.ID, "user-a")
	require.NoError(t, err)
	assert.False(t, res.Interested)
	assert.Equal(t, 1, res.AvailableSeats)

	res, err = f.svc.ToggleInterest(ctx, event.ID, "user-b")
	require.NoError(t, err)
	assert.True(t, res.Interested)
	assert.Equal(t, 0, res.AvailableSeats)

	// refusals are not published
	assert.Len(t, f.publisher.keys(), 3)
}

func TestToggleInterest_UnlimitedNeverBlocks(t *testing.T) {
	f := newReservationFixture(t)
	ctx := context.Background()
	event := f.seedEvent(t, nil, 0, false)

	for i := range 25 {
		res, err := f.svc.ToggleInterest(ctx, event.ID, fmt.Sprintf("user-%d", i))
		require.NoError(t, err)
		assert.True(t, res.Interested)
		assert.Equal(t, 0, res.AvailableSeats)
	}

	assert.Equal(t, 25, f.count(t, event.ID))
	reloaded := f.reload(t, event.ID)
	assert.Nil(t, reloaded.TotalSeats)
	assert.Equal(t, 0, reloaded.AvailableSeats)

	res, err := f.svc.ToggleInterest(ctx, event.ID, "user-0")
	require.NoError(t, err)
	assert.False(t, res.Interested)
	assert.Equal(t, 0, f.reload(t, event.ID).AvailableSeats)
}

func TestToggleInterest_CancelledAllowsRetractOnly(t *testing.T) {
	f := newReservationFixture(t)
	ctx := context.Background()
	event := f.seedEvent(t, seats(5), 3, true)
	f.seedInterest(t, event.ID, "user-a")
	f.seedInterest(t, event.ID, "user-b")

	res, err := f.svc.ToggleInterest(ctx, event.ID, "user-a")
	require.NoError(t, err)
	assert.False(t, res.Interested)
	assert.False(t, res.Refused())
	assert.Equal(t, 4, res.AvailableSeats)

	res, err = f.svc.ToggleInterest(ctx, event.ID, "user-c")
	require.NoError(t, err)
	assert.Equal(t, RefusalCancelled, res.Refusal)
	assert.False(t, res.Interested)
	assert.Equal(t, 1, f.count(t, event.ID))
	assert.Equal(t, 4, f.reload(t, event.ID).AvailableSeats)
}

func TestToggleInterest_ReleaseNeverExceedsTotal(t *testing.T) {
	f := newReservationFixture(t)
	ctx := context.Background()
	// drifted counter: already at total despite one interest
	event := f.seedEvent(t, seats(2), 2, false)
	f.seedInterest(t, event.ID, "user-a")

	res, err := f.svc.ToggleInterest(ctx, event.ID, "user-a")
	require.NoError(t, err)
	assert.False(t, res.Interested)
	assert.Equal(t, 2, res.AvailableSeats)
}

func TestToggleInterest_StaleCounterCannotOverbook(t *testing.T) {
	f := newReservationFixture(t)
	ctx := context.Background()
	// counter says one seat left, ledger says the event is full
	event := f.seedEvent(t, seats(2), 1, false)
	f.seedInterest(t, event.ID, "user-a")
	f.seedInterest(t, event.ID, "user-b")

	res, err := f.svc.ToggleInterest(ctx, event.ID, "user-c")
	require.NoError(t, err)
	assert.Equal(t, RefusalNoSeats, res.Refusal)
	assert.Equal(t, 0, res.AvailableSeats)
	assert.Equal(t, 2, f.count(t, event.ID))

	// the refusal repairs the counter so the event stops advertising a seat
	assert.Equal(t, 0, f.reload(t, event.ID).AvailableSeats)
	ok, err := f.svc.CanRegister(ctx, event.ID)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, f.publisher.keys())
}

// duplicateInterestRepo reports no existing interest but rejects the insert,
// as a concurrent writer on another instance would cause.
type duplicateInterestRepo struct {
	repository.InterestRepository
	findByEventAndUserFn func(ctx context.Context, tx *gorm.DB, eventID uint, userID string) (*models.Interest, error)
	createFn             func(ctx context.Context, tx *gorm.DB, interest *models.Interest) error
}

func (r *duplicateInterestRepo) FindByEventAndUser(ctx context.Context, tx *gorm.DB, eventID uint, userID string) (*models.Interest, error) {
	return r.findByEventAndUserFn(ctx, tx, eventID, userID)
}

func (r *duplicateInterestRepo) Create(ctx context.Context, tx *gorm.DB, interest *models.Interest) error {
	return r.createFn(ctx, tx, interest)
}

func TestToggleInterest_DuplicateInsertIsInvariantViolation(t *testing.T) {
	f := newReservationFixture(t)
	ctx := context.Background()
	event := f.seedEvent(t, seats(3), 2, false)
	f.seedInterest(t, event.ID, "user-a")

	interests := &duplicateInterestRepo{
		InterestRepository: repository.NewInterestRepository(f.db),
		findByEventAndUserFn: func(ctx context.Context, tx *gorm.DB, eventID uint, userID string) (*models.Interest, error) {
			return nil, gorm.ErrRecordNotFound
		},
		createFn: func(ctx context.Context, tx *gorm.DB, interest *models.Interest) error {
			return gorm.ErrDuplicatedKey
		},
	}
	pub := &recordingPublisher{}
	svc := NewReservationService(repository.NewEventRepository(f.db), interests, pub)

	res, err := svc.ToggleInterest(ctx, event.ID, "user-a")

	assert.ErrorIs(t, err, ErrInvariantViolation)
	assert.Nil(t, res)
	assert.Equal(t, 2, f.reload(t, event.ID).AvailableSeats)
	assert.Equal(t, 1, f.count(t, event.ID))
	assert.Empty(t, pub.keys())
}

func TestToggleInterest_ReserveClampsToLedger(t *testing.T) {
	f := newReservationFixture(t)
	ctx := context.Background()
	event := f.seedEvent(t, seats(3), 3, false)
	f.seedInterest(t, event.ID, "user-a")

	res, err := f.svc.ToggleInterest(ctx, event.ID, "user-b")
	require.NoError(t, err)
	assert.True(t, res.Interested)
	assert.Equal(t, 1, res.AvailableSeats)
}

func TestToggleInterest_EventNotFound(t *testing.T) {
	f := newReservationFixture(t)

	res, err := f.svc.ToggleInterest(context.Background(), 404, "alice")

	assert.ErrorIs(t, err, ErrEventNotFound)
	assert.Nil(t, res)
	assert.Empty(t, f.publisher.keys())
}

func TestToggleInterest_EmptyUser(t *testing.T) {
	f := newReservationFixture(t)
	event := f.seedEvent(t, seats(1), 1, false)

	_, err := f.svc.ToggleInterest(context.Background(), event.ID, "  ")

	assert.ErrorIs(t, err, ErrUserIDRequired)
	assert.Equal(t, 1, f.reload(t, event.ID).AvailableSeats)
}

func TestToggleInterest_NilPublisher(t *testing.T) {
	db := newTestDB(t)
	svc := NewReservationService(repository.NewEventRepository(db), repository.NewInterestRepository(db), nil)
	event := &models.Event{Title: "Open Mic", StartUTC: time.Now(), EndUTC: time.Now()}
	require.NoError(t, db.Create(event).Error)

	res, err := svc.ToggleInterest(context.Background(), event.ID, "alice")

	require.NoError(t, err)
	assert.True(t, res.Interested)
}

func TestToggleInterest_ConcurrentLastSeat(t *testing.T) {
	f := newReservationFixture(t)
	ctx := context.Background()
	event := f.seedEvent(t, seats(3), 3, false)

	const users = 20
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		reserved int
		refused  int
	)
	for i := range users {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res, err := f.svc.ToggleInterest(ctx, event.ID, fmt.Sprintf("user-%d", i))
			if !assert.NoError(t, err) {
				return
			}
			mu.Lock()
			defer mu.Unlock()
			if res.Interested {
				reserved++
			} else {
				refused++
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 3, reserved)
	assert.Equal(t, users-3, refused)
	assert.Equal(t, 3, f.count(t, event.ID))
	assert.Equal(t, 0, f.reload(t, event.ID).AvailableSeats)
	assert.Equal(t, 0, f.svc.locks.size())
}

// --- Queries ---

func TestStatus(t *testing.T) {
	f := newReservationFixture(t)
	ctx := context.Background()
	event := f.seedEvent(t, seats(2), 2, false)
	_, err := f.svc.ToggleInterest(ctx, event.ID, "alice")
	require.NoError(t, err)

	st, err := f.svc.Status(ctx, event.ID, "alice")
	require.NoError(t, err)
	assert.True(t, st.Interested)
	assert.Equal(t, 1, st.Count)
	assert.True(t, st.CanRegister)
	assert.Equal(t, 1, st.AvailableSeats)

	st, err = f.svc.Status(ctx, event.ID, "")
	require.NoError(t, err)
	assert.False(t, st.Interested)

	_, err = f.svc.Status(ctx, 999, "alice")
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestCanRegister(t *testing.T) {
	f := newReservationFixture(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		event *models.Event
		want  bool
	}{
		{"open with seats", f.seedEvent(t, seats(2), 1, false), true},
		{"full", f.seedEvent(t, seats(2), 0, false), false},
		{"unlimited", f.seedEvent(t, nil, 0, false), true},
		{"cancelled", f.seedEvent(t, seats(2), 2, true), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := f.svc.CanRegister(ctx, tt.event.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}

	ok, err := f.svc.CanRegister(ctx, 999)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestIsInterestedAndCount_MissingEvent(t *testing.T) {
	f := newReservationFixture(t)
	ctx := context.Background()

	ok, err := f.svc.IsInterested(ctx, 999, "alice")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 0, f.count(t, 999))
}

func TestUserInterests_NewestFirst(t *testing.T) {
	f := newReservationFixture(t)
	ctx := context.Background()
	first := f.seedEvent(t, nil, 0, false)
	second := f.seedEvent(t, nil, 0, false)

	clock := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	f.svc.now = func() time.Time { return clock }
	_, err := f.svc.ToggleInterest(ctx, first.ID, "alice")
	require.NoError(t, err)

	clock = clock.Add(time.Hour)
	_, err = f.svc.ToggleInterest(ctx, second.ID, "alice")
	require.NoError(t, err)

	interests, err := f.svc.UserInterests(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, interests, 2)
	assert.Equal(t, second.ID, interests[0].EventID)
	assert.Equal(t, first.ID, interests[1].EventID)
	require.NotNil(t, interests[0].Event)
	assert.Equal(t, "Community Jazz Night", interests[0].Event.Title)

	_, err = f.svc.UserInterests(ctx, "")
	assert.ErrorIs(t, err, ErrUserIDRequired)
}

func TestEventInterests(t *testing.T) {
	f := newReservationFixture(t)
	ctx := context.Background()
	event := f.seedEvent(t, nil, 0, false)
	f.seedInterest(t, event.ID, "alice")
	f.seedInterest(t, event.ID, "bob")

	interests, err := f.svc.EventInterests(ctx, event.ID)
	require.NoError(t, err)
	assert.Len(t, interests, 2)

	_, err = f.svc.EventInterests(ctx, 999)
	assert.ErrorIs(t, err, ErrEventNotFound)
}

// --- Resync ---

func TestResync_RecomputesAndIsIdempotent(t *testing.T) {
	f := newReservationFixture(t)
	ctx := context.Background()
	event := f.seedEvent(t, seats(10), 1, false)
	f.seedInterest(t, event.ID, "alice")
	f.seedInterest(t, event.ID, "bob")

	require.NoError(t, f.svc.Resync(ctx, event.ID))
	assert.Equal(t, 8, f.reload(t, event.ID).AvailableSeats)

	require.NoError(t, f.svc.Resync(ctx, event.ID))
	assert.Equal(t, 8, f.reload(t, event.ID).AvailableSeats)
}

func TestResync_UnlimitedUntouched(t *testing.T) {
	f := newReservationFixture(t)
	event := f.seedEvent(t, nil, 0, false)
	f.seedInterest(t, event.ID, "alice")

	require.NoError(t, f.svc.Resync(context.Background(), event.ID))

	reloaded := f.reload(t, event.ID)
	assert.Nil(t, reloaded.TotalSeats)
	assert.Equal(t, 0, reloaded.AvailableSeats)
}

func TestResync_NotFound(t *testing.T) {
	f := newReservationFixture(t)
	assert.ErrorIs(t, f.svc.Resync(context.Background(), 999), ErrEventNotFound)
}

func TestResyncAfterCapacityChange_ShrinkBelowInterests(t *testing.T) {
	f := newReservationFixture(t)
	ctx := context.Background()
	event := f.seedEvent(t, seats(5), 2, false)
	for _, u := range []string{"user-a", "user-b", "user-c"} {
		f.seedInterest(t, event.ID, u)
	}

	require.NoError(t, f.svc.ResyncAfterCapacityChange(ctx, event.ID, 2))

	reloaded := f.reload(t, event.ID)
	require.NotNil(t, reloaded.TotalSeats)
	assert.Equal(t, 2, *reloaded.TotalSeats)
	assert.Equal(t, 0, reloaded.AvailableSeats)

	for _, u := range []string{"user-a", "user-b", "user-c"} {
		ok, err := f.svc.IsInterested(ctx, event.ID, u)
		require.NoError(t, err)
		assert.True(t, ok, u)
	}

	res, err := f.svc.ToggleInterest(ctx, event.ID, "user-d")
	require.NoError(t, err)
	assert.Equal(t, RefusalNoSeats, res.Refusal)

	// one retraction still leaves the event over capacity
	res, err = f.svc.ToggleInterest(ctx, event.ID, "user-a")
	require.NoError(t, err)
	assert.False(t, res.Interested)
	assert.Equal(t, 0, res.AvailableSeats)
}

func TestResyncAfterCapacityChange_Grow(t *testing.T) {
	f := newReservationFixture(t)
	ctx := context.Background()
	event := f.seedEvent(t, nil, 0, false)
	f.seedInterest(t, event.ID, "alice")

	require.NoError(t, f.svc.ResyncAfterCapacityChange(ctx, event.ID, 4))

	reloaded := f.reload(t, event.ID)
	assert.Equal(t, 4, *reloaded.TotalSeats)
	assert.Equal(t, 3, reloaded.AvailableSeats)
}

func TestResyncAfterCapacityChange_Negative(t *testing.T) {
	f := newReservationFixture(t)
	event := f.seedEvent(t, seats(5), 5, false)

	err := f.svc.ResyncAfterCapacityChange(context.Background(), event.ID, -1)

	assert.ErrorIs(t, err, ErrInvalidCapacity)
	assert.Equal(t, 5, *f.reload(t, event.ID).TotalSeats)
}

func TestRemoveCapacityLimit(t *testing.T) {
	f := newReservationFixture(t)
	ctx := context.Background()
	event := f.seedEvent(t, seats(1), 0, false)
	f.seedInterest(t, event.ID, "alice")

	require.NoError(t, f.svc.RemoveCapacityLimit(ctx, event.ID))

	reloaded := f.reload(t, event.ID)
	assert.Nil(t, reloaded.TotalSeats)
	assert.Equal(t, 0, reloaded.AvailableSeats)

	res, err := f.svc.ToggleInterest(ctx, event.ID, "bob")
	require.NoError(t, err)
	assert.True(t, res.Interested)
}

type failingSeatsRepo struct {
	repository.EventRepository
	updateSeatsFn func(ctx context.Context, tx *gorm.DB, id uint, totalSeats *int, availableSeats int) error
}

func (r *failingSeatsRepo) UpdateSeats(ctx context.Context, tx *gorm.DB, id uint, totalSeats *int, availableSeats int) error {
	return r.updateSeatsFn(ctx, tx, id, totalSeats, availableSeats)
}

func TestSaveEvent_DetailsAndCapacityTogether(t *testing.T) {
	f := newReservationFixture(t)
	ctx := context.Background()
	event := f.seedEvent(t, seats(5), 3, false)
	f.seedInterest(t, event.ID, "alice")
	f.seedInterest(t, event.ID, "bob")

	event.Title = "Late Night Jazz"
	require.NoError(t, f.svc.SaveEvent(ctx, event, CapacityChange{TotalSeats: seats(3)}))

	reloaded := f.reload(t, event.ID)
	assert.Equal(t, "Late Night Jazz", reloaded.Title)
	assert.Equal(t, 3, *reloaded.TotalSeats)
	assert.Equal(t, 1, reloaded.AvailableSeats)

	event.Title = "Open Jazz"
	require.NoError(t, f.svc.SaveEvent(ctx, event, CapacityChange{Unlimited: true, TotalSeats: seats(9)}))
	reloaded = f.reload(t, event.ID)
	assert.Equal(t, "Open Jazz", reloaded.Title)
	assert.Nil(t, reloaded.TotalSeats)
	assert.Equal(t, 0, reloaded.AvailableSeats)
}

func TestSaveEvent_CapacityFailureRollsBackDetails(t *testing.T) {
	f := newReservationFixture(t)
	ctx := context.Background()
	event := f.seedEvent(t, seats(5), 5, false)

	events := &failingSeatsRepo{
		EventRepository: repository.NewEventRepository(f.db),
		updateSeatsFn: func(ctx context.Context, tx *gorm.DB, id uint, totalSeats *int, availableSeats int) error {
			return errors.New("disk full")
		},
	}
	svc := NewReservationService(events, repository.NewInterestRepository(f.db), nil)

	event.Title = "Renamed"
	err := svc.SaveEvent(ctx, event, CapacityChange{TotalSeats: seats(2)})

	assert.EqualError(t, err, "disk full")
	reloaded := f.reload(t, event.ID)
	assert.Equal(t, "Community Jazz Night", reloaded.Title)
	assert.Equal(t, 5, *reloaded.TotalSeats)
}

func TestSaveEvent_MissingOrInvalid(t *testing.T) {
	f := newReservationFixture(t)
	ctx := context.Background()

	err := f.svc.SaveEvent(ctx, &models.Event{ID: 404, Title: "Ghost"}, CapacityChange{})
	assert.ErrorIs(t, err, ErrEventNotFound)

	event := f.seedEvent(t, seats(5), 5, false)
	event.Title = "Renamed"
	err = f.svc.SaveEvent(ctx, event, CapacityChange{TotalSeats: seats(-1)})
	assert.ErrorIs(t, err, ErrInvalidCapacity)
	assert.Equal(t, "Community Jazz Night", f.reload(t, event.ID).Title)
}

// --- eventLocks ---

func TestEventLocks_ReleasesEntries(t *testing.T) {
	locks := newEventLocks()

	unlockA := locks.Lock(1)
	unlockB := locks.Lock(2)
	assert.Equal(t, 2, locks.size())

	done := make(chan struct{})
	go func() {
		unlock := locks.Lock(1)
		unlock()
		close(done)
	}()

	unlockA()
	<-done
	unlockB()

	assert.Equal(t, 0, locks.size())
}
