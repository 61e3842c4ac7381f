package booking_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"LoveForTennis/models/dto"
	models "LoveForTennis/models/postgres"
	"LoveForTennis/repository"
	"LoveForTennis/services/booking"
	"LoveForTennis/utils/apperror"
	"LoveForTennis/utils/testdb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var now = time.Date(2030, 5, 17, 8, 15, 0, 0, time.UTC)

func at(day, hour int) time.Time {
	return time.Date(2030, 5, day, hour, 0, 0, 0, time.UTC)
}

type recorder struct {
	mu     sync.Mutex
	events []dto.BookingEvent
}

func (r *recorder) BookingChanged(ev dto.BookingEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recorder) actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []string{}
	for _, ev := range r.events {
		out = append(out, ev.Action)
	}
	return out
}

type env struct {
	db     *gorm.DB
	svc    *booking.Service
	events *recorder
	owner  *models.User
	court  *models.Court
	other  *models.Court
}

func newEnv(t *testing.T) *env {
	db := testdb.New(t)
	users := repository.NewGormUserRepository(db)
	courts := repository.NewGormCourtRepository(db)
	events := &recorder{}
	svc := booking.NewService(db, repository.NewGormBookingRepository(db), courts, users, events, time.UTC)
	svc.SetClock(func() time.Time { return now })

	ctx := context.Background()
	owner := &models.User{Email: "player@dummy.com", FirstName: "Player", LastName: "Player", PasswordHash: "x"}
	require.NoError(t, users.Create(ctx, owner))

	days := 14
	newCourt := func(name string) *models.Court {
		c := &models.Court{
			Name:                                     name,
			SurfaceType:                              models.SurfaceClay,
			AllowedBookingTimeType:                   models.BookingTimeHour,
			InOrOutdoorType:                          models.Outdoor,
			BookingAllowedFrom:                       datatypes.NewTime(7, 0, 0, 0),
			BookingAllowedTill:                       datatypes.NewTime(22, 0, 0, 0),
			BookingsOpenForNumberOfDaysIntoTheFuture: &days,
		}
		require.NoError(t, courts.Create(ctx, c))
		return c
	}

	return &env{db: db, svc: svc, events: events, owner: owner, court: newCourt("Court 1"), other: newCourt("Court 2")}
}

func (e *env) request(court *models.Court, from time.Time, hours int) dto.Booking {
	return dto.Booking{
		BookedByUserID: e.owner.ID,
		CourtID:        court.ID,
		BookingFrom:    from,
		BookingTo:      from.Add(time.Duration(hours) * time.Hour),
		BookingType:    models.BookingTraining,
	}
}

func TestCreateThenGetRoundTrips(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	in := e.request(e.court, at(18, 10), 2)
	in.Created = time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC)
	created, err := e.svc.Create(ctx, in)
	require.NoError(t, err)

	got, err := e.svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, in.BookedByUserID, got.BookedByUserID)
	assert.Equal(t, in.CourtID, got.CourtID)
	assert.True(t, in.BookingFrom.Equal(got.BookingFrom))
	assert.True(t, in.BookingTo.Equal(got.BookingTo))
	assert.Equal(t, models.BookingTraining, got.BookingType)
	assert.False(t, got.Cancelled)
	assert.True(t, now.Equal(got.Created), "creation time is stamped by the server")
	assert.Nil(t, got.LastUpdated)
	assert.Equal(t, "Player Player", got.BookedByUserName)
	assert.Equal(t, "Court 1", got.CourtName)
	assert.Empty(t, got.Players)

	assert.Equal(t, []string{dto.BookingCreated}, e.events.actions())
}

func TestOverlappingBookingIsRejected(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.svc.Create(ctx, e.request(e.court, at(18, 10), 2))
	require.NoError(t, err)

	_, err = e.svc.Create(ctx, e.request(e.court, at(18, 11), 1))
	assert.ErrorIs(t, err, booking.ErrOverlap)
	assert.True(t, apperror.IsConflict(err))

	// Adjacent slots and other courts are free.
	_, err = e.svc.Create(ctx, e.request(e.court, at(18, 12), 1))
	assert.NoError(t, err)
	_, err = e.svc.Create(ctx, e.request(e.other, at(18, 10), 2))
	assert.NoError(t, err)
}

func TestCancelledBookingFreesSlot(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	first, err := e.svc.Create(ctx, e.request(e.court, at(18, 10), 1))
	require.NoError(t, err)

	cancelled, err := e.svc.Cancel(ctx, first.ID)
	require.NoError(t, err)
	assert.True(t, cancelled.Cancelled)
	require.NotNil(t, cancelled.LastUpdated)

	_, err = e.svc.Create(ctx, e.request(e.court, at(18, 10), 1))
	assert.NoError(t, err)

	assert.Equal(t, []string{dto.BookingCreated, dto.BookingCancelled, dto.BookingCreated}, e.events.actions())
}

func TestUpdateExcludesItselfFromOverlap(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	created, err := e.svc.Create(ctx, e.request(e.court, at(18, 10), 2))
	require.NoError(t, err)
	blocker, err := e.svc.Create(ctx, e.request(e.court, at(18, 14), 1))
	require.NoError(t, err)

	moved := *created
	moved.BookingFrom = at(18, 11)
	moved.BookingTo = at(18, 13)
	updated, err := e.svc.Update(ctx, moved)
	require.NoError(t, err)
	assert.True(t, at(18, 11).Equal(updated.BookingFrom))
	assert.True(t, created.Created.Equal(updated.Created))
	require.NotNil(t, updated.LastUpdated)

	moved.BookingTo = at(18, 15)
	_, err = e.svc.Update(ctx, moved)
	assert.ErrorIs(t, err, booking.ErrOverlap)

	// A cancelled booking does not occupy its slot.
	moved.Cancelled = true
	_, err = e.svc.Update(ctx, moved)
	assert.NoError(t, err)

	// Reactivating it checks again.
	moved.Cancelled = false
	_, err = e.svc.Update(ctx, moved)
	assert.ErrorIs(t, err, booking.ErrOverlap)

	_, err = e.svc.Get(ctx, blocker.ID)
	assert.NoError(t, err)
}

func TestCreateValidatesCourtRules(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	cases := []struct {
		name string
		req  dto.Booking
		want error
	}{
		{"outside window", e.request(e.court, at(18, 21), 2), booking.ErrOutsideWindow},
		{"misaligned", e.request(e.court, at(18, 10).Add(30*time.Minute), 1), booking.ErrMisaligned},
		{"past", e.request(e.court, at(17, 7), 1), booking.ErrInPast},
		{"horizon", e.request(e.court, at(31, 10).AddDate(0, 0, 1), 1), booking.ErrTooFarAhead},
		{"unknown court", dto.Booking{BookedByUserID: e.owner.ID, CourtID: 999, BookingFrom: at(18, 10), BookingTo: at(18, 11)}, booking.ErrCourtNotFound},
		{"unknown user", dto.Booking{BookedByUserID: "ghost", CourtID: e.court.ID, BookingFrom: at(18, 10), BookingTo: at(18, 11)}, booking.ErrUserNotFound},
		{"bad type", dto.Booking{BookedByUserID: e.owner.ID, CourtID: e.court.ID, BookingFrom: at(18, 10), BookingTo: at(18, 11), BookingType: "Picnic"}, booking.ErrInvalidType},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := e.svc.Create(ctx, c.req)
			assert.ErrorIs(t, err, c.want)
		})
	}
}

func TestCreateRejectsDisabledCourt(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	from := at(20, 0)
	to := at(21, 0)
	require.NoError(t, e.db.Model(e.court).Updates(map[string]any{"is_disabled_from": from, "is_disabled_to": to}).Error)

	_, err := e.svc.Create(ctx, e.request(e.court, at(20, 10), 1))
	assert.ErrorIs(t, err, booking.ErrCourtDisabled)
}

func TestListByUserAndCourt(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	for _, h := range []int{10, 12} {
		_, err := e.svc.Create(ctx, e.request(e.court, at(18, h), 1))
		require.NoError(t, err)
	}
	_, err := e.svc.Create(ctx, e.request(e.court, at(19, 10), 1))
	require.NoError(t, err)

	mine, err := e.svc.ListByUser(ctx, e.owner.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 3)

	day, err := e.svc.ListByCourt(ctx, e.court.ID, at(18, 0), at(19, 0))
	require.NoError(t, err)
	require.Len(t, day, 2)
	assert.True(t, day[0].BookingFrom.Before(day[1].BookingFrom))

	_, err = e.svc.ListByCourt(ctx, e.court.ID, at(19, 0), at(18, 0))
	assert.ErrorIs(t, err, booking.ErrInvalidRange)
	_, err = e.svc.ListByCourt(ctx, 999, at(18, 0), at(19, 0))
	assert.ErrorIs(t, err, booking.ErrCourtNotFound)

	all, err := e.svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestDeleteRemovesBookingAndPlayers(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	created, err := e.svc.Create(ctx, e.request(e.court, at(18, 10), 1))
	require.NoError(t, err)
	require.NoError(t, e.db.Create(&models.BookingPlayer{BookingID: created.ID, PlayerUserID: e.owner.ID, Created: now}).Error)

	require.NoError(t, e.svc.Delete(ctx, created.ID))

	var players int64
	require.NoError(t, e.db.Model(&models.BookingPlayer{}).Where("booking_id = ?", created.ID).Count(&players).Error)
	assert.Zero(t, players)
	_, err = e.svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, booking.ErrNotFound)
	assert.ErrorIs(t, e.svc.Delete(ctx, created.ID), booking.ErrNotFound)
	assert.Equal(t, dto.BookingDeleted, e.events.actions()[1])
}
