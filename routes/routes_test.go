package routes_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"LoveForTennis/config"
	"LoveForTennis/middleware"
	"LoveForTennis/models/dto"
	models "LoveForTennis/models/postgres"
	"LoveForTennis/repository"
	"LoveForTennis/routes"
	"LoveForTennis/services/auth"
	"LoveForTennis/services/booking"
	"LoveForTennis/services/bookingplayer"
	"LoveForTennis/services/court"
	"LoveForTennis/services/dummy"
	"LoveForTennis/services/identity"
	"LoveForTennis/services/role"
	"LoveForTennis/services/seed"
	"LoveForTennis/services/user"
	"LoveForTennis/utils/testdb"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type api struct {
	t      *testing.T
	router *gin.Engine
}

func newAPI(t *testing.T) *api {
	gin.SetMode(gin.TestMode)
	db := testdb.New(t)

	users := repository.NewGormUserRepository(db)
	courts := repository.NewGormCourtRepository(db)
	bookings := repository.NewGormBookingRepository(db)
	dummies := repository.NewGormDummyRepository(db)
	roles := role.NewService(users)
	provider := identity.NewProvider(identity.NewMemoryTokenStore(), identity.Options{
		JWTSecret:  "test-secret",
		BcryptCost: bcrypt.MinCost,
	})
	require.NoError(t, seed.NewSeeder(users, courts, dummies, roles, provider).Run(context.Background()))

	router := gin.New()
	middleware.SetUpMiddleware(router, config.App{SessionKey: "test-session", CORSOrigins: []string{"*"}, JWTExpireMin: 60})
	routes.SetupRoutes(router, routes.Deps{
		Identity:       provider,
		Auth:           auth.NewService(users, roles, provider, auth.NewMemoryThrottle(), auth.Options{MaxFailures: 5, Lockout: time.Minute}),
		Bookings:       booking.NewService(db, bookings, courts, users, nil, time.UTC),
		BookingPlayers: bookingplayer.NewService(repository.NewGormBookingPlayerRepository(db), bookings, users),
		Courts:         court.NewService(courts),
		Dummies:        dummy.NewService(dummies),
		Users:          user.NewService(users),
	})
	return &api{t: t, router: router}
}

type caller struct {
	token   string
	cookies []*http.Cookie
	user    *dto.UserInfo
}

func (a *api) do(as *caller, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if as != nil {
		if as.token != "" {
			req.Header.Set("Authorization", "Bearer "+as.token)
		}
		for _, c := range as.cookies {
			req.AddCookie(c)
		}
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

// login signs in with the seeded password and authenticates later calls
// with the Bearer token.
func (a *api) login(role string) *caller {
	w := a.do(nil, http.MethodPost, "/api/auth/login", dto.LoginRequest{Email: seed.PrincipalEmail(role), Password: seed.DefaultPassword})
	require.Equal(a.t, http.StatusOK, w.Code, w.Body.String())
	res := decode[dto.AuthResponse](a.t, w)
	require.NotEmpty(a.t, res.AccessToken)
	return &caller{token: res.AccessToken, user: res.User}
}

func tomorrowAt(hour int) time.Time {
	return time.Now().UTC().Truncate(24*time.Hour).AddDate(0, 0, 1).Add(time.Duration(hour) * time.Hour)
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	return decode[map[string]string](t, w)["code"]
}

func TestPing(t *testing.T) {
	a := newAPI(t)
	w := a.do(nil, http.MethodGet, "/ping", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	body := decode[map[string]any](t, w)
	assert.Equal(t, "pong", body["message"])
	assert.NotEmpty(t, body["time"])
}

func TestAuthFlow(t *testing.T) {
	a := newAPI(t)

	bad := a.do(nil, http.MethodPost, "/api/auth/login", dto.LoginRequest{Email: "admin@dummy.com", Password: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, bad.Code)
	assert.Equal(t, "Invalid email or password.", decode[dto.AuthResponse](t, bad).Message)

	w := a.do(nil, http.MethodPost, "/api/auth/login", dto.LoginRequest{Email: "player@dummy.com", Password: seed.DefaultPassword})
	require.Equal(t, http.StatusOK, w.Code)
	session := &caller{cookies: w.Result().Cookies()}
	require.NotEmpty(t, session.cookies)

	profile := a.do(session, http.MethodGet, "/api/auth/profile", nil)
	require.Equal(t, http.StatusOK, profile.Code)
	info := decode[dto.UserInfo](t, profile)
	assert.Equal(t, "player@dummy.com", info.Email)
	assert.Equal(t, []string{models.RolePlayer}, info.Roles)

	logout := a.do(session, http.MethodPost, "/api/auth/logout", nil)
	require.Equal(t, http.StatusOK, logout.Code)
	after := a.do(&caller{cookies: logout.Result().Cookies()}, http.MethodGet, "/api/auth/profile", nil)
	assert.Equal(t, http.StatusUnauthorized, after.Code)

	reg := a.do(nil, http.MethodPost, "/api/auth/register", dto.RegisterRequest{
		Email: "new@club.com", Password: "Secret123!", ConfirmPassword: "Secret123!", FirstName: "New", LastName: "Member",
	})
	assert.Equal(t, http.StatusCreated, reg.Code, reg.Body.String())
	dup := a.do(nil, http.MethodPost, "/api/auth/register", dto.RegisterRequest{
		Email: "new@club.com", Password: "Secret123!", ConfirmPassword: "Secret123!",
	})
	assert.Equal(t, http.StatusBadRequest, dup.Code)

	malformed := a.do(nil, http.MethodPost, "/api/auth/register", dto.RegisterRequest{
		Email: "not-an-email", Password: "Secret123!", ConfirmPassword: "Secret123!",
	})
	assert.Equal(t, http.StatusBadRequest, malformed.Code)
	assert.Equal(t, "validation", errorCode(t, malformed))
	malformedForgot := a.do(nil, http.MethodPost, "/api/auth/forgot-password", dto.ForgotPasswordRequest{Email: "coach"})
	assert.Equal(t, http.StatusBadRequest, malformedForgot.Code)

	known := a.do(nil, http.MethodPost, "/api/auth/forgot-password", dto.ForgotPasswordRequest{Email: "coach@dummy.com"})
	unknown := a.do(nil, http.MethodPost, "/api/auth/forgot-password", dto.ForgotPasswordRequest{Email: "ghost@dummy.com"})
	assert.Equal(t, http.StatusOK, known.Code)
	assert.Equal(t, known.Body.String(), unknown.Body.String())
}

func TestCourtsArePublicButWritesNeedBoard(t *testing.T) {
	a := newAPI(t)

	list := a.do(nil, http.MethodGet, "/api/court", nil)
	require.Equal(t, http.StatusOK, list.Code)
	courts := decode[[]dto.Court](t, list)
	require.Len(t, courts, 3)
	assert.Equal(t, "07:00:00", courts[0].BookingAllowedFrom.String())

	body := map[string]any{
		"name":                   "Court 4",
		"surfaceType":            "Grass",
		"allowedBookingTimeType": "Hour",
		"inOrOutdoorType":        "Outdoor",
		"bookingAllowedFrom":     "08:00:00",
		"bookingAllowedTill":     "20:00:00",
	}
	assert.Equal(t, http.StatusUnauthorized, a.do(nil, http.MethodPost, "/api/court", body).Code)

	player := a.login(models.RolePlayer)
	forbidden := a.do(player, http.MethodPost, "/api/court", body)
	assert.Equal(t, http.StatusForbidden, forbidden.Code)
	assert.Equal(t, "forbidden", errorCode(t, forbidden))

	board := a.login(models.RoleBoardMember)
	created := a.do(board, http.MethodPost, "/api/court", body)
	require.Equal(t, http.StatusCreated, created.Code, created.Body.String())
	c := decode[dto.Court](t, created)
	assert.Equal(t, "20:00:00", c.BookingAllowedTill.String())

	disable := a.do(board, http.MethodPost, fmt.Sprintf("/api/court/%d/disable", c.ID), map[string]any{"from": tomorrowAt(0)})
	require.Equal(t, http.StatusOK, disable.Code, disable.Body.String())
	assert.Equal(t, board.user.ID, *decode[dto.Court](t, disable).IsDisabledByUser)

	missing := a.do(nil, http.MethodGet, "/api/court/999", nil)
	assert.Equal(t, http.StatusNotFound, missing.Code)
	assert.Equal(t, "not_found", errorCode(t, missing))
	assert.Equal(t, http.StatusBadRequest, a.do(nil, http.MethodGet, "/api/court/abc", nil).Code)
}

func TestBookingFlow(t *testing.T) {
	a := newAPI(t)
	player := a.login(models.RolePlayer)
	coach := a.login(models.RoleCoach)
	admin := a.login(models.RoleAdmin)

	assert.Equal(t, http.StatusUnauthorized, a.do(nil, http.MethodGet, "/api/booking", nil).Code)

	req := map[string]any{"courtId": 1, "bookingFrom": tomorrowAt(10), "bookingTo": tomorrowAt(11), "bookingType": "Match"}
	created := a.do(player, http.MethodPost, "/api/booking", req)
	require.Equal(t, http.StatusCreated, created.Code, created.Body.String())
	b := decode[dto.Booking](t, created)
	assert.Equal(t, player.user.ID, b.BookedByUserID)
	assert.Equal(t, "Court 1", b.CourtName)

	clash := a.do(coach, http.MethodPost, "/api/booking", req)
	assert.Equal(t, http.StatusConflict, clash.Code)
	assert.Equal(t, "conflict", errorCode(t, clash))

	forSomeoneElse := map[string]any{"bookedByUserId": player.user.ID, "courtId": 2, "bookingFrom": tomorrowAt(10), "bookingTo": tomorrowAt(11)}
	assert.Equal(t, http.StatusForbidden, a.do(coach, http.MethodPost, "/api/booking", forSomeoneElse).Code)

	bookingPath := fmt.Sprintf("/api/booking/%d", b.ID)
	assert.Equal(t, http.StatusForbidden, a.do(coach, http.MethodDelete, bookingPath, nil).Code)

	add := a.do(player, http.MethodPost, "/api/bookingplayer", dto.BookingPlayer{BookingID: b.ID, PlayerUserID: coach.user.ID})
	require.Equal(t, http.StatusCreated, add.Code, add.Body.String())
	again := a.do(player, http.MethodPost, "/api/bookingplayer", dto.BookingPlayer{BookingID: b.ID, PlayerUserID: coach.user.ID})
	assert.Equal(t, http.StatusConflict, again.Code)
	assert.Equal(t, "duplicate", errorCode(t, again))

	got := decode[dto.Booking](t, a.do(coach, http.MethodGet, bookingPath, nil))
	require.Len(t, got.Players, 1)
	assert.Equal(t, "Coach Coach", got.Players[0].PlayerUserName)

	calendar := a.do(coach, http.MethodGet, "/api/booking/court/1?from="+tomorrowAt(0).Format(time.RFC3339)+"&to="+tomorrowAt(24).Format(time.RFC3339), nil)
	require.Equal(t, http.StatusOK, calendar.Code, calendar.Body.String())
	assert.Len(t, decode[[]dto.Booking](t, calendar), 1)

	cancel := a.do(player, http.MethodPost, bookingPath+"/cancel", nil)
	require.Equal(t, http.StatusOK, cancel.Code)
	assert.True(t, decode[dto.Booking](t, cancel).Cancelled)
	assert.Equal(t, http.StatusCreated, a.do(coach, http.MethodPost, "/api/booking", req).Code)

	deleted := a.do(admin, http.MethodDelete, bookingPath, nil)
	assert.Equal(t, http.StatusNoContent, deleted.Code)
	players := a.do(admin, http.MethodGet, fmt.Sprintf("/api/bookingplayer/booking/%d", b.ID), nil)
	assert.Len(t, decode[[]dto.BookingPlayer](t, players), 0)

	mine := a.do(coach, http.MethodGet, "/api/booking/user/"+coach.user.ID, nil)
	assert.Len(t, decode[[]dto.Booking](t, mine), 1)
}

func TestUsersAdminOnly(t *testing.T) {
	a := newAPI(t)
	player := a.login(models.RolePlayer)
	admin := a.login(models.RoleAdmin)

	assert.Equal(t, http.StatusForbidden, a.do(player, http.MethodGet, "/api/users", nil).Code)

	list := a.do(admin, http.MethodGet, "/api/users", nil)
	require.Equal(t, http.StatusOK, list.Code)
	assert.Len(t, decode[[]dto.User](t, list), 4)

	self := a.do(admin, http.MethodDelete, "/api/users/"+admin.user.ID, nil)
	assert.Equal(t, http.StatusConflict, self.Code)
	assert.Equal(t, http.StatusNoContent, a.do(admin, http.MethodDelete, "/api/users/"+player.user.ID, nil).Code)
}

func TestDummyEndpoints(t *testing.T) {
	a := newAPI(t)
	list := a.do(nil, http.MethodGet, "/api/dummy", nil)
	require.Equal(t, http.StatusOK, list.Code)
	assert.Len(t, decode[[]dto.DummyEntity](t, list), 3)

	assert.Equal(t, http.StatusUnauthorized, a.do(nil, http.MethodPost, "/api/dummy", dto.DummyEntity{Name: "Net"}).Code)

	coach := a.login(models.RoleCoach)
	invalid := a.do(coach, http.MethodPost, "/api/dummy", dto.DummyEntity{Name: ""})
	assert.Equal(t, http.StatusBadRequest, invalid.Code)
	assert.Equal(t, "validation", errorCode(t, invalid))

	created := a.do(coach, http.MethodPost, "/api/dummy", dto.DummyEntity{Name: "Net"})
	require.Equal(t, http.StatusCreated, created.Code)
	id := decode[dto.DummyEntity](t, created).ID
	assert.Equal(t, http.StatusNoContent, a.do(coach, http.MethodDelete, fmt.Sprintf("/api/dummy/%d", id), nil).Code)
}
