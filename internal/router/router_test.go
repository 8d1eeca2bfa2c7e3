package router

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"weighttrack/internal/cache"
	"weighttrack/internal/handler"
	"weighttrack/internal/model"
	"weighttrack/internal/service"
	"weighttrack/internal/session"
)

// fakeUserRepo is an in-memory repository.UserRepository.
type fakeUserRepo struct {
	users map[uuid.UUID]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*model.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *model.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	if user, ok := r.users[id]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	for _, user := range r.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) SetInitialProfile(ctx context.Context, id uuid.UUID, heightIn int) error {
	user, ok := r.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	user.HeightIn = heightIn
	user.InitialHW = true
	return nil
}

// fakeWeightRepo is an in-memory repository.WeightRepository keyed by
// (user, day), mirroring the unique index.
type fakeWeightRepo struct {
	samples map[uuid.UUID]map[time.Time]*model.WeightSample
}

func newFakeWeightRepo() *fakeWeightRepo {
	return &fakeWeightRepo{samples: make(map[uuid.UUID]map[time.Time]*model.WeightSample)}
}

func (r *fakeWeightRepo) Upsert(ctx context.Context, sample *model.WeightSample) error {
	byDay, ok := r.samples[sample.UserID]
	if !ok {
		byDay = make(map[time.Time]*model.WeightSample)
		r.samples[sample.UserID] = byDay
	}
	if existing, ok := byDay[sample.Date]; ok {
		existing.WeightLbs = sample.WeightLbs
		return nil
	}
	if sample.ID == uuid.Nil {
		sample.ID = uuid.New()
	}
	byDay[sample.Date] = sample
	return nil
}

func (r *fakeWeightRepo) sorted(userID uuid.UUID) []model.WeightSample {
	var out []model.WeightSample
	for _, sample := range r.samples[userID] {
		out = append(out, *sample)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

func (r *fakeWeightRepo) FindForUserOnDate(ctx context.Context, userID uuid.UUID, day time.Time) (*model.WeightSample, error) {
	if sample, ok := r.samples[userID][day]; ok {
		return sample, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeWeightRepo) FindLatestForUser(ctx context.Context, userID uuid.UUID) (*model.WeightSample, error) {
	all := r.sorted(userID)
	if len(all) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &all[len(all)-1], nil
}

func (r *fakeWeightRepo) FindFirstForUser(ctx context.Context, userID uuid.UUID) (*model.WeightSample, error) {
	all := r.sorted(userID)
	if len(all) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &all[0], nil
}

func (r *fakeWeightRepo) ListForUserSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]model.WeightSample, error) {
	var out []model.WeightSample
	for _, sample := range r.sorted(userID) {
		if sample.Date.After(since) {
			out = append(out, sample)
		}
	}
	return out, nil
}

func (r *fakeWeightRepo) ListAllForUser(ctx context.Context, userID uuid.UUID) ([]model.WeightSample, error) {
	return r.sorted(userID), nil
}

// noopMailer drops mail on the floor.
type noopMailer struct{}

func (noopMailer) SendWelcome(user *model.User) error { return nil }

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

type testApp struct {
	echo    *echo.Echo
	users   *fakeUserRepo
	weights *fakeWeightRepo
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	e := echo.New()
	renderer, err := NewRenderer("../../web/templates/*.html")
	require.NoError(t, err)
	e.Renderer = renderer

	users := newFakeUserRepo()
	weights := newFakeWeightRepo()

	sessions := session.NewManager("test-secret", session.NewStore(&cache.Client{}))
	authService := service.NewAuthService(users, noopMailer{}, testLogger())
	weightService := service.NewWeightService(users, weights)
	chartService := service.NewChartService(weights)

	Register(
		e,
		sessions,
		users,
		handler.NewAuthHandler(authService, sessions),
		handler.NewWeightHandler(weightService),
		handler.NewMetricsHandler(weightService),
		handler.NewChartHandler(chartService),
		handler.NewPagesHandler(),
	)
	return &testApp{echo: e, users: users, weights: weights}
}

func (a *testApp) addUser(t *testing.T, username, password string, initialHW bool) *model.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	require.NoError(t, err)
	user := &model.User{
		Username:     username,
		PasswordHash: string(hashed),
		Email:        username + "@example.com",
		FirstName:    "Test",
		LastName:     "User",
		Birthday:     time.Date(1996, time.June, 15, 0, 0, 0, 0, time.UTC),
		HeightIn:     70,
		Gender:       model.GenderMale,
		InitialHW:    initialHW,
	}
	require.NoError(t, a.users.Create(context.Background(), user))
	return user
}

func (a *testApp) postForm(path string, form url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	a.echo.ServeHTTP(rec, req)
	return rec
}

func (a *testApp) get(path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	a.echo.ServeHTTP(rec, req)
	return rec
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == session.CookieName && cookie.Value != "" {
			return cookie
		}
	}
	t.Fatal("no session cookie set")
	return nil
}

func TestGuardRedirectsUnauthenticated(t *testing.T) {
	app := newTestApp(t)

	for _, path := range []string{"/", "/hw", "/eer", "/chart", "/logout"} {
		rec := app.get(path, nil)
		assert.Equal(t, http.StatusFound, rec.Code, "path %s", path)
		assert.Equal(t, "/login", rec.Header().Get(echo.HeaderLocation), "path %s", path)
	}
}

func TestPublicPagesNeedNoSession(t *testing.T) {
	app := newTestApp(t)

	for _, path := range []string{"/login", "/register", "/about", "/contact", "/healthz"} {
		rec := app.get(path, nil)
		assert.Equal(t, http.StatusOK, rec.Code, "path %s", path)
	}
}

func TestLoginRedirectsHome(t *testing.T) {
	app := newTestApp(t)
	app.addUser(t, "daniel", "secret123", true)

	rec := app.postForm("/login", url.Values{
		"username": {"daniel"},
		"password": {"secret123"},
	}, nil)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get(echo.HeaderLocation))

	cookie := sessionCookie(t, rec)
	home := app.get("/", cookie)
	assert.Equal(t, http.StatusOK, home.Code)
	assert.Contains(t, home.Body.String(), "Hello, Test")
}

func TestLoginRedirectsToCaptureBeforeBaseline(t *testing.T) {
	app := newTestApp(t)
	app.addUser(t, "daniel", "secret123", false)

	rec := app.postForm("/login", url.Values{
		"username": {"daniel"},
		"password": {"secret123"},
	}, nil)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/hw", rec.Header().Get(echo.HeaderLocation))
}

func TestLoginBadPasswordShowsError(t *testing.T) {
	app := newTestApp(t)
	app.addUser(t, "daniel", "secret123", true)

	rec := app.postForm("/login", url.Values{
		"username": {"daniel"},
		"password": {"wrongpass"},
	}, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid username or password")
}

func TestRegisterDuplicateUsernameKeepsExisting(t *testing.T) {
	app := newTestApp(t)
	existing := app.addUser(t, "daniel", "secret123", true)

	rec := app.postForm("/register", url.Values{
		"email":      {"other@example.com"},
		"username":   {"daniel"},
		"password":   {"another1"},
		"password2":  {"another1"},
		"first_name": {"Other"},
		"last_name":  {"Person"},
		"birthday":   {"1991-02-03"},
		"gender":     {"female"},
	}, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "username already exists")

	kept, err := app.users.FindByUsername(context.Background(), "daniel")
	require.NoError(t, err)
	assert.Equal(t, existing.Email, kept.Email)
	assert.Len(t, app.users.users, 1)
}

func TestWeightEntryKeepsOneRowPerDay(t *testing.T) {
	app := newTestApp(t)
	user := app.addUser(t, "daniel", "secret123", true)

	login := app.postForm("/login", url.Values{
		"username": {"daniel"},
		"password": {"secret123"},
	}, nil)
	cookie := sessionCookie(t, login)

	first := app.postForm("/", url.Values{"weight": {"180"}}, cookie)
	assert.Equal(t, http.StatusOK, first.Code)
	assert.Contains(t, first.Body.String(), "Weight has been recorded")

	second := app.postForm("/", url.Values{"weight": {"178"}}, cookie)
	assert.Equal(t, http.StatusOK, second.Code)
	assert.Contains(t, second.Body.String(), "Weight has been updated for today")
	assert.Contains(t, second.Body.String(), "You have lost 2 lbs so far!")

	samples, err := app.weights.ListAllForUser(context.Background(), user.ID)
	require.NoError(t, err)
	require.Len(t, samples, 1)
	assert.Equal(t, 178, samples[0].WeightLbs)
}

func TestInitialCaptureFlow(t *testing.T) {
	app := newTestApp(t)
	user := app.addUser(t, "daniel", "secret123", false)

	login := app.postForm("/login", url.Values{
		"username": {"daniel"},
		"password": {"secret123"},
	}, nil)
	cookie := sessionCookie(t, login)

	// home bounces to the capture page until the baseline exists
	rec := app.get("/", cookie)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/hw", rec.Header().Get(echo.HeaderLocation))

	capture := app.postForm("/hw", url.Values{
		"foot":   {"5"},
		"inches": {"10"},
		"weight": {"180"},
	}, cookie)
	assert.Equal(t, http.StatusFound, capture.Code)
	assert.Equal(t, "/", capture.Header().Get(echo.HeaderLocation))

	assert.True(t, user.InitialHW)
	assert.Equal(t, 70, user.HeightIn)

	home := app.get("/", cookie)
	assert.Equal(t, http.StatusOK, home.Code)
	assert.Contains(t, home.Body.String(), "BMI: 25.8")
}

func TestEERPage(t *testing.T) {
	app := newTestApp(t)
	app.addUser(t, "daniel", "secret123", true)

	login := app.postForm("/login", url.Values{
		"username": {"daniel"},
		"password": {"secret123"},
	}, nil)
	cookie := sessionCookie(t, login)

	// record a weight so the metrics have a sample
	app.postForm("/", url.Values{"weight": {"180"}}, cookie)

	rec := app.postForm("/eer", url.Values{"active": {"sedentary"}}, cookie)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "1876")

	rec = app.postForm("/eer", url.Values{}, cookie)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Please select an activity level")
}

func TestChartPage(t *testing.T) {
	app := newTestApp(t)
	app.addUser(t, "daniel", "secret123", true)

	login := app.postForm("/login", url.Values{
		"username": {"daniel"},
		"password": {"secret123"},
	}, nil)
	cookie := sessionCookie(t, login)

	app.postForm("/", url.Values{"weight": {"180"}}, cookie)

	rec := app.postForm("/chart", url.Values{"time": {"13"}}, cookie)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "180")

	rec = app.postForm("/chart", url.Values{"time": {"42"}}, cookie)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogoutRedirects(t *testing.T) {
	app := newTestApp(t)
	app.addUser(t, "daniel", "secret123", true)

	login := app.postForm("/login", url.Values{
		"username": {"daniel"},
		"password": {"secret123"},
	}, nil)
	cookie := sessionCookie(t, login)

	rec := app.get("/logout", cookie)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get(echo.HeaderLocation))
}
