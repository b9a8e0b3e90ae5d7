// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nitesh01487/natours/internal/apperr"
	"github.com/nitesh01487/natours/internal/config"
	"github.com/nitesh01487/natours/internal/logger"
	"github.com/nitesh01487/natours/internal/query"
	"github.com/nitesh01487/natours/internal/service"
	"github.com/nitesh01487/natours/models"
)

// ─────────────────────────────────────────────
// Service fakes
// ─────────────────────────────────────────────

// fakeTokenService accepts "good-token" for the user in user and rejects
// everything else unless verifyFn is set.
type fakeTokenService struct {
	user     models.User
	verifyFn func(ctx context.Context, tokenString string) (models.User, error)
}

func (f *fakeTokenService) Issue(context.Context, models.User) (models.Token, error) {
	return models.Token{SignedString: "good-token"}, nil
}

func (f *fakeTokenService) Verify(ctx context.Context, tokenString string) (models.User, error) {
	if f.verifyFn != nil {
		return f.verifyFn(ctx, tokenString)
	}
	if tokenString == "good-token" {
		return f.user, nil
	}
	return models.User{}, apperr.ErrInvalidOrExpiredToken
}

func (f *fakeTokenService) CreateResetToken(context.Context, models.User) (string, error) {
	return "", nil
}

func (f *fakeTokenService) ClearResetToken(context.Context, int64) error { return nil }

func (f *fakeTokenService) ConsumeResetToken(context.Context, string) (models.User, error) {
	return models.User{}, nil
}

type fakeAuthService struct {
	signupFn         func(ctx context.Context, req models.SignupRequest) (models.AuthResult, error)
	loginFn          func(ctx context.Context, req models.LoginRequest) (models.AuthResult, error)
	forgotPasswordFn func(ctx context.Context, req models.ForgotPasswordRequest) error
	resetPasswordFn  func(ctx context.Context, plaintext string, req models.ResetPasswordRequest) (models.AuthResult, error)
	updatePasswordFn func(ctx context.Context, user models.User, req models.UpdatePasswordRequest) (models.AuthResult, error)
}

func (f *fakeAuthService) Signup(ctx context.Context, req models.SignupRequest) (models.AuthResult, error) {
	return f.signupFn(ctx, req)
}

func (f *fakeAuthService) Login(ctx context.Context, req models.LoginRequest) (models.AuthResult, error) {
	return f.loginFn(ctx, req)
}

func (f *fakeAuthService) ForgotPassword(ctx context.Context, req models.ForgotPasswordRequest) error {
	return f.forgotPasswordFn(ctx, req)
}

func (f *fakeAuthService) ResetPassword(ctx context.Context, plaintext string, req models.ResetPasswordRequest) (models.AuthResult, error) {
	return f.resetPasswordFn(ctx, plaintext, req)
}

func (f *fakeAuthService) UpdatePassword(ctx context.Context, user models.User, req models.UpdatePasswordRequest) (models.AuthResult, error) {
	return f.updatePasswordFn(ctx, user, req)
}

type fakeUserService struct {
	getFn      func(ctx context.Context, id int64) (models.User, error)
	listFn     func(ctx context.Context, q query.Query) ([]models.User, error)
	updateMeFn func(ctx context.Context, id int64, req models.UpdateMeRequest) (models.User, error)
	deleteMeFn func(ctx context.Context, id int64) error
	updateFn   func(ctx context.Context, id int64, update models.UserUpdate) (models.User, error)
	deleteFn   func(ctx context.Context, id int64) error
}

func (f *fakeUserService) Get(ctx context.Context, id int64) (models.User, error) {
	return f.getFn(ctx, id)
}

func (f *fakeUserService) List(ctx context.Context, q query.Query) ([]models.User, error) {
	return f.listFn(ctx, q)
}

func (f *fakeUserService) UpdateMe(ctx context.Context, id int64, req models.UpdateMeRequest) (models.User, error) {
	return f.updateMeFn(ctx, id, req)
}

func (f *fakeUserService) DeleteMe(ctx context.Context, id int64) error {
	return f.deleteMeFn(ctx, id)
}

func (f *fakeUserService) Update(ctx context.Context, id int64, update models.UserUpdate) (models.User, error) {
	return f.updateFn(ctx, id, update)
}

func (f *fakeUserService) Delete(ctx context.Context, id int64) error {
	return f.deleteFn(ctx, id)
}

type fakeTourService struct {
	listFn        func(ctx context.Context, q query.Query) ([]models.Tour, error)
	getFn         func(ctx context.Context, id int64) (models.Tour, error)
	getBySlugFn   func(ctx context.Context, slug string) (models.Tour, error)
	createFn      func(ctx context.Context, in models.TourInput) (models.Tour, error)
	updateFn      func(ctx context.Context, id int64, in models.TourInput) (models.Tour, error)
	deleteFn      func(ctx context.Context, id int64) error
	statsFn       func(ctx context.Context) ([]models.TourStats, error)
	monthlyPlanFn func(ctx context.Context, year int) ([]models.MonthlyPlan, error)
	withinFn      func(ctx context.Context, distance, lat, lng float64, unit models.DistanceUnit) ([]models.Tour, error)
	distancesFn   func(ctx context.Context, lat, lng float64, unit models.DistanceUnit) ([]models.TourDistance, error)
	bookedByFn    func(ctx context.Context, userID int64) ([]models.Tour, error)
}

func (f *fakeTourService) List(ctx context.Context, q query.Query) ([]models.Tour, error) {
	return f.listFn(ctx, q)
}

func (f *fakeTourService) Get(ctx context.Context, id int64) (models.Tour, error) {
	return f.getFn(ctx, id)
}

func (f *fakeTourService) GetBySlug(ctx context.Context, slug string) (models.Tour, error) {
	return f.getBySlugFn(ctx, slug)
}

func (f *fakeTourService) Create(ctx context.Context, in models.TourInput) (models.Tour, error) {
	return f.createFn(ctx, in)
}

func (f *fakeTourService) Update(ctx context.Context, id int64, in models.TourInput) (models.Tour, error) {
	return f.updateFn(ctx, id, in)
}

func (f *fakeTourService) Delete(ctx context.Context, id int64) error {
	return f.deleteFn(ctx, id)
}

func (f *fakeTourService) Stats(ctx context.Context) ([]models.TourStats, error) {
	return f.statsFn(ctx)
}

func (f *fakeTourService) MonthlyPlan(ctx context.Context, year int) ([]models.MonthlyPlan, error) {
	return f.monthlyPlanFn(ctx, year)
}

func (f *fakeTourService) Within(ctx context.Context, distance, lat, lng float64, unit models.DistanceUnit) ([]models.Tour, error) {
	return f.withinFn(ctx, distance, lat, lng, unit)
}

func (f *fakeTourService) Distances(ctx context.Context, lat, lng float64, unit models.DistanceUnit) ([]models.TourDistance, error) {
	return f.distancesFn(ctx, lat, lng, unit)
}

func (f *fakeTourService) BookedBy(ctx context.Context, userID int64) ([]models.Tour, error) {
	return f.bookedByFn(ctx, userID)
}

type fakeReviewService struct {
	listFn   func(ctx context.Context, q query.Query) ([]models.Review, error)
	getFn    func(ctx context.Context, id int64) (models.Review, error)
	createFn func(ctx context.Context, author models.User, in models.ReviewInput) (models.Review, error)
	updateFn func(ctx context.Context, principal models.User, id int64, in models.ReviewInput) (models.Review, error)
	deleteFn func(ctx context.Context, principal models.User, id int64) error
}

func (f *fakeReviewService) List(ctx context.Context, q query.Query) ([]models.Review, error) {
	return f.listFn(ctx, q)
}

func (f *fakeReviewService) Get(ctx context.Context, id int64) (models.Review, error) {
	return f.getFn(ctx, id)
}

func (f *fakeReviewService) Create(ctx context.Context, author models.User, in models.ReviewInput) (models.Review, error) {
	return f.createFn(ctx, author, in)
}

func (f *fakeReviewService) Update(ctx context.Context, principal models.User, id int64, in models.ReviewInput) (models.Review, error) {
	return f.updateFn(ctx, principal, id, in)
}

func (f *fakeReviewService) Delete(ctx context.Context, principal models.User, id int64) error {
	return f.deleteFn(ctx, principal, id)
}

type fakeBookingService struct {
	checkoutFn func(ctx context.Context, tourID int64, user models.User) (models.CheckoutSession, error)
	recordFn   func(ctx context.Context, tourID, userID int64, price float64) (models.Booking, error)
	listFn     func(ctx context.Context, q query.Query) ([]models.Booking, error)
	getFn      func(ctx context.Context, id int64) (models.Booking, error)
	createFn   func(ctx context.Context, in models.BookingInput) (models.Booking, error)
	updateFn   func(ctx context.Context, id int64, in models.BookingInput) (models.Booking, error)
	deleteFn   func(ctx context.Context, id int64) error
}

func (f *fakeBookingService) CreateCheckoutIntent(ctx context.Context, tourID int64, user models.User) (models.CheckoutSession, error) {
	return f.checkoutFn(ctx, tourID, user)
}

func (f *fakeBookingService) RecordBooking(ctx context.Context, tourID, userID int64, price float64) (models.Booking, error) {
	return f.recordFn(ctx, tourID, userID, price)
}

func (f *fakeBookingService) List(ctx context.Context, q query.Query) ([]models.Booking, error) {
	return f.listFn(ctx, q)
}

func (f *fakeBookingService) Get(ctx context.Context, id int64) (models.Booking, error) {
	return f.getFn(ctx, id)
}

func (f *fakeBookingService) Create(ctx context.Context, in models.BookingInput) (models.Booking, error) {
	return f.createFn(ctx, in)
}

func (f *fakeBookingService) Update(ctx context.Context, id int64, in models.BookingInput) (models.Booking, error) {
	return f.updateFn(ctx, id, in)
}

func (f *fakeBookingService) Delete(ctx context.Context, id int64) error {
	return f.deleteFn(ctx, id)
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

var (
	regularUser = models.User{ID: 7, Name: "Laura Wilson", Email: "laura@example.com", Role: models.RoleUser}
	adminUser   = models.User{ID: 1, Name: "Jonas", Email: "admin@natours.io", Role: models.RoleAdmin}
)

func testApp() config.App {
	return config.App{Env: config.EnvDevelopment, CookieDuration: time.Hour}
}

// newTestHandler builds a Handler over svcs with a token service that
// accepts "good-token" for user.
func newTestHandler(svcs *service.Services, user models.User) *Handler {
	if svcs == nil {
		svcs = &service.Services{}
	}
	if svcs.TokenService == nil {
		svcs.TokenService = &fakeTokenService{user: user}
	}
	return NewHandler(svcs, testApp(), config.Server{MaxBodyBytes: 10 << 10}, logger.Nop())
}

// serve runs req through the full router. A non-empty token is sent as a
// bearer token.
func serve(t *testing.T, h *Handler, method, target, body, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return serveRequest(h, req)
}

// newCookieRequest builds a request carrying token in the session cookie.
func newCookieRequest(method, target, token string) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	req.AddCookie(&http.Cookie{Name: jwtCookieName, Value: token})
	return req
}

func serveRequest(h *Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.Init().ServeHTTP(rec, req)
	return rec
}

// injectNopLogger puts a nop logger into the request context.
func injectNopLogger(r *http.Request) *http.Request {
	nop := logger.Nop()
	return r.WithContext(nop.Logger.WithContext(r.Context()))
}

type testEnvelope struct {
	Status  string          `json:"status"`
	Results *int            `json:"results"`
	Token   string          `json:"token"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
	Session json.RawMessage `json:"session"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) testEnvelope {
	t.Helper()
	var env testEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), "body: %s", rec.Body.String())
	return env
}
