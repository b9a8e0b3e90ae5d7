package http

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nitesh01487/natours/internal/apperr"
	"github.com/nitesh01487/natours/internal/query"
	"github.com/nitesh01487/natours/internal/service"
	"github.com/nitesh01487/natours/models"
)

func TestGetCheckoutSession(t *testing.T) {
	tests := []struct {
		name        string
		checkoutErr error
		wantStatus  int
	}{
		{"session created", nil, http.StatusOK},
		{"payments disabled", apperr.Operational(http.StatusServiceUnavailable, "Payments are currently unavailable", nil), http.StatusServiceUnavailable},
		{"secret tour", apperr.NotFound("tour"), http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bookings := &fakeBookingService{checkoutFn: func(_ context.Context, tourID int64, user models.User) (models.CheckoutSession, error) {
				assert.Equal(t, int64(1), tourID)
				assert.Equal(t, regularUser.Email, user.Email)
				if tt.checkoutErr != nil {
					return models.CheckoutSession{}, tt.checkoutErr
				}
				return models.CheckoutSession{ID: "cs_test_a1", URL: "https://checkout.test/cs_test_a1"}, nil
			}}
			h := newTestHandler(&service.Services{BookingService: bookings}, regularUser)

			rec := serve(t, h, http.MethodGet, "/api/v1/bookings/checkout-session/1", "", "good-token")

			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus != http.StatusOK {
				return
			}
			env := decodeEnvelope(t, rec)
			assert.Equal(t, models.StatusSuccess, env.Status)

			var session models.CheckoutSession
			require.NoError(t, json.Unmarshal(env.Session, &session))
			assert.Equal(t, "cs_test_a1", session.ID)
		})
	}
}

func TestBookingCRUD_RequiresStaff(t *testing.T) {
	bookings := &fakeBookingService{
		listFn: func(_ context.Context, q query.Query) ([]models.Booking, error) {
			return []models.Booking{{ID: 1, TourID: 1, UserID: 7, Price: 497, Paid: true}}, nil
		},
		createFn: func(_ context.Context, in models.BookingInput) (models.Booking, error) {
			require.NotNil(t, in.TourID)
			return models.Booking{ID: 2, TourID: *in.TourID, Paid: true}, nil
		},
	}

	t.Run("user forbidden", func(t *testing.T) {
		h := newTestHandler(&service.Services{BookingService: bookings}, regularUser)
		rec := serve(t, h, http.MethodGet, "/api/v1/bookings", "", "good-token")
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("lead guide lists", func(t *testing.T) {
		lead := models.User{ID: 3, Role: models.RoleLeadGuide}
		h := newTestHandler(&service.Services{BookingService: bookings}, lead)

		rec := serve(t, h, http.MethodGet, "/api/v1/bookings?paid=true", "", "good-token")

		require.Equal(t, http.StatusOK, rec.Code)
		env := decodeEnvelope(t, rec)
		require.NotNil(t, env.Results)
		assert.Equal(t, 1, *env.Results)
	})

	t.Run("admin creates", func(t *testing.T) {
		h := newTestHandler(&service.Services{BookingService: bookings}, adminUser)
		rec := serve(t, h, http.MethodPost, "/api/v1/bookings", `{"tour":1,"user":7,"price":497}`, "good-token")
		assert.Equal(t, http.StatusCreated, rec.Code)
	})
}

func TestRecordCheckout(t *testing.T) {
	t.Run("records and redirects", func(t *testing.T) {
		var got struct {
			tour, user int64
			price      float64
		}
		bookings := &fakeBookingService{recordFn: func(_ context.Context, tourID, userID int64, price float64) (models.Booking, error) {
			got.tour, got.user, got.price = tourID, userID, price
			return models.Booking{ID: 9, TourID: tourID, UserID: userID, Price: price, Paid: true}, nil
		}}
		h := newTestHandler(&service.Services{BookingService: bookings, TourService: &fakeTourService{}}, regularUser)

		rec := serve(t, h, http.MethodGet, "/?tour=1&user=7&price=397.99", "", "")

		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/", rec.Header().Get("Location"))
		assert.Equal(t, int64(1), got.tour)
		assert.Equal(t, int64(7), got.user)
		assert.Equal(t, 397.99, got.price)
	})

	t.Run("partial query falls through to overview", func(t *testing.T) {
		tours := &fakeTourService{listFn: func(context.Context, query.Query) ([]models.Tour, error) {
			return []models.Tour{forestHiker}, nil
		}}
		h := newTestHandler(&service.Services{BookingService: &fakeBookingService{}, TourService: tours}, regularUser)

		rec := serve(t, h, http.MethodGet, "/?tour=1", "", "")

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("malformed price", func(t *testing.T) {
		h := newTestHandler(&service.Services{BookingService: &fakeBookingService{}}, regularUser)

		rec := serve(t, h, http.MethodGet, "/?tour=1&user=7&price=free", "", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
