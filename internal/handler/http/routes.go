package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(h.withTraceID)
	router.Use(middleware.Recoverer)
	router.Use(h.withLogging)
	router.Use(withGZip)
	router.Use(h.withBodyLimit)

	router.NotFound(h.routeNotFound)
	router.MethodNotAllowed(h.routeNotFound)

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/version", h.getServerVersion)
		r.Route("/tours", h.tourRoutes)
		r.Route("/users", h.userRoutes)
		r.Route("/reviews", h.reviewRoutes)
		r.Route("/bookings", h.bookingRoutes)
	})

	// page data
	router.With(h.recordCheckout, h.isLoggedIn).Get("/", h.overviewPage)
	router.With(h.isLoggedIn).Get("/tour/{slug}", h.tourPage)
	router.With(h.isLoggedIn).Get("/login", h.loginPage)
	router.With(h.protect).Get("/me", h.accountPage)
	router.With(h.protect).Get("/my-tours", h.myToursPage)

	return router
}

func (h *Handler) tourRoutes(r chi.Router) {
	r.Get("/", h.getTours)
	r.Get("/top-5-cheap", aliasTopTours(h.getTours))
	r.Get("/tour-stats", h.getTourStats)
	r.Get("/tours-within/{distance}/center/{latlng}/unit/{unit}", h.getToursWithin)
	r.Get("/distances/{latlng}/unit/{unit}", h.getDistances)
	r.Get("/{id}", h.getTour)

	r.With(h.protect, h.require(staffAndGuides)).Get("/monthly-plan/{year}", h.getMonthlyPlan)

	r.Group(func(r chi.Router) {
		r.Use(h.protect, h.require(staffOnly))
		r.Post("/", h.createTour)
		r.Patch("/{id}", h.updateTour)
		r.Delete("/{id}", h.deleteTour)
	})

	r.Route("/{tourId}/reviews", h.reviewRoutes)
}

func (h *Handler) userRoutes(r chi.Router) {
	r.Post("/signup", h.signup)
	r.Post("/login", h.login)
	r.Get("/logout", h.logout)
	r.Post("/forgotPassword", h.forgotPassword)
	r.Patch("/resetPassword/{token}", h.resetPassword)

	r.Group(func(r chi.Router) {
		r.Use(h.protect)
		r.Patch("/updateMyPassword", h.updateMyPassword)
		r.Get("/me", h.getMe)
		r.Patch("/updateMe", h.updateMe)
		r.Delete("/deleteMe", h.deleteMe)

		r.Group(func(r chi.Router) {
			r.Use(h.require(adminOnly))
			r.Get("/", h.getUsers)
			r.Post("/", h.createUser)
			r.Get("/{id}", h.getUser)
			r.Patch("/{id}", h.updateUser)
			r.Delete("/{id}", h.deleteUser)
		})
	})
}

// reviewRoutes serves both /reviews and /tours/{tourId}/reviews.
func (h *Handler) reviewRoutes(r chi.Router) {
	r.Use(h.protect)
	r.Get("/", h.getReviews)
	r.With(h.require(usersOnly)).Post("/", h.createReview)
	r.Get("/{id}", h.getReview)

	r.Group(func(r chi.Router) {
		r.Use(h.require(usersAndAdmins))
		r.Patch("/{id}", h.updateReview)
		r.Delete("/{id}", h.deleteReview)
	})
}

func (h *Handler) bookingRoutes(r chi.Router) {
	r.Use(h.protect)
	r.Get("/checkout-session/{tourId}", h.getCheckoutSession)

	r.Group(func(r chi.Router) {
		r.Use(h.require(staffOnly))
		r.Get("/", h.getBookings)
		r.Post("/", h.createBooking)
		r.Get("/{id}", h.getBooking)
		r.Patch("/{id}", h.updateBooking)
		r.Delete("/{id}", h.deleteBooking)
	})
}
