package store

// users
const (
	userColumns = `id, name, email, photo, role, password, password_changed_at, password_reset_token, password_reset_expires, active, created_at`

	createUser = `INSERT INTO users (name, email, photo, role, password, password_changed_at)
VALUES ($1, lower($2), COALESCE(NULLIF($3, ''), 'default.jpg'), $4, $5, $6)
RETURNING ` + userColumns

	findActiveUserByID = `SELECT ` + userColumns + ` FROM users WHERE id = $1 AND active`

	findActiveUserByEmail = `SELECT ` + userColumns + ` FROM users WHERE email = lower($1) AND active`

	updateUserPassword = `UPDATE users
SET password = $2, password_changed_at = $3, password_reset_token = NULL, password_reset_expires = NULL
WHERE id = $1 AND active
RETURNING ` + userColumns

	setUserResetToken = `UPDATE users SET password_reset_token = $2, password_reset_expires = $3 WHERE id = $1`

	// the token is cleared in the same statement that matches it, so a
	// plaintext can be exchanged only once
	consumeUserResetToken = `UPDATE users
SET password_reset_token = NULL, password_reset_expires = NULL
WHERE password_reset_token = $1 AND password_reset_expires > $2 AND active
RETURNING ` + userColumns

	deleteUser = `DELETE FROM users WHERE id = $1`
)

// tours
const (
	tourColumns = `id, name, slug, duration, max_group_size, difficulty, ratings_average, ratings_quantity, price, price_discount, summary, description, image_cover, images, start_dates, start_location, locations, guide_ids, secret_tour, created_at`

	createTour = `INSERT INTO tours (name, slug, duration, max_group_size, difficulty, price, price_discount, summary, description, image_cover, images, start_dates, start_location, start_lat, start_lng, locations, guide_ids, secret_tour)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
RETURNING ` + tourColumns

	findTourByID = `SELECT ` + tourColumns + ` FROM tours WHERE id = $1`

	findTourBySlug = `SELECT ` + tourColumns + ` FROM tours WHERE slug = $1`

	listTourIDs = `SELECT id FROM tours ORDER BY id`

	updateTour = `UPDATE tours
SET name = $2, slug = $3, duration = $4, max_group_size = $5, difficulty = $6, price = $7, price_discount = $8,
    summary = $9, description = $10, image_cover = $11, images = $12, start_dates = $13, start_location = $14,
    start_lat = $15, start_lng = $16, locations = $17, guide_ids = $18, secret_tour = $19
WHERE id = $1
RETURNING ` + tourColumns

	updateTourRatings = `UPDATE tours SET ratings_quantity = $2, ratings_average = $3 WHERE id = $1`

	deleteTour = `DELETE FROM tours WHERE id = $1`

	tourStats = `SELECT upper(difficulty), COUNT(*), COALESCE(SUM(ratings_quantity), 0),
       AVG(ratings_average)::float8, AVG(price)::float8, MIN(price)::float8, MAX(price)::float8
FROM tours
WHERE ratings_average >= $1 AND NOT secret_tour
GROUP BY upper(difficulty)
ORDER BY AVG(price) ASC`

	tourMonthlyPlan = `SELECT EXTRACT(MONTH FROM sd.start_date)::int AS month, COUNT(*) AS num_tour_starts, json_agg(t.name ORDER BY t.name)
FROM tours t
CROSS JOIN LATERAL (SELECT value::timestamptz AS start_date FROM jsonb_array_elements_text(t.start_dates)) sd
WHERE sd.start_date >= $1 AND sd.start_date < $2 AND NOT t.secret_tour
GROUP BY month
ORDER BY num_tour_starts DESC, month ASC
LIMIT 12`

	// angularDistance is the haversine central angle, in radians, between
	// the tour's start point and the point bound to (lat, lat, lng).
	angularDistance = `2 * asin(sqrt(power(sin(radians(start_lat - ?) / 2), 2) + cos(radians(?)) * cos(radians(start_lat)) * power(sin(radians(start_lng - ?) / 2), 2)))`

	// metresPerRadian is the spherical earth radius used for distances.
	metresPerRadian = 6378100.0
)

// reviews
const (
	reviewColumns = `id, review, rating, tour_id, user_id, created_at`

	createReview = `INSERT INTO reviews (review, rating, tour_id, user_id) VALUES ($1, $2, $3, $4) RETURNING ` + reviewColumns

	deleteReview = `DELETE FROM reviews WHERE id = $1`

	reviewRatingStats = `SELECT COUNT(*), COALESCE(AVG(rating), 0)::float8 FROM reviews WHERE tour_id = $1`
)

// bookings
const (
	bookingColumns = `id, tour_id, user_id, price, paid, created_at`

	createBooking = `INSERT INTO bookings (tour_id, user_id, price, paid) VALUES ($1, $2, $3, $4) RETURNING ` + bookingColumns

	findBookingByID = `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	listBookedTourIDs = `SELECT DISTINCT tour_id FROM bookings WHERE user_id = $1 ORDER BY tour_id`

	deleteBooking = `DELETE FROM bookings WHERE id = $1`
)
