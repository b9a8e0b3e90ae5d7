// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"net/url"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nitesh01487/natours/internal/apperr"
	"github.com/nitesh01487/natours/internal/logger"
	"github.com/nitesh01487/natours/internal/query"
	"github.com/nitesh01487/natours/models"
)

var tourRowColumns = []string{"id", "name", "slug", "duration", "max_group_size", "difficulty", "ratings_average",
	"ratings_quantity", "price", "price_discount", "summary", "description", "image_cover", "images", "start_dates",
	"start_location", "locations", "guide_ids", "secret_tour", "created_at"}

func tourRow(rows *sqlmock.Rows, id int64, name string, price float64) *sqlmock.Rows {
	return rows.AddRow(id, name, "the-forest-hiker", 5, 25, "easy", 4.7, 37, price, nil,
		"Breathtaking hike", "", "tour-1-cover.jpg",
		[]byte(`["tour-1-1.jpg"]`),
		[]byte(`["2021-04-25T09:00:00Z","2021-07-20T09:00:00Z"]`),
		[]byte(`{"type":"Point","coordinates":[-116.214531,51.417611],"address":"Banff"}`),
		[]byte(`[]`),
		[]byte(`[2,3]`),
		false, time.Now())
}

func TestTourRepository_Create(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewTourRepository(db, logger.Nop())

	tour := models.Tour{
		Name:         "The Forest Hiker",
		Slug:         "the-forest-hiker",
		Duration:     5,
		MaxGroupSize: 25,
		Difficulty:   models.DifficultyEasy,
		Price:        397,
		Summary:      "Breathtaking hike",
		ImageCover:   "tour-1-cover.jpg",
		Images:       []string{"tour-1-1.jpg"},
		StartLocation: &models.Location{
			Type:        "Point",
			Coordinates: []float64{-116.214531, 51.417611},
		},
		GuideIDs: []int64{2, 3},
	}

	mock.ExpectQuery("INSERT INTO tours").
		WithArgs("The Forest Hiker", "the-forest-hiker", 5, 25, "easy", 397.0, nil,
			"Breathtaking hike", "", "tour-1-cover.jpg",
			[]byte(`["tour-1-1.jpg"]`), []byte(`[]`),
			[]byte(`{"type":"Point","coordinates":[-116.214531,51.417611]}`), 51.417611, -116.214531,
			[]byte(`[]`), []byte(`[2,3]`), false).
		WillReturnRows(tourRow(sqlmock.NewRows(tourRowColumns), 1, tour.Name, 397))

	created, err := repo.Create(context.Background(), tour)
	require.NoError(t, err)

	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, []string{"tour-1-1.jpg"}, created.Images)
	assert.Len(t, created.StartDates, 2)
	require.NotNil(t, created.StartLocation)
	assert.InDelta(t, 51.417611, created.StartLocation.Lat(), 1e-9)
	assert.Equal(t, []int64{2, 3}, created.GuideIDs)
	assert.Empty(t, created.Locations)
	assert.Nil(t, created.PriceDiscount)
}

func TestTourRepository_FindByID_NotFound(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewTourRepository(db, logger.Nop())

	mock.ExpectQuery(regexp.QuoteMeta("FROM tours WHERE id = $1")).
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows(tourRowColumns))

	_, err := repo.FindByID(context.Background(), 42)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.Equal(t, "No tour found with that ID", apperr.Message(err))
}

func TestTourRepository_List(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewTourRepository(db, logger.Nop())

	q, err := query.Parse(TourSchema, url.Values{"price[gte]": {"100"}, "sort": {"-price"}, "limit": {"5"}})
	require.NoError(t, err)
	q = q.WithFilter(query.Eq("secret_tour", false))

	rows := sqlmock.NewRows(tourRowColumns)
	tourRow(rows, 2, "The Sea Explorer", 497)
	tourRow(rows, 1, "The Forest Hiker", 397)

	mock.ExpectQuery(regexp.QuoteMeta("FROM tours WHERE price >= $1 AND secret_tour = $2 ORDER BY price DESC, id ASC LIMIT 5 OFFSET 0")).
		WithArgs(100.0, false).
		WillReturnRows(rows)

	tours, err := repo.List(context.Background(), q)
	require.NoError(t, err)
	require.Len(t, tours, 2)
	assert.Equal(t, 497.0, tours[0].Price)
	assert.Equal(t, 397.0, tours[1].Price)
}

func TestTourRepository_Update(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewTourRepository(db, logger.Nop())

	tour := models.Tour{ID: 1, Name: "The Forest Hiker", Slug: "the-forest-hiker", Price: 450}

	mock.ExpectQuery("UPDATE tours\\s+SET name = \\$2").
		WithArgs(int64(1), "The Forest Hiker", "the-forest-hiker", 0, 0, "", 450.0, nil, "", "", "",
			[]byte(`[]`), []byte(`[]`), nil, nil, nil, []byte(`[]`), []byte(`[]`), false).
		WillReturnRows(tourRow(sqlmock.NewRows(tourRowColumns), 1, tour.Name, 450))

	updated, err := repo.Update(context.Background(), tour)
	require.NoError(t, err)
	assert.Equal(t, 450.0, updated.Price)
}

func TestTourRepository_UpdateRatings(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewTourRepository(db, logger.Nop())

	mock.ExpectExec(regexp.QuoteMeta(updateTourRatings)).
		WithArgs(int64(1), 3, 4.3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(updateTourRatings)).
		WithArgs(int64(2), 0, 4.5).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.UpdateRatings(context.Background(), models.RatingStats{TourID: 1, Quantity: 3, Average: 4.3}))

	err := repo.UpdateRatings(context.Background(), models.RatingStats{TourID: 2, Quantity: 0, Average: 4.5})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestTourRepository_ListIDs(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewTourRepository(db, logger.Nop())

	mock.ExpectQuery(regexp.QuoteMeta(listTourIDs)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1).AddRow(2).AddRow(5))

	ids, err := repo.ListIDs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 5}, ids)
}

func TestTourRepository_Stats(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewTourRepository(db, logger.Nop())

	rows := sqlmock.NewRows([]string{"difficulty", "count", "sum", "avg_rating", "avg_price", "min_price", "max_price"}).
		AddRow("EASY", 4, 62, 4.7, 1272.0, 397.0, 1997.0).
		AddRow("MEDIUM", 3, 70, 4.8, 1663.7, 497.0, 2997.0)
	mock.ExpectQuery("FROM tours\\s+WHERE ratings_average >= \\$1 AND NOT secret_tour").
		WithArgs(4.5).
		WillReturnRows(rows)

	stats, err := repo.Stats(context.Background(), 4.5)
	require.NoError(t, err)
	require.Len(t, stats, 2)
	assert.Equal(t, models.TourStats{
		Difficulty: "EASY", NumTours: 4, NumRatings: 62, AvgRating: 4.7, AvgPrice: 1272, MinPrice: 397, MaxPrice: 1997,
	}, stats[0])
}

func TestTourRepository_MonthlyPlan(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewTourRepository(db, logger.Nop())

	from := time.Date(2021, time.January, 1, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"month", "num_tour_starts", "tours"}).
		AddRow(7, 3, []byte(`["The Forest Hiker","The Sea Explorer","The Sports Lover"]`)).
		AddRow(2, 1, []byte(`["The Snow Adventurer"]`))
	mock.ExpectQuery("jsonb_array_elements_text").
		WithArgs(from, from.AddDate(1, 0, 0)).
		WillReturnRows(rows)

	plan, err := repo.MonthlyPlan(context.Background(), 2021)
	require.NoError(t, err)
	require.Len(t, plan, 2)
	assert.Equal(t, 7, plan[0].Month)
	assert.Equal(t, 3, plan[0].NumTourStarts)
	assert.Len(t, plan[0].Tours, 3)
	assert.Equal(t, []string{"The Snow Adventurer"}, plan[1].Tours)
}

func TestTourRepository_Within(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewTourRepository(db, logger.Nop())

	lat, lng, radius := 34.111745, -118.113491, 400/models.UnitMiles.EarthRadius()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE NOT secret_tour AND start_lat IS NOT NULL AND 2 * asin(")).
		WithArgs(lat, lat, lng, radius).
		WillReturnRows(tourRow(sqlmock.NewRows(tourRowColumns), 1, "The Forest Hiker", 397))

	tours, err := repo.Within(context.Background(), lat, lng, radius)
	require.NoError(t, err)
	assert.Len(t, tours, 1)
}

func TestTourRepository_Distances(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewTourRepository(db, logger.Nop())

	lat, lng := 34.111745, -118.113491
	multiplier := models.UnitKilometers.FromMeters()

	rows := sqlmock.NewRows([]string{"id", "name", "distance"}).
		AddRow(3, "The Sea Explorer", 40.3).
		AddRow(1, "The Forest Hiker", 1872.9)
	mock.ExpectQuery("^SELECT id, name, \\(2 \\* asin\\(.*\\) AS distance FROM tours WHERE NOT secret_tour AND start_lat IS NOT NULL ORDER BY distance ASC$").
		WithArgs(lat, lat, lng, metresPerRadian*multiplier).
		WillReturnRows(rows)

	distances, err := repo.Distances(context.Background(), lat, lng, multiplier)
	require.NoError(t, err)
	require.Len(t, distances, 2)
	assert.Equal(t, models.TourDistance{ID: 3, Name: "The Sea Explorer", Distance: 40.3}, distances[0])
}
