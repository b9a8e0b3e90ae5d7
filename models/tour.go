// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"math"
	"time"
)

// Difficulty is the tour difficulty level.
type Difficulty string

const (
	DifficultyEasy      Difficulty = "easy"
	DifficultyMedium    Difficulty = "medium"
	DifficultyDifficult Difficulty = "difficult"
)

// Valid reports whether d is one of the known difficulty levels.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyDifficult:
		return true
	}
	return false
}

const (
	// DefaultRatingsAverage is the average shown for tours without reviews.
	DefaultRatingsAverage = 4.5
	// DefaultRatingsQuantity is the review count of tours without reviews.
	DefaultRatingsQuantity = 0
)

// Location is a GeoJSON point with a human-readable description.
// Coordinates are stored as [lng, lat].
type Location struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
	Address     string    `json:"address,omitempty"`
	Description string    `json:"description,omitempty"`
	Day         int       `json:"day,omitempty"`
}

// Lng returns the longitude of the point or 0 when coordinates are missing.
func (l Location) Lng() float64 {
	if len(l.Coordinates) < 2 {
		return 0
	}
	return l.Coordinates[0]
}

// Lat returns the latitude of the point or 0 when coordinates are missing.
func (l Location) Lat() float64 {
	if len(l.Coordinates) < 2 {
		return 0
	}
	return l.Coordinates[1]
}

// Tour is a bookable catalog entry.
type Tour struct {
	ID              int64       `json:"id"`
	Name            string      `json:"name"`
	Slug            string      `json:"slug"`
	Duration        int         `json:"duration"`
	MaxGroupSize    int         `json:"maxGroupSize"`
	Difficulty      Difficulty  `json:"difficulty"`
	RatingsAverage  float64     `json:"ratingsAverage"`
	RatingsQuantity int         `json:"ratingsQuantity"`
	Price           float64     `json:"price"`
	PriceDiscount   *float64    `json:"priceDiscount,omitempty"`
	Summary         string      `json:"summary"`
	Description     string      `json:"description,omitempty"`
	ImageCover      string      `json:"imageCover"`
	Images          []string    `json:"images"`
	StartDates      []time.Time `json:"startDates"`
	StartLocation   *Location   `json:"startLocation,omitempty"`
	Locations       []Location  `json:"locations"`
	CreatedAt       time.Time   `json:"createdAt"`

	// SecretTour hides the tour from every public listing.
	SecretTour bool `json:"-"`

	// GuideIDs references the users guiding the tour.
	GuideIDs []int64 `json:"-"`

	// Guides is populated from GuideIDs on read.
	Guides []User `json:"guides"`

	// Reviews is populated only when a single tour is requested.
	Reviews []Review `json:"reviews,omitempty"`
}

// TableName returns the name of the database table
// associated with the Tour model.
func (t Tour) TableName() string {
	return "tours"
}

// DurationWeeks is the tour duration expressed in weeks.
func (t Tour) DurationWeeks() float64 {
	return float64(t.Duration) / 7
}

// MarshalJSON adds the virtual durationWeeks field.
func (t Tour) MarshalJSON() ([]byte, error) {
	type tour Tour
	return json.Marshal(struct {
		tour
		DurationWeeks float64 `json:"durationWeeks"`
	}{tour(t), t.DurationWeeks()})
}

// RoundRating rounds a rating mean to one decimal place.
func RoundRating(v float64) float64 {
	return math.Round(v*10) / 10
}

// TourInput is the client-settable part of a tour, used for create and
// partial update. Rating fields are deliberately absent.
type TourInput struct {
	Name          *string      `json:"name,omitempty"`
	Duration      *int         `json:"duration,omitempty"`
	MaxGroupSize  *int         `json:"maxGroupSize,omitempty"`
	Difficulty    *Difficulty  `json:"difficulty,omitempty"`
	Price         *float64     `json:"price,omitempty"`
	PriceDiscount *float64     `json:"priceDiscount,omitempty"`
	Summary       *string      `json:"summary,omitempty"`
	Description   *string      `json:"description,omitempty"`
	ImageCover    *string      `json:"imageCover,omitempty"`
	Images        *[]string    `json:"images,omitempty"`
	StartDates    *[]time.Time `json:"startDates,omitempty"`
	SecretTour    *bool        `json:"secretTour,omitempty"`
	StartLocation *Location    `json:"startLocation,omitempty"`
	Locations     *[]Location  `json:"locations,omitempty"`
	Guides        *[]int64     `json:"guides,omitempty"`
}

// Apply copies every non-nil field of in onto t.
func (in TourInput) Apply(t *Tour) {
	if in.Name != nil {
		t.Name = *in.Name
	}
	if in.Duration != nil {
		t.Duration = *in.Duration
	}
	if in.MaxGroupSize != nil {
		t.MaxGroupSize = *in.MaxGroupSize
	}
	if in.Difficulty != nil {
		t.Difficulty = *in.Difficulty
	}
	if in.Price != nil {
		t.Price = *in.Price
	}
	if in.PriceDiscount != nil {
		v := *in.PriceDiscount
		t.PriceDiscount = &v
	}
	if in.Summary != nil {
		t.Summary = *in.Summary
	}
	if in.Description != nil {
		t.Description = *in.Description
	}
	if in.ImageCover != nil {
		t.ImageCover = *in.ImageCover
	}
	if in.Images != nil {
		t.Images = *in.Images
	}
	if in.StartDates != nil {
		t.StartDates = *in.StartDates
	}
	if in.SecretTour != nil {
		t.SecretTour = *in.SecretTour
	}
	if in.StartLocation != nil {
		loc := *in.StartLocation
		t.StartLocation = &loc
	}
	if in.Locations != nil {
		t.Locations = *in.Locations
	}
	if in.Guides != nil {
		t.GuideIDs = *in.Guides
	}
}

// TourStats is one difficulty bucket of the tour statistics report.
type TourStats struct {
	Difficulty string  `json:"difficulty"`
	NumTours   int     `json:"numTours"`
	NumRatings int     `json:"numRatings"`
	AvgRating  float64 `json:"avgRating"`
	AvgPrice   float64 `json:"avgPrice"`
	MinPrice   float64 `json:"minPrice"`
	MaxPrice   float64 `json:"maxPrice"`
}

// MonthlyPlan lists the tours starting in a given month.
type MonthlyPlan struct {
	Month         int      `json:"month"`
	NumTourStarts int      `json:"numTourStarts"`
	Tours         []string `json:"tours"`
}

// TourDistance is the distance from a point to a tour's start location.
type TourDistance struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Distance float64 `json:"distance"`
}

// DistanceUnit is the unit of geo queries.
type DistanceUnit string

const (
	UnitMiles      DistanceUnit = "mi"
	UnitKilometers DistanceUnit = "km"
)

// EarthRadius returns the radius of the earth in u.
func (u DistanceUnit) EarthRadius() float64 {
	if u == UnitMiles {
		return 3963.2
	}
	return 6378.1
}

// FromMeters returns the factor converting metres to u.
func (u DistanceUnit) FromMeters() float64 {
	if u == UnitMiles {
		return 0.000621371
	}
	return 0.001
}
