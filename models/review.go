// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Review is a user's rating of a tour. A user may review a tour only once.
type Review struct {
	ID        int64        `json:"id"`
	Review    string       `json:"review"`
	Rating    int          `json:"rating"`
	TourID    int64        `json:"tour"`
	UserID    int64        `json:"-"`
	User      *UserSummary `json:"user,omitempty"`
	CreatedAt time.Time    `json:"createdAt"`
}

// TableName returns the name of the database table
// associated with the Review model.
func (r Review) TableName() string {
	return "reviews"
}

// ReviewInput is the client-settable part of a review.
type ReviewInput struct {
	Review *string `json:"review,omitempty"`
	Rating *int    `json:"rating,omitempty"`
	TourID *int64  `json:"tour,omitempty"`
	UserID *int64  `json:"user,omitempty"`
}

// RatingStats is the aggregate of all reviews of one tour.
type RatingStats struct {
	TourID   int64
	Quantity int
	Average  float64
}
