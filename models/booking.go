// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Booking links a user to a tour they paid for.
type Booking struct {
	ID        int64     `json:"id"`
	TourID    int64     `json:"tour"`
	UserID    int64     `json:"user"`
	Price     float64   `json:"price"`
	Paid      bool      `json:"paid"`
	CreatedAt time.Time `json:"createdAt"`
}

// TableName returns the name of the database table
// associated with the Booking model.
func (b Booking) TableName() string {
	return "bookings"
}

// BookingInput carries a booking create or partial update.
type BookingInput struct {
	TourID *int64   `json:"tour,omitempty"`
	UserID *int64   `json:"user,omitempty"`
	Price  *float64 `json:"price,omitempty"`
	Paid   *bool    `json:"paid,omitempty"`
}

// CheckoutLineItem is the single product sold by a checkout session.
type CheckoutLineItem struct {
	Name        string
	Description string
	Images      []string
	// Amount is expressed in the smallest currency unit.
	Amount   int64
	Currency string
	Quantity int
}

// CheckoutSessionRequest describes a hosted checkout session to open at the
// payment gateway.
type CheckoutSessionRequest struct {
	SuccessURL        string
	CancelURL         string
	CustomerEmail     string
	ClientReferenceID string
	LineItem          CheckoutLineItem
}

// CheckoutSession is the gateway's answer to a checkout session request.
type CheckoutSession struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}
