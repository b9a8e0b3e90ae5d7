package store

import "github.com/nitesh01487/natours/internal/query"

var newestFirst = []query.Sort{{Column: "created_at", Desc: true}}

// TourSchema is the list-query allow-list of the tours endpoint.
var TourSchema = query.Schema{
	Fields: map[string]query.Field{
		"id":              {Column: "id", Kind: query.KindInt},
		"name":            {Column: "name"},
		"slug":            {Column: "slug"},
		"duration":        {Column: "duration", Kind: query.KindInt},
		"maxGroupSize":    {Column: "max_group_size", Kind: query.KindInt},
		"difficulty":      {Column: "difficulty"},
		"ratingsAverage":  {Column: "ratings_average", Kind: query.KindNumber},
		"ratingsQuantity": {Column: "ratings_quantity", Kind: query.KindInt},
		"price":           {Column: "price", Kind: query.KindNumber},
		"priceDiscount":   {Column: "price_discount", Kind: query.KindNumber},
		"summary":         {Column: "summary"},
		"description":     {Column: "description"},
		"imageCover":      {Column: "image_cover"},
		"createdAt":       {Column: "created_at", Kind: query.KindTime},
		"images":          {},
		"startDates":      {},
		"startLocation":   {},
		"locations":       {},
		"guides":          {},
		"durationWeeks":   {},
	},
	DefaultSort: newestFirst,
	TieBreaker:  "id",
}

// UserSchema is the list-query allow-list of the admin users endpoint.
var UserSchema = query.Schema{
	Fields: map[string]query.Field{
		"id":        {Column: "id", Kind: query.KindInt},
		"name":      {Column: "name"},
		"email":     {Column: "email"},
		"photo":     {Column: "photo"},
		"role":      {Column: "role"},
		"createdAt": {Column: "created_at", Kind: query.KindTime},
	},
	DefaultSort: newestFirst,
	TieBreaker:  "id",
}

// ReviewSchema is the list-query allow-list of the reviews endpoints.
// Columns are qualified because reviews are read joined with users.
var ReviewSchema = query.Schema{
	Fields: map[string]query.Field{
		"id":        {Column: "r.id", Kind: query.KindInt},
		"review":    {Column: "r.review"},
		"rating":    {Column: "r.rating", Kind: query.KindInt},
		"tour":      {Column: "r.tour_id", Kind: query.KindInt},
		"user":      {Column: "r.user_id", Kind: query.KindInt},
		"createdAt": {Column: "r.created_at", Kind: query.KindTime},
	},
	DefaultSort: []query.Sort{{Column: "r.created_at", Desc: true}},
	TieBreaker:  "r.id",
}

// BookingSchema is the list-query allow-list of the bookings endpoint.
var BookingSchema = query.Schema{
	Fields: map[string]query.Field{
		"id":        {Column: "id", Kind: query.KindInt},
		"tour":      {Column: "tour_id", Kind: query.KindInt},
		"user":      {Column: "user_id", Kind: query.KindInt},
		"price":     {Column: "price", Kind: query.KindNumber},
		"paid":      {Column: "paid", Kind: query.KindBool},
		"createdAt": {Column: "created_at", Kind: query.KindTime},
	},
	DefaultSort: newestFirst,
	TieBreaker:  "id",
}
