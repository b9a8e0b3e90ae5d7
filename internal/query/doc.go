// Package query translates untrusted list-endpoint parameters into a
// constrained SQL query.
//
// A request such as
//
//	GET /api/v1/tours?price[gte]=100&difficulty=easy&sort=-price&fields=name,price&page=2&limit=5
//
// is parsed against a [Schema] (the allow-list of queryable fields) into an
// immutable [Query] value. Every refinement returns a new value, and the
// store consumes it once through [Query.Apply]. Keys that are not in the
// schema and operators outside {eq, gte, gt, lte, lt} are rejected with a
// validation error, so nothing uninterpreted ever reaches SQL.
package query
