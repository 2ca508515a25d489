// Package collection keeps the ownership ledger.
//
// Quantities are recorded per printing in the application store, which may be
// SQLite, MySQL or PostgreSQL. Totals for a canonical card are the sum over all
// of its printings and are computed outside the search query, after the page of
// results is known.
package collection
