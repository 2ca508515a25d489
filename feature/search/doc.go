// Package search answers card queries from the index store.
//
// Requests arrive either as a compact query string (see Parse) or as structured
// parameters (see FromParams). Both produce Filters, which Compile turns into one
// SELECT over card_search joined to the FTS table and, for set filters, to the
// latest matching printing. The Engine runs that query and reports a missing
// index as ErrIndexUnavailable rather than an empty result.
package search
