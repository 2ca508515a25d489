// Package canonical computes the identity that groups printings into one logical card.
//
// A printing is keyed by the first oracle identifier present, in this order:
//  1. scryfallOracleId from the identifiers table
//  2. oracleId from the identifiers table
//  3. oracleId stored on the cards table
//
// When none is present the key falls back to "<normalized name>::<layout>::<side>",
// with layout defaulting to "unknown" and side to "front". Two unrelated cards with the
// same normalized name, layout and side and no identifier share a key; this is a known
// approximation.
//
// Key is pure. The index builder calls it for every row of a rebuild and Resolver calls
// it for point lookups of printings the index does not know yet.
package canonical
