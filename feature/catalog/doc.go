// Package catalog reads the upstream card snapshot.
//
// The snapshot is an MTGJSON-style SQLite export whose columns differ between releases.
// Every logical field of a printing is declared once in PrintingFields together with the
// physical columns it may come from. The reader resolves that list through the schema
// introspector and compiles a single SELECT; absent columns become NULL and read as empty
// values. Sets and identifiers are joined only when both join columns exist.
//
// Reader.Stream feeds the index builder one row at a time in upstream row order. Printing,
// Identity, Sets, Rulings and Legalities serve point lookups.
package catalog
