// Package database handles database connections and schema introspection.
//
// It wraps GORM to open the three stores the service works with:
//   - the upstream card snapshot, a SQLite file opened read-only,
//   - the search index store, a SQLite file in WAL mode owned by the index builder,
//   - the application database (collection ledger and rebuild status), which may be
//     SQLite, MySQL or Postgres depending on configuration.
//
// # Connect
//
// Connect selects the GORM dialector from Config.Driver. OpenSQLite is used directly
// for the snapshot and index files.
//
// # Schema Introspection
//
// The upstream snapshot changes shape between releases. GetTableColumns lists the columns
// of a table (PRAGMA table_info on SQLite, SHOW COLUMNS on MySQL), and Introspector memoizes
// those answers and resolves ordered candidate lists to a physical Column:
//
//	intro := database.NewIntrospector(db, logger)
//	text := intro.Pick(ctx, "cards", "text", "originalText")
//	sql := "SELECT " + text.Expr("c") + " AS oracle_text FROM cards c"
//
// A missing table or column is not an error; Column.Expr renders NULL instead.
package database
