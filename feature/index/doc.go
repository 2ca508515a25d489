// Package index builds and maintains the search index store.
//
// The index store is a SQLite file, separate from the upstream snapshot, holding:
//   - card_search: one row per canonical card with the display fields of its
//     representative printing,
//   - card_search_printings: one row per printing with its canonical key,
//   - card_search_fts: an FTS4 table over name, type line and oracle text,
//     keyed by the card_search row id.
//
// # Rebuild
//
// Builder.Rebuild runs Idle → Scanning → Aggregating → Writing → Idle inside one
// transaction on the index store:
//
//  1. drop and recreate the three tables,
//  2. stream every upstream printing, compute its canonical key and insert its
//     printing row in batches, while keeping one representative per key
//     (latest non-null release date, first seen on ties),
//  3. bulk insert the canonical cards in first-seen order and fill the FTS table
//     from them,
//  4. commit.
//
// Any error rolls the transaction back and the previous index stays in place. The store
// runs in WAL mode, so concurrent readers keep the last committed snapshot. A second
// rebuild requested while one runs fails with ErrRebuildInProgress.
//
// # Status and publication
//
// The outcome of every rebuild is persisted by StatusStore in the application database
// (idle, running, complete, failed). Publisher uploads a VACUUM INTO copy of the store to
// object storage, and Scheduler triggers rebuilds from a cron expression.
package index
