// Package tabular provides a mutable in-memory table over a rectangular
// region of cell data.
//
// # Overview
//
// A [Table] reads its backing region once: line 0 becomes the header and
// every following line becomes a [Row]. Each row field carries five
// parallel planes (value, note, background color, font color, formula).
// Queries, mutations, insertions, deletions and sorts all happen in memory;
// nothing reaches the backing store until a commit.
//
// # Committing
//
// [Table.Commit] clears the region recorded at construction (or at the last
// commit), rewrites the header and block-writes every plane for exactly the
// live rows, so a shrink never leaves stale trailing lines behind. Rows can
// also be committed individually, but only while their position is known to
// match the store: sorting and deleting revoke row-level commits until the
// next table commit.
//
// # Queries
//
// [Table.Select] evaluates a two-level conjunctive-normal-form criteria:
// the clause list is a conjunction, [Or] groups are disjunctions of
// [Eq] equalities. Only equality (and date equality by instant) is
// supported.
//
// # Ownership
//
// A table is single-owner: there is no internal locking, and selected rows
// are references into the table's own state.
package tabular
