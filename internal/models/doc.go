// Package models defines the core domain models for Settleup.
//
// # Models
//
//   - Group: A named set of members who share expenses
//   - Member: A participant identity within a group (opaque ID + display name)
//   - Expense: A shared cost fronted by one member and split among a participant set
//   - Settlement: A recorded payment between two members that reduces outstanding debt
//
// The debt computation itself lives in internal/calculator and works on
// plain snapshots of these models; nothing here carries behavior.
//
// # Design Principles
//
// 1. **Snapshot inputs**: the calculator treats members and expenses as a
// fixed snapshot for one computation; models never reference each other by
// pointer, only by ID string.
// 2. **Avoid circular references**: relationships are ID strings, not pointers.
// 3. **Amounts are float64**: sub-cent drift is expected; the calculator
// absorbs it with an epsilon and explicit rounding.
package models
