// Package models defines the core domain models for CareShare.
//
// # Models
//
//   - Family: a family unit sharing care costs, with a monthly budget ceiling
//   - Member: a person in a family who can receive a share of a bill
//   - Bill: a single expense, either paid from the care recipient's estate or split across members
//   - Allocation: one member's share of a family-split bill
//   - User: a registered account; members may be linked to a user
//
// Monetary values are decimal.Decimal with two decimal places. Summaries
// (contributions, budget snapshots) are derived on demand and live in the
// calculator package, not here.
//
// # Design Principles
//
//  1. Avoid circular references: relationships are ID strings, not pointers
//  2. A bill exclusively owns its allocations; they are never stored on their own
//  3. Enumerations are typed strings matching their persisted and wire values
package models
