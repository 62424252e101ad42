// Package vacct provides the accounting engine for a Solana validator
// operated as a sole proprietorship. It turns raw on-chain transfer history
// and recorded business costs into an auditable tax ledger.
//
// The core functionalities include:
//   - Transfer Classification: Sorting every on-chain transfer touching the
//     operational accounts into internal moves, capital seeds, external
//     withdrawals, or audit-only leftovers, based purely on account roles.
//   - Capital Pool: A FIFO pool of seeded capital that splits each external
//     withdrawal into a non-taxable return of capital and taxable revenue.
//   - Cost Accounting: One-off and recurring business costs, on-chain or
//     off-chain, with delegation-program reimbursements scaled by a
//     time-decaying coverage schedule.
//   - Price Resolution: A daily SOL/USD series that values entries at the
//     closest available quote and accounts for every fallback it takes.
//   - Reconciliation: An integer-lamport check of the books against an
//     atomic snapshot of live account balances.
//
// This package serves as the foundational logic for the `vac` command-line
// tool, ensuring that all operations replay deterministically from the same
// recorded history.
package vacct
