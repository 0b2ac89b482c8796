// Package services provides the domain services that synthesize dashboard data.
//
// The package includes:
//   - OrderGenerator: builds the seed collection, single new orders and plausible
//     status transitions from a random source
//   - FeedMessageFactory: picks the next message for the simulated realtime feed
//     by looking at the current order collection
//
// Both services are deterministic for a given random source and clock, which is
// how their tests pin down exact output.
package services
