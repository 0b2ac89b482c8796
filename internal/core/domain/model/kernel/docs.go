// Package kernel provides the shared value objects of the orders dashboard.
//
// The package includes:
//   - OrderID: the human-readable "ORD-0007" order identifier
//   - Address: a free-form shipping address
//
// Both are immutable values. OrderID keeps the numeric part recoverable so new
// orders can be numbered after the highest existing one.
package kernel
