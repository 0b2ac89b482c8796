// Package order provides the order aggregate shown on the dashboard.
//
// The package includes:
//   - Order: an immutable order with its line items, total and timestamps
//   - Item: a single line item
//   - Status: the order status vocabulary and its transition table
//   - StatusUpdate: a status change event for an existing order
//
// Key business rules:
//   - An order has at least one item and a non-blank customer name and currency
//   - The total equals the sum of price*quantity over all items, rounded to 2 places
//   - UpdatedAt is never before CreatedAt
//   - Status changes produce a new Order value; existing values are never mutated
package order
