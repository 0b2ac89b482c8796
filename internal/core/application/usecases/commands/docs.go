// Package commands contains the operations that modify the order collection
// on behalf of a dashboard user. Handlers run on the event loop goroutine.
package commands
