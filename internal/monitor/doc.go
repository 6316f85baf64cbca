// Package monitor runs the fetch-extract-compare-notify-persist cycle and
// the continuous polling loop around it.
//
// One cycle is fully sequential: fetch the housing page, extract the Stand
// date, compare against the persisted state, send a notification on change,
// persist the new state. The loop runs a cycle immediately at startup, then
// sleeps the configured interval between cycles; an unexpected in-cycle
// failure waits a fixed 60 second cooldown instead. Only context
// cancellation (operator interrupt) stops the loop.
package monitor
