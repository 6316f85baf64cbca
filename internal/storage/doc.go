// Package storage provides JSON persistence for the monitor state file.
//
// The state file holds a single snapshot (last observed update date and check
// timestamp) and is overwritten, never appended, on each update detection.
// A missing file loads as "no prior state known".
package storage
