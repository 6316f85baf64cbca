// Package cli implements the command-line interface for housing-monitor.
//
// The cli package provides the Cobra-based CLI, selects between container
// mode (configuration from environment variables) and interactive mode
// (backend setup prompted on stdin), and wires the scraper, storage, and
// notifier packages into the monitoring loop.
package cli
