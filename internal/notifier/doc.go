// Package notifier provides the notification backends for the housing
// monitor.
//
// Exactly one backend is active per process, chosen by the tagged Method in
// the configuration: Telegram (bot API sendMessage), Discord (webhook embed),
// or ntfy (plain POST with Title/Priority/Tags headers). A dry-run notifier
// prints messages instead of sending them. Constructors validate their
// credentials so a backend can never be half-configured.
package notifier
