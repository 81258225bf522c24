// Package notify publishes change notifications for event records.
//
// When a Redis URL is configured, each create, update, and delete is published
// as a JSON message on a pub/sub channel. Without one, a no-op publisher is
// used. Publishing is best effort: callers log failures and carry on.
package notify
