// Package slack implements outbound chat delivery on top of the
// slack-go Web API client. It satisfies service.Messenger so the reminder
// jobs never depend on the provider directly.
package slack
