// Package service contains the event subscribers that carry out the
// application's use cases. Each handler reacts to one or more bus topics and
// orchestrates the task store, the reminder scheduler and the outbound
// messenger.
//
// Handlers receive their dependencies through constructor injection and
// depend only on interfaces (store.TaskStore, Messenger, ReminderScheduler),
// never on concrete infrastructure.
//
// Errors returned from HandleEvent are logged by the bus; none of them are
// visible to the user who issued the command.
package service
