package command

// Slash command names understood by the interpreter.
const (
	NameTask     = "/task"
	NameReminder = "/reminder"
	NameComplete = "/complete"
	NameList     = "/list"
)

// Reply visibility.
const (
	ResponseInChannel = "in_channel"
	ResponseEphemeral = "ephemeral"
)

// HelpText is returned for any command the interpreter does not know.
const HelpText = "Unknown command. Available commands: /task, /reminder, /complete, /list"

// Command is a decoded slash command invocation.
type Command struct {
	Command     string
	Text        string
	UserID      string
	ChannelID   string
	ResponseURL string
}

// Reply is the synchronous response shown to the invoking user.
type Reply struct {
	ResponseType string `json:"response_type"`
	Text         string `json:"text"`
}

// Emission is an event the caller must hand to the bus.
type Emission struct {
	Topic   string
	Payload any
}

// Result is the outcome of interpreting one command.
type Result struct {
	Reply    Reply
	Emission *Emission
}
