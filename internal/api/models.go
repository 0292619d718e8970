package api

import "github.com/phrazzld/slack-taskbot/internal/command"

// CommandRequest is the slash command payload as delivered by the chat
// platform, either form encoded or as JSON.
type CommandRequest struct {
	Command     string `json:"command" validate:"required,startswith=/"`
	Text        string `json:"text"`
	UserID      string `json:"user_id" validate:"required"`
	ChannelID   string `json:"channel_id" validate:"required"`
	ResponseURL string `json:"response_url"`
}

// ToCommand converts the request to the interpreter's input.
func (r CommandRequest) ToCommand() command.Command {
	return command.Command{
		Command:     r.Command,
		Text:        r.Text,
		UserID:      r.UserID,
		ChannelID:   r.ChannelID,
		ResponseURL: r.ResponseURL,
	}
}

// CommandResponse is the synchronous reply body.
type CommandResponse struct {
	ResponseType string `json:"response_type"`
	Text         string `json:"text"`
}

func newCommandResponse(reply command.Reply) CommandResponse {
	return CommandResponse{ResponseType: reply.ResponseType, Text: reply.Text}
}
