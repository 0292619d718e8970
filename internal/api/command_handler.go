package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/slack-taskbot/internal/api/shared"
	"github.com/phrazzld/slack-taskbot/internal/command"
	"github.com/phrazzld/slack-taskbot/internal/events"
)

// Interpreter maps a slash command to a reply and an optional event.
type Interpreter interface {
	Interpret(ctx context.Context, cmd command.Command) (command.Result, error)
}

// CommandHandler serves the slash command webhook.
type CommandHandler struct {
	interpreter Interpreter
	emitter     events.Emitter
	logger      *slog.Logger
}

// NewCommandHandler creates a CommandHandler.
func NewCommandHandler(interpreter Interpreter, emitter events.Emitter, logger *slog.Logger) *CommandHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CommandHandler{
		interpreter: interpreter,
		emitter:     emitter,
		logger:      logger.With(slog.String("component", "command_handler")),
	}
}

// HandleCommand decodes and validates the request, interprets it, hands any
// resulting event to the bus and replies. The reply does not wait for
// subscribers.
func (h *CommandHandler) HandleCommand(w http.ResponseWriter, r *http.Request) {
	var req CommandRequest
	if err := decodeCommandRequest(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	defer func() {
		if rec := recover(); rec != nil {
			err := fmt.Errorf("panic handling %s: %v", req.Command, rec)
			shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, internalErrorMessage(err), err)
		}
	}()

	resp, err := h.process(r.Context(), req)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, internalErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

func (h *CommandHandler) process(ctx context.Context, req CommandRequest) (CommandResponse, error) {
	log := h.logger.With(slog.String("trace_id", shared.GetTraceID(ctx)))

	result, err := h.interpreter.Interpret(ctx, req.ToCommand())
	if err != nil {
		return CommandResponse{}, fmt.Errorf("failed to interpret %s: %w", req.Command, err)
	}

	if em := result.Emission; em != nil {
		event, err := events.NewEvent(em.Topic, em.Payload)
		if err != nil {
			return CommandResponse{}, fmt.Errorf("failed to build %s event: %w", em.Topic, err)
		}
		if err := h.emitter.Emit(ctx, event); err != nil {
			return CommandResponse{}, fmt.Errorf("failed to emit %s event: %w", em.Topic, err)
		}
		log.Debug("event emitted",
			slog.String("topic", event.Topic),
			slog.String("event_id", event.ID.String()))
	}

	log.Info("command handled",
		slog.String("command", req.Command),
		slog.String("user_id", req.UserID),
		slog.String("channel_id", req.ChannelID),
		slog.String("response_type", result.Reply.ResponseType))

	return newCommandResponse(result.Reply), nil
}

// decodeCommandRequest reads a JSON body when the request declares one and
// a URL-encoded form otherwise.
func decodeCommandRequest(r *http.Request, req *CommandRequest) error {
	if shared.IsJSON(r) {
		return shared.DecodeJSON(r, req)
	}

	if err := r.ParseForm(); err != nil {
		return err
	}
	req.Command = r.PostForm.Get("command")
	req.Text = r.PostForm.Get("text")
	req.UserID = r.PostForm.Get("user_id")
	req.ChannelID = r.PostForm.Get("channel_id")
	req.ResponseURL = r.PostForm.Get("response_url")
	return nil
}
