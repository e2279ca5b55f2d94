package plugin

import (
	"context"
	"encoding/json"

	"onsightnow/internal/onsight/models"
	dErrors "onsightnow/pkg/domain-errors"
)

// Parameter names of the chat action.
const (
	InputChatInput   = "ChatInput"
	OutputChatOutput = "ChatOutput"
)

// ChatPlugin forwards the JSON conversation in ChatInput to Ida and writes the
// JSON reply to ChatOutput.
type ChatPlugin struct {
	base
}

// NewChatPlugin creates the chat plugin.
func NewChatPlugin(opts ...Option) *ChatPlugin {
	return &ChatPlugin{base: newBase(opts)}
}

func (p *ChatPlugin) Name() string { return "IdaChat" }

func (p *ChatPlugin) Execute(ctx context.Context, host Host) error {
	return p.run(ctx, p.Name(), host, func(ctx context.Context) error {
		return p.execute(ctx, host)
	})
}

func (p *ChatPlugin) execute(ctx context.Context, host Host) error {
	cfg, err := LoadConfig(host.Environment())
	if err != nil {
		return err
	}

	raw, _ := host.Input(InputChatInput)
	input, _ := raw.(string)
	host.Trace("Chat input: %s", input)
	if input == "" {
		return dErrors.New(dErrors.CodeValidation, "ChatInput is required")
	}
	req, err := models.ParseChatRequest([]byte(input))
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeValidation, "ChatInput is not a valid chat request")
	}

	resp, err := p.client(cfg).ChatWithAssistant(ctx, req)
	if err != nil {
		return err
	}
	out, err := json.Marshal(resp)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to encode chat output")
	}
	host.SetOutput(OutputChatOutput, string(out))
	return nil
}
