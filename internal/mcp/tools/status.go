package tools

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// EffectiveStatusInput defines the input for the effective_status tool.
type EffectiveStatusInput struct {
	ID string `json:"id" jsonschema:"The element ID"`
}

// EffectiveStatusOutput defines the output for the effective_status tool.
type EffectiveStatusOutput struct {
	ID        string `json:"id"`
	OwnStatus string `json:"own_status"`
	Status    string `json:"status"`
	Color     string `json:"color"`
}

// EffectiveStatusTool returns the tool definition for effective_status.
func EffectiveStatusTool() *mcp.Tool {
	return &mcp.Tool{
		Name: "effective_status",
		Description: "Return the status an element displays. An explicit status is returned as is; herite resolves to the most severe status " +
			"among the sub-elements of the element and all its linked peers, or ok when there are none.",
	}
}

// HandleEffectiveStatus handles the effective_status tool call.
func (h *Handler) HandleEffectiveStatus(ctx context.Context, req *mcp.CallToolRequest, input EffectiveStatusInput) (*mcp.CallToolResult, EffectiveStatusOutput, error) {
	h.Logger.Info("effective_status", "id", input.ID)

	var out EffectiveStatusOutput
	err := h.read("effective_status", func() error {
		el, err := h.Store.Element(input.ID)
		if err != nil {
			return err
		}
		out = EffectiveStatusOutput{
			ID:        el.ID,
			OwnStatus: el.Status.String(),
			Status:    string(h.Store.EffectiveStatus(el.ID)),
			Color:     h.Store.EffectiveColor(el.ID),
		}
		return nil
	})
	if err != nil {
		return nil, EffectiveStatusOutput{}, fmt.Errorf("failed to get effective status: %w", err)
	}

	h.Logger.Info("effective_status complete", "id", input.ID, "status", out.Status)
	return nil, out, nil
}
