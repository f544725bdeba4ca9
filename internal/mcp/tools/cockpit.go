package tools

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// GetCockpitInput defines the input for the get_cockpit tool.
type GetCockpitInput struct{}

// GetCockpitOutput defines the output for the get_cockpit tool.
type GetCockpitOutput struct {
	Cockpit CockpitView `json:"cockpit"`
}

// GetCockpitTool returns the tool definition for get_cockpit.
func GetCockpitTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "get_cockpit",
		Description: "Return the whole cockpit tree: domains, categories, elements with their own and effective status, sub-categories, sub-elements and zones.",
	}
}

// HandleGetCockpit handles the get_cockpit tool call.
func (h *Handler) HandleGetCockpit(ctx context.Context, req *mcp.CallToolRequest, input GetCockpitInput) (*mcp.CallToolResult, GetCockpitOutput, error) {
	h.Logger.Info("get_cockpit")

	var out GetCockpitOutput
	_ = h.read("get_cockpit", func() error {
		out.Cockpit = cockpitView(h.Store, h.Store.Cockpit())
		return nil
	})

	h.Logger.Info("get_cockpit complete", "id", out.Cockpit.ID, "domains", len(out.Cockpit.Domains))
	return nil, out, nil
}

// RenameCockpitInput defines the input for the rename_cockpit tool.
type RenameCockpitInput struct {
	Name string `json:"name" jsonschema:"The new cockpit name"`
}

// RenameCockpitTool returns the tool definition for rename_cockpit.
func RenameCockpitTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "rename_cockpit",
		Description: "Rename the cockpit.",
	}
}

// HandleRenameCockpit handles the rename_cockpit tool call.
func (h *Handler) HandleRenameCockpit(ctx context.Context, req *mcp.CallToolRequest, input RenameCockpitInput) (*mcp.CallToolResult, ChangeOutput, error) {
	h.Logger.Info("rename_cockpit", "name", input.Name)

	err := h.mutate(ctx, "rename_cockpit", func() error {
		return h.Store.Rename(input.Name)
	})
	if err != nil {
		return nil, ChangeOutput{}, fmt.Errorf("failed to rename cockpit: %w", err)
	}

	h.Logger.Info("rename_cockpit complete", "id", h.Store.ID())
	return nil, ChangeOutput{ID: h.Store.ID(), Changed: true}, nil
}

// SetSettingInput defines the input for the set_setting tool.
type SetSettingInput struct {
	Key   string `json:"key" jsonschema:"Setting key"`
	Value string `json:"value,omitempty" jsonschema:"Setting value; empty removes the key"`
}

// SetSettingTool returns the tool definition for set_setting.
func SetSettingTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "set_setting",
		Description: "Set or clear a free-form cockpit setting used by renderers.",
	}
}

// HandleSetSetting handles the set_setting tool call.
func (h *Handler) HandleSetSetting(ctx context.Context, req *mcp.CallToolRequest, input SetSettingInput) (*mcp.CallToolResult, ChangeOutput, error) {
	h.Logger.Info("set_setting", "key", input.Key)

	err := h.mutate(ctx, "set_setting", func() error {
		return h.Store.SetSetting(input.Key, input.Value)
	})
	if err != nil {
		return nil, ChangeOutput{}, fmt.Errorf("failed to set setting: %w", err)
	}

	h.Logger.Info("set_setting complete", "key", input.Key)
	return nil, ChangeOutput{ID: input.Key, Changed: true}, nil
}
