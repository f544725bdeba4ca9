package tools

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// CreateZoneInput defines the input for the create_zone tool.
type CreateZoneInput struct {
	Name string `json:"name" jsonschema:"The zone name"`
}

// CreateZoneOutput defines the output for the create_zone tool.
type CreateZoneOutput struct {
	Zone ZoneView `json:"zone"`
}

// CreateZoneTool returns the tool definition for create_zone.
func CreateZoneTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "create_zone",
		Description: "Create a zone tag that elements can be assigned to with update_element. Returns the created zone with its ID.",
	}
}

// HandleCreateZone handles the create_zone tool call.
func (h *Handler) HandleCreateZone(ctx context.Context, req *mcp.CallToolRequest, input CreateZoneInput) (*mcp.CallToolResult, CreateZoneOutput, error) {
	h.Logger.Info("create_zone", "name", input.Name)

	var out CreateZoneOutput
	err := h.mutate(ctx, "create_zone", func() error {
		z, err := h.Store.AddZone(input.Name)
		if err != nil {
			return err
		}
		out.Zone = ZoneView{ID: z.ID, Name: z.Name}
		return nil
	})
	if err != nil {
		return nil, CreateZoneOutput{}, fmt.Errorf("failed to create zone: %w", err)
	}

	h.Logger.Info("create_zone complete", "id", out.Zone.ID, "name", out.Zone.Name)
	return nil, out, nil
}

// DeleteZoneInput defines the input for the delete_zone tool.
type DeleteZoneInput struct {
	ID string `json:"id" jsonschema:"The zone ID"`
}

// DeleteZoneTool returns the tool definition for delete_zone.
func DeleteZoneTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "delete_zone",
		Description: "Delete a zone. Elements tagged with it lose their zone.",
	}
}

// HandleDeleteZone handles the delete_zone tool call.
func (h *Handler) HandleDeleteZone(ctx context.Context, req *mcp.CallToolRequest, input DeleteZoneInput) (*mcp.CallToolResult, DeleteOutput, error) {
	h.Logger.Info("delete_zone", "id", input.ID)

	err := h.mutate(ctx, "delete_zone", func() error {
		return h.Store.DeleteZone(input.ID)
	})
	if err != nil {
		return nil, DeleteOutput{}, fmt.Errorf("failed to delete zone: %w", err)
	}

	h.Logger.Info("delete_zone complete", "id", input.ID)
	return nil, DeleteOutput{ID: input.ID, Deleted: true}, nil
}
