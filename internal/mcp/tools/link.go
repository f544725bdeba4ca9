package tools

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// LinkElementsInput defines the input for the link_elements tool.
type LinkElementsInput struct {
	ID     string `json:"id" jsonschema:"The element joining the group"`
	PeerID string `json:"peer_id" jsonschema:"Any member of the group to join, or an unlinked element"`
	Merge  bool   `json:"merge,omitempty" jsonschema:"Union sub-categories and sub-elements by name in both directions"`
}

// LinkOutput defines the output for the link tools.
type LinkOutput struct {
	ID      string   `json:"id"`
	GroupID string   `json:"group_id"`
	Peers   []string `json:"peers"`
}

// LinkElementsTool returns the tool definition for link_elements.
func LinkElementsTool() *mcp.Tool {
	return &mcp.Tool{
		Name: "link_elements",
		Description: "Link an element with a peer. The element adopts the peer's status, icons, value and unit; " +
			"if it was already linked elsewhere its whole group moves over.",
	}
}

// HandleLinkElements handles the link_elements tool call.
func (h *Handler) HandleLinkElements(ctx context.Context, req *mcp.CallToolRequest, input LinkElementsInput) (*mcp.CallToolResult, LinkOutput, error) {
	h.Logger.Info("link_elements", "id", input.ID, "peer_id", input.PeerID, "merge", input.Merge)

	var out LinkOutput
	err := h.mutate(ctx, "link_elements", func() error {
		if err := h.Store.LinkElements(input.ID, input.PeerID, input.Merge); err != nil {
			return err
		}
		el, err := h.Store.Element(input.ID)
		if err != nil {
			return err
		}
		peers, err := h.Store.ElementGroup(input.ID)
		if err != nil {
			return err
		}
		out = LinkOutput{ID: input.ID, GroupID: el.LinkedGroupID, Peers: peers}
		return nil
	})
	if err != nil {
		return nil, LinkOutput{}, fmt.Errorf("failed to link elements: %w", err)
	}

	h.Logger.Info("link_elements complete", "id", input.ID, "group", out.GroupID, "peers", len(out.Peers))
	return nil, out, nil
}

// UnlinkInput defines the input for the unlink tools.
type UnlinkInput struct {
	ID string `json:"id" jsonschema:"The ID of the entity leaving its group"`
}

// UnlinkElementTool returns the tool definition for unlink_element.
func UnlinkElementTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "unlink_element",
		Description: "Take an element out of its linked group. Its values stay as they are; the remaining members stay linked.",
	}
}

// HandleUnlinkElement handles the unlink_element tool call.
func (h *Handler) HandleUnlinkElement(ctx context.Context, req *mcp.CallToolRequest, input UnlinkInput) (*mcp.CallToolResult, ChangeOutput, error) {
	h.Logger.Info("unlink_element", "id", input.ID)

	err := h.mutate(ctx, "unlink_element", func() error {
		return h.Store.UnlinkElement(input.ID)
	})
	if err != nil {
		return nil, ChangeOutput{}, fmt.Errorf("failed to unlink element: %w", err)
	}

	h.Logger.Info("unlink_element complete", "id", input.ID)
	return nil, ChangeOutput{ID: input.ID, Changed: true}, nil
}

// LinkSubElementsInput defines the input for the link_subelements tool.
type LinkSubElementsInput struct {
	ID     string `json:"id" jsonschema:"The sub-element joining the group"`
	PeerID string `json:"peer_id" jsonschema:"Any member of the group to join, or an unlinked sub-element"`
}

// LinkSubElementsTool returns the tool definition for link_subelements.
func LinkSubElementsTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "link_subelements",
		Description: "Link a sub-element with a peer. The sub-element adopts the peer's status, icon, value and unit.",
	}
}

// HandleLinkSubElements handles the link_subelements tool call.
func (h *Handler) HandleLinkSubElements(ctx context.Context, req *mcp.CallToolRequest, input LinkSubElementsInput) (*mcp.CallToolResult, LinkOutput, error) {
	h.Logger.Info("link_subelements", "id", input.ID, "peer_id", input.PeerID)

	var out LinkOutput
	err := h.mutate(ctx, "link_subelements", func() error {
		if err := h.Store.LinkSubElements(input.ID, input.PeerID); err != nil {
			return err
		}
		se, err := h.Store.SubElement(input.ID)
		if err != nil {
			return err
		}
		peers, err := h.Store.SubElementGroup(input.ID)
		if err != nil {
			return err
		}
		out = LinkOutput{ID: input.ID, GroupID: se.LinkedGroupID, Peers: peers}
		return nil
	})
	if err != nil {
		return nil, LinkOutput{}, fmt.Errorf("failed to link sub-elements: %w", err)
	}

	h.Logger.Info("link_subelements complete", "id", input.ID, "group", out.GroupID)
	return nil, out, nil
}

// UnlinkSubElementTool returns the tool definition for unlink_subelement.
func UnlinkSubElementTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "unlink_subelement",
		Description: "Take a sub-element out of its linked group.",
	}
}

// HandleUnlinkSubElement handles the unlink_subelement tool call.
func (h *Handler) HandleUnlinkSubElement(ctx context.Context, req *mcp.CallToolRequest, input UnlinkInput) (*mcp.CallToolResult, ChangeOutput, error) {
	h.Logger.Info("unlink_subelement", "id", input.ID)

	err := h.mutate(ctx, "unlink_subelement", func() error {
		return h.Store.UnlinkSubElement(input.ID)
	})
	if err != nil {
		return nil, ChangeOutput{}, fmt.Errorf("failed to unlink sub-element: %w", err)
	}

	h.Logger.Info("unlink_subelement complete", "id", input.ID)
	return nil, ChangeOutput{ID: input.ID, Changed: true}, nil
}
