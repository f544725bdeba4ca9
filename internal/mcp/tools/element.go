package tools

import (
	"context"
	"fmt"

	"github.com/fitz/cockpit/internal/models"
	"github.com/fitz/cockpit/internal/tree"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// CreateElementInput defines the input for the create_element tool.
type CreateElementInput struct {
	CategoryID  string `json:"category_id" jsonschema:"The parent category ID"`
	Name        string `json:"name" jsonschema:"The element name"`
	LinkTo      string `json:"link_to,omitempty" jsonschema:"ID of an existing same-name element to link the new one with"`
	Merge       bool   `json:"merge,omitempty" jsonschema:"With link_to: union sub-categories and sub-elements by name in both directions"`
	Independent bool   `json:"independent,omitempty" jsonschema:"Create an unlinked element even when the name is already used"`
}

// CreateElementOutput defines the output for the create_element tool.
type CreateElementOutput struct {
	Created    bool                   `json:"created"`
	Element    *ElementView           `json:"element,omitempty"`
	Matches    []ElementMatchView     `json:"matches,omitempty"`
	Candidates []ElementCandidateView `json:"candidates,omitempty"`
}

// CreateElementTool returns the tool definition for create_element.
func CreateElementTool() *mcp.Tool {
	return &mcp.Tool{
		Name: "create_element",
		Description: "Create an element at the end of a category. When other elements already carry the name and neither link_to nor independent is given, " +
			"nothing is created and the same-name elements are returned as link candidates; call again with a decision.",
	}
}

// HandleCreateElement handles the create_element tool call.
func (h *Handler) HandleCreateElement(ctx context.Context, req *mcp.CallToolRequest, input CreateElementInput) (*mcp.CallToolResult, CreateElementOutput, error) {
	h.Logger.Info("create_element", "category_id", input.CategoryID, "name", input.Name, "link_to", input.LinkTo)

	if input.LinkTo != "" && input.Independent {
		return nil, CreateElementOutput{}, fmt.Errorf("link_to and independent are mutually exclusive")
	}

	var out CreateElementOutput
	err := h.mutate(ctx, "create_element", func() error {
		pending, err := h.Store.BeginCreateElement(input.CategoryID, input.Name)
		if err != nil {
			return err
		}
		if pending.NeedsDecision() && input.LinkTo == "" && !input.Independent {
			out.Matches = elementMatchViews(pending.Matches)
			out.Candidates = elementCandidateViews(pending.Candidates)
			return errUnchanged
		}

		d := tree.Independent()
		if input.LinkTo != "" {
			d = tree.LinkTo(input.LinkTo, input.Merge)
		}
		el, err := pending.Resolve(d)
		if err != nil {
			return err
		}
		v := elementView(h.Store, el)
		out.Created, out.Element = true, &v
		return nil
	})
	if err != nil {
		return nil, CreateElementOutput{}, fmt.Errorf("failed to create element: %w", err)
	}

	if !out.Created {
		h.Logger.Info("create_element needs decision", "name", input.Name, "matches", len(out.Matches))
		return nil, out, nil
	}
	h.Logger.Info("create_element complete", "id", out.Element.ID, "group", out.Element.LinkedGroupID)
	return nil, out, nil
}

// UpdateElementInput defines the input for the update_element tool.
type UpdateElementInput struct {
	ID     string   `json:"id" jsonschema:"The element ID"`
	Name   *string  `json:"name,omitempty" jsonschema:"New name"`
	Status *string  `json:"status,omitempty" jsonschema:"fatal, critique, mineur, information, ok, deconnecte or herite"`
	Icon   *string  `json:"icon,omitempty" jsonschema:"Primary icon"`
	Icon2  *string  `json:"icon2,omitempty" jsonschema:"Second icon"`
	Icon3  *string  `json:"icon3,omitempty" jsonschema:"Third icon"`
	Value  *string  `json:"value,omitempty" jsonschema:"Displayed value"`
	Unit   *string  `json:"unit,omitempty" jsonschema:"Unit of the value"`
	Zone   *string  `json:"zone,omitempty" jsonschema:"Zone ID; empty clears it"`
	X      *float64 `json:"x,omitempty" jsonschema:"Horizontal position on free-placement templates"`
	Y      *float64 `json:"y,omitempty" jsonschema:"Vertical position on free-placement templates"`
	Width  *float64 `json:"width,omitempty" jsonschema:"Width on free-placement templates"`
	Height *float64 `json:"height,omitempty" jsonschema:"Height on free-placement templates"`
}

// UpdateElementOutput defines the output for the update_element tool.
type UpdateElementOutput struct {
	Element ElementView `json:"element"`
	// Peers are the other members of the element's linked group.
	Peers []string `json:"peers,omitempty"`
}

// UpdateElementTool returns the tool definition for update_element.
func UpdateElementTool() *mcp.Tool {
	return &mcp.Tool{
		Name: "update_element",
		Description: "Update an element. Only provided fields are changed. Status, icons, value and unit are copied to every linked peer; " +
			"herite requires the element and all its peers to have at least one sub-category.",
	}
}

// HandleUpdateElement handles the update_element tool call.
func (h *Handler) HandleUpdateElement(ctx context.Context, req *mcp.CallToolRequest, input UpdateElementInput) (*mcp.CallToolResult, UpdateElementOutput, error) {
	h.Logger.Info("update_element", "id", input.ID)

	var out UpdateElementOutput
	err := h.mutate(ctx, "update_element", func() error {
		current, err := h.Store.Element(input.ID)
		if err != nil {
			return err
		}
		patch, err := elementPatch(current, input)
		if err != nil {
			return err
		}
		if err := h.Store.UpdateElement(input.ID, patch); err != nil {
			return err
		}

		el, err := h.Store.Element(input.ID)
		if err != nil {
			return err
		}
		out.Element = elementView(h.Store, el)
		if el.LinkedGroupID != "" {
			if out.Peers, err = h.Store.ElementGroup(input.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, UpdateElementOutput{}, fmt.Errorf("failed to update element: %w", err)
	}

	h.Logger.Info("update_element complete", "id", input.ID, "peers", len(out.Peers))
	return nil, out, nil
}

// elementPatch converts tool input to a patch. A half-given position or size
// keeps the other coordinate from the current element.
func elementPatch(current *models.Element, in UpdateElementInput) (models.ElementPatch, error) {
	p := models.ElementPatch{
		Name:   in.Name,
		Icon:   in.Icon,
		Icon2:  in.Icon2,
		Icon3:  in.Icon3,
		Value:  in.Value,
		Unit:   in.Unit,
		ZoneID: in.Zone,
	}
	if in.Status != nil {
		st, err := models.ParseOwnStatus(*in.Status)
		if err != nil {
			return models.ElementPatch{}, fmt.Errorf("%w: %v", tree.ErrValidation, err)
		}
		p.Status = &st
	}
	if in.X != nil || in.Y != nil {
		pos := models.Position{}
		if current.Position != nil {
			pos = *current.Position
		}
		if in.X != nil {
			pos.X = *in.X
		}
		if in.Y != nil {
			pos.Y = *in.Y
		}
		p.Position = &pos
	}
	if in.Width != nil || in.Height != nil {
		size := models.Size{}
		if current.Size != nil {
			size = *current.Size
		}
		if in.Width != nil {
			size.Width = *in.Width
		}
		if in.Height != nil {
			size.Height = *in.Height
		}
		p.Size = &size
	}
	return p, nil
}

// DeleteElementInput defines the input for the delete_element tool.
type DeleteElementInput struct {
	ID string `json:"id" jsonschema:"The element ID"`
}

// DeleteElementTool returns the tool definition for delete_element.
func DeleteElementTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "delete_element",
		Description: "Delete an element and its sub-structure. Linked peers are left intact.",
	}
}

// HandleDeleteElement handles the delete_element tool call.
func (h *Handler) HandleDeleteElement(ctx context.Context, req *mcp.CallToolRequest, input DeleteElementInput) (*mcp.CallToolResult, DeleteOutput, error) {
	h.Logger.Info("delete_element", "id", input.ID)

	err := h.mutate(ctx, "delete_element", func() error {
		return h.Store.DeleteElement(input.ID)
	})
	if err != nil {
		return nil, DeleteOutput{}, fmt.Errorf("failed to delete element: %w", err)
	}

	h.Logger.Info("delete_element complete", "id", input.ID)
	return nil, DeleteOutput{ID: input.ID, Deleted: true}, nil
}
