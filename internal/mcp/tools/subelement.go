package tools

import (
	"context"
	"fmt"
	"slices"

	"github.com/fitz/cockpit/internal/models"
	"github.com/fitz/cockpit/internal/tree"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// CreateSubElementInput defines the input for the create_subelement tool.
type CreateSubElementInput struct {
	SubCategoryID string `json:"sub_category_id" jsonschema:"The parent sub-category ID"`
	Name          string `json:"name" jsonschema:"The sub-element name"`
	LinkTo        string `json:"link_to,omitempty" jsonschema:"ID of an existing same-name sub-element to link the new one with"`
	Independent   bool   `json:"independent,omitempty" jsonschema:"Create an unlinked sub-element even when the name is already used"`
}

// CreateSubElementOutput defines the output for the create_subelement tool.
type CreateSubElementOutput struct {
	Created    bool                      `json:"created"`
	SubElement *SubElementView           `json:"sub_element,omitempty"`
	Matches    []SubElementMatchView     `json:"matches,omitempty"`
	Candidates []SubElementCandidateView `json:"candidates,omitempty"`
}

// CreateSubElementTool returns the tool definition for create_subelement.
func CreateSubElementTool() *mcp.Tool {
	return &mcp.Tool{
		Name: "create_subelement",
		Description: "Create a sub-element at the end of a sub-category. When the name is already used and no decision is given, " +
			"nothing is created and the link candidates are returned.",
	}
}

// HandleCreateSubElement handles the create_subelement tool call.
func (h *Handler) HandleCreateSubElement(ctx context.Context, req *mcp.CallToolRequest, input CreateSubElementInput) (*mcp.CallToolResult, CreateSubElementOutput, error) {
	h.Logger.Info("create_subelement", "sub_category_id", input.SubCategoryID, "name", input.Name, "link_to", input.LinkTo)

	if input.LinkTo != "" && input.Independent {
		return nil, CreateSubElementOutput{}, fmt.Errorf("link_to and independent are mutually exclusive")
	}

	var out CreateSubElementOutput
	err := h.mutate(ctx, "create_subelement", func() error {
		pending, err := h.Store.BeginCreateSubElement(input.SubCategoryID, input.Name)
		if err != nil {
			return err
		}
		if pending.NeedsDecision() && input.LinkTo == "" && !input.Independent {
			out.Matches = subElementMatchViews(pending.Matches)
			out.Candidates = subElementCandidateViews(pending.Candidates)
			return errUnchanged
		}

		se, err := pending.Resolve(tree.LinkTo(input.LinkTo, false))
		if err != nil {
			return err
		}
		v := subElementView(se)
		out.Created, out.SubElement = true, &v
		return nil
	})
	if err != nil {
		return nil, CreateSubElementOutput{}, fmt.Errorf("failed to create sub-element: %w", err)
	}

	if !out.Created {
		h.Logger.Info("create_subelement needs decision", "name", input.Name, "matches", len(out.Matches))
		return nil, out, nil
	}
	h.Logger.Info("create_subelement complete", "id", out.SubElement.ID, "group", out.SubElement.LinkedGroupID)
	return nil, out, nil
}

// UpdateSubElementInput defines the input for the update_subelement tool.
type UpdateSubElementInput struct {
	ID     string  `json:"id" jsonschema:"The sub-element ID"`
	Name   *string `json:"name,omitempty" jsonschema:"New name"`
	Status *string `json:"status,omitempty" jsonschema:"fatal, critique, mineur, information, ok or deconnecte"`
	Icon   *string `json:"icon,omitempty" jsonschema:"Icon"`
	Value  *string `json:"value,omitempty" jsonschema:"Displayed value"`
	Unit   *string `json:"unit,omitempty" jsonschema:"Unit of the value"`
}

// UpdateSubElementTool returns the tool definition for update_subelement.
func UpdateSubElementTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "update_subelement",
		Description: "Update a sub-element. Only provided fields are changed. Status, icon, value and unit are copied to every linked peer.",
	}
}

// HandleUpdateSubElement handles the update_subelement tool call.
func (h *Handler) HandleUpdateSubElement(ctx context.Context, req *mcp.CallToolRequest, input UpdateSubElementInput) (*mcp.CallToolResult, ChangeOutput, error) {
	h.Logger.Info("update_subelement", "id", input.ID)

	patch := models.SubElementPatch{
		Name:  input.Name,
		Icon:  input.Icon,
		Value: input.Value,
		Unit:  input.Unit,
	}
	if input.Status != nil {
		patch.Status = models.Ptr(models.Status(*input.Status))
	}
	err := h.mutate(ctx, "update_subelement", func() error {
		return h.Store.UpdateSubElement(input.ID, patch)
	})
	if err != nil {
		return nil, ChangeOutput{}, fmt.Errorf("failed to update sub-element: %w", err)
	}

	h.Logger.Info("update_subelement complete", "id", input.ID)
	return nil, ChangeOutput{ID: input.ID, Changed: true}, nil
}

// DeleteSubElementInput defines the input for the delete_subelement tool.
type DeleteSubElementInput struct {
	ID string `json:"id" jsonschema:"The sub-element ID"`
}

// DeleteSubElementTool returns the tool definition for delete_subelement.
func DeleteSubElementTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "delete_subelement",
		Description: "Delete a sub-element. Linked peers are left intact.",
	}
}

// HandleDeleteSubElement handles the delete_subelement tool call.
func (h *Handler) HandleDeleteSubElement(ctx context.Context, req *mcp.CallToolRequest, input DeleteSubElementInput) (*mcp.CallToolResult, DeleteOutput, error) {
	h.Logger.Info("delete_subelement", "id", input.ID)

	err := h.mutate(ctx, "delete_subelement", func() error {
		return h.Store.DeleteSubElement(input.ID)
	})
	if err != nil {
		return nil, DeleteOutput{}, fmt.Errorf("failed to delete sub-element: %w", err)
	}

	h.Logger.Info("delete_subelement complete", "id", input.ID)
	return nil, DeleteOutput{ID: input.ID, Deleted: true}, nil
}

// MoveSubElementInput defines the input for the move_subelement tool.
type MoveSubElementInput struct {
	ID                string `json:"id" jsonschema:"The sub-element ID"`
	FromSubCategoryID string `json:"from_sub_category_id" jsonschema:"The sub-category currently holding the sub-element"`
	ToSubCategoryID   string `json:"to_sub_category_id" jsonschema:"The destination sub-category; the sub-element is appended"`
}

// MoveSubElementTool returns the tool definition for move_subelement.
func MoveSubElementTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "move_subelement",
		Description: "Move a sub-element to the end of another sub-category, possibly under another element.",
	}
}

// HandleMoveSubElement handles the move_subelement tool call.
func (h *Handler) HandleMoveSubElement(ctx context.Context, req *mcp.CallToolRequest, input MoveSubElementInput) (*mcp.CallToolResult, ChangeOutput, error) {
	h.Logger.Info("move_subelement", "id", input.ID, "from", input.FromSubCategoryID, "to", input.ToSubCategoryID)

	err := h.mutate(ctx, "move_subelement", func() error {
		return h.Store.MoveSubElement(input.ID, input.FromSubCategoryID, input.ToSubCategoryID)
	})
	if err != nil {
		return nil, ChangeOutput{}, fmt.Errorf("failed to move sub-element: %w", err)
	}

	h.Logger.Info("move_subelement complete", "id", input.ID)
	return nil, ChangeOutput{ID: input.ID, Changed: input.FromSubCategoryID != input.ToSubCategoryID}, nil
}

// ReorderSubElementTool returns the tool definition for reorder_subelement.
func ReorderSubElementTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "reorder_subelement",
		Description: "Move a sub-element to a new position within its sub-category, either by index or by a drop gesture. Sub-element lists are vertical.",
	}
}

// HandleReorderSubElement handles the reorder_subelement tool call.
func (h *Handler) HandleReorderSubElement(ctx context.Context, req *mcp.CallToolRequest, input ReorderInput) (*mcp.CallToolResult, ReorderOutput, error) {
	h.Logger.Info("reorder_subelement", "id", input.ID, "sub_category_id", input.ParentID, "index", input.Index)

	var out ReorderOutput
	err := h.mutate(ctx, "reorder_subelement", func() error {
		index := input.Index
		if input.Drop != nil {
			sc, err := h.Store.SubCategory(input.ParentID)
			if err != nil {
				return err
			}
			drag := slices.IndexFunc(sc.SubElements, func(se *models.SubElement) bool { return se.ID == input.ID })
			if drag < 0 {
				return fmt.Errorf("%w: sub-element %s not in sub-category %s", tree.ErrNotFound, input.ID, input.ParentID)
			}
			index = dropIndex(models.OrientationVertical, drag, input.Drop)
		}
		if err := h.Store.ReorderSubElement(input.ID, input.ParentID, index); err != nil {
			return err
		}
		out = ReorderOutput{ID: input.ID, Index: index}
		return nil
	})
	if err != nil {
		return nil, ReorderOutput{}, fmt.Errorf("failed to reorder sub-element: %w", err)
	}

	h.Logger.Info("reorder_subelement complete", "id", input.ID, "index", out.Index)
	return nil, out, nil
}
