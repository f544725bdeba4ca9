package tools

import (
	"context"
	"fmt"
	"slices"

	"github.com/fitz/cockpit/internal/models"
	"github.com/fitz/cockpit/internal/tree"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// MoveElementInput defines the input for the move_element tool.
type MoveElementInput struct {
	ID             string `json:"id" jsonschema:"The element ID"`
	FromCategoryID string `json:"from_category_id" jsonschema:"The category currently holding the element"`
	ToCategoryID   string `json:"to_category_id" jsonschema:"The destination category; the element is appended"`
}

// MoveElementTool returns the tool definition for move_element.
func MoveElementTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "move_element",
		Description: "Move an element, with its whole sub-structure, to the end of another category.",
	}
}

// HandleMoveElement handles the move_element tool call.
func (h *Handler) HandleMoveElement(ctx context.Context, req *mcp.CallToolRequest, input MoveElementInput) (*mcp.CallToolResult, ChangeOutput, error) {
	h.Logger.Info("move_element", "id", input.ID, "from", input.FromCategoryID, "to", input.ToCategoryID)

	err := h.mutate(ctx, "move_element", func() error {
		return h.Store.MoveElement(input.ID, input.FromCategoryID, input.ToCategoryID)
	})
	if err != nil {
		return nil, ChangeOutput{}, fmt.Errorf("failed to move element: %w", err)
	}

	h.Logger.Info("move_element complete", "id", input.ID)
	return nil, ChangeOutput{ID: input.ID, Changed: input.FromCategoryID != input.ToCategoryID}, nil
}

// DropInput describes a drag-and-drop gesture over a sibling.
type DropInput struct {
	TargetIndex int     `json:"target_index" jsonschema:"Index of the sibling under the pointer"`
	PointerX    float64 `json:"pointer_x" jsonschema:"Pointer x at drop time"`
	PointerY    float64 `json:"pointer_y" jsonschema:"Pointer y at drop time"`
	X           float64 `json:"x" jsonschema:"Left edge of the sibling"`
	Y           float64 `json:"y" jsonschema:"Top edge of the sibling"`
	Width       float64 `json:"width" jsonschema:"Width of the sibling"`
	Height      float64 `json:"height" jsonschema:"Height of the sibling"`
}

// ReorderInput defines the input for the reorder_element and reorder_subelement tools.
type ReorderInput struct {
	ID       string     `json:"id" jsonschema:"The ID of the item to move"`
	ParentID string     `json:"parent_id" jsonschema:"The category (or sub-category) holding the item"`
	Index    int        `json:"index,omitempty" jsonschema:"Target index; clamped to the list bounds"`
	Drop     *DropInput `json:"drop,omitempty" jsonschema:"Drop gesture; when given, the index is computed from it"`
}

// ReorderOutput defines the output for the reorder tools.
type ReorderOutput struct {
	ID    string `json:"id"`
	Index int    `json:"index"`
}

// ReorderElementTool returns the tool definition for reorder_element.
func ReorderElementTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "reorder_element",
		Description: "Move an element to a new position within its category, either by index or by a drop gesture over a sibling.",
	}
}

// HandleReorderElement handles the reorder_element tool call.
func (h *Handler) HandleReorderElement(ctx context.Context, req *mcp.CallToolRequest, input ReorderInput) (*mcp.CallToolResult, ReorderOutput, error) {
	h.Logger.Info("reorder_element", "id", input.ID, "category_id", input.ParentID, "index", input.Index)

	var out ReorderOutput
	err := h.mutate(ctx, "reorder_element", func() error {
		index := input.Index
		if input.Drop != nil {
			c, err := h.Store.Category(input.ParentID)
			if err != nil {
				return err
			}
			drag := slices.IndexFunc(c.Elements, func(e *models.Element) bool { return e.ID == input.ID })
			if drag < 0 {
				return fmt.Errorf("%w: element %s not in category %s", tree.ErrNotFound, input.ID, input.ParentID)
			}
			index = dropIndex(c.Orientation, drag, input.Drop)
		}
		if err := h.Store.ReorderElement(input.ID, input.ParentID, index); err != nil {
			return err
		}
		out = ReorderOutput{ID: input.ID, Index: index}
		return nil
	})
	if err != nil {
		return nil, ReorderOutput{}, fmt.Errorf("failed to reorder element: %w", err)
	}

	h.Logger.Info("reorder_element complete", "id", input.ID, "index", out.Index)
	return nil, out, nil
}

func dropIndex(o models.Orientation, drag int, d *DropInput) int {
	return tree.DropIndex(o, drag, d.TargetIndex,
		tree.Point{X: d.PointerX, Y: d.PointerY},
		tree.Rect{X: d.X, Y: d.Y, Width: d.Width, Height: d.Height})
}

// DuplicateElementInput defines the input for the duplicate_element tool.
type DuplicateElementInput struct {
	ID               string `json:"id" jsonschema:"The element to copy"`
	TargetCategoryID string `json:"target_category_id" jsonschema:"The category receiving the copy"`
}

// DuplicateElementOutput defines the output for the duplicate_element tool.
type DuplicateElementOutput struct {
	Element ElementView `json:"element"`
}

// DuplicateElementTool returns the tool definition for duplicate_element.
func DuplicateElementTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "duplicate_element",
		Description: "Copy an element with its whole sub-structure under fresh IDs and link the copy with the source. A copy into the same category lands right after the source.",
	}
}

// HandleDuplicateElement handles the duplicate_element tool call.
func (h *Handler) HandleDuplicateElement(ctx context.Context, req *mcp.CallToolRequest, input DuplicateElementInput) (*mcp.CallToolResult, DuplicateElementOutput, error) {
	h.Logger.Info("duplicate_element", "id", input.ID, "target", input.TargetCategoryID)

	var out DuplicateElementOutput
	err := h.mutate(ctx, "duplicate_element", func() error {
		el, err := h.Store.DuplicateElementLinked(input.ID, input.TargetCategoryID)
		if err != nil {
			return err
		}
		out.Element = elementView(h.Store, el)
		return nil
	})
	if err != nil {
		return nil, DuplicateElementOutput{}, fmt.Errorf("failed to duplicate element: %w", err)
	}

	h.Logger.Info("duplicate_element complete", "source", input.ID, "id", out.Element.ID)
	return nil, out, nil
}
