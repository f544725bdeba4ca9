package tools

import (
	"context"
	"fmt"

	"github.com/fitz/cockpit/internal/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// CreateCategoryInput defines the input for the create_category tool.
type CreateCategoryInput struct {
	DomainID    string `json:"domain_id" jsonschema:"The parent domain ID"`
	Name        string `json:"name" jsonschema:"The category name"`
	Orientation string `json:"orientation,omitempty" jsonschema:"horizontal or vertical (default horizontal)"`
}

// CreateCategoryOutput defines the output for the create_category tool.
type CreateCategoryOutput struct {
	Category CategoryView `json:"category"`
}

// CreateCategoryTool returns the tool definition for create_category.
func CreateCategoryTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "create_category",
		Description: "Create a category at the end of a domain. Returns the created category with its ID.",
	}
}

// HandleCreateCategory handles the create_category tool call.
func (h *Handler) HandleCreateCategory(ctx context.Context, req *mcp.CallToolRequest, input CreateCategoryInput) (*mcp.CallToolResult, CreateCategoryOutput, error) {
	h.Logger.Info("create_category", "domain_id", input.DomainID, "name", input.Name)

	var out CreateCategoryOutput
	err := h.mutate(ctx, "create_category", func() error {
		c, err := h.Store.CreateCategory(input.DomainID, input.Name, models.Orientation(input.Orientation))
		if err != nil {
			return err
		}
		out.Category = categoryView(h.Store, c)
		return nil
	})
	if err != nil {
		return nil, CreateCategoryOutput{}, fmt.Errorf("failed to create category: %w", err)
	}

	h.Logger.Info("create_category complete", "id", out.Category.ID)
	return nil, out, nil
}

// UpdateCategoryInput defines the input for the update_category tool.
type UpdateCategoryInput struct {
	ID          string  `json:"id" jsonschema:"The category ID"`
	Name        *string `json:"name,omitempty" jsonschema:"New name"`
	Orientation *string `json:"orientation,omitempty" jsonschema:"horizontal or vertical"`
}

// UpdateCategoryTool returns the tool definition for update_category.
func UpdateCategoryTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "update_category",
		Description: "Rename a category or change its orientation. Only provided fields are changed.",
	}
}

// HandleUpdateCategory handles the update_category tool call.
func (h *Handler) HandleUpdateCategory(ctx context.Context, req *mcp.CallToolRequest, input UpdateCategoryInput) (*mcp.CallToolResult, ChangeOutput, error) {
	h.Logger.Info("update_category", "id", input.ID)

	patch := models.CategoryPatch{Name: input.Name}
	if input.Orientation != nil {
		patch.Orientation = models.Ptr(models.Orientation(*input.Orientation))
	}
	err := h.mutate(ctx, "update_category", func() error {
		return h.Store.UpdateCategory(input.ID, patch)
	})
	if err != nil {
		return nil, ChangeOutput{}, fmt.Errorf("failed to update category: %w", err)
	}

	h.Logger.Info("update_category complete", "id", input.ID)
	return nil, ChangeOutput{ID: input.ID, Changed: true}, nil
}

// DeleteCategoryInput defines the input for the delete_category tool.
type DeleteCategoryInput struct {
	ID string `json:"id" jsonschema:"The category ID"`
}

// DeleteCategoryTool returns the tool definition for delete_category.
func DeleteCategoryTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "delete_category",
		Description: "Delete a category with all its elements.",
	}
}

// HandleDeleteCategory handles the delete_category tool call.
func (h *Handler) HandleDeleteCategory(ctx context.Context, req *mcp.CallToolRequest, input DeleteCategoryInput) (*mcp.CallToolResult, DeleteOutput, error) {
	h.Logger.Info("delete_category", "id", input.ID)

	err := h.mutate(ctx, "delete_category", func() error {
		return h.Store.DeleteCategory(input.ID)
	})
	if err != nil {
		return nil, DeleteOutput{}, fmt.Errorf("failed to delete category: %w", err)
	}

	h.Logger.Info("delete_category complete", "id", input.ID)
	return nil, DeleteOutput{ID: input.ID, Deleted: true}, nil
}
