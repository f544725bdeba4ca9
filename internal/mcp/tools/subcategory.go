package tools

import (
	"context"
	"fmt"

	"github.com/fitz/cockpit/internal/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// CreateSubCategoryInput defines the input for the create_subcategory tool.
type CreateSubCategoryInput struct {
	ElementID string `json:"element_id" jsonschema:"The parent element ID"`
	Name      string `json:"name" jsonschema:"The sub-category name"`
}

// CreateSubCategoryOutput defines the output for the create_subcategory tool.
type CreateSubCategoryOutput struct {
	SubCategory SubCategoryView `json:"sub_category"`
}

// CreateSubCategoryTool returns the tool definition for create_subcategory.
func CreateSubCategoryTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "create_subcategory",
		Description: "Create a sub-category at the end of an element. Sub-categories are not synchronized across linked elements.",
	}
}

// HandleCreateSubCategory handles the create_subcategory tool call.
func (h *Handler) HandleCreateSubCategory(ctx context.Context, req *mcp.CallToolRequest, input CreateSubCategoryInput) (*mcp.CallToolResult, CreateSubCategoryOutput, error) {
	h.Logger.Info("create_subcategory", "element_id", input.ElementID, "name", input.Name)

	var out CreateSubCategoryOutput
	err := h.mutate(ctx, "create_subcategory", func() error {
		sc, err := h.Store.CreateSubCategory(input.ElementID, input.Name)
		if err != nil {
			return err
		}
		out.SubCategory = subCategoryView(sc)
		return nil
	})
	if err != nil {
		return nil, CreateSubCategoryOutput{}, fmt.Errorf("failed to create sub-category: %w", err)
	}

	h.Logger.Info("create_subcategory complete", "id", out.SubCategory.ID)
	return nil, out, nil
}

// UpdateSubCategoryInput defines the input for the update_subcategory tool.
type UpdateSubCategoryInput struct {
	ID   string  `json:"id" jsonschema:"The sub-category ID"`
	Name *string `json:"name,omitempty" jsonschema:"New name"`
	Icon *string `json:"icon,omitempty" jsonschema:"New icon"`
}

// UpdateSubCategoryTool returns the tool definition for update_subcategory.
func UpdateSubCategoryTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "update_subcategory",
		Description: "Rename a sub-category or change its icon. Only provided fields are changed.",
	}
}

// HandleUpdateSubCategory handles the update_subcategory tool call.
func (h *Handler) HandleUpdateSubCategory(ctx context.Context, req *mcp.CallToolRequest, input UpdateSubCategoryInput) (*mcp.CallToolResult, ChangeOutput, error) {
	h.Logger.Info("update_subcategory", "id", input.ID)

	err := h.mutate(ctx, "update_subcategory", func() error {
		return h.Store.UpdateSubCategory(input.ID, models.SubCategoryPatch{Name: input.Name, Icon: input.Icon})
	})
	if err != nil {
		return nil, ChangeOutput{}, fmt.Errorf("failed to update sub-category: %w", err)
	}

	h.Logger.Info("update_subcategory complete", "id", input.ID)
	return nil, ChangeOutput{ID: input.ID, Changed: true}, nil
}

// DeleteSubCategoryInput defines the input for the delete_subcategory tool.
type DeleteSubCategoryInput struct {
	ID string `json:"id" jsonschema:"The sub-category ID"`
}

// DeleteSubCategoryTool returns the tool definition for delete_subcategory.
func DeleteSubCategoryTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "delete_subcategory",
		Description: "Delete a sub-category and its sub-elements. Fails for the last sub-category of an element whose status is herite.",
	}
}

// HandleDeleteSubCategory handles the delete_subcategory tool call.
func (h *Handler) HandleDeleteSubCategory(ctx context.Context, req *mcp.CallToolRequest, input DeleteSubCategoryInput) (*mcp.CallToolResult, DeleteOutput, error) {
	h.Logger.Info("delete_subcategory", "id", input.ID)

	err := h.mutate(ctx, "delete_subcategory", func() error {
		return h.Store.DeleteSubCategory(input.ID)
	})
	if err != nil {
		return nil, DeleteOutput{}, fmt.Errorf("failed to delete sub-category: %w", err)
	}

	h.Logger.Info("delete_subcategory complete", "id", input.ID)
	return nil, DeleteOutput{ID: input.ID, Deleted: true}, nil
}
