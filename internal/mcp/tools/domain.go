package tools

import (
	"context"
	"fmt"

	"github.com/fitz/cockpit/internal/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// CreateDomainInput defines the input for the create_domain tool.
type CreateDomainInput struct {
	Name         string `json:"name" jsonschema:"The domain name"`
	TemplateType string `json:"template_type,omitempty" jsonschema:"Renderer template: standard, map or background (default standard)"`
}

// CreateDomainOutput defines the output for the create_domain tool.
type CreateDomainOutput struct {
	Domain DomainView `json:"domain"`
}

// CreateDomainTool returns the tool definition for create_domain.
func CreateDomainTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "create_domain",
		Description: "Create a top-level domain at the end of the cockpit. Returns the created domain with its ID.",
	}
}

// HandleCreateDomain handles the create_domain tool call.
func (h *Handler) HandleCreateDomain(ctx context.Context, req *mcp.CallToolRequest, input CreateDomainInput) (*mcp.CallToolResult, CreateDomainOutput, error) {
	h.Logger.Info("create_domain", "name", input.Name, "template", input.TemplateType)

	var out CreateDomainOutput
	err := h.mutate(ctx, "create_domain", func() error {
		d, err := h.Store.CreateDomain(input.Name, input.TemplateType)
		if err != nil {
			return err
		}
		out.Domain = domainView(h.Store, d)
		return nil
	})
	if err != nil {
		return nil, CreateDomainOutput{}, fmt.Errorf("failed to create domain: %w", err)
	}

	h.Logger.Info("create_domain complete", "id", out.Domain.ID)
	return nil, out, nil
}

// UpdateDomainInput defines the input for the update_domain tool.
type UpdateDomainInput struct {
	ID           string  `json:"id" jsonschema:"The domain ID"`
	Name         *string `json:"name,omitempty" jsonschema:"New name"`
	TemplateType *string `json:"template_type,omitempty" jsonschema:"New renderer template"`
}

// UpdateDomainTool returns the tool definition for update_domain.
func UpdateDomainTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "update_domain",
		Description: "Rename a domain or change its template. Only provided fields are changed.",
	}
}

// HandleUpdateDomain handles the update_domain tool call.
func (h *Handler) HandleUpdateDomain(ctx context.Context, req *mcp.CallToolRequest, input UpdateDomainInput) (*mcp.CallToolResult, ChangeOutput, error) {
	h.Logger.Info("update_domain", "id", input.ID)

	err := h.mutate(ctx, "update_domain", func() error {
		return h.Store.UpdateDomain(input.ID, models.DomainPatch{
			Name:         input.Name,
			TemplateType: input.TemplateType,
		})
	})
	if err != nil {
		return nil, ChangeOutput{}, fmt.Errorf("failed to update domain: %w", err)
	}

	h.Logger.Info("update_domain complete", "id", input.ID)
	return nil, ChangeOutput{ID: input.ID, Changed: true}, nil
}

// DeleteDomainInput defines the input for the delete_domain tool.
type DeleteDomainInput struct {
	ID string `json:"id" jsonschema:"The domain ID"`
}

// DeleteDomainTool returns the tool definition for delete_domain.
func DeleteDomainTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "delete_domain",
		Description: "Delete a domain with all its categories and elements. Linked peers elsewhere are left intact.",
	}
}

// HandleDeleteDomain handles the delete_domain tool call.
func (h *Handler) HandleDeleteDomain(ctx context.Context, req *mcp.CallToolRequest, input DeleteDomainInput) (*mcp.CallToolResult, DeleteOutput, error) {
	h.Logger.Info("delete_domain", "id", input.ID)

	err := h.mutate(ctx, "delete_domain", func() error {
		return h.Store.DeleteDomain(input.ID)
	})
	if err != nil {
		return nil, DeleteOutput{}, fmt.Errorf("failed to delete domain: %w", err)
	}

	h.Logger.Info("delete_domain complete", "id", input.ID)
	return nil, DeleteOutput{ID: input.ID, Deleted: true}, nil
}
