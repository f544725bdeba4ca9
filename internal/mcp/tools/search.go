package tools

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// FindInput defines the input for the find_elements and find_subelements tools.
type FindInput struct {
	Name    string `json:"name" jsonschema:"Exact, case-sensitive name to look for"`
	Grouped bool   `json:"grouped,omitempty" jsonschema:"Collapse members of the same linked group into one candidate"`
}

// FindElementsOutput defines the output for the find_elements tool.
type FindElementsOutput struct {
	Matches    []ElementMatchView     `json:"matches"`
	Candidates []ElementCandidateView `json:"candidates,omitempty"`
	Count      int                    `json:"count"`
}

// FindElementsTool returns the tool definition for find_elements.
func FindElementsTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "find_elements",
		Description: "Find elements by exact name across the whole cockpit, with their path \"Domain > Category\", category ID, linked group and status.",
	}
}

// HandleFindElements handles the find_elements tool call.
func (h *Handler) HandleFindElements(ctx context.Context, req *mcp.CallToolRequest, input FindInput) (*mcp.CallToolResult, FindElementsOutput, error) {
	h.Logger.Info("find_elements", "name", input.Name, "grouped", input.Grouped)

	if input.Name == "" {
		return nil, FindElementsOutput{}, fmt.Errorf("name is required")
	}

	var out FindElementsOutput
	_ = h.read("find_elements", func() error {
		matches := h.Store.FindElementsByName(input.Name)
		out.Matches = elementMatchViews(matches)
		out.Count = len(matches)
		if input.Grouped {
			out.Candidates = elementCandidateViews(h.Store.GroupElementMatches(matches))
		}
		return nil
	})

	h.Logger.Info("find_elements complete", "name", input.Name, "count", out.Count)
	return nil, out, nil
}

// FindSubElementsOutput defines the output for the find_subelements tool.
type FindSubElementsOutput struct {
	Matches    []SubElementMatchView     `json:"matches"`
	Candidates []SubElementCandidateView `json:"candidates,omitempty"`
	Count      int                       `json:"count"`
}

// FindSubElementsTool returns the tool definition for find_subelements.
func FindSubElementsTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "find_subelements",
		Description: "Find sub-elements by exact name across the whole cockpit, with their path \"Domain > Category > Element > SubCategory\" and parent IDs.",
	}
}

// HandleFindSubElements handles the find_subelements tool call.
func (h *Handler) HandleFindSubElements(ctx context.Context, req *mcp.CallToolRequest, input FindInput) (*mcp.CallToolResult, FindSubElementsOutput, error) {
	h.Logger.Info("find_subelements", "name", input.Name, "grouped", input.Grouped)

	if input.Name == "" {
		return nil, FindSubElementsOutput{}, fmt.Errorf("name is required")
	}

	var out FindSubElementsOutput
	_ = h.read("find_subelements", func() error {
		matches := h.Store.FindSubElementsByName(input.Name)
		out.Matches = subElementMatchViews(matches)
		out.Count = len(matches)
		if input.Grouped {
			out.Candidates = subElementCandidateViews(h.Store.GroupSubElementMatches(matches))
		}
		return nil
	})

	h.Logger.Info("find_subelements complete", "name", input.Name, "count", out.Count)
	return nil, out, nil
}
