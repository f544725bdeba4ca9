package mcp

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/fitz/cockpit/internal/mcp/tools"
	"github.com/fitz/cockpit/internal/metrics"
	"github.com/fitz/cockpit/internal/tree"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	ServerName    = "cockpit"
	ServerVersion = "v1.0.0"
)

// Server wraps the MCP server with the cockpit editing tools
type Server struct {
	mcpServer *mcp.Server
	logger    *slog.Logger
	handler   *tools.Handler
}

// NewServer creates a new cockpit MCP server. saver may be nil for an
// in-memory cockpit, m may be nil to skip instrumentation.
func NewServer(store *tree.Store, saver tools.Saver, m *metrics.Metrics, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)

	handler := tools.NewHandler(store, saver, logger)
	handler.Metrics = m

	s := &Server{
		mcpServer: mcpServer,
		logger:    logger,
		handler:   handler,
	}

	s.registerTools()
	return s
}

// registerTools adds all MCP tools to the server
func (s *Server) registerTools() {
	h := s.handler

	// Cockpit
	mcp.AddTool(s.mcpServer, tools.GetCockpitTool(), h.HandleGetCockpit)
	mcp.AddTool(s.mcpServer, tools.RenameCockpitTool(), h.HandleRenameCockpit)
	mcp.AddTool(s.mcpServer, tools.SetSettingTool(), h.HandleSetSetting)

	// Containers
	mcp.AddTool(s.mcpServer, tools.CreateDomainTool(), h.HandleCreateDomain)
	mcp.AddTool(s.mcpServer, tools.UpdateDomainTool(), h.HandleUpdateDomain)
	mcp.AddTool(s.mcpServer, tools.DeleteDomainTool(), h.HandleDeleteDomain)
	mcp.AddTool(s.mcpServer, tools.CreateCategoryTool(), h.HandleCreateCategory)
	mcp.AddTool(s.mcpServer, tools.UpdateCategoryTool(), h.HandleUpdateCategory)
	mcp.AddTool(s.mcpServer, tools.DeleteCategoryTool(), h.HandleDeleteCategory)
	mcp.AddTool(s.mcpServer, tools.CreateSubCategoryTool(), h.HandleCreateSubCategory)
	mcp.AddTool(s.mcpServer, tools.UpdateSubCategoryTool(), h.HandleUpdateSubCategory)
	mcp.AddTool(s.mcpServer, tools.DeleteSubCategoryTool(), h.HandleDeleteSubCategory)

	// Elements
	mcp.AddTool(s.mcpServer, tools.CreateElementTool(), h.HandleCreateElement)
	mcp.AddTool(s.mcpServer, tools.UpdateElementTool(), h.HandleUpdateElement)
	mcp.AddTool(s.mcpServer, tools.DeleteElementTool(), h.HandleDeleteElement)
	mcp.AddTool(s.mcpServer, tools.MoveElementTool(), h.HandleMoveElement)
	mcp.AddTool(s.mcpServer, tools.ReorderElementTool(), h.HandleReorderElement)
	mcp.AddTool(s.mcpServer, tools.DuplicateElementTool(), h.HandleDuplicateElement)
	mcp.AddTool(s.mcpServer, tools.LinkElementsTool(), h.HandleLinkElements)
	mcp.AddTool(s.mcpServer, tools.UnlinkElementTool(), h.HandleUnlinkElement)
	mcp.AddTool(s.mcpServer, tools.EffectiveStatusTool(), h.HandleEffectiveStatus)

	// Sub-elements
	mcp.AddTool(s.mcpServer, tools.CreateSubElementTool(), h.HandleCreateSubElement)
	mcp.AddTool(s.mcpServer, tools.UpdateSubElementTool(), h.HandleUpdateSubElement)
	mcp.AddTool(s.mcpServer, tools.DeleteSubElementTool(), h.HandleDeleteSubElement)
	mcp.AddTool(s.mcpServer, tools.MoveSubElementTool(), h.HandleMoveSubElement)
	mcp.AddTool(s.mcpServer, tools.ReorderSubElementTool(), h.HandleReorderSubElement)
	mcp.AddTool(s.mcpServer, tools.LinkSubElementsTool(), h.HandleLinkSubElements)
	mcp.AddTool(s.mcpServer, tools.UnlinkSubElementTool(), h.HandleUnlinkSubElement)

	// Search
	mcp.AddTool(s.mcpServer, tools.FindElementsTool(), h.HandleFindElements)
	mcp.AddTool(s.mcpServer, tools.FindSubElementsTool(), h.HandleFindSubElements)

	// Zones
	mcp.AddTool(s.mcpServer, tools.CreateZoneTool(), h.HandleCreateZone)
	mcp.AddTool(s.mcpServer, tools.DeleteZoneTool(), h.HandleDeleteZone)
}

// HTTPHandler returns an http.Handler for the MCP server
func (s *Server) HTTPHandler() http.Handler {
	return mcp.NewStreamableHTTPHandler(
		func(r *http.Request) *mcp.Server {
			return s.mcpServer
		},
		&mcp.StreamableHTTPOptions{
			Logger: s.logger,
		},
	)
}

// Run starts the MCP server over stdio (for CLI usage)
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}
