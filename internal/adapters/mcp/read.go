package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"pyxidust/internal/app"
)

// RegisterReadTools adds the tools that do not change files to the MCP server.
func RegisterReadTools(s *server.MCPServer, svc *app.Services) {
	s.AddTool(validateSerialTool(), validateSerialHandler(svc))
	s.AddTool(listCatalogTool(), listCatalogHandler(svc))
	s.AddTool(listProjectsTool(), listProjectsHandler(svc))
	s.AddTool(searchFilesTool(), searchFilesHandler(svc))
}

// --- validate_serial ---

func validateSerialTool() mcp.Tool {
	return mcp.NewTool("validate_serial",
		mcp.WithDescription("Check that a serial is shaped YYYYNNNN or YYYYNNNN-CCCC."),
		mcp.WithString("serial",
			mcp.Description("Serial to check (e.g. 20251001 or 20251001-0002)"),
			mcp.Required(),
		),
	)
}

func validateSerialHandler(svc *app.Services) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := svc.ValidateSerial(req.GetString("serial", "")).Execute(ctx)
		if err != nil {
			return toolError(svc, "validate", err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- list_catalog ---

func listCatalogTool() mcp.Tool {
	return mcp.NewTool("list_catalog",
		mcp.WithDescription("List the project catalog: one line per minted project serial with its name, description, creator and timestamp."),
		mcp.WithString("query",
			mcp.Description("Only list entries whose serial, name, description or creator contains this text"),
		),
	)
}

func listCatalogHandler(svc *app.Services) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := svc.ListCatalog(req.GetString("query", "")).Execute(ctx)
		if err != nil {
			return toolError(svc, "catalog", err)
		}
		if len(result.Entries) == 0 {
			return mcp.NewToolResultText("No results."), nil
		}

		var sb strings.Builder
		for _, e := range result.Entries {
			fmt.Fprintf(&sb, "%s  %s  %s  %s  %s %s\n", e.Serial, e.Name, e.Description, e.Creator, e.Date, e.Time)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- list_projects ---

func listProjectsTool() mcp.Tool {
	return mcp.NewTool("list_projects",
		mcp.WithDescription("List the project folders. Folders of previous years are marked stale."),
	)
}

func listProjectsHandler(svc *app.Services) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := svc.ListProjects().Execute(ctx)
		if err != nil {
			return toolError(svc, "list-projects", err)
		}
		if len(result.Projects) == 0 {
			return mcp.NewToolResultText("No results."), nil
		}

		var sb strings.Builder
		for _, p := range result.Projects {
			sb.WriteString(p.Name)
			if p.Stale {
				sb.WriteString("  (stale)")
			}
			sb.WriteByte('\n')
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- search_files ---

func searchFilesTool() mcp.Tool {
	return mcp.NewTool("search_files",
		mcp.WithDescription("Search files recorded by persisted crawls by name."),
		mcp.WithString("query",
			mcp.Description("Text the file name contains"),
			mcp.Required(),
		),
	)
}

func searchFilesHandler(svc *app.Services) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd, err := svc.SearchFiles(ctx, req.GetString("query", ""))
		if err != nil {
			return toolError(svc, "search", err)
		}
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(svc, "search", err)
		}
		if len(result.Files) == 0 {
			return mcp.NewToolResultText("No results found."), nil
		}

		var sb strings.Builder
		for _, f := range result.Files {
			fmt.Fprintf(&sb, "%s  %s\n", f.Name, f.Path)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- helpers ---

// toolError reports a failed command to the client. The failure is logged
// and counted like a failed CLI command.
func toolError(svc *app.Services, command string, err error) (*mcp.CallToolResult, error) {
	svc.Fail(command, err)
	return mcp.NewToolResultError(err.Error()), nil
}
