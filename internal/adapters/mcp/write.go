package mcp

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"pyxidust/internal/app"
	"pyxidust/internal/application"
)

// RegisterWriteTools adds the tools that mint serials or change files to the
// MCP server.
func RegisterWriteTools(s *server.MCPServer, svc *app.Services) {
	s.AddTool(mintSerialTool(), mintSerialHandler(svc))
	s.AddTool(newProjectTool(), newProjectHandler(svc))
	s.AddTool(addMapTool(), addMapHandler(svc))
	s.AddTool(archiveProjectsTool(), archiveProjectsHandler(svc))
	s.AddTool(crawlTool(), crawlHandler(svc))
	s.AddTool(createIndexTool(), createIndexHandler(svc))
}

// --- mint_serial ---

func mintSerialTool() mcp.Tool {
	return mcp.NewTool("mint_serial",
		mcp.WithDescription("Mint serials. Without an existing serial a new base serial is taken from the counter; with one, the following artifact serials are returned."),
		mcp.WithString("existing",
			mcp.Description("Serial to continue from (e.g. 20251001-0003)"),
		),
		mcp.WithNumber("quantity",
			mcp.Description("Number of serials to mint"),
			mcp.DefaultNumber(1),
		),
	)
}

func mintSerialHandler(svc *app.Services) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := svc.MintSerial(req.GetString("existing", ""), req.GetInt("quantity", 1))
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(svc, "mint", err)
		}
		return mcp.NewToolResultText(strings.Join(result.Serials, "\n")), nil
	}
}

// --- new_project ---

func newProjectTool() mcp.Tool {
	return mcp.NewTool("new_project",
		mcp.WithDescription("Create a project folder from a template, record its serial in the catalog and name the elements of its first artifact."),
		mcp.WithString("description",
			mcp.Description("Project description, letters and spaces only"),
			mcp.Required(),
		),
		mcp.WithString("name",
			mcp.Description("Short project name without spaces, used in folder and file names"),
			mcp.Required(),
		),
		mcp.WithString("template",
			mcp.Description("Template size, e.g. P_11x17"),
			mcp.Required(),
		),
		mcp.WithBoolean("archive",
			mcp.Description("Archive the projects of previous years first"),
		),
	)
}

func newProjectHandler(svc *app.Services) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := svc.NewProject(
			req.GetString("description", ""),
			req.GetString("name", ""),
			req.GetString("template", ""),
		)
		cmd.ArchivePrevious = req.GetBool("archive", false)

		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(svc, "new-project", err)
		}
		return mcp.NewToolResultText(fmt.Sprintf("%s\n%s", result.Message, result.Project.ArtifactPath)), nil
	}
}

// --- add_map ---

func addMapTool() mcp.Tool {
	return mcp.NewTool("add_map",
		mcp.WithDescription("Add artifacts to a project folder by cloning an artifact or copying a layout template. New serials continue from the highest serial in the folder."),
		mcp.WithString("directory",
			mcp.Description("Project folder"),
			mcp.Required(),
		),
		mcp.WithString("filename",
			mcp.Description("Artifact to clone. Defaults to the artifact with the highest serial."),
		),
		mcp.WithString("mode",
			mcp.Description("clone or scratch"),
			mcp.Enum("clone", "scratch"),
			mcp.DefaultString("clone"),
		),
		mcp.WithNumber("quantity",
			mcp.Description("Number of artifacts to add"),
			mcp.DefaultNumber(1),
		),
		mcp.WithString("template",
			mcp.Description("Layout template size, scratch mode only"),
		),
	)
}

func addMapHandler(svc *app.Services) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		mode, err := application.ParseAddMode(req.GetString("mode", "clone"))
		if err != nil {
			return toolError(svc, "add-map", err)
		}

		cmd := svc.AddMap(
			req.GetString("directory", ""),
			req.GetString("filename", ""),
			mode,
			req.GetInt("quantity", 1),
			req.GetString("template", ""),
		)
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(svc, "add-map", err)
		}
		return mcp.NewToolResultText(result.Message + "\n" + strings.Join(result.Paths, "\n")), nil
	}
}

// --- archive_projects ---

func archiveProjectsTool() mcp.Tool {
	return mcp.NewTool("archive_projects",
		mcp.WithDescription("Move the project folders of previous years into the archive."),
	)
}

func archiveProjectsHandler(svc *app.Services) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := svc.ArchiveProjects().Execute(ctx)
		if err != nil {
			return toolError(svc, "archive", err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- crawl ---

func crawlTool() mcp.Tool {
	return mcp.NewTool("crawl",
		mcp.WithDescription("Walk a folder for files with an extension and write their metadata to Catalog.csv in that folder."),
		mcp.WithString("directory",
			mcp.Description("Folder to crawl"),
			mcp.Required(),
		),
		mcp.WithString("extension",
			mcp.Description("File extension, e.g. .aprx"),
			mcp.DefaultString(".aprx"),
		),
		mcp.WithBoolean("persist",
			mcp.Description("Also record the files in the metadata store"),
		),
	)
}

func crawlHandler(svc *app.Services) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd, err := svc.Crawl(ctx,
			req.GetString("directory", ""),
			req.GetString("extension", svc.Config.Extension),
			req.GetBool("persist", false),
		)
		if err != nil {
			return toolError(svc, "crawl", err)
		}
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(svc, "crawl", err)
		}
		return mcp.NewToolResultText(result.Message + "\n" + result.Output), nil
	}
}

// --- create_index ---

func createIndexTool() mcp.Tool {
	return mcp.NewTool("create_index",
		mcp.WithDescription("Crawl a folder for artifacts, extract their maps, layers and layouts and join them with the file metadata."),
		mcp.WithString("directory",
			mcp.Description("Folder to index"),
			mcp.Required(),
		),
		mcp.WithBoolean("persist",
			mcp.Description("Also record the files in the metadata store"),
		),
	)
}

func createIndexHandler(svc *app.Services) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd, err := svc.CreateIndex(ctx, req.GetString("directory", ""), req.GetBool("persist", false))
		if err != nil {
			return toolError(svc, "index", err)
		}
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(svc, "index", err)
		}

		lines := []string{result.Message, result.Catalog}
		for _, path := range result.Joined {
			lines = append(lines, path)
		}
		sort.Strings(lines[2:])
		return mcp.NewToolResultText(strings.Join(lines, "\n")), nil
	}
}
