// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes vault graph queries for LLM integration via stdio transport.
package mcpserver

import (
	"bytes"
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/vaultgraph/internal/noteservice"
	"github.com/starford/vaultgraph/internal/report"
)

// SyntaxURI identifies the link and tag syntax resource.
const SyntaxURI = "vaultgraph://syntax"

// Server wraps the MCP server with vault graph tools.
type Server struct {
	mcp *server.MCPServer
	svc *noteservice.Service
}

// New creates a new MCP server with all vault graph tools registered.
func New(svc *noteservice.Service, version string) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"vaultgraph",
		version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("vault_stats",
		mcp.WithDescription("Summary statistics: note, distinct tag, link, broken link and orphan counts."),
	), s.reportTool(report.Stats, ""))

	s.mcp.AddTool(mcp.NewTool("list_tags",
		mcp.WithDescription("Every tag in the vault with its occurrence count, sorted by tag."),
	), s.reportTool(report.Tags, ""))

	s.mcp.AddTool(mcp.NewTool("list_files",
		mcp.WithDescription("Every note with word, link and tag counts and its modification time."),
	), s.reportTool(report.Files, ""))

	s.mcp.AddTool(mcp.NewTool("list_links",
		mcp.WithDescription("Every [[wiki link]] with its resolved target and whether that target exists."),
	), s.reportTool(report.Links, ""))

	s.mcp.AddTool(mcp.NewTool("find_orphans",
		mcp.WithDescription("Notes with no outgoing links and no resolved incoming links."),
	), s.reportTool(report.Orphans, ""))

	s.mcp.AddTool(mcp.NewTool("notes_with_tag",
		mcp.WithDescription("Notes declaring a tag. Matching is exact and case-sensitive."),
		mcp.WithString("tag", mcp.Required(), mcp.Description("Tag without the leading # (e.g. project/active)")),
	), s.reportTool(report.Tag, "tag"))

	s.mcp.AddTool(mcp.NewTool("get_backlinks",
		mcp.WithDescription("Notes that link to the given note."),
		mcp.WithString("file", mcp.Required(), mcp.Description("Note path, partial path, or bare name; the .md extension is optional")),
	), s.reportTool(report.Backlinks, "file"))

	s.mcp.AddTool(mcp.NewTool("get_link_syntax",
		mcp.WithDescription("Describes which tag and wiki link forms the scanner recognises. "+
			"Read it before interpreting tag or link results."),
	), s.getLinkSyntax)

	s.mcp.AddResource(
		mcp.NewResource(SyntaxURI, "Tag and Link Syntax",
			mcp.WithResourceDescription("Tag and wiki link forms recognised when scanning the vault."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readSyntaxResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

// reportTool returns a handler producing the JSON report for kind. argName
// names the required string argument, if any.
func (s *Server) reportTool(kind report.Kind, argName string) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		r := report.Request{Kind: kind}
		if argName != "" {
			arg, err := req.RequireString(argName)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			r.Arg = arg
		}
		if err := r.Validate(); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		v, err := report.Build(ctx, s.svc, r)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		var buf bytes.Buffer
		if err := report.WriteJSON(&buf, v); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(buf.String()), nil
	}
}

func (s *Server) getLinkSyntax(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(SyntaxGuide), nil
}

func (s *Server) readSyntaxResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      SyntaxURI,
			MIMEType: "text/markdown",
			Text:     SyntaxGuide,
		},
	}, nil
}
