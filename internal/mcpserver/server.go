// Package mcpserver exposes the template library and report rendering as
// MCP tools over stdio, so assistants can draft operative notes with the
// same templates the editor uses.
package mcpserver

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/jwulff/medscribe/internal/db"
	"github.com/jwulff/medscribe/internal/export"
	"github.com/jwulff/medscribe/internal/templates"
	"github.com/jwulff/medscribe/internal/transcript"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"
)

// Server holds the state behind the tools.
type Server struct {
	lib     *templates.Library
	archive *db.Store // optional
	log     zerolog.Logger
}

// New returns a tool server. archive may be nil, in which case get_report
// is not registered.
func New(lib *templates.Library, archive *db.Store, log zerolog.Logger) *Server {
	return &Server{lib: lib, archive: archive, log: log}
}

// MCPServer builds the MCP server with every tool registered.
func (s *Server) MCPServer(version string) *server.MCPServer {
	srv := server.NewMCPServer("medscribe", version, server.WithToolCapabilities(false))

	srv.AddTool(mcp.NewTool("list_templates",
		mcp.WithDescription("List operative-note templates with their variables"),
	), s.listTemplates)

	srv.AddTool(mcp.NewTool("render_template",
		mcp.WithDescription("Render a template. Unbound variables become [name not provided]."),
		mcp.WithString("key", mcp.Required(), mcp.Description("Template key, e.g. appendectomy")),
		mcp.WithObject("bindings", mcp.Description("Variable values keyed by variable name")),
	), s.renderTemplate)

	sectionArgs := []mcp.ToolOption{
		mcp.WithDescription("Render a medical transcription report from section texts"),
		mcp.WithString("format", mcp.Description("text (default) or html"), mcp.Enum("text", "html")),
	}
	for _, sec := range transcript.All() {
		sectionArgs = append(sectionArgs, mcp.WithString(sec.Key(), mcp.Description(sec.Heading()+" text")))
	}
	srv.AddTool(mcp.NewTool("render_report", sectionArgs...), s.renderReport)

	if s.archive != nil {
		srv.AddTool(mcp.NewTool("get_report",
			mcp.WithDescription("Fetch an archived report as text"),
			mcp.WithString("id", mcp.Description("Report ID; omit for the latest report")),
		), s.getReport)
	}

	return srv
}

// ServeStdio blocks serving the tools on stdin/stdout.
func (s *Server) ServeStdio(version string) error {
	s.log.Info().Int("templates", s.lib.Len()).Msg("serving mcp on stdio")
	return server.ServeStdio(s.MCPServer(version))
}

func (s *Server) listTemplates(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var b strings.Builder
	for _, t := range s.lib.List() {
		fmt.Fprintf(&b, "%s: %s", t.Key, t.Name)
		if len(t.Variables) > 0 {
			fmt.Fprintf(&b, " (%s)", strings.Join(t.Variables, ", "))
		}
		b.WriteString("\n")
	}
	if b.Len() == 0 {
		return mcp.NewToolResultText("No templates."), nil
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (s *Server) renderTemplate(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	key, err := req.RequireString("key")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	t, err := s.lib.Get(key)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	bindings := map[string]string{}
	if raw, ok := req.GetArguments()["bindings"].(map[string]any); ok {
		for name, v := range raw {
			bindings[name] = fmt.Sprint(v)
		}
	}
	var unknown []string
	for name := range bindings {
		if !slices.Contains(t.Variables, name) {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		s.log.Debug().Strs("unknown", unknown).Str("template", key).Msg("ignoring bindings")
	}
	return mcp.NewToolResultText(t.Render(bindings)), nil
}

// sectionArgs adapts tool arguments to export.Document.
type sectionArgs struct {
	req mcp.CallToolRequest
}

func (a sectionArgs) Get(sec transcript.Section) string {
	return a.req.GetString(sec.Key(), "")
}

func (s *Server) renderReport(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	doc := sectionArgs{req: req}
	switch format := req.GetString("format", "text"); format {
	case "text", "":
		return mcp.NewToolResultText(export.Text(doc)), nil
	case "html":
		html, err := export.HTML(doc)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(string(html)), nil
	default:
		return mcp.NewToolResultError(fmt.Sprintf("unknown format %q", format)), nil
	}
}

func (s *Server) getReport(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var (
		rep *db.Report
		err error
	)
	if id := req.GetString("id", ""); id != "" {
		rep, err = s.archive.Report(id)
	} else {
		rep, err = s.archive.LatestReport()
	}
	if err != nil {
		return nil, fmt.Errorf("get report: %w", err)
	}
	if rep == nil {
		return mcp.NewToolResultError("report not found"), nil
	}
	return mcp.NewToolResultText(export.Text(rep)), nil
}
