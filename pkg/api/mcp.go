package api

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/hazyhaar/titlematch/pkg/kit"
)

// NewMCPServer returns an MCP server exposing the titlematch tools.
func NewMCPServer(m Matcher, logger *slog.Logger, version string) *server.MCPServer {
	srv := server.NewMCPServer("titlematch", version, server.WithToolCapabilities(false))
	RegisterMCPTools(srv, m, logger)
	return srv
}

// RegisterMCPTools registers the three titlematch MCP tools on the server.
func RegisterMCPTools(srv *server.MCPServer, m Matcher, logger *slog.Logger) {
	eps := NewEndpoints(m, logger)

	kit.RegisterMCPTool(srv, mcp.NewTool("normalize_title",
		mcp.WithDescription("Map a free-form job title to the closest canonical title. Returns an empty title when nothing scores above the threshold."),
		mcp.WithString("title", mcp.Required(), mcp.Description("The job title to normalize")),
		mcp.WithBoolean("explain", mcp.Description("Include the best scoring candidates with per-metric scores")),
	), eps.NormalizeTitle, decodeNormalizeTitle)

	kit.RegisterMCPTool(srv, mcp.NewTool("normalize_batch",
		mcp.WithDescription(fmt.Sprintf("Normalize up to %d job titles at once.", MaxBatch)),
		mcp.WithArray("titles", mcp.Required(),
			mcp.Description("Job titles to normalize, one per element"),
			mcp.Items(map[string]any{"type": "string"}),
		),
	), eps.NormalizeBatch, decodeNormalizeBatch)

	kit.RegisterMCPTool(srv, mcp.NewTool("list_titles",
		mcp.WithDescription("List the canonical titles, ignorable prefixes and match threshold."),
	), eps.ListTitles, func(mcp.CallToolRequest) (any, error) { return nil, nil })
}

func decodeNormalizeTitle(req mcp.CallToolRequest) (any, error) {
	args := req.GetArguments()
	title, _ := args["title"].(string)
	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("title is required")
	}
	explain, _ := args["explain"].(bool)
	return &normalizeReq{Title: title, Explain: explain}, nil
}

func decodeNormalizeBatch(req mcp.CallToolRequest) (any, error) {
	args := req.GetArguments()
	var raw []string
	switch v := args["titles"].(type) {
	case []string:
		raw = v
	case []any:
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("titles[%d] is not a string", i)
			}
			raw = append(raw, s)
		}
	case nil:
	default:
		return nil, fmt.Errorf("titles must be an array of strings")
	}

	// Titles may contain commas, so elements are never split.
	var titles []string
	for _, t := range raw {
		if strings.TrimSpace(t) != "" {
			titles = append(titles, t)
		}
	}
	return &normalizeBatchReq{Titles: titles}, nil
}
