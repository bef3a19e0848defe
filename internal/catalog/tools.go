package catalog

import (
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// RegisterTools registers every catalog tool with an MCP server.
func RegisterTools(server *mcp.Server, service *Service) {
	RegisterFilterTools(server, service)
	RegisterSearchTools(server, service)
	RegisterCompareTools(server, service)
}

// PageArgument selects a page of a result list.
type PageArgument struct {
	Page  int `json:"page,omitempty" jsonschema:"Page number, starting at 1 (default 1)"`
	Width int `json:"width,omitempty" jsonschema:"Viewport width in pixels; narrow viewports get compact navigation"`
}

// NameArgument names one language.
type NameArgument struct {
	Name string `json:"name" jsonschema:"Language identifier as listed in results (e.g. Brainfuck)"`
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}

func errorResult(format string, args ...any) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf(format, args...)},
		},
		IsError: true,
	}
}

// FormatPage renders a page of identifiers with its page list and controls.
func FormatPage(heading string, page Page[string], total int, policy NavPolicy) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s: %d languages (page %d of %d)\n\n", heading, total, page.Index, page.TotalPages))

	for i, id := range page.Items {
		sb.WriteString(fmt.Sprintf("%d. %s\n", page.Start+i+1, id))
	}

	sb.WriteString("\nPages: ")
	labels := make([]string, 0, len(page.Numbers))
	for _, item := range page.Numbers {
		label := item.String()
		if !item.Ellipsis && item.Number == page.Index {
			label = "[" + label + "]"
		}
		labels = append(labels, label)
	}
	sb.WriteString(strings.Join(labels, " "))
	sb.WriteString("\n")

	controls := NavControls(page.Index, page.TotalPages, policy)
	parts := make([]string, 0, len(controls))
	for _, c := range controls {
		if c.Disabled {
			parts = append(parts, "("+c.Label+")")
			continue
		}
		parts = append(parts, fmt.Sprintf("%s -> %d", c.Label, c.Target))
	}
	sb.WriteString("Navigation: ")
	sb.WriteString(strings.Join(parts, " | "))
	sb.WriteString("\n")

	return sb.String()
}
