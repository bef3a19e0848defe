package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// CompareHandler handles the comparison tools.
type CompareHandler struct {
	service *Service
}

// NewCompareHandler creates a new compare handler.
func NewCompareHandler(service *Service) *CompareHandler {
	return &CompareHandler{
		service: service,
	}
}

// HandleAdd adds a language to the comparison, evicting the oldest one when
// two are already selected.
func (h *CompareHandler) HandleAdd(ctx context.Context, req *mcp.CallToolRequest, args NameArgument) (*mcp.CallToolResult, any, error) {
	if strings.TrimSpace(args.Name) == "" {
		return errorResult("Name cannot be empty"), nil, nil
	}

	cmp := h.service.Comparison()
	cmp.Add(args.Name)
	return textResult(h.status(cmp)), nil, nil
}

// HandleRemove removes a language from the comparison.
func (h *CompareHandler) HandleRemove(ctx context.Context, req *mcp.CallToolRequest, args NameArgument) (*mcp.CallToolResult, any, error) {
	cmp := h.service.Comparison()
	cmp.Remove(args.Name)
	return textResult(h.status(cmp)), nil, nil
}

// HandleCompare shows both compared languages side by side.
func (h *CompareHandler) HandleCompare(ctx context.Context, req *mcp.CallToolRequest, args EmptyArgument) (*mcp.CallToolResult, any, error) {
	columns, err := h.service.Compare(ctx)
	if errors.Is(err, ErrNeedTwo) {
		return textResult(h.status(h.service.Comparison())), nil, nil
	}
	if err != nil {
		return errorResult("Comparison failed: %s", err), nil, nil
	}

	return textResult(FormatComparison(columns)), nil, nil
}

// FormatComparison renders compared languages one after another. A column
// that failed to load shows its error in place of the record.
func FormatComparison(columns []CompareColumn) string {
	var sb strings.Builder
	for i, col := range columns {
		if i > 0 {
			sb.WriteString("\n---\n\n")
		}
		if col.Err != nil {
			msg := col.Err.Error()
			if errors.Is(col.Err, ErrLanguageNotFound) {
				msg = ErrLanguageNotFound.Error()
			}
			sb.WriteString(fmt.Sprintf("# %s\n\n%s\n", col.ID, msg))
			continue
		}
		sb.WriteString(FormatLanguage(col.Language))
	}
	return sb.String()
}

func (h *CompareHandler) status(cmp *Comparison) string {
	ids := cmp.IDs()
	var sb strings.Builder
	if len(ids) == 0 {
		sb.WriteString("No languages selected for comparison\n")
	} else {
		sb.WriteString(fmt.Sprintf("Selected for comparison (%d/%d): %s\n", len(ids), MaxCompared, strings.Join(ids, ", ")))
	}
	if prompt := cmp.Prompt(); prompt != "" {
		sb.WriteString(prompt + "\n")
	} else {
		sb.WriteString("Ready to compare\n")
	}
	return sb.String()
}

// RegisterCompareTools registers the comparison tools with an MCP server.
func RegisterCompareTools(server *mcp.Server, service *Service) {
	h := NewCompareHandler(service)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "compare_add",
		Description: "Add a language to the side by side comparison (keeps the two most recent)",
	}, h.HandleAdd)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "compare_remove",
		Description: "Remove a language from the comparison",
	}, h.HandleRemove)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "compare_languages",
		Description: "Show the two selected languages side by side",
	}, h.HandleCompare)
}
