package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// FacetArgument names a facet and optionally narrows its options.
type FacetArgument struct {
	Facet string `json:"facet" jsonschema:"Facet name (e.g. paradigm, category, year-created, computational-class)"`
	Query string `json:"query,omitempty" jsonschema:"Only list options whose label matches this text"`
}

// FilterArgument selects or deselects one facet value.
type FilterArgument struct {
	Facet string `json:"facet" jsonschema:"Facet name (e.g. paradigm, category, year-created)"`
	Value string `json:"value" jsonschema:"Option value or label (e.g. imperative, Turing_complete)"`
}

// SearchTermArgument sets the free-text search term.
type SearchTermArgument struct {
	Term string `json:"term" jsonschema:"Free-text search term"`
}

// EmptyArgument is used by tools that take no parameters.
type EmptyArgument struct{}

// FilterHandler handles the facet and filter selection tools.
type FilterHandler struct {
	service *Service
}

// NewFilterHandler creates a new filter handler.
func NewFilterHandler(service *Service) *FilterHandler {
	return &FilterHandler{
		service: service,
	}
}

// HandleListFacets lists every facet with its endpoint and query key.
func (h *FilterHandler) HandleListFacets(ctx context.Context, req *mcp.CallToolRequest, args EmptyArgument) (*mcp.CallToolResult, any, error) {
	var sb strings.Builder
	sb.WriteString("Available facets:\n\n")
	for _, f := range AllFacets() {
		sb.WriteString(fmt.Sprintf("- %s (facet: %s, query key: %s)\n", f, f.Endpoint(), f.QueryKey()))
	}
	return textResult(sb.String()), nil, nil
}

// HandleFacetOptions lists the options of one facet.
func (h *FilterHandler) HandleFacetOptions(ctx context.Context, req *mcp.CallToolRequest, args FacetArgument) (*mcp.CallToolResult, any, error) {
	if !h.service.IsReady() {
		return errorResult("Facet options are still being loaded. Please try again later."), nil, nil
	}

	facet, err := ParseFacet(args.Facet)
	if err != nil {
		return errorResult("%s", err), nil, nil
	}

	options, err := h.service.Options(ctx, facet)
	if err != nil {
		return errorResult("%s", ErrOptionsNotFound), nil, nil
	}

	if q := strings.TrimSpace(args.Query); q != "" {
		options, err = h.service.Suggest(facet, q)
		if err != nil {
			return errorResult("Option lookup failed: %s", err), nil, nil
		}
		if len(options) == 0 {
			return textResult(fmt.Sprintf("No %s options match '%s'", facet, q)), nil, nil
		}
	}

	selected := h.service.Selection().Values(facet)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s options (%d):\n\n", facet, len(options)))
	for _, opt := range options {
		mark := " "
		for _, v := range selected {
			if v == opt.Value {
				mark = "x"
				break
			}
		}
		sb.WriteString(fmt.Sprintf("[%s] %s (value: %s)\n", mark, opt.Label, opt.Value))
	}
	return textResult(sb.String()), nil, nil
}

// HandleSelect adds a value to a facet's selection.
func (h *FilterHandler) HandleSelect(ctx context.Context, req *mcp.CallToolRequest, args FilterArgument) (*mcp.CallToolResult, any, error) {
	facet, value, resolved, errResult := h.resolve(ctx, args)
	if errResult != nil {
		return errResult, nil, nil
	}

	if !h.service.Selection().Select(facet, value.Value) {
		return textResult(fmt.Sprintf("%s '%s' is already selected", facet, value.Label)), nil, nil
	}

	text := fmt.Sprintf("Selected %s '%s'\nQuery: %s", facet, value.Label, h.service.Query())
	if !resolved {
		text += h.suggestions(facet, value.Value)
	}
	return textResult(text), nil, nil
}

// suggestions renders a note for a value that is not a listed option.
func (h *FilterHandler) suggestions(facet FacetName, value string) string {
	candidates, err := h.service.Suggest(facet, value)
	if err != nil || len(candidates) == 0 {
		return fmt.Sprintf("\nNote: '%s' is not a listed %s option", value, facet)
	}

	labels := make([]string, 0, len(candidates))
	for _, c := range candidates {
		labels = append(labels, c.Label)
	}
	return fmt.Sprintf("\nNote: '%s' is not a listed %s option. Similar options: %s", value, facet, strings.Join(labels, ", "))
}

// HandleDeselect removes a value from a facet's selection.
func (h *FilterHandler) HandleDeselect(ctx context.Context, req *mcp.CallToolRequest, args FilterArgument) (*mcp.CallToolResult, any, error) {
	facet, err := ParseFacet(args.Facet)
	if err != nil {
		return errorResult("%s", err), nil, nil
	}

	sel := h.service.Selection()
	input := strings.TrimSpace(args.Value)
	if sel.Deselect(facet, input) {
		return textResult(fmt.Sprintf("Removed %s '%s'\nQuery: %s", facet, input, h.service.Query())), nil, nil
	}

	// Fall back to matching the selected values by label.
	for _, v := range sel.Values(facet) {
		if label, err := OptionLabel(v); err == nil && strings.EqualFold(label, input) {
			sel.Deselect(facet, v)
			return textResult(fmt.Sprintf("Removed %s '%s'\nQuery: %s", facet, label, h.service.Query())), nil, nil
		}
	}
	return textResult(fmt.Sprintf("%s '%s' was not selected", facet, input)), nil, nil
}

// HandleSetSearchTerm replaces the free-text term.
func (h *FilterHandler) HandleSetSearchTerm(ctx context.Context, req *mcp.CallToolRequest, args SearchTermArgument) (*mcp.CallToolResult, any, error) {
	sel := h.service.Selection()
	sel.SetSearchTerm(args.Term)
	if sel.SearchTerm() == "" {
		return textResult("Search term cleared"), nil, nil
	}
	return textResult(fmt.Sprintf("Search term set to '%s'\nQuery: %s", sel.SearchTerm(), h.service.Query())), nil, nil
}

// HandleClearSearchTerm removes the free-text term.
func (h *FilterHandler) HandleClearSearchTerm(ctx context.Context, req *mcp.CallToolRequest, args EmptyArgument) (*mcp.CallToolResult, any, error) {
	h.service.Selection().ClearSearchTerm()
	return textResult("Search term cleared"), nil, nil
}

// HandleClearFilters removes every selected value and the search term.
func (h *FilterHandler) HandleClearFilters(ctx context.Context, req *mcp.CallToolRequest, args EmptyArgument) (*mcp.CallToolResult, any, error) {
	h.service.Selection().Clear()
	return textResult("All filters cleared"), nil, nil
}

// HandleShowFilters lists the selected values, the term and the query.
func (h *FilterHandler) HandleShowFilters(ctx context.Context, req *mcp.CallToolRequest, args EmptyArgument) (*mcp.CallToolResult, any, error) {
	sel := h.service.Selection()
	if sel.IsEmpty() {
		return textResult("No filters selected"), nil, nil
	}

	var sb strings.Builder
	sb.WriteString("Selected filters:\n\n")
	for _, entry := range sel.Entries() {
		label, err := OptionLabel(entry.Value)
		if err != nil {
			label = entry.Value
		}
		sb.WriteString(fmt.Sprintf("- %s: %s\n", entry.Facet, label))
	}
	if term := sel.SearchTerm(); term != "" {
		sb.WriteString(fmt.Sprintf("- Search term: %s\n", term))
	}
	sb.WriteString(fmt.Sprintf("\nQuery: %s\n", h.service.Query()))
	return textResult(sb.String()), nil, nil
}

// resolve parses the facet and maps the typed value to an option. An
// unlisted value is passed through unchanged with resolved set to false.
func (h *FilterHandler) resolve(ctx context.Context, args FilterArgument) (facet FacetName, opt Option, resolved bool, errResult *mcp.CallToolResult) {
	facet, err := ParseFacet(args.Facet)
	if err != nil {
		return 0, Option{}, false, errorResult("%s", err)
	}
	if strings.TrimSpace(args.Value) == "" {
		return 0, Option{}, false, errorResult("Value cannot be empty")
	}

	opt, resolved = h.service.ResolveOption(ctx, facet, args.Value)
	return facet, opt, resolved, nil
}

// RegisterFilterTools registers the facet and filter tools with an MCP server.
func RegisterFilterTools(server *mcp.Server, service *Service) {
	h := NewFilterHandler(service)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_facets",
		Description: "List the facets languages can be filtered by",
	}, h.HandleListFacets)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "facet_options",
		Description: "List the selectable options of a facet, marking the selected ones",
	}, h.HandleFacetOptions)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "select_filter",
		Description: "Add a facet value to the search filters",
	}, h.HandleSelect)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "deselect_filter",
		Description: "Remove a facet value from the search filters",
	}, h.HandleDeselect)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "set_search_term",
		Description: "Set the free-text search term",
	}, h.HandleSetSearchTerm)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "clear_search_term",
		Description: "Remove the free-text search term",
	}, h.HandleClearSearchTerm)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "clear_filters",
		Description: "Remove every selected facet value and the search term",
	}, h.HandleClearFilters)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "show_filters",
		Description: "Show the selected filters and the encoded search query",
	}, h.HandleShowFilters)
}
