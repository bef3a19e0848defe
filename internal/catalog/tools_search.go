package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Vladimir-SS/ELAn-Esoteric-Language-Explorer/internal/domain"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// SearchHandler handles the search, listing and detail tools.
type SearchHandler struct {
	service *Service
}

// NewSearchHandler creates a new search handler.
func NewSearchHandler(service *Service) *SearchHandler {
	return &SearchHandler{
		service: service,
	}
}

// HandleSearch runs the selected filters and returns a page of results.
// With page > 1 and an unchanged selection it only paginates.
func (h *SearchHandler) HandleSearch(ctx context.Context, req *mcp.CallToolRequest, args PageArgument) (*mcp.CallToolResult, any, error) {
	current := h.service.Executor().Current()
	query := h.service.Query()

	if args.Page <= 1 || current.Status == StatusIdle || current.Query != query {
		outcome, err := h.service.Search(ctx)
		switch {
		case errors.Is(err, ErrStaleResponse):
			return errorResult("Search was superseded by a newer search"), nil, nil
		case err != nil:
			return errorResult("Error: %s", ErrLanguagesNotFound), nil, nil
		case outcome.Status == StatusEmpty:
			return textResult(fmt.Sprintf("No results found\nQuery: %s", query)), nil, nil
		}
	}

	state, page, policy := h.service.ResultsPage(args.Page, args.Width)
	if state.InFlight {
		return textResult(fmt.Sprintf("Search in progress, try again shortly\nQuery: %s", query)), nil, nil
	}
	return textResult(FormatPage("Search results", page, len(state.IDs), policy)), nil, nil
}

// HandleList returns a page of the unfiltered language listing.
func (h *SearchHandler) HandleList(ctx context.Context, req *mcp.CallToolRequest, args PageArgument) (*mcp.CallToolResult, any, error) {
	ids, err := h.service.AllLanguages(ctx)
	if err != nil {
		return errorResult("Error: %s", ErrLanguagesNotFound), nil, nil
	}
	if len(ids) == 0 {
		return textResult("No results found"), nil, nil
	}

	policy := h.service.ViewportPolicy(args.Width)
	page := h.service.Page(ids, args.Page, policy)
	return textResult(FormatPage("All languages", page, len(ids), policy)), nil, nil
}

// HandleDetails returns the full record of one language.
func (h *SearchHandler) HandleDetails(ctx context.Context, req *mcp.CallToolRequest, args NameArgument) (*mcp.CallToolResult, any, error) {
	if strings.TrimSpace(args.Name) == "" {
		return errorResult("Name cannot be empty"), nil, nil
	}

	lang, err := h.service.Language(ctx, args.Name)
	if err != nil {
		if errors.Is(err, ErrLanguageNotFound) {
			return errorResult("%s", ErrLanguageNotFound), nil, nil
		}
		return errorResult("Failed to load language: %s", err), nil, nil
	}
	return textResult(FormatLanguage(lang)), nil, nil
}

// HandleSimilar lists the languages similar to one language.
func (h *SearchHandler) HandleSimilar(ctx context.Context, req *mcp.CallToolRequest, args NameArgument) (*mcp.CallToolResult, any, error) {
	if strings.TrimSpace(args.Name) == "" {
		return errorResult("Name cannot be empty"), nil, nil
	}

	ids, err := h.service.Similar(ctx, args.Name)
	if err != nil {
		return errorResult("Failed to load similar languages: %s", err), nil, nil
	}
	if len(ids) == 0 {
		return textResult(fmt.Sprintf("No similar languages found for %s", DecodeIdentifier(args.Name))), nil, nil
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Languages similar to %s:\n\n", DecodeIdentifier(args.Name)))
	for _, id := range ids {
		sb.WriteString("- " + id + "\n")
	}
	return textResult(sb.String()), nil, nil
}

// FormatLanguage renders a language record as markdown. Multi-valued
// properties are shown by label; empty properties are skipped.
func FormatLanguage(lang domain.Language) string {
	var sb strings.Builder
	sb.WriteString("# " + lang.Name + "\n\n")
	if lang.ShortDescription != "" {
		sb.WriteString(lang.ShortDescription + "\n\n")
	}

	single := []struct{ name, value string }{
		{"Year Created", lang.YearCreated},
		{"Designed By", lang.DesignedBy},
		{"Alias", lang.Alias},
		{"Source", lang.URL},
	}
	for _, f := range single {
		if f.value != "" {
			sb.WriteString(fmt.Sprintf("**%s**: %s\n", f.name, f.value))
		}
	}

	multi := []struct {
		name   string
		values []string
	}{
		{"Paradigms", lang.Paradigms},
		{"Categories", lang.Categories},
		{"Memory System", lang.MemorySystem},
		{"Dimensions", lang.Dimensions},
		{"Computational Classes", lang.ComputationalClasses},
		{"Type Systems", lang.TypeSystems},
		{"File Extensions", lang.FileExtensions},
		{"Dialects", lang.Dialects},
		{"Influenced By", lang.InfluencedBy},
		{"Influenced", lang.Influenced},
	}
	for _, f := range multi {
		if len(f.values) == 0 {
			continue
		}
		labels := make([]string, 0, len(f.values))
		for _, v := range f.values {
			label, err := OptionLabel(v)
			if err != nil {
				label = v
			}
			labels = append(labels, label)
		}
		sb.WriteString(fmt.Sprintf("**%s**: %s\n", f.name, strings.Join(labels, ", ")))
	}
	return sb.String()
}

// RegisterSearchTools registers the search and detail tools with an MCP server.
func RegisterSearchTools(server *mcp.Server, service *Service) {
	h := NewSearchHandler(service)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "search_languages",
		Description: "Search languages matching the selected filters and search term, one page at a time",
	}, h.HandleSearch)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_languages",
		Description: "List all languages without filters, one page at a time",
	}, h.HandleList)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "language_details",
		Description: "Show the full record of a language",
	}, h.HandleDetails)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "similar_languages",
		Description: "List languages similar to a language",
	}, h.HandleSimilar)
}
