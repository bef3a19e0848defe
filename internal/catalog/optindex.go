package catalog

import (
	"fmt"
	"strings"
	"sync"

	"github.com/Vladimir-SS/ELAn-Esoteric-Language-Explorer/internal/domain"
	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/blevesearch/bleve/v2/search/query"
)

const (
	// MaxLookupResults caps the matches returned by OptionIndex.Lookup
	MaxLookupResults = 10

	// labelBoost favours whole word label matches over prefix and fuzzy ones
	labelBoost = 3.0
)

// OptionIndex is an in-memory full-text index over loaded facet options.
// It resolves loosely typed labels ("imperativ", "turing") to concrete
// option values.
type OptionIndex struct {
	index bleve.Index
	mu    sync.Mutex
	ids   map[FacetName][]string
}

// CreateOptionMapping creates the Bleve index mapping for option documents.
func CreateOptionMapping() mapping.IndexMapping {
	docMapping := bleve.NewDocumentMapping()

	// Facet - keyword, used as a filter
	facetField := bleve.NewTextFieldMapping()
	facetField.Analyzer = keyword.Name
	facetField.Store = true
	docMapping.AddFieldMappingsAt(domain.OptionFieldFacet, facetField)

	// Value - stored only
	valueField := bleve.NewTextFieldMapping()
	valueField.Index = false
	valueField.Store = true
	docMapping.AddFieldMappingsAt(domain.OptionFieldValue, valueField)

	// Label - analyzed for matching, stored for display
	labelField := bleve.NewTextFieldMapping()
	labelField.Analyzer = standard.Name
	labelField.Store = true
	docMapping.AddFieldMappingsAt(domain.OptionFieldLabel, labelField)

	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultMapping = docMapping
	indexMapping.DefaultAnalyzer = standard.Name

	return indexMapping
}

// NewOptionIndex creates an empty memory-only index.
func NewOptionIndex() (*OptionIndex, error) {
	index, err := bleve.NewMemOnly(CreateOptionMapping())
	if err != nil {
		return nil, fmt.Errorf("failed to create option index: %w", err)
	}
	return &OptionIndex{
		index: index,
		ids:   make(map[FacetName][]string),
	}, nil
}

// Replace indexes options as the complete option set of facet, dropping
// whatever was indexed for it before.
func (x *OptionIndex) Replace(facet FacetName, options []Option) error {
	x.mu.Lock()
	defer x.mu.Unlock()

	batch := x.index.NewBatch()
	for _, id := range x.ids[facet] {
		batch.Delete(id)
	}

	ids := make([]string, 0, len(options))
	for _, opt := range options {
		doc := domain.OptionDocument{
			Facet: facet.Endpoint(),
			Value: opt.Value,
			Label: opt.Label,
		}
		id := doc.Facet + "|" + doc.Value
		if err := batch.Index(id, doc); err != nil {
			return fmt.Errorf("failed to index option %q: %w", opt.Value, err)
		}
		ids = append(ids, id)
	}

	if err := x.index.Batch(batch); err != nil {
		return fmt.Errorf("batch index failed: %w", err)
	}
	x.ids[facet] = ids
	return nil
}

// Lookup returns the options of facet whose label best matches text, best
// match first. Whole words, word prefixes and single-typo spellings match.
func (x *OptionIndex) Lookup(facet FacetName, text string) ([]Option, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}

	req := bleve.NewSearchRequest(buildLookupQuery(facet, text))
	req.Size = MaxLookupResults
	req.Fields = []string{domain.OptionFieldValue, domain.OptionFieldLabel}

	res, err := x.index.Search(req)
	if err != nil {
		return nil, fmt.Errorf("option lookup failed: %w", err)
	}

	options := make([]Option, 0, len(res.Hits))
	for _, hit := range res.Hits {
		var opt Option
		if val, ok := hit.Fields[domain.OptionFieldValue].(string); ok {
			opt.Value = val
		}
		if val, ok := hit.Fields[domain.OptionFieldLabel].(string); ok {
			opt.Label = val
		}
		options = append(options, opt)
	}
	return options, nil
}

// buildLookupQuery restricts to facet and matches text against labels.
func buildLookupQuery(facet FacetName, text string) query.Query {
	facetQuery := bleve.NewTermQuery(facet.Endpoint())
	facetQuery.SetField(domain.OptionFieldFacet)

	lower := strings.ToLower(text)

	matchQuery := bleve.NewMatchQuery(text)
	matchQuery.SetField(domain.OptionFieldLabel)
	matchQuery.SetBoost(labelBoost)

	prefixQuery := bleve.NewPrefixQuery(lower)
	prefixQuery.SetField(domain.OptionFieldLabel)

	fuzzyQuery := bleve.NewFuzzyQuery(lower)
	fuzzyQuery.SetField(domain.OptionFieldLabel)
	fuzzyQuery.SetFuzziness(1)

	labelQuery := bleve.NewDisjunctionQuery(matchQuery, prefixQuery, fuzzyQuery)
	return bleve.NewConjunctionQuery(facetQuery, labelQuery)
}

// Close releases the index.
func (x *OptionIndex) Close() error {
	return x.index.Close()
}
