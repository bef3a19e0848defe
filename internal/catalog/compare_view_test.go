package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/Vladimir-SS/ELAn-Esoteric-Language-Explorer/internal/api"
	"github.com/Vladimir-SS/ELAn-Esoteric-Language-Explorer/internal/domain"
)

func TestCompareView_NeedsTwo(t *testing.T) {
	backend := NewFakeBackend()
	c := NewComparison()
	c.Add("A")

	columns, err := CompareView(context.Background(), backend, c)
	if !errors.Is(err, ErrNeedTwo) {
		t.Fatalf("Expected ErrNeedTwo, got %v", err)
	}
	if columns != nil {
		t.Errorf("Expected no columns, got %v", columns)
	}
	if len(backend.Calls()) != 0 {
		t.Error("Expected no fetch with fewer than two languages")
	}
}

func TestCompareView_FetchesBoth(t *testing.T) {
	backend := NewFakeBackend()
	backend.Records["Brainf***"] = domain.Language{Name: "Brainf***", YearCreated: "1993"}
	backend.Records["Ook!"] = domain.Language{Name: "Ook!"}

	c := NewComparison()
	c.Add("Brainf%2A%2A%2A")
	c.Add("Ook!")

	columns, err := CompareView(context.Background(), backend, c)
	if err != nil {
		t.Fatalf("CompareView failed: %v", err)
	}
	if len(columns) != 2 {
		t.Fatalf("Expected 2 columns, got %d", len(columns))
	}
	if columns[0].ID != "Brainf***" || columns[0].Language.YearCreated != "1993" {
		t.Errorf("Unexpected first column: %+v", columns[0])
	}
	if columns[1].ID != "Ook!" || columns[1].Err != nil {
		t.Errorf("Unexpected second column: %+v", columns[1])
	}

	// Decoded names reach the fetcher, which encodes them exactly once.
	for _, name := range backend.CallsTo(api.RouteLanguage) {
		if name != "Brainf***" && name != "Ook!" {
			t.Errorf("Unexpected fetch name %q", name)
		}
	}
}

func TestCompareView_ColumnFailureIsLocal(t *testing.T) {
	backend := NewFakeBackend()
	backend.Records["A"] = domain.Language{Name: "A"}

	c := NewComparison()
	c.Add("A")
	c.Add("Missing")

	columns, err := CompareView(context.Background(), backend, c)
	if err != nil {
		t.Fatalf("CompareView failed: %v", err)
	}
	if columns[0].Err != nil || columns[0].Language.Name != "A" {
		t.Errorf("Unexpected first column: %+v", columns[0])
	}
	if !errors.Is(columns[1].Err, ErrLanguageNotFound) {
		t.Errorf("Expected ErrLanguageNotFound, got %v", columns[1].Err)
	}
}

func TestFetchLanguage_ServerError(t *testing.T) {
	backend := NewFakeBackend()
	backend.Errs[api.RouteLanguage] = &api.StatusError{Route: api.RouteLanguage, StatusCode: 503}

	_, err := FetchLanguage(context.Background(), backend, "A")
	if err == nil || errors.Is(err, ErrLanguageNotFound) {
		t.Errorf("Expected a non not-found error, got %v", err)
	}
	if !api.IsStatusError(err) {
		t.Errorf("Expected wrapped status error, got %v", err)
	}
}
