package usecase

import (
	"strings"
	"testing"

	"github.com/Escudopt/rork-healthsnap-sub000/internal/domain"
	"github.com/Escudopt/rork-healthsnap-sub000/internal/infrastructure/nutritiondb"
)

func newTestMatcher() *MatchingService {
	return NewMatchingService(nutritiondb.Default(), MatchConfig{})
}

func TestMatch(t *testing.T) {
	svc := newTestMatcher()

	tests := []struct {
		name      string
		input     string
		wantEntry string
		wantKind  MatchKind
	}{
		{"exact match with accents and case", "Arroz Branco Cozido", "arroz branco cozido", MatchExact},
		{"exact match after diacritics", "Feijão Preto Cozido", "feijao preto cozido", MatchExact},
		{"exact match pao frances", "Pão Francês", "pao frances", MatchExact},
		{"key contains query", "arroz", "arroz branco cozido", MatchSubstring},
		{"key contains query keeps table order", "feijao", "feijao carioca cozido", MatchSubstring},
		{"query contains key", "pao de queijo mineiro", "pao de queijo", MatchSubstring},
		{"query contains key with extra words", "frango grelhado com ervas", "frango grelhado", MatchSubstring},
		{"portuguese keyword", "peito de frango assado", "frango grelhado", MatchKeyword},
		{"english label", "Chicken", "frango grelhado", MatchKeyword},
		{"english plural", "Scrambled Eggs", "ovo cozido", MatchKeyword},
		{"specific phrase before generic keyword", "fried chicken", "frango frito", MatchKeyword},
		{"macaroni is pasta not apple", "macaroni", "macarrao cozido", MatchKeyword},
		{"provider label with underscore", "french_fries", "batata frita", MatchKeyword},
		{"juice phrase before fruit", "orange juice", "suco de laranja", MatchKeyword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry, kind := svc.Match(tt.input)
			if kind != tt.wantKind {
				t.Errorf("Match(%q) kind = %q, want %q", tt.input, kind, tt.wantKind)
			}
			if entry.Name != tt.wantEntry {
				t.Errorf("Match(%q) entry = %q, want %q", tt.input, entry.Name, tt.wantEntry)
			}
		})
	}
}

func TestFindEntry_NoMatch(t *testing.T) {
	svc := newTestMatcher()

	inputs := []string{
		"",
		"   ",
		"\t\n",
		strings.Repeat("arroz ", 40),
		"xyzzy",
		"ab",
	}

	for _, input := range inputs {
		if entry, ok := svc.FindEntry(input); ok {
			t.Errorf("FindEntry(%q) = %q, want no match", input, entry.Name)
		}
	}
}

func TestFindEntry_ShortQuerySkipsSubstring(t *testing.T) {
	table := nutritiondb.New([]domain.NutritionEntry{{Name: "uva", Calories: 69}})
	svc := NewMatchingService(table, MatchConfig{})

	if _, ok := svc.FindEntry("uv"); ok {
		t.Error("FindEntry(\"uv\") matched, want no match for two-letter query")
	}
	if entry, ok := svc.FindEntry("uva"); !ok || entry.Calories != 69 {
		t.Errorf("FindEntry(\"uva\") = %+v, %v; want exact match", entry, ok)
	}
}

func TestKeywordAliasesPointAtTableKeys(t *testing.T) {
	table := nutritiondb.Default()
	for _, alias := range keywordAliases {
		if _, ok := table.Lookup(alias.key); !ok {
			t.Errorf("alias %q points at missing key %q", alias.keyword, alias.key)
		}
	}
}
