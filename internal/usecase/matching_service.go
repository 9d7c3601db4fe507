package usecase

import (
	"strings"

	"github.com/Escudopt/rork-healthsnap-sub000/internal/domain"
	"github.com/rs/zerolog/log"
)

// minSubstringQueryLength keeps very short names from matching half the table
const minSubstringQueryLength = 3

// MatchKind tells which lookup step produced a match
type MatchKind string

const (
	MatchNone      MatchKind = ""
	MatchExact     MatchKind = "exact"
	MatchSubstring MatchKind = "substring"
	MatchKeyword   MatchKind = "keyword"
)

// keywordAlias maps a keyword found in a food name to a canonical table key
type keywordAlias struct {
	keyword string
	key     string
}

// keywordAliases is evaluated top to bottom; the first keyword present in the name wins.
// Multi-word and more specific keywords must precede the generic ones they contain.
// English aliases cover the labels returned by the vision providers.
var keywordAliases = []keywordAlias{
	// Specific English phrases first
	{"fried chicken", "frango frito"},
	{"chicken stroganoff", "strogonoff de frango"},
	{"fried egg", "ovo frito"},
	{"boiled egg", "ovo cozido"},
	{"brown rice", "arroz integral cozido"},
	{"white rice", "arroz branco cozido"},
	{"black beans", "feijao preto cozido"},
	{"ground beef", "carne moida refogada"},
	{"french fries", "batata frita"},
	{"mashed potato", "pure de batata"},
	{"cheese bread", "pao de queijo"},
	{"whole wheat bread", "pao integral"},
	{"orange juice", "suco de laranja"},

	// Portuguese keywords
	{"frango", "frango grelhado"},
	{"galinha", "frango grelhado"},
	{"arroz", "arroz branco cozido"},
	{"feijao", "feijao carioca cozido"},
	{"bife", "carne bovina grelhada"},
	{"carne", "carne bovina grelhada"},
	{"alcatra", "carne bovina grelhada"},
	{"linguica", "linguica grelhada"},
	{"peixe", "tilapia grelhada"},
	{"ovo", "ovo cozido"},
	{"aipim", "mandioca cozida"},
	{"macaxeira", "mandioca cozida"},
	{"espaguete", "macarrao cozido"},
	{"massa", "macarrao cozido"},
	{"pao", "pao frances"},
	{"salada", "salada verde"},
	{"queijo", "queijo minas frescal"},
	{"mussarela", "queijo mussarela"},
	{"suco", "suco de laranja"},
	{"leite", "leite integral"},
	{"iogurte", "iogurte natural"},
	{"pizza", "pizza de mussarela"},

	// English keywords
	{"chicken", "frango grelhado"},
	{"rice", "arroz branco cozido"},
	{"bean", "feijao carioca cozido"},
	{"steak", "carne bovina grelhada"},
	{"beef", "carne bovina grelhada"},
	{"meat", "carne bovina grelhada"},
	{"sausage", "linguica grelhada"},
	{"salmon", "salmao grelhado"},
	{"fish", "tilapia grelhada"},
	{"egg", "ovo cozido"},
	{"fries", "batata frita"},
	{"potato", "batata cozida"},
	{"cassava", "mandioca cozida"},
	{"pasta", "macarrao cozido"},
	{"spaghetti", "macarrao cozido"},
	{"noodle", "macarrao cozido"},
	{"macaroni", "macarrao cozido"},
	{"lasagna", "lasanha"},
	{"bread", "pao frances"},
	{"salad", "salada verde"},
	{"lettuce", "alface"},
	{"tomato", "tomate"},
	{"broccoli", "brocolis cozido"},
	{"carrot", "cenoura cozida"},
	{"zucchini", "abobrinha refogada"},
	{"apple", "maca"},
	{"orange", "laranja"},
	{"papaya", "mamao papaia"},
	{"mango", "manga"},
	{"avocado", "abacate"},
	{"mozzarella", "queijo mussarela"},
	{"cheese", "queijo minas frescal"},
	{"milk", "leite integral"},
	{"yogurt", "iogurte natural"},
	{"coffee", "cafe"},
	{"juice", "suco de laranja"},
	{"burger", "hamburguer"},
	{"hamburger", "hamburguer"},
	{"couscous", "cuscuz de milho"},
}

// MatchConfig holds configuration for the matching service
type MatchConfig struct {
	EnableDebugLogging bool
}

// MatchingService resolves free-form food names to entries of the static nutrition table.
// Lookup order is exact key, substring in either direction, then keyword alias. No fuzzy matching.
type MatchingService struct {
	table              domain.NutritionTable
	preprocessor       *QueryPreprocessor
	enableDebugLogging bool
}

// NewMatchingService creates a new matching service over table
func NewMatchingService(table domain.NutritionTable, config MatchConfig) *MatchingService {
	return &MatchingService{
		table:              table,
		preprocessor:       NewQueryPreprocessor(config.EnableDebugLogging),
		enableDebugLogging: config.EnableDebugLogging,
	}
}

// FindEntry returns the table entry for name, or false when nothing matches.
// Empty, whitespace-only and over-long names never match.
func (s *MatchingService) FindEntry(name string) (domain.NutritionEntry, bool) {
	entry, kind := s.Match(name)
	return entry, kind != MatchNone
}

// Match is FindEntry plus the lookup step that produced the match
func (s *MatchingService) Match(name string) (domain.NutritionEntry, MatchKind) {
	query, ok := s.preprocessor.PreprocessQuery(name)
	if !ok {
		return domain.NutritionEntry{}, MatchNone
	}

	entry, kind := s.match(query)

	if s.enableDebugLogging {
		log.Debug().
			Str("component", "match").
			Str("query", query).
			Str("kind", string(kind)).
			Str("entry", entry.Name).
			Msg("nutrition table lookup")
	}

	return entry, kind
}

func (s *MatchingService) match(query string) (domain.NutritionEntry, MatchKind) {
	// (a) exact key
	if entry, ok := s.table.Lookup(query); ok {
		return entry, MatchExact
	}

	// (b) substring in either direction, in table order
	if len(query) >= minSubstringQueryLength {
		for _, key := range s.table.Keys() {
			if strings.Contains(key, query) || containsPhrase(query, key) {
				entry, _ := s.table.Lookup(key)
				return entry, MatchSubstring
			}
		}
	}

	// (c) keyword alias
	for _, alias := range keywordAliases {
		if !containsPhrase(query, alias.keyword) {
			continue
		}
		if entry, ok := s.table.Lookup(alias.key); ok {
			return entry, MatchKeyword
		}
	}

	return domain.NutritionEntry{}, MatchNone
}
