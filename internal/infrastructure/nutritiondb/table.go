// Package nutritiondb holds the static per-100g nutrition table for common Brazilian foods.
// Values are based on TACO (Tabela Brasileira de Composição de Alimentos).
package nutritiondb

import "github.com/Escudopt/rork-healthsnap-sub000/internal/domain"

// Keys are lowercase and free of diacritics. Order matters: substring lookups
// walk the table top to bottom, so more specific or more common variants come first.
var entries = []domain.NutritionEntry{
	// Grains and starches
	{Name: "arroz branco cozido", Calories: 130, Protein: 2.5, Carbs: 28.1, Fat: 0.2, Fiber: 1.6, Sodium: 1},
	{Name: "arroz integral cozido", Calories: 124, Protein: 2.6, Carbs: 25.8, Fat: 1.0, Fiber: 2.7, Sodium: 1},
	{Name: "feijao carioca cozido", Calories: 76, Protein: 4.8, Carbs: 13.6, Fat: 0.5, Fiber: 8.5, Sodium: 2},
	{Name: "feijao preto cozido", Calories: 77, Protein: 4.5, Carbs: 14.0, Fat: 0.5, Fiber: 8.4, Sodium: 2},
	{Name: "feijoada", Calories: 117, Protein: 8.7, Carbs: 11.6, Fat: 6.5, Fiber: 5.1, Sodium: 350},
	{Name: "macarrao cozido", Calories: 158, Protein: 5.8, Carbs: 30.9, Fat: 0.9, Fiber: 1.8, Sodium: 1},
	{Name: "lasanha", Calories: 166, Protein: 9.6, Carbs: 16.2, Fat: 6.9, Fiber: 1.2, Sodium: 390},
	{Name: "pao frances", Calories: 300, Protein: 8.0, Carbs: 58.6, Fat: 3.1, Fiber: 2.3, Sodium: 648},
	{Name: "pao integral", Calories: 253, Protein: 9.4, Carbs: 49.9, Fat: 3.7, Fiber: 6.9, Sodium: 506},
	{Name: "pao de queijo", Calories: 363, Protein: 5.1, Carbs: 34.2, Fat: 24.6, Fiber: 0.6, Sodium: 773},
	{Name: "tapioca", Calories: 242, Protein: 0.0, Carbs: 60.0, Fat: 0.1, Fiber: 0.6, Sodium: 1},
	{Name: "cuscuz de milho", Calories: 113, Protein: 2.2, Carbs: 25.3, Fat: 0.7, Fiber: 2.1, Sodium: 247},
	{Name: "farofa", Calories: 406, Protein: 2.1, Carbs: 80.3, Fat: 9.1, Fiber: 7.8, Sodium: 690},
	{Name: "batata cozida", Calories: 52, Protein: 1.2, Carbs: 11.9, Fat: 0.0, Fiber: 1.3, Sodium: 2},
	{Name: "batata frita", Calories: 267, Protein: 5.0, Carbs: 35.6, Fat: 13.1, Fiber: 8.1, Sodium: 4},
	{Name: "pure de batata", Calories: 88, Protein: 1.9, Carbs: 14.0, Fat: 2.9, Fiber: 1.1, Sodium: 280},
	{Name: "mandioca cozida", Calories: 125, Protein: 0.6, Carbs: 30.1, Fat: 0.3, Fiber: 1.6, Sodium: 1},

	// Meat, fish and eggs
	{Name: "frango grelhado", Calories: 159, Protein: 32.0, Carbs: 0.0, Fat: 2.5, Fiber: 0, Sodium: 50},
	{Name: "frango frito", Calories: 215, Protein: 28.0, Carbs: 4.0, Fat: 9.0, Fiber: 0, Sodium: 80},
	{Name: "strogonoff de frango", Calories: 157, Protein: 15.0, Carbs: 3.0, Fat: 9.4, Fiber: 0.3, Sodium: 450},
	{Name: "carne bovina grelhada", Calories: 219, Protein: 32.0, Carbs: 0.0, Fat: 9.0, Fiber: 0, Sodium: 55},
	{Name: "carne moida refogada", Calories: 212, Protein: 26.7, Carbs: 0.0, Fat: 10.9, Fiber: 0, Sodium: 60},
	{Name: "picanha grelhada", Calories: 289, Protein: 26.0, Carbs: 0.0, Fat: 20.0, Fiber: 0, Sodium: 60},
	{Name: "linguica grelhada", Calories: 296, Protein: 16.1, Carbs: 0.0, Fat: 25.3, Fiber: 0, Sodium: 1176},
	{Name: "tilapia grelhada", Calories: 128, Protein: 26.0, Carbs: 0.0, Fat: 2.7, Fiber: 0, Sodium: 52},
	{Name: "salmao grelhado", Calories: 229, Protein: 23.9, Carbs: 0.0, Fat: 14.0, Fiber: 0, Sodium: 60},
	{Name: "ovo cozido", Calories: 146, Protein: 13.3, Carbs: 0.6, Fat: 9.5, Fiber: 0, Sodium: 146},
	{Name: "ovo frito", Calories: 240, Protein: 15.6, Carbs: 1.2, Fat: 18.6, Fiber: 0, Sodium: 160},

	// Vegetables
	{Name: "salada verde", Calories: 17, Protein: 1.2, Carbs: 3.0, Fat: 0.2, Fiber: 1.8, Sodium: 10},
	{Name: "alface", Calories: 11, Protein: 1.3, Carbs: 1.7, Fat: 0.2, Fiber: 1.8, Sodium: 3},
	{Name: "tomate", Calories: 15, Protein: 1.1, Carbs: 3.1, Fat: 0.2, Fiber: 1.2, Sodium: 1},
	{Name: "brocolis cozido", Calories: 25, Protein: 2.1, Carbs: 4.4, Fat: 0.5, Fiber: 3.4, Sodium: 2},
	{Name: "cenoura cozida", Calories: 30, Protein: 0.8, Carbs: 6.7, Fat: 0.2, Fiber: 2.6, Sodium: 3},
	{Name: "abobrinha refogada", Calories: 24, Protein: 1.1, Carbs: 4.2, Fat: 0.6, Fiber: 1.5, Sodium: 150},

	// Fruit
	{Name: "banana prata", Calories: 98, Protein: 1.3, Carbs: 26.0, Fat: 0.1, Fiber: 2.0, Sodium: 0},
	{Name: "maca", Calories: 56, Protein: 0.3, Carbs: 15.2, Fat: 0.0, Fiber: 1.3, Sodium: 0},
	{Name: "laranja", Calories: 37, Protein: 1.0, Carbs: 8.9, Fat: 0.1, Fiber: 0.8, Sodium: 0},
	{Name: "mamao papaia", Calories: 40, Protein: 0.5, Carbs: 10.4, Fat: 0.1, Fiber: 1.0, Sodium: 3},
	{Name: "manga", Calories: 64, Protein: 0.4, Carbs: 16.7, Fat: 0.3, Fiber: 1.6, Sodium: 0},
	{Name: "abacate", Calories: 96, Protein: 1.2, Carbs: 6.0, Fat: 8.4, Fiber: 6.3, Sodium: 0},
	{Name: "acai", Calories: 58, Protein: 0.8, Carbs: 6.2, Fat: 3.9, Fiber: 2.6, Sodium: 5},

	// Dairy and drinks
	{Name: "queijo minas frescal", Calories: 264, Protein: 17.4, Carbs: 3.2, Fat: 20.2, Fiber: 0, Sodium: 31},
	{Name: "queijo mussarela", Calories: 330, Protein: 22.6, Carbs: 3.0, Fat: 25.2, Fiber: 0, Sodium: 581},
	{Name: "leite integral", Calories: 61, Protein: 3.2, Carbs: 4.7, Fat: 3.3, Fiber: 0, Sodium: 64},
	{Name: "iogurte natural", Calories: 51, Protein: 4.1, Carbs: 1.9, Fat: 3.0, Fiber: 0, Sodium: 52},
	{Name: "cafe", Calories: 9, Protein: 0.7, Carbs: 1.5, Fat: 0.1, Fiber: 0, Sodium: 1},
	{Name: "suco de laranja", Calories: 36, Protein: 0.7, Carbs: 8.2, Fat: 0.1, Fiber: 0.4, Sodium: 1},

	// Prepared dishes
	{Name: "pizza de mussarela", Calories: 262, Protein: 11.0, Carbs: 29.5, Fat: 10.7, Fiber: 1.5, Sodium: 620},
	{Name: "hamburguer", Calories: 258, Protein: 13.0, Carbs: 29.0, Fat: 10.0, Fiber: 1.5, Sodium: 450},
	{Name: "coxinha", Calories: 283, Protein: 9.6, Carbs: 34.5, Fat: 11.8, Fiber: 1.1, Sodium: 520},
}

// Table is an immutable, ordered nutrition lookup table
type Table struct {
	keys  []string
	index map[string]domain.NutritionEntry
}

// New builds a table from entries, keeping their order. Later duplicates are ignored.
func New(list []domain.NutritionEntry) *Table {
	t := &Table{
		keys:  make([]string, 0, len(list)),
		index: make(map[string]domain.NutritionEntry, len(list)),
	}
	for _, e := range list {
		if _, dup := t.index[e.Name]; dup {
			continue
		}
		t.keys = append(t.keys, e.Name)
		t.index[e.Name] = e
	}
	return t
}

// Default returns the built-in Brazilian food table
func Default() *Table {
	return New(entries)
}

// Lookup returns the entry stored under an already-normalized key
func (t *Table) Lookup(key string) (domain.NutritionEntry, bool) {
	e, ok := t.index[key]
	return e, ok
}

// Keys returns the table keys in declaration order.
// The returned slice is a copy.
func (t *Table) Keys() []string {
	out := make([]string, len(t.keys))
	copy(out, t.keys)
	return out
}

var _ domain.NutritionTable = (*Table)(nil)
