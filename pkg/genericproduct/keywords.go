package genericproduct

import (
	"sort"
	"strings"
)

// keywordDictionary maps a canonical generic name onto the substrings that
// identify it in scanned product names or categories. Keys and entries are
// in normalized form.
var keywordDictionary = map[string][]string{
	"arroz":        {"arroz", "rice"},
	"feijao":       {"feijao", "beans"},
	"acucar":       {"acucar", "sugar"},
	"sal":          {"sal refinado", "sal grosso", "sal marinho"},
	"cafe":         {"cafe", "coffee"},
	"leite":        {"leite", "milk"},
	"oleo":         {"oleo de soja", "oleo de girassol", "oleo de milho"},
	"azeite":       {"azeite"},
	"macarrao":     {"macarrao", "espaguete", "spaghetti", "penne"},
	"farinha":      {"farinha", "flour"},
	"pao":          {"pao ", "pao de forma", "bread"},
	"queijo":       {"queijo", "cheese"},
	"manteiga":     {"manteiga", "butter"},
	"margarina":    {"margarina"},
	"iogurte":      {"iogurte", "yogurt"},
	"ovo":          {"ovos", "eggs"},
	"refrigerante": {"refrigerante", "cola", "guarana"},
	"suco":         {"suco", "juice"},
	"agua":         {"agua mineral", "agua com gas"},
	"cerveja":      {"cerveja", "beer"},
	"biscoito":     {"biscoito", "bolacha", "cookie"},
	"chocolate":    {"chocolate"},
	"sabao":        {"sabao", "sabao em po"},
	"detergente":   {"detergente"},
	"amaciante":    {"amaciante"},
	"sabonete":     {"sabonete", "soap"},
	"shampoo":      {"shampoo", "xampu"},
	"papel":        {"papel higienico", "papel toalha"},
	"molho":        {"molho de tomate", "extrato de tomate"},
	"atum":         {"atum"},
	"sardinha":     {"sardinha"},
	"frango":       {"frango", "chicken"},
	"carne":        {"carne bovina", "carne moida", "beef"},
}

// essentiallyGeneric lists raw produce whose generic category is the item
// itself: a banana is just "banana". Used as a bonus suggestion path.
var essentiallyGeneric = []string{
	"banana", "maca", "laranja", "limao", "uva", "abacaxi", "manga", "mamao",
	"melancia", "melao", "pera", "morango", "abacate", "goiaba", "kiwi",
	"tomate", "cebola", "alho", "batata", "cenoura", "beterraba", "alface",
	"couve", "brocolis", "repolho", "pepino", "abobrinha", "abobora",
	"pimentao", "chuchu", "quiabo", "mandioca", "milho",
}

// keywordCanonicals fixes the lookup order so a name matching substrings of
// two canonical entries always resolves to the same one.
var keywordCanonicals = func() []string {
	canonicals := make([]string, 0, len(keywordDictionary))
	for canonical := range keywordDictionary {
		canonicals = append(canonicals, canonical)
	}
	sort.Strings(canonicals)
	return canonicals
}()

// matchKeyword returns the canonical generic name whose substrings match the
// normalized name or category, or "" when none does.
func matchKeyword(normalizedName, normalizedCategory string) string {
	for _, canonical := range keywordCanonicals {
		for _, sub := range keywordDictionary[canonical] {
			if strings.Contains(normalizedName, sub) || strings.Contains(normalizedCategory, sub) {
				return canonical
			}
		}
	}
	return ""
}

// matchEssentiallyGeneric returns the produce keyword the normalized name
// matches and a similarity of 0.95 for an exact match or 0.9 for a
// substring match.
func matchEssentiallyGeneric(normalizedName string) (string, float64) {
	for _, produce := range essentiallyGeneric {
		if normalizedName == produce {
			return produce, 0.95
		}
	}
	for _, produce := range essentiallyGeneric {
		if strings.Contains(normalizedName, produce) {
			return produce, 0.9
		}
	}
	return "", 0
}
