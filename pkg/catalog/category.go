package catalog

import (
	"encoding/json"
	"sort"
	"strings"
)

// UncategorizedBucket is the fallback when no vocabulary mapping applies.
const UncategorizedBucket = "uncategorized"

// CategoryField decodes the category slot of an external payload, which is
// sometimes a bare label and sometimes a nested descriptive object. The
// ambiguity is absorbed here so the rest of the code only sees a flat label.
type CategoryField struct {
	Label string
}

func (c *CategoryField) UnmarshalJSON(data []byte) error {
	var label string
	if err := json.Unmarshal(data, &label); err == nil {
		c.Label = label
		return nil
	}

	var nested struct {
		Description string `json:"description"`
		Name        string `json:"name"`
	}
	if err := json.Unmarshal(data, &nested); err != nil {
		// Unknown shape decodes as empty rather than failing the lookup.
		c.Label = ""
		return nil
	}

	if nested.Description != "" {
		c.Label = nested.Description
	} else {
		c.Label = nested.Name
	}
	return nil
}

// categoryVocabulary maps substrings of external category labels onto the
// internal category slugs. Keys are matched case-insensitively.
var categoryVocabulary = map[string]string{
	"arroz":        "graos",
	"feijao":       "graos",
	"feijão":       "graos",
	"cereais":      "graos",
	"cereal":       "graos",
	"graos":        "graos",
	"grãos":        "graos",
	"leite":        "laticinios",
	"queijo":       "laticinios",
	"iogurte":      "laticinios",
	"laticinio":    "laticinios",
	"laticínio":    "laticinios",
	"dairy":        "laticinios",
	"bebida":       "bebidas",
	"refrigerante": "bebidas",
	"suco":         "bebidas",
	"agua":         "bebidas",
	"água":         "bebidas",
	"beverage":     "bebidas",
	"carne":        "carnes",
	"frango":       "carnes",
	"peixe":        "carnes",
	"meat":         "carnes",
	"fruta":        "hortifruti",
	"legume":       "hortifruti",
	"verdura":      "hortifruti",
	"hortifruti":   "hortifruti",
	"vegetable":    "hortifruti",
	"fruit":        "hortifruti",
	"padaria":      "padaria",
	"pao":          "padaria",
	"pão":          "padaria",
	"bread":        "padaria",
	"limpeza":      "limpeza",
	"detergente":   "limpeza",
	"cleaning":     "limpeza",
	"higiene":      "higiene",
	"sabonete":     "higiene",
	"shampoo":      "higiene",
	"hygiene":      "higiene",
	"doce":         "doces",
	"chocolate":    "doces",
	"biscoito":     "doces",
	"snack":        "doces",
	"massa":        "massas",
	"macarrao":     "massas",
	"macarrão":     "massas",
	"pasta":        "massas",
	"tempero":      "temperos",
	"condimento":   "temperos",
	"molho":        "temperos",
	"oleo":         "temperos",
	"óleo":         "temperos",
	"azeite":       "temperos",
	"congelado":    "congelados",
	"frozen":       "congelados",
}

// categoryKeys fixes the lookup order so a label matching more than one
// vocabulary key always resolves to the same slug.
var categoryKeys = func() []string {
	keys := make([]string, 0, len(categoryVocabulary))
	for key := range categoryVocabulary {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}()

// MapCategory flattens an external category label onto the internal
// vocabulary, defaulting to the uncategorized bucket.
func MapCategory(label string) string {
	if label == "" {
		return UncategorizedBucket
	}

	lowered := strings.ToLower(label)
	for _, key := range categoryKeys {
		if strings.Contains(lowered, key) {
			return categoryVocabulary[key]
		}
	}
	return UncategorizedBucket
}
