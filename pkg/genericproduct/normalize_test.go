package genericproduct_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"SmartCart-Backend/pkg/genericproduct"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "feijao carioca", genericproduct.Normalize("  Feijão Carioca  "))
	assert.Equal(t, "acucar cristal uniao 1kg", genericproduct.Normalize("Açúcar Cristal União 1kg"))
	assert.Equal(t, "leite integral", genericproduct.Normalize("LEITE    INTEGRAL"))
	assert.Equal(t, "cafe 500g", genericproduct.Normalize("Café (500g)"))
	assert.Equal(t, "", genericproduct.Normalize("   "))
}

func TestSignificantWords(t *testing.T) {
	words := genericproduct.SignificantWords("Arroz Tio João Tipo 1")

	assert.Equal(t, []string{"arroz", "tio", "joao"}, words)
}

func TestSignificantWords_DropsStopWordsAndNumbers(t *testing.T) {
	words := genericproduct.SignificantWords("Óleo de Soja 900 ml")

	assert.Equal(t, []string{"oleo", "soja"}, words)
}

func TestLevenshtein(t *testing.T) {
	assert.Equal(t, 0, genericproduct.Levenshtein("arroz", "arroz"))
	assert.Equal(t, 1, genericproduct.Levenshtein("arroz", "aroz"))
	assert.Equal(t, 5, genericproduct.Levenshtein("", "arroz"))
	assert.Equal(t, 5, genericproduct.Levenshtein("arroz", ""))
	assert.Equal(t, 3, genericproduct.Levenshtein("kitten", "sitting"))
}

func TestSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, genericproduct.Similarity("feijao", "feijao"))
	assert.Equal(t, 1.0, genericproduct.Similarity("", ""))
	assert.Equal(t, 0.0, genericproduct.Similarity("feijao", ""))
	assert.InDelta(t, 1.0-1.0/7.0, genericproduct.Similarity("cerveja", "serveja"), 1e-9)
}
