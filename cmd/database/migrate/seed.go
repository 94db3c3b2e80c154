package migration

import (
	"SmartCart-Backend/entities"
	"log"

	"gorm.io/gorm"
)

var defaultCategories = []entities.Category{
	{Slug: "graos", Name: "Grãos e Cereais"},
	{Slug: "laticinios", Name: "Laticínios"},
	{Slug: "bebidas", Name: "Bebidas"},
	{Slug: "carnes", Name: "Carnes e Peixes"},
	{Slug: "hortifruti", Name: "Hortifruti"},
	{Slug: "padaria", Name: "Padaria"},
	{Slug: "limpeza", Name: "Limpeza"},
	{Slug: "higiene", Name: "Higiene"},
	{Slug: "doces", Name: "Doces e Snacks"},
	{Slug: "massas", Name: "Massas"},
	{Slug: "temperos", Name: "Temperos e Condimentos"},
	{Slug: "congelados", Name: "Congelados"},
	{Slug: "uncategorized", Name: "Sem Categoria"},
}

// defaultGenerics is the starter pantry every user can match against.
var defaultGenerics = []entities.GenericProduct{
	{Name: "Arroz", Category: "graos"},
	{Name: "Feijão", Category: "graos"},
	{Name: "Açúcar", Category: "graos"},
	{Name: "Café", Category: "bebidas"},
	{Name: "Leite", Category: "laticinios"},
	{Name: "Queijo", Category: "laticinios"},
	{Name: "Manteiga", Category: "laticinios"},
	{Name: "Iogurte", Category: "laticinios"},
	{Name: "Óleo", Category: "temperos"},
	{Name: "Azeite", Category: "temperos"},
	{Name: "Sal", Category: "temperos"},
	{Name: "Macarrão", Category: "massas"},
	{Name: "Farinha", Category: "graos"},
	{Name: "Pão", Category: "padaria"},
	{Name: "Ovos", Category: "hortifruti"},
	{Name: "Refrigerante", Category: "bebidas"},
	{Name: "Suco", Category: "bebidas"},
	{Name: "Água Mineral", Category: "bebidas"},
	{Name: "Cerveja", Category: "bebidas"},
	{Name: "Biscoito", Category: "doces"},
	{Name: "Chocolate", Category: "doces"},
	{Name: "Frango", Category: "carnes"},
	{Name: "Carne Bovina", Category: "carnes"},
	{Name: "Detergente", Category: "limpeza"},
	{Name: "Sabão em Pó", Category: "limpeza"},
	{Name: "Sabonete", Category: "higiene"},
	{Name: "Shampoo", Category: "higiene"},
	{Name: "Papel Higiênico", Category: "higiene"},
	{Name: "Molho de Tomate", Category: "temperos"},
	{Name: "Banana", Category: "hortifruti"},
	{Name: "Tomate", Category: "hortifruti"},
	{Name: "Cebola", Category: "hortifruti"},
	{Name: "Batata", Category: "hortifruti"},
}

// Seed inserts the category vocabulary and the default generic products.
// Idempotent: rows are keyed by slug/name and only created when absent.
func Seed(db *gorm.DB) error {
	for _, category := range defaultCategories {
		if err := db.Where("slug = ?", category.Slug).FirstOrCreate(&category).Error; err != nil {
			log.Printf("Error seeding category %s: %v", category.Slug, err)
			return err
		}
	}

	for _, generic := range defaultGenerics {
		generic.IsDefault = true
		if err := db.Where("name = ? AND is_default = ?", generic.Name, true).FirstOrCreate(&generic).Error; err != nil {
			log.Printf("Error seeding generic product %s: %v", generic.Name, err)
			return err
		}
	}

	return nil
}
