// Package dataset provides the catalogs the card view is built from.
package dataset

import "github.com/meur/minidex/internal/models"

const (
	DefaultImageDir      = "images/"
	DefaultCategoryLabel = "Type"
	DefaultLevelLabel    = "Niveau"
	DefaultEmptyMessage  = "Dracaufeu a tout brûlé, aucun Pokémon ne correspond à ta recherche !"
)

var typeColors = map[string]string{
	"Électrique": "#FFD700",
	"Plante":     "#78C850",
	"Poison":     "#A040A0",
	"Feu":        "#F08030",
	"Eau":        "#6890F0",
	"Normal":     "#A8A878",
	"Fée":        "#EE99AC",
	"Spectre":    "#705898",
	"Combat":     "#C03028",
	"Vol":        "#A890F0",
	"Glace":      "#98D8D8",
	"Roche":      "#B8A038",
	"Sol":        "#E0C068",
	"Psy":        "#F85888",
}

var pokemons = []models.Record{
	{Name: "Pikachu", Categories: []string{"Électrique"}, Level: 35, Image: "pikachu.png"},
	{Name: "Bulbizarre", Categories: []string{"Plante", "Poison"}, Level: 15, Image: "bulbizarre.png"},
	{Name: "Salamèche", Categories: []string{"Feu"}, Level: 20, Image: "salameche.png"},
	{Name: "Carapuce", Categories: []string{"Eau"}, Level: 10, Image: "carapuce.png"},
	{Name: "Rondoudou", Categories: []string{"Normal", "Fée"}, Level: 25, Image: "rondoudou.png"},
	{Name: "Ectoplasma", Categories: []string{"Spectre", "Poison"}, Level: 45, Image: "ectoplasma.png"},
	{Name: "Évoli", Categories: []string{"Normal", "Combat"}, Level: 22, Image: "evoli.png"},
	{Name: "Dracaufeu", Categories: []string{"Feu", "Vol"}, Level: 50, Image: "dracaufeu.png"},
	{Name: "Florizarre", Categories: []string{"Plante", "Poison"}, Level: 55, Image: "florizarre.png"},
	{Name: "Tortank", Categories: []string{"Eau"}, Level: 52, Image: "tortank.png"},
	{Name: "Mélofée", Categories: []string{"Fée"}, Level: 18, Image: "melofee.png"},
	{Name: "Raichu", Categories: []string{"Électrique"}, Level: 40, Image: "raichu.png"},
	{Name: "Magicarpe", Categories: []string{"Eau"}, Level: 5, Image: "magicarpe.png"},
	{Name: "Lokhlass", Categories: []string{"Eau", "Glace"}, Level: 35, Image: "lokhlass.png"},
	{Name: "Onix", Categories: []string{"Roche", "Sol"}, Level: 30, Image: "onix.png"},
	{Name: "Ronflex", Categories: []string{"Normal"}, Level: 45, Image: "ronflex.png"},
	{Name: "Mewtwo", Categories: []string{"Psy"}, Level: 70, Image: "mewtwo.png"},
}

// Builtin returns the default Pokédex catalog.
// Every call returns a fresh copy, so callers cannot alter the package data.
func Builtin() *models.Catalog {
	records := make([]models.Record, len(pokemons))
	for i, p := range pokemons {
		p.Categories = append([]string(nil), p.Categories...)
		records[i] = p
	}

	return &models.Catalog{
		Name:          "Mini Pokédex",
		Records:       records,
		Colors:        copyColors(typeColors),
		FallbackColor: models.DefaultFallbackColor,
		ImageDir:      DefaultImageDir,
		Labels:        defaultLabels(),
	}
}

func defaultLabels() models.Labels {
	return models.Labels{
		Category: DefaultCategoryLabel,
		Level:    DefaultLevelLabel,
		Empty:    DefaultEmptyMessage,
	}
}

func copyColors(src map[string]string) map[string]string {
	dst := make(map[string]string, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
