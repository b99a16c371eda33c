package model

type ProductSeries string

const (
	SeriesClassic ProductSeries = "Classic"
	SeriesPremium ProductSeries = "Premium"
	SeriesOreo    ProductSeries = "Oreo"
	SeriesFruity  ProductSeries = "Fruity"
)

const (
	SizeRegular = "Regular"
	SizeLarge   = "Large"

	// Large adds a flat amount over the base price
	LargeSizeUpcharge = 25

	AddonSkip = "Skip"
	MaxAddons = 2

	DefaultSugar = "100%"
)

// add-on prices are the same for every drink
var AddonPrices = map[string]float64{
	AddonSkip:       0,
	"Pearl":         15,
	"Coconut Jelly": 20,
	"Fruity Jelly":  20,
	"Pudding":       25,
}

var SugarLevels = []string{"0%", "30%", "50%", "70%", "100%"}

// Product is read-only catalog data.
type Product struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Image     string        `json:"image"`
	Series    ProductSeries `json:"series"`
	BasePrice float64       `json:"price"`
	Sizes     []string      `json:"sizes"`
	Addons    []string      `json:"addons"`
}
