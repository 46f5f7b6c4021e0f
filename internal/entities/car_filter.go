package entities

// CarFilter is the recognized option set for the car list. Zero values mean
// "no constraint"; Transmission and Category take "all" as no-op too, since
// that is what the storefront sends.
type CarFilter struct {
	PriceMin     float64
	PriceMax     float64
	Transmission string
	Category     string
}

func (f CarFilter) MatchesAll(field string) bool {
	return field == "" || field == "all"
}
