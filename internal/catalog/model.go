package catalog

// Rating is the upstream product rating
type Rating struct {
	Rate  float64 `json:"rate"`
	Count int     `json:"count"`
}

// Product is the upstream catalog representation. It is never persisted in
// full; only id/title/image are mirrored locally, price and rating are
// re-fetched live whenever they are rendered.
type Product struct {
	ID          uint    `json:"id"`
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
	Rating      Rating  `json:"rating"`
}
