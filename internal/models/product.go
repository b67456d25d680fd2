package models

// Product represents a catalog entry as stored in the products collection.
// Price keeps the display representation, optionally prefixed with a currency
// glyph (e.g. "$45"); numeric handling lives in the catalog package.
type Product struct {
	ID          string   `json:"id" bson:"_id,omitempty"`
	Name        string   `json:"name" bson:"name"`
	Brand       string   `json:"brand" bson:"brand"`
	Model       string   `json:"model" bson:"model"`
	Category    string   `json:"category" bson:"category"`
	Price       string   `json:"price" bson:"price"`
	Image       string   `json:"image" bson:"image"`
	Description string   `json:"description" bson:"description"`
	OptionIDs   []string `json:"optionIds" bson:"optionIds"`
}

// ProductInput carries the mutable product fields for create and update.
type ProductInput struct {
	Name        string   `json:"name"`
	Brand       string   `json:"brand"`
	Model       string   `json:"model"`
	Category    string   `json:"category"`
	Price       string   `json:"price"`
	Image       string   `json:"image"`
	Description string   `json:"description"`
	OptionIDs   []string `json:"optionIds"`
}

// ProductWithOptions is a product with its option-group references resolved
// to the full groups. References that no longer exist are skipped, so Options
// may be shorter than OptionIDs.
type ProductWithOptions struct {
	Product
	Options []Option `json:"options"`
}
