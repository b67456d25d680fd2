// Package catalog implements the storefront's product filtering and ordering
// rules. All functions are pure: they never mutate their inputs and perform
// no I/O.
package catalog

import (
	"sort"
	"strings"

	"github.com/online-catalog/backend/internal/models"
	"github.com/shopspring/decimal"
)

// Selector value disabling a category/brand/price filter.
const All = "all"

// Price buckets. The edges 50 and 200 both belong to the middle bucket and
// nowhere else.
const (
	PriceUnder50 = "under-50"
	Price50To200 = "50-200"
	PriceOver200 = "over-200"
)

// Sort keys. An empty or unknown key keeps the input order.
const (
	SortName      = "name"
	SortPriceAsc  = "price-ascending"
	SortPriceDesc = "price-descending"
)

// Spec describes one storefront filter state. Zero values for the selector
// fields behave like All.
type Spec struct {
	Search     string
	Category   string
	Brand      string
	PriceRange string
	Sort       string
}

// Visible returns the products matching spec, ordered by the spec's sort key.
// Search matches name, brand, and model; description is deliberately not
// searched. All comparisons are case-insensitive.
func Visible(products []models.Product, spec Spec) []models.Product {
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if matches(p, spec) {
			out = append(out, p)
		}
	}
	sortProducts(out, spec.Sort)
	return out
}

func matches(p models.Product, spec Spec) bool {
	if q := strings.ToLower(strings.TrimSpace(spec.Search)); q != "" {
		if !strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(p.Brand), q) &&
			!strings.Contains(strings.ToLower(p.Model), q) {
			return false
		}
	}

	if !selectorMatch(spec.Category, p.Category) {
		return false
	}
	if !selectorMatch(spec.Brand, p.Brand) {
		return false
	}

	return priceInBucket(ParsePrice(p.Price), spec.PriceRange)
}

func selectorMatch(selector, value string) bool {
	return selector == "" || selector == All || strings.EqualFold(selector, value)
}

var (
	fifty      = decimal.NewFromInt(50)
	twoHundred = decimal.NewFromInt(200)
)

func priceInBucket(price decimal.Decimal, bucket string) bool {
	switch bucket {
	case PriceUnder50:
		return price.LessThan(fifty)
	case Price50To200:
		return price.GreaterThanOrEqual(fifty) && price.LessThanOrEqual(twoHundred)
	case PriceOver200:
		return price.GreaterThan(twoHundred)
	default:
		return true
	}
}

// sortProducts orders the filtered subset in place. Sorts are stable so that
// equal keys keep their original relative order.
func sortProducts(products []models.Product, key string) {
	switch key {
	case SortName:
		sort.SliceStable(products, func(i, j int) bool {
			return strings.ToLower(products[i].Name) < strings.ToLower(products[j].Name)
		})
	case SortPriceAsc:
		sort.SliceStable(products, func(i, j int) bool {
			return ParsePrice(products[i].Price).LessThan(ParsePrice(products[j].Price))
		})
	case SortPriceDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return ParsePrice(products[i].Price).GreaterThan(ParsePrice(products[j].Price))
		})
	}
}
