package cart

import (
	"crypto/sha256"
	"encoding/hex"
	"maps"
	"sort"

	"github.com/online-catalog/backend/internal/models"
)

// OptionsEqual reports whether two option selections choose the same value
// for the same set of groups. Key order is irrelevant; nil and empty
// selections are equal.
func OptionsEqual(a, b map[string]string) bool {
	return maps.Equal(a, b)
}

// AllOptionsSelected reports whether selected carries a non-empty value for
// every option group the product declares. A product without option groups
// is vacuously covered.
func AllOptionsSelected(groups []models.Option, selected map[string]string) bool {
	for _, g := range groups {
		if selected[g.Name] == "" {
			return false
		}
	}
	return true
}

// LineKey derives a stable identifier for a (product, option selection)
// pair, letting HTTP clients address a line without echoing the option map.
// Equal selections produce equal keys regardless of map iteration order.
func LineKey(productID string, selected map[string]string) string {
	names := make([]string, 0, len(selected))
	for name := range selected {
		names = append(names, name)
	}
	sort.Strings(names)

	h := sha256.New()
	h.Write([]byte(productID))
	for _, name := range names {
		h.Write([]byte{0})
		h.Write([]byte(name))
		h.Write([]byte{0})
		h.Write([]byte(selected[name]))
	}
	return hex.EncodeToString(h.Sum(nil))[:16]
}
