// Package listing builds the public catalog view over active offers.
package listing

import (
	"sort"
	"strings"

	"github.com/domingues497/stockplant/entities"
)

type Order string

const (
	ByPrice    Order = "price"    // ascending price per kg
	ByQuantity Order = "quantity" // descending quantity
)

type Filter struct {
	Category string
	Search   string
	Order    Order
}

// ParseOrder maps request values, including the legacy Portuguese ones, to an Order.
// Unknown values fall back to ByPrice.
func ParseOrder(s string) Order {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "quantity", "quantidade":
		return ByQuantity
	default:
		return ByPrice
	}
}

// Query returns the active offers matching f, sorted by f.Order. Ties go to
// the most recently created offer. offers is not modified.
func Query(offers []entities.Offer, f Filter) []entities.Offer {
	category := strings.ToLower(strings.TrimSpace(f.Category))
	search := strings.ToLower(strings.TrimSpace(f.Search))

	out := make([]entities.Offer, 0, len(offers))
	for _, o := range offers {
		if !o.Active {
			continue
		}
		if category != "" && strings.ToLower(strings.TrimSpace(o.Crop)) != category {
			continue
		}
		if search != "" && !matches(o, search) {
			continue
		}
		out = append(out, o)
	}

	order := ParseOrder(string(f.Order))
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		switch order {
		case ByQuantity:
			if c := a.QuantityKg.Cmp(b.QuantityKg); c != 0 {
				return c > 0
			}
		default:
			if c := a.PricePerKg.Cmp(b.PricePerKg); c != 0 {
				return c < 0
			}
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID > b.ID
	})
	return out
}

func matches(o entities.Offer, needle string) bool {
	for _, field := range []string{o.Crop, o.Variety, o.Origin} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}
