package catalog

import (
	"fmt"
	"strconv"
	"strings"
)

// PriceNoLimit stands in for an open upper bound in price filters, so a
// filter is always a closed [min, max] pair and can key a cache entry.
const PriceNoLimit = 999999

// Filter narrows a catalog listing. Zero MaxPrice never occurs: parsed
// filters substitute PriceNoLimit for an open end.
type Filter struct {
	Category Category
	MinPrice int64
	MaxPrice int64
}

// ParsePriceRange parses the "min-max" token carried in keyboard callback
// data. "all" means no price bound and a zero max means open-ended, so
// "6000-0" reads as 6000 and up.
func ParsePriceRange(s string) (minPrice, maxPrice int64, err error) {
	if s == "all" {
		return 0, PriceNoLimit, nil
	}
	lo, hi, ok := strings.Cut(s, "-")
	if !ok {
		return 0, 0, fmt.Errorf("price range %q: want min-max", s)
	}
	minPrice, err = strconv.ParseInt(lo, 10, 64)
	if err != nil || minPrice < 0 {
		return 0, 0, fmt.Errorf("price range %q: bad min", s)
	}
	maxPrice, err = strconv.ParseInt(hi, 10, 64)
	if err != nil || maxPrice < 0 {
		return 0, 0, fmt.Errorf("price range %q: bad max", s)
	}
	if maxPrice == 0 {
		maxPrice = PriceNoLimit
	}
	return minPrice, maxPrice, nil
}
