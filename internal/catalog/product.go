package catalog

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("product not found")

type Category string

const (
	CategoryBouquet     Category = "bouquet"
	CategoryComposition Category = "composition"
)

func ParseCategory(s string) (Category, bool) {
	switch Category(s) {
	case CategoryBouquet, CategoryComposition:
		return Category(s), true
	}
	return "", false
}

func (c Category) Valid() bool {
	_, ok := ParseCategory(string(c))
	return ok
}

func (c Category) Human() string {
	switch c {
	case CategoryBouquet:
		return "Букет"
	case CategoryComposition:
		return "Композиция"
	}
	return string(c)
}

type Product struct {
	ID          int64
	Title       string
	Description string
	Price       int64
	Category    Category
	PhotoFileID string
	ImageURL    string
	IsActive    bool
	CreatedAt   time.Time
}
