package model

import (
	"fmt"
	"strings"
)

// Area identifies one life-area list. The set is closed; persistence keys
// and seed defaults are derived from it.
type Area string

const (
	AreaPhysical  Area = "fisica"
	AreaFinancial Area = "financiera"
	AreaFamily    Area = "familia"
)

// Areas returns the closed set of life areas, in display order.
func Areas() []Area {
	return []Area{AreaPhysical, AreaFinancial, AreaFamily}
}

// ParseArea maps a user-supplied area name to an Area.
func ParseArea(s string) (Area, error) {
	switch Area(strings.ToLower(strings.TrimSpace(s))) {
	case AreaPhysical:
		return AreaPhysical, nil
	case AreaFinancial:
		return AreaFinancial, nil
	case AreaFamily:
		return AreaFamily, nil
	}
	return "", fmt.Errorf("unknown area %q (want fisica, financiera or familia)", s)
}

// Title returns the human label for an area.
func (a Area) Title() string {
	switch a {
	case AreaPhysical:
		return "Física"
	case AreaFinancial:
		return "Financiera"
	case AreaFamily:
		return "Familia"
	}
	return string(a)
}

// Item is the domain model for one life-area entry.
// Kept minimal on purpose; it’s easy to evolve.
type Item struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
	Time      string `json:"time,omitempty"` // display-only, never touched by list logic
}

// Asset is a tracked possession of the financial area. ReplacementDate is
// derived from PurchaseDate at render time and deliberately has no field here.
type Asset struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	PurchaseDate string `json:"purchaseDate"` // YYYY-MM-DD
}

// Reflection is one entry of the shared reflections log.
type Reflection struct {
	ID        string `json:"id"`
	Category  string `json:"category"`
	Title     string `json:"title"`
	Text      string `json:"text"`
	Date      string `json:"date"`
	Timestamp int64  `json:"timestamp"` // unix milliseconds at creation, sort key
}

// ReflectionCategories is the closed category set for reflections.
var ReflectionCategories = []string{"Física", "Financiera", "Familia", "Personal"}

// ValidReflectionCategory reports whether c belongs to the closed set.
func ValidReflectionCategory(c string) bool {
	for _, v := range ReflectionCategories {
		if v == c {
			return true
		}
	}
	return false
}
