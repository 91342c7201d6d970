// Package classifier maps unit labels to the fixed set of organizational
// categories used to order and title the per-unit tables.
package classifier

// Category is one of the fixed named unit buckets. Every unit label maps to
// exactly one category; labels outside the lookup table fall into the
// catch-all CategoryOther.
type Category string

const (
	CategoryDirection1    Category = "DIRECCIÓN I"
	CategoryDirection2    Category = "DIRECCIÓN II"
	CategoryGEO           Category = "GEO"
	CategoryRegionalEast  Category = "REGIONAL ESTE"
	CategoryRegionalNorth Category = "REGIONAL NORTE"
	CategoryOther         Category = "OTRAS"
)

// String returns the category code
func (c Category) String() string {
	return string(c)
}

// Table is the immutable classification configuration: display names for
// each category and the fixed emission order. Matching is exact-string on
// purpose; variant or misspelled labels silently land in the catch-all
// bucket instead of erroring.
type Table struct {
	names map[Category]string
	order []Category
}

// DefaultTable returns the fixed unit table used by the deployment reports
func DefaultTable() *Table {
	return &Table{
		names: map[Category]string{
			CategoryDirection1:    "Dirección I - Zona Metropolitana",
			CategoryDirection2:    "Dirección II - Unidades Especiales",
			CategoryGEO:           "GEO - Grupo Especial de Operaciones",
			CategoryRegionalEast:  "Dirección III - Regional Este",
			CategoryRegionalNorth: "Dirección III - Regional Norte",
			CategoryOther:         "Otras Unidades de apoyo",
		},
		order: []Category{
			CategoryDirection1,
			CategoryDirection2,
			CategoryGEO,
			CategoryRegionalEast,
			CategoryRegionalNorth,
			CategoryOther,
		},
	}
}

// Classify maps a unit label to its category. Total: any label outside the
// table returns CategoryOther.
func (t *Table) Classify(label string) Category {
	if _, ok := t.names[Category(label)]; ok {
		return Category(label)
	}
	return CategoryOther
}

// IsKnown reports whether the label matched a named category exactly
// (i.e. it did not fall into the catch-all by default).
func (t *Table) IsKnown(label string) bool {
	_, ok := t.names[Category(label)]
	return ok
}

// DisplayName returns the full display name for a category's table title.
// Unknown categories resolve to the catch-all display name.
func (t *Table) DisplayName(c Category) string {
	if name, ok := t.names[c]; ok {
		return name
	}
	return t.names[CategoryOther]
}

// Order returns the fixed category emission order
func (t *Table) Order() []Category {
	out := make([]Category, len(t.order))
	copy(out, t.order)
	return out
}
