package model

// Category is the kind of zakat a payer contributes.
type Category string

const (
	// CategoryFitrah is the per-person zakat paid at the end of Ramadan.
	CategoryFitrah Category = "Fitrah"
	// CategoryMal is zakat paid on wealth.
	CategoryMal Category = "Mal"
)

// Categories lists every accepted category label.
func Categories() []Category {
	return []Category{CategoryFitrah, CategoryMal}
}

// Valid reports whether c is one of the fixed labels.
func (c Category) Valid() bool {
	switch c {
	case CategoryFitrah, CategoryMal:
		return true
	default:
		return false
	}
}

func (c Category) String() string {
	return string(c)
}
