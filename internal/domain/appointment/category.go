package appointment

import (
	"strings"

	"github.com/BruksfildServices01/vehicle-maintenance/internal/httperr"
)

type Category string

const (
	CategoryRoutine      Category = "routine"
	CategoryMechanical   Category = "mechanical"
	CategoryElectrical   Category = "electrical"
	CategoryComputerized Category = "computerized"
	CategoryDenting      Category = "denting"
	CategoryPainting     Category = "painting"
)

var categories = map[Category]bool{
	CategoryRoutine:      true,
	CategoryMechanical:   true,
	CategoryElectrical:   true,
	CategoryComputerized: true,
	CategoryDenting:      true,
	CategoryPainting:     true,
}

func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !categories[c] {
		return "", httperr.ErrValidation("invalid_category", "service_category")
	}
	return c, nil
}
