package inventory

import (
	"fmt"
	"strings"
	"unicode"
)

type Product struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Brand    string  `json:"brand"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
	Stock    int     `json:"stock"`
	Unit     string  `json:"unit"`
	Image    string  `json:"image"`
}

// ItemQty is one line of a deduction request.
type ItemQty struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// ProductInput is the explicit allow-list of caller-mutable fields.
// Anything not listed here cannot be written through the API, no
// matter what the request body contains. Nil pointers mean "leave
// unchanged" on update.
type ProductInput struct {
	Name     *string  `json:"name"`
	Brand    *string  `json:"brand"`
	Category *string  `json:"category"`
	Price    *float64 `json:"price"`
	Stock    *int     `json:"stock"`
	Unit     *string  `json:"unit"`
	Image    *string  `json:"image"`
}

type ValidationError struct{ msg string }

func (e *ValidationError) Error() string { return e.msg }

func invalid(format string, args ...any) error {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

// Validate checks the provided fields. On create, name and price are
// mandatory; on update only the fields present are checked.
func (in ProductInput) Validate(forCreate bool) error {
	if forCreate {
		if in.Name == nil || strings.TrimSpace(*in.Name) == "" {
			return invalid("Product name is required")
		}
		if in.Price == nil {
			return invalid("Price must be greater than zero")
		}
	}
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return invalid("Product name cannot be empty")
	}
	if in.Price != nil {
		if *in.Price < 0 {
			return invalid("Price cannot be negative")
		}
		if *in.Price == 0 {
			return invalid("Price must be greater than zero")
		}
	}
	if in.Stock != nil && *in.Stock < 0 {
		return invalid("Stock cannot be negative")
	}
	if in.Unit != nil && unitLooksNegative(*in.Unit) {
		return invalid("Unit cannot contain negative values")
	}
	return nil
}

// ApplyTo copies the provided fields onto the product.
func (in ProductInput) ApplyTo(p *Product) {
	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Brand != nil {
		p.Brand = *in.Brand
	}
	if in.Category != nil {
		p.Category = *in.Category
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.Stock != nil {
		p.Stock = *in.Stock
	}
	if in.Unit != nil {
		p.Unit = *in.Unit
	}
	if in.Image != nil {
		p.Image = *in.Image
	}
}

// "500g" is fine, "-500g" is not.
func unitLooksNegative(unit string) bool {
	if !strings.Contains(unit, "-") {
		return false
	}
	for _, r := range unit {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
