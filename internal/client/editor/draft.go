package editor

import (
	"strconv"
	"strings"

	"github.com/dmitrijs2005/circuitstock/internal/client/models"
)

// Form field names, shared by the web form and FieldErrors.
const (
	FieldName           = "name"
	FieldCategory       = "category"
	FieldStock          = "stock"
	FieldMinStock       = "min_stock"
	FieldSpecifications = "specifications"
	FieldSupplier       = "supplier"
	// FieldSubmit holds the error of the last failed submission.
	FieldSubmit = "submit"
)

// Draft is the raw, unvalidated content of the editor form.
type Draft struct {
	Name           string
	Category       string
	Stock          string
	MinStock       string
	Specifications string
	Supplier       string
}

// DraftFrom pre-fills a draft with an existing component.
func DraftFrom(it models.Item) Draft {
	return Draft{
		Name:           it.Name,
		Category:       string(it.Category),
		Stock:          strconv.Itoa(it.Stock),
		MinStock:       strconv.Itoa(it.MinStock),
		Specifications: it.Specifications,
		Supplier:       string(it.Supplier),
	}
}

// Set assigns one field by name. Unknown names are ignored.
func (d *Draft) Set(field, value string) {
	switch field {
	case FieldName:
		d.Name = value
	case FieldCategory:
		d.Category = value
	case FieldStock:
		d.Stock = value
	case FieldMinStock:
		d.MinStock = value
	case FieldSpecifications:
		d.Specifications = value
	case FieldSupplier:
		d.Supplier = value
	}
}

// FieldErrors maps a field name to its message.
type FieldErrors map[string]string

// Validate checks every field and, when all pass, returns the typed input.
func (d Draft) Validate() (models.ItemInput, FieldErrors) {
	errs := FieldErrors{}

	name := strings.TrimSpace(d.Name)
	if name == "" {
		errs[FieldName] = "Component name is required"
	}

	category := models.Category(d.Category)
	switch {
	case d.Category == "":
		errs[FieldCategory] = "Category is required"
	case !category.Valid():
		errs[FieldCategory] = "Unknown category"
	}

	stock, msg := quantity(d.Stock, "Stock quantity")
	if msg != "" {
		errs[FieldStock] = msg
	}
	minStock, msg := quantity(d.MinStock, "Minimum stock")
	if msg != "" {
		errs[FieldMinStock] = msg
	}

	supplier := models.Supplier(d.Supplier)
	switch {
	case d.Supplier == "":
		errs[FieldSupplier] = "Supplier is required"
	case !supplier.Valid():
		errs[FieldSupplier] = "Unknown supplier"
	}

	if len(errs) > 0 {
		return models.ItemInput{}, errs
	}
	return models.ItemInput{
		Name:           name,
		Category:       category,
		Stock:          stock,
		MinStock:       minStock,
		Specifications: strings.TrimSpace(d.Specifications),
		Supplier:       supplier,
	}, nil
}

func quantity(raw, label string) (int, string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, label + " is required"
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, label + " must be a whole number"
	}
	if n < 0 {
		return 0, label + " must be positive"
	}
	return n, ""
}
