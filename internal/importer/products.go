package importer

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/kpapadakis/emporos/internal/product"
)

// Header labels accepted for product files, English and Greek.
var productLabels = map[string]string{
	"name":        "name",
	"όνομα":       "name",
	"category":    "category",
	"κατηγορία":   "category",
	"description": "description",
	"περιγραφή":   "description",
	"price":       "price",
	"τιμή":        "price",
	"sku":         "sku",
	"κωδικός":     "sku",
}

func mapProducts(rows [][]string) ([]product.CreateParams, []string) {
	idx := indexColumns(rows[0], productLabels)

	var (
		params []product.CreateParams
		errs   []string
	)

	for i, row := range rows[1:] {
		line := i + 2

		p := product.CreateParams{
			Name:        idx.cell(row, "name"),
			Category:    idx.cell(row, "category"),
			Description: idx.cell(row, "description"),
			SKU:         idx.cell(row, "sku"),
		}

		ok := true
		if p.Name == "" {
			errs = append(errs, fmt.Sprintf("row %d: name is required", line))
			ok = false
		}
		// Create rejects an empty category, so catch it here as a row
		// error instead of aborting the whole import.
		if p.Category == "" {
			errs = append(errs, fmt.Sprintf("row %d: category is required", line))
			ok = false
		}
		if p.SKU == "" {
			errs = append(errs, fmt.Sprintf("row %d: SKU is required", line))
			ok = false
		}

		priceCell := idx.cell(row, "price")
		if priceCell == "" {
			errs = append(errs, fmt.Sprintf("row %d: price is required", line))
			ok = false
		} else {
			price, err := decimal.NewFromString(priceCell)
			switch {
			case err != nil:
				errs = append(errs, fmt.Sprintf("row %d: invalid price %q", line, priceCell))
				ok = false
			case price.IsNegative():
				errs = append(errs, fmt.Sprintf("row %d: price cannot be negative", line))
				ok = false
			default:
				p.Price = price
			}
		}

		if ok {
			params = append(params, p)
		}
	}

	return params, errs
}
