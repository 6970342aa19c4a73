package importer

import (
	"fmt"
	"regexp"

	"github.com/kpapadakis/emporos/internal/customer"
)

// Header labels accepted for customer files, English and Greek.
var customerLabels = map[string]string{
	"fullname":      "fullName",
	"ονοματεπώνυμο": "fullName",
	"companyname":   "companyName",
	"επωνυμία":      "companyName",
	"vatnumber":     "vatNumber",
	"αφμ":           "vatNumber",
	"address":       "address",
	"διεύθυνση":     "address",
	"email":         "email",
	"phone":         "phone",
	"τηλέφωνο":      "phone",
	"notes":         "notes",
	"σημειώσεις":    "notes",
}

var (
	vatPattern   = regexp.MustCompile(`^\d{9}$`)
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// mapCustomers converts raw rows into create params. The first row is
// the header; rows that fail validation are reported by their
// spreadsheet line number and excluded from the result.
func mapCustomers(rows [][]string) ([]customer.CreateParams, []string) {
	idx := indexColumns(rows[0], customerLabels)

	var (
		params []customer.CreateParams
		errs   []string
	)

	for i, row := range rows[1:] {
		line := i + 2

		p := customer.CreateParams{
			FullName:    idx.cell(row, "fullName"),
			CompanyName: idx.cell(row, "companyName"),
			VATNumber:   idx.cell(row, "vatNumber"),
			Address:     idx.cell(row, "address"),
			Email:       idx.cell(row, "email"),
			Phone:       idx.cell(row, "phone"),
			Notes:       idx.cell(row, "notes"),
		}

		ok := true
		if p.FullName == "" {
			errs = append(errs, fmt.Sprintf("row %d: full name is required", line))
			ok = false
		}
		if p.VATNumber == "" {
			errs = append(errs, fmt.Sprintf("row %d: VAT number is required", line))
			ok = false
		} else if !vatPattern.MatchString(p.VATNumber) {
			errs = append(errs, fmt.Sprintf("row %d: invalid VAT number %q", line, p.VATNumber))
			ok = false
		}
		if p.Email != "" && !emailPattern.MatchString(p.Email) {
			errs = append(errs, fmt.Sprintf("row %d: invalid email %q", line, p.Email))
			ok = false
		}

		if ok {
			params = append(params, p)
		}
	}

	return params, errs
}
