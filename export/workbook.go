package export

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
)

// SheetName is the name of the single worksheet in a report.
const SheetName = "Users"

// RoleSeparator joins role names in the Roles column.
const RoleSeparator = ";"

// Columns is the fixed header of a report, in column order.
var Columns = []string{
	"Name",
	"Email",
	"Login",
	"Domain",
	"Description",
	"State",
	"IsAdministrator",
	"Roles",
}

// BuildWorkbook renders records as an xlsx workbook: a bold header in row 1
// followed by one row per record, in input order.
func BuildWorkbook(records []UserRecord) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return nil, &SerializationError{Err: err}
	}

	header := make([]interface{}, len(Columns))
	for i, c := range Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return nil, &SerializationError{Err: err}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, &SerializationError{Err: err}
	}
	last, err := excelize.CoordinatesToCellName(len(Columns), 1)
	if err != nil {
		return nil, &SerializationError{Err: err}
	}
	if err := f.SetCellStyle(SheetName, "A1", last, bold); err != nil {
		return nil, &SerializationError{Err: err}
	}

	for i, rec := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, &SerializationError{Err: err}
		}
		row := []interface{}{
			rec.Name,
			rec.Email,
			rec.Login,
			rec.DomainName,
			rec.Description,
			rec.State,
			rec.IsAdministrator,
			strings.Join(rec.Roles, RoleSeparator),
		}
		if err := checkCellLengths(rec.Login, row); err != nil {
			return nil, &SerializationError{Err: err}
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return nil, &SerializationError{Err: err}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, &SerializationError{Err: err}
	}
	return buf.Bytes(), nil
}

// checkCellLengths rejects rows with a text cell longer than a cell can hold;
// the engine would otherwise truncate it.
func checkCellLengths(login string, row []interface{}) error {
	for i, v := range row {
		s, ok := v.(string)
		if !ok {
			continue
		}
		if n := utf8.RuneCountInString(s); n > excelize.TotalCellChars {
			return fmt.Errorf("user %q: %s cell has %d characters, limit is %d", login, Columns[i], n, excelize.TotalCellChars)
		}
	}
	return nil
}
