package export

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"

	"teahouse/internal/entity"
)

const sheet = "Sheet1"

var header = []interface{}{
	"Date/Time", "Name", "Phone", "Address", "Number",
	"Payment", "Order", "Total", "Note",
}

// Logger appends one bookkeeping row per order to a spreadsheet kept
// alongside the JSON store, for offline use outside the application.
type Logger struct {
	path string
}

func NewLogger(path string) *Logger {
	return &Logger{path: path}
}

// Append writes one row for the order, creating the workbook with its
// header row the first time it is called.
func (l *Logger) Append(order *entity.Order) error {
	f, next, err := l.open()
	if err != nil {
		return err
	}
	defer f.Close()

	cell, err := excelize.CoordinatesToCellName(1, next)
	if err != nil {
		return err
	}
	row := []interface{}{
		order.CreatedAt,
		order.CustomerName,
		order.Phone,
		order.Address,
		order.AddressNumber,
		order.PaymentMethod,
		ItemSummary(order.Items),
		fmt.Sprintf("%.2f", order.Total),
		order.Notes,
	}
	if err := f.SetSheetRow(sheet, cell, &row); err != nil {
		return err
	}
	return f.SaveAs(l.path)
}

// open returns the workbook and the 1-based row the next entry goes to.
func (l *Logger) open() (*excelize.File, int, error) {
	if _, err := os.Stat(l.path); os.IsNotExist(err) {
		f := excelize.NewFile()
		if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
			f.Close()
			return nil, 0, err
		}
		return f, 2, nil
	}
	f, err := excelize.OpenFile(l.path)
	if err != nil {
		return nil, 0, err
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		f.Close()
		return nil, 0, err
	}
	return f, len(rows) + 1, nil
}

// ItemSummary renders ordered items as "name: qty" pairs joined by "; ",
// skipping zero quantities. An all-zero order renders as "none".
func ItemSummary(items map[string]int) string {
	names := make([]string, 0, len(items))
	for name, qty := range items {
		if qty > 0 {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return "none"
	}
	sort.Strings(names)
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%s: %d", name, items[name])
	}
	return strings.Join(parts, "; ")
}
