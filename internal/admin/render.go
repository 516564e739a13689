package admin

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const defaultTruncateChars = 50

// Cell is the display projection of one record attribute under one column.
// It carries everything the view needs and nothing that mutates the record.
type Cell struct {
	Kind ColumnKind
	Text string

	// Title carries the full value for truncated cells.
	Title string

	// BadgeColor is the resolved color class for badge cells.
	BadgeColor string

	// ImageURL and ImageFallback are set for image cells.
	ImageURL      string
	ImageFallback string
}

// Row is one record rendered under a config's column list.
type Row struct {
	ID    string
	Cells []Cell
}

// PageWindow describes the pagination control: a sliding window of at most
// five numeric buttons centered on the current page, with first/last
// shortcuts and ellipses when pages fall outside the window.
type PageWindow struct {
	Current int
	Total   int
	Pages   []int

	ShowFirst        bool
	LeadingEllipsis  bool
	TrailingEllipsis bool
	ShowLast         bool

	HasPrev bool
	HasNext bool
}

// TableRenderer projects an EntityStore page slice through a config's column
// list into display rows. It holds no state and performs no mutation.
type TableRenderer struct {
	config *EntityConfig
}

// NewTableRenderer creates a renderer for the given config.
func NewTableRenderer(config *EntityConfig) *TableRenderer {
	return &TableRenderer{config: config}
}

// RenderPage renders the store's current page.
func (t *TableRenderer) RenderPage(store *EntityStore) []Row {
	slice := store.PageSlice()
	rows := make([]Row, 0, len(slice))
	for _, rec := range slice {
		rows = append(rows, t.RenderRow(rec))
	}
	return rows
}

// RenderRow renders one record under every configured column.
func (t *TableRenderer) RenderRow(rec Record) Row {
	cells := make([]Cell, 0, len(t.config.Columns))
	for _, col := range t.config.Columns {
		cells = append(cells, RenderCell(col, rec))
	}
	return Row{
		ID:    IDString(rec[t.config.IDField]),
		Cells: cells,
	}
}

// RenderCell formats one record attribute according to the column kind.
func RenderCell(col Column, rec Record) Cell {
	value := rec[col.Key]
	cell := Cell{Kind: col.Kind}

	switch col.Kind {
	case ColumnCurrency:
		cell.Text = FormatCurrency(value)

	case ColumnDiscount:
		// Percentage discounts render as "<value>%", fixed ones as currency.
		if s, _ := rec["type"].(string); s == "PERCENTAGE" {
			amount := formatNumber(value)
			if amount == "" {
				amount = "0"
			}
			cell.Text = amount + "%"
		} else {
			cell.Text = FormatCurrency(value)
		}

	case ColumnBadge:
		cell.Text = stringify(value)
		cell.BadgeColor = col.BadgeColors[cell.Text]
		if cell.BadgeColor == "" {
			cell.BadgeColor = "neutral"
		}

	case ColumnDate:
		cell.Text = FormatDate(value)

	case ColumnBoolean:
		trueLabel, falseLabel := col.TrueLabel, col.FalseLabel
		if trueLabel == "" {
			trueLabel = "Yes"
		}
		if falseLabel == "" {
			falseLabel = "No"
		}
		if isBlank(value) {
			cell.Text = falseLabel
		} else {
			cell.Text = trueLabel
		}

	case ColumnImage:
		cell.ImageURL = stringify(value)
		cell.ImageFallback = col.Fallback
		cell.Text = cell.ImageURL

	case ColumnTruncate:
		full := stringify(value)
		cell.Title = full
		max := col.MaxChars
		if max <= 0 {
			max = defaultTruncateChars
		}
		if len(full) > max {
			cell.Text = full[:max] + "…"
		} else {
			cell.Text = full
		}

	case ColumnNumber:
		cell.Text = formatNumber(value)

	default:
		cell.Text = stringify(value)
	}

	return cell
}

// FormatCurrency renders a numeric value with two decimal places and a
// leading dollar sign, rounding to nearest. Non-numeric or missing values
// render as "$0.00".
func FormatCurrency(v any) string {
	n, ok := toNumber(v)
	if !ok {
		n = 0
	}
	return "$" + strconv.FormatFloat(n, 'f', 2, 64)
}

// FormatDate renders a date value in a human-readable form. Missing or
// unparseable values render empty.
func FormatDate(v any) string {
	switch d := v.(type) {
	case nil:
		return ""
	case time.Time:
		return d.Format("Jan 2, 2006")
	case string:
		s := strings.TrimSpace(d)
		if s == "" {
			return ""
		}
		for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
			if parsed, err := time.Parse(layout, s); err == nil {
				return parsed.Format("Jan 2, 2006")
			}
		}
		return s
	default:
		return stringify(v)
	}
}

// Window computes the page-number control for the store's current position.
func (t *TableRenderer) Window(store *EntityStore) PageWindow {
	return ComputePageWindow(store.CurrentPage(), store.TotalPages())
}

// ComputePageWindow builds a sliding window of at most five page buttons.
// With five or fewer pages every page gets a button and no shortcuts appear.
// Beyond that the window centers on the current page, re-anchoring at either
// end so five buttons always show, with first/last shortcuts and ellipses
// when the gap is more than one page.
func ComputePageWindow(current, total int) PageWindow {
	if total < 1 {
		total = 1
	}
	if current < 1 {
		current = 1
	}
	if current > total {
		current = total
	}

	start := current - 2
	if start < 1 {
		start = 1
	}
	end := start + 4
	if end > total {
		end = total
	}
	if start > end-4 {
		start = end - 4
		if start < 1 {
			start = 1
		}
	}

	pages := make([]int, 0, end-start+1)
	for p := start; p <= end; p++ {
		pages = append(pages, p)
	}

	return PageWindow{
		Current:          current,
		Total:            total,
		Pages:            pages,
		ShowFirst:        start > 1,
		LeadingEllipsis:  start > 2,
		TrailingEllipsis: end < total-1,
		ShowLast:         end < total,
		HasPrev:          current > 1,
		HasNext:          current < total,
	}
}

// toNumber coerces numeric values and numeric strings to float64.
func toNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}

// formatNumber renders a number without trailing zeros; non-numeric values
// pass through as text.
func formatNumber(v any) string {
	n, ok := toNumber(v)
	if !ok {
		return stringify(v)
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// stringify renders a scalar for display; nil renders empty.
func stringify(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(s), 'f', -1, 32)
	case bool:
		return strconv.FormatBool(s)
	case int:
		return strconv.Itoa(s)
	case int64:
		return strconv.FormatInt(s, 10)
	case uint:
		return strconv.FormatUint(uint64(s), 10)
	case fmt.Stringer:
		return s.String()
	default:
		return fmt.Sprint(v)
	}
}
