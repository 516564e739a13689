package admin

import (
	"reflect"
	"testing"
	"time"
)

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"plain", 19.99, "$19.99"},
		{"rounds down", 19.994, "$19.99"},
		{"rounds up", 19.999, "$20.00"},
		{"integer", float64(5), "$5.00"},
		{"numeric string", "12.5", "$12.50"},
		{"nil", nil, "$0.00"},
		{"garbage", "abc", "$0.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatCurrency(tt.in); got != tt.want {
				t.Errorf("FormatCurrency(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormatDate(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"time value", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), "Mar 5, 2024"},
		{"rfc3339", "2024-03-05T10:30:00Z", "Mar 5, 2024"},
		{"datetime no zone", "2024-03-05T10:30:00", "Mar 5, 2024"},
		{"date only", "2024-03-05", "Mar 5, 2024"},
		{"unparseable passes through", "next tuesday", "next tuesday"},
		{"nil", nil, ""},
		{"blank", "  ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatDate(tt.in); got != tt.want {
				t.Errorf("FormatDate(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestRenderCell(t *testing.T) {
	tests := []struct {
		name string
		col  Column
		rec  Record
		want Cell
	}{
		{
			"text",
			Column{Key: "name", Kind: ColumnText},
			Record{"name": "widget"},
			Cell{Kind: ColumnText, Text: "widget"},
		},
		{
			"number trims trailing zeros",
			Column{Key: "qty", Kind: ColumnNumber},
			Record{"qty": 5.0},
			Cell{Kind: ColumnNumber, Text: "5"},
		},
		{
			"currency",
			Column{Key: "price", Kind: ColumnCurrency},
			Record{"price": 19.994},
			Cell{Kind: ColumnCurrency, Text: "$19.99"},
		},
		{
			"badge known color",
			Column{Key: "roles", Kind: ColumnBadge, BadgeColors: map[string]string{"ADMIN": "red"}},
			Record{"roles": "ADMIN"},
			Cell{Kind: ColumnBadge, Text: "ADMIN", BadgeColor: "red"},
		},
		{
			"badge unknown value is neutral",
			Column{Key: "roles", Kind: ColumnBadge, BadgeColors: map[string]string{"ADMIN": "red"}},
			Record{"roles": "INTERN"},
			Cell{Kind: ColumnBadge, Text: "INTERN", BadgeColor: "neutral"},
		},
		{
			"boolean defaults",
			Column{Key: "active", Kind: ColumnBoolean},
			Record{"active": true},
			Cell{Kind: ColumnBoolean, Text: "Yes"},
		},
		{
			"boolean custom labels falsy value",
			Column{Key: "active", Kind: ColumnBoolean, TrueLabel: "Enabled", FalseLabel: "Disabled"},
			Record{"active": float64(0)},
			Cell{Kind: ColumnBoolean, Text: "Disabled"},
		},
		{
			"image",
			Column{Key: "imageUrl", Kind: ColumnImage, Fallback: "/static/img/placeholder.png"},
			Record{"imageUrl": "/uploads/a.png"},
			Cell{Kind: ColumnImage, Text: "/uploads/a.png", ImageURL: "/uploads/a.png", ImageFallback: "/static/img/placeholder.png"},
		},
		{
			"percentage discount",
			Column{Key: "discount", Kind: ColumnDiscount},
			Record{"discount": float64(20), "type": "PERCENTAGE"},
			Cell{Kind: ColumnDiscount, Text: "20%"},
		},
		{
			"fixed discount renders as currency",
			Column{Key: "discount", Kind: ColumnDiscount},
			Record{"discount": float64(5), "type": "FIXED"},
			Cell{Kind: ColumnDiscount, Text: "$5.00"},
		},
		{
			"percentage discount missing value renders zero",
			Column{Key: "discount", Kind: ColumnDiscount},
			Record{"type": "PERCENTAGE"},
			Cell{Kind: ColumnDiscount, Text: "0%"},
		},
		{
			"percentage discount blank value renders zero",
			Column{Key: "discount", Kind: ColumnDiscount},
			Record{"discount": "", "type": "PERCENTAGE"},
			Cell{Kind: ColumnDiscount, Text: "0%"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RenderCell(tt.col, tt.rec); got != tt.want {
				t.Errorf("RenderCell() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRenderCellTruncate(t *testing.T) {
	long := "abcdefghijklmnopqrstuvwxyzabcdefghijklmnopqrstuvwxyzabc"
	col := Column{Key: "description", Kind: ColumnTruncate}

	cell := RenderCell(col, Record{"description": long})
	if cell.Text != long[:50]+"…" {
		t.Errorf("truncated text = %q", cell.Text)
	}
	if cell.Title != long {
		t.Errorf("title should carry the full value, got %q", cell.Title)
	}

	short := RenderCell(col, Record{"description": "short"})
	if short.Text != "short" || short.Title != "short" {
		t.Errorf("short value should pass through, got %+v", short)
	}

	custom := RenderCell(Column{Key: "description", Kind: ColumnTruncate, MaxChars: 3}, Record{"description": "abcdef"})
	if custom.Text != "abc…" {
		t.Errorf("custom max = %q, want abc…", custom.Text)
	}
}

func TestRenderRow(t *testing.T) {
	cfg := &EntityConfig{
		Name:    "Product",
		IDField: "id",
		Columns: []Column{
			{Key: "name", Label: "Name", Kind: ColumnText},
			{Key: "price", Label: "Price", Kind: ColumnCurrency},
		},
	}
	r := NewTableRenderer(cfg)

	row := r.RenderRow(Record{"id": float64(7), "name": "widget", "price": 9.99})
	if row.ID != "7" {
		t.Errorf("row ID = %q, want 7", row.ID)
	}
	if len(row.Cells) != 2 {
		t.Fatalf("cells = %d, want 2", len(row.Cells))
	}
	if row.Cells[1].Text != "$9.99" {
		t.Errorf("price cell = %q", row.Cells[1].Text)
	}
}

func TestComputePageWindow(t *testing.T) {
	tests := []struct {
		name             string
		current, total   int
		wantPages        []int
		showFirst        bool
		leadingEllipsis  bool
		trailingEllipsis bool
		showLast         bool
	}{
		{"single page", 1, 1, []int{1}, false, false, false, false},
		{"five pages fit", 3, 5, []int{1, 2, 3, 4, 5}, false, false, false, false},
		{"fourth of five", 4, 5, []int{1, 2, 3, 4, 5}, false, false, false, false},
		{"last of five", 5, 5, []int{1, 2, 3, 4, 5}, false, false, false, false},
		{"last of three", 3, 3, []int{1, 2, 3}, false, false, false, false},
		{"start of long run", 1, 20, []int{1, 2, 3, 4, 5}, false, false, true, true},
		{"middle of long run", 10, 20, []int{8, 9, 10, 11, 12}, true, true, true, true},
		{"near end", 19, 20, []int{16, 17, 18, 19, 20}, true, true, false, false},
		{"end of long run", 20, 20, []int{16, 17, 18, 19, 20}, true, true, false, false},
		{"window touches second page", 4, 20, []int{2, 3, 4, 5, 6}, true, false, true, true},
		{"clamped current", 99, 5, []int{1, 2, 3, 4, 5}, false, false, false, false},
		{"zero total", 1, 0, []int{1}, false, false, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ComputePageWindow(tt.current, tt.total)
			if !reflect.DeepEqual(w.Pages, tt.wantPages) {
				t.Errorf("Pages = %v, want %v", w.Pages, tt.wantPages)
			}
			if w.ShowFirst != tt.showFirst {
				t.Errorf("ShowFirst = %v, want %v", w.ShowFirst, tt.showFirst)
			}
			if w.LeadingEllipsis != tt.leadingEllipsis {
				t.Errorf("LeadingEllipsis = %v, want %v", w.LeadingEllipsis, tt.leadingEllipsis)
			}
			if w.TrailingEllipsis != tt.trailingEllipsis {
				t.Errorf("TrailingEllipsis = %v, want %v", w.TrailingEllipsis, tt.trailingEllipsis)
			}
			if w.ShowLast != tt.showLast {
				t.Errorf("ShowLast = %v, want %v", w.ShowLast, tt.showLast)
			}
		})
	}
}

func TestComputePageWindowPrevNext(t *testing.T) {
	w := ComputePageWindow(1, 3)
	if w.HasPrev || !w.HasNext {
		t.Errorf("page 1 of 3: HasPrev = %v HasNext = %v", w.HasPrev, w.HasNext)
	}
	w = ComputePageWindow(3, 3)
	if !w.HasPrev || w.HasNext {
		t.Errorf("page 3 of 3: HasPrev = %v HasNext = %v", w.HasPrev, w.HasNext)
	}
}
