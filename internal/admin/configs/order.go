package configs

import (
	"context"
	"strings"
	"time"

	"github.com/simp-lee/storeadmin/internal/admin"
	"github.com/simp-lee/storeadmin/internal/gateway"
)

// Order returns the order management configuration. Orders cannot be deleted
// from the console; cancellation is a status change.
func Order(client *gateway.Client) *admin.EntityConfig {
	return &admin.EntityConfig{
		Name:       "Order",
		PluralName: "Orders",
		Title:      "Order Management",
		IDField:    "orderId",

		Columns: []admin.Column{
			{Key: "orderId", Label: "Order ID", Kind: admin.ColumnText},
			{Key: "customerName", Label: "Customer", Kind: admin.ColumnText},
			{Key: "total", Label: "Total", Kind: admin.ColumnCurrency},
			{Key: "status", Label: "Status", Kind: admin.ColumnText},
			{Key: "orderDate", Label: "Date", Kind: admin.ColumnDate},
		},

		Fields: []admin.Field{
			{Key: "customerName", Label: "Customer Name", Kind: admin.FieldText, Required: true},
			{Key: "total", Label: "Total Amount", Kind: admin.FieldNumber, Step: "0.01", Required: true},
			{Key: "status", Label: "Status", Kind: admin.FieldSelect, Required: true, Options: []admin.SelectOption{
				{Value: "pending", Label: "Pending"},
				{Value: "processing", Label: "Processing"},
				{Value: "shipped", Label: "Shipped"},
				{Value: "delivered", Label: "Delivered"},
				{Value: "cancelled", Label: "Cancelled"},
			}},
			{Key: "orderDate", Label: "Order Date", Kind: admin.FieldDate, Required: true},
			{Key: "notes", Label: "Notes", Kind: admin.FieldTextarea},
		},

		ItemsPerPage: 10,

		Actions: admin.Actions{Create: true, Edit: true, Delete: false},

		API: admin.API{
			Create: func(ctx context.Context, data admin.Record) (admin.Record, error) {
				var out admin.Record
				if err := client.Post(ctx, "/orders", data, &out); err != nil {
					return nil, wrapErr(err, "Failed to create order")
				}
				return out, nil
			},
			Update: func(ctx context.Context, id string, data admin.Record) (admin.Record, error) {
				var out admin.Record
				if err := client.Put(ctx, "/orders/"+id, data, &out); err != nil {
					return nil, wrapErr(err, "Failed to update order")
				}
				return out, nil
			},
		},

		BeforeSave: func(data admin.Record) admin.Record {
			out := data.Clone()
			out["total"] = parseFloat(data["total"])
			out["orderDate"] = toISODate(data["orderDate"])
			return out
		},
	}
}

// toISODate converts a date-picker value to an RFC 3339 timestamp.
// Unparseable values pass through for the backend to reject.
func toISODate(v any) any {
	s, ok := v.(string)
	if !ok {
		return v
	}
	s = strings.TrimSpace(s)
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02"} {
		if parsed, err := time.Parse(layout, s); err == nil {
			return parsed.UTC().Format(time.RFC3339)
		}
	}
	return v
}
