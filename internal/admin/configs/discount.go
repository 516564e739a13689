package configs

import (
	"context"
	"strings"

	"github.com/simp-lee/storeadmin/internal/admin"
	"github.com/simp-lee/storeadmin/internal/gateway"
)

// Discount returns the discount and coupon management configuration. The
// coupon code is the record identity.
func Discount(client *gateway.Client) *admin.EntityConfig {
	return &admin.EntityConfig{
		Name:       "Discount",
		PluralName: "Discounts",
		Title:      "Discount & Coupon Management",
		IDField:    "code",

		Columns: []admin.Column{
			{Key: "code", Label: "Coupon Code", Kind: admin.ColumnText},
			{Key: "type", Label: "Type", Kind: admin.ColumnBadge, BadgeColors: map[string]string{
				"PERCENTAGE": "blue",
				"FIXED":      "green",
			}},
			{Key: "discount", Label: "Discount Value", Kind: admin.ColumnDiscount},
		},

		Fields: []admin.Field{
			{Key: "code", Label: "Coupon Code", Kind: admin.FieldText, Required: true,
				Pattern: "^[A-Z0-9]+$", Placeholder: "Enter coupon code (e.g., SAVE20)"},
			{Key: "type", Label: "Discount Type", Kind: admin.FieldSelect, Required: true, Options: []admin.SelectOption{
				{Value: "PERCENTAGE", Label: "Percentage (e.g., 20% off)"},
				{Value: "FIXED", Label: "Fixed Amount (e.g., $10 off)"},
			}},
			{Key: "discount", Label: "Discount Value", Kind: admin.FieldNumber, Required: true,
				Step: "0.01", Min: "0", Placeholder: "Enter discount value"},
		},

		ItemsPerPage: 15,

		Actions: admin.Actions{Create: true, Edit: true, Delete: true},

		API: admin.API{
			Create: func(ctx context.Context, data admin.Record) (admin.Record, error) {
				var out admin.Record
				if err := client.Post(ctx, "/discount", data, &out); err != nil {
					return nil, wrapErr(err, "Failed to create discount")
				}
				return out, nil
			},
			Update: func(ctx context.Context, id string, data admin.Record) (admin.Record, error) {
				var out admin.Record
				if err := client.Put(ctx, "/discount/"+id, data, &out); err != nil {
					return nil, wrapErr(err, "Failed to update discount")
				}
				return out, nil
			},
			Delete: func(ctx context.Context, id string) error {
				if err := client.Delete(ctx, "/discount/"+id); err != nil {
					return wrapErr(err, "Failed to delete discount")
				}
				return nil
			},
		},

		BeforeSave: func(data admin.Record) admin.Record {
			out := data.Clone()
			out["code"] = strings.ToUpper(asString(data["code"]))
			out["discount"] = parseFloat(data["discount"])
			return out
		},
	}
}
