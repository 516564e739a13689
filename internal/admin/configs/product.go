package configs

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/simp-lee/storeadmin/internal/admin"
	"github.com/simp-lee/storeadmin/internal/gateway"
)

// Product returns the product management configuration.
func Product(client *gateway.Client) *admin.EntityConfig {
	return &admin.EntityConfig{
		Name:       "Product",
		PluralName: "Products",
		Title:      "Product Administration",
		IDField:    "productId",

		Columns: []admin.Column{
			{Key: "productId", Label: "ID", Kind: admin.ColumnText},
			{Key: "name", Label: "Name", Kind: admin.ColumnText},
			{Key: "price", Label: "Price", Kind: admin.ColumnCurrency},
			{Key: "popularity", Label: "Popularity", Kind: admin.ColumnText},
			{Key: "description", Label: "Description", Kind: admin.ColumnTruncate},
			{Key: "imageUrl", Label: "Image", Kind: admin.ColumnImage, Fallback: "/static/img/placeholder.png"},
		},

		Fields: []admin.Field{
			{Key: "name", Label: "Product Name", Kind: admin.FieldText, Required: true, Placeholder: "Enter product name"},
			{Key: "price", Label: "Price", Kind: admin.FieldNumber, Required: true, Step: "0.01", Min: "0", Placeholder: "0.00"},
			{Key: "description", Label: "Description", Kind: admin.FieldTextarea, Required: true, Placeholder: "Enter product description"},
			{Key: "popularity", Label: "Popularity", Kind: admin.FieldNumber, Min: "0", Default: "0", Placeholder: "Enter popularity score"},
			{Key: "imageUrl", Label: "Product Image", Kind: admin.FieldFile},
		},

		FileFields: []string{"imageUrl"},

		ItemsPerPage: 10,

		Actions: admin.Actions{Create: true, Edit: true, Delete: true},

		API: admin.API{
			Create: func(ctx context.Context, data admin.Record) (admin.Record, error) {
				var out admin.Record
				if err := client.Post(ctx, "/products", data, &out); err != nil {
					return nil, wrapErr(err, "Failed to create product")
				}
				return out, nil
			},
			Update: func(ctx context.Context, id string, data admin.Record) (admin.Record, error) {
				var out admin.Record
				if err := client.Put(ctx, "/products/"+id, data, &out); err != nil {
					return nil, wrapErr(err, "Failed to update product")
				}
				return out, nil
			},
			Delete: func(ctx context.Context, id string) error {
				if err := client.Delete(ctx, "/products/"+id); err != nil {
					return wrapErr(err, "Failed to delete product")
				}
				return nil
			},
			UploadFile: func(ctx context.Context, file admin.File, fieldKey string) (string, error) {
				url, err := client.Upload(ctx, "/products/upload-image", "imageFile", file.Name, bytes.NewReader(file.Content))
				if err != nil {
					return "", wrapErr(err, "Failed to upload file")
				}
				return url, nil
			},
		},

		BeforeSave: func(data admin.Record) admin.Record {
			out := data.Clone()
			out["price"] = parseFloat(data["price"])
			out["popularity"] = parseIntOr(data["popularity"], 0)
			return out
		},
	}
}

// parseFloat coerces a form value to float64; unparseable input yields 0.
func parseFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		f, err := strconv.ParseFloat(strings.TrimSpace(fmt.Sprint(v)), 64)
		if err != nil {
			return 0
		}
		return f
	}
}

// parseIntOr coerces a form value to int, falling back when unparseable.
func parseIntOr(v any, fallback int) int {
	switch n := v.(type) {
	case int:
		return n
	case float64:
		return int(n)
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return fallback
		}
		return i
	default:
		return fallback
	}
}
