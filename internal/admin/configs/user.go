package configs

import (
	"context"
	"strings"

	"github.com/simp-lee/storeadmin/internal/admin"
	"github.com/simp-lee/storeadmin/internal/gateway"
)

// User returns the user and role management configuration.
func User(client *gateway.Client) *admin.EntityConfig {
	return &admin.EntityConfig{
		Name:       "User",
		PluralName: "Users",
		Title:      "User & Role Management",
		IDField:    "userId",

		Columns: []admin.Column{
			{Key: "userId", Label: "User ID", Kind: admin.ColumnText},
			{Key: "name", Label: "Name", Kind: admin.ColumnText},
			{Key: "email", Label: "Email", Kind: admin.ColumnText},
			{Key: "mobileNumber", Label: "Mobile", Kind: admin.ColumnText},
			{Key: "roles", Label: "Roles", Kind: admin.ColumnBadge, BadgeColors: map[string]string{
				"ADMIN":     "red",
				"USER":      "blue",
				"MODERATOR": "green",
				"MANAGER":   "purple",
			}},
		},

		Fields: []admin.Field{
			{Key: "name", Label: "Full Name", Kind: admin.FieldText, Required: true, MinLength: 2, MaxLength: 50,
				Pattern: `^[a-zA-Z\s]+$`, Placeholder: "Enter full name"},
			{Key: "email", Label: "Email Address", Kind: admin.FieldEmail, Required: true,
				Placeholder: "Enter email address (e.g., user@example.com)"},
			{Key: "mobileNumber", Label: "Mobile Number", Kind: admin.FieldTel, Required: true,
				Pattern: `^[0-9]{10}$`, Placeholder: "Enter 10-digit mobile number"},
			{Key: "roles", Label: "User Role", Kind: admin.FieldSelect, Required: true, Options: []admin.SelectOption{
				{Value: "USER", Label: "User - Regular Customer"},
				{Value: "MODERATOR", Label: "Moderator - Content Management"},
				{Value: "MANAGER", Label: "Manager - Business Operations"},
				{Value: "ADMIN", Label: "Admin - Full Access"},
			}},
		},

		ItemsPerPage: 15,

		Actions: admin.Actions{Create: true, Edit: true, Delete: true},

		API: admin.API{
			Create: func(ctx context.Context, data admin.Record) (admin.Record, error) {
				var out admin.Record
				if err := client.Post(ctx, "/admin/users", data, &out); err != nil {
					return nil, wrapErr(err, "Failed to create user")
				}
				return out, nil
			},
			Update: func(ctx context.Context, id string, data admin.Record) (admin.Record, error) {
				var out admin.Record
				if err := client.Put(ctx, "/admin/users/"+id, data, &out); err != nil {
					return nil, wrapErr(err, "Failed to update user")
				}
				return out, nil
			},
			Delete: func(ctx context.Context, id string) error {
				if err := client.Delete(ctx, "/admin/users/"+id); err != nil {
					return wrapErr(err, "Failed to delete user")
				}
				return nil
			},
		},

		BeforeSave: func(data admin.Record) admin.Record {
			out := data.Clone()
			out["name"] = strings.TrimSpace(asString(data["name"]))
			out["email"] = strings.ToLower(strings.TrimSpace(asString(data["email"])))
			out["mobileNumber"] = stripNonDigits(asString(data["mobileNumber"]))
			return out
		},
	}
}

func asString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	if v == nil {
		return ""
	}
	return admin.IDString(v)
}

func stripNonDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
