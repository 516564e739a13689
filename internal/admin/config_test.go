package admin

import (
	"context"
	"testing"
)

func validConfig() *EntityConfig {
	return &EntityConfig{
		Name:    "Product",
		IDField: "id",
		Columns: []Column{{Key: "name", Label: "Name", Kind: ColumnText}},
		Fields:  []Field{{Key: "name", Label: "Name", Kind: FieldText}},
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*EntityConfig)
		wantErr bool
	}{
		{"valid", func(c *EntityConfig) {}, false},
		{"missing name", func(c *EntityConfig) { c.Name = "" }, true},
		{"missing id field", func(c *EntityConfig) { c.IDField = "" }, true},
		{"no columns", func(c *EntityConfig) { c.Columns = nil }, true},
		{"empty column key", func(c *EntityConfig) { c.Columns[0].Key = "" }, true},
		{"duplicate column key", func(c *EntityConfig) {
			c.Columns = append(c.Columns, Column{Key: "name", Kind: ColumnText})
		}, true},
		{"unknown column kind", func(c *EntityConfig) { c.Columns[0].Kind = "fancy" }, true},
		{"duplicate field key", func(c *EntityConfig) {
			c.Fields = append(c.Fields, Field{Key: "name", Kind: FieldText})
		}, true},
		{"unknown field kind", func(c *EntityConfig) { c.Fields[0].Kind = "slider" }, true},
		{"select without options", func(c *EntityConfig) {
			c.Fields = append(c.Fields, Field{Key: "type", Kind: FieldSelect})
		}, true},
		{"file field not declared", func(c *EntityConfig) { c.FileFields = []string{"photo"} }, true},
		{"file field wrong kind", func(c *EntityConfig) { c.FileFields = []string{"name"} }, true},
		{"create enabled without binding", func(c *EntityConfig) { c.Actions.Create = true }, true},
		{"create enabled with binding", func(c *EntityConfig) {
			c.Actions.Create = true
			c.API.Create = func(context.Context, Record) (Record, error) { return nil, nil }
		}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestConfigDefaults(t *testing.T) {
	c := &EntityConfig{Name: "Order"}
	if got := c.Plural(); got != "Orders" {
		t.Errorf("Plural() = %q, want Orders", got)
	}
	c.PluralName = "Order Book"
	if got := c.Plural(); got != "Order Book" {
		t.Errorf("Plural() = %q, want Order Book", got)
	}

	if got := c.PageSize(); got != 10 {
		t.Errorf("PageSize() = %d, want default 10", got)
	}
	c.ItemsPerPage = 15
	if got := c.PageSize(); got != 15 {
		t.Errorf("PageSize() = %d, want 15", got)
	}
}

func TestConfigFieldByKey(t *testing.T) {
	c := validConfig()
	if f := c.FieldByKey("name"); f == nil || f.Key != "name" {
		t.Errorf("FieldByKey(name) = %v", f)
	}
	if f := c.FieldByKey("missing"); f != nil {
		t.Errorf("FieldByKey(missing) = %v, want nil", f)
	}
}
