package admin

import (
	"context"
	"fmt"
)

// ColumnKind is the closed set of display formats a table column can use.
type ColumnKind string

const (
	ColumnText     ColumnKind = "text"
	ColumnNumber   ColumnKind = "number"
	ColumnCurrency ColumnKind = "currency"
	ColumnDate     ColumnKind = "date"
	ColumnBoolean  ColumnKind = "boolean"
	ColumnImage    ColumnKind = "image"
	ColumnBadge    ColumnKind = "badge"
	ColumnTruncate ColumnKind = "truncate"
	ColumnDiscount ColumnKind = "discount"
)

// FieldKind is the closed set of input types a form field can use.
type FieldKind string

const (
	FieldText     FieldKind = "text"
	FieldEmail    FieldKind = "email"
	FieldTel      FieldKind = "tel"
	FieldURL      FieldKind = "url"
	FieldNumber   FieldKind = "number"
	FieldTextarea FieldKind = "textarea"
	FieldSelect   FieldKind = "select"
	FieldCheckbox FieldKind = "checkbox"
	FieldFile     FieldKind = "file"
	FieldDate     FieldKind = "date"
	FieldDatetime FieldKind = "datetime-local"
)

// Column describes one table column: which record attribute it reads and how
// the value is formatted. Formatting is display-only and never mutates data.
type Column struct {
	Key   string
	Label string
	Kind  ColumnKind

	// BadgeColors maps raw values to badge color classes for ColumnBadge.
	// Unknown values fall back to a neutral style.
	BadgeColors map[string]string

	// TrueLabel and FalseLabel override the "Yes"/"No" defaults for
	// ColumnBoolean.
	TrueLabel  string
	FalseLabel string

	// Fallback is substituted for ColumnImage when the URL fails to load.
	Fallback string

	// MaxChars bounds the visible length for ColumnTruncate. Zero means the
	// renderer default.
	MaxChars int
}

// SelectOption is one choice of a select field.
type SelectOption struct {
	Value string
	Label string
}

// Field describes one editable form field.
type Field struct {
	Key      string
	Label    string
	Kind     FieldKind
	Required bool

	// Constraint hints surfaced to the form renderer. Presence is the only
	// constraint enforced procedurally; the rest are advisory and the
	// backend validates authoritatively.
	Pattern   string
	MinLength int
	MaxLength int
	Min       string
	Max       string
	Step      string

	Options []SelectOption
	Default any

	// Placeholder is shown in empty inputs.
	Placeholder string
}

// File is a binary payload staged for upload.
type File struct {
	Name    string
	Content []byte
}

// API holds the remote bindings for one entity. Create, Update, and Delete
// must return an error with a human-readable message on any non-success
// outcome; the controller treats the error as the sole failure signal.
// UploadFile is optional; when nil, staged files fall back to their local
// preview value.
type API struct {
	Create     func(ctx context.Context, data Record) (Record, error)
	Update     func(ctx context.Context, id string, data Record) (Record, error)
	Delete     func(ctx context.Context, id string) error
	UploadFile func(ctx context.Context, file File, fieldKey string) (string, error)
}

// Actions enables or disables mutation UI independently of binding presence.
type Actions struct {
	Create bool
	Edit   bool
	Delete bool
}

// EntityConfig is the immutable declarative description of one manageable
// entity type. BeforeSave, when set, must be a total, side-effect-free
// function from raw form values to persistable values; when nil, raw values
// pass through unchanged.
type EntityConfig struct {
	Name       string // singular display name, e.g. "Product"
	PluralName string // e.g. "Products"; defaults to Name + "s"
	Title      string // screen heading, e.g. "Product Administration"
	IDField    string

	Columns []Column
	Fields  []Field

	// FileFields lists the field keys requiring upload handling before the
	// record is persisted. Every entry must name a FieldFile field.
	FileFields []string

	API        API
	BeforeSave func(data Record) Record

	// ItemsPerPage is the page size for the table. Zero means the default
	// of 10.
	ItemsPerPage int

	Actions Actions
}

// Plural returns PluralName, defaulting to Name + "s".
func (c *EntityConfig) Plural() string {
	if c.PluralName != "" {
		return c.PluralName
	}
	return c.Name + "s"
}

// PageSize returns ItemsPerPage with the default applied.
func (c *EntityConfig) PageSize() int {
	if c.ItemsPerPage <= 0 {
		return 10
	}
	return c.ItemsPerPage
}

// FieldByKey returns the field with the given key, or nil.
func (c *EntityConfig) FieldByKey(key string) *Field {
	for i := range c.Fields {
		if c.Fields[i].Key == key {
			return &c.Fields[i]
		}
	}
	return nil
}

// Validate checks structural soundness: known kinds, unique keys, file
// fields that exist and are file-typed, and bindings present for every
// enabled action.
func (c *EntityConfig) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("entity config: name is required")
	}
	if c.IDField == "" {
		return fmt.Errorf("entity config %s: id field is required", c.Name)
	}
	if len(c.Columns) == 0 {
		return fmt.Errorf("entity config %s: at least one column is required", c.Name)
	}

	seenCols := make(map[string]bool, len(c.Columns))
	for _, col := range c.Columns {
		if col.Key == "" {
			return fmt.Errorf("entity config %s: column with empty key", c.Name)
		}
		if seenCols[col.Key] {
			return fmt.Errorf("entity config %s: duplicate column key %q", c.Name, col.Key)
		}
		seenCols[col.Key] = true
		if !validColumnKind(col.Kind) {
			return fmt.Errorf("entity config %s: column %q has unknown kind %q", c.Name, col.Key, col.Kind)
		}
	}

	seenFields := make(map[string]bool, len(c.Fields))
	for _, f := range c.Fields {
		if f.Key == "" {
			return fmt.Errorf("entity config %s: field with empty key", c.Name)
		}
		if seenFields[f.Key] {
			return fmt.Errorf("entity config %s: duplicate field key %q", c.Name, f.Key)
		}
		seenFields[f.Key] = true
		if !validFieldKind(f.Kind) {
			return fmt.Errorf("entity config %s: field %q has unknown kind %q", c.Name, f.Key, f.Kind)
		}
		if f.Kind == FieldSelect && len(f.Options) == 0 {
			return fmt.Errorf("entity config %s: select field %q has no options", c.Name, f.Key)
		}
	}

	for _, key := range c.FileFields {
		f := c.FieldByKey(key)
		if f == nil {
			return fmt.Errorf("entity config %s: file field %q is not declared", c.Name, key)
		}
		if f.Kind != FieldFile {
			return fmt.Errorf("entity config %s: file field %q is not file-typed", c.Name, key)
		}
	}

	if c.Actions.Create && c.API.Create == nil {
		return fmt.Errorf("entity config %s: create action enabled without a create binding", c.Name)
	}
	if c.Actions.Edit && c.API.Update == nil {
		return fmt.Errorf("entity config %s: edit action enabled without an update binding", c.Name)
	}
	if c.Actions.Delete && c.API.Delete == nil {
		return fmt.Errorf("entity config %s: delete action enabled without a delete binding", c.Name)
	}

	return nil
}

func validColumnKind(k ColumnKind) bool {
	switch k {
	case ColumnText, ColumnNumber, ColumnCurrency, ColumnDate, ColumnBoolean,
		ColumnImage, ColumnBadge, ColumnTruncate, ColumnDiscount:
		return true
	}
	return false
}

func validFieldKind(k FieldKind) bool {
	switch k {
	case FieldText, FieldEmail, FieldTel, FieldURL, FieldNumber, FieldTextarea,
		FieldSelect, FieldCheckbox, FieldFile, FieldDate, FieldDatetime:
		return true
	}
	return false
}
