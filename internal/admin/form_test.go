package admin

import (
	"strings"
	"testing"
)

func formTestConfig() *EntityConfig {
	return &EntityConfig{
		Name:    "Product",
		IDField: "id",
		Columns: []Column{{Key: "name", Label: "Name", Kind: ColumnText}},
		Fields: []Field{
			{Key: "name", Label: "Product Name", Kind: FieldText, Required: true},
			{Key: "price", Label: "Price", Kind: FieldNumber, Required: true},
			{Key: "popularity", Label: "Popularity", Kind: FieldNumber, Default: "0"},
			{Key: "active", Label: "Active", Kind: FieldCheckbox},
			{Key: "imageUrl", Label: "Image", Kind: FieldFile},
		},
		FileFields: []string{"imageUrl"},
	}
}

func TestFormInitializeDefaults(t *testing.T) {
	f := NewFormEngine(formTestConfig())

	if got := f.Value("name"); got != "" {
		t.Errorf("name = %v, want empty string", got)
	}
	if got := f.Value("popularity"); got != "0" {
		t.Errorf("popularity = %v, want declared default %q", got, "0")
	}
	if got := f.Value("active"); got != false {
		t.Errorf("checkbox = %v, want false", got)
	}
}

func TestFormInitializeFromExisting(t *testing.T) {
	f := NewFormEngine(formTestConfig())
	f.Initialize(Record{
		"id":       float64(1),
		"name":     "widget",
		"price":    9.99,
		"active":   true,
		"imageUrl": "/uploads/widget.png",
		"ignored":  "not a field",
	})

	if got := f.Value("name"); got != "widget" {
		t.Errorf("name = %v, want widget", got)
	}
	if got := f.Value("imageUrl"); got != "/uploads/widget.png" {
		t.Errorf("imageUrl = %v, want existing url", got)
	}
	if got := f.Value("ignored"); got != nil {
		t.Errorf("undeclared key should not enter the form, got %v", got)
	}

	// Re-initializing with nil returns to pristine defaults.
	f.Initialize(nil)
	if got := f.Value("name"); got != "" {
		t.Errorf("after reset name = %v, want empty", got)
	}
}

func TestFormCheckboxCoercion(t *testing.T) {
	tests := []struct {
		raw  any
		want bool
	}{
		{"on", true},
		{"true", true},
		{"1", true},
		{"yes", true},
		{true, true},
		{"", false},
		{"off", false},
		{"false", false},
		{nil, false},
		{42, false},
	}
	f := NewFormEngine(formTestConfig())
	for _, tt := range tests {
		f.SetField("active", tt.raw)
		if got := f.Value("active"); got != tt.want {
			t.Errorf("SetField(active, %v) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}

func TestFormSetFieldIgnoresUnknownKey(t *testing.T) {
	f := NewFormEngine(formTestConfig())
	f.SetField("bogus", "x")
	if got := f.Value("bogus"); got != nil {
		t.Errorf("unknown key stored %v", got)
	}
}

func TestFormValidateRequired(t *testing.T) {
	tests := []struct {
		name      string
		price     any
		wantField string
	}{
		{"missing name fails first", "", "name"},
		{"numeric zero counts as blank", float64(0), "price"},
		{"zero string counts as present", "0", "price"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFormEngine(formTestConfig())
			if tt.wantField == "price" {
				f.SetField("name", "widget")
			}
			f.SetField("price", tt.price)

			err := f.Validate()
			if tt.name == "zero string counts as present" {
				// "0" is a non-blank string; blankness applies to typed zeros.
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected validation error")
			}
			vErr, ok := err.(*ValidationError)
			if !ok {
				t.Fatalf("error type = %T, want *ValidationError", err)
			}
			if vErr.Field != tt.wantField {
				t.Errorf("failing field = %s, want %s", vErr.Field, tt.wantField)
			}
			if !strings.Contains(vErr.Message, "is required") {
				t.Errorf("message = %q, want %q suffix", vErr.Message, "is required")
			}
		})
	}
}

func TestFormValidateUsesFieldLabel(t *testing.T) {
	f := NewFormEngine(formTestConfig())
	err := f.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	if got := err.Error(); got != "Product Name is required" {
		t.Errorf("message = %q, want label-based message", got)
	}
}

func TestFormRequiredFileField(t *testing.T) {
	cfg := formTestConfig()
	cfg.Fields[4].Required = true
	f := NewFormEngine(cfg)
	f.SetField("name", "widget")
	f.SetField("price", "9.99")

	if err := f.Validate(); err == nil {
		t.Fatal("expected error with no file and no existing value")
	}

	// A staged file satisfies the requirement.
	f.SetFile("imageUrl", &File{Name: "a.png", Content: []byte{1}})
	if err := f.Validate(); err != nil {
		t.Fatalf("staged file should satisfy required file field: %v", err)
	}

	// A retained existing value does too.
	f.Initialize(Record{"name": "widget", "price": 9.99, "imageUrl": "/uploads/a.png"})
	if err := f.Validate(); err != nil {
		t.Fatalf("existing value should satisfy required file field: %v", err)
	}
}

func TestFormStagedFilePreview(t *testing.T) {
	f := NewFormEngine(formTestConfig())
	f.SetFile("imageUrl", &File{Name: "photo.png", Content: []byte("png-bytes")})

	staged, ok := f.StagedFileFor("imageUrl")
	if !ok {
		t.Fatal("expected staged file")
	}
	if !strings.HasPrefix(staged.Preview, "data:image/png;base64,") {
		t.Errorf("preview = %q, want png data URI", staged.Preview)
	}

	// nil clears the staged file.
	f.SetFile("imageUrl", nil)
	if _, ok := f.StagedFileFor("imageUrl"); ok {
		t.Error("SetFile(nil) should clear the staged file")
	}
}

func TestBuildSubmissionCopies(t *testing.T) {
	f := NewFormEngine(formTestConfig())
	f.SetField("name", "widget")
	f.SetFile("imageUrl", &File{Name: "a.png", Content: []byte{1}})

	sub := f.BuildSubmission()
	sub.FormData["name"] = "tampered"
	delete(sub.Files, "imageUrl")

	if got := f.Value("name"); got != "widget" {
		t.Errorf("mutating the submission changed engine state: %v", got)
	}
	if _, ok := f.StagedFileFor("imageUrl"); !ok {
		t.Error("mutating the submission dropped the staged file")
	}
}
