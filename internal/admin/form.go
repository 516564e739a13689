package admin

import (
	"encoding/base64"
	"fmt"
	"mime"
	"path/filepath"
	"strings"
)

// StagedFile is a selected binary payload that has not been uploaded yet,
// together with a locally derived preview representation.
type StagedFile struct {
	File    File
	Preview string // data URI renderable without a round trip
}

// Submission is the form's current state handed to the controller: the field
// value mapping and the staged file mapping. Building it does not mutate the
// engine.
type Submission struct {
	FormData Record
	Files    map[string]StagedFile
}

// FormEngine produces editable state for a record (or a blank record for
// creation) and validates it against the config's field list before
// submission is attempted.
type FormEngine struct {
	config *EntityConfig
	values Record
	files  map[string]StagedFile
}

// NewFormEngine creates an engine bound to the given config.
func NewFormEngine(config *EntityConfig) *FormEngine {
	f := &FormEngine{config: config}
	f.Initialize(nil)
	return f
}

// Initialize resets the form from the existing record, or to field defaults
// when existing is nil. Staged files and previews are cleared. Re-initializing
// with the same arguments reproduces the same state.
func (f *FormEngine) Initialize(existing Record) {
	values := make(Record, len(f.config.Fields))
	for _, field := range f.config.Fields {
		if existing != nil {
			if v, ok := existing[field.Key]; ok && v != nil {
				values[field.Key] = v
				continue
			}
		}
		if field.Default != nil {
			values[field.Key] = field.Default
			continue
		}
		if field.Kind == FieldCheckbox {
			values[field.Key] = false
		} else {
			values[field.Key] = ""
		}
	}
	f.values = values
	f.files = make(map[string]StagedFile)
}

// SetField stores a value by field key. Checkbox fields store a boolean;
// everything else keeps the raw input as-is. Coercion happens only in the
// config's BeforeSave transformer.
func (f *FormEngine) SetField(key string, raw any) {
	field := f.config.FieldByKey(key)
	if field == nil {
		return
	}
	if field.Kind == FieldCheckbox {
		f.values[key] = asBool(raw)
		return
	}
	f.values[key] = raw
}

// Value returns the current value for a field key.
func (f *FormEngine) Value(key string) any {
	return f.values[key]
}

// SetFile stages a file for upload and derives its preview, or clears both
// when file is nil.
func (f *FormEngine) SetFile(key string, file *File) {
	if file == nil {
		delete(f.files, key)
		return
	}
	f.files[key] = StagedFile{
		File:    *file,
		Preview: dataURI(file.Name, file.Content),
	}
}

// StagedFileFor returns the staged file for a key, if any.
func (f *FormEngine) StagedFileFor(key string) (StagedFile, bool) {
	sf, ok := f.files[key]
	return sf, ok
}

// Validate checks every required field for a present, non-blank value and
// fails on the first omission. Constraint hints beyond presence are advisory
// to the form renderer; the backend enforces them authoritatively.
func (f *FormEngine) Validate() error {
	for _, field := range f.config.Fields {
		if !field.Required {
			continue
		}
		if field.Kind == FieldFile {
			// A staged file or a retained existing value both satisfy a
			// required file field.
			if _, ok := f.files[field.Key]; ok {
				continue
			}
		}
		if isBlank(f.values[field.Key]) {
			return &ValidationError{
				Field:   field.Key,
				Message: fmt.Sprintf("%s is required", field.Label),
			}
		}
	}
	return nil
}

// BuildSubmission returns copies of the current field values and staged
// files without mutating engine state.
func (f *FormEngine) BuildSubmission() Submission {
	files := make(map[string]StagedFile, len(f.files))
	for k, v := range f.files {
		files[k] = v
	}
	return Submission{
		FormData: f.values.Clone(),
		Files:    files,
	}
}

// dataURI encodes content as a base64 data URI, guessing the media type from
// the file extension.
func dataURI(name string, content []byte) string {
	mediaType := mime.TypeByExtension(strings.ToLower(filepath.Ext(name)))
	if mediaType == "" {
		mediaType = "application/octet-stream"
	}
	return "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(content)
}

// asBool interprets checkbox input. HTML forms post "on" for checked boxes.
func asBool(raw any) bool {
	switch v := raw.(type) {
	case bool:
		return v
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "on", "1", "yes":
			return true
		}
		return false
	case nil:
		return false
	default:
		return false
	}
}

// isBlank reports whether a value counts as missing for required-field
// validation: nil, false, blank strings, and numeric zero.
func isBlank(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(val) == ""
	case bool:
		return !val
	case float64:
		return val == 0
	case float32:
		return val == 0
	case int:
		return val == 0
	case int64:
		return val == 0
	default:
		return false
	}
}
