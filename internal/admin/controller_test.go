package admin

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

// fakeAPI records calls and injects failures for controller tests.
type fakeAPI struct {
	createCalls int
	updateCalls int
	deleteCalls int
	uploadCalls int

	lastCreate Record
	lastUpdate Record
	lastID     string
	uploadKeys []string

	createErr error
	updateErr error
	deleteErr error
	uploadErr error

	nextID int
}

func (f *fakeAPI) bindings() API {
	return API{
		Create: func(_ context.Context, data Record) (Record, error) {
			f.createCalls++
			f.lastCreate = data
			if f.createErr != nil {
				return nil, f.createErr
			}
			f.nextID++
			out := data.Clone()
			out["id"] = float64(f.nextID + 100)
			return out, nil
		},
		Update: func(_ context.Context, id string, data Record) (Record, error) {
			f.updateCalls++
			f.lastID = id
			f.lastUpdate = data
			if f.updateErr != nil {
				return nil, f.updateErr
			}
			out := data.Clone()
			return out, nil
		},
		Delete: func(_ context.Context, id string) error {
			f.deleteCalls++
			f.lastID = id
			return f.deleteErr
		},
		UploadFile: func(_ context.Context, file File, fieldKey string) (string, error) {
			f.uploadCalls++
			f.uploadKeys = append(f.uploadKeys, fieldKey)
			if f.uploadErr != nil {
				return "", f.uploadErr
			}
			return "/uploads/" + file.Name, nil
		},
	}
}

func controllerTestConfig(api API) *EntityConfig {
	return &EntityConfig{
		Name:    "Product",
		IDField: "id",
		Columns: []Column{{Key: "name", Label: "Name", Kind: ColumnText}},
		Fields: []Field{
			{Key: "name", Label: "Product Name", Kind: FieldText, Required: true},
			{Key: "price", Label: "Price", Kind: FieldNumber},
			{Key: "imageUrl", Label: "Image", Kind: FieldFile},
		},
		FileFields:   []string{"imageUrl"},
		API:          api,
		ItemsPerPage: 10,
		Actions:      Actions{Create: true, Edit: true, Delete: true},
	}
}

func newTestController(t *testing.T, api *fakeAPI, items []Record) *CrudController {
	t.Helper()
	ctrl, err := NewCrudController(controllerTestConfig(api.bindings()), items, nil)
	if err != nil {
		t.Fatalf("NewCrudController: %v", err)
	}
	return ctrl
}

func TestControllerCreateFlow(t *testing.T) {
	api := &fakeAPI{}
	ctrl := newTestController(t, api, nil)

	if err := ctrl.OpenCreate(); err != nil {
		t.Fatalf("OpenCreate: %v", err)
	}
	if ctrl.State() != StateCreating {
		t.Fatalf("state = %v, want creating", ctrl.State())
	}

	ctrl.SetField("name", "widget")
	ctrl.SetField("price", "9.99")
	if err := ctrl.Submit(context.Background()); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if api.createCalls != 1 {
		t.Errorf("create calls = %d, want 1", api.createCalls)
	}
	if ctrl.State() != StateIdle {
		t.Errorf("state = %v, want idle after success", ctrl.State())
	}
	if ctrl.Store().Len() != 1 {
		t.Errorf("store len = %d, want 1", ctrl.Store().Len())
	}
	// The form resets for the next record.
	if got := ctrl.Form().Value("name"); got != "" {
		t.Errorf("form should reset after success, name = %v", got)
	}
}

func TestControllerEditMergesResult(t *testing.T) {
	api := &fakeAPI{}
	ctrl := newTestController(t, api, []Record{
		{"id": float64(1), "name": "widget", "price": 9.99, "stock": float64(4)},
	})

	if err := ctrl.OpenEdit("1"); err != nil {
		t.Fatalf("OpenEdit: %v", err)
	}
	if got := ctrl.Form().Value("name"); got != "widget" {
		t.Fatalf("form should load existing values, name = %v", got)
	}

	ctrl.SetField("name", "gadget")
	if err := ctrl.Submit(context.Background()); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if api.updateCalls != 1 || api.createCalls != 0 {
		t.Errorf("calls: update = %d create = %d, want 1/0", api.updateCalls, api.createCalls)
	}
	if api.lastID != "1" {
		t.Errorf("update id = %q, want 1", api.lastID)
	}

	rec := ctrl.Store().Get("1")
	if rec["name"] != "gadget" {
		t.Errorf("name = %v, want gadget", rec["name"])
	}
	// Attributes absent from the result survive the merge.
	if rec["stock"] != float64(4) {
		t.Errorf("stock = %v, want 4", rec["stock"])
	}
}

func TestControllerValidationShortCircuits(t *testing.T) {
	api := &fakeAPI{}
	ctrl := newTestController(t, api, nil)

	ctrl.OpenCreate()
	err := ctrl.Submit(context.Background())
	if err == nil {
		t.Fatal("expected validation error")
	}
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("error type = %T, want *ValidationError", err)
	}
	if api.createCalls != 0 || api.uploadCalls != 0 {
		t.Errorf("no remote call may fire on validation failure: create = %d upload = %d",
			api.createCalls, api.uploadCalls)
	}
	if ctrl.State() != StateCreating {
		t.Errorf("state = %v, modal should stay open", ctrl.State())
	}
	if got := ctrl.Form().Value("name"); got != "" {
		t.Errorf("unexpected form mutation: %v", got)
	}
}

func TestControllerCreateFailureKeepsEverything(t *testing.T) {
	api := &fakeAPI{createErr: errors.New("Failed to create product")}
	ctrl := newTestController(t, api, nil)

	ctrl.OpenCreate()
	ctrl.SetField("name", "widget")
	err := ctrl.Submit(context.Background())
	if err == nil {
		t.Fatal("expected mutation error")
	}

	var mErr *MutationError
	if !errors.As(err, &mErr) {
		t.Fatalf("error type = %T, want *MutationError", err)
	}
	// The backend message surfaces verbatim.
	if mErr.Error() != "Failed to create product" {
		t.Errorf("message = %q", mErr.Error())
	}
	if ctrl.Store().Len() != 0 {
		t.Errorf("failed create must not touch the store, len = %d", ctrl.Store().Len())
	}
	if ctrl.State() != StateCreating {
		t.Errorf("state = %v, want creating preserved", ctrl.State())
	}
	if got := ctrl.Form().Value("name"); got != "widget" {
		t.Errorf("user input should survive the failure, name = %v", got)
	}

	// A retry after the backend recovers succeeds.
	api.createErr = nil
	if err := ctrl.Submit(context.Background()); err != nil {
		t.Fatalf("retry: %v", err)
	}
	if ctrl.Store().Len() != 1 {
		t.Errorf("store len = %d after retry, want 1", ctrl.Store().Len())
	}
}

func TestControllerUploadsBeforeMutation(t *testing.T) {
	api := &fakeAPI{}
	ctrl := newTestController(t, api, nil)

	ctrl.OpenCreate()
	ctrl.SetField("name", "widget")
	ctrl.SetFile("imageUrl", &File{Name: "photo.png", Content: []byte{1, 2}})
	if err := ctrl.Submit(context.Background()); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if api.uploadCalls != 1 {
		t.Fatalf("upload calls = %d, want 1", api.uploadCalls)
	}
	if api.uploadKeys[0] != "imageUrl" {
		t.Errorf("upload field = %q", api.uploadKeys[0])
	}
	// The mutation payload carries the uploaded URL, not the raw file.
	if got := api.lastCreate["imageUrl"]; got != "/uploads/photo.png" {
		t.Errorf("imageUrl in payload = %v", got)
	}
}

func TestControllerUploadFailureNamesField(t *testing.T) {
	api := &fakeAPI{uploadErr: errors.New("disk full")}
	ctrl := newTestController(t, api, nil)

	ctrl.OpenCreate()
	ctrl.SetField("name", "widget")
	ctrl.SetFile("imageUrl", &File{Name: "photo.png", Content: []byte{1}})
	err := ctrl.Submit(context.Background())

	var uErr *UploadError
	if !errors.As(err, &uErr) {
		t.Fatalf("error type = %T, want *UploadError", err)
	}
	if uErr.Field != "imageUrl" {
		t.Errorf("failing field = %q", uErr.Field)
	}
	if api.createCalls != 0 {
		t.Errorf("create must not fire after a failed upload, calls = %d", api.createCalls)
	}
	if ctrl.State() != StateCreating {
		t.Errorf("state = %v, want creating preserved", ctrl.State())
	}
}

func TestControllerPreviewFallbackWithoutUploader(t *testing.T) {
	api := &fakeAPI{}
	bindings := api.bindings()
	bindings.UploadFile = nil
	cfg := controllerTestConfig(bindings)
	ctrl, err := NewCrudController(cfg, nil, nil)
	if err != nil {
		t.Fatalf("NewCrudController: %v", err)
	}

	ctrl.OpenCreate()
	ctrl.SetField("name", "widget")
	ctrl.SetFile("imageUrl", &File{Name: "photo.png", Content: []byte("x")})
	if err := ctrl.Submit(context.Background()); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	got, _ := api.lastCreate["imageUrl"].(string)
	if !strings.HasPrefix(got, "data:image/png;base64,") {
		t.Errorf("payload should carry the preview data URI, got %q", got)
	}
}

func TestControllerEditWithoutNewFileKeepsURL(t *testing.T) {
	api := &fakeAPI{}
	ctrl := newTestController(t, api, []Record{
		{"id": float64(1), "name": "widget", "imageUrl": "/uploads/old.png"},
	})

	ctrl.OpenEdit("1")
	ctrl.SetField("name", "gadget")
	if err := ctrl.Submit(context.Background()); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if api.uploadCalls != 0 {
		t.Errorf("no staged file, no upload; calls = %d", api.uploadCalls)
	}
	if got := api.lastUpdate["imageUrl"]; got != "/uploads/old.png" {
		t.Errorf("existing url should carry through, got %v", got)
	}
}

func TestControllerBeforeSave(t *testing.T) {
	api := &fakeAPI{}
	cfg := controllerTestConfig(api.bindings())
	cfg.BeforeSave = func(data Record) Record {
		out := data.Clone()
		if s, ok := out["price"].(string); ok {
			out["price"] = s + "-transformed"
		}
		return out
	}
	ctrl, err := NewCrudController(cfg, nil, nil)
	if err != nil {
		t.Fatalf("NewCrudController: %v", err)
	}

	ctrl.OpenCreate()
	ctrl.SetField("name", "widget")
	ctrl.SetField("price", "9.99")
	if err := ctrl.Submit(context.Background()); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if got := api.lastCreate["price"]; got != "9.99-transformed" {
		t.Errorf("transformer did not run, price = %v", got)
	}
	// The form's own values stay raw for a possible retry.
	if got := ctrl.Form().Value("price"); got == "9.99-transformed" {
		t.Error("transformer leaked into form state")
	}
}

func TestControllerRemoveRequiresConfirmation(t *testing.T) {
	api := &fakeAPI{}
	ctrl := newTestController(t, api, makeRecords(3))

	// Remove without a prior request is rejected.
	if err := ctrl.Remove(context.Background(), "2"); !errors.Is(err, ErrNotConfirmed) {
		t.Fatalf("err = %v, want ErrNotConfirmed", err)
	}
	if api.deleteCalls != 0 {
		t.Fatalf("delete fired without confirmation, calls = %d", api.deleteCalls)
	}

	if err := ctrl.RequestRemove("2"); err != nil {
		t.Fatalf("RequestRemove: %v", err)
	}
	if ctrl.PendingRemoval() != "2" {
		t.Errorf("pending = %q, want 2", ctrl.PendingRemoval())
	}

	// Confirming a different id is also rejected.
	if err := ctrl.Remove(context.Background(), "3"); err == nil {
		t.Error("mismatched confirmation should fail")
	}

	if err := ctrl.RequestRemove("2"); err != nil {
		t.Fatalf("RequestRemove again: %v", err)
	}
	if err := ctrl.Remove(context.Background(), "2"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if api.deleteCalls != 1 {
		t.Errorf("delete calls = %d, want 1", api.deleteCalls)
	}
	if ctrl.Store().Get("2") != nil {
		t.Error("record 2 should be gone")
	}
	if ctrl.PendingRemoval() != "" {
		t.Errorf("pending should clear, got %q", ctrl.PendingRemoval())
	}
}

func TestControllerRemoveFailureKeepsStore(t *testing.T) {
	api := &fakeAPI{deleteErr: errors.New("Failed to delete product")}
	ctrl := newTestController(t, api, makeRecords(2))

	ctrl.RequestRemove("1")
	err := ctrl.Remove(context.Background(), "1")
	if err == nil {
		t.Fatal("expected mutation error")
	}
	if err.Error() != "Failed to delete product" {
		t.Errorf("message = %q", err.Error())
	}
	if ctrl.Store().Len() != 2 {
		t.Errorf("failed delete must not shrink the store, len = %d", ctrl.Store().Len())
	}
}

func TestControllerRemoveClampsPage(t *testing.T) {
	api := &fakeAPI{}
	ctrl := newTestController(t, api, makeRecords(11))
	ctrl.SetPage(2)

	ctrl.RequestRemove("11")
	if err := ctrl.Remove(context.Background(), "11"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if got := ctrl.Store().CurrentPage(); got != 1 {
		t.Errorf("page = %d, want clamped to 1", got)
	}
}

func TestControllerCancel(t *testing.T) {
	api := &fakeAPI{}
	ctrl := newTestController(t, api, nil)

	// Cancel while idle is a no-op.
	if err := ctrl.Cancel(); err != nil {
		t.Fatalf("Cancel while idle: %v", err)
	}

	ctrl.OpenCreate()
	ctrl.SetField("name", "widget")
	if err := ctrl.Cancel(); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if ctrl.State() != StateIdle {
		t.Errorf("state = %v, want idle", ctrl.State())
	}
	if got := ctrl.Form().Value("name"); got != "" {
		t.Errorf("cancel should discard input, name = %v", got)
	}
}

func TestControllerDisabledActions(t *testing.T) {
	api := &fakeAPI{}
	bindings := api.bindings()
	cfg := controllerTestConfig(bindings)
	cfg.Actions = Actions{Create: true, Edit: true, Delete: false}
	cfg.API.Delete = nil
	ctrl, err := NewCrudController(cfg, makeRecords(1), nil)
	if err != nil {
		t.Fatalf("NewCrudController: %v", err)
	}

	if err := ctrl.RequestRemove("1"); err == nil {
		t.Error("delete disabled, RequestRemove should fail")
	}
	if err := ctrl.Remove(context.Background(), "1"); err == nil {
		t.Error("delete disabled, Remove should fail")
	}
}

func TestControllerOpenEditUnknownID(t *testing.T) {
	api := &fakeAPI{}
	ctrl := newTestController(t, api, makeRecords(1))
	if err := ctrl.OpenEdit("99"); err == nil {
		t.Error("expected error for unknown id")
	}
	if ctrl.State() != StateIdle {
		t.Errorf("state = %v, want idle", ctrl.State())
	}
}

func TestControllerRejectsInvalidConfig(t *testing.T) {
	api := &fakeAPI{}
	cfg := controllerTestConfig(api.bindings())
	cfg.IDField = ""
	if _, err := NewCrudController(cfg, nil, nil); err == nil {
		t.Error("expected config validation error")
	}
}

func TestControllerSubmitWithoutOpenForm(t *testing.T) {
	api := &fakeAPI{}
	ctrl := newTestController(t, api, nil)
	if err := ctrl.Submit(context.Background()); err == nil {
		t.Error("expected error submitting with no open form")
	}
	if api.createCalls != 0 {
		t.Errorf("create calls = %d, want 0", api.createCalls)
	}
}

func TestControllerFieldCallsOutsideModal(t *testing.T) {
	api := &fakeAPI{}
	ctrl := newTestController(t, api, nil)
	if err := ctrl.SetField("name", "x"); err == nil {
		t.Error("SetField outside a modal should fail")
	}
	if err := ctrl.SetFile("imageUrl", &File{Name: "a.png"}); err == nil {
		t.Error("SetFile outside a modal should fail")
	}
}

func TestControllerSequentialUploadOrder(t *testing.T) {
	api := &fakeAPI{}
	cfg := &EntityConfig{
		Name:    "Gallery",
		IDField: "id",
		Columns: []Column{{Key: "name", Kind: ColumnText}},
		Fields: []Field{
			{Key: "name", Label: "Name", Kind: FieldText},
			{Key: "cover", Label: "Cover", Kind: FieldFile},
			{Key: "thumb", Label: "Thumb", Kind: FieldFile},
		},
		FileFields: []string{"thumb", "cover"}, // declaration order of Fields wins
		API:        api.bindings(),
		Actions:    Actions{Create: true},
	}
	ctrl, err := NewCrudController(cfg, nil, nil)
	if err != nil {
		t.Fatalf("NewCrudController: %v", err)
	}

	ctrl.OpenCreate()
	ctrl.SetFile("thumb", &File{Name: "t.png", Content: []byte{1}})
	ctrl.SetFile("cover", &File{Name: "c.png", Content: []byte{2}})
	if err := ctrl.Submit(context.Background()); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	want := []string{"cover", "thumb"}
	if fmt.Sprint(api.uploadKeys) != fmt.Sprint(want) {
		t.Errorf("upload order = %v, want %v", api.uploadKeys, want)
	}
}
