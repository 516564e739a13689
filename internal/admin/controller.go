package admin

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// State is the controller's modal lifecycle position.
type State int

const (
	// StateIdle means no modal is open.
	StateIdle State = iota
	// StateCreating means the form is open for a new record.
	StateCreating
	// StateEditing means the form is open for an existing record.
	StateEditing
	// StateSubmitting means remote calls are in flight; submit and cancel
	// are blocked until they settle.
	StateSubmitting
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateCreating:
		return "creating"
	case StateEditing:
		return "editing"
	case StateSubmitting:
		return "submitting"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// CrudController ties the store, form engine, and API bindings of one admin
// screen together. Each screen owns exactly one controller/store pair for its
// mounted lifetime. A mutex serializes state transitions so two requests
// never race the same store.
type CrudController struct {
	mu sync.Mutex

	config *EntityConfig
	store  *EntityStore
	form   *FormEngine
	logger *slog.Logger

	state       State
	editingID   string
	pendingStop string // id awaiting delete confirmation
}

// NewCrudController creates a controller over a validated config and an
// initial record list.
func NewCrudController(config *EntityConfig, items []Record, logger *slog.Logger) (*CrudController, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	store := NewEntityStore(config.IDField, config.PageSize())
	store.SetItems(items)

	return &CrudController{
		config: config,
		store:  store,
		form:   NewFormEngine(config),
		logger: logger,
		state:  StateIdle,
	}, nil
}

// Config returns the controller's entity config.
func (c *CrudController) Config() *EntityConfig {
	return c.config
}

// Store returns the controller's entity store. Callers must treat it as
// read-only; mutations go through the controller.
func (c *CrudController) Store() *EntityStore {
	return c.store
}

// Form returns the form engine for rendering the open modal.
func (c *CrudController) Form() *FormEngine {
	return c.form
}

// State returns the current lifecycle state.
func (c *CrudController) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// EditingID returns the identifier of the record being edited, or empty.
func (c *CrudController) EditingID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.editingID
}

// OpenCreate transitions Idle -> Creating and initializes a blank form.
func (c *CrudController) OpenCreate() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.config.Actions.Create {
		return fmt.Errorf("%s does not allow creation", c.config.Name)
	}
	if c.state == StateSubmitting {
		return ErrBusy
	}

	c.form.Initialize(nil)
	c.state = StateCreating
	c.editingID = ""
	return nil
}

// OpenEdit transitions Idle -> Editing and initializes the form from the
// record with the given identifier.
func (c *CrudController) OpenEdit(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.config.Actions.Edit {
		return fmt.Errorf("%s does not allow editing", c.config.Name)
	}
	if c.state == StateSubmitting {
		return ErrBusy
	}

	record := c.store.Get(id)
	if record == nil {
		return fmt.Errorf("%s %s not found", c.config.Name, id)
	}

	c.form.Initialize(record)
	c.state = StateEditing
	c.editingID = id
	return nil
}

// SetField forwards a field value to the form. Only valid while a modal is
// open and not submitting.
func (c *CrudController) SetField(key string, value any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateCreating && c.state != StateEditing {
		return fmt.Errorf("no form is open")
	}
	c.form.SetField(key, value)
	return nil
}

// SetFile forwards a staged file to the form. Only valid while a modal is
// open and not submitting.
func (c *CrudController) SetFile(key string, file *File) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateCreating && c.state != StateEditing {
		return fmt.Errorf("no form is open")
	}
	c.form.SetFile(key, file)
	return nil
}

// Cancel discards the form and returns to Idle. Not permitted while a
// submission is in flight.
func (c *CrudController) Cancel() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.state {
	case StateSubmitting:
		return ErrBusy
	case StateIdle:
		return nil
	}

	c.form.Initialize(nil)
	c.state = StateIdle
	c.editingID = ""
	return nil
}

// Submit validates the form and drives the remote mutation: staged files
// upload sequentially in field-declaration order, the transformer runs, then
// exactly one create or update fires. On success the result merges into the
// store and the modal closes. On any failure the modal state and user input
// are preserved so the user can retry or cancel.
func (c *CrudController) Submit(ctx context.Context) error {
	c.mu.Lock()

	if c.state != StateCreating && c.state != StateEditing {
		c.mu.Unlock()
		return fmt.Errorf("no form is open")
	}

	if err := c.form.Validate(); err != nil {
		c.mu.Unlock()
		return err
	}

	preState := c.state
	editingID := c.editingID
	submission := c.form.BuildSubmission()
	c.state = StateSubmitting
	c.mu.Unlock()

	result, err := c.performSubmission(ctx, preState, editingID, submission)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		// Back to the pre-submit state; the form still holds the user input.
		c.state = preState
		c.logger.Warn("submission failed",
			slog.String("entity", c.config.Name),
			slog.String("state", preState.String()),
			slog.Any("error", err),
		)
		return err
	}

	c.store.Upsert(result)
	c.form.Initialize(nil)
	c.state = StateIdle
	c.editingID = ""
	return nil
}

// performSubmission runs the remote leg of a submission: uploads, transform,
// then the create or update call. Runs without the lock held.
func (c *CrudController) performSubmission(ctx context.Context, preState State, editingID string, sub Submission) (Record, error) {
	data := sub.FormData

	// Uploads complete strictly before the mutation call, one at a time in
	// field-declaration order, so an upload failure names exactly one field.
	for _, field := range c.config.Fields {
		if !c.isFileField(field.Key) {
			continue
		}
		staged, ok := sub.Files[field.Key]
		if !ok {
			// No new file during an edit keeps the record's existing value,
			// which Initialize already placed in the form data.
			continue
		}

		if c.config.API.UploadFile == nil {
			// Demo-mode fallback: the local preview stands in for a stored
			// URL. Nothing is persisted remotely.
			data[field.Key] = staged.Preview
			continue
		}

		url, err := c.config.API.UploadFile(ctx, staged.File, field.Key)
		if err != nil {
			return nil, &UploadError{Field: field.Key, Err: err}
		}
		data[field.Key] = url
	}

	if c.config.BeforeSave != nil {
		data = c.config.BeforeSave(data)
	}

	if preState == StateEditing {
		result, err := c.config.API.Update(ctx, editingID, data)
		if err != nil {
			return nil, &MutationError{Op: "update", Message: err.Error(), Err: err}
		}
		return result, nil
	}

	result, err := c.config.API.Create(ctx, data)
	if err != nil {
		return nil, &MutationError{Op: "create", Message: err.Error(), Err: err}
	}
	return result, nil
}

// RequestRemove marks a record for deletion, pending confirmation. The view
// renders the confirm gate from this mark.
func (c *CrudController) RequestRemove(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.config.Actions.Delete {
		return fmt.Errorf("%s does not allow deletion", c.config.Name)
	}
	if c.state != StateIdle {
		return ErrBusy
	}
	if c.store.Get(id) == nil {
		return fmt.Errorf("%s %s not found", c.config.Name, id)
	}

	c.pendingStop = id
	return nil
}

// PendingRemoval returns the identifier awaiting delete confirmation, or empty.
func (c *CrudController) PendingRemoval() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pendingStop
}

// CancelRemove clears a pending delete confirmation.
func (c *CrudController) CancelRemove() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pendingStop = ""
}

// Remove deletes the record whose confirmation is pending. A mismatched or
// missing confirmation fails with ErrNotConfirmed and performs no remote
// call. On success the record leaves the store and the current page clamps
// back into range; on failure the store is unchanged.
func (c *CrudController) Remove(ctx context.Context, id string) error {
	c.mu.Lock()

	if !c.config.Actions.Delete {
		c.mu.Unlock()
		return fmt.Errorf("%s does not allow deletion", c.config.Name)
	}
	if c.state != StateIdle {
		c.mu.Unlock()
		return ErrBusy
	}
	if c.pendingStop == "" || c.pendingStop != id {
		c.mu.Unlock()
		return ErrNotConfirmed
	}
	c.pendingStop = ""
	c.mu.Unlock()

	if err := c.config.API.Delete(ctx, id); err != nil {
		c.logger.Warn("delete failed",
			slog.String("entity", c.config.Name),
			slog.String("id", id),
			slog.Any("error", err),
		)
		return &MutationError{Op: "delete", Message: err.Error(), Err: err}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.store.Remove(id)
	return nil
}

// SetPage moves the table to the given page, clamped into range.
func (c *CrudController) SetPage(page int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store.SetPage(page)
}

func (c *CrudController) isFileField(key string) bool {
	for _, k := range c.config.FileFields {
		if k == key {
			return true
		}
	}
	return false
}
