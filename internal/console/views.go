package console

import (
	"fmt"
	"strconv"

	"github.com/simp-lee/storeadmin/internal/admin"
)

// screenLink is one entry in the console navigation bar.
type screenLink struct {
	Slug   string
	Title  string
	Active bool
}

// fieldView is one form input prepared for template rendering.
type fieldView struct {
	Key         string
	Label       string
	Kind        string
	Required    bool
	Value       string
	Checked     bool
	Options     []admin.SelectOption
	Pattern     string
	MinLength   int
	MaxLength   int
	Min         string
	Max         string
	Step        string
	Placeholder string
	Preview     string // staged file preview, file fields only
}

// screenView is the full template payload for one management screen.
type screenView struct {
	Title   string
	Slug    string
	Name    string
	Nav     []screenLink
	Columns []admin.Column
	Rows    []admin.Row
	Window  admin.PageWindow
	Total   int
	Actions admin.Actions

	ModalOpen  bool
	ModalTitle string
	Editing    bool
	Fields     []fieldView
	HasFiles   bool

	Pending string // record id awaiting delete confirmation

	Flash     string
	LoadError string
}

// buildScreenView snapshots a screen's controller state for rendering.
func (con *Console) buildScreenView(s *Screen, loadErr error) screenView {
	ctrl := s.Controller
	store := ctrl.Store()
	form := ctrl.Form()
	cfg := s.Config

	view := screenView{
		Title:   cfg.Title,
		Slug:    s.Slug,
		Name:    cfg.Name,
		Nav:     con.navLinks(s.Slug),
		Columns: cfg.Columns,
		Rows:    s.Renderer.RenderPage(store),
		Window:  s.Renderer.Window(store),
		Total:   store.Len(),
		Actions: cfg.Actions,
		Pending: ctrl.PendingRemoval(),
		Flash:   s.TakeFlash(),
	}

	if loadErr != nil {
		view.LoadError = loadErr.Error()
	}

	state := ctrl.State()
	if state == admin.StateCreating || state == admin.StateEditing || state == admin.StateSubmitting {
		view.ModalOpen = true
		view.Editing = state == admin.StateEditing || (state == admin.StateSubmitting && ctrl.EditingID() != "")
		if view.Editing {
			view.ModalTitle = "Edit " + cfg.Name
		} else {
			view.ModalTitle = "New " + cfg.Name
		}
		view.Fields = buildFieldViews(cfg, form)
		view.HasFiles = len(cfg.FileFields) > 0
	}

	return view
}

func buildFieldViews(cfg *admin.EntityConfig, form *admin.FormEngine) []fieldView {
	views := make([]fieldView, 0, len(cfg.Fields))
	for _, f := range cfg.Fields {
		fv := fieldView{
			Key:         f.Key,
			Label:       f.Label,
			Kind:        string(f.Kind),
			Required:    f.Required,
			Options:     f.Options,
			Pattern:     f.Pattern,
			MinLength:   f.MinLength,
			MaxLength:   f.MaxLength,
			Min:         f.Min,
			Max:         f.Max,
			Step:        f.Step,
			Placeholder: f.Placeholder,
		}

		val := form.Value(f.Key)
		switch f.Kind {
		case admin.FieldCheckbox:
			fv.Checked, _ = val.(bool)
		case admin.FieldFile:
			if staged, ok := form.StagedFileFor(f.Key); ok {
				fv.Preview = staged.Preview
			} else {
				fv.Value = inputString(val)
			}
		default:
			fv.Value = inputString(val)
		}

		views = append(views, fv)
	}
	return views
}

func (con *Console) navLinks(active string) []screenLink {
	links := make([]screenLink, 0, len(con.screens))
	for _, s := range con.screens {
		links = append(links, screenLink{
			Slug:   s.Slug,
			Title:  s.Config.Plural(),
			Active: s.Slug == active,
		})
	}
	return links
}

// inputString renders a form value into an input's value attribute.
func inputString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case bool:
		if x {
			return "true"
		}
		return ""
	default:
		return fmt.Sprint(x)
	}
}
