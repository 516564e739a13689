package console

import (
	"context"
	"log/slog"
	"sync"

	"github.com/simp-lee/storeadmin/internal/admin"
	"github.com/simp-lee/storeadmin/internal/admin/configs"
	"github.com/simp-lee/storeadmin/internal/gateway"
)

// Screen is one mounted management screen: an entity configuration, its
// controller holding live state, and the renderer producing display cells.
// Records are fetched from the store API on first visit and kept in sync
// locally by the controller afterwards.
type Screen struct {
	Slug     string
	Config   *admin.EntityConfig
	Endpoint string

	Controller *admin.CrudController
	Renderer   *admin.TableRenderer

	client *gateway.Client

	mu      sync.Mutex
	flash   string // last failed-operation message, consumed on display
	loaded  bool
	loadErr error
}

// newScreen builds a screen from its declarative description. The controller
// starts with an empty store; Load populates it.
func newScreen(es configs.EntityScreen, client *gateway.Client, logger *slog.Logger) (*Screen, error) {
	ctrl, err := admin.NewCrudController(es.Config, nil, logger)
	if err != nil {
		return nil, err
	}
	return &Screen{
		Slug:       es.Slug,
		Config:     es.Config,
		Endpoint:   es.Endpoint,
		Controller: ctrl,
		Renderer:   admin.NewTableRenderer(es.Config),
		client:     client,
	}, nil
}

// Load fetches the full record set from the store API. The first successful
// load is sticky; pass force to refetch.
func (s *Screen) Load(ctx context.Context, force bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loaded && !force {
		return s.loadErr
	}

	records, err := admin.LoadRecords(ctx, s.client, s.Endpoint)
	if err != nil {
		s.loaded = true
		s.loadErr = err
		return err
	}

	s.Controller.Store().SetItems(records)
	s.loaded = true
	s.loadErr = nil
	return nil
}

// SetFlash records a message shown once on the next page render.
func (s *Screen) SetFlash(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flash = msg
}

// TakeFlash returns and clears the pending flash message.
func (s *Screen) TakeFlash() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	msg := s.flash
	s.flash = ""
	return msg
}
