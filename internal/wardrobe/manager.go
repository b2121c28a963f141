// Package wardrobe holds the in-memory closet state: garments, the user
// profile and the preferred unit system. The Manager is the only writer; every
// mutation is mirrored to the configured Persister before the call returns.
package wardrobe

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/yusufkecer/fit-assistant/internal/domain"
	"github.com/yusufkecer/fit-assistant/internal/logger"
	"go.uber.org/zap"
)

// Persister receives a record every time the matching state changes.
type Persister interface {
	SaveGarments(ctx context.Context, garments []domain.Garment) error
	SaveProfile(ctx context.Context, p domain.UserProfile) error
	SaveUnitSystem(ctx context.Context, u domain.UnitSystem) error
}

// Loader reads the persisted records once at startup.
type Loader interface {
	LoadGarments(ctx context.Context) ([]domain.Garment, error)
	LoadProfile(ctx context.Context, defaultProfile domain.UserProfile) (domain.UserProfile, error)
	LoadUnitSystem(ctx context.Context) (domain.UnitSystem, error)
}

// ImageStore turns a picked local image into a URL a garment can reference.
type ImageStore interface {
	Store(ctx context.Context, f domain.ImageFile) (string, error)
}

// State is the full closet snapshot a Manager starts from.
type State struct {
	Garments   []domain.Garment
	Profile    *domain.UserProfile
	UnitSystem domain.UnitSystem
}

type Option func(*Manager)

func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

func WithIDGenerator(newID func() string) Option {
	return func(m *Manager) { m.newID = newID }
}

func WithPersister(p Persister) Option {
	return func(m *Manager) { m.persister = p }
}

func WithImageStore(s ImageStore) Option {
	return func(m *Manager) { m.images = s }
}

func WithLogger(l *zap.Logger) Option {
	return func(m *Manager) { m.log = logger.OrNop(l) }
}

type Manager struct {
	mu         sync.RWMutex
	garments   []domain.Garment
	profile    *domain.UserProfile
	unitSystem domain.UnitSystem

	now       func() time.Time
	newID     func() string
	persister Persister
	images    ImageStore
	log       *zap.Logger
}

func New(state State, opts ...Option) *Manager {
	m := &Manager{
		unitSystem: state.UnitSystem,
		now:        time.Now,
		newID:      uuid.NewString,
		log:        zap.NewNop(),
	}
	for _, g := range state.Garments {
		m.garments = append(m.garments, g.Clone())
	}
	if state.Profile != nil {
		p := state.Profile.Clone()
		m.profile = &p
	}
	if m.unitSystem == "" {
		m.unitSystem = domain.Metric
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Load builds a Manager from the persisted records. defaultProfile is used
// when no valid profile is stored.
func Load(ctx context.Context, l Loader, defaultProfile domain.UserProfile, opts ...Option) (*Manager, error) {
	garments, err := l.LoadGarments(ctx)
	if err != nil {
		return nil, err
	}
	profile, err := l.LoadProfile(ctx, defaultProfile)
	if err != nil {
		return nil, err
	}
	unitSystem, err := l.LoadUnitSystem(ctx)
	if err != nil {
		return nil, err
	}
	return New(State{Garments: garments, Profile: &profile, UnitSystem: unitSystem}, opts...), nil
}

func (m *Manager) Garments() []domain.Garment {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return cloneGarments(m.garments)
}

func (m *Manager) Garment(id string) (domain.Garment, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if i := m.indexOf(id); i >= 0 {
		return m.garments[i].Clone(), true
	}
	return domain.Garment{}, false
}

// AddGarment commits form data as a new garment. The teach flag is forced
// off when the form lacks measurements or fit perceptions.
func (m *Manager) AddGarment(ctx context.Context, form domain.GarmentFormData) domain.Garment {
	imageURL := m.resolveImage(ctx, form)

	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	g := domain.Garment{
		ID:                m.newID(),
		Name:              form.Name,
		Brand:             form.Brand,
		Type:              form.Type,
		Size:              form.Size,
		Color:             form.Color,
		ImageURL:          imageURL,
		TeachFitAssistant: form.EffectiveTeachFitAssistant(),
		Measurements:      append([]domain.BodyMeasurement(nil), form.Measurements...),
		Fit:               append([]domain.GarmentFit(nil), form.Fit...),
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	m.garments = append(m.garments, g)

	m.log.Debug("garment added", zap.String("id", g.ID), zap.Bool("teach_fit_assistant", g.TeachFitAssistant))
	m.saveGarments(ctx)
	return g.Clone()
}

// UpdateGarment applies u to the garment with the given id. Unknown ids are
// ignored and reported as false.
func (m *Manager) UpdateGarment(ctx context.Context, id string, u domain.GarmentUpdate) (domain.Garment, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(id)
	if i < 0 {
		return domain.Garment{}, false
	}
	g := u.Apply(m.garments[i])
	g.UpdatedAt = m.now()
	m.garments[i] = g

	m.saveGarments(ctx)
	return g.Clone(), true
}

// ReplaceGarment overwrites every editable field of an existing garment from
// form data, applying the same teach flag rule as AddGarment.
func (m *Manager) ReplaceGarment(ctx context.Context, id string, form domain.GarmentFormData) (domain.Garment, bool) {
	if _, ok := m.Garment(id); !ok {
		return domain.Garment{}, false
	}
	imageURL := m.resolveImage(ctx, form)
	teach := form.EffectiveTeachFitAssistant()

	return m.UpdateGarment(ctx, id, domain.GarmentUpdate{
		Name:              &form.Name,
		Brand:             &form.Brand,
		Type:              &form.Type,
		Size:              &form.Size,
		Color:             &form.Color,
		ImageURL:          &imageURL,
		TeachFitAssistant: &teach,
		Measurements:      form.Measurements,
		Fit:               form.Fit,
		SetMeasurements:   true,
		SetFit:            true,
	})
}

// DeleteGarment removes the garment. Deleting an unknown id is a no-op.
func (m *Manager) DeleteGarment(ctx context.Context, id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(id)
	if i < 0 {
		return false
	}
	m.garments = append(m.garments[:i:i], m.garments[i+1:]...)

	m.saveGarments(ctx)
	return true
}

func (m *Manager) UnitSystem() domain.UnitSystem {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.unitSystem
}

func (m *Manager) ToggleUnitSystem(ctx context.Context) domain.UnitSystem {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.unitSystem = m.unitSystem.Toggle()
	if m.persister != nil {
		if err := m.persister.SaveUnitSystem(ctx, m.unitSystem); err != nil {
			m.log.Warn("failed to persist unit system", zap.Error(err))
		}
	}
	return m.unitSystem
}

func (m *Manager) indexOf(id string) int {
	for i, g := range m.garments {
		if g.ID == id {
			return i
		}
	}
	return -1
}

func (m *Manager) resolveImage(ctx context.Context, form domain.GarmentFormData) string {
	if form.ImageFile != nil {
		if m.images != nil {
			url, err := m.images.Store(ctx, *form.ImageFile)
			if err == nil {
				return url
			}
			m.log.Warn("failed to store garment image", zap.String("path", form.ImageFile.Path), zap.Error(err))
		} else {
			return "file://" + form.ImageFile.Path
		}
	}
	if form.ImageURL != "" {
		return form.ImageURL
	}
	return domain.PlaceholderImageURL
}

// saveGarments must be called with m.mu held.
func (m *Manager) saveGarments(ctx context.Context) {
	if m.persister == nil {
		return
	}
	if err := m.persister.SaveGarments(ctx, cloneGarments(m.garments)); err != nil {
		m.log.Warn("failed to persist garments", zap.Error(err))
	}
}

func cloneGarments(gs []domain.Garment) []domain.Garment {
	out := make([]domain.Garment, len(gs))
	for i, g := range gs {
		out[i] = g.Clone()
	}
	return out
}
