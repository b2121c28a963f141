package wardrobe

import (
	"context"

	"github.com/yusufkecer/fit-assistant/internal/domain"
	"go.uber.org/zap"
)

func (m *Manager) Profile() (domain.UserProfile, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.profile == nil {
		return domain.UserProfile{}, false
	}
	return m.profile.Clone(), true
}

// SetProfile replaces the profile. Duplicate measurement types are collapsed
// to their first entry and a missing height is restored.
func (m *Manager) SetProfile(ctx context.Context, p domain.UserProfile) {
	p, fixes := p.Clone().Repair()
	for _, fix := range fixes {
		m.log.Debug("adjusted profile", zap.String("change", fix))
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.profile = &p
	m.saveProfile(ctx)
}

// UpdateMeasurement changes the value of a measurement already on the
// profile. It does nothing when there is no profile or no such measurement.
func (m *Manager) UpdateMeasurement(ctx context.Context, t domain.MeasurementType, value float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.profile == nil {
		return
	}
	i := domain.FindMeasurement(m.profile.Measurements, t)
	if i < 0 {
		return
	}
	m.profile.Measurements[i].Value = value
	m.saveProfile(ctx)
}

// AddMeasurement starts tracking t with a zero value. Types already on the
// profile are left alone.
func (m *Manager) AddMeasurement(ctx context.Context, t domain.MeasurementType) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.profile == nil || domain.FindMeasurement(m.profile.Measurements, t) >= 0 {
		return
	}
	m.profile.Measurements = append(m.profile.Measurements, domain.BodyMeasurement{Type: t})
	m.saveProfile(ctx)
}

// RemoveMeasurement stops tracking t. Height can never be removed.
func (m *Manager) RemoveMeasurement(ctx context.Context, t domain.MeasurementType) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.profile == nil || t == domain.Height {
		return
	}
	i := domain.FindMeasurement(m.profile.Measurements, t)
	if i < 0 {
		return
	}
	ms := m.profile.Measurements
	m.profile.Measurements = append(ms[:i:i], ms[i+1:]...)
	m.saveProfile(ctx)
}

// saveProfile must be called with m.mu held.
func (m *Manager) saveProfile(ctx context.Context) {
	if m.persister == nil || m.profile == nil {
		return
	}
	if err := m.persister.SaveProfile(ctx, m.profile.Clone()); err != nil {
		m.log.Warn("failed to persist profile", zap.Error(err))
	}
}
