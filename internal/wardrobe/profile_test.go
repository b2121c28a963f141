package wardrobe

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yusufkecer/fit-assistant/internal/domain"
)

func newProfileManager(t *testing.T) *Manager {
	t.Helper()
	p := domain.DefaultProfile()
	m, _ := newTestManager(t, State{Profile: &p})
	return m
}

func TestUpdateMeasurement(t *testing.T) {
	ctx := context.Background()
	m := newProfileManager(t)

	m.UpdateMeasurement(ctx, domain.Height, 182)
	p, _ := m.Profile()
	h, ok := p.Measurement(domain.Height)
	require.True(t, ok)
	assert.Equal(t, 182.0, h.Value)

	m.UpdateMeasurement(ctx, domain.Waist, 80)
	p, _ = m.Profile()
	_, ok = p.Measurement(domain.Waist)
	assert.False(t, ok, "update does not add missing measurements")
}

func TestUpdateMeasurementWithoutProfile(t *testing.T) {
	ctx := context.Background()
	m, repo := newTestManager(t, State{})

	m.UpdateMeasurement(ctx, domain.Height, 182)
	m.AddMeasurement(ctx, domain.Waist)
	m.RemoveMeasurement(ctx, domain.Waist)

	_, ok := m.Profile()
	assert.False(t, ok)

	p, err := repo.LoadProfile(ctx, domain.UserProfile{ID: "sentinel"})
	require.NoError(t, err)
	assert.Equal(t, "sentinel", p.ID, "nothing was persisted")
}

func TestAddMeasurementKeepsTypesUnique(t *testing.T) {
	ctx := context.Background()
	m := newProfileManager(t)

	m.AddMeasurement(ctx, domain.Waist)
	m.UpdateMeasurement(ctx, domain.Waist, 78)
	m.AddMeasurement(ctx, domain.Waist)
	m.AddMeasurement(ctx, domain.Height)

	p, _ := m.Profile()
	assert.Equal(t, []domain.BodyMeasurement{
		{Type: domain.Height, Value: domain.DefaultProfileHeight},
		{Type: domain.Waist, Value: 78},
	}, p.Measurements)
}

func TestRemoveMeasurementProtectsHeight(t *testing.T) {
	ctx := context.Background()
	m := newProfileManager(t)
	m.AddMeasurement(ctx, domain.Chest)

	for i := 0; i < 3; i++ {
		m.RemoveMeasurement(ctx, domain.Height)
	}
	m.RemoveMeasurement(ctx, domain.Chest)
	m.RemoveMeasurement(ctx, domain.Chest)

	p, _ := m.Profile()
	require.Len(t, p.Measurements, 1)
	assert.Equal(t, domain.Height, p.Measurements[0].Type)
}

func TestSetProfilePersists(t *testing.T) {
	ctx := context.Background()
	m, repo := newTestManager(t, State{})

	p := domain.DefaultProfile()
	p.Name = "Grace"
	m.SetProfile(ctx, p)

	got, ok := m.Profile()
	require.True(t, ok)
	assert.Equal(t, "Grace", got.Name)

	stored, err := repo.LoadProfile(ctx, domain.UserProfile{})
	require.NoError(t, err)
	assert.Equal(t, "Grace", stored.Name)
}

func TestSetProfileKeepsMeasurementsValid(t *testing.T) {
	ctx := context.Background()
	m, repo := newTestManager(t, State{})

	m.SetProfile(ctx, domain.UserProfile{
		ID:             "1",
		Name:           "Grace",
		PreferredUnits: domain.Metric,
		Measurements: []domain.BodyMeasurement{
			{Type: domain.Waist, Value: 80},
			{Type: domain.Waist, Value: 90},
		},
	})
	m.UpdateMeasurement(ctx, domain.Waist, 82)

	want := []domain.BodyMeasurement{
		{Type: domain.Height, Value: domain.DefaultProfileHeight},
		{Type: domain.Waist, Value: 82},
	}
	got, ok := m.Profile()
	require.True(t, ok)
	assert.Equal(t, want, got.Measurements)

	stored, err := repo.LoadProfile(ctx, domain.UserProfile{})
	require.NoError(t, err)
	assert.Equal(t, want, stored.Measurements)
}
