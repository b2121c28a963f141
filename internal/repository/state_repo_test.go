package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yusufkecer/fit-assistant/internal/domain"
	"go.uber.org/zap"
)

func TestLoadGarmentsMissingIsEmpty(t *testing.T) {
	repo := NewStateRepository(NewMemoryStore(), zap.NewNop())

	garments, err := repo.LoadGarments(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, garments)
	assert.Empty(t, garments)
}

func TestLoadGarmentsCorruptIsEmpty(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryStore()
	require.NoError(t, kv.Set(ctx, GarmentsKey, `[{"id": "g-1", "name": `))
	repo := NewStateRepository(kv, zap.NewNop())

	garments, err := repo.LoadGarments(ctx)
	require.NoError(t, err)
	assert.Empty(t, garments)
}

func TestLoadGarmentsBadTimestampIsEmpty(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryStore()
	require.NoError(t, kv.Set(ctx, GarmentsKey, `[{"id":"g-1","createdAt":"yesterday"}]`))

	garments, err := NewStateRepository(kv, nil).LoadGarments(ctx)
	require.NoError(t, err)
	assert.Empty(t, garments)
}

func TestGarmentsRoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryStore()
	repo := NewStateRepository(kv, zap.NewNop())
	now := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

	in := []domain.Garment{{
		ID:                "g-1",
		Name:              "Selvedge",
		Brand:             "Levi's",
		Type:              domain.Jeans,
		Size:              "32",
		Color:             "indigo",
		ImageURL:          domain.PlaceholderImageURL,
		TeachFitAssistant: true,
		Measurements:      []domain.BodyMeasurement{{Type: domain.Waist, Value: 81}},
		Fit: []domain.GarmentFit{
			{MeasurementType: domain.Waist, Perception: domain.TooTight},
			{MeasurementType: domain.Hip},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}}
	require.NoError(t, repo.SaveGarments(ctx, in))

	raw, ok, err := kv.Get(ctx, GarmentsKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Contains(t, raw, `"imageUrl":"/placeholder.svg"`)
	assert.Contains(t, raw, `"perception":"too tight"`)
	assert.Contains(t, raw, `{"measurementType":"hip"}`)

	out, err := repo.LoadGarments(ctx)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestSaveGarmentsWritesEmptyArrays(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryStore()
	repo := NewStateRepository(kv, zap.NewNop())

	require.NoError(t, repo.SaveGarments(ctx, nil))
	raw, _, _ := kv.Get(ctx, GarmentsKey)
	assert.Equal(t, "[]", raw)

	require.NoError(t, repo.SaveGarments(ctx, []domain.Garment{{ID: "g-1"}}))
	raw, _, _ = kv.Get(ctx, GarmentsKey)
	assert.Contains(t, raw, `"measurements":[]`)
	assert.Contains(t, raw, `"fit":[]`)
}

func TestLoadProfile(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryStore()
	repo := NewStateRepository(kv, zap.NewNop())
	def := domain.DefaultProfile()

	p, err := repo.LoadProfile(ctx, def)
	require.NoError(t, err)
	assert.Equal(t, def, p)

	require.NoError(t, kv.Set(ctx, ProfileKey, "{not json"))
	p, err = repo.LoadProfile(ctx, def)
	require.NoError(t, err)
	assert.Equal(t, def, p)

	custom := domain.UserProfile{
		ID:             "7",
		Name:           "Ada",
		Email:          "ada@example.com",
		Measurements:   []domain.BodyMeasurement{{Type: domain.Height, Value: 165}, {Type: domain.Waist, Value: 70}},
		PreferredUnits: domain.Imperial,
	}
	require.NoError(t, repo.SaveProfile(ctx, custom))
	p, err = repo.LoadProfile(ctx, def)
	require.NoError(t, err)
	assert.Equal(t, custom, p)
}

func TestLoadProfileNullIsDefault(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryStore()
	require.NoError(t, kv.Set(ctx, ProfileKey, "null"))

	p, err := NewStateRepository(kv, zap.NewNop()).LoadProfile(ctx, domain.DefaultProfile())
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultProfile(), p)

	require.NoError(t, kv.Set(ctx, ProfileKey, "{}"))
	p, err = NewStateRepository(kv, zap.NewNop()).LoadProfile(ctx, domain.DefaultProfile())
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultProfile(), p)
}

func TestLoadProfileRepairsMeasurements(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryStore()
	require.NoError(t, kv.Set(ctx, ProfileKey,
		`{"id":"7","name":"Ada","measurements":[{"type":"waist","value":80},{"type":"waist","value":90}]}`))

	p, err := NewStateRepository(kv, zap.NewNop()).LoadProfile(ctx, domain.DefaultProfile())
	require.NoError(t, err)
	assert.Equal(t, "7", p.ID)
	assert.Equal(t, domain.Metric, p.PreferredUnits)
	assert.Equal(t, []domain.BodyMeasurement{
		{Type: domain.Height, Value: domain.DefaultProfileHeight},
		{Type: domain.Waist, Value: 80},
	}, p.Measurements)
}

func TestUnitSystem(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryStore()
	repo := NewStateRepository(kv, zap.NewNop())

	u, err := repo.LoadUnitSystem(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.Metric, u)

	require.NoError(t, repo.SaveUnitSystem(ctx, domain.Imperial))
	raw, _, _ := kv.Get(ctx, UnitSystemKey)
	assert.Equal(t, "imperial", raw)

	u, err = repo.LoadUnitSystem(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.Imperial, u)

	require.NoError(t, kv.Set(ctx, UnitSystemKey, "furlongs"))
	u, err = repo.LoadUnitSystem(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.Metric, u)
}
