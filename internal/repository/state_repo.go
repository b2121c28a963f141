package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/yusufkecer/fit-assistant/internal/domain"
	"github.com/yusufkecer/fit-assistant/internal/logger"
	"go.uber.org/zap"
)

const (
	GarmentsKey   = "fit_assistant_garments"
	ProfileKey    = "fit_assistant_user_profile"
	UnitSystemKey = "fit_assistant_unit_system"
)

// StateRepository mirrors the wardrobe state into three independent records.
// Loads never fail on bad data: malformed records are logged and replaced
// with defaults.
type StateRepository struct {
	kv  KV
	log *zap.Logger
}

func NewStateRepository(kv KV, log *zap.Logger) *StateRepository {
	return &StateRepository{kv: kv, log: logger.OrNop(log)}
}

func (r *StateRepository) LoadGarments(ctx context.Context) ([]domain.Garment, error) {
	raw, ok, err := r.kv.Get(ctx, GarmentsKey)
	if err != nil {
		return nil, err
	}
	if !ok || raw == "" {
		return []domain.Garment{}, nil
	}

	var garments []domain.Garment
	if err := json.Unmarshal([]byte(raw), &garments); err != nil {
		r.log.Warn("discarding malformed stored garments", zap.Error(err))
		return []domain.Garment{}, nil
	}
	if garments == nil {
		garments = []domain.Garment{}
	}
	return garments, nil
}

func (r *StateRepository) SaveGarments(ctx context.Context, garments []domain.Garment) error {
	out := make([]domain.Garment, len(garments))
	for i, g := range garments {
		out[i] = normalizeGarment(g)
	}
	body, err := json.Marshal(out)
	if err != nil {
		return fmt.Errorf("failed to encode garments: %w", err)
	}
	return r.kv.Set(ctx, GarmentsKey, string(body))
}

// LoadProfile returns defaultProfile when no profile is stored or the stored
// one is empty or cannot be decoded. A decoded profile with duplicate or
// missing measurements is repaired.
func (r *StateRepository) LoadProfile(ctx context.Context, defaultProfile domain.UserProfile) (domain.UserProfile, error) {
	raw, ok, err := r.kv.Get(ctx, ProfileKey)
	if err != nil {
		return domain.UserProfile{}, err
	}
	if !ok || raw == "" {
		return defaultProfile, nil
	}

	var p domain.UserProfile
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		r.log.Warn("discarding malformed stored profile", zap.Error(err))
		return defaultProfile, nil
	}
	if p.IsZero() {
		r.log.Warn("discarding empty stored profile")
		return defaultProfile, nil
	}

	p, fixes := p.Repair()
	for _, fix := range fixes {
		r.log.Warn("repaired stored profile", zap.String("change", fix))
	}
	return p, nil
}

func (r *StateRepository) SaveProfile(ctx context.Context, p domain.UserProfile) error {
	if p.Measurements == nil {
		p.Measurements = []domain.BodyMeasurement{}
	}
	body, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}
	return r.kv.Set(ctx, ProfileKey, string(body))
}

// LoadUnitSystem falls back to metric for missing or unrecognized values.
func (r *StateRepository) LoadUnitSystem(ctx context.Context) (domain.UnitSystem, error) {
	raw, ok, err := r.kv.Get(ctx, UnitSystemKey)
	if err != nil {
		return "", err
	}
	if !ok {
		return domain.Metric, nil
	}
	u, err := domain.ParseUnitSystem(raw)
	if err != nil {
		r.log.Warn("discarding unknown stored unit system", zap.String("value", raw))
		return domain.Metric, nil
	}
	return u, nil
}

func (r *StateRepository) SaveUnitSystem(ctx context.Context, u domain.UnitSystem) error {
	return r.kv.Set(ctx, UnitSystemKey, string(u))
}

func normalizeGarment(g domain.Garment) domain.Garment {
	if g.Measurements == nil {
		g.Measurements = []domain.BodyMeasurement{}
	}
	if g.Fit == nil {
		g.Fit = []domain.GarmentFit{}
	}
	return g
}
