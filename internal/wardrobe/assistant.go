package wardrobe

import "github.com/yusufkecer/fit-assistant/internal/domain"

// ActivationThreshold is how many teaching garments the Fit Assistant needs
// before it turns on.
const ActivationThreshold = 5

type Status struct {
	Eligible  int  `json:"eligible"`
	Threshold int  `json:"threshold"`
	Active    bool `json:"active"`
	Needed    int  `json:"needed"`
}

// FitAssistantGarments returns the garments flagged to teach the Fit
// Assistant, in insertion order.
func (m *Manager) FitAssistantGarments() []domain.Garment {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []domain.Garment
	for _, g := range m.garments {
		if g.TeachFitAssistant {
			out = append(out, g.Clone())
		}
	}
	return out
}

func (m *Manager) FitAssistantStatus() Status {
	n := len(m.FitAssistantGarments())
	return Status{
		Eligible:  n,
		Threshold: ActivationThreshold,
		Active:    n >= ActivationThreshold,
		Needed:    max(0, ActivationThreshold-n),
	}
}

// HasConflictingFitData returns the teaching garments of the candidate's type
// and size whose fit perception disagrees with the candidate's at one or more
// measurement locations rated on both sides. A candidate that is not
// flagged to teach has nothing to conflict with.
func (m *Manager) HasConflictingFitData(candidate domain.GarmentFormData) []domain.Garment {
	return m.ConflictingFitData(candidate, "")
}

// ConflictingFitData is HasConflictingFitData skipping the garment with
// excludeID, so an edited garment is not compared with its stored self.
func (m *Manager) ConflictingFitData(candidate domain.GarmentFormData, excludeID string) []domain.Garment {
	if !candidate.TeachFitAssistant {
		return nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var conflicts []domain.Garment
	for _, g := range m.garments {
		if g.ID == excludeID || !g.TeachFitAssistant {
			continue
		}
		if g.Type != candidate.Type || g.Size != candidate.Size {
			continue
		}
		if fitDisagrees(g.Fit, candidate.Fit) {
			conflicts = append(conflicts, g.Clone())
		}
	}
	return conflicts
}

func fitDisagrees(existing, candidate []domain.GarmentFit) bool {
	for _, c := range candidate {
		if !c.Perception.IsSet() {
			continue
		}
		i := domain.FindFit(existing, c.MeasurementType)
		if i < 0 {
			continue
		}
		if e := existing[i].Perception; e.IsSet() && e != c.Perception {
			return true
		}
	}
	return false
}
