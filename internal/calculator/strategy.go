package calculator

import (
	"fmt"

	"github.com/mmynk/careshare/internal/models"
)

// SelectMembers returns the members who share a bill under strategy.
//
// ESTATE bills are borne by the care recipient and select nobody.
// FAMILY_SPLIT selects every registered member, or only the members named
// in subset when it is non-empty. Subset IDs must be registered and unique.
func SelectMembers(strategy models.Strategy, registered []models.Member, subset []string) ([]models.Member, error) {
	switch strategy {
	case models.StrategyEstate:
		return nil, nil
	case models.StrategyFamilySplit:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, strategy)
	}

	if len(subset) == 0 {
		if len(registered) == 0 {
			return nil, ErrNoMembers
		}
		selected := make([]models.Member, len(registered))
		copy(selected, registered)
		return selected, nil
	}

	byID := make(map[string]models.Member, len(registered))
	for _, m := range registered {
		byID[m.ID] = m
	}
	seen := make(map[string]bool, len(subset))
	selected := make([]models.Member, 0, len(subset))
	for _, id := range subset {
		m, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownMember, id)
		}
		if seen[id] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateMember, id)
		}
		seen[id] = true
		selected = append(selected, m)
	}
	return selected, nil
}
