package services

import (
	"context"
	"sort"

	"github.com/prehab-dev/prehab/internal/types"
)

// Collection returns every readable exercise the user favorited or saved,
// decorated and in id order.
func (s *EngagementService) Collection(ctx context.Context, userID uint) ([]types.ExerciseResponse, error) {
	favorited, err := s.store.Favorites.ExerciseIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	saved, err := s.store.Saves.ExerciseIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	return s.decorateVisible(ctx, userID, union(favorited, saved))
}

func union(a, b []uint) []uint {
	seen := make(map[uint]struct{}, len(a)+len(b))
	out := make([]uint, 0, len(a)+len(b))

	for _, list := range [][]uint{a, b} {
		for _, id := range list {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	return out
}
