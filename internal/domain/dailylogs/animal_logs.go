package dailylogs

import "context"

// AnimalLogs implementa animals.AnimalLogs: los logs de un animal, más nuevo primero.
func (s *Service) AnimalLogs(ctx context.Context, animalID string) (any, error) {
	entries, err := Collect(s.List(ctx, Filter{AnimalID: animalID}))
	if err != nil {
		return nil, err
	}
	return toLogResponses(entries), nil
}
