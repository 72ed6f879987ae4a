package service

import (
	"context"

	"go.uber.org/zap"

	"psymetric/internal/ability"
	"psymetric/internal/cache"
	"psymetric/internal/domain"
	"psymetric/internal/repository"
)

// AbilityService agrega los resultados del usuario en su perfil de
// habilidades y resuelve la búsqueda de perfiles similares.
type AbilityService struct {
	results   repository.ResultRepository
	abilities repository.AbilityRepository
	cache     *cache.Cache
	logger    *zap.Logger
}

func NewAbilityService(
	results repository.ResultRepository,
	abilities repository.AbilityRepository,
	c *cache.Cache,
	logger *zap.Logger,
) *AbilityService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AbilityService{
		results:   results,
		abilities: abilities,
		cache:     c,
		logger:    logger,
	}
}

// GetProfile devuelve el perfil agregado, usando caché cuando hay hit.
// En cada recomputación persiste los puntajes y el vector para la búsqueda
// de similares; un fallo de persistencia no invalida el perfil calculado.
func (s *AbilityService) GetProfile(ctx context.Context, userID string) (domain.AbilityProfile, error) {
	key := profileCacheKey(userID)
	var cached domain.AbilityProfile
	if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
		return cached, nil
	} else if err != nil {
		s.logger.Warn("ability cache read failed", zap.Error(err))
	}

	results, err := s.results.ListByUser(ctx, userID)
	if err != nil {
		return domain.AbilityProfile{}, err
	}
	profile := ability.Aggregate(results)

	if err := s.abilities.UpsertScores(ctx, userID, flattenScores(profile)); err != nil {
		s.logger.Warn("ability scores upsert failed", zap.Error(err))
	}
	if err := s.abilities.SaveVector(ctx, userID, ability.Vector(profile)); err != nil {
		s.logger.Warn("ability vector save failed", zap.Error(err))
	}
	if err := s.cache.Set(ctx, key, profile); err != nil {
		s.logger.Warn("ability cache write failed", zap.Error(err))
	}
	return profile, nil
}

// Recompute invalida la caché y vuelve a agregar. Se llama al completar
// una sesión.
func (s *AbilityService) Recompute(ctx context.Context, userID string) (domain.AbilityProfile, error) {
	if err := s.cache.Del(ctx, profileCacheKey(userID)); err != nil {
		s.logger.Warn("ability cache invalidation failed", zap.Error(err))
	}
	return s.GetProfile(ctx, userID)
}

// FindSimilar devuelve los perfiles más cercanos al vector del usuario.
func (s *AbilityService) FindSimilar(ctx context.Context, userID string, limit int) ([]domain.SimilarProfile, error) {
	profile, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.abilities.FindSimilar(ctx, userID, ability.Vector(profile), limit)
}

func profileCacheKey(userID string) string {
	return "abilities:" + userID
}

func flattenScores(profile domain.AbilityProfile) []domain.AbilityScore {
	scores := make([]domain.AbilityScore, 0, ability.Dimensions)
	for _, group := range profile.Categories {
		scores = append(scores, group.Abilities...)
	}
	return scores
}
