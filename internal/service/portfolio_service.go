package service

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"portfolio-web/internal/domain"
	"portfolio-web/internal/repository"
)

// PortfolioService arma el payload de GET /api/portfolio/.
type PortfolioService struct {
	repo   repository.PortfolioRepository
	cache  PortfolioCache
	logger *zap.Logger
}

func NewPortfolioService(repo repository.PortfolioRepository, cache PortfolioCache, logger *zap.Logger) *PortfolioService {
	if cache == nil {
		cache = NewMemoryPortfolioCache(0)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PortfolioService{repo: repo, cache: cache, logger: logger}
}

// Portfolio devuelve el payload completo. Un perfil ausente no es error: Profile queda nil.
func (s *PortfolioService) Portfolio(ctx context.Context) (domain.ApiResponse, error) {
	if cached, ok := s.cache.Get(ctx); ok {
		var resp domain.ApiResponse
		if err := json.Unmarshal(cached, &resp); err == nil {
			return resp, nil
		}
		s.logger.Warn("discarding unreadable cached portfolio")
		s.cache.Invalidate(ctx)
	}

	profile, err := s.repo.ActiveProfile(ctx)
	if err != nil {
		return domain.ApiResponse{}, fmt.Errorf("load profile: %w", err)
	}
	competences, err := s.repo.ActiveCompetences(ctx)
	if err != nil {
		return domain.ApiResponse{}, fmt.Errorf("load competences: %w", err)
	}
	projets, err := s.repo.ActiveProjets(ctx)
	if err != nil {
		return domain.ApiResponse{}, fmt.Errorf("load projets: %w", err)
	}
	experiences, err := s.repo.ActiveExperiences(ctx)
	if err != nil {
		return domain.ApiResponse{}, fmt.Errorf("load experiences: %w", err)
	}

	resp := domain.ApiResponse{
		Success:     true,
		Profile:     profile,
		Competences: nonNil(competences),
		Projets:     nonNil(projets),
		Experiences: nonNil(experiences),
	}

	if payload, err := json.Marshal(resp); err == nil {
		s.cache.Set(ctx, payload)
	}
	return resp, nil
}

// IncrementViews suma una vista al proyecto e invalida el payload cacheado.
func (s *PortfolioService) IncrementViews(ctx context.Context, projetID int64) (int, error) {
	vues, err := s.repo.IncrementProjetViews(ctx, projetID)
	if err != nil {
		return 0, err
	}
	s.cache.Invalidate(ctx)
	return vues, nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
