package service

import (
	"context"

	"librosrec/internal/cache"
	"librosrec/internal/models"
	"librosrec/internal/repository"
)

// AdminService cubre el mantenimiento operativo: resumen del dataset cargado
// y flush del cache de respuestas.
type AdminService struct {
	content *repository.BookRepository
	collab  *repository.BookRepository

	contentSim *repository.SimilarityRepository
	collabSim  *repository.SimilarityRepository

	users *repository.UserDataRepository
}

func NewAdminService(
	content, collab *repository.BookRepository,
	contentSim, collabSim *repository.SimilarityRepository,
	users *repository.UserDataRepository,
) *AdminService {
	return &AdminService{
		content:    content,
		collab:     collab,
		contentSim: contentSim,
		collabSim:  collabSim,
		users:      users,
	}
}

// GetDatasetSummary devuelve conteos del estado en memoria; útil para
// verificar que los artefactos cargados son los esperados.
func (s *AdminService) GetDatasetSummary() *models.AdminDatasetSummary {
	return &models.AdminDatasetSummary{
		ContentBooks:     s.content.Len(),
		CollabBooks:      s.collab.Len(),
		ContentMatrixDim: s.contentSim.Dim(),
		CollabMatrixDim:  s.collabSim.Dim(),

		UsersWithRecommendations: s.users.UsersWithRecommendations(),
		UsersWithRatedBooks:      s.users.UsersWithRatedBooks(),

		ContentFallbackPool: s.content.FallbackPoolSize(FallbackMinVotes),
		CollabFallbackPool:  s.collab.FallbackPoolSize(FallbackMinVotes),
	}
}

// FlushCache invalida todas las respuestas de recomendación cacheadas.
func (s *AdminService) FlushCache(ctx context.Context) (*models.AdminCacheFlushResult, error) {
	deleted, err := cache.DeleteByPrefix(ctx, "rec:")
	if err != nil {
		return nil, err
	}
	return &models.AdminCacheFlushResult{DeletedKeys: deleted}, nil
}
