package models

// Resumen del dataset cargado en memoria, para /admin/maintenance/dataset/summary.
type AdminDatasetSummary struct {
	ContentBooks     int `json:"contentBooks"`
	CollabBooks      int `json:"collabBooks"`
	ContentMatrixDim int `json:"contentMatrixDim"`
	CollabMatrixDim  int `json:"collabMatrixDim"`

	UsersWithRecommendations int `json:"usersWithRecommendations"`
	UsersWithRatedBooks      int `json:"usersWithRatedBooks"`

	// Tamaño del pool de popularidad (ratings_count > 50000) en cada catálogo;
	// si el colaborativo tiene menos de 10, el fallback de rangos 6-10 queda corto.
	ContentFallbackPool int `json:"contentFallbackPool"`
	CollabFallbackPool  int `json:"collabFallbackPool"`
}

// Resultado del flush de cache.
type AdminCacheFlushResult struct {
	DeletedKeys int `json:"deletedKeys"`
}
