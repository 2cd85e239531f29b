package repository

import "librosrec/internal/dataset"

// SimilarityRepository entrega la fila precalculada de similitudes de un
// libro. Cada instancia queda atada al espacio de índices de UN catálogo;
// nunca se cruza la matriz de contenido con el catálogo colaborativo ni al
// revés (por eso el service guarda pares catálogo+matriz, no piezas sueltas).
type SimilarityRepository struct {
	m *dataset.Matrix
}

func NewSimilarityRepository(m *dataset.Matrix) *SimilarityRepository {
	return &SimilarityRepository{m: m}
}

func (r *SimilarityRepository) Dim() int { return r.m.Dim() }

// Row devuelve la fila de similitudes del índice i, o false si está fuera
// de rango.
func (r *SimilarityRepository) Row(i int) ([]float64, bool) {
	if i < 0 || i >= r.m.Dim() {
		return nil, false
	}
	return r.m.Row(i), true
}
