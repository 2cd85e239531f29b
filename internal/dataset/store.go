package dataset

import (
	"fmt"

	"librosrec/internal/models"
)

// Catalog es una tabla inmutable de libros. La posición de cada fila es su
// índice dentro de la matriz de similitud asociada, por eso nunca se
// reordena ni se modifica después de cargar.
type Catalog struct {
	books []models.BookDoc
	// book_id -> índice de fila; si un book_id aparece repetido gana la
	// primera aparición.
	byID map[int]int
}

func NewCatalog(books []models.BookDoc) *Catalog {
	byID := make(map[int]int, len(books))
	for i, b := range books {
		if _, ok := byID[b.BookID]; !ok {
			byID[b.BookID] = i
		}
	}
	return &Catalog{books: books, byID: byID}
}

func (c *Catalog) Len() int { return len(c.books) }

func (c *Catalog) At(i int) models.BookDoc { return c.books[i] }

// Books devuelve las filas en orden de catálogo. Solo lectura.
func (c *Catalog) Books() []models.BookDoc { return c.books }

func (c *Catalog) IndexByBookID(id int) (int, bool) {
	i, ok := c.byID[id]
	return i, ok
}

// Matrix es una matriz cuadrada de similitud precalculada, indexada por fila
// de catálogo. Entra ya calculada (artefacto externo), acá solo se lee.
type Matrix struct {
	rows [][]float64
}

func NewMatrix(rows [][]float64) (*Matrix, error) {
	n := len(rows)
	for i, r := range rows {
		if len(r) != n {
			return nil, fmt.Errorf("matriz no cuadrada: fila %d tiene %d columnas, se esperaban %d", i, len(r), n)
		}
	}
	return &Matrix{rows: rows}, nil
}

func (m *Matrix) Dim() int { return len(m.rows) }

// Row devuelve la fila de similitudes del libro i. Solo lectura.
func (m *Matrix) Row(i int) []float64 { return m.rows[i] }

// Store agrupa todo el estado de solo lectura que se carga al arrancar:
// los dos catálogos, sus matrices y las tablas por usuario del modelo FunkSVD.
type Store struct {
	Content *Catalog
	Collab  *Catalog

	ContentSim *Matrix
	CollabSim  *Matrix

	// userId -> lista ordenada de book_id recomendados (salida del modelo
	// de factorización, precalculada offline).
	UserRecs map[int][]int
	// userId -> book_id que el usuario ya calificó (para el perfil).
	UserTopRated map[int][]int
}
