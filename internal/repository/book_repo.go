package repository

import (
	"sort"
	"strings"

	"librosrec/internal/dataset"
	"librosrec/internal/models"
)

// BookRepository expone las consultas de lectura sobre un catálogo en
// memoria. Hay una instancia por catálogo (contenido y colaborativo); nunca
// hay escrituras, así que es seguro compartirla entre requests sin locks.
type BookRepository struct {
	cat *dataset.Catalog
}

func NewBookRepository(cat *dataset.Catalog) *BookRepository {
	return &BookRepository{cat: cat}
}

func (r *BookRepository) Len() int { return r.cat.Len() }

func (r *BookRepository) At(i int) models.BookDoc { return r.cat.At(i) }

func (r *BookRepository) GetByBookID(id int) (*models.BookDoc, bool) {
	i, ok := r.cat.IndexByBookID(id)
	if !ok {
		return nil, false
	}
	b := r.cat.At(i)
	return &b, true
}

// ResolveTitle busca por substring (case-insensitive) sobre title y devuelve
// el índice de fila del mejor match: el de mayor ratings_count, y a igualdad
// de ratings_count la fila que aparece primero en el catálogo.
func (r *BookRepository) ResolveTitle(query string) (int, bool) {
	q := strings.ToLower(query)

	best := -1
	bestCount := -1
	for i, b := range r.cat.Books() {
		if !strings.Contains(strings.ToLower(b.Title), q) {
			continue
		}
		if b.RatingsCount > bestCount {
			best = i
			bestCount = b.RatingsCount
		}
	}
	if best < 0 {
		return 0, false
	}
	return best, true
}

// MatchAuthor devuelve los índices de todos los libros cuyo author_name
// contiene el substring (case-insensitive), en orden de catálogo.
func (r *BookRepository) MatchAuthor(query string) []int {
	q := strings.ToLower(query)

	var out []int
	for i, b := range r.cat.Books() {
		if strings.Contains(strings.ToLower(b.AuthorName), q) {
			out = append(out, i)
		}
	}
	return out
}

// Search lista libros filtrando por substring de título y/o autor, con
// paginado. Para el buscador de la API, no para el ranking.
func (r *BookRepository) Search(q, author string, limit, offset int) []models.BookDoc {
	ql := strings.ToLower(q)
	al := strings.ToLower(author)

	out := make([]models.BookDoc, 0, limit)
	skipped := 0
	for _, b := range r.cat.Books() {
		if q != "" && !strings.Contains(strings.ToLower(b.Title), ql) {
			continue
		}
		if author != "" && !strings.Contains(strings.ToLower(b.AuthorName), al) {
			continue
		}
		if skipped < offset {
			skipped++
			continue
		}
		out = append(out, b)
		if len(out) >= limit {
			break
		}
	}
	return out
}

// Top por popularidad (ratings_count) o rating promedio.
func (r *BookRepository) Top(metric string, limit int) []models.BookDoc {
	books := make([]models.BookDoc, len(r.cat.Books()))
	copy(books, r.cat.Books())

	if metric == "rating" {
		sort.SliceStable(books, func(i, j int) bool {
			return books[i].AverageRating > books[j].AverageRating
		})
	} else {
		sort.SliceStable(books, func(i, j int) bool {
			return books[i].RatingsCount > books[j].RatingsCount
		})
	}
	if len(books) > limit {
		books = books[:limit]
	}
	return books
}

// TopRatedWindow es la regla de popularidad parametrizada que comparten los
// fallbacks: filtra por ratings_count > minVotes, ordena por average_rating
// descendente y corta la ventana de rangos [from, to). Cada caller pasa sus
// propios parámetros; las ventanas difieren a propósito entre estrategias.
func (r *BookRepository) TopRatedWindow(minVotes, from, to int) []models.BookDoc {
	var pool []models.BookDoc
	for _, b := range r.cat.Books() {
		if b.RatingsCount > minVotes {
			pool = append(pool, b)
		}
	}
	sort.SliceStable(pool, func(i, j int) bool {
		return pool[i].AverageRating > pool[j].AverageRating
	})

	if from > len(pool) {
		from = len(pool)
	}
	if to > len(pool) {
		to = len(pool)
	}
	return pool[from:to]
}

// FallbackPoolSize cuenta cuántos libros superan minVotes (para el summary
// de mantenimiento).
func (r *BookRepository) FallbackPoolSize(minVotes int) int {
	n := 0
	for _, b := range r.cat.Books() {
		if b.RatingsCount > minVotes {
			n++
		}
	}
	return n
}
