package repository

import (
	"testing"

	"librosrec/internal/dataset"
	"librosrec/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtureRepo() *BookRepository {
	cat := dataset.NewCatalog([]models.BookDoc{
		{BookID: 1, Title: "Bear One", AuthorName: "Ana Uno", RatingsCount: 100, AverageRating: 3.0},
		{BookID: 2, Title: "Bear Two", AuthorName: "Ana Uno", RatingsCount: 200, AverageRating: 4.5},
		{BookID: 3, Title: "Bear Three", AuthorName: "Beto Dos", RatingsCount: 200, AverageRating: 4.0},
		{BookID: 4, Title: "Moon Song", AuthorName: "Beto Dos", RatingsCount: 60000, AverageRating: 4.8},
		{BookID: 5, Title: "Sun Song", AuthorName: "Carla Tres", RatingsCount: 70000, AverageRating: 4.2},
		{BookID: 6, Title: "Star Song", AuthorName: "Carla Tres", RatingsCount: 55000, AverageRating: 4.6},
	})
	return NewBookRepository(cat)
}

func TestResolveTitleTieBreak(t *testing.T) {
	r := fixtureRepo()

	// gana el de mayor ratings_count entre los que contienen el substring
	idx, ok := r.ResolveTitle("bear")
	require.True(t, ok)
	assert.Equal(t, 1, idx)

	// a igual ratings_count gana la fila que aparece primero (Bear Two, fila 1)
	idx, ok = r.ResolveTitle("Bear T")
	require.True(t, ok)
	assert.Equal(t, 1, idx)

	// case-insensitive
	idx, ok = r.ResolveTitle("MOON")
	require.True(t, ok)
	assert.Equal(t, 3, idx)

	_, ok = r.ResolveTitle("no existe")
	assert.False(t, ok)
}

func TestMatchAuthor(t *testing.T) {
	r := fixtureRepo()

	assert.Equal(t, []int{0, 1}, r.MatchAuthor("ana uno"))
	assert.Equal(t, []int{2, 3}, r.MatchAuthor("Beto"))
	assert.Empty(t, r.MatchAuthor("nadie"))
}

func TestTopRatedWindow(t *testing.T) {
	r := fixtureRepo()

	// pool con count > 50000: Moon(4.8), Star(4.6), Sun(4.2)
	w := r.TopRatedWindow(50000, 0, 2)
	require.Len(t, w, 2)
	assert.Equal(t, "Moon Song", w[0].Title)
	assert.Equal(t, "Star Song", w[1].Title)

	// ventana desplazada
	w = r.TopRatedWindow(50000, 2, 5)
	require.Len(t, w, 1)
	assert.Equal(t, "Sun Song", w[0].Title)

	// ventana fuera del pool devuelve vacío, no panic
	w = r.TopRatedWindow(50000, 5, 10)
	assert.Empty(t, w)

	// el filtro es estrictamente mayor: count == minVotes queda fuera
	w = r.TopRatedWindow(55000, 0, 5)
	require.Len(t, w, 2)
	assert.Equal(t, "Moon Song", w[0].Title)
	assert.Equal(t, "Sun Song", w[1].Title)
}

func TestTopAndSearch(t *testing.T) {
	r := fixtureRepo()

	top := r.Top("rating", 2)
	require.Len(t, top, 2)
	assert.Equal(t, "Moon Song", top[0].Title)
	assert.Equal(t, "Star Song", top[1].Title)

	pop := r.Top("popular", 1)
	require.Len(t, pop, 1)
	assert.Equal(t, "Sun Song", pop[0].Title)

	songs := r.Search("song", "", 10, 0)
	assert.Len(t, songs, 3)

	paged := r.Search("song", "", 2, 1)
	require.Len(t, paged, 2)
	assert.Equal(t, "Sun Song", paged[0].Title)

	byAuthor := r.Search("", "carla", 10, 0)
	assert.Len(t, byAuthor, 2)
}

func TestGetByBookID(t *testing.T) {
	r := fixtureRepo()

	b, ok := r.GetByBookID(4)
	require.True(t, ok)
	assert.Equal(t, "Moon Song", b.Title)

	_, ok = r.GetByBookID(99)
	assert.False(t, ok)
}
