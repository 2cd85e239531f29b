package handler

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"librosrec/internal/dataset"
	"librosrec/internal/models"
	"librosrec/internal/repository"
	"librosrec/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "secreto-de-test"

func testCatalog() *dataset.Catalog {
	return dataset.NewCatalog([]models.BookDoc{
		{BookID: 1, Title: "The Very Hungry Caterpillar", AuthorName: "Eric Carle", RatingsCount: 90000, AverageRating: 4.3},
		{BookID: 2, Title: "Brown Bear, Brown Bear, What Do You See?", AuthorName: "Bill Martin Jr.", RatingsCount: 80000, AverageRating: 4.2},
		{BookID: 3, Title: "Goodnight Moon", AuthorName: "Margaret Wise Brown", RatingsCount: 75000, AverageRating: 4.1},
		{BookID: 4, Title: "Where the Wild Things Are", AuthorName: "Maurice Sendak", RatingsCount: 70000, AverageRating: 4.0},
		{BookID: 5, Title: "The Giving Tree", AuthorName: "Shel Silverstein", RatingsCount: 65000, AverageRating: 3.9},
		{BookID: 6, Title: "Green Eggs and Ham", AuthorName: "Dr. Seuss", RatingsCount: 64000, AverageRating: 3.8},
	})
}

func testMatrix(n int, entries map[[2]int]float64) *dataset.Matrix {
	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = make([]float64, n)
		rows[i][i] = 1.0
	}
	for k, v := range entries {
		rows[k[0]][k[1]] = v
		rows[k[1]][k[0]] = v
	}
	m, err := dataset.NewMatrix(rows)
	if err != nil {
		panic(err)
	}
	return m
}

func testRecommendService() *service.RecommendService {
	content := repository.NewBookRepository(testCatalog())
	collab := repository.NewBookRepository(testCatalog())

	sims := map[[2]int]float64{
		{0, 3}: 0.8, {0, 1}: 0.6, {0, 2}: 0.4, {0, 4}: 0.3, {0, 5}: 0.2,
	}
	contentSim := repository.NewSimilarityRepository(testMatrix(6, sims))
	collabSim := repository.NewSimilarityRepository(testMatrix(6, sims))

	users := repository.NewUserDataRepository(
		map[int][]int{7: {1, 3, 5}},
		map[int][]int{9: {2, 4}},
	)

	return service.NewRecommendService(content, collab, contentSim, collabSim, users, nil, rand.New(rand.NewSource(1)))
}

func testRouter() chi.Router {
	rec := NewRecommendHandler(testRecommendService())
	books := NewBookHandler(service.NewBookService(repository.NewBookRepository(testCatalog())))

	r := chi.NewRouter()
	r.Get("/recommendations/content", rec.ByContent)
	r.Get("/recommendations/collaborative", rec.ByCollaborative)
	r.Get("/recommendations/author", rec.ByAuthor)
	r.Get("/books/resolve", books.Resolve)
	r.Get("/books/{id}", books.GetBook)

	r.Group(func(pr chi.Router) {
		pr.Use(JWTAuth(testSecret))
		pr.Get("/me/profile", rec.GetMyProfile)
		pr.Group(func(ar chi.Router) {
			ar.Use(AdminOnly())
			ar.Get("/users/{id}/recommendations", rec.GetUserRecommendations)
			ar.Get("/users/{id}/profile", rec.GetUserProfile)
		})
	})
	return r
}

func doGet(t *testing.T, r chi.Router, path string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeResult(t *testing.T, w *httptest.ResponseRecorder) service.RecResult {
	t.Helper()
	var res service.RecResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	return res
}

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	claims["exp"] = time.Now().Add(time.Hour).Unix()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return s
}

func TestByContentRequiresTitle(t *testing.T) {
	w := doGet(t, testRouter(), "/recommendations/content", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestByContentOK(t *testing.T) {
	w := doGet(t, testRouter(), "/recommendations/content?title=caterpillar", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	res := decodeResult(t, w)
	assert.False(t, res.Fallback)
	assert.Empty(t, res.Message)
	require.Len(t, res.Items, 5)
	assert.Equal(t, "Where the Wild Things Are", res.Items[0].Title)
}

func TestByContentFallbackMessage(t *testing.T) {
	r := testRouter()

	w := doGet(t, r, "/recommendations/content?title=zzzz", nil)
	require.Equal(t, http.StatusOK, w.Code)
	res := decodeResult(t, w)
	assert.True(t, res.Fallback)
	assert.Equal(t, messages["book_fallback"]["en"], res.Message)

	// lang=es cambia el mensaje, no el resultado
	w = doGet(t, r, "/recommendations/content?title=zzzz&lang=es", nil)
	resES := decodeResult(t, w)
	assert.Equal(t, messages["book_fallback"]["es"], resES.Message)
	assert.Equal(t, res.Items, resES.Items)
}

func TestByAuthorNotFoundLocalized(t *testing.T) {
	r := testRouter()

	w := doGet(t, r, "/recommendations/author?author=nadie", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, messages["author_not_found"]["en"], body["message"])

	w = doGet(t, r, "/recommendations/author?author=nadie&lang=es", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, messages["author_not_found"]["es"], body["message"])
}

func TestByAuthorOK(t *testing.T) {
	w := doGet(t, testRouter(), "/recommendations/author?author=seuss", nil)
	require.Equal(t, http.StatusOK, w.Code)
	res := decodeResult(t, w)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "Green Eggs and Ham", res.Items[0].Title)
}

func TestResolve(t *testing.T) {
	r := testRouter()

	w := doGet(t, r, "/books/resolve", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doGet(t, r, "/books/resolve?title=zzzz&lang=es", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, messages["book_not_found"]["es"], body["message"])

	w = doGet(t, r, "/books/resolve?title=moon", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var book models.BookDoc
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &book))
	assert.Equal(t, "Goodnight Moon", book.Title)
}

func TestGetBook(t *testing.T) {
	r := testRouter()

	w := doGet(t, r, "/books/3", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var book models.BookDoc
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &book))
	assert.Equal(t, 3, book.BookID)

	w = doGet(t, r, "/books/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestJWTAuthRejectsMissingOrBadToken(t *testing.T) {
	r := testRouter()

	w := doGet(t, r, "/me/profile", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doGet(t, r, "/me/profile", map[string]string{"Authorization": "Bearer basura"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminOnly(t *testing.T) {
	r := testRouter()

	// usuario normal: fuera
	userToken := signToken(t, jwt.MapClaims{"sub": 1, "role": "user"})
	w := doGet(t, r, "/users/7/recommendations", map[string]string{"Authorization": "Bearer " + userToken})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// admin: pasa
	adminToken := signToken(t, jwt.MapClaims{"sub": 1, "role": "admin"})
	w = doGet(t, r, "/users/7/recommendations", map[string]string{"Authorization": "Bearer " + adminToken})
	require.Equal(t, http.StatusOK, w.Code)
	res := decodeResult(t, w)
	assert.Len(t, res.Items, 3)
}

func TestUserRecommendationsNotFound(t *testing.T) {
	adminToken := signToken(t, jwt.MapClaims{"sub": 1, "role": "admin"})
	w := doGet(t, testRouter(), "/users/999/recommendations?lang=es", map[string]string{"Authorization": "Bearer " + adminToken})
	require.Equal(t, http.StatusNotFound, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, messages["user_not_found"]["es"], body["message"])
}

func TestMyProfileUsesLinkedDatasetUser(t *testing.T) {
	r := testRouter()

	// cuenta con datasetUserId enlazado
	linked := signToken(t, jwt.MapClaims{"sub": 1, "role": "user", "datasetUserId": 9})
	w := doGet(t, r, "/me/profile", map[string]string{"Authorization": "Bearer " + linked})
	require.Equal(t, http.StatusOK, w.Code)
	res := decodeResult(t, w)
	assert.Len(t, res.Items, 2)

	// cuenta sin enlace: 404
	unlinked := signToken(t, jwt.MapClaims{"sub": 2, "role": "user"})
	w = doGet(t, r, "/me/profile", map[string]string{"Authorization": "Bearer " + unlinked})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
