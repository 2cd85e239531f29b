package handler

import (
	"net/http"
	"strconv"

	"librosrec/internal/service"

	"github.com/go-chi/chi/v5"
)

type BookHandler struct {
	svc *service.BookService
}

func NewBookHandler(s *service.BookService) *BookHandler { return &BookHandler{svc: s} }

// @Summary Get book
// @Tags books
// @Produce json
// @Param id path int true "bookId"
// @Success 200 {object} models.BookDoc
// @Failure 404 {string} string "no existe"
// @Router /books/{id} [get]
func (h *BookHandler) GetBook(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	b, ok := h.svc.GetBook(id)
	if !ok {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

// @Summary Buscar / listar libros (paginado)
// @Tags books
// @Produce json
// @Param q query string false "búsqueda por título"
// @Param author query string false "búsqueda por autor"
// @Param limit query int false "límite (default 20)"
// @Param offset query int false "offset"
// @Success 200 {array} models.BookDoc
// @Router /books/search [get]
func (h *BookHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	author := r.URL.Query().Get("author")

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	if limit <= 0 {
		limit = 20
	}

	writeJSON(w, http.StatusOK, h.svc.Search(q, author, limit, offset))
}

// @Summary Top libros (popularidad o rating)
// @Tags books
// @Produce json
// @Param metric query string false "popular|rating (default: popular)"
// @Param limit query int false "límite (default: 20)"
// @Success 200 {array} models.BookDoc
// @Router /books/top [get]
func (h *BookHandler) Top(w http.ResponseWriter, r *http.Request) {
	metric := r.URL.Query().Get("metric")
	if metric == "" {
		metric = "popular"
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 {
		limit = 20
	}

	writeJSON(w, http.StatusOK, h.svc.Top(metric, limit))
}

// @Summary Resuelve un título a su libro (el panel "show book" de la app vieja)
// @Description Coincidencia por substring case-insensitive; desempata por ratings_count.
// @Tags books
// @Produce json
// @Param title query string true "título (o parte)"
// @Param lang query string false "en|es"
// @Success 200 {object} models.BookDoc
// @Failure 400 {string} string "title requerido"
// @Failure 404 {object} map[string]string
// @Router /books/resolve [get]
func (h *BookHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	title := r.URL.Query().Get("title")
	if title == "" {
		http.Error(w, "title es requerido", http.StatusBadRequest)
		return
	}

	b, ok := h.svc.Resolve(title)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": msg("book_not_found", langFrom(r))})
		return
	}
	writeJSON(w, http.StatusOK, b)
}
