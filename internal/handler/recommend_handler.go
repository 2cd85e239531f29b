package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"librosrec/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
)

type RecommendHandler struct {
	svc *service.RecommendService
}

func NewRecommendHandler(s *service.RecommendService) *RecommendHandler {
	return &RecommendHandler{svc: s}
}

func titleParams(r *http.Request) (title string, threshold int, refresh bool) {
	title = r.URL.Query().Get("title")
	threshold, _ = strconv.Atoi(r.URL.Query().Get("threshold"))
	refresh = r.URL.Query().Get("refresh") == "true"
	return
}

// @Summary Recomendación content-based por título
// @Description Similitud de descripciones (TF-IDF precalculado). Título no encontrado cae a popularidad, rangos 1-5.
// @Tags recommend
// @Produce json
// @Param title query string true "título (o parte)"
// @Param threshold query int false "mínimo de ratings para ser candidato (default 100)"
// @Param refresh query bool false "si true, ignora cache Redis"
// @Param lang query string false "en|es"
// @Success 200 {object} service.RecResult
// @Failure 400 {string} string "title requerido"
// @Router /recommendations/content [get]
func (h *RecommendHandler) ByContent(w http.ResponseWriter, r *http.Request) {
	title, threshold, refresh := titleParams(r)
	if title == "" {
		http.Error(w, "title es requerido", http.StatusBadRequest)
		return
	}

	res, err := h.svc.RecommendContent(r.Context(), title, threshold, refresh)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if res.Fallback {
		res.Message = msg("book_fallback", langFrom(r))
	}
	writeJSON(w, http.StatusOK, res)
}

// @Summary Recomendación colaborativa por título
// @Description Similitud ítem-ítem de la matriz usuario-libro. Título no encontrado cae a popularidad, rangos 6-10.
// @Tags recommend
// @Produce json
// @Param title query string true "título (o parte)"
// @Param threshold query int false "mínimo de ratings para ser candidato (default 100)"
// @Param refresh query bool false "si true, ignora cache Redis"
// @Param lang query string false "en|es"
// @Success 200 {object} service.RecResult
// @Failure 400 {string} string "title requerido"
// @Router /recommendations/collaborative [get]
func (h *RecommendHandler) ByCollaborative(w http.ResponseWriter, r *http.Request) {
	title, threshold, refresh := titleParams(r)
	if title == "" {
		http.Error(w, "title es requerido", http.StatusBadRequest)
		return
	}

	res, err := h.svc.RecommendCollaborative(r.Context(), title, threshold, refresh)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if res.Fallback {
		res.Message = msg("book_fallback", langFrom(r))
	}
	writeJSON(w, http.StatusOK, res)
}

// @Summary Recomendación por autor
// @Description Top 5 por rating promedio entre los libros del autor con más de threshold ratings.
// @Tags recommend
// @Produce json
// @Param author query string true "autor (o parte)"
// @Param threshold query int false "mínimo de ratings (default 50)"
// @Param refresh query bool false "si true, ignora cache Redis"
// @Param lang query string false "en|es"
// @Success 200 {object} service.RecResult
// @Failure 400 {string} string "author requerido"
// @Failure 404 {object} map[string]string
// @Router /recommendations/author [get]
func (h *RecommendHandler) ByAuthor(w http.ResponseWriter, r *http.Request) {
	author := r.URL.Query().Get("author")
	if author == "" {
		http.Error(w, "author es requerido", http.StatusBadRequest)
		return
	}
	threshold, _ := strconv.Atoi(r.URL.Query().Get("threshold"))
	refresh := r.URL.Query().Get("refresh") == "true"

	res, err := h.svc.RecommendByAuthor(r.Context(), author, threshold, refresh)
	if err != nil {
		if errors.Is(err, service.ErrAuthorNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"message": msg("author_not_found", langFrom(r))})
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// serveUserRecommendations comparte la lógica entre /users/{id} y /me.
func (h *RecommendHandler) serveUserRecommendations(w http.ResponseWriter, r *http.Request, userID int) {
	res, err := h.svc.RecommendForUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"message": msg("user_not_found", langFrom(r))})
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *RecommendHandler) serveUserProfile(w http.ResponseWriter, r *http.Request, userID int) {
	res, err := h.svc.UserProfile(userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"message": msg("user_not_found", langFrom(r))})
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// @Summary Recomendaciones FunkSVD para un usuario del dataset
// @Description Muestrea 5 sin reemplazo de la lista precalculada; cada llamada puede dar un subconjunto distinto.
// @Tags recommend
// @Security BearerAuth
// @Produce json
// @Param id path int true "userId del dataset (1-3342)"
// @Param lang query string false "en|es"
// @Success 200 {object} service.RecResult
// @Failure 404 {object} map[string]string
// @Router /users/{id}/recommendations [get]
func (h *RecommendHandler) GetUserRecommendations(w http.ResponseWriter, r *http.Request) {
	userID, _ := strconv.Atoi(chi.URLParam(r, "id"))
	h.serveUserRecommendations(w, r, userID)
}

// @Summary Perfil de ratings de un usuario del dataset
// @Description Todos los libros que el usuario calificó (sin muestreo).
// @Tags recommend
// @Security BearerAuth
// @Produce json
// @Param id path int true "userId del dataset"
// @Param lang query string false "en|es"
// @Success 200 {object} service.RecResult
// @Failure 404 {object} map[string]string
// @Router /users/{id}/profile [get]
func (h *RecommendHandler) GetUserProfile(w http.ResponseWriter, r *http.Request) {
	userID, _ := strconv.Atoi(chi.URLParam(r, "id"))
	h.serveUserProfile(w, r, userID)
}

// @Summary Recomendaciones FunkSVD de la cuenta logueada
// @Tags recommend
// @Security BearerAuth
// @Produce json
// @Success 200 {object} service.RecResult
// @Failure 404 {object} map[string]string
// @Router /me/recommendations [get]
func (h *RecommendHandler) GetMyRecommendations(w http.ResponseWriter, r *http.Request) {
	userID, ok := DatasetUserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": msg("user_not_found", langFrom(r))})
		return
	}
	h.serveUserRecommendations(w, r, userID)
}

// @Summary Perfil de ratings de la cuenta logueada
// @Tags recommend
// @Security BearerAuth
// @Produce json
// @Success 200 {object} service.RecResult
// @Failure 404 {object} map[string]string
// @Router /me/profile [get]
func (h *RecommendHandler) GetMyProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := DatasetUserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": msg("user_not_found", langFrom(r))})
		return
	}
	h.serveUserProfile(w, r, userID)
}

// @Summary Historial de recomendaciones servidas a un usuario
// @Tags recommend
// @Security BearerAuth
// @Produce json
// @Param id path int true "userId"
// @Param limit query int false "límite (default 20)"
// @Success 200 {array} models.Recommendation
// @Router /users/{id}/history [get]
func (h *RecommendHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	userID, _ := strconv.Atoi(chi.URLParam(r, "id"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 {
		limit = 20
	}

	list, err := h.svc.History(r.Context(), userID, int64(limit))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// upgrader global (no afecta a swagger)
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// @Summary Recomendaciones + perfil por WebSocket
// @Description Frames: start, recommendations, profile, done (o error con mensaje).
// @Tags recommend
// @Security BearerAuth
// @Param id path int true "userId del dataset"
// @Success 200 {object} map[string]interface{}
// @Router /users/{id}/ws/recommendations [get]
func (h *RecommendHandler) GetUserRecommendationsWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		http.Error(w, "No se pudo abrir WebSocket", http.StatusBadRequest)
		return
	}
	defer conn.Close()

	userID, _ := strconv.Atoi(chi.URLParam(r, "id"))
	lang := langFrom(r)

	conn.WriteJSON(map[string]any{
		"type": "start",
		"msg":  "Conexión WS abierta, consultando recomendaciones…",
	})

	recs, err := h.svc.RecommendForUser(r.Context(), userID)
	if err != nil {
		conn.WriteJSON(map[string]any{
			"type":  "error",
			"error": msg("user_not_found", lang),
		})
		return
	}
	conn.WriteJSON(map[string]any{
		"type":   "recommendations",
		"userId": userID,
		"items":  recs.Items,
	})

	// el perfil puede faltar aunque haya recomendaciones; se manda vacío
	if profile, err := h.svc.UserProfile(userID); err == nil {
		conn.WriteJSON(map[string]any{
			"type":   "profile",
			"userId": userID,
			"items":  profile.Items,
		})
	} else {
		conn.WriteJSON(map[string]any{
			"type":   "profile",
			"userId": userID,
			"items":  []any{},
		})
	}

	conn.WriteJSON(map[string]any{
		"type":        "done",
		"generatedAt": time.Now(),
	})
}
