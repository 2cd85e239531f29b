package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"sort"
	"strings"
	"sync"

	"librosrec/internal/cache"
	"librosrec/internal/models"
	"librosrec/internal/repository"
)

const (
	DefaultContentThreshold = 100
	DefaultAuthorThreshold  = 50

	// Umbral de votos del pool de popularidad que usan los fallbacks.
	FallbackMinVotes = 50000

	// Cuántos libros devuelve cada estrategia.
	TopK = 5

	cacheTTLSeconds = 60 * 60
)

const (
	StrategyContent       = "content"
	StrategyCollaborative = "collaborative"
	StrategyAuthor        = "author"
	StrategyUser          = "funk-svd"
	StrategyProfile       = "profile"
)

var (
	ErrAuthorNotFound = errors.New("author not found")
	ErrUserNotFound   = errors.New("user not found")
)

type RecResult struct {
	Strategy string           `json:"strategy"`
	Query    string           `json:"query,omitempty"`
	Fallback bool             `json:"fallback"`
	Message  string           `json:"message,omitempty"`
	Items    []models.RecItem `json:"items"`
}

// RecommendService implementa las cuatro estrategias de recomendación sobre
// los stores inmutables cargados al arrancar. Cada estrategia lleva su par
// catálogo+matriz; las matrices no se cruzan entre catálogos.
type RecommendService struct {
	content    *repository.BookRepository
	collab     *repository.BookRepository
	contentSim *repository.SimilarityRepository
	collabSim  *repository.SimilarityRepository
	users      *repository.UserDataRepository
	// puede ser nil (tests); el historial es best-effort y nunca rompe la respuesta
	history *repository.HistoryRepository

	// fuente de azar inyectable para el muestreo de RecommendForUser;
	// el mutex porque los handlers corren concurrentes
	rng   *rand.Rand
	rngMu sync.Mutex
}

func NewRecommendService(
	content, collab *repository.BookRepository,
	contentSim, collabSim *repository.SimilarityRepository,
	users *repository.UserDataRepository,
	history *repository.HistoryRepository,
	rng *rand.Rand,
) *RecommendService {
	return &RecommendService{
		content:    content,
		collab:     collab,
		contentSim: contentSim,
		collabSim:  collabSim,
		users:      users,
		history:    history,
		rng:        rng,
	}
}

// ====== Recomendación por título (contenido y colaborativa) ======

// RecommendContent rankea por similitud de descripciones (matriz TF-IDF
// precalculada). Si el título no existe cae al fallback de popularidad,
// rangos 1-5.
func (s *RecommendService) RecommendContent(ctx context.Context, title string, threshold int, refresh bool) (*RecResult, error) {
	if threshold <= 0 {
		threshold = DefaultContentThreshold
	}

	key := recCacheKey(StrategyContent, title, threshold)
	if !refresh {
		var cached RecResult
		if ok, err := cache.GetJSON(ctx, key, &cached); err == nil && ok {
			return &cached, nil
		}
	}

	res := s.recommendByTitle(StrategyContent, s.content, s.contentSim, title, threshold, 0)

	s.saveHistory(ctx, &models.Recommendation{
		Query:    title,
		Strategy: res.Strategy,
		Params:   map[string]any{"voteThreshold": threshold},
		Fallback: res.Fallback,
		Items:    res.Items,
	})

	if err := cache.SetJSON(ctx, key, res, cacheTTLSeconds); err != nil {
		log.Printf("error cacheando recomendación en Redis: %v", err)
	}
	return res, nil
}

// RecommendCollaborative rankea por similitud ítem-ítem de la matriz
// usuario-libro. Mismo algoritmo que contenido pero sobre el catálogo
// colaborativo, y su fallback corta los rangos 6-10 (la ventana desplazada
// se mantiene tal cual a propósito).
func (s *RecommendService) RecommendCollaborative(ctx context.Context, title string, threshold int, refresh bool) (*RecResult, error) {
	if threshold <= 0 {
		threshold = DefaultContentThreshold
	}

	key := recCacheKey(StrategyCollaborative, title, threshold)
	if !refresh {
		var cached RecResult
		if ok, err := cache.GetJSON(ctx, key, &cached); err == nil && ok {
			return &cached, nil
		}
	}

	res := s.recommendByTitle(StrategyCollaborative, s.collab, s.collabSim, title, threshold, TopK)

	s.saveHistory(ctx, &models.Recommendation{
		Query:    title,
		Strategy: res.Strategy,
		Params:   map[string]any{"voteThreshold": threshold},
		Fallback: res.Fallback,
		Items:    res.Items,
	})

	if err := cache.SetJSON(ctx, key, res, cacheTTLSeconds); err != nil {
		log.Printf("error cacheando recomendación en Redis: %v", err)
	}
	return res, nil
}

func (s *RecommendService) recommendByTitle(
	strategy string,
	books *repository.BookRepository,
	sims *repository.SimilarityRepository,
	title string,
	threshold int,
	fallbackFrom int,
) *RecResult {
	idx, ok := books.ResolveTitle(title)
	if !ok {
		// título no encontrado: popularidad, con la ventana propia de la estrategia
		items := toRecItems(books.TopRatedWindow(FallbackMinVotes, fallbackFrom, fallbackFrom+TopK))
		return &RecResult{Strategy: strategy, Query: title, Fallback: true, Items: items}
	}

	row, ok := sims.Row(idx)
	if !ok {
		// las dimensiones se validan al cargar, esto no debería pasar
		items := toRecItems(books.TopRatedWindow(FallbackMinVotes, fallbackFrom, fallbackFrom+TopK))
		return &RecResult{Strategy: strategy, Query: title, Fallback: true, Items: items}
	}

	return &RecResult{Strategy: strategy, Query: title, Items: rankBySimilarity(books, row, threshold)}
}

// rankBySimilarity arma los candidatos con ratings_count > threshold, los
// ordena por similitud descendente y descarta el primer puesto: el self-match
// del libro consultado (similitud 1.0 consigo mismo). El descarte es
// posicional; si el libro consultado quedó fuera del umbral, el primer puesto
// descartado es un candidato real. Limitación conocida, se mantiene tal cual.
func rankBySimilarity(books *repository.BookRepository, row []float64, threshold int) []models.RecItem {
	type scored struct {
		idx int
		sim float64
	}

	var cands []scored
	for i := 0; i < books.Len(); i++ {
		if books.At(i).RatingsCount > threshold {
			cands = append(cands, scored{idx: i, sim: row[i]})
		}
	}
	sort.SliceStable(cands, func(a, b int) bool { return cands[a].sim > cands[b].sim })

	if len(cands) == 0 {
		return []models.RecItem{}
	}
	cands = cands[1:]
	if len(cands) > TopK {
		cands = cands[:TopK]
	}

	items := make([]models.RecItem, 0, len(cands))
	for _, c := range cands {
		b := books.At(c.idx)
		items = append(items, models.RecItem{
			Title:      b.Title,
			ImageURL:   b.ImageURL,
			Rating:     b.AverageRating,
			Similarity: c.sim,
		})
	}
	return items
}

// ====== Recomendación por autor ======

// RecommendByAuthor junta los libros del autor (substring, case-insensitive)
// con ratings_count > threshold y devuelve los 5 mejores por rating promedio.
// Autor sin matches devuelve ErrAuthorNotFound; autor con matches pero todos
// bajo el umbral devuelve lista vacía, no error.
func (s *RecommendService) RecommendByAuthor(ctx context.Context, author string, threshold int, refresh bool) (*RecResult, error) {
	if threshold <= 0 {
		threshold = DefaultAuthorThreshold
	}

	key := recCacheKey(StrategyAuthor, author, threshold)
	if !refresh {
		var cached RecResult
		if ok, err := cache.GetJSON(ctx, key, &cached); err == nil && ok {
			return &cached, nil
		}
	}

	matches := s.content.MatchAuthor(author)
	if len(matches) == 0 {
		return nil, ErrAuthorNotFound
	}

	var pool []models.BookDoc
	for _, i := range matches {
		if b := s.content.At(i); b.RatingsCount > threshold {
			pool = append(pool, b)
		}
	}
	sort.SliceStable(pool, func(a, b int) bool { return pool[a].AverageRating > pool[b].AverageRating })
	if len(pool) > TopK {
		pool = pool[:TopK]
	}

	res := &RecResult{Strategy: StrategyAuthor, Query: author, Items: toRecItems(pool)}

	s.saveHistory(ctx, &models.Recommendation{
		Query:    author,
		Strategy: StrategyAuthor,
		Params:   map[string]any{"voteThreshold": threshold},
		Items:    res.Items,
	})

	if err := cache.SetJSON(ctx, key, res, cacheTTLSeconds); err != nil {
		log.Printf("error cacheando recomendación en Redis: %v", err)
	}
	return res, nil
}

// ====== Recomendación por usuario (FunkSVD precalculado) ======

// RecommendForUser muestrea 5 libros sin reemplazo de la lista precalculada
// del usuario. El muestreo es aleatorio por contrato (consultar de nuevo da
// otro subconjunto), por eso esta estrategia nunca se cachea en Redis.
func (s *RecommendService) RecommendForUser(ctx context.Context, userID int) (*RecResult, error) {
	ids, ok := s.users.RecommendedBookIDs(userID)
	if !ok {
		return nil, ErrUserNotFound
	}

	candidates := s.joinContentByBookID(ids)

	s.rngMu.Lock()
	perm := s.rng.Perm(len(candidates))
	s.rngMu.Unlock()

	n := TopK
	if len(candidates) < n {
		n = len(candidates)
	}

	items := make([]models.RecItem, 0, n)
	for _, p := range perm[:n] {
		b := candidates[p]
		items = append(items, models.RecItem{Title: b.Title, ImageURL: b.ImageURL, Rating: b.AverageRating})
	}

	res := &RecResult{Strategy: StrategyUser, Items: items}

	s.saveHistory(ctx, &models.Recommendation{
		UserID:   userID,
		Strategy: StrategyUser,
		Params:   map[string]any{"candidates": len(candidates)},
		Items:    items,
	})
	return res, nil
}

// UserProfile devuelve TODOS los libros que el usuario calificó, en orden de
// catálogo (acá no hay muestreo). Los dominios de id de las dos tablas son
// independientes: un usuario puede tener perfil y no recomendaciones, o al revés.
func (s *RecommendService) UserProfile(userID int) (*RecResult, error) {
	ids, ok := s.users.RatedBookIDs(userID)
	if !ok {
		return nil, ErrUserNotFound
	}
	return &RecResult{Strategy: StrategyProfile, Items: toRecItems(s.joinContentByBookID(ids))}, nil
}

// History lista las recomendaciones guardadas de un usuario.
func (s *RecommendService) History(ctx context.Context, userID int, limit int64) ([]models.Recommendation, error) {
	if s.history == nil {
		return []models.Recommendation{}, nil
	}
	return s.history.FindByUser(ctx, userID, limit)
}

// ====== helpers ======

// joinContentByBookID resuelve book_ids contra el catálogo de contenido,
// preservando el orden de catálogo. Ids que no están en el catálogo se
// descartan en silencio.
func (s *RecommendService) joinContentByBookID(ids []int) []models.BookDoc {
	want := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}

	var out []models.BookDoc
	for i := 0; i < s.content.Len(); i++ {
		b := s.content.At(i)
		if _, ok := want[b.BookID]; ok {
			out = append(out, b)
		}
	}
	return out
}

func toRecItems(books []models.BookDoc) []models.RecItem {
	items := make([]models.RecItem, 0, len(books))
	for _, b := range books {
		items = append(items, models.RecItem{Title: b.Title, ImageURL: b.ImageURL, Rating: b.AverageRating})
	}
	return items
}

func (s *RecommendService) saveHistory(ctx context.Context, rec *models.Recommendation) {
	if s.history == nil {
		return
	}
	if err := s.history.Insert(ctx, rec); err != nil {
		log.Printf("error guardando recomendación en Mongo: %v", err)
	}
}

// Cachea por estrategia + query normalizada + threshold, así "Eric Carle" y
// "eric carle" comparten entrada.
func recCacheKey(strategy, query string, threshold int) string {
	return fmt.Sprintf("rec:%s:q:%s:t:%d", strategy, strings.ToLower(strings.TrimSpace(query)), threshold)
}
