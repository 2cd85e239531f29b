package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"librosrec/internal/models"
)

// Artefactos esperados dentro de DATA_DIR. Todos son salida del pipeline
// offline (el entrenamiento no vive en este servicio).
const (
	ContentCatalogFile = "children_book_processed.csv"
	CollabCatalogFile  = "children_book_collab.csv"
	ContentMatrixFile  = "content_similarity.csv"
	CollabMatrixFile   = "collab_similarity.csv"
	UserRecsFile       = "children_user_recommendation.csv"
	UserTopRatedFile   = "children_user_toprated.csv"
)

// Load lee todos los artefactos y valida que las matrices coincidan en
// dimensión con su catálogo. Se llama una sola vez en el arranque.
func Load(dataDir string) (*Store, error) {
	content, err := loadCatalog(filepath.Join(dataDir, ContentCatalogFile))
	if err != nil {
		return nil, fmt.Errorf("catálogo de contenido: %w", err)
	}
	collab, err := loadCatalog(filepath.Join(dataDir, CollabCatalogFile))
	if err != nil {
		return nil, fmt.Errorf("catálogo colaborativo: %w", err)
	}

	contentSim, err := loadMatrix(filepath.Join(dataDir, ContentMatrixFile))
	if err != nil {
		return nil, fmt.Errorf("matriz de contenido: %w", err)
	}
	if contentSim.Dim() != content.Len() {
		return nil, fmt.Errorf("matriz de contenido de dimensión %d no coincide con catálogo de %d filas",
			contentSim.Dim(), content.Len())
	}

	collabSim, err := loadMatrix(filepath.Join(dataDir, CollabMatrixFile))
	if err != nil {
		return nil, fmt.Errorf("matriz colaborativa: %w", err)
	}
	if collabSim.Dim() != collab.Len() {
		return nil, fmt.Errorf("matriz colaborativa de dimensión %d no coincide con catálogo de %d filas",
			collabSim.Dim(), collab.Len())
	}

	userRecs, err := loadUserRecs(filepath.Join(dataDir, UserRecsFile))
	if err != nil {
		return nil, fmt.Errorf("recomendaciones por usuario: %w", err)
	}
	userTopRated, err := loadUserTopRated(filepath.Join(dataDir, UserTopRatedFile))
	if err != nil {
		return nil, fmt.Errorf("top-rated por usuario: %w", err)
	}

	return &Store{
		Content:      content,
		Collab:       collab,
		ContentSim:   contentSim,
		CollabSim:    collabSim,
		UserRecs:     userRecs,
		UserTopRated: userTopRated,
	}, nil
}

// loadCatalog lee un CSV con header y columnas nombradas
// title, author_name, ratings_count, average_rating, image_url, book_id
// (en cualquier orden, se permiten columnas extra).
func loadCatalog(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: archivo vacío", path)
	}

	col := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		col[name] = i
	}
	for _, required := range []string{"title", "author_name", "ratings_count", "average_rating", "image_url", "book_id"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("%s: falta la columna %q", path, required)
		}
	}

	books := make([]models.BookDoc, 0, len(records)-1)
	for n, rec := range records[1:] {
		bookID, err := atoiLoose(rec[col["book_id"]])
		if err != nil {
			return nil, fmt.Errorf("%s fila %d: book_id inválido: %w", path, n+2, err)
		}
		count, err := atoiLoose(rec[col["ratings_count"]])
		if err != nil {
			return nil, fmt.Errorf("%s fila %d: ratings_count inválido: %w", path, n+2, err)
		}
		rating, err := strconv.ParseFloat(rec[col["average_rating"]], 64)
		if err != nil {
			return nil, fmt.Errorf("%s fila %d: average_rating inválido: %w", path, n+2, err)
		}

		books = append(books, models.BookDoc{
			BookID:        bookID,
			Title:         rec[col["title"]],
			AuthorName:    rec[col["author_name"]],
			RatingsCount:  count,
			AverageRating: rating,
			ImageURL:      rec[col["image_url"]],
		})
	}
	return NewCatalog(books), nil
}

// loadMatrix lee una matriz cuadrada de floats, una fila de catálogo por
// línea, sin header.
func loadMatrix(path string) (*Matrix, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	rows := make([][]float64, len(records))
	for i, rec := range records {
		row := make([]float64, len(rec))
		for j, cell := range rec {
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("%s fila %d col %d: %w", path, i+1, j+1, err)
			}
			row[j] = v
		}
		rows[i] = row
	}
	return NewMatrix(rows)
}

// loadUserRecs lee el CSV ancho de FunkSVD: primera columna el userId y el
// resto los book_id recomendados en orden. Tiene header (se ignora).
func loadUserRecs(path string) (map[int][]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: archivo vacío", path)
	}

	out := make(map[int][]int, len(records)-1)
	for n, rec := range records[1:] {
		if len(rec) < 2 {
			continue
		}
		userID, err := atoiLoose(rec[0])
		if err != nil {
			return nil, fmt.Errorf("%s fila %d: userId inválido: %w", path, n+2, err)
		}
		ids := make([]int, 0, len(rec)-1)
		for _, cell := range rec[1:] {
			if cell == "" {
				continue
			}
			id, err := atoiLoose(cell)
			if err != nil {
				return nil, fmt.Errorf("%s fila %d: book_id inválido: %w", path, n+2, err)
			}
			ids = append(ids, id)
		}
		out[userID] = ids
	}
	return out, nil
}

// loadUserTopRated lee el CSV largo con columnas user y book_id (un rating
// por fila).
func loadUserTopRated(path string) (map[int][]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: archivo vacío", path)
	}

	col := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		col[name] = i
	}
	for _, required := range []string{"user", "book_id"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("%s: falta la columna %q", path, required)
		}
	}

	out := make(map[int][]int)
	for n, rec := range records[1:] {
		userID, err := atoiLoose(rec[col["user"]])
		if err != nil {
			return nil, fmt.Errorf("%s fila %d: user inválido: %w", path, n+2, err)
		}
		bookID, err := atoiLoose(rec[col["book_id"]])
		if err != nil {
			return nil, fmt.Errorf("%s fila %d: book_id inválido: %w", path, n+2, err)
		}
		out[userID] = append(out[userID], bookID)
	}
	return out, nil
}

// atoiLoose acepta enteros escritos como float ("50000.0"), que es como
// pandas exporta columnas numéricas con NaN en el dataset original.
func atoiLoose(s string) (int, error) {
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}
