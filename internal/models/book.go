package models

// Fila del catálogo de libros infantiles (CSV precalculado del pipeline de ML).
// book_id es el id de Goodreads; el índice dentro del catálogo es la coordenada
// en las matrices de similitud.
type BookDoc struct {
	BookID        int     `bson:"bookId"        json:"bookId"`
	Title         string  `bson:"title"         json:"title"`
	AuthorName    string  `bson:"authorName"    json:"authorName"`
	RatingsCount  int     `bson:"ratingsCount"  json:"ratingsCount"`
	AverageRating float64 `bson:"averageRating" json:"averageRating"`
	ImageURL      string  `bson:"imageUrl"      json:"imageUrl"`
}
