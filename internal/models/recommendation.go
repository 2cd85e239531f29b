package models

import "time"

// Lo que devolvemos por API para cada libro recomendado.
type RecItem struct {
	Title      string  `bson:"title"      json:"title"`
	ImageURL   string  `bson:"imageUrl"   json:"imageUrl"`
	Rating     float64 `bson:"rating"     json:"rating"`
	Similarity float64 `bson:"similarity,omitempty" json:"similarity,omitempty"`
}

// Historial de recomendaciones servidas (colección "recommendations" en Mongo).
type Recommendation struct {
	ID        string    `bson:"_id,omitempty"     json:"id"`
	UserID    int       `bson:"userId,omitempty"  json:"userId,omitempty"`
	Query     string    `bson:"query,omitempty"   json:"query,omitempty"`
	Strategy  string    `bson:"strategy"          json:"strategy"`
	Params    any       `bson:"params"            json:"params"`
	Fallback  bool      `bson:"fallback"          json:"fallback"`
	Items     []RecItem `bson:"items"             json:"items"`
	CreatedAt time.Time `bson:"createdAt"         json:"createdAt"`
}
