package repository

// UserDataRepository expone las dos tablas por usuario del modelo FunkSVD.
// Ojo: los dominios de id válidos son independientes; un usuario puede estar
// en una tabla y no en la otra, cada lookup falla por su cuenta.
type UserDataRepository struct {
	recs     map[int][]int
	topRated map[int][]int
}

func NewUserDataRepository(recs, topRated map[int][]int) *UserDataRepository {
	return &UserDataRepository{recs: recs, topRated: topRated}
}

// RecommendedBookIDs devuelve la lista precalculada de book_id recomendados
// para el usuario, en el orden que dejó el modelo.
func (r *UserDataRepository) RecommendedBookIDs(userID int) ([]int, bool) {
	ids, ok := r.recs[userID]
	return ids, ok
}

// RatedBookIDs devuelve los book_id que el usuario ya calificó.
func (r *UserDataRepository) RatedBookIDs(userID int) ([]int, bool) {
	ids, ok := r.topRated[userID]
	return ids, ok
}

func (r *UserDataRepository) UsersWithRecommendations() int { return len(r.recs) }

func (r *UserDataRepository) UsersWithRatedBooks() int { return len(r.topRated) }
