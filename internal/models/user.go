package models

type UserDoc struct {
	UserID int `json:"userId" bson:"userId"`
	// DatasetUserID enlaza la cuenta con un id de usuario del dataset
	// (1..3342); es opcional porque no toda cuenta tiene perfil de ratings.
	DatasetUserID *int   `json:"datasetUserId,omitempty" bson:"datasetUserId,omitempty"`
	Email         string `json:"email" bson:"email"`
	PasswordHash  string `json:"passwordHash" bson:"passwordHash"`
	Role          string `json:"role" bson:"role"`
	CreatedAt     string `json:"createdAt" bson:"createdAt"`
}
