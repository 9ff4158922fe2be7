package types

import "time"

type CreateExerciseRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Difficulty  *int    `json:"difficulty"`
	IsPublic    *bool   `json:"is_public"`
	VideoURL    *string `json:"video_url"`
}

// UpdateExerciseRequest carries only the fields the client sent; nil means
// "leave unchanged".
type UpdateExerciseRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Difficulty  *int    `json:"difficulty"`
	IsPublic    *bool   `json:"is_public"`
	VideoURL    *string `json:"video_url"`
}

type RateExerciseRequest struct {
	Rating *int `json:"rating"`
}

type ListExercisesQuery struct {
	Skip   int
	Limit  int
	SortBy string
}

// ExerciseResponse is the decorated exercise view returned by every endpoint
// that echoes exercise data.
type ExerciseResponse struct {
	ID               uint    `json:"id"`
	Name             string  `json:"name"`
	Description      string  `json:"description"`
	Difficulty       int     `json:"difficulty"`
	IsPublic         bool    `json:"is_public"`
	OwnerID          uint    `json:"owner_id"`
	VideoURL         string  `json:"video_url,omitempty"`
	FavoriteCount    int64   `json:"favorite_count"`
	SaveCount        int64   `json:"save_count"`
	AverageRating    float64 `json:"average_rating"`
	UserHasFavorited bool    `json:"user_has_favorited"`
	UserHasSaved     bool    `json:"user_has_saved"`
}

type ExerciseUsersResponse struct {
	FavoritedBy []UserSummary `json:"favorited_by"`
	SavedBy     []UserSummary `json:"saved_by"`
}

type SavedExercisesResponse struct {
	SavedExerciseIDs []uint `json:"saved_exercise_ids"`
}

// ExerciseSnapshot is the document pushed to export sinks.
type ExerciseSnapshot struct {
	ID            uint      `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Difficulty    int       `json:"difficulty"`
	IsPublic      bool      `json:"is_public"`
	OwnerID       uint      `json:"owner_id"`
	VideoURL      string    `json:"video_url"`
	FavoriteCount int64     `json:"favorite_count"`
	SaveCount     int64     `json:"save_count"`
	AverageRating float64   `json:"average_rating"`
	ExportedAt    time.Time `json:"exported_at"`
}
