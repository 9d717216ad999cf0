// Package model contains domain entities and DTOs used across layers.
// Shapes mirror the remote Checkpoint API contract; no behavior lives here.
package model

// User is the authenticated identity returned by the session endpoint.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"` // e.g. "ADMIN", "USER"
}

// Game is a catalog card entry.
type Game struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	CoverURL      string   `json:"coverUrl"`
	ReleaseDate   string   `json:"releaseDate"`
	AverageRating *float64 `json:"averageRating"`
	RatingCount   int      `json:"ratingCount"`
}

// Genre, Platform and Company are the labelled references attached to a game.
type Genre struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Platform struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Company struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// GameDetail is the full single-game payload.
type GameDetail struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Description   *string    `json:"description"`
	CoverURL      string     `json:"coverUrl"`
	ReleaseDate   string     `json:"releaseDate"`
	AverageRating *float64   `json:"averageRating"`
	RatingCount   int        `json:"ratingCount"`
	Genres        []Genre    `json:"genres"`
	Platforms     []Platform `json:"platforms"`
	Companies     []Company  `json:"companies"`
}

// GameStatus is the shelf a library entry sits on.
type GameStatus string

const (
	StatusBacklog   GameStatus = "BACKLOG"
	StatusPlaying   GameStatus = "PLAYING"
	StatusCompleted GameStatus = "COMPLETED"
	StatusDropped   GameStatus = "DROPPED"
)

// Valid reports whether s is one of the statuses the API accepts.
func (s GameStatus) Valid() bool {
	switch s {
	case StatusBacklog, StatusPlaying, StatusCompleted, StatusDropped:
		return true
	default:
		return false
	}
}

// UserGame is one entry in the personal library listing.
type UserGame struct {
	ID          string     `json:"id"`
	VideoGameID string     `json:"videoGameId"`
	Title       string     `json:"title"`
	CoverURL    *string    `json:"coverUrl"`
	ReleaseDate *string    `json:"releaseDate"`
	Status      GameStatus `json:"status"`
	AddedAt     string     `json:"addedAt"`
	UpdatedAt   string     `json:"updatedAt"`
}

// UserGameRequest is the body of a library status mutation.
type UserGameRequest struct {
	VideoGameID string     `json:"videoGameId"`
	Status      GameStatus `json:"status"`
}

// PaginationMetadata is sent by the server alongside every paged listing.
// All booleans are derived server-side; the client trusts them verbatim for
// enabling and disabling the prev/next controls.
type PaginationMetadata struct {
	Page        int  `json:"page"` // 0-based
	Size        int  `json:"size"`
	TotalElems  int  `json:"totalElements"`
	TotalPages  int  `json:"totalPages"`
	First       bool `json:"first"`
	Last        bool `json:"last"`
	HasNext     bool `json:"hasNext"`
	HasPrevious bool `json:"hasPrevious"`
}

// PagedResponse carries a page of items plus its metadata.
type PagedResponse[T any] struct {
	Content  []T                `json:"content"`
	Metadata PaginationMetadata `json:"metadata"`
}
