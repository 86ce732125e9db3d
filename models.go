package favorites

import (
	"time"

	"github.com/uptrace/bun"
)

// User is the user model. The password hash never serializes; the
// plaintext is never stored anywhere.
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`
	ID            int64      `bun:"id,pk,autoincrement" json:"id"`
	Email         string     `bun:"email,notnull,unique" json:"email"`
	PasswordHash  string     `bun:"password_hash,notnull" json:"-"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero" json:"updated_at,omitempty"`
}

// Favorite is one saved album in a user's personal list. AlbumID is the
// external release identifier (a UUID in the upstream catalog).
type Favorite struct {
	bun.BaseModel `bun:"table:favorites,alias:fav"`
	ID            int64      `bun:"id,pk,autoincrement" json:"id"`
	UserID        int64      `bun:"user_id,notnull" json:"user_id"`
	AlbumID       string     `bun:"album_id,notnull" json:"album_id"`
	AlbumName     string     `bun:"album_name,notnull" json:"album_name"`
	ArtistName    string     `bun:"artist_name,notnull" json:"artist_name"`
	CoverArtURL   string     `bun:"cover_art_url" json:"cover_art_url"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
}
