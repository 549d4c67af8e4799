package player

import "context"

// Repository describes player persistence needs from use cases.
type Repository interface {
	// List returns all players ordered by full name ascending.
	List(ctx context.Context) ([]Player, error)
	// ListRecent returns the newest players by creation time, newest first.
	ListRecent(ctx context.Context, limit int) ([]Player, error)
	// ListTopMVPs returns players with at least one MVP award, ordered by
	// award count descending.
	ListTopMVPs(ctx context.Context, limit int) ([]Player, error)
	Count(ctx context.Context) (int, error)
	GetByID(ctx context.Context, id int64) (Player, bool, error)
	GetByPlayerID(ctx context.Context, playerID string) (Player, bool, error)
	// Create inserts a new player and returns the assigned surrogate key.
	// Returns ErrDuplicatePlayerID when the external identifier is taken.
	Create(ctx context.Context, p Player) (int64, error)
	// Update replaces the mutable profile fields of the player at p.ID and
	// refreshes the update timestamp. Returns false when no row matched.
	Update(ctx context.Context, p Player) (bool, error)
	// Delete removes the player row; session facts cascade in the store.
	// Returns false when no row matched.
	Delete(ctx context.Context, id int64) (bool, error)
}
