package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/prasetyadi/volley-club/internal/domain/player"
	qb "github.com/prasetyadi/volley-club/internal/platform/querybuilder"
)

type PlayerRepository struct {
	db *sqlx.DB
}

var playerSelectColumns = []string{
	"id",
	"player_id",
	"full_name",
	"phone",
	"instagram",
	"age",
	"skill_level",
	"sessions_attended",
	"mvp_awards",
	"total_points",
	"total_saves",
	"form_submissions",
	"created_at",
	"updated_at",
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) List(ctx context.Context) ([]player.Player, error) {
	query, args, err := qb.Select(playerSelectColumns...).From("players").
		OrderBy("full_name ASC", "id ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list players query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	return playersFromRows(rows), nil
}

func (r *PlayerRepository) ListRecent(ctx context.Context, limit int) ([]player.Player, error) {
	query, args, err := qb.Select(playerSelectColumns...).From("players").
		OrderBy("created_at DESC", "id DESC").
		Limit(limit).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list recent players query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list recent players: %w", err)
	}
	return playersFromRows(rows), nil
}

func (r *PlayerRepository) ListTopMVPs(ctx context.Context, limit int) ([]player.Player, error) {
	query, args, err := qb.Select(playerSelectColumns...).From("players").
		Where(qb.Gt("mvp_awards", 0)).
		OrderBy("mvp_awards DESC", "full_name ASC").
		Limit(limit).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list top mvps query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list top mvps: %w", err)
	}
	return playersFromRows(rows), nil
}

func (r *PlayerRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM players"); err != nil {
		return 0, fmt.Errorf("count players: %w", err)
	}
	return count, nil
}

func (r *PlayerRepository) GetByID(ctx context.Context, id int64) (player.Player, bool, error) {
	return r.getOne(ctx, qb.Eq("id", id))
}

func (r *PlayerRepository) GetByPlayerID(ctx context.Context, playerID string) (player.Player, bool, error) {
	return r.getOne(ctx, qb.Eq("player_id", playerID))
}

func (r *PlayerRepository) getOne(ctx context.Context, cond qb.Condition) (player.Player, bool, error) {
	query, args, err := qb.Select(playerSelectColumns...).From("players").
		Where(cond).
		ToSQL()
	if err != nil {
		return player.Player{}, false, fmt.Errorf("build get player query: %w", err)
	}

	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, fmt.Errorf("get player: %w", err)
	}
	return playerFromRow(row), true, nil
}

func (r *PlayerRepository) Create(ctx context.Context, p player.Player) (int64, error) {
	insertModel := playerInsertModel{
		PlayerID:   p.PlayerID,
		FullName:   p.FullName,
		Phone:      nullableString(p.Phone),
		Instagram:  nullableString(p.Instagram),
		Age:        nullableInt(p.Age),
		SkillLevel: nullableString(string(p.SkillLevel)),
	}
	query, args, err := qb.InsertModel("players", insertModel, "RETURNING id")
	if err != nil {
		return 0, fmt.Errorf("build insert player query: %w", err)
	}

	var id int64
	if err := r.db.GetContext(ctx, &id, query, args...); err != nil {
		if isUniqueViolation(err, "players_player_id_key") {
			return 0, player.ErrDuplicatePlayerID
		}
		return 0, fmt.Errorf("insert player: %w", err)
	}
	return id, nil
}

func (r *PlayerRepository) Update(ctx context.Context, p player.Player) (bool, error) {
	query, args, err := qb.Update("players").
		Set("player_id", p.PlayerID).
		Set("full_name", p.FullName).
		Set("phone", nullableString(p.Phone)).
		Set("instagram", nullableString(p.Instagram)).
		Set("age", nullableInt(p.Age)).
		Set("skill_level", nullableString(string(p.SkillLevel))).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", p.ID)).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build update player query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err, "players_player_id_key") {
			return false, player.ErrDuplicatePlayerID
		}
		return false, fmt.Errorf("update player: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("update player rows affected: %w", err)
	}
	return affected > 0, nil
}

func (r *PlayerRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM players WHERE id = $1", id)
	if err != nil {
		return false, fmt.Errorf("delete player: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete player rows affected: %w", err)
	}
	return affected > 0, nil
}

func playersFromRows(rows []playerTableModel) []player.Player {
	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, playerFromRow(row))
	}
	return out
}

func playerFromRow(row playerTableModel) player.Player {
	return player.Player{
		ID:               row.ID,
		PlayerID:         row.PlayerID,
		FullName:         row.FullName,
		Phone:            row.Phone.String,
		Instagram:        row.Instagram.String,
		Age:              int(row.Age.Int64),
		SkillLevel:       player.SkillLevel(row.SkillLevel.String),
		SessionsAttended: row.SessionsAttended,
		MVPAwards:        row.MVPAwards,
		TotalPoints:      row.TotalPoints,
		TotalSaves:       row.TotalSaves,
		FormSubmissions:  row.FormSubmissions,
		CreatedAt:        row.CreatedAt,
		UpdatedAt:        row.UpdatedAt,
	}
}
