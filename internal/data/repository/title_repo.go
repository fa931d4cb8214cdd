package repository

import (
	"context"
	"fmt"
	"strings"

	"media-review/internal/data/entity"
	"media-review/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// TitleFilter holds the optional list filters for titles
type TitleFilter struct {
	Name     string // case-insensitive substring on name
	Category string // case-insensitive substring on category slug
	Genre    string // case-insensitive substring on genre slug
	Year     *int   // exact match on release year
}

type TitleRepository interface {
	Create(ctx context.Context, title *entity.Title) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Title, error)
	FindAll(ctx context.Context, offset, limit int, filter TitleFilter) ([]*entity.Title, error)
	CountAll(ctx context.Context, filter TitleFilter) (int64, error)
	Update(ctx context.Context, title *entity.Title) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type titleRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewTitleRepository(db database.PgxIface, log *zap.Logger) TitleRepository {
	return &titleRepository{
		db:  db,
		log: log.With(zap.String("repository", "title")),
	}
}

// The rating column is an aggregate over reviews computed on every read so it
// always reflects the current review state. AVG over zero rows is NULL and
// stays NULL in the scan target.
const titleSelect = `
	SELECT t.id, t.name, t.year, t.description, t.category_id,
	       (SELECT AVG(r.score) FROM reviews r WHERE r.title_id = t.id) AS rating,
	       t.created_at, t.updated_at
	FROM titles t
`

func (r *titleRepository) Create(ctx context.Context, title *entity.Title) error {
	query := `
		INSERT INTO titles (id, name, year, description, category_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		title.ID,
		title.Name,
		title.Year,
		title.Description,
		title.CategoryID,
		title.CreatedAt,
		title.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create title",
			zap.Error(err),
			zap.String("name", title.Name),
		)
		return fmt.Errorf("create title %s: %w", title.Name, err)
	}

	return nil
}

func (r *titleRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Title, error) {
	query := titleSelect + ` WHERE t.id = $1`

	var title entity.Title
	err := r.db.QueryRow(ctx, query, id).Scan(
		&title.ID,
		&title.Name,
		&title.Year,
		&title.Description,
		&title.CategoryID,
		&title.Rating,
		&title.CreatedAt,
		&title.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find title by ID",
			zap.Error(err),
			zap.String("title_id", id.String()),
		)
		return nil, fmt.Errorf("find title by id %s: %w", id.String(), err)
	}

	return &title, nil
}

func (r *titleRepository) FindAll(ctx context.Context, offset, limit int, filter TitleFilter) ([]*entity.Title, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(titleSelect)

	where, args := buildTitleWhere(filter)
	queryBuilder.WriteString(where)

	argCount := len(args) + 1
	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY t.year DESC, t.name LIMIT $%d OFFSET $%d", argCount, argCount+1))
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		r.log.Error("Failed to find all titles",
			zap.Error(err),
			zap.Int("offset", offset),
			zap.Int("limit", limit),
		)
		return nil, fmt.Errorf("find titles: %w", err)
	}
	defer rows.Close()

	var titles []*entity.Title
	for rows.Next() {
		var title entity.Title
		err := rows.Scan(
			&title.ID,
			&title.Name,
			&title.Year,
			&title.Description,
			&title.CategoryID,
			&title.Rating,
			&title.CreatedAt,
			&title.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan title row", zap.Error(err))
			return nil, fmt.Errorf("scan title row: %w", err)
		}
		titles = append(titles, &title)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate title rows: %w", err)
	}

	r.log.Debug("Titles found",
		zap.Int("count", len(titles)),
		zap.Int("offset", offset),
		zap.Int("limit", limit),
	)

	return titles, nil
}

func (r *titleRepository) CountAll(ctx context.Context, filter TitleFilter) (int64, error) {
	where, args := buildTitleWhere(filter)
	query := `SELECT COUNT(*) FROM titles t` + where

	var total int64
	err := r.db.QueryRow(ctx, query, args...).Scan(&total)
	if err != nil {
		r.log.Error("Failed to count titles", zap.Error(err))
		return 0, fmt.Errorf("count titles: %w", err)
	}

	return total, nil
}

func (r *titleRepository) Update(ctx context.Context, title *entity.Title) error {
	query := `
		UPDATE titles
		SET name = $2, year = $3, description = $4, category_id = $5, updated_at = $6
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		title.ID,
		title.Name,
		title.Year,
		title.Description,
		title.CategoryID,
		title.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update title",
			zap.Error(err),
			zap.String("title_id", title.ID.String()),
		)
		return fmt.Errorf("update title %s: %w", title.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("title %s not found", title.ID.String())
	}

	return nil
}

func (r *titleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM titles WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete title",
			zap.Error(err),
			zap.String("title_id", id.String()),
		)
		return fmt.Errorf("delete title %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("title %s not found", id.String())
	}

	r.log.Info("Title deleted", zap.String("title_id", id.String()))
	return nil
}

func buildTitleWhere(filter TitleFilter) (string, []interface{}) {
	var conditions []string
	args := []interface{}{}
	argCount := 1

	if filter.Name != "" {
		conditions = append(conditions, fmt.Sprintf("t.name ILIKE $%d", argCount))
		args = append(args, "%"+filter.Name+"%")
		argCount++
	}

	if filter.Category != "" {
		conditions = append(conditions, fmt.Sprintf(
			"t.category_id IN (SELECT c.id FROM categories c WHERE c.slug ILIKE $%d)", argCount))
		args = append(args, "%"+filter.Category+"%")
		argCount++
	}

	if filter.Genre != "" {
		conditions = append(conditions, fmt.Sprintf(
			"t.id IN (SELECT tg.title_id FROM title_genres tg INNER JOIN genres g ON g.id = tg.genre_id WHERE g.slug ILIKE $%d)", argCount))
		args = append(args, "%"+filter.Genre+"%")
		argCount++
	}

	if filter.Year != nil {
		conditions = append(conditions, fmt.Sprintf("t.year = $%d", argCount))
		args = append(args, *filter.Year)
	}

	if len(conditions) == 0 {
		return "", args
	}

	return " WHERE " + strings.Join(conditions, " AND "), args
}
