package seed

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"media-review/internal/data/entity"
	"media-review/internal/data/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Loader imports catalogue fixtures from a directory of CSV files.
// Files are loaded in dependency order; rows reference each other by the
// numeric ids from the CSVs, which are remapped to fresh UUIDs on insert.
type Loader struct {
	repo *repository.Repository
	log  *zap.Logger

	categories map[string]uuid.UUID
	genres     map[string]uuid.UUID
	users      map[string]uuid.UUID
	titles     map[string]uuid.UUID
	reviews    map[string]uuid.UUID
}

func NewLoader(repo *repository.Repository, log *zap.Logger) *Loader {
	return &Loader{
		repo: repo,
		log:  log.With(zap.String("component", "seed")),

		categories: make(map[string]uuid.UUID),
		genres:     make(map[string]uuid.UUID),
		users:      make(map[string]uuid.UUID),
		titles:     make(map[string]uuid.UUID),
		reviews:    make(map[string]uuid.UUID),
	}
}

// Load reads all known CSV files from dir. Missing files are skipped so a
// partial fixture set (categories only, say) still loads.
func (l *Loader) Load(ctx context.Context, dir string) error {
	steps := []struct {
		file string
		fn   func(ctx context.Context, record map[string]string) error
	}{
		{"category.csv", l.loadCategory},
		{"genre.csv", l.loadGenre},
		{"users.csv", l.loadUser},
		{"titles.csv", l.loadTitle},
		{"genre_title.csv", l.loadTitleGenre},
		{"review.csv", l.loadReview},
		{"comments.csv", l.loadComment},
	}

	for _, step := range steps {
		path := filepath.Join(dir, step.file)
		count, err := l.loadFile(ctx, path, step.fn)
		if os.IsNotExist(err) {
			l.log.Warn("Seed file missing, skipping", zap.String("file", step.file))
			continue
		}
		if err != nil {
			return fmt.Errorf("load %s: %w", step.file, err)
		}
		l.log.Info("Seed file loaded",
			zap.String("file", step.file),
			zap.Int("rows", count))
	}

	return nil
}

// loadFile streams one CSV, handing each row to fn as a header->value map
func (l *Loader) loadFile(ctx context.Context, path string, fn func(ctx context.Context, record map[string]string) error) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	header, err := reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read header: %w", err)
	}

	count := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return count, fmt.Errorf("read row %d: %w", count+1, err)
		}

		record := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(row) {
				record[col] = row[i]
			}
		}

		if err := fn(ctx, record); err != nil {
			return count, fmt.Errorf("row %d: %w", count+1, err)
		}
		count++
	}

	return count, nil
}

func (l *Loader) loadCategory(ctx context.Context, record map[string]string) error {
	category := &entity.Category{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
		Name:       record["name"],
		Slug:       record["slug"],
	}

	if err := l.repo.Category.Create(ctx, category); err != nil {
		return err
	}

	l.categories[record["id"]] = category.ID
	return nil
}

func (l *Loader) loadGenre(ctx context.Context, record map[string]string) error {
	genre := &entity.Genre{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
		Name:       record["name"],
		Slug:       record["slug"],
	}

	if err := l.repo.Genre.Create(ctx, genre); err != nil {
		return err
	}

	l.genres[record["id"]] = genre.ID
	return nil
}

func (l *Loader) loadUser(ctx context.Context, record map[string]string) error {
	role := entity.UserRole(record["role"])
	switch role {
	case entity.RoleUser, entity.RoleModerator, entity.RoleAdmin:
	default:
		role = entity.RoleUser
	}

	now := time.Now()
	user := &entity.User{
		Base:      entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Username:  record["username"],
		Email:     record["email"],
		FirstName: optional(record["first_name"]),
		LastName:  optional(record["last_name"]),
		Bio:       optional(record["bio"]),
		Role:      role,
		IsActive:  true,
	}

	if err := l.repo.User.Create(ctx, user); err != nil {
		return err
	}

	l.users[record["id"]] = user.ID
	return nil
}

func (l *Loader) loadTitle(ctx context.Context, record map[string]string) error {
	year, err := strconv.Atoi(record["year"])
	if err != nil {
		return fmt.Errorf("invalid year %q: %w", record["year"], err)
	}

	var categoryID *uuid.UUID
	if ref := record["category"]; ref != "" {
		id, ok := l.categories[ref]
		if !ok {
			return fmt.Errorf("unknown category ref %q", ref)
		}
		categoryID = &id
	}

	now := time.Now()
	title := &entity.Title{
		Base:        entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Name:        record["name"],
		Year:        year,
		Description: optional(record["description"]),
		CategoryID:  categoryID,
	}

	if err := l.repo.Title.Create(ctx, title); err != nil {
		return err
	}

	l.titles[record["id"]] = title.ID
	return nil
}

func (l *Loader) loadTitleGenre(ctx context.Context, record map[string]string) error {
	titleID, ok := l.titles[record["title_id"]]
	if !ok {
		return fmt.Errorf("unknown title ref %q", record["title_id"])
	}
	genreID, ok := l.genres[record["genre_id"]]
	if !ok {
		return fmt.Errorf("unknown genre ref %q", record["genre_id"])
	}

	return l.repo.TitleGenre.Create(ctx, &entity.TitleGenre{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
		TitleID:    titleID,
		GenreID:    genreID,
	})
}

func (l *Loader) loadReview(ctx context.Context, record map[string]string) error {
	titleID, ok := l.titles[record["title_id"]]
	if !ok {
		return fmt.Errorf("unknown title ref %q", record["title_id"])
	}
	authorID, ok := l.users[record["author"]]
	if !ok {
		return fmt.Errorf("unknown author ref %q", record["author"])
	}

	score, err := strconv.Atoi(record["score"])
	if err != nil || score < 1 || score > 10 {
		return fmt.Errorf("invalid score %q", record["score"])
	}

	review := &entity.Review{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: parseDate(record["pub_date"])},
		TitleID:    titleID,
		AuthorID:   authorID,
		Text:       record["text"],
		Score:      score,
	}

	if err := l.repo.Review.Create(ctx, review); err != nil {
		return err
	}

	l.reviews[record["id"]] = review.ID
	return nil
}

func (l *Loader) loadComment(ctx context.Context, record map[string]string) error {
	reviewID, ok := l.reviews[record["review_id"]]
	if !ok {
		return fmt.Errorf("unknown review ref %q", record["review_id"])
	}
	authorID, ok := l.users[record["author"]]
	if !ok {
		return fmt.Errorf("unknown author ref %q", record["author"])
	}

	return l.repo.Comment.Create(ctx, &entity.Comment{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: parseDate(record["pub_date"])},
		ReviewID:   reviewID,
		AuthorID:   authorID,
		Text:       record["text"],
	})
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func parseDate(value string) time.Time {
	if value == "" {
		return time.Now()
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Now()
}
