package repository

import (
	"media-review/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User         UserRepository
	Confirmation ConfirmationRepository
	Category     CategoryRepository
	Genre        GenreRepository
	Title        TitleRepository
	TitleGenre   TitleGenreRepository
	Review       ReviewRepository
	Comment      CommentRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:         NewUserRepository(db, log),
		Confirmation: NewConfirmationRepository(db, log),
		Category:     NewCategoryRepository(db, log),
		Genre:        NewGenreRepository(db, log),
		Title:        NewTitleRepository(db, log),
		TitleGenre:   NewTitleGenreRepository(db, log),
		Review:       NewReviewRepository(db, log),
		Comment:      NewCommentRepository(db, log),
	}
}
