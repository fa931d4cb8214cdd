package entity

import (
	"github.com/google/uuid"
)

type Title struct {
	Base
	Name        string     `db:"name"`
	Year        int        `db:"year"`
	Description *string    `db:"description"`
	CategoryID  *uuid.UUID `db:"category_id"`

	// Rating is the average review score computed per read, nil when no
	// reviews exist. It is never written back to the titles table.
	Rating *float64 `db:"rating"`
}
