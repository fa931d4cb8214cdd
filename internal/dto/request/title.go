package request

type CreateTitleRequest struct {
	Name        string   `json:"name" validate:"required,max=256"`
	Year        int      `json:"year" validate:"min=0"`
	Description *string  `json:"description,omitempty"`
	Category    *string  `json:"category,omitempty" validate:"omitempty,slug"`
	Genres      []string `json:"genre" validate:"required,min=1,dive,slug"`
}

type UpdateTitleRequest struct {
	Name        *string  `json:"name,omitempty" validate:"omitempty,max=256"`
	Year        *int     `json:"year,omitempty" validate:"omitempty,min=0"`
	Description *string  `json:"description,omitempty"`
	Category    *string  `json:"category,omitempty" validate:"omitempty,slug"`
	Genres      []string `json:"genre,omitempty" validate:"omitempty,min=1,dive,slug"`
}

// TitleListFilter mirrors the supported query parameters on GET /titles
type TitleListFilter struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Genre    string `json:"genre"`
	Year     *int   `json:"year,omitempty"`
}
