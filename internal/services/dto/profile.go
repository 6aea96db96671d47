package dto

// SubmitProfileRequest - анкета мастера при онбординге. Портфолио и фото
// инструментов обязательны: без них заявка не переходит на модерацию.
type SubmitProfileRequest struct {
	FullName      string   `json:"full_name" validate:"required,min=2"`
	Bio           string   `json:"bio" validate:"required,min=10"`
	Skills        []string `json:"skills,omitempty"`
	Location      string   `json:"location,omitempty"`
	Portfolio     []string `json:"portfolio" validate:"required,min=1,dive,required"`
	MachinePhotos []string `json:"machine_photos" validate:"required,min=1,dive,required"`
	HourlyRate    float64  `json:"hourly_rate,omitempty" validate:"omitempty,gt=0"`
}

// SetAvailabilityRequest - переключение доступности мастера для новых заказов.
type SetAvailabilityRequest struct {
	Available bool `json:"available"`
}

// ProfileResponse - полная анкета (видна самому мастеру и админу).
type ProfileResponse struct {
	UserID        string   `json:"user_id"`
	FullName      string   `json:"full_name"`
	Bio           string   `json:"bio"`
	Skills        []string `json:"skills"`
	Location      string   `json:"location"`
	Portfolio     []string `json:"portfolio"`
	MachinePhotos []string `json:"machine_photos"`
	HourlyRate    float64  `json:"hourly_rate"`
	Available     bool     `json:"available"`
	Rating        float64  `json:"rating"`
	ReviewCount   int64    `json:"review_count"`
}

// CreatorCard - публичная карточка активного мастера в каталоге.
type CreatorCard struct {
	ID          string   `json:"id"`
	FullName    string   `json:"full_name"`
	Bio         string   `json:"bio"`
	Skills      []string `json:"skills"`
	Location    string   `json:"location"`
	Portfolio   []string `json:"portfolio"`
	HourlyRate  float64  `json:"hourly_rate"`
	Available   bool     `json:"available"`
	Rating      float64  `json:"rating"`
	ReviewCount int64    `json:"review_count"`
}

// CreatorListResponse - каталог активных мастеров.
type CreatorListResponse struct {
	Creators []*CreatorCard `json:"creators"`
	Total    int64          `json:"total"`
}
