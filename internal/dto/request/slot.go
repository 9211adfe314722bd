package request

type ScheduleSlotRequest struct {
	CinemaID  string  `json:"cinema_id" validate:"required,uuid4"`
	MovieID   string  `json:"movie_id" validate:"required,uuid4"`
	StartTime string  `json:"start_time" validate:"required"` // RFC 3339
	Price     float64 `json:"price" validate:"required,gt=0"`
}
