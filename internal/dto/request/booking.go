package request

type CreateBookingRequest struct {
	SeatIDs []string `json:"seat_ids" validate:"required,min=1,dive,uuid4"`
}

// PurchaseHistoryRequest carries the history filter and pagination.
// Purchase mirrors the query param values: "", cancel, upcoming, past.
type PurchaseHistoryRequest struct {
	Purchase string `json:"purchase" validate:"omitempty,oneof=cancel upcoming past"`
	PaginatedRequest
}
