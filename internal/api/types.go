package api

// Record is the item being rated, as served by the ratings service.
type Record struct {
	ID    string `json:"_id"`
	Title string `json:"title"`
}

// recordsResponse is the body of GET /get-last-movie.
type recordsResponse struct {
	Movies []Record `json:"movies"`
}

// NoteSubmission is the body of POST /add-movie-note.
type NoteSubmission struct {
	MovieID string `json:"movieId" validate:"required"`
	Email   string `json:"email" validate:"required,identifier"`
	Note    int    `json:"note" validate:"min=0"`
}

// ErrorBody is the optional JSON error payload of a failed request.
type ErrorBody struct {
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}
