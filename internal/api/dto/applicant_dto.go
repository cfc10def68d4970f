package dto

// CreateCompetenceProfileRequest payload for claiming competence experience.
type CreateCompetenceProfileRequest struct {
	CompetenceID      int64   `json:"competenceId"`
	YearsOfExperience float64 `json:"yearsOfExperience"`
}

// CreateAvailabilityRequest payload for a new availability period.
// Dates use the upstream's YYYY-MM-DD form and are passed through as-is;
// the recruitment API owns date validation.
type CreateAvailabilityRequest struct {
	FromDate string `json:"fromDate"`
	ToDate   string `json:"toDate"`
}

// SubmitApplicationRequest payload for submitting the assembled application.
// The person id is never taken from the caller; it always comes from the
// session.
type SubmitApplicationRequest struct {
	AvailabilityIDs      []int64 `json:"availabilityIds"`
	CompetenceProfileIDs []int64 `json:"competenceProfileIds"`
}
