package domain

// ApplicationStatus represents review states for a submitted application.
type ApplicationStatus string

const (
	StatusUnchecked ApplicationStatus = "unchecked"
	StatusAccepted  ApplicationStatus = "accepted"
	StatusDenied    ApplicationStatus = "denied"
)

// ParseApplicationStatus validates a status string from a caller.
func ParseApplicationStatus(s string) (ApplicationStatus, bool) {
	st := ApplicationStatus(s)
	switch st {
	case StatusUnchecked, StatusAccepted, StatusDenied:
		return st, true
	}
	return "", false
}

// Person is an applicant or recruiter account as the recruitment API reports it.
type Person struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Surname string `json:"surname"`
	Pnr     string `json:"pnr"`
	Email   string `json:"email"`
}

// Competence is a catalog entry an applicant can claim experience in.
type Competence struct {
	CompetenceID int64  `json:"competenceId"`
	Name         string `json:"name"`
}

// Language is a translation language offered by the recruitment API.
type Language struct {
	LanguageID   int64  `json:"languageId"`
	LanguageName string `json:"languageName"`
}

// CompetenceTranslation is a competence name localized to one language.
type CompetenceTranslation struct {
	CompetenceTranslationID int64      `json:"competenceTranslationId"`
	Competence              Competence `json:"competence"`
	Language                Language   `json:"language"`
	Translation             string     `json:"translation"`
}

// CompetenceProfile ties a person to a competence with years of experience.
type CompetenceProfile struct {
	CompetenceProfileID int64      `json:"competenceProfileId"`
	Person              Person     `json:"person"`
	Competence          Competence `json:"competence"`
	YearsOfExperience   float64    `json:"yearsOfExperience"`
}

// Availability is a period a person is available to work.
type Availability struct {
	AvailabilityID int64  `json:"availabilityId"`
	Person         Person `json:"person"`
	FromDate       string `json:"fromDate"`
	ToDate         string `json:"toDate"`
}

// Application bundles an applicant's submission for review.
type Application struct {
	ApplicationID       int64               `json:"applicationId"`
	Applicant           Person              `json:"applicant"`
	AvailabilityPeriods []Availability      `json:"availabilityPeriodsForApplication"`
	CompetenceProfiles  []CompetenceProfile `json:"competenceProfilesForApplication"`
	Status              ApplicationStatus   `json:"applicationStatus"`
	VersionNumber       int64               `json:"versionNumber"`
	ApplicationDate     string              `json:"applicationDate"`
}

// ApplicationSubmission is the payload sent upstream when an applicant applies.
type ApplicationSubmission struct {
	PersonID             int64   `json:"personId"`
	AvailabilityIDs      []int64 `json:"availabilityIds"`
	CompetenceProfileIDs []int64 `json:"competenceProfileIds"`
}

// Registration is the payload for creating a new applicant account upstream.
type Registration struct {
	Name     string `json:"name"`
	Surname  string `json:"surname"`
	Pnr      string `json:"pnr"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username"`
}
