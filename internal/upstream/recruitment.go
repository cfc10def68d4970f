package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/spec-kit/recruitment-portal/internal/domain"
)

// Typed wrappers over the recruitment API endpoints the portal uses. The
// upstream service takes most parameters as query strings, including on
// POSTs, so these mirror that shape.

// CompetenceProfiles lists the competence profiles registered for a person.
func (cl *Caller) CompetenceProfiles(ctx context.Context, personID int64) ([]domain.CompetenceProfile, error) {
	query := url.Values{}
	query.Set("personId", strconv.FormatInt(personID, 10))

	var profiles []domain.CompetenceProfile
	err := cl.callJSON(ctx, http.MethodGet, "/application/getAllCompetenceProfiles", query, nil, &profiles)
	return profiles, err
}

// CreateCompetenceProfile registers years of experience in a competence.
func (cl *Caller) CreateCompetenceProfile(ctx context.Context, personID, competenceID int64, yearsOfExperience float64) (domain.CompetenceProfile, error) {
	query := url.Values{}
	query.Set("personId", strconv.FormatInt(personID, 10))
	query.Set("competenceId", strconv.FormatInt(competenceID, 10))
	query.Set("yearsOfExperience", strconv.FormatFloat(yearsOfExperience, 'f', -1, 64))

	var profile domain.CompetenceProfile
	err := cl.callJSON(ctx, http.MethodPost, "/application/createCompetenceProfile", query, nil, &profile)
	return profile, err
}

// Availability lists the availability periods registered for a person.
func (cl *Caller) Availability(ctx context.Context, personID int64) ([]domain.Availability, error) {
	query := url.Values{}
	query.Set("personId", strconv.FormatInt(personID, 10))

	var periods []domain.Availability
	err := cl.callJSON(ctx, http.MethodGet, "/application/getAllAvailability", query, nil, &periods)
	return periods, err
}

// CreateAvailability registers a new availability period.
func (cl *Caller) CreateAvailability(ctx context.Context, personID int64, fromDate, toDate string) (domain.Availability, error) {
	query := url.Values{}
	query.Set("personId", strconv.FormatInt(personID, 10))
	query.Set("fromDate", fromDate)
	query.Set("toDate", toDate)

	var period domain.Availability
	err := cl.callJSON(ctx, http.MethodPost, "/application/createAvailability", query, nil, &period)
	return period, err
}

// SubmitApplication submits the assembled application for review.
func (cl *Caller) SubmitApplication(ctx context.Context, submission domain.ApplicationSubmission) (domain.Application, error) {
	var application domain.Application
	err := cl.callJSON(ctx, http.MethodPost, "/application/submitApplication", nil, submission, &application)
	return application, err
}

// Applications lists every submitted application.
func (cl *Caller) Applications(ctx context.Context) ([]domain.Application, error) {
	var applications []domain.Application
	err := cl.callJSON(ctx, http.MethodGet, "/review/getApplications", nil, nil, &applications)
	return applications, err
}

// ApplicationsByStatus lists applications filtered on review status.
func (cl *Caller) ApplicationsByStatus(ctx context.Context, status domain.ApplicationStatus) ([]domain.Application, error) {
	var applications []domain.Application
	err := cl.callJSON(ctx, http.MethodGet, "/review/getApplicationsByStatus/"+string(status), nil, nil, &applications)
	return applications, err
}

// UpdateApplicationStatus moves an application to a new review status. The
// version number is the optimistic lock the upstream service checks.
func (cl *Caller) UpdateApplicationStatus(ctx context.Context, applicationID int64, status domain.ApplicationStatus, versionNumber int64) (domain.Application, error) {
	query := url.Values{}
	query.Set("applicationId", strconv.FormatInt(applicationID, 10))
	query.Set("status", string(status))
	query.Set("versionNumber", strconv.FormatInt(versionNumber, 10))

	var application domain.Application
	err := cl.callJSON(ctx, http.MethodPost, "/review/updateApplicationStatus", query, nil, &application)
	return application, err
}

// FindPersons searches people by name.
func (cl *Caller) FindPersons(ctx context.Context, name string) ([]domain.Person, error) {
	query := url.Values{}
	query.Set("name", name)

	var persons []domain.Person
	err := cl.callJSON(ctx, http.MethodGet, "/person/find", query, nil, &persons)
	return persons, err
}

// Competences lists the standard competence catalog.
func (cl *Caller) Competences(ctx context.Context) ([]domain.Competence, error) {
	var competences []domain.Competence
	err := cl.callJSON(ctx, http.MethodGet, "/translation/getStandardCompetences", nil, nil, &competences)
	return competences, err
}

// Competence fetches one catalog entry by id.
func (cl *Caller) Competence(ctx context.Context, id int64) (domain.Competence, error) {
	var competence domain.Competence
	err := cl.callJSON(ctx, http.MethodGet, "/translation/getSpecificCompetence/"+strconv.FormatInt(id, 10), nil, nil, &competence)
	return competence, err
}

// Languages lists the languages competence names can be translated to.
func (cl *Caller) Languages(ctx context.Context) ([]domain.Language, error) {
	var languages []domain.Language
	err := cl.callJSON(ctx, http.MethodGet, "/translation/getLanguages", nil, nil, &languages)
	return languages, err
}

// CompetenceTranslations lists competence names localized to one language.
func (cl *Caller) CompetenceTranslations(ctx context.Context, language string) ([]domain.CompetenceTranslation, error) {
	query := url.Values{}
	query.Set("language", language)

	var translations []domain.CompetenceTranslation
	err := cl.callJSON(ctx, http.MethodGet, "/translation/getCompetenceTranslation", query, nil, &translations)
	return translations, err
}

func (cl *Caller) callJSON(ctx context.Context, method, path string, query url.Values, jsonBody, out any) error {
	body, err := cl.Call(ctx, method, path, query, jsonBody)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}
