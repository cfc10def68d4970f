package dto

// UpdateApplicationStatusRequest payload for accepting or denying an
// application. VersionNumber must match the version the recruiter last saw;
// the upstream service rejects stale updates.
type UpdateApplicationStatusRequest struct {
	ApplicationID int64  `json:"applicationId"`
	Status        string `json:"status"`
	VersionNumber int64  `json:"versionNumber"`
}
