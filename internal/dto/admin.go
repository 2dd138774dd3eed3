package dto

// IDRequest identifies a single row to act on.
type IDRequest struct {
	ID string `json:"id" validate:"required"`
}

// CreateCandidateRequest describes a new ballot option.
type CreateCandidateRequest struct {
	Name     string `json:"name" validate:"required"`
	Party    string `json:"party"`
	PhotoURL string `json:"photo_url"`
}

// UpdateCandidatePhotoRequest replaces a candidate photo. A missing photo_url clears it.
type UpdateCandidatePhotoRequest struct {
	ID       string  `json:"id" validate:"required"`
	PhotoURL *string `json:"photo_url"`
}

// ElectionActionRequest opens or closes the election.
type ElectionActionRequest struct {
	Action string `json:"action" validate:"required,oneof=open close"`
}

// ClearDataRequest must carry the confirmation phrase.
type ClearDataRequest struct {
	Confirm string `json:"confirm"`
}

// BrandingRequest updates school branding.
type BrandingRequest struct {
	SchoolLogoURL string `json:"school_logo_url"`
	SchoolName    string `json:"school_name"`
}

// AdminCodeBody is the optional body fallback for the admin code.
type AdminCodeBody struct {
	AdminCode string `json:"admin_code"`
}
