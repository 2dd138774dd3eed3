package dto

import "encoding/json"

// VerifyCodeRequest carries the code typed at the voting terminal.
type VerifyCodeRequest struct {
	AccessCode string `json:"access_code"`
}

// VoterProfile is what a terminal may show about the voter. The access code is never echoed.
type VoterProfile struct {
	Name   string `json:"name"`
	Grade  int    `json:"grade"`
	Course int    `json:"course"`
}

// VerifyCodeResponse is returned for a usable code.
type VerifyCodeResponse struct {
	Valid   bool         `json:"valid"`
	Student VoterProfile `json:"student"`
}

// CastVoteRequest carries a ballot.
type CastVoteRequest struct {
	AccessCode  string `json:"access_code" validate:"required"`
	CandidateID string `json:"candidate_id" validate:"required"`
}

// CastVoteResponse is returned once the ballot was recorded.
type CastVoteResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Student json.RawMessage `json:"student,omitempty"`
}

// StatusResponse reports whether voting is open plus branding.
type StatusResponse struct {
	Open       bool    `json:"open"`
	Status     string  `json:"status"`
	SchoolLogo *string `json:"school_logo"`
	SchoolName *string `json:"school_name"`
}
