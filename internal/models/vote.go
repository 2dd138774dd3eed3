package models

import "encoding/json"

// CastVoteResult is the JSON object returned by the cast_vote procedure.
type CastVoteResult struct {
	Success bool            `json:"success"`
	Error   string          `json:"error,omitempty"`
	Student json.RawMessage `json:"student,omitempty"`
}
