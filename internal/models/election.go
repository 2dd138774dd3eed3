package models

import "database/sql"

// ElectionStatus is either open or closed.
type ElectionStatus string

const (
	ElectionOpen   ElectionStatus = "open"
	ElectionClosed ElectionStatus = "closed"
)

// ConfigRowID is the primary key of the singleton config row.
const ConfigRowID = 1

// VotePasswordKey is the system_settings key holding the optional terminal password.
const VotePasswordKey = "vote_password"

// ElectionConfig mirrors the singleton config row.
type ElectionConfig struct {
	ElectionStatus ElectionStatus `db:"election_status"`
	AdminCode      string         `db:"admin_code"`
	SchoolName     sql.NullString `db:"school_name"`
	SchoolLogoURL  sql.NullString `db:"school_logo_url"`
}

// IsOpen reports whether voting is presented as active.
func (c ElectionConfig) IsOpen() bool {
	return c.ElectionStatus == ElectionOpen
}

// Branding holds the public school branding fields.
type Branding struct {
	SchoolLogoURL *string `db:"school_logo_url" json:"school_logo_url"`
	SchoolName    *string `db:"school_name" json:"school_name"`
}

// SystemSetting is a keyed row of system_settings.
type SystemSetting struct {
	Key   string         `db:"key"`
	Value sql.NullString `db:"value"`
}
