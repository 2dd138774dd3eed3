package models

// Candidate is a ballot option. Votes is maintained by the cast_vote procedure.
type Candidate struct {
	ID       string `db:"id" json:"id"`
	Name     string `db:"name" json:"name"`
	Party    string `db:"party" json:"party"`
	PhotoURL string `db:"photo_url" json:"photo_url"`
	Votes    int    `db:"votes" json:"votes"`
}

// PublicCandidate is the ballot view shown to voters.
type PublicCandidate struct {
	ID       string `db:"id" json:"id"`
	Name     string `db:"name" json:"name"`
	Party    string `db:"party" json:"party"`
	PhotoURL string `db:"photo_url" json:"photo_url"`
}
