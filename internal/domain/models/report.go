package models

// Report is a text record belonging to exactly one project.
// ProjectID is set at creation and never changes afterwards.
type Report struct {
	ID        string `json:"id" db:"id"`
	Text      string `json:"text" db:"text"`
	ProjectID string `json:"projectId,omitempty" db:"project_id"` // omitted in update responses
}
