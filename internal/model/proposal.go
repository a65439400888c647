package model

// Proposal statuses. All four are reachable from PENDING; terminality of
// APPROVED/REJECTED is a feature flag, not a schema rule.
const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
	StatusRevision = "REVISION"
)

// ValidStatus reports whether s is one of the four proposal statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusRevision:
		return true
	}
	return false
}

// Proposal maps to the proposals table. Advisor is free text matched by
// name against ORIENTADOR callers; student_id is immutable after creation.
type Proposal struct {
	ProposalID string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"proposal_id"`
	Title      string  `gorm:"type:varchar(255);not null"                     json:"title"`
	Author     string  `gorm:"type:varchar(255);not null"                     json:"author"`
	Advisor    string  `gorm:"type:varchar(255);not null"                     json:"advisor"`
	Abstract   string  `gorm:"type:text;not null"                             json:"abstract"`
	Keywords   string  `gorm:"type:text;not null"                             json:"keywords"`
	Status     string  `gorm:"type:varchar(20);not null;default:'PENDING'"    json:"status"`
	Feedback   *string `gorm:"type:text"                                      json:"feedback,omitempty"`
	StudentID  string  `gorm:"type:uuid;not null"                             json:"student_id"`
	VersionedModel

	Student *User `gorm:"foreignKey:StudentID;references:UserID" json:"student,omitempty"`
}

// TableName sets the table name.
func (Proposal) TableName() string { return "proposals" }
