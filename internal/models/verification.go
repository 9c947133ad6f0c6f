package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type VerificationStatus string

const (
	StatusPending     VerificationStatus = "PENDING"
	StatusInProgress  VerificationStatus = "IN_PROGRESS"
	StatusClear       VerificationStatus = "CLEAR"
	StatusDiscrepancy VerificationStatus = "DISCREPANCY"
	StatusFailed      VerificationStatus = "FAILED"
)

// IsTerminal reports whether the status admits no further transitions.
func (s VerificationStatus) IsTerminal() bool {
	switch s {
	case StatusClear, StatusDiscrepancy, StatusFailed:
		return true
	}
	return false
}

// CanTransitionTo validates a status change against the verification
// state machine: PENDING → IN_PROGRESS → {CLEAR | DISCREPANCY}, with
// FAILED reachable from any non-terminal state.
func (s VerificationStatus) CanTransitionTo(next VerificationStatus) bool {
	if s.IsTerminal() {
		return false
	}

	switch next {
	case StatusInProgress:
		return s == StatusPending
	case StatusClear, StatusDiscrepancy, StatusFailed:
		return true
	}
	return false
}

type DocumentType string

const (
	DocumentOfferLetter     DocumentType = "OFFER_LETTER"
	DocumentRelievingLetter DocumentType = "RELIEVING_LETTER"
)

type EmploymentVerification struct {
	ID                   uuid.UUID          `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CandidateID          uuid.UUID          `gorm:"type:uuid;not null;index" json:"candidateId"`
	PreviousCompanyName  string             `gorm:"type:text;not null" json:"previousCompanyName"`
	PreviousCompanyEmail string             `gorm:"type:text;not null" json:"previousCompanyEmail"`
	Designation          string             `gorm:"type:text" json:"designation"`
	TenureFrom           *time.Time         `gorm:"type:timestamp" json:"tenureFrom,omitempty"`
	TenureTo             *time.Time         `gorm:"type:timestamp" json:"tenureTo,omitempty"`
	ReasonForExit        string             `gorm:"type:text" json:"reasonForExit"`
	HRContactName        string             `gorm:"type:text" json:"hrContactName"`
	HRContactPhone       string             `gorm:"type:text" json:"hrContactPhone"`
	VerificationToken    string             `gorm:"type:text;not null;uniqueIndex" json:"-"`
	TokenExpiresAt       time.Time          `gorm:"type:timestamp;not null" json:"tokenExpiresAt"`
	Status               VerificationStatus `gorm:"type:text;not null;default:'PENDING'" json:"status"`
	CompletedAt          *time.Time         `gorm:"type:timestamp" json:"completedAt,omitempty"`
	CreatedAt            time.Time          `gorm:"type:timestamp;default:now()" json:"createdAt"`
	UpdatedAt            time.Time          `gorm:"type:timestamp;default:now()" json:"updatedAt"`

	// Relations
	Response    *VerificationResponse `gorm:"foreignKey:EmploymentVerificationID" json:"response,omitempty"`
	CallingLogs []CallingLog          `gorm:"foreignKey:EmploymentVerificationID" json:"callingLogs,omitempty"`
}

func (EmploymentVerification) TableName() string {
	return "employment_verifications"
}

type VerificationResponse struct {
	ID                       uuid.UUID       `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	EmploymentVerificationID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex" json:"employmentVerificationId"`
	Answers                  json.RawMessage `gorm:"type:jsonb;not null" json:"answers"`
	SubmittedAt              time.Time       `gorm:"type:timestamp;default:now()" json:"submittedAt"`

	// Relations
	Documents []VerificationDocument `gorm:"foreignKey:ResponseID" json:"documents,omitempty"`
}

func (VerificationResponse) TableName() string {
	return "verification_responses"
}

type VerificationDocument struct {
	ID         uuid.UUID    `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ResponseID uuid.UUID    `gorm:"type:uuid;not null;index" json:"responseId"`
	Type       DocumentType `gorm:"type:text;not null" json:"type"`
	FileURL    string       `gorm:"type:text;not null" json:"fileUrl"`
	UploadedAt time.Time    `gorm:"type:timestamp;default:now()" json:"uploadedAt"`
}

func (VerificationDocument) TableName() string {
	return "verification_documents"
}

type CallingLog struct {
	ID                       uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	EmploymentVerificationID uuid.UUID `gorm:"type:uuid;not null;index" json:"employmentVerificationId"`
	CallTime                 time.Time `gorm:"type:timestamp;not null" json:"callTime"`
	Outcome                  string    `gorm:"type:text" json:"outcome"`
	Notes                    string    `gorm:"type:text" json:"notes"`
	CreatedAt                time.Time `gorm:"type:timestamp;default:now()" json:"createdAt"`
}

func (CallingLog) TableName() string {
	return "calling_logs"
}
