package models

import (
	"time"

	"github.com/google/uuid"
)

type Candidate struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name               string     `gorm:"type:text;not null" json:"name"`
	Email              string     `gorm:"type:text;not null;uniqueIndex" json:"email"`
	Phone              string     `gorm:"type:text" json:"phone"`
	City               string     `gorm:"type:text" json:"city"`
	JoiningDesignation *string    `gorm:"type:text" json:"joiningDesignation,omitempty"`
	ResumeURL          *string    `gorm:"type:text" json:"resumeUrl,omitempty"`
	ResumeUploadedAt   *time.Time `gorm:"type:timestamp" json:"resumeUploadedAt,omitempty"`
	CreatedAt          time.Time  `gorm:"type:timestamp;default:now()" json:"createdAt"`
	UpdatedAt          time.Time  `gorm:"type:timestamp;default:now()" json:"updatedAt"`

	// Relations
	Employments []EmploymentVerification `gorm:"foreignKey:CandidateID" json:"-"`
	Notes       []CandidateNote          `gorm:"foreignKey:CandidateID" json:"-"`
}

func (Candidate) TableName() string {
	return "candidates"
}

// CandidateNote is a free-text annotation left by HR against a candidate.
type CandidateNote struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CandidateID uuid.UUID `gorm:"type:uuid;not null;index" json:"candidateId"`
	Note        string    `gorm:"type:text;not null" json:"note"`
	CreatedAt   time.Time `gorm:"type:timestamp;default:now()" json:"createdAt"`
}

func (CandidateNote) TableName() string {
	return "candidate_notes"
}
