package models

import (
	"time"

	"github.com/google/uuid"
)

// OverallStatus is the candidate-level verdict derived from the statuses
// of all of the candidate's employment verifications.
type OverallStatus string

const (
	OverallClear      OverallStatus = "CLEAR"
	OverallInProgress OverallStatus = "IN_PROGRESS"
	OverallReview     OverallStatus = "REVIEW"
	OverallHighRisk   OverallStatus = "HIGH_RISK"
)

// QueueBucket is the coarse triage category used by the HR work queue.
type QueueBucket string

const (
	QueueAll       QueueBucket = "all"
	QueuePending   QueueBucket = "pending"
	QueueCompleted QueueBucket = "completed"
	QueueFailed    QueueBucket = "failed"
)

type TimelineEventType string

const (
	EventEmploymentAdded       TimelineEventType = "EMPLOYMENT_ADDED"
	EventVerificationSubmitted TimelineEventType = "VERIFICATION_SUBMITTED"
	EventDocumentUploaded      TimelineEventType = "DOCUMENT_UPLOADED"
	EventCallLogged            TimelineEventType = "CALL_LOGGED"
)

type CreateCandidateRequest struct {
	Name               string  `json:"name"`
	Email              string  `json:"email"`
	Phone              string  `json:"phone"`
	City               string  `json:"city"`
	JoiningDesignation *string `json:"joiningDesignation"`
}

type CreateVerificationRequest struct {
	CandidateID          uuid.UUID  `json:"candidateId"`
	PreviousCompanyName  string     `json:"previousCompanyName"`
	PreviousCompanyEmail string     `json:"previousCompanyEmail"`
	Designation          string     `json:"designation"`
	TenureFrom           *time.Time `json:"tenureFrom"`
	TenureTo             *time.Time `json:"tenureTo"`
	ReasonForExit        string     `json:"reasonForExit"`
	HRContactName        string     `json:"hrContactName"`
	HRContactPhone       string     `json:"hrContactPhone"`
}

type CallingLogRequest struct {
	CallTime time.Time `json:"callTime"`
	Outcome  string    `json:"outcome"`
	Notes    string    `json:"notes"`
}

type NoteRequest struct {
	Note string `json:"note"`
}

// FormQuestion is one entry of the fixed question schema shown on the
// public verification form.
type FormQuestion struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Type  string `json:"type"`
}

type VerificationForm struct {
	PreviousCompanyName string         `json:"previousCompanyName"`
	Designation         string         `json:"designation"`
	TenureFrom          *time.Time     `json:"tenureFrom"`
	TenureTo            *time.Time     `json:"tenureTo"`
	Questions           []FormQuestion `json:"questions"`
}

type CandidateOverview struct {
	CandidateID        uuid.UUID     `json:"candidateId"`
	Name               string        `json:"name"`
	Email              string        `json:"email"`
	Phone              string        `json:"phone"`
	City               string        `json:"city"`
	Position           string        `json:"position"`
	VerificationStatus OverallStatus `json:"verificationStatus"`
}

type EmploymentBreakdownItem struct {
	Company string             `json:"company"`
	Status  VerificationStatus `json:"status"`
	Risk    int                `json:"risk"`
}

type CandidateSummary struct {
	CandidateID         uuid.UUID                 `json:"candidateId"`
	OverallStatus       OverallStatus             `json:"overallStatus"`
	RiskScore           int                       `json:"riskScore"`
	Remarks             []string                  `json:"remarks"`
	EmploymentBreakdown []EmploymentBreakdownItem `json:"employmentBreakdown"`
	HRNotes             []CandidateNote           `json:"hrNotes"`
}

type TimelineEvent struct {
	Timestamp    time.Time         `json:"timestamp"`
	Type         TimelineEventType `json:"type"`
	EmploymentID uuid.UUID         `json:"employmentId"`
	Company      string            `json:"company"`
	DocumentType DocumentType      `json:"documentType,omitempty"`
	FileURL      string            `json:"fileUrl,omitempty"`
	Message      string            `json:"message"`
}

type CandidateTimeline struct {
	CandidateID uuid.UUID       `json:"candidateId"`
	Timeline    []TimelineEvent `json:"timeline"`
}

type QueueItem struct {
	ID                 uuid.UUID   `json:"id"`
	Name               string      `json:"name"`
	Email              string      `json:"email"`
	City               string      `json:"city"`
	JoiningDesignation *string     `json:"joiningDesignation"`
	VerificationStatus QueueBucket `json:"verificationStatus"`
	RiskScore          int         `json:"riskScore"`
	Progress           string      `json:"progress"`
	TATDays            int         `json:"tatDays"`
	LastUpdated        time.Time   `json:"lastUpdated"`
}

type CandidateSearchResult struct {
	ID                 uuid.UUID     `json:"id"`
	Name               string        `json:"name"`
	Email              string        `json:"email"`
	Phone              string        `json:"phone"`
	City               string        `json:"city"`
	JoiningDesignation *string       `json:"joiningDesignation"`
	VerificationStatus OverallStatus `json:"verificationStatus"`
}

type DashboardStats struct {
	TotalVerifications     int64   `json:"totalVerifications"`
	PendingVerifications   int64   `json:"pendingVerifications"`
	CompletedVerifications int64   `json:"completedVerifications"`
	FailedOrDiscrepancy    int64   `json:"failedOrDiscrepancy"`
	AverageTATDays         float64 `json:"averageTatDays"`
	SLAComplianceRate      float64 `json:"slaComplianceRate"`
}
