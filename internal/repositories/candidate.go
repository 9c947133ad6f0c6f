package repositories

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alfredoptarigan/hr-verification/internal/models"
)

var (
	ErrCandidateNotFound = errors.New("candidate not found")
	ErrDuplicateEmail    = errors.New("candidate with this email already exists")
)

// QueueFilter narrows the queue listing before per-candidate derivation.
// City is an exact case-insensitive match, Designation a case-insensitive
// substring, Query a substring over name/email (case-insensitive) and
// phone (case-sensitive). Empty fields are skipped.
type QueueFilter struct {
	City        string
	Designation string
	Query       string
}

type CandidateRepository interface {
	Create(candidate *models.Candidate) error
	FindByID(id uuid.UUID) (*models.Candidate, error)
	FindByIDWithEmployments(id uuid.UUID) (*models.Candidate, error)
	Search(query string, limit int) ([]models.Candidate, error)
	ListForQueue(filter QueueFilter) ([]models.Candidate, error)
	UpdateResume(id uuid.UUID, resumeURL string, uploadedAt time.Time) (*models.Candidate, error)
	CreateNote(note *models.CandidateNote) error
	RecentNotes(candidateID uuid.UUID, limit int) ([]models.CandidateNote, error)
}

type candidateRepository struct {
	db *gorm.DB
}

func NewCandidateRepository(db *gorm.DB) CandidateRepository {
	return &candidateRepository{db: db}
}

func (r *candidateRepository) Create(candidate *models.Candidate) error {
	if err := r.db.Create(candidate).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("failed to create candidate: %w", err)
	}
	return nil
}

func (r *candidateRepository) FindByID(id uuid.UUID) (*models.Candidate, error) {
	var candidate models.Candidate
	if err := r.db.Where("id = ?", id).First(&candidate).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCandidateNotFound
		}
		return nil, fmt.Errorf("failed to find candidate: %w", err)
	}
	return &candidate, nil
}

// FindByIDWithEmployments loads the candidate together with all
// employments, their responses, documents and calling logs.
func (r *candidateRepository) FindByIDWithEmployments(id uuid.UUID) (*models.Candidate, error) {
	var candidate models.Candidate
	err := r.db.
		Preload("Employments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Preload("Employments.Response").
		Preload("Employments.Response.Documents").
		Preload("Employments.CallingLogs").
		Where("id = ?", id).
		First(&candidate).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCandidateNotFound
		}
		return nil, fmt.Errorf("failed to find candidate: %w", err)
	}
	return &candidate, nil
}

func (r *candidateRepository) Search(query string, limit int) ([]models.Candidate, error) {
	var candidates []models.Candidate
	pattern := "%" + query + "%"
	err := r.db.
		Preload("Employments").
		Where("name ILIKE ? OR email ILIKE ? OR phone LIKE ?", pattern, pattern, pattern).
		Limit(limit).
		Find(&candidates).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search candidates: %w", err)
	}
	return candidates, nil
}

func (r *candidateRepository) ListForQueue(filter QueueFilter) ([]models.Candidate, error) {
	query := r.db.Preload("Employments").Order("created_at DESC")

	if filter.City != "" {
		query = query.Where("LOWER(city) = LOWER(?)", filter.City)
	}
	if filter.Designation != "" {
		query = query.Where("joining_designation ILIKE ?", "%"+filter.Designation+"%")
	}
	if filter.Query != "" {
		pattern := "%" + filter.Query + "%"
		query = query.Where("name ILIKE ? OR email ILIKE ? OR phone LIKE ?", pattern, pattern, pattern)
	}

	var candidates []models.Candidate
	if err := query.Find(&candidates).Error; err != nil {
		return nil, fmt.Errorf("failed to list candidates for queue: %w", err)
	}
	return candidates, nil
}

func (r *candidateRepository) UpdateResume(id uuid.UUID, resumeURL string, uploadedAt time.Time) (*models.Candidate, error) {
	result := r.db.Model(&models.Candidate{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"resume_url":         resumeURL,
			"resume_uploaded_at": uploadedAt,
			"updated_at":         time.Now(),
		})

	if result.Error != nil {
		return nil, fmt.Errorf("failed to update resume: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrCandidateNotFound
	}

	return r.FindByID(id)
}

func (r *candidateRepository) CreateNote(note *models.CandidateNote) error {
	if err := r.db.Create(note).Error; err != nil {
		return fmt.Errorf("failed to create note: %w", err)
	}
	return nil
}

func (r *candidateRepository) RecentNotes(candidateID uuid.UUID, limit int) ([]models.CandidateNote, error) {
	var notes []models.CandidateNote
	err := r.db.
		Where("candidate_id = ?", candidateID).
		Order("created_at DESC").
		Limit(limit).
		Find(&notes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	return notes, nil
}
