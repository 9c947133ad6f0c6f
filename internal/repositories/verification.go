package repositories

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alfredoptarigan/hr-verification/internal/models"
)

var ErrVerificationNotFound = errors.New("verification not found")

// CompletionPair carries the two timestamps needed for TAT math on a
// completed verification.
type CompletionPair struct {
	CreatedAt   time.Time
	CompletedAt time.Time
}

type VerificationRepository interface {
	Create(verification *models.EmploymentVerification) error
	FindByID(id uuid.UUID) (*models.EmploymentVerification, error)
	FindByToken(token string) (*models.EmploymentVerification, error)
	ListByCandidate(candidateID uuid.UUID) ([]models.EmploymentVerification, error)
	SubmitResponse(response *models.VerificationResponse, documents []models.VerificationDocument, status models.VerificationStatus, completedAt time.Time) error
	UpdateStatus(id uuid.UUID, status models.VerificationStatus) error
	CreateCallingLog(log *models.CallingLog) error
	CountAll() (int64, error)
	CountByStatus(statuses ...models.VerificationStatus) (int64, error)
	CompletionPairs() ([]CompletionPair, error)
}

type verificationRepository struct {
	db *gorm.DB
}

func NewVerificationRepository(db *gorm.DB) VerificationRepository {
	return &verificationRepository{db: db}
}

func (r *verificationRepository) Create(verification *models.EmploymentVerification) error {
	if err := r.db.Create(verification).Error; err != nil {
		return fmt.Errorf("failed to create verification: %w", err)
	}
	return nil
}

func (r *verificationRepository) FindByID(id uuid.UUID) (*models.EmploymentVerification, error) {
	var verification models.EmploymentVerification
	if err := r.db.Where("id = ?", id).First(&verification).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVerificationNotFound
		}
		return nil, fmt.Errorf("failed to find verification: %w", err)
	}
	return &verification, nil
}

func (r *verificationRepository) FindByToken(token string) (*models.EmploymentVerification, error) {
	var verification models.EmploymentVerification
	err := r.db.
		Preload("Response").
		Where("verification_token = ?", token).
		First(&verification).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVerificationNotFound
		}
		return nil, fmt.Errorf("failed to find verification by token: %w", err)
	}
	return &verification, nil
}

// ListByCandidate loads every employment with its response, documents
// and calling logs, ordered by creation time for a stable timeline.
func (r *verificationRepository) ListByCandidate(candidateID uuid.UUID) ([]models.EmploymentVerification, error) {
	var verifications []models.EmploymentVerification
	err := r.db.
		Preload("Response").
		Preload("Response.Documents").
		Preload("CallingLogs").
		Where("candidate_id = ?", candidateID).
		Order("created_at ASC").
		Find(&verifications).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list verifications: %w", err)
	}
	return verifications, nil
}

// SubmitResponse writes the response row, its documents and the terminal
// status flip in a single transaction, so a partial failure leaves
// nothing behind.
func (r *verificationRepository) SubmitResponse(
	response *models.VerificationResponse,
	documents []models.VerificationDocument,
	status models.VerificationStatus,
	completedAt time.Time,
) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(response).Error; err != nil {
			return fmt.Errorf("failed to create response: %w", err)
		}

		for i := range documents {
			documents[i].ResponseID = response.ID
			if err := tx.Create(&documents[i]).Error; err != nil {
				return fmt.Errorf("failed to create document: %w", err)
			}
		}

		result := tx.Model(&models.EmploymentVerification{}).
			Where("id = ?", response.EmploymentVerificationID).
			Updates(map[string]interface{}{
				"status":       status,
				"completed_at": completedAt,
				"updated_at":   time.Now(),
			})
		if result.Error != nil {
			return fmt.Errorf("failed to update status: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrVerificationNotFound
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to submit response: %w", err)
	}
	return nil
}

func (r *verificationRepository) UpdateStatus(id uuid.UUID, status models.VerificationStatus) error {
	result := r.db.Model(&models.EmploymentVerification{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrVerificationNotFound
	}
	return nil
}

func (r *verificationRepository) CreateCallingLog(log *models.CallingLog) error {
	if err := r.db.Create(log).Error; err != nil {
		return fmt.Errorf("failed to create calling log: %w", err)
	}
	return nil
}

func (r *verificationRepository) CountAll() (int64, error) {
	var count int64
	if err := r.db.Model(&models.EmploymentVerification{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count verifications: %w", err)
	}
	return count, nil
}

func (r *verificationRepository) CountByStatus(statuses ...models.VerificationStatus) (int64, error) {
	var count int64
	err := r.db.Model(&models.EmploymentVerification{}).
		Where("status IN ?", statuses).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count verifications by status: %w", err)
	}
	return count, nil
}

func (r *verificationRepository) CompletionPairs() ([]CompletionPair, error) {
	var pairs []CompletionPair
	err := r.db.Model(&models.EmploymentVerification{}).
		Select("created_at", "completed_at").
		Where("completed_at IS NOT NULL").
		Find(&pairs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load completed verifications: %w", err)
	}
	return pairs, nil
}
