package services

import (
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"

	"alfredoptarigan/hr-verification/internal/models"
	"alfredoptarigan/hr-verification/internal/repositories"
)

const (
	verificationTokenTTL = 7 * 24 * time.Hour
	maxDocumentSize      = 5 * 1024 * 1024
)

var allowedDocumentMIMETypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
}

var (
	ErrInvalidToken            = errors.New("invalid or expired link")
	ErrAlreadySubmitted        = errors.New("verification already submitted")
	ErrInvalidAnswers          = errors.New("answers must be a valid JSON object")
	ErrDocumentTooLarge        = errors.New("document exceeds the 5MB limit")
	ErrUnsupportedDocumentType = errors.New("only PDF or Word documents are allowed")
	ErrInvalidTransition       = errors.New("invalid status transition")
)

// SubmitAttachment pairs an uploaded file with the document kind the
// employer submitted it as.
type SubmitAttachment struct {
	Type models.DocumentType
	File *multipart.FileHeader
}

type VerificationService interface {
	Create(req models.CreateVerificationRequest) (*models.EmploymentVerification, error)
	Form(token string) (*models.VerificationForm, error)
	Submit(token string, answers string, attachments []SubmitAttachment) error
	AddCallingLog(verificationID uuid.UUID, req models.CallingLogRequest) (*models.CallingLog, error)
	MarkFailed(verificationID uuid.UUID) (*models.EmploymentVerification, error)
}

type verificationService struct {
	verificationRepo repositories.VerificationRepository
	candidateRepo    repositories.CandidateRepository
	storage          StorageService
	mailer           Mailer
	now              func() time.Time
}

func NewVerificationService(
	verificationRepo repositories.VerificationRepository,
	candidateRepo repositories.CandidateRepository,
	storage StorageService,
	mailer Mailer,
) VerificationService {
	return &verificationService{
		verificationRepo: verificationRepo,
		candidateRepo:    candidateRepo,
		storage:          storage,
		mailer:           mailer,
		now:              time.Now,
	}
}

// Create persists a PENDING verification with a fresh single-use token and
// mails the verification link to the previous employer. A mail failure is
// logged but does not roll back the created record.
func (s *verificationService) Create(req models.CreateVerificationRequest) (*models.EmploymentVerification, error) {
	if _, err := s.candidateRepo.FindByID(req.CandidateID); err != nil {
		return nil, err
	}

	now := s.now()
	verification := &models.EmploymentVerification{
		ID:                   uuid.New(),
		CandidateID:          req.CandidateID,
		PreviousCompanyName:  req.PreviousCompanyName,
		PreviousCompanyEmail: req.PreviousCompanyEmail,
		Designation:          req.Designation,
		TenureFrom:           req.TenureFrom,
		TenureTo:             req.TenureTo,
		ReasonForExit:        req.ReasonForExit,
		HRContactName:        req.HRContactName,
		HRContactPhone:       req.HRContactPhone,
		VerificationToken:    uuid.NewString(),
		TokenExpiresAt:       now.Add(verificationTokenTTL),
		Status:               models.StatusPending,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	if err := s.verificationRepo.Create(verification); err != nil {
		return nil, err
	}

	if err := s.mailer.SendVerificationRequest(verification.PreviousCompanyEmail, verification.VerificationToken); err != nil {
		log.Printf("failed to send verification email for %s: %v", verification.ID, err)
	}

	return verification, nil
}

// Form resolves a token to the public form payload: the non-sensitive
// employment fields plus the fixed question schema.
func (s *verificationService) Form(token string) (*models.VerificationForm, error) {
	verification, err := s.lookupByToken(token)
	if err != nil {
		return nil, err
	}

	return &models.VerificationForm{
		PreviousCompanyName: verification.PreviousCompanyName,
		Designation:         verification.Designation,
		TenureFrom:          verification.TenureFrom,
		TenureTo:            verification.TenureTo,
		Questions: []models.FormQuestion{
			{Key: "designation_match", Label: "Is designation correct?", Type: "boolean"},
			{Key: "tenure_match", Label: "Is tenure correct?", Type: "boolean"},
			{Key: "remarks", Label: "Remarks", Type: "text"},
		},
	}, nil
}

// Submit records the employer's answers and documents, then finalizes the
// verification. Attachments are uploaded to object storage first; the
// response row, its document rows and the terminal status flip happen in
// one transaction. A verification that already holds a response is
// rejected rather than overwritten.
func (s *verificationService) Submit(token string, answers string, attachments []SubmitAttachment) error {
	verification, err := s.lookupByToken(token)
	if err != nil {
		return err
	}

	if verification.Response != nil || verification.Status.IsTerminal() {
		return ErrAlreadySubmitted
	}

	if !gjson.Valid(answers) || !gjson.Parse(answers).IsObject() {
		return ErrInvalidAnswers
	}

	for _, attachment := range attachments {
		if err := validateDocument(attachment.File); err != nil {
			return err
		}
	}

	now := s.now()
	documents := make([]models.VerificationDocument, 0, len(attachments))
	for _, attachment := range attachments {
		url, err := s.storage.Upload(attachment.File, folderForDocument(attachment.Type))
		if err != nil {
			return fmt.Errorf("failed to upload %s: %w", attachment.Type, err)
		}

		documents = append(documents, models.VerificationDocument{
			ID:         uuid.New(),
			Type:       attachment.Type,
			FileURL:    url,
			UploadedAt: now,
		})
	}

	response := &models.VerificationResponse{
		ID:                       uuid.New(),
		EmploymentVerificationID: verification.ID,
		Answers:                  []byte(answers),
		SubmittedAt:              now,
	}

	status := models.StatusClear
	if hasDiscrepancy(answers) {
		status = models.StatusDiscrepancy
	}
	if !verification.Status.CanTransitionTo(status) {
		return ErrInvalidTransition
	}

	return s.verificationRepo.SubmitResponse(response, documents, status, now)
}

func (s *verificationService) AddCallingLog(verificationID uuid.UUID, req models.CallingLogRequest) (*models.CallingLog, error) {
	if _, err := s.verificationRepo.FindByID(verificationID); err != nil {
		return nil, err
	}

	callLog := &models.CallingLog{
		ID:                       uuid.New(),
		EmploymentVerificationID: verificationID,
		CallTime:                 req.CallTime,
		Outcome:                  req.Outcome,
		Notes:                    req.Notes,
		CreatedAt:                s.now(),
	}
	if err := s.verificationRepo.CreateCallingLog(callLog); err != nil {
		return nil, err
	}
	return callLog, nil
}

// MarkFailed is the explicit administrative transition into FAILED. The
// state machine rejects it once the verification is already terminal.
func (s *verificationService) MarkFailed(verificationID uuid.UUID) (*models.EmploymentVerification, error) {
	verification, err := s.verificationRepo.FindByID(verificationID)
	if err != nil {
		return nil, err
	}

	if !verification.Status.CanTransitionTo(models.StatusFailed) {
		return nil, ErrInvalidTransition
	}

	if err := s.verificationRepo.UpdateStatus(verificationID, models.StatusFailed); err != nil {
		return nil, err
	}

	verification.Status = models.StatusFailed
	return verification, nil
}

func (s *verificationService) lookupByToken(token string) (*models.EmploymentVerification, error) {
	verification, err := s.verificationRepo.FindByToken(token)
	if err != nil {
		if errors.Is(err, repositories.ErrVerificationNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}

	if !s.now().Before(verification.TokenExpiresAt) {
		return nil, ErrInvalidToken
	}

	return verification, nil
}

// hasDiscrepancy checks whether the employer explicitly contradicted the
// candidate's claims. Only a literal false counts; a missing answer does
// not.
func hasDiscrepancy(answers string) bool {
	designation := gjson.Get(answers, "designation_match")
	tenure := gjson.Get(answers, "tenure_match")
	return designation.Type == gjson.False || tenure.Type == gjson.False
}

func validateDocument(file *multipart.FileHeader) error {
	if file.Size > maxDocumentSize {
		return ErrDocumentTooLarge
	}
	if !allowedDocumentMIMETypes[file.Header.Get("Content-Type")] {
		return ErrUnsupportedDocumentType
	}
	return nil
}

func folderForDocument(docType models.DocumentType) string {
	if docType == models.DocumentRelievingLetter {
		return "employment-verifications/relieving-letters"
	}
	return "employment-verifications/offer-letters"
}
