package handlers

import (
	"mime/multipart"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"alfredoptarigan/hr-verification/internal/models"
	"alfredoptarigan/hr-verification/internal/repositories"
	"alfredoptarigan/hr-verification/internal/services"
)

type fakeCandidateRepo struct {
	candidates map[uuid.UUID]*models.Candidate
	notes      []models.CandidateNote
}

func newFakeCandidateRepo() *fakeCandidateRepo {
	return &fakeCandidateRepo{candidates: make(map[uuid.UUID]*models.Candidate)}
}

func (r *fakeCandidateRepo) Create(candidate *models.Candidate) error {
	for _, existing := range r.candidates {
		if existing.Email == candidate.Email {
			return repositories.ErrDuplicateEmail
		}
	}
	clone := *candidate
	r.candidates[candidate.ID] = &clone
	return nil
}

func (r *fakeCandidateRepo) FindByID(id uuid.UUID) (*models.Candidate, error) {
	c, ok := r.candidates[id]
	if !ok {
		return nil, repositories.ErrCandidateNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *fakeCandidateRepo) FindByIDWithEmployments(id uuid.UUID) (*models.Candidate, error) {
	c, err := r.FindByID(id)
	if err != nil {
		return nil, err
	}
	sort.Slice(c.Employments, func(i, j int) bool {
		return c.Employments[i].CreatedAt.After(c.Employments[j].CreatedAt)
	})
	return c, nil
}

func (r *fakeCandidateRepo) Search(query string, limit int) ([]models.Candidate, error) {
	var result []models.Candidate
	lower := strings.ToLower(query)
	for _, c := range r.candidates {
		if strings.Contains(strings.ToLower(c.Name), lower) ||
			strings.Contains(strings.ToLower(c.Email), lower) ||
			strings.Contains(c.Phone, query) {
			result = append(result, *c)
		}
		if len(result) == limit {
			break
		}
	}
	return result, nil
}

func (r *fakeCandidateRepo) ListForQueue(filter repositories.QueueFilter) ([]models.Candidate, error) {
	var result []models.Candidate
	for _, c := range r.candidates {
		if filter.City != "" && !strings.EqualFold(c.City, filter.City) {
			continue
		}
		if filter.Query != "" {
			lower := strings.ToLower(filter.Query)
			if !strings.Contains(strings.ToLower(c.Name), lower) &&
				!strings.Contains(strings.ToLower(c.Email), lower) &&
				!strings.Contains(c.Phone, filter.Query) {
				continue
			}
		}
		result = append(result, *c)
	}
	return result, nil
}

func (r *fakeCandidateRepo) UpdateResume(id uuid.UUID, resumeURL string, uploadedAt time.Time) (*models.Candidate, error) {
	c, ok := r.candidates[id]
	if !ok {
		return nil, repositories.ErrCandidateNotFound
	}
	c.ResumeURL = &resumeURL
	c.ResumeUploadedAt = &uploadedAt
	clone := *c
	return &clone, nil
}

func (r *fakeCandidateRepo) CreateNote(note *models.CandidateNote) error {
	r.notes = append(r.notes, *note)
	return nil
}

func (r *fakeCandidateRepo) RecentNotes(candidateID uuid.UUID, limit int) ([]models.CandidateNote, error) {
	var notes []models.CandidateNote
	for _, n := range r.notes {
		if n.CandidateID == candidateID {
			notes = append(notes, n)
		}
	}
	if len(notes) > limit {
		notes = notes[:limit]
	}
	return notes, nil
}

type fakeVerificationRepo struct {
	verifications map[uuid.UUID]*models.EmploymentVerification
}

func newFakeVerificationRepo() *fakeVerificationRepo {
	return &fakeVerificationRepo{verifications: make(map[uuid.UUID]*models.EmploymentVerification)}
}

func (r *fakeVerificationRepo) Create(v *models.EmploymentVerification) error {
	clone := *v
	r.verifications[v.ID] = &clone
	return nil
}

func (r *fakeVerificationRepo) FindByID(id uuid.UUID) (*models.EmploymentVerification, error) {
	v, ok := r.verifications[id]
	if !ok {
		return nil, repositories.ErrVerificationNotFound
	}
	clone := *v
	return &clone, nil
}

func (r *fakeVerificationRepo) FindByToken(token string) (*models.EmploymentVerification, error) {
	for _, v := range r.verifications {
		if v.VerificationToken == token {
			clone := *v
			return &clone, nil
		}
	}
	return nil, repositories.ErrVerificationNotFound
}

func (r *fakeVerificationRepo) ListByCandidate(candidateID uuid.UUID) ([]models.EmploymentVerification, error) {
	var result []models.EmploymentVerification
	for _, v := range r.verifications {
		if v.CandidateID == candidateID {
			result = append(result, *v)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

func (r *fakeVerificationRepo) SubmitResponse(
	response *models.VerificationResponse,
	documents []models.VerificationDocument,
	status models.VerificationStatus,
	completedAt time.Time,
) error {
	v, ok := r.verifications[response.EmploymentVerificationID]
	if !ok {
		return repositories.ErrVerificationNotFound
	}
	v.Status = status
	v.CompletedAt = &completedAt
	return nil
}

func (r *fakeVerificationRepo) UpdateStatus(id uuid.UUID, status models.VerificationStatus) error {
	v, ok := r.verifications[id]
	if !ok {
		return repositories.ErrVerificationNotFound
	}
	v.Status = status
	return nil
}

func (r *fakeVerificationRepo) CreateCallingLog(log *models.CallingLog) error {
	if _, ok := r.verifications[log.EmploymentVerificationID]; !ok {
		return repositories.ErrVerificationNotFound
	}
	return nil
}

func (r *fakeVerificationRepo) CountAll() (int64, error) {
	return int64(len(r.verifications)), nil
}

func (r *fakeVerificationRepo) CountByStatus(statuses ...models.VerificationStatus) (int64, error) {
	var count int64
	for _, v := range r.verifications {
		for _, s := range statuses {
			if v.Status == s {
				count++
			}
		}
	}
	return count, nil
}

func (r *fakeVerificationRepo) CompletionPairs() ([]repositories.CompletionPair, error) {
	var pairs []repositories.CompletionPair
	for _, v := range r.verifications {
		if v.CompletedAt != nil {
			pairs = append(pairs, repositories.CompletionPair{
				CreatedAt:   v.CreatedAt,
				CompletedAt: *v.CompletedAt,
			})
		}
	}
	return pairs, nil
}

type fakeStorage struct {
	uploads []string
	err     error
}

func (s *fakeStorage) Upload(file *multipart.FileHeader, folder string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.uploads = append(s.uploads, folder+"/"+file.Filename)
	return "https://cdn.test/" + folder + "/" + file.Filename, nil
}

// fakeVerificationService stubs the lifecycle service for handler tests.
type fakeVerificationService struct {
	createFn     func(req models.CreateVerificationRequest) (*models.EmploymentVerification, error)
	formFn       func(token string) (*models.VerificationForm, error)
	submitFn     func(token string, answers string, attachments []services.SubmitAttachment) error
	callingLogFn func(id uuid.UUID, req models.CallingLogRequest) (*models.CallingLog, error)
	markFailedFn func(id uuid.UUID) (*models.EmploymentVerification, error)
}

func (f *fakeVerificationService) Create(req models.CreateVerificationRequest) (*models.EmploymentVerification, error) {
	return f.createFn(req)
}

func (f *fakeVerificationService) Form(token string) (*models.VerificationForm, error) {
	return f.formFn(token)
}

func (f *fakeVerificationService) Submit(token string, answers string, attachments []services.SubmitAttachment) error {
	return f.submitFn(token, answers, attachments)
}

func (f *fakeVerificationService) AddCallingLog(id uuid.UUID, req models.CallingLogRequest) (*models.CallingLog, error) {
	return f.callingLogFn(id, req)
}

func (f *fakeVerificationService) MarkFailed(id uuid.UUID) (*models.EmploymentVerification, error) {
	return f.markFailedFn(id)
}
