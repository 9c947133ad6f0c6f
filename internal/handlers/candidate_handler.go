package handlers

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/hr-verification/internal/models"
	"alfredoptarigan/hr-verification/internal/repositories"
	"alfredoptarigan/hr-verification/internal/services"
)

const (
	searchResultLimit = 10
	summaryNoteLimit  = 5
)

type CandidateHandler struct {
	candidateRepo    repositories.CandidateRepository
	verificationRepo repositories.VerificationRepository
	storageService   services.StorageService
}

func NewCandidateHandler(
	candidateRepo repositories.CandidateRepository,
	verificationRepo repositories.VerificationRepository,
	storageService services.StorageService,
) *CandidateHandler {
	return &CandidateHandler{
		candidateRepo:    candidateRepo,
		verificationRepo: verificationRepo,
		storageService:   storageService,
	}
}

// HandleCreate handles POST /candidates
func (h *CandidateHandler) HandleCreate(c *fiber.Ctx) error {
	var req models.CreateCandidateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request payload",
		})
	}

	if req.Name == "" || req.Email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Name and email are required",
		})
	}

	candidate := &models.Candidate{
		ID:                 uuid.New(),
		Name:               req.Name,
		Email:              req.Email,
		Phone:              req.Phone,
		City:               req.City,
		JoiningDesignation: req.JoiningDesignation,
		CreatedAt:          time.Now(),
		UpdatedAt:          time.Now(),
	}

	if err := h.candidateRepo.Create(candidate); err != nil {
		if errors.Is(err, repositories.ErrDuplicateEmail) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": "Candidate with this email already exists",
			})
		}
		log.Printf("create candidate error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to create candidate",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(candidate)
}

// HandleOverview handles GET /candidates/:candidateId/overview
func (h *CandidateHandler) HandleOverview(c *fiber.Ctx) error {
	candidateID, err := uuid.Parse(c.Params("candidateId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid candidate ID format",
		})
	}

	candidate, err := h.candidateRepo.FindByIDWithEmployments(candidateID)
	if err != nil {
		if errors.Is(err, repositories.ErrCandidateNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Candidate not found",
			})
		}
		log.Printf("candidate overview error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to load candidate overview",
		})
	}

	statuses := make([]models.VerificationStatus, 0, len(candidate.Employments))
	for _, emp := range candidate.Employments {
		statuses = append(statuses, emp.Status)
	}

	// Position falls back from the joining designation to the latest
	// employment's designation, then to a dash.
	position := "-"
	if candidate.JoiningDesignation != nil && *candidate.JoiningDesignation != "" {
		position = *candidate.JoiningDesignation
	} else if len(candidate.Employments) > 0 && candidate.Employments[0].Designation != "" {
		position = candidate.Employments[0].Designation
	}

	return c.JSON(models.CandidateOverview{
		CandidateID:        candidate.ID,
		Name:               candidate.Name,
		Email:              candidate.Email,
		Phone:              candidate.Phone,
		City:               candidate.City,
		Position:           position,
		VerificationStatus: services.OverallStatusFromStatuses(statuses),
	})
}

// HandleSummary handles GET /candidates/:candidateId/summary
func (h *CandidateHandler) HandleSummary(c *fiber.Ctx) error {
	candidateID, err := uuid.Parse(c.Params("candidateId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid candidate ID format",
		})
	}

	if _, err := h.candidateRepo.FindByID(candidateID); err != nil {
		if errors.Is(err, repositories.ErrCandidateNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Candidate not found",
			})
		}
		log.Printf("candidate summary error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to load candidate summary",
		})
	}

	employments, err := h.verificationRepo.ListByCandidate(candidateID)
	if err != nil {
		log.Printf("candidate summary error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to load candidate summary",
		})
	}

	notes, err := h.candidateRepo.RecentNotes(candidateID, summaryNoteLimit)
	if err != nil {
		log.Printf("candidate summary error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to load candidate summary",
		})
	}

	overallStatus, riskScore, remarks, breakdown := services.SummarizeEmployments(employments)

	return c.JSON(models.CandidateSummary{
		CandidateID:         candidateID,
		OverallStatus:       overallStatus,
		RiskScore:           riskScore,
		Remarks:             remarks,
		EmploymentBreakdown: breakdown,
		HRNotes:             notes,
	})
}

// HandleTimeline handles GET /candidates/:candidateId/employment-timeline
func (h *CandidateHandler) HandleTimeline(c *fiber.Ctx) error {
	candidateID, err := uuid.Parse(c.Params("candidateId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid candidate ID format",
		})
	}

	employments, err := h.verificationRepo.ListByCandidate(candidateID)
	if err != nil {
		log.Printf("employment timeline error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to load employment timeline",
		})
	}

	return c.JSON(models.CandidateTimeline{
		CandidateID: candidateID,
		Timeline:    services.MergeTimeline(employments),
	})
}

// HandleQueue handles GET /candidates/queue
func (h *CandidateHandler) HandleQueue(c *fiber.Ctx) error {
	bucket := models.QueueBucket(c.Query("status", string(models.QueueAll)))
	filter := repositories.QueueFilter{
		City:        c.Query("city"),
		Designation: c.Query("designation"),
		Query:       c.Query("q"),
	}

	candidates, err := h.candidateRepo.ListForQueue(filter)
	if err != nil {
		log.Printf("verification queue error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to load verification queue",
		})
	}

	now := time.Now()
	items := make([]models.QueueItem, 0, len(candidates))
	for _, candidate := range candidates {
		items = append(items, services.DeriveQueueItem(candidate, now))
	}
	items = services.FilterQueue(items, bucket)

	return c.JSON(fiber.Map{
		"count":   len(items),
		"results": items,
	})
}

// HandleSearch handles GET /candidates/search
func (h *CandidateHandler) HandleSearch(c *fiber.Ctx) error {
	query := strings.TrimSpace(c.Query("q"))
	if len(query) < 2 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Search query must be at least 2 characters",
		})
	}

	candidates, err := h.candidateRepo.Search(query, searchResultLimit)
	if err != nil {
		log.Printf("candidate search error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to search candidates",
		})
	}

	results := make([]models.CandidateSearchResult, 0, len(candidates))
	for _, candidate := range candidates {
		statuses := make([]models.VerificationStatus, 0, len(candidate.Employments))
		for _, emp := range candidate.Employments {
			statuses = append(statuses, emp.Status)
		}

		results = append(results, models.CandidateSearchResult{
			ID:                 candidate.ID,
			Name:               candidate.Name,
			Email:              candidate.Email,
			Phone:              candidate.Phone,
			City:               candidate.City,
			JoiningDesignation: candidate.JoiningDesignation,
			VerificationStatus: services.OverallStatusFromStatuses(statuses),
		})
	}

	return c.JSON(fiber.Map{
		"count":   len(results),
		"results": results,
	})
}

// HandleAddNote handles POST /candidates/:candidateId/notes
func (h *CandidateHandler) HandleAddNote(c *fiber.Ctx) error {
	candidateID, err := uuid.Parse(c.Params("candidateId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid candidate ID format",
		})
	}

	var req models.NoteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request payload",
		})
	}
	if strings.TrimSpace(req.Note) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Note is required",
		})
	}

	if _, err := h.candidateRepo.FindByID(candidateID); err != nil {
		if errors.Is(err, repositories.ErrCandidateNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Candidate not found",
			})
		}
		log.Printf("add note error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to add note",
		})
	}

	note := &models.CandidateNote{
		ID:          uuid.New(),
		CandidateID: candidateID,
		Note:        req.Note,
		CreatedAt:   time.Now(),
	}
	if err := h.candidateRepo.CreateNote(note); err != nil {
		log.Printf("add note error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to add note",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(note)
}

// HandleUploadResume handles POST /candidates/:candidateId/resume
func (h *CandidateHandler) HandleUploadResume(c *fiber.Ctx) error {
	candidateID, err := uuid.Parse(c.Params("candidateId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid candidate ID format",
		})
	}

	file, err := c.FormFile("resume")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Resume file is required",
		})
	}

	resumeURL, err := h.storageService.Upload(file, "resumes")
	if err != nil {
		log.Printf("resume upload failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to upload resume",
		})
	}

	candidate, err := h.candidateRepo.UpdateResume(candidateID, resumeURL, time.Now())
	if err != nil {
		if errors.Is(err, repositories.ErrCandidateNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Candidate not found",
			})
		}
		log.Printf("resume upload failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to upload resume",
		})
	}

	return c.JSON(fiber.Map{
		"message":   "Resume uploaded successfully",
		"resumeUrl": candidate.ResumeURL,
	})
}
