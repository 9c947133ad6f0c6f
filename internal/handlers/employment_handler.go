package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/tidwall/gjson"

	"alfredoptarigan/hr-verification/internal/models"
	"alfredoptarigan/hr-verification/internal/repositories"
	"alfredoptarigan/hr-verification/internal/services"
)

type EmploymentHandler struct {
	verificationService services.VerificationService
}

func NewEmploymentHandler(verificationService services.VerificationService) *EmploymentHandler {
	return &EmploymentHandler{verificationService: verificationService}
}

// HandleCreate handles POST /employment-verifications
func (h *EmploymentHandler) HandleCreate(c *fiber.Ctx) error {
	var req models.CreateVerificationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request payload",
		})
	}

	if req.CandidateID == uuid.Nil || req.PreviousCompanyName == "" || req.PreviousCompanyEmail == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "candidateId, previousCompanyName and previousCompanyEmail are required",
		})
	}

	verification, err := h.verificationService.Create(req)
	if err != nil {
		if errors.Is(err, repositories.ErrCandidateNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Candidate not found",
			})
		}
		log.Printf("create verification error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to create verification",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(verification)
}

// HandleForm handles GET /employment-verifications/form/:token
func (h *EmploymentHandler) HandleForm(c *fiber.Ctx) error {
	form, err := h.verificationService.Form(c.Params("token"))
	if err != nil {
		if errors.Is(err, services.ErrInvalidToken) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Invalid or expired link",
			})
		}
		log.Printf("verification form error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to load verification form",
		})
	}

	return c.JSON(form)
}

// HandleSubmit handles POST /employment-verifications/submit/:token
func (h *EmploymentHandler) HandleSubmit(c *fiber.Ctx) error {
	answers := extractAnswers(c)

	var attachments []services.SubmitAttachment
	if file, err := c.FormFile("offerLetter"); err == nil {
		attachments = append(attachments, services.SubmitAttachment{
			Type: models.DocumentOfferLetter,
			File: file,
		})
	}
	if file, err := c.FormFile("relievingLetter"); err == nil {
		attachments = append(attachments, services.SubmitAttachment{
			Type: models.DocumentRelievingLetter,
			File: file,
		})
	}

	err := h.verificationService.Submit(c.Params("token"), answers, attachments)
	switch {
	case err == nil:
		return c.JSON(fiber.Map{
			"message": "Verification submitted successfully",
		})
	case errors.Is(err, services.ErrInvalidToken):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid or expired link",
		})
	case errors.Is(err, services.ErrAlreadySubmitted):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message": "Verification already submitted",
		})
	case errors.Is(err, services.ErrInvalidAnswers),
		errors.Is(err, services.ErrDocumentTooLarge),
		errors.Is(err, services.ErrUnsupportedDocumentType):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": err.Error(),
		})
	default:
		log.Printf("submit verification error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to submit verification",
		})
	}
}

// HandleAddCallingLog handles POST /employment-verifications/:id/calling-log
func (h *EmploymentHandler) HandleAddCallingLog(c *fiber.Ctx) error {
	verificationID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid verification ID format",
		})
	}

	var req models.CallingLogRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request payload",
		})
	}

	callLog, err := h.verificationService.AddCallingLog(verificationID, req)
	if err != nil {
		if errors.Is(err, repositories.ErrVerificationNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Verification not found",
			})
		}
		log.Printf("add calling log error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to add calling log",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(callLog)
}

// HandleMarkFailed handles POST /employment-verifications/:id/fail
func (h *EmploymentHandler) HandleMarkFailed(c *fiber.Ctx) error {
	verificationID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid verification ID format",
		})
	}

	verification, err := h.verificationService.MarkFailed(verificationID)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrVerificationNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Verification not found",
			})
		case errors.Is(err, services.ErrInvalidTransition):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": "Verification is already in a terminal status",
			})
		default:
			log.Printf("mark failed error: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Failed to update verification",
			})
		}
	}

	return c.JSON(verification)
}

// extractAnswers pulls the answers payload from either a multipart form
// field or a JSON body, where it may arrive as an object or as a
// JSON-encoded string.
func extractAnswers(c *fiber.Ctx) string {
	if answers := c.FormValue("answers"); answers != "" {
		return answers
	}

	raw := gjson.GetBytes(c.Body(), "answers")
	if raw.Type == gjson.String {
		return raw.String()
	}
	return raw.Raw
}
