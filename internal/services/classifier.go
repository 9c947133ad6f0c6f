package services

import (
	"alfredoptarigan/hr-verification/internal/models"
)

const maxRiskScore = 100

// multipleEmploymentPenalty is added to a candidate's summary risk when
// more than one previous employment is on record.
const multipleEmploymentPenalty = 5

// RiskForStatus maps a verification lifecycle status to its risk weight.
func RiskForStatus(status models.VerificationStatus) int {
	switch status {
	case models.StatusClear:
		return 0
	case models.StatusPending, models.StatusInProgress:
		return 10
	case models.StatusDiscrepancy:
		return 40
	case models.StatusFailed:
		return 70
	default:
		return 0
	}
}

// OverallStatusFromStatuses derives the candidate-level verdict from the
// statuses of all employments. Priority order, first match wins:
// FAILED > DISCREPANCY > PENDING/IN_PROGRESS > CLEAR. An empty set is
// CLEAR (no employments means nothing to verify).
func OverallStatusFromStatuses(statuses []models.VerificationStatus) models.OverallStatus {
	var inProgress bool

	for _, s := range statuses {
		if s == models.StatusFailed {
			return models.OverallHighRisk
		}
	}
	for _, s := range statuses {
		if s == models.StatusDiscrepancy {
			return models.OverallReview
		}
	}
	for _, s := range statuses {
		if s == models.StatusPending || s == models.StatusInProgress {
			inProgress = true
			break
		}
	}
	if inProgress {
		return models.OverallInProgress
	}

	return models.OverallClear
}

// OverallStatusFromRisk maps a numeric risk score to the coarse textual
// verdict used in the candidate summary view.
func OverallStatusFromRisk(riskScore int) models.OverallStatus {
	switch {
	case riskScore <= 20:
		return models.OverallClear
	case riskScore <= 50:
		return models.OverallReview
	default:
		return models.OverallHighRisk
	}
}

// SummarizeEmployments computes the summary-view risk analysis for one
// candidate: a per-employment breakdown, a clamped risk score, the derived
// overall status and the HR-facing remarks.
func SummarizeEmployments(employments []models.EmploymentVerification) (models.OverallStatus, int, []string, []models.EmploymentBreakdownItem) {
	if len(employments) == 0 {
		return models.OverallClear, 0, []string{"No previous employments found"}, []models.EmploymentBreakdownItem{}
	}

	breakdown := make([]models.EmploymentBreakdownItem, 0, len(employments))
	highestRisk := 0
	hasDiscrepancy := false
	hasFailed := false

	for _, emp := range employments {
		risk := RiskForStatus(emp.Status)
		if risk > highestRisk {
			highestRisk = risk
		}
		if emp.Status == models.StatusDiscrepancy {
			hasDiscrepancy = true
		}
		if emp.Status == models.StatusFailed {
			hasFailed = true
		}

		breakdown = append(breakdown, models.EmploymentBreakdownItem{
			Company: emp.PreviousCompanyName,
			Status:  emp.Status,
			Risk:    risk,
		})
	}

	riskScore := highestRisk
	if len(employments) > 1 {
		riskScore += multipleEmploymentPenalty
	}
	if riskScore > maxRiskScore {
		riskScore = maxRiskScore
	}

	remarks := []string{}
	if hasDiscrepancy {
		remarks = append(remarks, "One or more employment verifications have discrepancies")
	}
	if hasFailed {
		remarks = append(remarks, "One or more employment verifications failed")
	}
	if len(employments) > 1 {
		remarks = append(remarks, "Multiple previous employments detected")
	}

	return OverallStatusFromRisk(riskScore), riskScore, remarks, breakdown
}
