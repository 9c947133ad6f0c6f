package services

import (
	"fmt"
	"math"
	"time"

	"alfredoptarigan/hr-verification/internal/models"
)

// DeriveQueueBucket assigns a candidate to a triage bucket from the
// statuses of all their employments. Anything failed or contested wins;
// anything still open comes next; otherwise the candidate is done.
func DeriveQueueBucket(statuses []models.VerificationStatus) models.QueueBucket {
	for _, s := range statuses {
		if s == models.StatusFailed || s == models.StatusDiscrepancy {
			return models.QueueFailed
		}
	}
	for _, s := range statuses {
		if s == models.StatusPending || s == models.StatusInProgress {
			return models.QueuePending
		}
	}
	return models.QueueCompleted
}

// QueueRisk is the maximum per-status risk weight across employments,
// 0 when there are none.
func QueueRisk(statuses []models.VerificationStatus) int {
	risk := 0
	for _, s := range statuses {
		if r := RiskForStatus(s); r > risk {
			risk = r
		}
	}
	return risk
}

// QueueProgress renders "<terminal>/<total>", counting CLEAR, FAILED and
// DISCREPANCY as terminal.
func QueueProgress(statuses []models.VerificationStatus) string {
	completed := 0
	for _, s := range statuses {
		if s.IsTerminal() {
			completed++
		}
	}
	return fmt.Sprintf("%d/%d", completed, len(statuses))
}

// QueueTATDays is the elapsed whole days (rounded up) since the earliest
// employment was created. A candidate with no employments has no
// turnaround clock running, so it reports 0.
func QueueTATDays(employments []models.EmploymentVerification, now time.Time) int {
	if len(employments) == 0 {
		return 0
	}

	earliest := employments[0].CreatedAt
	for _, emp := range employments[1:] {
		if emp.CreatedAt.Before(earliest) {
			earliest = emp.CreatedAt
		}
	}

	return int(math.Ceil(now.Sub(earliest).Hours() / 24))
}

// DeriveQueueItem builds the work-queue row for one candidate.
func DeriveQueueItem(candidate models.Candidate, now time.Time) models.QueueItem {
	statuses := make([]models.VerificationStatus, 0, len(candidate.Employments))
	lastUpdated := candidate.CreatedAt

	for _, emp := range candidate.Employments {
		statuses = append(statuses, emp.Status)
		if emp.UpdatedAt.After(lastUpdated) {
			lastUpdated = emp.UpdatedAt
		}
	}

	return models.QueueItem{
		ID:                 candidate.ID,
		Name:               candidate.Name,
		Email:              candidate.Email,
		City:               candidate.City,
		JoiningDesignation: candidate.JoiningDesignation,
		VerificationStatus: DeriveQueueBucket(statuses),
		RiskScore:          QueueRisk(statuses),
		Progress:           QueueProgress(statuses),
		TATDays:            QueueTATDays(candidate.Employments, now),
		LastUpdated:        lastUpdated,
	}
}

// FilterQueue drops items outside the requested bucket. An empty or
// "all" bucket keeps everything.
func FilterQueue(items []models.QueueItem, bucket models.QueueBucket) []models.QueueItem {
	if bucket == "" || bucket == models.QueueAll {
		return items
	}

	filtered := []models.QueueItem{}
	for _, item := range items {
		if item.VerificationStatus == bucket {
			filtered = append(filtered, item)
		}
	}
	return filtered
}
