package services

import (
	"math"

	"alfredoptarigan/hr-verification/internal/models"
	"alfredoptarigan/hr-verification/internal/repositories"
)

// SLATargetDays is the turnaround target a completed verification must
// meet to count as SLA-compliant.
const SLATargetDays = 7

type DashboardService interface {
	VerificationStats() (*models.DashboardStats, error)
}

type dashboardService struct {
	verificationRepo repositories.VerificationRepository
}

func NewDashboardService(verificationRepo repositories.VerificationRepository) DashboardService {
	return &dashboardService{verificationRepo: verificationRepo}
}

func (s *dashboardService) VerificationStats() (*models.DashboardStats, error) {
	total, err := s.verificationRepo.CountAll()
	if err != nil {
		return nil, err
	}

	pending, err := s.verificationRepo.CountByStatus(models.StatusPending, models.StatusInProgress)
	if err != nil {
		return nil, err
	}

	completed, err := s.verificationRepo.CountByStatus(models.StatusClear)
	if err != nil {
		return nil, err
	}

	failedOrDiscrepancy, err := s.verificationRepo.CountByStatus(models.StatusFailed, models.StatusDiscrepancy)
	if err != nil {
		return nil, err
	}

	pairs, err := s.verificationRepo.CompletionPairs()
	if err != nil {
		return nil, err
	}

	averageTAT, slaRate := TATStats(pairs)

	return &models.DashboardStats{
		TotalVerifications:     total,
		PendingVerifications:   pending,
		CompletedVerifications: completed,
		FailedOrDiscrepancy:    failedOrDiscrepancy,
		AverageTATDays:         averageTAT,
		SLAComplianceRate:      slaRate,
	}, nil
}

// TATStats computes the average turnaround in fractional days and the
// percentage of completed verifications within the SLA target, both
// rounded to two decimals. No completed verifications means 0 for both.
func TATStats(pairs []repositories.CompletionPair) (averageTATDays, slaComplianceRate float64) {
	if len(pairs) == 0 {
		return 0, 0
	}

	var totalTATDays float64
	onTime := 0

	for _, p := range pairs {
		tatDays := p.CompletedAt.Sub(p.CreatedAt).Hours() / 24
		totalTATDays += tatDays
		if tatDays <= SLATargetDays {
			onTime++
		}
	}

	averageTATDays = round2(totalTATDays / float64(len(pairs)))
	slaComplianceRate = round2(float64(onTime) / float64(len(pairs)) * 100)
	return averageTATDays, slaComplianceRate
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
