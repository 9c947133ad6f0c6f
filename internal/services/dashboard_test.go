package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/hr-verification/internal/models"
	"alfredoptarigan/hr-verification/internal/repositories"
)

func completedAfter(createdAt time.Time, d time.Duration) repositories.CompletionPair {
	return repositories.CompletionPair{CreatedAt: createdAt, CompletedAt: createdAt.Add(d)}
}

func TestTATStatsEmpty(t *testing.T) {
	avg, sla := TATStats(nil)
	assert.Zero(t, avg)
	assert.Zero(t, sla)
}

func TestTATStatsExactDays(t *testing.T) {
	created := time.Date(2026, 2, 20, 10, 0, 0, 0, time.UTC)

	// Completed after exactly 3 days: fractional TAT is 3.0 and it is
	// inside the 7-day SLA.
	avg, sla := TATStats([]repositories.CompletionPair{
		completedAfter(created, 72 * time.Hour),
	})
	assert.Equal(t, 3.0, avg)
	assert.Equal(t, 100.0, sla)
}

func TestTATStatsMixedCompliance(t *testing.T) {
	created := time.Date(2026, 2, 20, 10, 0, 0, 0, time.UTC)

	avg, sla := TATStats([]repositories.CompletionPair{
		completedAfter(created, 72*time.Hour),  // 3 days, on time
		completedAfter(created, 192*time.Hour), // 8 days, late
	})
	assert.Equal(t, 5.5, avg)
	assert.Equal(t, 50.0, sla)
}

func TestTATStatsBoundaryIsOnTime(t *testing.T) {
	created := time.Date(2026, 2, 20, 10, 0, 0, 0, time.UTC)

	_, sla := TATStats([]repositories.CompletionPair{
		completedAfter(created, 7 * 24 * time.Hour),
	})
	assert.Equal(t, 100.0, sla)
}

func TestTATStatsRounding(t *testing.T) {
	created := time.Date(2026, 2, 20, 10, 0, 0, 0, time.UTC)

	// 8 hours = 1/3 day; the average must come back rounded to two
	// decimals, not as a long fraction.
	avg, _ := TATStats([]repositories.CompletionPair{
		completedAfter(created, 8 * time.Hour),
	})
	assert.Equal(t, 0.33, avg)
}

type fakeDashboardRepo struct {
	fakeVerificationRepo
	total    int64
	byStatus map[models.VerificationStatus]int64
	pairs    []repositories.CompletionPair
}

func (f *fakeDashboardRepo) CountAll() (int64, error) { return f.total, nil }

func (f *fakeDashboardRepo) CountByStatus(statuses ...models.VerificationStatus) (int64, error) {
	var count int64
	for _, s := range statuses {
		count += f.byStatus[s]
	}
	return count, nil
}

func (f *fakeDashboardRepo) CompletionPairs() ([]repositories.CompletionPair, error) {
	return f.pairs, nil
}

func TestDashboardServiceVerificationStats(t *testing.T) {
	created := time.Date(2026, 2, 20, 10, 0, 0, 0, time.UTC)
	repo := &fakeDashboardRepo{
		total: 6,
		byStatus: map[models.VerificationStatus]int64{
			models.StatusPending:     1,
			models.StatusInProgress:  1,
			models.StatusClear:       2,
			models.StatusDiscrepancy: 1,
			models.StatusFailed:      1,
		},
		pairs: []repositories.CompletionPair{
			completedAfter(created, 72*time.Hour),
			completedAfter(created, 192*time.Hour),
		},
	}

	stats, err := NewDashboardService(repo).VerificationStats()
	require.NoError(t, err)

	assert.Equal(t, int64(6), stats.TotalVerifications)
	assert.Equal(t, int64(2), stats.PendingVerifications)
	assert.Equal(t, int64(2), stats.CompletedVerifications)
	assert.Equal(t, int64(2), stats.FailedOrDiscrepancy)
	assert.Equal(t, 5.5, stats.AverageTATDays)
	assert.Equal(t, 50.0, stats.SLAComplianceRate)
}
