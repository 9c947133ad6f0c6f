package services

import (
	"fmt"
	"sort"
	"strings"

	"alfredoptarigan/hr-verification/internal/models"
)

// MergeTimeline flattens every event source belonging to a candidate's
// employments (creation, response submission, document uploads, manual
// call logs) into one chronological sequence. The sort is stable, so
// events sharing a timestamp keep their emission order.
func MergeTimeline(employments []models.EmploymentVerification) []models.TimelineEvent {
	timeline := []models.TimelineEvent{}

	for _, emp := range employments {
		timeline = append(timeline, models.TimelineEvent{
			Timestamp:    emp.CreatedAt,
			Type:         models.EventEmploymentAdded,
			EmploymentID: emp.ID,
			Company:      emp.PreviousCompanyName,
			Message:      fmt.Sprintf("Employment at %s added", emp.PreviousCompanyName),
		})

		if emp.Response != nil {
			timeline = append(timeline, models.TimelineEvent{
				Timestamp:    emp.Response.SubmittedAt,
				Type:         models.EventVerificationSubmitted,
				EmploymentID: emp.ID,
				Company:      emp.PreviousCompanyName,
				Message:      "Verification submitted by previous employer",
			})

			for _, doc := range emp.Response.Documents {
				timeline = append(timeline, models.TimelineEvent{
					Timestamp:    doc.UploadedAt,
					Type:         models.EventDocumentUploaded,
					EmploymentID: emp.ID,
					Company:      emp.PreviousCompanyName,
					DocumentType: doc.Type,
					FileURL:      doc.FileURL,
					Message:      fmt.Sprintf("%s uploaded", strings.ReplaceAll(string(doc.Type), "_", " ")),
				})
			}
		}

		for _, call := range emp.CallingLogs {
			timeline = append(timeline, models.TimelineEvent{
				Timestamp:    call.CallTime,
				Type:         models.EventCallLogged,
				EmploymentID: emp.ID,
				Company:      emp.PreviousCompanyName,
				Message:      fmt.Sprintf("Manual HR call logged: %s", call.Outcome),
			})
		}
	}

	sort.SliceStable(timeline, func(i, j int) bool {
		return timeline[i].Timestamp.Before(timeline[j].Timestamp)
	})

	return timeline
}
