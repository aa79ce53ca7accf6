// Package seed holds the built-in demo dataset used by the reset
// endpoint when the caller supplies no dataset of its own.
package seed

import (
	"time"

	"github.com/shangour/URmine149/constants"
	"github.com/shangour/URmine149/lifecycle"
	"github.com/shangour/URmine149/models"
)

const pixelGif = "data:image/gif;base64,R0lGODlhAQABAIAAAAAAAP///yH5BAEAAAAALAAAAAABAAEAAAIBRAA7"

func strptr(s string) *string { return &s }
func intptr(i int) *int       { return &i }

// Sample builds the demo dataset with timestamps relative to now.
// Entity ids are fixed so re-seeding is deterministic.
func Sample() lifecycle.Dataset {
	now := time.Now().UnixMilli()
	minute := int64(60_000)
	hour := int64(3_600_000)

	employees := []models.Employee{
		{ID: "emp-1", Name: "Vivek", CurrentTaskID: strptr("task-1")},
		{ID: "emp-2", Name: "Priya", CurrentTaskID: strptr("task-2")},
		{ID: "emp-3", Name: "Amit", CurrentTaskID: strptr("task-3")},
		{ID: "emp-4", Name: "Sunita"},
		{ID: "emp-5", Name: "Rohan"},
		{ID: "emp-6", Name: "Anjali"},
		{ID: "emp-7", Name: "Pooja"},
	}

	dueTask1 := now + 6*hour
	dueTask2 := now + 4*hour

	deliverables := func(submitted int) []models.Deliverable {
		ds := models.TemplateDeliverables()
		for i := range ds {
			ds[i].IsSubmitted = i < submitted
		}
		return ds
	}

	donePhases := models.TemplatePhases()
	for i := range donePhases {
		donePhases[i].Status = constants.PhaseStatusCompleted
		donePhases[i].ValidationStatus = constants.ValidationApproved
	}

	tasks := []models.Task{
		{
			ID:                 "task-1",
			Code:               "09/10/25 URmine Vibe Coding",
			OwnerID:            "emp-1",
			Manager:            "Shan",
			Mentor:             "Indrajeet",
			ExpectedDuration:   480,
			StartTime:          now - 2*hour,
			Status:             constants.TaskStatusInProgress,
			ProgressPercentage: 45,
			CurrentPhase:       "Demo Implementation",
			LastUpdateTime:     now - 18*minute,
			ComplianceScore:    95,
			Description:        "Implement the real-time monitoring dashboard as per the PRD. Focus on the manager's view and task summary panel.",
			Phases: []models.Phase{
				{Name: "Tutorial Selection", ExpectedDuration: 60, Status: constants.PhaseStatusCompleted, ValidationStatus: constants.ValidationApproved},
				{Name: "PRD Creation", ExpectedDuration: 120, Status: constants.PhaseStatusCompleted, ValidationStatus: constants.ValidationApproved},
				{Name: "Demo Implementation", ExpectedDuration: 180, Status: constants.PhaseStatusInProgress, ValidationStatus: constants.ValidationPending},
				{Name: "URmine Integration", ExpectedDuration: 150, Status: constants.PhaseStatusPending, ValidationStatus: constants.ValidationPending},
				{Name: "Validation & Deployment", ExpectedDuration: 90, Status: constants.PhaseStatusPending, ValidationStatus: constants.ValidationPending},
			},
			Deliverables: deliverables(2),
			DueDate:      &dueTask1,
			Version:      1,
		},
		{
			ID:                 "task-2",
			Code:               "10/10/25 API Integration",
			OwnerID:            "emp-2",
			Manager:            "Shan",
			Mentor:             "Indrajeet",
			ExpectedDuration:   300,
			StartTime:          now - 1*hour,
			Status:             constants.TaskStatusInProgress,
			ProgressPercentage: 20,
			CurrentPhase:       "PRD Creation",
			LastUpdateTime:     now - 45*minute,
			ComplianceScore:    80,
			Description:        "Integrate with the third-party weather API. The main challenge is handling rate limits and data transformation.",
			Phases: []models.Phase{
				{Name: "Tutorial Selection", ExpectedDuration: 30, Status: constants.PhaseStatusCompleted, ValidationStatus: constants.ValidationApproved},
				{Name: "PRD Creation", ExpectedDuration: 90, Status: constants.PhaseStatusInProgress, ValidationStatus: constants.ValidationPending},
				{Name: "API Scaffolding", ExpectedDuration: 120, Status: constants.PhaseStatusPending, ValidationStatus: constants.ValidationPending},
				{Name: "Deployment", ExpectedDuration: 60, Status: constants.PhaseStatusPending, ValidationStatus: constants.ValidationPending},
			},
			Deliverables: deliverables(1)[:4],
			DueDate:      &dueTask2,
			Version:      1,
		},
		{
			ID:                 "task-3",
			Code:               "11/10/25 UI Polish",
			OwnerID:            "emp-3",
			Manager:            "Shan",
			Mentor:             "Indrajeet",
			ExpectedDuration:   240,
			StartTime:          now - 4*hour,
			Status:             constants.TaskStatusInProgress,
			ProgressPercentage: 100,
			CurrentPhase:       "Validation & Deployment",
			LastUpdateTime:     now - 90*minute,
			ComplianceScore:    99,
			Description:        "Final UI polish and accessibility improvements. Ensure all components are mobile-responsive and meet WCAG AA standards.",
			Phases:             donePhases,
			Deliverables:       deliverables(5),
			Version:            1,
		},
	}

	activities := []models.Activity{
		{
			ID: "act-1", EmployeeID: "emp-1", TaskID: "task-1",
			Timestamp: now - 18*minute, Type: constants.ActivityStatusUpdate,
			Description:  "Finished setting up the main grid component for the manager view.",
			ScreenshotID: "scr-1",
			Metadata:     &models.ActivityMetadata{ProgressPercentage: intptr(45)},
		},
		{
			ID: "act-2", EmployeeID: "emp-1", TaskID: "task-1",
			Timestamp: now - 75*minute, Type: constants.ActivityPhaseCompleted,
			Description: "PRD Creation phase is complete and submitted for validation.",
			Metadata:    &models.ActivityMetadata{ProgressPercentage: intptr(40)},
		},
		{
			ID: "act-3", EmployeeID: "emp-2", TaskID: "task-2",
			Timestamp: now - 45*minute, Type: constants.ActivityBlockerReported,
			Description:  "API key is invalid. Cannot proceed with fetching data.",
			ScreenshotID: "scr-2",
			Metadata:     &models.ActivityMetadata{BlockerSeverity: constants.SeverityHigh},
		},
		{
			ID: "act-4", EmployeeID: "emp-3", TaskID: "task-3",
			Timestamp: now - 90*minute, Type: constants.ActivityTaskSubmitted,
			Description: "All phases and deliverables for UI Polish are complete.",
			Metadata:    &models.ActivityMetadata{ProgressPercentage: intptr(100)},
		},
	}

	blockers := []models.Blocker{
		{
			ID: "blk-1", TaskID: "task-2", EmployeeID: "emp-2",
			Title:        "Invalid API credentials",
			Description:  "The provided API key for the weather service is returning a 401 Unauthorized error.",
			Severity:     constants.SeverityHigh,
			ReportedAt:   now - 45*minute,
			ScreenshotID: "scr-2",
			Status:       constants.BlockerStatusOpen,
		},
	}

	screenshots := []models.Screenshot{
		{ID: "scr-1", TaskID: "task-1", EmployeeID: "emp-1", Timestamp: now - 18*minute, Base64Data: pixelGif},
		{ID: "scr-2", TaskID: "task-2", EmployeeID: "emp-2", Timestamp: now - 45*minute, Base64Data: pixelGif},
	}

	return lifecycle.Dataset{
		Employees:   employees,
		Tasks:       tasks,
		Activities:  activities,
		Blockers:    blockers,
		Screenshots: screenshots,
	}
}
