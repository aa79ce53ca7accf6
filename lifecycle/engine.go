package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shangour/URmine149/constants"
	"github.com/shangour/URmine149/models"
)

// Engine translates employee actions into consistent multi-entity
// mutations. Every action runs inside a single transaction and task
// field updates are versioned, so an action either fully applies or
// fully fails and stale concurrent writes surface ErrConflict.
type Engine struct {
	db  *gorm.DB
	log *slog.Logger
	now func() time.Time

	// beforeWrite runs inside the transaction just before a versioned
	// task update. Only set from tests, to interleave a second writer.
	beforeWrite func(tx *gorm.DB)
}

func NewEngine(db *gorm.DB, log *slog.Logger) *Engine {
	if log == nil {
		log = slog.Default()
	}
	return &Engine{db: db, log: log, now: time.Now}
}

// NewID returns a prefixed entity id, e.g. "task-6f1c…". Fixture data
// keeps its fixed ids; only newly created entities get generated ones.
func NewID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}

type StatusUpdateInput struct {
	ProgressPercentage int
	ActivityText       string
	ScreenshotData     string
}

type BlockerReportInput struct {
	Title          string
	Description    string
	Severity       string
	ScreenshotData string
}

type TaskCreationInput struct {
	OwnerID     string
	Code        string
	Description string
	Manager     string
	Mentor      string
	Attachment  *models.Attachment
	DueDate     *int64
}

// Dataset is the full entity set handled by ResetToSampleData.
type Dataset struct {
	Employees   []models.Employee   `json:"employees"`
	Tasks       []models.Task       `json:"tasks"`
	Activities  []models.Activity   `json:"activities"`
	Blockers    []models.Blocker    `json:"blockers"`
	Screenshots []models.Screenshot `json:"screenshots"`
}

// RecordStatusUpdate stores a screenshot and a "Status Update" activity,
// then moves the task's progress and last-update time forward. The
// task's status is never touched.
func (e *Engine) RecordStatusUpdate(ctx context.Context, taskID string, in StatusUpdateInput) error {
	if strings.TrimSpace(in.ScreenshotData) == "" {
		return fmt.Errorf("%w: a screenshot is required for a status update", ErrValidation)
	}
	if in.ProgressPercentage < 0 || in.ProgressPercentage > 100 {
		return fmt.Errorf("%w: progress percentage must be between 0 and 100", ErrValidation)
	}

	ts := e.now().UnixMilli()
	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		task, err := findTask(tx, taskID)
		if err != nil {
			return err
		}
		if in.ProgressPercentage < task.ProgressPercentage {
			// Accepted, but worth a trace: the UI floors the slider at the
			// current value, so regressions only come from raw API calls.
			e.log.Warn("progress regression accepted",
				"task", taskID,
				"from", task.ProgressPercentage,
				"to", in.ProgressPercentage)
		}

		shot := &models.Screenshot{
			ID:         NewID("scr"),
			TaskID:     taskID,
			EmployeeID: task.OwnerID,
			Timestamp:  ts,
			Base64Data: in.ScreenshotData,
		}
		if err := tx.Create(shot).Error; err != nil {
			return storageErr(err)
		}

		progress := in.ProgressPercentage
		activity := &models.Activity{
			ID:           NewID("act"),
			EmployeeID:   task.OwnerID,
			TaskID:       taskID,
			Timestamp:    ts,
			Type:         constants.ActivityStatusUpdate,
			Description:  in.ActivityText,
			ScreenshotID: shot.ID,
			Metadata:     &models.ActivityMetadata{ProgressPercentage: &progress},
		}
		if err := tx.Create(activity).Error; err != nil {
			return storageErr(err)
		}

		return e.updateTask(tx, task, map[string]any{
			"progress_percentage": in.ProgressPercentage,
			"last_update_time":    ts,
		})
	})
	if err != nil {
		return err
	}

	e.log.Info("status update recorded", "task", taskID, "progress", in.ProgressPercentage)
	return nil
}

// RecordBlockerReport stores a screenshot, an open blocker and a
// "Blocker Reported" activity, and moves the task to Blocked. Progress
// is left untouched.
func (e *Engine) RecordBlockerReport(ctx context.Context, taskID string, in BlockerReportInput) error {
	if strings.TrimSpace(in.ScreenshotData) == "" {
		return fmt.Errorf("%w: a screenshot is required for a blocker report", ErrValidation)
	}
	if strings.TrimSpace(in.Title) == "" {
		return fmt.Errorf("%w: blocker title is required", ErrValidation)
	}
	if !constants.ValidSeverity(in.Severity) {
		return fmt.Errorf("%w: unknown blocker severity %q", ErrValidation, in.Severity)
	}

	ts := e.now().UnixMilli()
	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		task, err := findTask(tx, taskID)
		if err != nil {
			return err
		}
		next, err := Transition(task.Status, EventBlock)
		if err != nil {
			return err
		}

		shot := &models.Screenshot{
			ID:         NewID("scr"),
			TaskID:     taskID,
			EmployeeID: task.OwnerID,
			Timestamp:  ts,
			Base64Data: in.ScreenshotData,
		}
		if err := tx.Create(shot).Error; err != nil {
			return storageErr(err)
		}

		blocker := &models.Blocker{
			ID:           NewID("blk"),
			TaskID:       taskID,
			EmployeeID:   task.OwnerID,
			Title:        in.Title,
			Description:  in.Description,
			Severity:     in.Severity,
			ReportedAt:   ts,
			ScreenshotID: shot.ID,
			Status:       constants.BlockerStatusOpen,
		}
		if err := tx.Create(blocker).Error; err != nil {
			return storageErr(err)
		}

		activity := &models.Activity{
			ID:           NewID("act"),
			EmployeeID:   task.OwnerID,
			TaskID:       taskID,
			Timestamp:    ts,
			Type:         constants.ActivityBlockerReported,
			Description:  in.Description,
			ScreenshotID: shot.ID,
			Metadata:     &models.ActivityMetadata{BlockerSeverity: in.Severity},
		}
		if err := tx.Create(activity).Error; err != nil {
			return storageErr(err)
		}

		return e.updateTask(tx, task, map[string]any{
			"status":           next,
			"last_update_time": ts,
		})
	})
	if err != nil {
		return err
	}

	e.log.Info("blocker reported", "task", taskID, "severity", in.Severity)
	return nil
}

// SubmitTask hands the task over for review: progress jumps to 100,
// status becomes Under Review and a "Task Submitted" activity is logged.
func (e *Engine) SubmitTask(ctx context.Context, taskID string) error {
	ts := e.now().UnixMilli()
	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		task, err := findTask(tx, taskID)
		if err != nil {
			return err
		}
		next, err := Transition(task.Status, EventSubmit)
		if err != nil {
			return err
		}

		progress := 100
		activity := &models.Activity{
			ID:          NewID("act"),
			EmployeeID:  task.OwnerID,
			TaskID:      taskID,
			Timestamp:   ts,
			Type:        constants.ActivityTaskSubmitted,
			Description: "Task submitted for review.",
			Metadata:    &models.ActivityMetadata{ProgressPercentage: &progress},
		}
		if err := tx.Create(activity).Error; err != nil {
			return storageErr(err)
		}

		return e.updateTask(tx, task, map[string]any{
			"status":              next,
			"progress_percentage": 100,
			"last_update_time":    ts,
		})
	})
	if err != nil {
		return err
	}

	e.log.Info("task submitted for review", "task", taskID)
	return nil
}

// CreateTask allocates a new task for an existing employee, with the
// standard phase and deliverable templates copied on.
func (e *Engine) CreateTask(ctx context.Context, in TaskCreationInput) (*models.Task, error) {
	if strings.TrimSpace(in.OwnerID) == "" {
		return nil, fmt.Errorf("%w: owner id is required", ErrValidation)
	}
	if strings.TrimSpace(in.Code) == "" {
		return nil, fmt.Errorf("%w: task code is required", ErrValidation)
	}
	if strings.TrimSpace(in.Description) == "" {
		return nil, fmt.Errorf("%w: task description is required", ErrValidation)
	}

	ts := e.now().UnixMilli()
	phases := models.TemplatePhases()
	task := &models.Task{
		ID:                 NewID("task"),
		Code:               in.Code,
		OwnerID:            in.OwnerID,
		Manager:            in.Manager,
		Mentor:             in.Mentor,
		ExpectedDuration:   models.TemplateDuration(),
		StartTime:          ts,
		Status:             constants.DefaultTaskStatus,
		ProgressPercentage: 0,
		CurrentPhase:       phases[0].Name,
		Phases:             phases,
		Deliverables:       models.TemplateDeliverables(),
		LastUpdateTime:     ts,
		Description:        in.Description,
		Attachment:         in.Attachment,
		DueDate:            in.DueDate,
		Version:            1,
	}

	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var owner models.Employee
		if err := tx.Where("id = ?", in.OwnerID).First(&owner).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: employee %s", ErrNotFound, in.OwnerID)
			}
			return storageErr(err)
		}
		if err := tx.Create(task).Error; err != nil {
			return storageErr(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.log.Info("task created", "task", task.ID, "owner", in.OwnerID, "code", in.Code)
	return task, nil
}

// ApproveTask completes a task that is under review.
func (e *Engine) ApproveTask(ctx context.Context, taskID string) error {
	return e.reviewDecision(ctx, taskID, EventApprove)
}

// RejectTask sends a task under review back to in progress.
func (e *Engine) RejectTask(ctx context.Context, taskID string) error {
	return e.reviewDecision(ctx, taskID, EventReject)
}

func (e *Engine) reviewDecision(ctx context.Context, taskID, event string) error {
	ts := e.now().UnixMilli()
	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		task, err := findTask(tx, taskID)
		if err != nil {
			return err
		}
		next, err := Transition(task.Status, event)
		if err != nil {
			return err
		}

		description := "Review passed. Task approved and completed."
		if event == EventReject {
			description = "Review failed. Task returned for rework."
		}
		activity := &models.Activity{
			ID:          NewID("act"),
			EmployeeID:  task.OwnerID,
			TaskID:      taskID,
			Timestamp:   ts,
			Type:        constants.ActivityCheckIn,
			Description: description,
		}
		if err := tx.Create(activity).Error; err != nil {
			return storageErr(err)
		}

		return e.updateTask(tx, task, map[string]any{
			"status":           next,
			"last_update_time": ts,
		})
	})
	if err != nil {
		return err
	}

	e.log.Info("review decision applied", "task", taskID, "decision", event)
	return nil
}

// ResolveBlocker closes a blocker. When it was the task's last open
// blocker and the task is still Blocked, the task resumes.
func (e *Engine) ResolveBlocker(ctx context.Context, blockerID string) error {
	ts := e.now().UnixMilli()
	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var blocker models.Blocker
		if err := tx.Where("id = ?", blockerID).First(&blocker).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: blocker %s", ErrNotFound, blockerID)
			}
			return storageErr(err)
		}
		if blocker.Status == constants.BlockerStatusResolved {
			return fmt.Errorf("%w: blocker %s is already resolved", ErrConflict, blockerID)
		}

		res := tx.Model(&models.Blocker{}).
			Where("id = ? AND status = ?", blockerID, constants.BlockerStatusOpen).
			Update("status", constants.BlockerStatusResolved)
		if res.Error != nil {
			return storageErr(res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: blocker %s was modified concurrently", ErrConflict, blockerID)
		}

		var open int64
		if err := tx.Model(&models.Blocker{}).
			Where("task_id = ? AND status = ?", blocker.TaskID, constants.BlockerStatusOpen).
			Count(&open).Error; err != nil {
			return storageErr(err)
		}
		if open > 0 {
			return nil
		}

		task, err := findTask(tx, blocker.TaskID)
		if err != nil {
			return err
		}
		if task.Status != constants.TaskStatusBlocked {
			return nil
		}
		next, err := Transition(task.Status, EventResume)
		if err != nil {
			return err
		}
		return e.updateTask(tx, task, map[string]any{
			"status":           next,
			"last_update_time": ts,
		})
	})
	if err != nil {
		return err
	}

	e.log.Info("blocker resolved", "blocker", blockerID)
	return nil
}

// ResetToSampleData destructively replaces every stored entity with the
// given dataset. It drops ALL data; the HTTP layer gates it behind the
// manager role and an explicit confirmation phrase.
func (e *Engine) ResetToSampleData(ctx context.Context, ds Dataset) error {
	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []any{
			&models.Employee{}, &models.Task{}, &models.Activity{},
			&models.Blocker{}, &models.Screenshot{},
		} {
			wipe := tx.Session(&gorm.Session{AllowGlobalUpdate: true, NewDB: true})
			if err := wipe.Delete(model).Error; err != nil {
				return storageErr(err)
			}
		}

		if len(ds.Employees) > 0 {
			if err := tx.Create(&ds.Employees).Error; err != nil {
				return storageErr(err)
			}
		}
		if len(ds.Tasks) > 0 {
			if err := tx.Create(&ds.Tasks).Error; err != nil {
				return storageErr(err)
			}
		}
		if len(ds.Activities) > 0 {
			if err := tx.Create(&ds.Activities).Error; err != nil {
				return storageErr(err)
			}
		}
		if len(ds.Blockers) > 0 {
			if err := tx.Create(&ds.Blockers).Error; err != nil {
				return storageErr(err)
			}
		}
		if len(ds.Screenshots) > 0 {
			if err := tx.Create(&ds.Screenshots).Error; err != nil {
				return storageErr(err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	e.log.Info("database reset to sample data",
		"employees", len(ds.Employees),
		"tasks", len(ds.Tasks))
	return nil
}

func findTask(tx *gorm.DB, id string) (*models.Task, error) {
	var task models.Task
	if err := tx.Where("id = ?", id).First(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: task %s", ErrNotFound, id)
		}
		return nil, storageErr(err)
	}
	return &task, nil
}

// updateTask applies fields as a compare-and-swap on the task's version.
// Zero rows affected means another writer got there first.
func (e *Engine) updateTask(tx *gorm.DB, task *models.Task, fields map[string]any) error {
	if e.beforeWrite != nil {
		e.beforeWrite(tx)
	}
	fields["version"] = task.Version + 1
	res := tx.Model(&models.Task{}).
		Where("id = ? AND version = ?", task.ID, task.Version).
		Updates(fields)
	if res.Error != nil {
		return storageErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: task %s was modified concurrently", ErrConflict, task.ID)
	}
	return nil
}

func storageErr(err error) error {
	return fmt.Errorf("%w: %w", ErrStorage, err)
}
