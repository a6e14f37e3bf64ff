package importer

import (
	"context"
	"log/slog"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/minjae-dev/asset-management/internal/asset"
	"github.com/minjae-dev/asset-management/internal/assignment"
	"github.com/minjae-dev/asset-management/internal/employee"
)

type rowJob struct {
	row     Row
	results chan<- rowResult
}

type rowResult struct {
	line   int
	errors []RowError
}

type Worker struct {
	ID         int
	WorkerPool chan chan rowJob
	JobChannel chan rowJob
	Logger     *slog.Logger
}

func NewWorker(id int, workerPool chan chan rowJob, logger *slog.Logger) *Worker {
	return &Worker{
		ID:         id,
		WorkerPool: workerPool,
		JobChannel: make(chan rowJob),
		Logger:     logger,
	}
}

func (w *Worker) Start(ctx context.Context, wg *sync.WaitGroup, processFunc func(rowJob)) {
	wg.Add(1)
	go func() {
		defer wg.Done()

		for {

			w.WorkerPool <- w.JobChannel

			select {
			case job := <-w.JobChannel:
				w.Logger.Debug("worker validating row", "worker_id", w.ID, "row", job.row.Line)
				processFunc(job)
			case <-ctx.Done():
				w.Logger.Debug("worker shutting down", "worker_id", w.ID)
				return
			}
		}
	}()
}

// EmployeeDirectory resolves employee references during validation.
type EmployeeDirectory interface {
	GetByID(id string) (*employee.Employee, error)
}

// AssetDirectory resolves asset references during validation.
type AssetDirectory interface {
	GetByID(id string) (*asset.Asset, error)
}

// Validator checks import rows against the directories on a bounded
// worker pool, so reference lookups for large files run concurrently.
type Validator struct {
	employees EmployeeDirectory
	assets    AssetDirectory
	logger    *slog.Logger

	jobQueue   chan rowJob
	workerPool chan chan rowJob
	maxWorkers int
	ctx        context.Context
	cancel     context.CancelFunc
	wg         sync.WaitGroup
	once       sync.Once
}

type ValidatorConfig struct {
	MaxWorkers   int
	JobQueueSize int
}

func NewValidator(employees EmployeeDirectory, assets AssetDirectory, config ValidatorConfig, logger *slog.Logger) *Validator {
	ctx, cancel := context.WithCancel(context.Background())

	maxWorkers := config.MaxWorkers
	if maxWorkers <= 0 {
		maxWorkers = 4
	}

	jobQueueSize := config.JobQueueSize
	if jobQueueSize <= 0 {
		jobQueueSize = 100
	}

	v := &Validator{
		employees: employees,
		assets:    assets,
		logger:    logger,

		maxWorkers: maxWorkers,
		jobQueue:   make(chan rowJob, jobQueueSize),
		workerPool: make(chan chan rowJob, maxWorkers),
		ctx:        ctx,
		cancel:     cancel,
	}

	v.startWorkerPool()

	return v
}

func (v *Validator) startWorkerPool() {
	v.once.Do(func() {

		for i := 0; i < v.maxWorkers; i++ {
			worker := NewWorker(i, v.workerPool, v.logger)
			worker.Start(v.ctx, &v.wg, v.validateJob)
		}

		go v.dispatch()

		v.logger.Info("import validator worker pool started",
			"max_workers", v.maxWorkers,
			"queue_size", cap(v.jobQueue))
	})
}

func (v *Validator) dispatch() {
	defer v.wg.Done()
	v.wg.Add(1)

	for {
		select {
		case job := <-v.jobQueue:

			select {
			case jobChannel := <-v.workerPool:

				select {
				case jobChannel <- job:

				case <-v.ctx.Done():
					v.logger.Info("dispatcher shutting down")
					return
				}
			case <-v.ctx.Done():
				v.logger.Info("dispatcher shutting down")
				return
			}
		case <-v.ctx.Done():
			v.logger.Info("dispatcher shutting down")
			return
		}
	}
}

func (v *Validator) Shutdown() {
	v.logger.Info("shutting down import validator")
	v.cancel()
	v.wg.Wait()
	v.logger.Info("import validator shutdown complete")
}

// ValidateRows fans the rows out to the worker pool and collects every
// violation, sorted by row. Cross-row checks run on the caller's
// goroutine afterwards.
func (v *Validator) ValidateRows(rows []Row) []RowError {
	results := make(chan rowResult, len(rows))
	for _, row := range rows {
		v.jobQueue <- rowJob{row: row, results: results}
	}

	rowErrors := make([]RowError, 0)
	for range rows {
		res := <-results
		rowErrors = append(rowErrors, res.errors...)
	}

	rowErrors = append(rowErrors, crossRowErrors(rows)...)

	sort.Slice(rowErrors, func(i, j int) bool {
		if rowErrors[i].Row != rowErrors[j].Row {
			return rowErrors[i].Row < rowErrors[j].Row
		}
		return rowErrors[i].Field < rowErrors[j].Field
	})
	return rowErrors
}

func (v *Validator) validateJob(job rowJob) {
	job.results <- rowResult{line: job.row.Line, errors: v.validateRow(job.row)}
}

func (v *Validator) validateRow(row Row) []RowError {
	var errs []RowError
	fail := func(field, message string) {
		errs = append(errs, RowError{Row: row.Line, Field: field, Message: message})
	}

	if row.EmployeeID == "" {
		fail("employee_id", "employee_id is required")
	}
	if row.AssetID == "" {
		fail("asset_id", "asset_id is required")
	}

	if row.AssignedDate == "" {
		fail("assigned_date", "assigned_date is required")
	} else if !isISODate(row.AssignedDate) {
		fail("assigned_date", "assigned_date must be a date in YYYY-MM-DD format")
	}

	status := assignment.StatusInUse
	if row.Status != "" {
		parsed, ok := assignment.ParseStatus(row.Status)
		if !ok {
			fail("status", "unknown status: "+row.Status)
		} else {
			status = parsed
		}
	}

	if row.ReturnDate != "" {
		if !isISODate(row.ReturnDate) {
			fail("return_date", "return_date must be a date in YYYY-MM-DD format")
		} else if isISODate(row.AssignedDate) && row.ReturnDate < row.AssignedDate {
			fail("return_date", "return_date cannot be before assigned_date")
		}
		if status != assignment.StatusReturned {
			fail("return_date", "return_date is only allowed when status is returned")
		}
	} else if status == assignment.StatusReturned {
		fail("return_date", "returned rows need a return_date")
	}

	open := status != assignment.StatusReturned

	if row.EmployeeID != "" {
		emp, err := v.employees.GetByID(row.EmployeeID)
		if err != nil {
			fail("employee_id", "unknown employee: "+row.EmployeeID)
		} else if open && !emp.IsActive {
			fail("employee_id", "employee is inactive: "+row.EmployeeID)
		}
	}

	if row.AssetID != "" {
		ast, err := v.assets.GetByID(row.AssetID)
		if err != nil {
			fail("asset_id", "unknown asset: "+row.AssetID)
		} else if open && !ast.IsAssignable() {
			fail("asset_id", "asset is not available: "+row.AssetID)
		}
	}

	return errs
}

// crossRowErrors catches conflicts between rows of the same file: an
// asset can be open in at most one row.
func crossRowErrors(rows []Row) []RowError {
	var errs []RowError

	openAsset := make(map[string]int)
	for _, row := range rows {
		if row.AssetID == "" {
			continue
		}
		status := assignment.StatusInUse
		if row.Status != "" {
			status, _ = assignment.ParseStatus(row.Status)
		}
		if status == assignment.StatusReturned {
			continue
		}
		if first, ok := openAsset[row.AssetID]; ok {
			errs = append(errs, RowError{
				Row:     row.Line,
				Field:   "asset_id",
				Message: "asset already open in row " + strconv.Itoa(first),
			})
			continue
		}
		openAsset[row.AssetID] = row.Line
	}

	return errs
}

func isISODate(value string) bool {
	_, err := time.Parse(assignment.DateLayout, value)
	return err == nil
}
