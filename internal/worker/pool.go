package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"studyflow-backend/internal/models"
	"studyflow-backend/internal/repository"
	"studyflow-backend/internal/services"
)

const importQueue = "queue:schedule-import"

// Pool consumes schedule-import jobs from Redis. Imports are quick but
// isolated from the request path so a slow parse or a retry storm never
// blocks an upload response.
type Pool struct {
	redis           *redis.Client
	scheduleService *services.ScheduleService
	jobRepo         *repository.JobRepo
	workerCount     int
	stopChan        chan struct{}
}

func NewPool(
	redisClient *redis.Client,
	scheduleService *services.ScheduleService,
	jobRepo *repository.JobRepo,
	workerCount int,
) *Pool {
	return &Pool{
		redis:           redisClient,
		scheduleService: scheduleService,
		jobRepo:         jobRepo,
		workerCount:     workerCount,
		stopChan:        make(chan struct{}),
	}
}

func (p *Pool) Start() {
	for i := 0; i < p.workerCount; i++ {
		go p.worker(i)
	}
	log.Printf("Started %d worker goroutines", p.workerCount)
}

func (p *Pool) Stop() {
	close(p.stopChan)
}

func (p *Pool) worker(id int) {
	for {
		select {
		case <-p.stopChan:
			log.Printf("Worker %d shutting down", id)
			return
		default:
		}

		ctx := context.Background()

		// BLPOP with 30s timeout
		result, err := p.redis.BLPop(ctx, 30*time.Second, importQueue).Result()
		if err != nil {
			continue // Timeout or error, retry
		}
		if len(result) < 2 {
			continue
		}

		var job models.Job
		if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
			log.Printf("Worker %d: failed to parse job: %v", id, err)
			continue
		}

		// Try to acquire lock
		lockKey := fmt.Sprintf("job_lock:%s", job.ID.String())
		locked, err := p.redis.SetNX(ctx, lockKey, "1", 10*time.Minute).Result()
		if err != nil || !locked {
			continue // Another worker has this job
		}

		log.Printf("Worker %d: processing job %s (type: %s)", id, job.ID, job.Type)

		p.jobRepo.UpdateStatus(ctx, job.ID, "processing")
		p.publish(ctx, job.UserID, models.WSMessage{
			Type: "status_update",
			Payload: models.StatusUpdate{
				JobID:    job.ID,
				Step:     1,
				StepName: "Reading workbook",
			},
		})

		var processErr error
		switch job.Type {
		case "schedule-import":
			processErr = p.processImport(ctx, &job)
		default:
			processErr = fmt.Errorf("unknown job type: %s", job.Type)
		}

		if processErr != nil {
			p.handleFailure(ctx, &job, processErr)
		} else {
			p.handleSuccess(ctx, &job)
		}

		p.redis.Del(ctx, lockKey)
	}
}

func (p *Pool) processImport(ctx context.Context, job *models.Job) error {
	var config models.ImportJobConfig
	if err := json.Unmarshal(job.ConfigJSON, &config); err != nil {
		return fmt.Errorf("invalid job config: %w", err)
	}

	p.publish(ctx, job.UserID, models.WSMessage{
		Type: "status_update",
		Payload: models.StatusUpdate{
			JobID:    job.ID,
			Step:     2,
			StepName: "Parsing course schedules",
		},
	})

	imp, err := p.scheduleService.ImportFromFile(ctx, job.UserID, config.ImportName, config.FilePath)
	if err != nil {
		return err
	}
	job.ReferenceID = imp.ID

	// The workbook is only needed for the import itself.
	if err := os.Remove(config.FilePath); err != nil {
		log.Printf("Failed to remove uploaded file %s: %v", config.FilePath, err)
	}
	return nil
}

func (p *Pool) handleSuccess(ctx context.Context, job *models.Job) {
	p.jobRepo.UpdateStatus(ctx, job.ID, "completed")

	p.publish(ctx, job.UserID, models.WSMessage{
		Type: "completed",
		Payload: models.CompletedEvent{
			JobID:      job.ID,
			ResultID:   job.ReferenceID,
			ResultType: "schedule-import",
		},
	})

	log.Printf("Job %s completed successfully", job.ID)
}

func (p *Pool) handleFailure(ctx context.Context, job *models.Job, err error) {
	job.RetryCount++
	errMsg := err.Error()

	// A structurally broken workbook will not get better on retry.
	var structural *services.StructuralError
	permanent := errors.As(err, &structural)

	if !permanent && job.RetryCount < job.MaxRetries {
		log.Printf("Job %s failed (attempt %d): %s, retrying", job.ID, job.RetryCount, errMsg)
		p.jobRepo.UpdateStatus(ctx, job.ID, "pending")
		p.jobRepo.UpdateError(ctx, job.ID, errMsg, job.RetryCount)

		// Re-queue after backoff
		jobBytes, _ := json.Marshal(job)
		backoff := time.Duration(1<<uint(job.RetryCount)) * time.Second
		time.AfterFunc(backoff, func() {
			p.redis.LPush(context.Background(), importQueue, string(jobBytes))
		})
		return
	}

	log.Printf("Job %s failed permanently: %s", job.ID, errMsg)
	p.jobRepo.UpdateStatus(ctx, job.ID, "failed")
	p.jobRepo.UpdateError(ctx, job.ID, errMsg, job.RetryCount)

	errorCode := "JOB_FAILED"
	if permanent {
		errorCode = "STRUCTURAL_ERROR"
	}
	p.publish(ctx, job.UserID, models.WSMessage{
		Type: "error",
		Payload: models.ErrorEvent{
			JobID:        job.ID,
			ErrorCode:    errorCode,
			ErrorMessage: errMsg,
		},
	})
}

func (p *Pool) publish(ctx context.Context, userID uuid.UUID, msg models.WSMessage) {
	data, _ := json.Marshal(msg)
	p.redis.Publish(ctx, fmt.Sprintf("user_updates:%s", userID.String()), string(data))
}
