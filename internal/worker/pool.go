package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"edureach-backend/internal/cache"
	"edureach-backend/internal/models"
	"edureach-backend/internal/websocket"
	"edureach-backend/internal/youtube"
)

const (
	extractionQueue = "queue:transcript-extraction"
	jobTTL          = 24 * time.Hour
	jobLockTTL      = 10 * time.Minute
)

// Pool runs background transcript extractions. Jobs arrive over a redis
// list; progress and completion events are published on the job's pub/sub
// channel for websocket delivery.
type Pool struct {
	redis       *redis.Client
	yt          *youtube.Service
	cache       cache.Store
	cacheTTL    time.Duration
	workerCount int
	stopChan    chan struct{}
}

func NewPool(redisClient *redis.Client, yt *youtube.Service, cacheStore cache.Store, cacheTTL time.Duration, workerCount int) *Pool {
	return &Pool{
		redis:       redisClient,
		yt:          yt,
		cache:       cacheStore,
		cacheTTL:    cacheTTL,
		workerCount: workerCount,
		stopChan:    make(chan struct{}),
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
		result, err := p.redis.BLPop(ctx, 30*time.Second, extractionQueue).Result()
		if err != nil {
			continue // Timeout or error, retry
		}

		if len(result) < 2 {
			continue
		}

		var job models.ExtractionJob
		if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
			log.Printf("Worker %d: failed to parse job: %v", id, err)
			continue
		}

		// Try to acquire lock
		lockKey := fmt.Sprintf("job_lock:%s", job.ID.String())
		locked, err := p.redis.SetNX(ctx, lockKey, "1", jobLockTTL).Result()
		if err != nil || !locked {
			continue // Another worker has this job
		}

		log.Printf("Worker %d: processing job %s (url: %s)", id, job.ID, job.URL)
		p.process(ctx, &job)

		p.redis.Del(ctx, lockKey)
	}
}

func (p *Pool) process(ctx context.Context, job *models.ExtractionJob) {
	job.Status = "processing"
	p.saveJob(ctx, job)
	p.publish(ctx, job.ID, models.WSMessage{
		Type: "status_update",
		Payload: models.StatusUpdate{
			JobID:    job.ID,
			Step:     1,
			StepName: "Extracting transcript",
		},
	})

	data := p.yt.ExtractComplete(ctx, job.URL, job.Language)

	now := time.Now()
	job.CompletedAt = &now
	job.Result = &data

	if data.Success {
		job.Status = "completed"
		language := job.Language
		if language == "" {
			language = "en"
		}
		if b, err := json.Marshal(data); err == nil {
			p.cache.Set(ctx, cache.TranscriptKey(job.URL, language), b, p.cacheTTL)
		}
	} else {
		job.Status = "failed"
		job.Error = data.Error
		if job.Error == "" && data.Transcript != nil {
			job.Error = data.Transcript.Error
		}
	}
	p.saveJob(ctx, job)

	if data.Success {
		p.publish(ctx, job.ID, models.WSMessage{
			Type: "completed",
			Payload: models.CompletedEvent{
				JobID:   job.ID,
				Success: true,
				VideoID: data.VideoID,
			},
		})
	} else {
		p.publish(ctx, job.ID, models.WSMessage{
			Type: "error",
			Payload: models.ErrorEvent{
				JobID:        job.ID,
				ErrorMessage: job.Error,
			},
		})
	}
}

func (p *Pool) saveJob(ctx context.Context, job *models.ExtractionJob) {
	b, err := json.Marshal(job)
	if err != nil {
		log.Printf("failed to encode job %s: %v", job.ID, err)
		return
	}
	if err := p.redis.Set(ctx, "job:"+job.ID.String(), b, jobTTL).Err(); err != nil {
		log.Printf("failed to save job %s: %v", job.ID, err)
	}
}

func (p *Pool) publish(ctx context.Context, jobID uuid.UUID, msg models.WSMessage) {
	b, err := json.Marshal(msg)
	if err != nil {
		return
	}
	p.redis.Publish(ctx, websocket.JobChannel(jobID), b)
}
