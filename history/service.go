package history

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/John-Hatton/Inventory/model"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Entry holds one mutation to be logged.
type Entry struct {
	TraceID  string
	Entity   string
	EntityID int64
	Action   string
	Payload  interface{}
}

// Service records entity mutations asynchronously in batches. Record is
// fire-and-forget; a full channel drops the entry rather than blocking
// the mutation path.
type Service struct {
	db     *gorm.DB
	ch     chan *model.ChangeLog
	stopCh chan struct{}
	wg     sync.WaitGroup
	logger *zap.Logger
}

// New creates a history Service and starts its background worker.
func New(db *gorm.DB, logger *zap.Logger) *Service {
	svc := &Service{
		db:     db,
		ch:     make(chan *model.ChangeLog, 256),
		stopCh: make(chan struct{}),
		logger: logger,
	}
	svc.wg.Add(1)
	go svc.worker()
	return svc
}

// Record enqueues a change entry for async DB write.
func (svc *Service) Record(entry Entry) {
	payload, _ := json.Marshal(entry.Payload)
	record := &model.ChangeLog{
		TraceID:  entry.TraceID,
		Entity:   entry.Entity,
		EntityID: entry.EntityID,
		Action:   entry.Action,
		Payload:  datatypes.JSON(payload),
	}
	select {
	case svc.ch <- record:
	default:
		svc.logger.Warn("history channel full, dropping entry",
			zap.String("entity", entry.Entity),
			zap.String("action", entry.Action))
	}
}

// Recent returns up to limit entries, newest first.
func (svc *Service) Recent(limit int) ([]model.ChangeLog, error) {
	if limit <= 0 {
		limit = 50
	}
	var logs []model.ChangeLog
	err := svc.db.Order("id DESC").Limit(limit).Find(&logs).Error
	return logs, err
}

// Stop flushes remaining entries and shuts down the worker. It blocks
// until the worker goroutine has finished.
func (svc *Service) Stop(_ context.Context) {
	select {
	case <-svc.stopCh:
	default:
		close(svc.stopCh)
	}
	svc.wg.Wait()
}

func (svc *Service) worker() {
	defer svc.wg.Done()
	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()

	batch := make([]*model.ChangeLog, 0, 50)

	flush := func() {
		if len(batch) == 0 {
			return
		}
		if err := svc.db.Create(&batch).Error; err != nil {
			svc.logger.Error("history batch write failed", zap.Error(err))
		}
		batch = batch[:0]
	}

	for {
		select {
		case entry := <-svc.ch:
			batch = append(batch, entry)
			if len(batch) >= 50 {
				flush()
			}
		case <-ticker.C:
			flush()
		case <-svc.stopCh:
			// Drain remaining entries.
			for {
				select {
				case entry := <-svc.ch:
					batch = append(batch, entry)
				default:
					flush()
					return
				}
			}
		}
	}
}
