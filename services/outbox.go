package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/restaurant-pos/models"
	"github.com/yeremiapane/restaurant-pos/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OutboxMetrics counts replay activity since start.
type OutboxMetrics struct {
	Enqueued    int64     `json:"enqueued"`
	Delivered   int64     `json:"delivered"`
	Failures    int64     `json:"failures"`
	GaveUp      int64     `json:"gaveUp"`
	LastFlush   time.Time `json:"lastFlush"`
	AvgReplayMs int64     `json:"avgReplayMs"`
}

// FlushReport describes one replay pass.
type FlushReport struct {
	Online    bool   `json:"online"`
	Attempted int    `json:"attempted"`
	Delivered int    `json:"delivered"`
	Remaining int64  `json:"remaining"`
	StoppedAt string `json:"stoppedAt,omitempty"`
}

type OutboxCounts struct {
	Pending int64
	Failed  int64
}

// Outbox stores remote mutations that could not be delivered and replays
// them in creation order.
type Outbox struct {
	db          *gorm.DB
	remote      *RemoteClient
	probe       ConnectivityProbe
	MaxAttempts int

	metrics OutboxMetrics
	mutex   sync.Mutex
	flushMu sync.Mutex
}

func NewOutbox(db *gorm.DB, remote *RemoteClient, probe ConnectivityProbe, maxAttempts int) *Outbox {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &Outbox{
		db:          db,
		remote:      remote,
		probe:       probe,
		MaxAttempts: maxAttempts,
	}
}

// Enqueue records a mutation. A pending entry for the same method and path is
// updated in place so only the latest body is replayed.
func (o *Outbox) Enqueue(ctx context.Context, entity, recordID, method, path string, body interface{}, cause error) error {
	var encoded *string
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode outbox body: %w", err)
		}
		s := string(raw)
		encoded = &s
	}
	var lastErr *string
	if cause != nil {
		msg := cause.Error()
		lastErr = &msg
	}

	db := o.db.WithContext(ctx)
	var existing models.SyncOutbox
	err := db.Where(map[string]interface{}{
		"method": method,
		"path":   path,
		"status": models.OutboxPending,
	}).First(&existing).Error
	if err == nil {
		return db.Model(&existing).Updates(map[string]interface{}{
			"body":      encoded,
			"lastError": lastErr,
		}).Error
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return err
	}
	entry := models.SyncOutbox{
		ID:        id.String(),
		Entity:    entity,
		RecordID:  recordID,
		Method:    method,
		Path:      path,
		Body:      encoded,
		Status:    models.OutboxPending,
		LastError: lastErr,
	}
	if err := db.Create(&entry).Error; err != nil {
		return err
	}

	o.mutex.Lock()
	o.metrics.Enqueued++
	o.mutex.Unlock()
	utils.InfoLogger.WithFields(logrus.Fields{"entity": entity, "id": recordID}).Infof("Queued %s %s for replay", method, path)
	return nil
}

// HasPending reports whether a mutation of the record is still waiting for
// replay.
func (o *Outbox) HasPending(ctx context.Context, entity, recordID string) (bool, error) {
	var n int64
	err := o.db.WithContext(ctx).Model(&models.SyncOutbox{}).
		Where(map[string]interface{}{
			"entity":   entity,
			"recordId": recordID,
			"status":   models.OutboxPending,
		}).
		Count(&n).Error
	return n > 0, err
}

// Flush replays pending entries while the remote is reachable. It stops at
// the first failure so later mutations of a record never overtake earlier ones.
func (o *Outbox) Flush(ctx context.Context) (FlushReport, error) {
	o.flushMu.Lock()
	defer o.flushMu.Unlock()

	report := FlushReport{Online: o.probe.Reachable(ctx)}
	if report.Online {
		if err := o.replay(ctx, &report); err != nil {
			return report, err
		}
	}

	counts, err := o.Counts(ctx)
	if err != nil {
		return report, err
	}
	report.Remaining = counts.Pending

	o.mutex.Lock()
	o.metrics.LastFlush = time.Now()
	o.mutex.Unlock()
	return report, nil
}

func (o *Outbox) replay(ctx context.Context, report *FlushReport) error {
	db := o.db.WithContext(ctx)

	var entries []models.SyncOutbox
	if err := db.Where(map[string]interface{}{"status": models.OutboxPending}).
		Order(clause.OrderBy{Columns: []clause.OrderByColumn{
			{Column: clause.Column{Name: "createdAt"}},
			{Column: clause.Column{Name: "id"}},
		}}).
		Limit(100).
		Find(&entries).Error; err != nil {
		return fmt.Errorf("failed to load outbox: %w", err)
	}

	for _, entry := range entries {
		report.Attempted++
		start := time.Now()

		var body interface{}
		if entry.Body != nil {
			body = json.RawMessage(*entry.Body)
		}
		sendErr := o.remote.Send(ctx, entry.Method, entry.Path, body)
		o.recordTiming(time.Since(start))

		if sendErr == nil {
			now := time.Now()
			if err := db.Model(&entry).Updates(map[string]interface{}{
				"status":      models.OutboxDone,
				"attempts":    entry.Attempts + 1,
				"processedAt": &now,
			}).Error; err != nil {
				return err
			}
			report.Delivered++
			o.mutex.Lock()
			o.metrics.Delivered++
			o.mutex.Unlock()
			continue
		}

		attempts := entry.Attempts + 1
		status := models.OutboxPending
		if attempts >= o.MaxAttempts {
			status = models.OutboxFailed
		}
		msg := sendErr.Error()
		if err := db.Model(&entry).Updates(map[string]interface{}{
			"status":    status,
			"attempts":  attempts,
			"lastError": &msg,
		}).Error; err != nil {
			return err
		}

		o.mutex.Lock()
		o.metrics.Failures++
		if status == models.OutboxFailed {
			o.metrics.GaveUp++
		}
		o.mutex.Unlock()

		log := utils.ErrorLogger.WithFields(logrus.Fields{"entity": entry.Entity, "id": entry.RecordID})
		if status == models.OutboxFailed {
			log.Errorf("Giving up on %s %s after %d attempts: %v", entry.Method, entry.Path, attempts, sendErr)
			continue
		}
		log.Warnf("Replay of %s %s failed: %v", entry.Method, entry.Path, sendErr)
		report.StoppedAt = entry.ID
		break
	}
	return nil
}

func (o *Outbox) recordTiming(d time.Duration) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	n := o.metrics.Delivered + o.metrics.Failures + 1
	o.metrics.AvgReplayMs = (o.metrics.AvgReplayMs*(n-1) + d.Milliseconds()) / n
}

func (o *Outbox) Counts(ctx context.Context) (OutboxCounts, error) {
	var counts OutboxCounts
	if err := o.db.WithContext(ctx).Model(&models.SyncOutbox{}).
		Where(map[string]interface{}{"status": models.OutboxPending}).
		Count(&counts.Pending).Error; err != nil {
		return counts, err
	}
	if err := o.db.WithContext(ctx).Model(&models.SyncOutbox{}).
		Where(map[string]interface{}{"status": models.OutboxFailed}).
		Count(&counts.Failed).Error; err != nil {
		return counts, err
	}
	return counts, nil
}

func (o *Outbox) Metrics() OutboxMetrics {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	return o.metrics
}

// OutboxMonitor flushes the outbox on a fixed interval.
type OutboxMonitor struct {
	Outbox   *Outbox
	Events   Broadcaster
	StopChan chan struct{}
	Interval time.Duration
	done     chan struct{}
	started  bool
	stopOnce sync.Once
}

func NewOutboxMonitor(outbox *Outbox, interval time.Duration) *OutboxMonitor {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &OutboxMonitor{
		Outbox:   outbox,
		StopChan: make(chan struct{}),
		Interval: interval,
		done:     make(chan struct{}),
	}
}

func (om *OutboxMonitor) Start() {
	om.started = true
	go func() {
		defer close(om.done)
		ticker := time.NewTicker(om.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				om.tick()
			case <-om.StopChan:
				return
			}
		}
	}()
	utils.InfoLogger.Printf("Outbox monitor started (interval %s)", om.Interval)
}

// Stop ends the loop and waits for an in-flight pass to finish.
// Later calls are no-ops.
func (om *OutboxMonitor) Stop() {
	om.stopOnce.Do(func() {
		close(om.StopChan)
		if om.started {
			<-om.done
		}
	})
}

func (om *OutboxMonitor) tick() {
	ctx, cancel := context.WithTimeout(context.Background(), om.Interval)
	defer cancel()

	report, err := om.Outbox.Flush(ctx)
	if err != nil {
		utils.ErrorLogger.Printf("Outbox flush failed: %v", err)
		return
	}
	if report.Delivered > 0 {
		utils.InfoLogger.Printf("Outbox replayed %d mutation(s), %d remaining", report.Delivered, report.Remaining)
		if om.Events != nil {
			om.Events.Broadcast(EventOutboxReplayed, report)
		}
	}
}
