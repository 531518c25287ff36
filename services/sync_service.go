package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/restaurant-pos/utils"
	"gorm.io/gorm"
)

// Broadcaster pushes change notifications to connected clients.
type Broadcaster interface {
	Broadcast(event string, data interface{})
}

// Push event names.
const (
	EventCacheFilled           = "cache_filled"
	EventRecordDeleted         = "record_deleted"
	EventCategoryStatusUpdated = "category_status_updated"
	EventSessionChanged        = "session_changed"
	EventOutboxReplayed        = "outbox_replayed"
)

// SyncService is the set of entity sync handlers. Reads go through the local
// cache first; writes land locally and are then pushed to the remote on a
// best-effort basis.
type SyncService struct {
	db       *gorm.DB
	remote   *RemoteClient
	probe    ConnectivityProbe
	session  SessionStore
	validate *validator.Validate

	// FanOutLimit bounds concurrent child fetches when filling dishes.
	FanOutLimit int
	// Outbox receives mutations that could not reach the remote. Nil disables it.
	Outbox *Outbox
	// Events receives push notifications. Nil disables them.
	Events Broadcaster
}

func NewSyncService(db *gorm.DB, remote *RemoteClient, probe ConnectivityProbe, session SessionStore) *SyncService {
	return &SyncService{
		db:          db,
		remote:      remote,
		probe:       probe,
		session:     session,
		validate:    validator.New(),
		FanOutLimit: 4,
	}
}

func (s *SyncService) emit(event string, data interface{}) {
	if s.Events != nil {
		s.Events.Broadcast(event, data)
	}
}

func (s *SyncService) filled(entity string) func(scope string, count int) {
	return func(scope string, count int) {
		s.emit(EventCacheFilled, map[string]interface{}{
			"entity": entity,
			"scope":  scope,
			"count":  count,
		})
	}
}

// mutation describes one local write and its remote counterpart.
type mutation struct {
	op     string
	entity string
	label  string
	id     string

	apply func(tx *gorm.DB) *gorm.DB

	method string
	path   string
	body   interface{}

	message string
	event   string
}

// mutate applies m locally, then tries the remote. The result only reflects
// the local write.
func (s *SyncService) mutate(ctx context.Context, m mutation) Result {
	log := utils.InfoLogger.WithFields(logrus.Fields{"entity": m.entity, "id": m.id})

	res := m.apply(s.db.WithContext(ctx))
	if res.Error != nil {
		utils.ErrorLogger.WithFields(logrus.Fields{"entity": m.entity, "id": m.id}).Errorf("Local %s failed: %v", m.op, res.Error)
		return failure(newSyncError(KindStorage, m.op,
			fmt.Sprintf("Failed to update %s locally", strings.ToLower(m.label)), res.Error))
	}
	if res.RowsAffected == 0 {
		return failure(newSyncError(KindNotFoundLocally, m.op, m.label+" not found locally", nil))
	}

	switch {
	case !s.probe.Reachable(ctx):
		log.Infof("Offline, remote %s skipped", m.op)
		s.enqueue(ctx, m, nil)
	case s.queued(ctx, m):
		log.Infof("Earlier changes still queued, %s replayed behind them", m.op)
		s.enqueue(ctx, m, nil)
		if _, err := s.FlushOutbox(ctx); err != nil {
			utils.ErrorLogger.WithFields(logrus.Fields{"entity": m.entity, "id": m.id}).Errorf("Outbox flush after %s failed: %v", m.op, err)
		}
	default:
		if err := s.remote.Send(ctx, m.method, m.path, m.body); err != nil {
			utils.ErrorLogger.WithFields(logrus.Fields{"entity": m.entity, "id": m.id}).Errorf("Remote %s failed: %v", m.op, err)
			s.enqueue(ctx, m, err)
		} else {
			log.Infof("%s synced to remote", m.op)
		}
	}

	if m.event != "" {
		s.emit(m.event, map[string]interface{}{"entity": m.entity, "id": m.id})
	}
	return Result{Success: true, ID: m.id, Message: m.message}
}

func (s *SyncService) enqueue(ctx context.Context, m mutation, cause error) {
	if s.Outbox == nil {
		return
	}
	if err := s.Outbox.Enqueue(ctx, m.entity, m.id, m.method, m.path, m.body, cause); err != nil {
		utils.ErrorLogger.WithFields(logrus.Fields{"entity": m.entity, "id": m.id}).Errorf("Failed to queue %s: %v", m.op, err)
	}
}

// queued reports whether the record has outbox entries that must reach the
// remote before m. A failed lookup counts as queued.
func (s *SyncService) queued(ctx context.Context, m mutation) bool {
	if s.Outbox == nil {
		return false
	}
	pending, err := s.Outbox.HasPending(ctx, m.entity, m.id)
	if err != nil {
		utils.ErrorLogger.WithFields(logrus.Fields{"entity": m.entity, "id": m.id}).Errorf("Failed to check outbox: %v", err)
		return true
	}
	return pending
}

// SyncStatus summarises connectivity and the outbox backlog.
type SyncStatus struct {
	Online        bool           `json:"online"`
	OutboxEnabled bool           `json:"outboxEnabled"`
	Pending       int64          `json:"pending"`
	Failed        int64          `json:"failed"`
	Metrics       *OutboxMetrics `json:"metrics,omitempty"`
}

func (s *SyncService) SyncStatus(ctx context.Context) (SyncStatus, error) {
	status := SyncStatus{Online: s.probe.Reachable(ctx)}
	if s.Outbox == nil {
		return status, nil
	}

	status.OutboxEnabled = true
	counts, err := s.Outbox.Counts(ctx)
	if err != nil {
		return status, newSyncError(KindStorage, "syncStatus", "failed to count outbox entries", err)
	}
	status.Pending = counts.Pending
	status.Failed = counts.Failed
	metrics := s.Outbox.Metrics()
	status.Metrics = &metrics
	return status, nil
}

// FlushOutbox replays pending mutations now.
func (s *SyncService) FlushOutbox(ctx context.Context) (FlushReport, error) {
	if s.Outbox == nil {
		return FlushReport{}, newSyncError(KindValidation, "flushOutbox", "Outbox is disabled", nil)
	}
	report, err := s.Outbox.Flush(ctx)
	if err != nil {
		return report, newSyncError(KindStorage, "flushOutbox", "failed to replay outbox", err)
	}
	if report.Delivered > 0 {
		s.emit(EventOutboxReplayed, report)
	}
	return report, nil
}
