package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/restaurant-pos/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReadThrough is the cache protocol shared by every getX operation. Each
// entity supplies the four functions; Load supplies the scope.
//
// A populated local scope is authoritative and is never refreshed, even when
// every row in it has been deleted locally. An empty one is filled from the
// remote once and then re-read, so hits and misses return the same shape.
type ReadThrough[M any, V any] struct {
	Entity string

	// Present reports whether the scope holds any row, deleted ones included.
	// Nil treats an empty query result as a miss.
	Present func(ctx context.Context, scope string) (bool, error)

	Query   func(ctx context.Context, scope string) ([]M, error)
	Fetch   func(ctx context.Context, scope string) ([]M, error)
	Persist func(ctx context.Context, scope string, rows []M) error
	Enrich  func(rows []M) []V

	// Filled is called after a miss was filled from the remote. Optional.
	Filled func(scope string, count int)
}

// Load never fails past its boundary: on error it returns an empty slice
// together with a *SyncError. A partial insert still returns the rows that
// made it, plus the error.
func (rt ReadThrough[M, V]) Load(ctx context.Context, scope string) ([]V, error) {
	log := utils.InfoLogger.WithFields(logrus.Fields{"entity": rt.Entity, "scope": scope})

	local, err := rt.Query(ctx, scope)
	if err != nil {
		utils.ErrorLogger.WithFields(logrus.Fields{"entity": rt.Entity, "scope": scope}).Errorf("Local query failed: %v", err)
		return []V{}, newSyncError(KindStorage, rt.Entity, "failed to read local cache", err)
	}
	if len(local) > 0 {
		return rt.enrich(local), nil
	}
	if rt.Present != nil {
		present, err := rt.Present(ctx, scope)
		if err != nil {
			utils.ErrorLogger.WithFields(logrus.Fields{"entity": rt.Entity, "scope": scope}).Errorf("Local existence check failed: %v", err)
			return []V{}, newSyncError(KindStorage, rt.Entity, "failed to read local cache", err)
		}
		if present {
			log.Debug("Only deleted rows cached, remote skipped")
			return []V{}, nil
		}
	}

	log.Info("Local cache empty, fetching from remote")
	fetched, err := rt.Fetch(ctx, scope)
	if err != nil {
		utils.ErrorLogger.WithFields(logrus.Fields{"entity": rt.Entity, "scope": scope}).Errorf("Remote fetch failed: %v", err)
		return []V{}, newSyncError(remoteKind(err), rt.Entity, "failed to fetch from remote", err)
	}

	var partial error
	if len(fetched) > 0 {
		if err := rt.Persist(ctx, scope, fetched); err != nil {
			if KindOf(err) != KindPartialInsert {
				utils.ErrorLogger.WithFields(logrus.Fields{"entity": rt.Entity, "scope": scope}).Errorf("Persist failed: %v", err)
				return []V{}, asSyncError(err, KindStorage, rt.Entity, "failed to store remote records")
			}
			utils.ErrorLogger.WithFields(logrus.Fields{"entity": rt.Entity, "scope": scope}).Warnf("Partial insert: %v", err)
			partial = err
		}
	}

	local, err = rt.Query(ctx, scope)
	if err != nil {
		return []V{}, newSyncError(KindStorage, rt.Entity, "failed to re-read local cache", err)
	}
	log.WithField("count", len(local)).Info("Local cache filled")
	if rt.Filled != nil {
		rt.Filled(scope, len(local))
	}
	return rt.enrich(local), partial
}

func (rt ReadThrough[M, V]) enrich(rows []M) []V {
	out := rt.Enrich(rows)
	if out == nil {
		return []V{}
	}
	return out
}

func remoteKind(err error) ErrorKind {
	if errors.Is(err, ErrMalformedResponse) {
		return KindMalformedResponse
	}
	return KindRemote
}

func asSyncError(err error, kind ErrorKind, op, message string) *SyncError {
	var se *SyncError
	if errors.As(err, &se) {
		return se
	}
	return newSyncError(kind, op, message, err)
}

// anyRow builds a Present check for model M scoped by column.
func anyRow[M any](db *gorm.DB, column string) func(ctx context.Context, scope string) (bool, error) {
	return func(ctx context.Context, scope string) (bool, error) {
		var n int64
		err := db.WithContext(ctx).Unscoped().
			Model(new(M)).
			Where(map[string]interface{}{column: scope}).
			Count(&n).Error
		return n > 0, err
	}
}

// insertIgnore writes rows as one all-or-nothing batch, leaving existing keys
// untouched so local soft deletes are never resurrected. If the batch fails
// it retries row by row and reports the rows that still fail.
func insertIgnore[M any](ctx context.Context, db *gorm.DB, entity string, rows []M) error {
	if len(rows) == 0 {
		return nil
	}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{DoNothing: true}).
			Omit(clause.Associations).
			Create(&rows).Error
	})
	if err == nil {
		return nil
	}
	utils.ErrorLogger.WithField("entity", entity).Errorf("Bulk insert failed, inserting one by one: %v", err)

	var errs []error
	for i := range rows {
		if err := insertOne(ctx, db, &rows[i]); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return newSyncError(KindPartialInsert, entity,
			fmt.Sprintf("%d of %d records failed to insert", len(errs), len(rows)), errors.Join(errs...))
	}
	return nil
}

func insertOne(ctx context.Context, db *gorm.DB, row interface{}) error {
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Omit(clause.Associations).
		Create(row).Error
}
