// internal/app/system/auditlog/logger.go

// Package auditlog records who did what. Recording is strictly
// best-effort: a failed activity write is logged and swallowed so the
// operation that triggered it still succeeds.
package auditlog

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/letkeeper/letkeeper/internal/app/store/activity"
)

// Recorder persists one activity entry. Satisfied by *activity.Store.
type Recorder interface {
	Record(ctx context.Context, userID primitive.ObjectID, action, target string, metadata map[string]any) error
}

// Logger provides convenience methods for recording activity events.
// A nil Logger is a no-op, which lets tests skip audit wiring.
type Logger struct {
	store  Recorder
	zapLog *zap.Logger
}

// New creates a new audit Logger.
func New(store Recorder, zapLog *zap.Logger) *Logger {
	return &Logger{store: store, zapLog: zapLog}
}

// Record persists an activity entry. Persistence failures are logged
// and dropped; Record never propagates an error to the caller.
func (l *Logger) Record(ctx context.Context, userID primitive.ObjectID, action, target string, metadata map[string]any) {
	if l == nil || l.store == nil {
		return
	}
	if err := l.store.Record(ctx, userID, action, target, metadata); err != nil {
		l.zapLog.Error("failed to store activity entry",
			zap.Error(err),
			zap.String("action", action),
			zap.String("target", target),
			zap.String("user_id", userID.Hex()),
		)
	}
}

// Login records a successful sign-in.
func (l *Logger) Login(ctx context.Context, userID primitive.ObjectID) {
	l.Record(ctx, userID, activity.ActionLogin, "", nil)
}

// Logout records a sign-out.
func (l *Logger) Logout(ctx context.Context, userID primitive.ObjectID) {
	l.Record(ctx, userID, activity.ActionLogout, "", nil)
}

// View records a read of the named target.
func (l *Logger) View(ctx context.Context, userID primitive.ObjectID, target string) {
	l.Record(ctx, userID, activity.ActionView, target, nil)
}

// Created records creation of the named target.
func (l *Logger) Created(ctx context.Context, userID primitive.ObjectID, target string) {
	l.Record(ctx, userID, activity.ActionCreate, target, nil)
}

// Updated records modification of the named target.
func (l *Logger) Updated(ctx context.Context, userID primitive.ObjectID, target string) {
	l.Record(ctx, userID, activity.ActionUpdate, target, nil)
}

// Deleted records removal of the named target.
func (l *Logger) Deleted(ctx context.Context, userID primitive.ObjectID, target string) {
	l.Record(ctx, userID, activity.ActionDelete, target, nil)
}

// AccountAdded records creation of a staff account.
func (l *Logger) AccountAdded(ctx context.Context, userID primitive.ObjectID, target string) {
	l.Record(ctx, userID, activity.ActionAddAccount, target, nil)
}
