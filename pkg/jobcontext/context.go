package jobcontext

import (
	"context"
	"time"
)

type KeyContext string

var (
	keySessionID   KeyContext = "session_id"
	keyUserID      KeyContext = "user_id"
	keyCheckInTime KeyContext = "checkin_start_time"
)

// CheckInMetadata holds metadata for one enrichment run
type CheckInMetadata struct {
	SessionID string
	UserID    string
	StartTime time.Time
}

// CheckInBegin derives a context for one check-in with an overall timeout
// and the identifying metadata attached
func CheckInBegin(parentCtx context.Context, sessionID, userID string, timeout time.Duration) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(parentCtx, timeout)

	ctx = context.WithValue(ctx, keySessionID, sessionID)
	ctx = context.WithValue(ctx, keyUserID, userID)
	ctx = context.WithValue(ctx, keyCheckInTime, time.Now())

	return ctx, cancel
}

// GetSessionID extracts session ID from context
func GetSessionID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(keySessionID).(string)
	return id, ok
}

// GetUserID extracts user ID from context
func GetUserID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(keyUserID).(string)
	return id, ok
}

// GetStartTime extracts the check-in start time from context
func GetStartTime(ctx context.Context) (time.Time, bool) {
	startTime, ok := ctx.Value(keyCheckInTime).(time.Time)
	return startTime, ok
}

// GetCheckInMetadata extracts all check-in metadata from context
func GetCheckInMetadata(ctx context.Context) *CheckInMetadata {
	sessionID, _ := GetSessionID(ctx)
	userID, _ := GetUserID(ctx)
	startTime, _ := GetStartTime(ctx)

	return &CheckInMetadata{
		SessionID: sessionID,
		UserID:    userID,
		StartTime: startTime,
	}
}
