package ws

import "time"

// ConnInfo identifies one websocket connection in events and logs.
type ConnInfo struct {
	ConnID      string
	ProfileID   string
	DeviceID    string
	IP          string
	RequestID   string
	TraceID     string
	ConnectedAt time.Time
}

func (info ConnInfo) payload(event, reason string) map[string]interface{} {
	duration := int64(0)
	if !info.ConnectedAt.IsZero() {
		duration = time.Since(info.ConnectedAt).Milliseconds()
	}
	return map[string]interface{}{
		"ws": map[string]interface{}{
			"kind":        "messages",
			"event":       event,
			"conn_id":     info.ConnID,
			"duration_ms": duration,
			"reason":      reason,
		},
		"identity": map[string]interface{}{
			"profile_id": info.ProfileID,
			"device_id":  info.DeviceID,
			"ip":         info.IP,
		},
	}
}
