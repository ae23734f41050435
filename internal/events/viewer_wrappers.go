package events

import "auditstream/internal/models"

const (
	ActionViewerConnected    = "viewer.connected"
	ActionViewerSubscribed   = "viewer.subscribed"
	ActionViewerDisconnected = "viewer.disconnected"
)

// ViewerConnected records a new push channel connection.
func (e *Emitter) ViewerConnected(connID string, userID string, remoteAddr string) {
	if e == nil {
		return
	}

	e.Emit(models.StreamEvent{
		Action: ActionViewerConnected,
		ConnID: connID,
		UserID: userID,
		Props: map[string]any{
			"remoteAddr": remoteAddr,
		},
	})
}

// ViewerSubscribed records a topic join.
func (e *Emitter) ViewerSubscribed(connID string, userID string, topic string) {
	if e == nil {
		return
	}

	e.Emit(models.StreamEvent{
		Action: ActionViewerSubscribed,
		ConnID: connID,
		UserID: userID,
		Topic:  topic,
	})
}

// ViewerDisconnected records the end of a connection.
func (e *Emitter) ViewerDisconnected(connID string, userID string, reason string) {
	if e == nil {
		return
	}

	e.Emit(models.StreamEvent{
		Action: ActionViewerDisconnected,
		ConnID: connID,
		UserID: userID,
		Props: map[string]any{
			"reason": reason,
		},
	})
}
