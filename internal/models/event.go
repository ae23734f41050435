package models

import "time"

// StreamEvent is a lifecycle entry for a push channel viewer.
type StreamEvent struct {
	TimeStamp time.Time `json:"timestamp" bson:"timestamp"`

	Action string `bson:"action" json:"action"`

	ConnID string `bson:"connId" json:"connId"`
	UserID string `bson:"userId,omitempty" json:"userId,omitempty"`
	Topic  string `bson:"topic,omitempty" json:"topic,omitempty"`

	Props map[string]any `bson:"props,omitempty" json:"props,omitempty"`
}
