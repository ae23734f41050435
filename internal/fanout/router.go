// Package fanout routes projected records to the connections joined to a
// topic. Topics are either the broadcast feed or a single user's feed.
package fanout

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	"auditstream/internal/metrics"
	"auditstream/internal/models"

	"go.uber.org/zap"
)

const (
	TopicLatest = "latest"
	userPrefix  = "user:"

	// EventLog is the event name records are pushed under.
	EventLog = "log"

	// ReplayLimit is how many recent records a new broadcast subscriber gets.
	ReplayLimit = 10
)

func UserTopic(userID string) string {
	return userPrefix + userID
}

func topicKind(topic string) string {
	if strings.HasPrefix(topic, userPrefix) {
		return "user"
	}
	return topic
}

// Conn is a live viewer connection. Send must not block on the network.
type Conn interface {
	ID() string
	Send(event string, payload []byte) error
}

// Replayer supplies history for new broadcast subscribers, newest first.
type Replayer interface {
	Recent(ctx context.Context, n int64) ([]models.ActivityRecord, error)
}

// Router is the topic membership table. One lock covers joins, leaves and
// fan-out, so once Leave returns no further frame reaches that connection.
type Router struct {
	mu     sync.RWMutex
	topics map[string]map[string]Conn     // topic -> conn id -> conn
	joined map[string]map[string]struct{} // conn id -> topics

	replay Replayer
	sig    models.LoginSignature
	log    *zap.Logger
}

func NewRouter(replay Replayer, sig models.LoginSignature, log *zap.Logger) *Router {
	if log == nil {
		log = zap.NewNop()
	}
	return &Router{
		topics: make(map[string]map[string]Conn),
		joined: make(map[string]map[string]struct{}),
		replay: replay,
		sig:    sig,
		log:    log,
	}
}

// Join registers conn under topic. Joining the broadcast topic also replays
// the most recent records to conn alone, oldest first. The connection stays
// joined even when the replay fails.
func (r *Router) Join(ctx context.Context, conn Conn, topic string) error {
	r.mu.Lock()
	members, ok := r.topics[topic]
	if !ok {
		members = make(map[string]Conn)
		r.topics[topic] = members
	}
	members[conn.ID()] = conn

	topics, ok := r.joined[conn.ID()]
	if !ok {
		topics = make(map[string]struct{})
		r.joined[conn.ID()] = topics
	}
	topics[topic] = struct{}{}
	metrics.FanoutConnections.Set(float64(len(r.joined)))
	r.mu.Unlock()

	r.log.Debug("connection joined", zap.String("conn", conn.ID()), zap.String("topic", topic))

	if topic != TopicLatest || r.replay == nil {
		return nil
	}

	recent, err := r.replay.Recent(ctx, ReplayLimit)
	if err != nil {
		r.log.Error("fetching replay for broadcast subscriber", zap.String("conn", conn.ID()), zap.Error(err))
		return err
	}

	sent := 0
	for i := len(recent) - 1; i >= 0; i-- {
		payload, err := json.Marshal(models.Project(recent[i], r.sig))
		if err != nil {
			continue
		}
		if err := conn.Send(EventLog, payload); err != nil {
			metrics.FanoutDropped.Inc()
			continue
		}
		sent++
	}

	r.log.Debug("replayed recent records", zap.String("conn", conn.ID()), zap.Int("count", sent))
	return nil
}

// Deliver pushes rec to every connection joined to topic. Delivery is fire
// and forget: refused frames are counted and dropped.
func (r *Router) Deliver(topic string, rec models.ProjectedRecord) {
	payload, err := json.Marshal(rec)
	if err != nil {
		r.log.Error("encoding record", zap.String("id", rec.ID), zap.Error(err))
		return
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	kind := topicKind(topic)
	for id, conn := range r.topics[topic] {
		if err := conn.Send(EventLog, payload); err != nil {
			metrics.FanoutDropped.Inc()
			r.log.Debug("frame dropped", zap.String("conn", id), zap.String("topic", topic), zap.Error(err))
			continue
		}
		metrics.FanoutDeliveries.WithLabelValues(kind).Inc()
	}
}

// Leave removes conn from every topic. Safe to call repeatedly.
func (r *Router) Leave(conn Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()

	topics, ok := r.joined[conn.ID()]
	if !ok {
		return
	}

	for topic := range topics {
		members := r.topics[topic]
		delete(members, conn.ID())
		if len(members) == 0 {
			delete(r.topics, topic)
		}
	}
	delete(r.joined, conn.ID())
	metrics.FanoutConnections.Set(float64(len(r.joined)))

	r.log.Debug("connection left", zap.String("conn", conn.ID()), zap.Int("topics", len(topics)))
}

// Members reports how many connections are joined to topic.
func (r *Router) Members(topic string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.topics[topic])
}

// Connections reports how many connections hold at least one membership.
func (r *Router) Connections() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.joined)
}
