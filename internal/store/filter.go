package store

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

// LogFilter narrows a retrieval. Zero values mean "no constraint".
type LogFilter struct {
	UserID    string
	Start     *time.Time
	End       *time.Time
	Limit     int64
	Ascending bool
}

// Query renders the filter as a mongo query document.
func (f LogFilter) Query() bson.M {
	var conditions bson.A

	if f.UserID != "" {
		conditions = append(conditions, bson.M{"$or": idVariants("user_id", f.UserID)})
	}

	timeCondition := bson.M{}
	if f.Start != nil {
		timeCondition["$gte"] = f.Start.UTC()
	}
	if f.End != nil {
		timeCondition["$lte"] = f.End.UTC()
	}
	if len(timeCondition) > 0 {
		conditions = append(conditions, bson.M{"timestamp": timeCondition})
	}

	if len(conditions) == 0 {
		return bson.M{}
	}
	return bson.M{"$and": conditions}
}
