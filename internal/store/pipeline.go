package store

import (
	"time"

	"auditstream/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// TopEndpointsLimit caps the top endpoints facet.
const TopEndpointsLimit = 5

type KPIStats struct {
	TotalCalls  int64 `bson:"total_calls"`
	UniqueUsers int64 `bson:"unique_users_count"`
	TotalLogins int64 `bson:"total_logins"`
	TotalErrors int64 `bson:"total_errors"`
}

// Bucket is one group of a count facet.
type Bucket struct {
	Label string
	Count int64
}

func (b *Bucket) UnmarshalBSON(data []byte) error {
	return decodeGroup(data, func(id bson.RawValue, count int64) {
		*b = Bucket{Label: models.RenderValue(id), Count: count}
	})
}

type HourBucket struct {
	Hour  int
	Count int64
}

func (b *HourBucket) UnmarshalBSON(data []byte) error {
	return decodeGroup(data, func(id bson.RawValue, count int64) {
		hour, _ := id.AsInt64OK()
		*b = HourBucket{Hour: int(hour), Count: count}
	})
}

type Facets struct {
	KPI            []KPIStats `bson:"kpi_stats"`
	TopEndpoints   []Bucket   `bson:"top_endpoints"`
	ErrorBreakdown []Bucket   `bson:"error_breakdown"`
}

// KPIs returns the single kpi_stats row, zero when nothing matched.
func (f Facets) KPIs() KPIStats {
	if len(f.KPI) == 0 {
		return KPIStats{}
	}
	return f.KPI[0]
}

func decodeGroup(data []byte, set func(id bson.RawValue, count int64)) error {
	raw := bson.Raw(data)
	if err := raw.Validate(); err != nil {
		return err
	}

	id, _ := raw.LookupErr("_id")
	var count int64
	if v, err := raw.LookupErr("count"); err == nil {
		count, _ = v.AsInt64OK()
	}

	set(id, count)
	return nil
}

// ReportPipeline builds the multi-facet dashboard aggregation. Status codes
// are compared as strings against models.ErrorCodeThreshold.
func ReportPipeline(since time.Time, sig models.LoginSignature) mongo.Pipeline {
	isLogin := bson.M{"$and": bson.A{
		bson.M{"$eq": bson.A{"$path", sig.Path}},
		bson.M{"$eq": bson.A{"$method", sig.Method}},
	}}
	isError := bson.M{"$gte": bson.A{"$api_status.code", models.ErrorCodeThreshold}}

	return mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"timestamp": bson.M{"$gte": since.UTC()}}}},
		{{Key: "$facet", Value: bson.D{
			{Key: "kpi_stats", Value: bson.A{
				bson.M{"$group": bson.M{
					"_id":          nil,
					"total_calls":  bson.M{"$sum": 1},
					"unique_users": bson.M{"$addToSet": "$user_id"},
					"total_logins": bson.M{"$sum": bson.M{"$cond": bson.A{isLogin, 1, 0}}},
					"total_errors": bson.M{"$sum": bson.M{"$cond": bson.A{isError, 1, 0}}},
				}},
				bson.M{"$project": bson.M{
					"_id":                0,
					"total_calls":        1,
					"unique_users_count": bson.M{"$size": "$unique_users"},
					"total_logins":       1,
					"total_errors":       1,
				}},
			}},
			{Key: "top_endpoints", Value: bson.A{
				bson.M{"$group": bson.M{"_id": "$path", "count": bson.M{"$sum": 1}}},
				bson.M{"$sort": bson.M{"count": -1}},
				bson.M{"$limit": TopEndpointsLimit},
			}},
			{Key: "error_breakdown", Value: bson.A{
				bson.M{"$match": bson.M{"api_status.code": bson.M{"$gte": models.ErrorCodeThreshold}}},
				bson.M{"$group": bson.M{"_id": "$api_status.code", "count": bson.M{"$sum": 1}}},
				bson.M{"$sort": bson.M{"count": -1}},
			}},
		}}},
	}
}

// HourlyPipeline groups records at or after since by UTC hour of day.
func HourlyPipeline(since time.Time) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"timestamp": bson.M{"$gte": since.UTC()}}}},
		{{Key: "$group", Value: bson.M{
			"_id":   bson.M{"$hour": "$timestamp"},
			"count": bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.M{"_id": 1}}},
	}
}
