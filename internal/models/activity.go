package models

import (
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TimestampLayout is how record timestamps travel on the wire.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

type ApiStatus struct {
	Message string `bson:"message" json:"message"`
	Code    string `bson:"code" json:"code"`
}

// ActivityRecord is one stored API call audit entry. Stored documents are
// loosely typed, so decoding coerces every attribute into its string form
// and never fails on a missing or oddly typed field.
type ActivityRecord struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Timestamp time.Time          `bson:"timestamp" json:"timestamp"`
	Path      string             `bson:"path" json:"path"`
	Method    string             `bson:"method" json:"method"`
	IP        string             `bson:"ip" json:"ip"`
	Blueprint string             `bson:"blueprint" json:"blueprint"`
	OrgID     string             `bson:"org_id" json:"org_id"`
	UserID    string             `bson:"user_id,omitempty" json:"user_id,omitempty"`
	Status    ApiStatus          `bson:"api_status" json:"api_status"`

	// set when the stored value could not be decoded into the typed field
	rawID        string
	rawTimestamp string
}

func (r *ActivityRecord) UnmarshalBSON(data []byte) error {
	raw := bson.Raw(data)
	if err := raw.Validate(); err != nil {
		return err
	}

	*r = ActivityRecord{}

	if v, err := raw.LookupErr("_id"); err == nil {
		if oid, ok := v.ObjectIDOK(); ok {
			r.ID = oid
		} else {
			r.rawID = RenderValue(v)
		}
	}

	if v, err := raw.LookupErr("timestamp"); err == nil {
		if dt, ok := v.DateTimeOK(); ok {
			r.Timestamp = time.UnixMilli(dt).UTC()
		} else {
			r.rawTimestamp = RenderValue(v)
		}
	}

	r.Path = lookupString(raw, "path")
	r.Method = lookupString(raw, "method")
	r.IP = lookupString(raw, "ip")
	r.Blueprint = lookupString(raw, "blueprint")
	r.OrgID = lookupString(raw, "org_id")
	r.UserID = lookupString(raw, "user_id")
	r.Status = ApiStatus{
		Message: lookupString(raw, "api_status", "message"),
		Code:    lookupString(raw, "api_status", "code"),
	}

	return nil
}

// IDString renders the record identifier.
func (r ActivityRecord) IDString() string {
	if r.rawID != "" {
		return r.rawID
	}
	if r.ID.IsZero() {
		return ""
	}
	return r.ID.Hex()
}

// TimestampString renders the timestamp, falling back to the stored raw form.
func (r ActivityRecord) TimestampString() string {
	if r.Timestamp.IsZero() {
		return r.rawTimestamp
	}
	return r.Timestamp.UTC().Format(TimestampLayout)
}

func lookupString(raw bson.Raw, key ...string) string {
	v, err := raw.LookupErr(key...)
	if err != nil {
		return ""
	}
	return RenderValue(v)
}

// RenderValue turns any BSON value into a flat string. Null and undefined
// become the empty string.
func RenderValue(v bson.RawValue) string {
	if len(v.Value) == 0 {
		return ""
	}

	switch v.Type {
	case bsontype.String:
		return v.StringValue()
	case bsontype.ObjectID:
		return v.ObjectID().Hex()
	case bsontype.Int32:
		return strconv.FormatInt(int64(v.Int32()), 10)
	case bsontype.Int64:
		return strconv.FormatInt(v.Int64(), 10)
	case bsontype.Double:
		return strconv.FormatFloat(v.Double(), 'f', -1, 64)
	case bsontype.Boolean:
		return strconv.FormatBool(v.Boolean())
	case bsontype.DateTime:
		return time.UnixMilli(v.DateTime()).UTC().Format(TimestampLayout)
	default:
		return v.String()
	}
}
