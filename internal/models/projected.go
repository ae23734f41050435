package models

// LoginSignature identifies the authentication endpoint.
type LoginSignature struct {
	Path   string
	Method string
}

func (s LoginSignature) Matches(path string, method string) bool {
	return path == s.Path && method == s.Method
}

// ProjectedRecord is the wire form of an ActivityRecord pushed to viewers
// and returned by queries.
type ProjectedRecord struct {
	ID           string `json:"_id"`
	Timestamp    string `json:"timestamp"`
	Path         string `json:"path"`
	Method       string `json:"method"`
	IP           string `json:"ip"`
	Blueprint    string `json:"blueprint"`
	OrgID        string `json:"org_id"`
	UserID       string `json:"user_id"`
	IsLoginEvent bool   `json:"is_login_event"`
	Message      string `json:"message"`
	Code         string `json:"code"`
}

// Project flattens a stored record. It has no side effects and the same
// input always yields the same output.
func Project(rec ActivityRecord, sig LoginSignature) ProjectedRecord {
	return ProjectedRecord{
		ID:           rec.IDString(),
		Timestamp:    rec.TimestampString(),
		Path:         rec.Path,
		Method:       rec.Method,
		IP:           rec.IP,
		Blueprint:    rec.Blueprint,
		OrgID:        rec.OrgID,
		UserID:       rec.UserID,
		IsLoginEvent: sig.Matches(rec.Path, rec.Method),
		Message:      rec.Status.Message,
		Code:         rec.Status.Code,
	}
}

// ProjectAll projects records preserving their order.
func ProjectAll(recs []ActivityRecord, sig LoginSignature) []ProjectedRecord {
	out := make([]ProjectedRecord, 0, len(recs))
	for _, rec := range recs {
		out = append(out, Project(rec, sig))
	}
	return out
}

// ErrorCodeThreshold is compared lexically against stored status codes.
// Codes are strings in the store, so "99" sorts above "400" and numeric
// codes never qualify. Kept as-is until codes are stored as integers.
const ErrorCodeThreshold = "400"

func IsErrorCode(code string) bool {
	return code >= ErrorCodeThreshold
}
