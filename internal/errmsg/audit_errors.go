package errmsg

import "net/http"

// Request scoped read failures. Messages stay generic: callers never see
// store details or partial results.
var (
	LogsFetchFailed = NewStatusError(
		http.StatusInternalServerError,
		"could not retrieve logs",
	)
	ReportFailed = NewStatusError(
		http.StatusInternalServerError,
		"could not compute dashboard report",
	)
	UsersFetchFailed = NewStatusError(
		http.StatusInternalServerError,
		"could not retrieve users",
	)
	UsersOrgNotConfigured = NewStatusError(
		http.StatusServiceUnavailable,
		"organization is not configured",
	)
	ViewerInvalidToken = NewStatusError(
		http.StatusUnauthorized,
		"viewer token is invalid",
	)
	StreamDraining = NewStatusError(
		http.StatusServiceUnavailable,
		"service is draining - please reconnect to active instance",
	)
)

type _LogsFetchFailed struct {
	StatusCode int    `json:"statusCode" example:"500"`
	Message    string `json:"message" example:"could not retrieve logs"`
}

type _ReportFailed struct {
	StatusCode int    `json:"statusCode" example:"500"`
	Message    string `json:"message" example:"could not compute dashboard report"`
}

type _UsersFetchFailed struct {
	StatusCode int    `json:"statusCode" example:"500"`
	Message    string `json:"message" example:"could not retrieve users"`
}

type _UsersOrgNotConfigured struct {
	StatusCode int    `json:"statusCode" example:"503"`
	Message    string `json:"message" example:"organization is not configured"`
}

type _ViewerInvalidToken struct {
	StatusCode int    `json:"statusCode" example:"401"`
	Message    string `json:"message" example:"viewer token is invalid"`
}

type _StreamDraining struct {
	StatusCode int    `json:"statusCode" example:"503"`
	Message    string `json:"message" example:"service is draining - please reconnect to active instance"`
}
