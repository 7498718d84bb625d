package model

// RequestStatus tracks the lifecycle of a network request, either
// globally or for a single list or task.
type RequestStatus string

const (
	RequestIdle      RequestStatus = "idle"
	RequestLoading   RequestStatus = "loading"
	RequestSucceeded RequestStatus = "succeeded"
	RequestFailed    RequestStatus = "failed"
)

// FilterValue selects which tasks of a list are shown. It is client-only
// state with no server counterpart.
type FilterValue string

const (
	FilterAll       FilterValue = "all"
	FilterActive    FilterValue = "active"
	FilterCompleted FilterValue = "completed"
)

// ParseFilter maps a user-supplied name onto a FilterValue.
func ParseFilter(s string) (FilterValue, bool) {
	switch FilterValue(s) {
	case FilterAll, FilterActive, FilterCompleted:
		return FilterValue(s), true
	default:
		return "", false
	}
}
