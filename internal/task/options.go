package task

// All is the filter wildcard. It is only ever a filter value, never a Status
// or Priority of a Task.
const All = "all"

// StatusFilter is a Status or the All wildcard.
type StatusFilter string

// PriorityFilter is a Priority or the All wildcard.
type PriorityFilter string

const (
	AllStatuses   StatusFilter   = All
	AllPriorities PriorityFilter = All
)

func FilterStatus(s Status) StatusFilter       { return StatusFilter(s) }
func FilterPriority(p Priority) PriorityFilter { return PriorityFilter(p) }

func (f StatusFilter) IsAll() bool   { return f == AllStatuses }
func (f PriorityFilter) IsAll() bool { return f == AllPriorities }

func (f StatusFilter) Matches(s Status) bool     { return f.IsAll() || Status(f) == s }
func (f PriorityFilter) Matches(p Priority) bool { return f.IsAll() || Priority(f) == p }

func ParseStatusFilter(v string) (StatusFilter, bool) {
	if v == All {
		return AllStatuses, true
	}
	s, ok := ParseStatus(v)
	return StatusFilter(s), ok
}

func ParsePriorityFilter(v string) (PriorityFilter, bool) {
	if v == All {
		return AllPriorities, true
	}
	p, ok := ParsePriority(v)
	return PriorityFilter(p), ok
}

// Option pairs a value with its display label.
type Option struct {
	Value string
	Label string
}

var StatusOptions = []Option{
	{Value: All, Label: "All"},
	{Value: string(StatusPending), Label: "Pending"},
	{Value: string(StatusInProgress), Label: "In Progress"},
	{Value: string(StatusCompleted), Label: "Completed"},
	{Value: string(StatusCancelled), Label: "Cancelled"},
}

var PriorityOptions = []Option{
	{Value: All, Label: "All"},
	{Value: string(PriorityLow), Label: "Low"},
	{Value: string(PriorityMedium), Label: "Medium"},
	{Value: string(PriorityHigh), Label: "High"},
}

func StatusLabel(v string) string   { return label(StatusOptions, v) }
func PriorityLabel(v string) string { return label(PriorityOptions, v) }

// NextStatusFilter cycles through StatusOptions, wrapping around.
func NextStatusFilter(f StatusFilter, delta int) StatusFilter {
	return StatusFilter(cycle(StatusOptions, string(f), delta))
}

// NextPriorityFilter cycles through PriorityOptions, wrapping around.
func NextPriorityFilter(f PriorityFilter, delta int) PriorityFilter {
	return PriorityFilter(cycle(PriorityOptions, string(f), delta))
}

func label(opts []Option, v string) string {
	for _, o := range opts {
		if o.Value == v {
			return o.Label
		}
	}
	return v
}

func cycle(opts []Option, v string, delta int) string {
	idx := 0
	for i, o := range opts {
		if o.Value == v {
			idx = i
			break
		}
	}
	n := len(opts)
	idx = ((idx+delta)%n + n) % n
	return opts[idx].Value
}
