package checkout

type Status string

const (
	StatusOpen       Status = "OPEN"
	StatusReviewing  Status = "REVIEWING"
	StatusValidating Status = "VALIDATING"
	StatusCommitted  Status = "COMMITTED"
	StatusRejected   Status = "REJECTED"
)

func (s Status) IsTerminal() bool {
	return s == StatusCommitted || s == StatusRejected
}

// String representation (for logging)
func (s Status) String() string {
	return string(s)
}
