package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// ShiftStatus represents where a shift is in its lifecycle. Transitions are
// forward-only: Pending -> Active -> Closed. Pending is reserved for
// scheduled-but-not-started shifts; in practice shifts are created Active.
type ShiftStatus int

const (
	ShiftStatusPending ShiftStatus = 0
	ShiftStatusActive  ShiftStatus = 1
	ShiftStatusClosed  ShiftStatus = 2
)

func (s ShiftStatus) String() string {
	return [...]string{"Pending", "Active", "Closed"}[s]
}

// CanTransitionTo reports whether the forward transition to next is allowed.
func (s ShiftStatus) CanTransitionTo(next ShiftStatus) bool {
	return next == s+1
}

func (s ShiftStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *ShiftStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = ShiftStatus(i)
		return nil
	}
	switch str {
	case "Pending":
		*s = ShiftStatusPending
	case "Active":
		*s = ShiftStatusActive
	case "Closed":
		*s = ShiftStatusClosed
	}
	return nil
}

func (s ShiftStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *ShiftStatus) Scan(value interface{}) error {
	if value == nil {
		*s = ShiftStatusPending
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = ShiftStatus(v)
	case int:
		*s = ShiftStatus(v)
	}
	return nil
}
