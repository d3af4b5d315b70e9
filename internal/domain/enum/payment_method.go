package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// PaymentMethod is how a fuel sale was collected. Shift settlement groups
// collections under the same three buckets.
type PaymentMethod int

const (
	PaymentMethodCash    PaymentMethod = 0
	PaymentMethodCredit  PaymentMethod = 1
	PaymentMethodDigital PaymentMethod = 2
)

func (m PaymentMethod) String() string {
	return [...]string{"Cash", "Credit", "Digital"}[m]
}

// Valid reports whether m is one of the known payment methods.
func (m PaymentMethod) Valid() bool {
	return m >= PaymentMethodCash && m <= PaymentMethodDigital
}

func (m PaymentMethod) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *PaymentMethod) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*m = PaymentMethod(i)
		return nil
	}
	switch str {
	case "Cash":
		*m = PaymentMethodCash
	case "Credit":
		*m = PaymentMethodCredit
	case "Digital":
		*m = PaymentMethodDigital
	}
	return nil
}

func (m PaymentMethod) Value() (driver.Value, error) {
	return int64(m), nil
}

func (m *PaymentMethod) Scan(value interface{}) error {
	if value == nil {
		*m = PaymentMethodCash
		return nil
	}
	switch v := value.(type) {
	case int64:
		*m = PaymentMethod(v)
	case int:
		*m = PaymentMethod(v)
	}
	return nil
}
