package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// StockEntryType classifies a tank ledger movement.
type StockEntryType int

const (
	StockEntryTypeStockIn    StockEntryType = 0 // supplier delivery
	StockEntryTypeStockOut   StockEntryType = 1 // fuel sale debit
	StockEntryTypeAdjustment StockEntryType = 2 // manual correction or sale-void reversal
	StockEntryTypeTransfer   StockEntryType = 3 // tank-to-tank movement
)

func (t StockEntryType) String() string {
	return [...]string{"StockIn", "StockOut", "Adjustment", "Transfer"}[t]
}

func (t StockEntryType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *StockEntryType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*t = StockEntryType(i)
		return nil
	}
	switch str {
	case "StockIn":
		*t = StockEntryTypeStockIn
	case "StockOut":
		*t = StockEntryTypeStockOut
	case "Adjustment":
		*t = StockEntryTypeAdjustment
	case "Transfer":
		*t = StockEntryTypeTransfer
	}
	return nil
}

func (t StockEntryType) Value() (driver.Value, error) {
	return int64(t), nil
}

func (t *StockEntryType) Scan(value interface{}) error {
	if value == nil {
		*t = StockEntryTypeStockIn
		return nil
	}
	switch v := value.(type) {
	case int64:
		*t = StockEntryType(v)
	case int:
		*t = StockEntryType(v)
	}
	return nil
}
