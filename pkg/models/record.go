package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Record is one stored row of a generated API. Keys are the schema's
// declared field names plus the server-assigned "id".
type Record map[string]any

// RecordID returns the server-assigned identifier, or "" if unset.
func (r Record) RecordID() string {
	id, _ := r["id"].(string)
	return id
}

// RecordList is the embedded array of rows. It serializes to a JSONB
// column under Postgres and to a native array under Firestore.
type RecordList []Record

func (l RecordList) Value() (driver.Value, error) {
	if l == nil {
		l = RecordList{}
	}
	return json.Marshal(l)
}

func (l *RecordList) Scan(src any) error {
	if src == nil {
		*l = RecordList{}
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("cannot scan %T into RecordList", src)
	}
}

// IndexOf returns the position of the record with the given id, or -1.
func (l RecordList) IndexOf(recordID string) int {
	for i, rec := range l {
		if rec.RecordID() == recordID {
			return i
		}
	}
	return -1
}
