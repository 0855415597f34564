package provider

import (
	"encoding/json"
)

// rawStaff mirrors the provider's staff block.
type rawStaff struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// rawSessionType mirrors the provider's session type block. DefaultTimeLength
// is the default session duration in minutes.
type rawSessionType struct {
	ID                string `json:"id"`
	DefaultTimeLength int    `json:"default_time_length"`
}

// rawItem is one bookable appointment block as the provider serializes it.
// Timestamps are ISO-like local strings without zone information.
type rawItem struct {
	ID            string         `json:"id"`
	Staff         rawStaff       `json:"staff"`
	SessionType   rawSessionType `json:"session_type"`
	ProgramID     string         `json:"program_id"`
	StartDateTime string         `json:"start_date_time"`
	EndDateTime   string         `json:"end_date_time"`
}

// itemList absorbs the provider's serialization quirk: a result set with a
// single item arrives as a bare object instead of a one-element array.
// Normalization happens here, at the deserialization boundary, so downstream
// code only ever sees a list.
type itemList []rawItem

func (l *itemList) UnmarshalJSON(data []byte) error {
	var many []rawItem
	if err := json.Unmarshal(data, &many); err == nil {
		*l = many
		return nil
	}

	var one rawItem
	if err := json.Unmarshal(data, &one); err != nil {
		return err
	}
	*l = itemList{one}
	return nil
}

type searchResponse struct {
	Items itemList `json:"items"`
}
