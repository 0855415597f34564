package model

import "time"

// TokenRecord is the per-slice booking metadata persisted under the slice's
// token between result rendering and booking confirmation. Records expire
// via a TTL index on ExpiresAt.
type TokenRecord struct {
	Token      string    `json:"token" bson:"_id"`
	SliceID    string    `json:"slice_id" bson:"slice_id"`
	StaffID    string    `json:"staff_id" bson:"staff_id"`
	StaffName  string    `json:"staff_name" bson:"staff_name"`
	StaffEmail string    `json:"staff_email,omitempty" bson:"staff_email,omitempty"`
	StaffPhone string    `json:"staff_phone,omitempty" bson:"staff_phone,omitempty"`
	StartTime  time.Time `json:"start_time" bson:"start_time"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
	ExpiresAt  time.Time `json:"-" bson:"expires_at"`
}
