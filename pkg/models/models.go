package models

import (
	"time"
)

// SchemaConfig is one generated API: the declared fields, the token that
// authorizes calls against it, and the stored rows themselves.
type SchemaConfig struct {
	ID          string     `json:"uniqueId" db:"id" firestore:"uniqueId"`
	Owner       string     `json:"createdBy" db:"owner" firestore:"createdBy"`
	FieldNames  []string   `json:"fieldNames" db:"field_names" firestore:"fieldNames"`
	FieldTypes  []string   `json:"fieldTypes" db:"field_types" firestore:"fieldTypes"`
	AccessToken string     `json:"apiToken" db:"access_token" firestore:"apiToken"`
	Records     RecordList `json:"data" db:"records" firestore:"data"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at" firestore:"createdAt"`
}

// PlatformAccount is a user of the generator platform itself.
// The JSON field names mirror the wire format of login responses,
// including the hashed password under "password".
type PlatformAccount struct {
	ID           string    `json:"id" db:"id" firestore:"id"`
	Username     string    `json:"username" db:"username" firestore:"username"`
	Email        string    `json:"email" db:"email" firestore:"email"`
	PasswordHash string    `json:"password" db:"password_hash" firestore:"password"`
	AccessToken  string    `json:"apiToken" db:"access_token" firestore:"apiToken"`
	CreatedAt    time.Time `json:"created_at" db:"created_at" firestore:"createdAt"`
}

// ApiAccount is an API consumer identity. One may exist only alongside a
// PlatformAccount with the same email; that gate lives in the service layer.
type ApiAccount struct {
	Email        string    `json:"email" db:"email" firestore:"email"`
	PasswordHash string    `json:"password" db:"password_hash" firestore:"password"`
	AccessToken  string    `json:"apiToken" db:"access_token" firestore:"apiToken"`
	CreatedAt    time.Time `json:"created_at" db:"created_at" firestore:"createdAt"`
}

// OtpRecord is a short-lived email verification code. At most one live
// record exists per email; a new send replaces any prior one.
type OtpRecord struct {
	Email     string    `json:"email" db:"email" firestore:"email"`
	Code      int       `json:"otp" db:"code" firestore:"otp"`
	ExpiresAt time.Time `json:"expires_at" db:"expires_at" firestore:"expiresAt"`
	CreatedAt time.Time `json:"created_at" db:"created_at" firestore:"createdAt"`
}
