package models

import "time"

// ImageRef points at one image held by the remote image store: the public
// retrieval URL plus the identifier the store needs to delete it again.
type ImageRef struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
}

// VerificationRecord is one completed identity submission. Records are
// append-only: every field is set once by the upload workflow and never
// mutated afterwards.
type VerificationRecord struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name"`
	IDNumber  string    `json:"idNumber"`
	Phone     string    `json:"phone"`
	Selfie    ImageRef  `json:"selfie" gorm:"embedded;embeddedPrefix:selfie_"`
	FrontID   ImageRef  `json:"frontID" gorm:"embedded;embeddedPrefix:front_id_"`
	BackID    ImageRef  `json:"backID" gorm:"embedded;embeddedPrefix:back_id_"`
	IDCheck   string    `json:"idCheck,omitempty"` // "match", "mismatch" or empty when the OCR cross-check was skipped
	CreatedAt time.Time `json:"createdAt"`
}
