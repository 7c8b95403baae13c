// Package workflow orchestrates one identity submission: validate the text
// fields, push the three images to the remote store, then append exactly one
// record. Either everything lands or no record exists.
package workflow

import (
	"context"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"swiftverify/internal/imagestore"
	"swiftverify/internal/models"
	"swiftverify/internal/store"
)

// Image field names, also the upload order. The order is fixed so failures
// are attributable in tests and logs.
const (
	LabelSelfie  = "selfie"
	LabelFrontID = "frontID"
	LabelBackID  = "backID"
)

var (
	idNumberRe = regexp.MustCompile(`^\d{8,9}$`)
	phoneRe    = regexp.MustCompile(`^2547\d{8}$`)
)

// IDChecker cross-checks the submitted ID number against the ID document
// image. Purely advisory; results annotate the record, errors are logged.
type IDChecker interface {
	Check(ctx context.Context, frontID []byte, idNumber string) (string, error)
}

// SubmitInput is one complete client submission.
type SubmitInput struct {
	Name     string
	IDNumber string
	Phone    string
	Selfie   []byte
	FrontID  []byte
	BackID   []byte
}

// Workflow wires the remote image store and the record store together.
type Workflow struct {
	images  imagestore.Store
	records store.RecordStore
	checker IDChecker // nil when the OCR cross-check is disabled
}

func New(images imagestore.Store, records store.RecordStore, checker IDChecker) *Workflow {
	return &Workflow{images: images, records: records, checker: checker}
}

// Submit runs the full upload-and-commit path. On remote store failure every
// sibling already stored in this submission is deleted best-effort before the
// error is returned; no record is appended. A failed append after three
// successful uploads returns *PersistenceError and leaves the images in place.
func (w *Workflow) Submit(ctx context.Context, in SubmitInput) (*models.VerificationRecord, error) {
	name := strings.TrimSpace(in.Name)
	if len(name) < 2 {
		return nil, &InvalidFieldError{Field: "name", Reason: "must be at least 2 characters"}
	}
	if !idNumberRe.MatchString(in.IDNumber) {
		return nil, &InvalidFieldError{Field: "idNumber", Reason: "must be 8 or 9 digits"}
	}
	if !phoneRe.MatchString(in.Phone) {
		return nil, &InvalidFieldError{Field: "phone", Reason: "must be in 2547XXXXXXXX format"}
	}

	images := []struct {
		label string
		data  []byte
	}{
		{LabelSelfie, in.Selfie},
		{LabelFrontID, in.FrontID},
		{LabelBackID, in.BackID},
	}
	for _, img := range images {
		if len(img.data) == 0 {
			return nil, &MissingImageError{Name: img.label}
		}
	}

	stored := make(map[string]models.ImageRef, len(images))
	for _, img := range images {
		ref, err := w.images.Store(ctx, img.data, img.label)
		if err != nil {
			w.rollback(ctx, stored)
			return nil, &PartialUploadError{Label: img.label, Err: err}
		}
		stored[img.label] = ref
	}

	rec := models.VerificationRecord{
		ID:        uuid.NewString(),
		Name:      name,
		IDNumber:  in.IDNumber,
		Phone:     in.Phone,
		Selfie:    stored[LabelSelfie],
		FrontID:   stored[LabelFrontID],
		BackID:    stored[LabelBackID],
		CreatedAt: time.Now().UTC(),
	}

	if w.checker != nil {
		result, err := w.checker.Check(ctx, in.FrontID, in.IDNumber)
		if err != nil {
			log.Printf("workflow: id check skipped for record %s: %v", rec.ID, err)
		} else {
			rec.IDCheck = result
		}
	}

	if err := w.records.Append(ctx, rec); err != nil {
		log.Printf("workflow: append failed after successful uploads, orphaned public ids: %s, %s, %s",
			rec.Selfie.PublicID, rec.FrontID.PublicID, rec.BackID.PublicID)
		return nil, &PersistenceError{Err: err}
	}
	return &rec, nil
}

// rollback deletes every image stored so far in this submission. It runs on
// a context detached from the request so a client disconnect cannot strand
// already-stored siblings; failures are logged, never escalated.
func (w *Workflow) rollback(ctx context.Context, stored map[string]models.ImageRef) {
	cleanupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 30*time.Second)
	defer cancel()
	for label, ref := range stored {
		if err := w.images.Delete(cleanupCtx, ref.PublicID); err != nil {
			log.Printf("workflow: rollback of %s (%s) failed: %v", label, ref.PublicID, err)
		}
	}
}
