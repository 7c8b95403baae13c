package handlers

import (
	"errors"
	"io"
	"net/http"

	"swiftverify/internal/workflow"
)

// Upload accepts one multipart submission: fields name, idNumber, phone and
// files selfie, frontID, backID. Workflow errors map to stable JSON kinds so
// clients can distinguish bad input from retryable remote failures.
// POST /upload
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	// Per-image cap times three, plus headroom for the text fields.
	formLimit := h.MaxUploadBytes*3 + (1 << 20)
	r.Body = http.MaxBytesReader(w, r.Body, formLimit)
	if err := r.ParseMultipartForm(formLimit); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"kind":    "bad_request",
			"message": "failed to parse form or payload too large",
		})
		return
	}

	in := workflow.SubmitInput{
		Name:     r.FormValue("name"),
		IDNumber: r.FormValue("idNumber"),
		Phone:    r.FormValue("phone"),
	}

	var readErr error
	in.Selfie, readErr = h.formImage(r, workflow.LabelSelfie, readErr)
	in.FrontID, readErr = h.formImage(r, workflow.LabelFrontID, readErr)
	in.BackID, readErr = h.formImage(r, workflow.LabelBackID, readErr)
	if readErr != nil {
		writeJSON(w, http.StatusRequestEntityTooLarge, map[string]any{
			"success": false,
			"kind":    "bad_request",
			"message": readErr.Error(),
		})
		return
	}

	rec, err := h.Workflow.Submit(r.Context(), in)
	if err != nil {
		h.writeSubmitError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Uploaded",
		"record":  rec,
	})
}

// formImage reads one named file field in full. A missing field yields nil
// bytes; the workflow turns that into its MissingImage error.
func (h *Handler) formImage(r *http.Request, name string, prevErr error) ([]byte, error) {
	if prevErr != nil {
		return nil, prevErr
	}
	file, _, err := r.FormFile(name)
	if err != nil {
		return nil, nil
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, h.MaxUploadBytes+1))
	if err != nil {
		return nil, errors.New("failed to read uploaded file " + name)
	}
	if int64(len(data)) > h.MaxUploadBytes {
		return nil, errors.New("image " + name + " exceeds the size limit")
	}
	return data, nil
}

func (h *Handler) writeSubmitError(w http.ResponseWriter, err error) {
	var invalid *workflow.InvalidFieldError
	var missing *workflow.MissingImageError
	var partial *workflow.PartialUploadError
	var persistence *workflow.PersistenceError

	switch {
	case errors.As(err, &invalid):
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"kind":    workflow.KindInvalidField,
			"field":   invalid.Field,
			"message": invalid.Reason,
		})
	case errors.As(err, &missing):
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"kind":    workflow.KindMissingImage,
			"image":   missing.Name,
			"message": "All three image files are required.",
		})
	case errors.As(err, &partial):
		writeJSON(w, http.StatusBadGateway, map[string]any{
			"success":   false,
			"kind":      workflow.KindPartialUpload,
			"image":     partial.Label,
			"retryable": true,
			"message":   "Image upload failed, please try again.",
		})
	case errors.As(err, &persistence):
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"kind":    workflow.KindPersistence,
			"message": "Could not save the verification record.",
		})
	default:
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"kind":    "internal",
			"message": "Server upload error.",
		})
	}
}
