package imagestore

import (
	"context"
	"crypto/sha1"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "shhh"

func newTestClient(baseURL string) *Cloudinary {
	c := NewCloudinary("demo", "key123", testSecret, "swift_verifications")
	c.BaseURL = baseURL
	return c
}

func validSignature(publicID, timestamp, signature string) bool {
	payload := fmt.Sprintf("public_id=%s&timestamp=%s%s", publicID, timestamp, testSecret)
	return signature == fmt.Sprintf("%x", sha1.Sum([]byte(payload)))
}

func TestCloudinary_StoreSignsAndParses(t *testing.T) {
	imageBytes := []byte("fake-jpeg-bytes")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/demo/image/upload", r.URL.Path)
		require.NoError(t, r.ParseForm())

		publicID := r.PostFormValue("public_id")
		assert.True(t, strings.HasPrefix(publicID, "swift_verifications/selfie_"), "public id was %q", publicID)
		assert.Equal(t, "key123", r.PostFormValue("api_key"))
		assert.True(t, validSignature(publicID, r.PostFormValue("timestamp"), r.PostFormValue("signature")))

		wantFile := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(imageBytes)
		assert.Equal(t, wantFile, r.PostFormValue("file"))

		fmt.Fprintf(w, `{"secure_url":"https://res.cloudinary.example/%s.jpg","public_id":"%s"}`, publicID, publicID)
	}))
	defer srv.Close()

	ref, err := newTestClient(srv.URL).Store(context.Background(), imageBytes, "selfie")
	require.NoError(t, err)
	assert.Contains(t, ref.URL, "res.cloudinary.example")
	assert.True(t, strings.HasPrefix(ref.PublicID, "swift_verifications/selfie_"))
}

func TestCloudinary_StoreErrorPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"error":{"message":"Invalid Signature"}}`)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Store(context.Background(), []byte("x"), "selfie")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Invalid Signature", apiErr.Message)
}

func TestCloudinary_StoreHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Store(context.Background(), []byte("x"), "selfie")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)
}

func TestCloudinary_Delete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/demo/image/destroy", r.URL.Path)
		require.NoError(t, r.ParseForm())

		publicID := r.PostFormValue("public_id")
		assert.Equal(t, "swift_verifications/selfie_abc", publicID)
		assert.True(t, validSignature(publicID, r.PostFormValue("timestamp"), r.PostFormValue("signature")))

		fmt.Fprint(w, `{"result":"ok"}`)
	}))
	defer srv.Close()

	err := newTestClient(srv.URL).Delete(context.Background(), "swift_verifications/selfie_abc")
	require.NoError(t, err)
}

func TestCloudinary_DeleteNotFoundIsOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"result":"not found"}`)
	}))
	defer srv.Close()

	// Deleting an already-gone image is not an error; rollback may race an
	// earlier manual cleanup.
	err := newTestClient(srv.URL).Delete(context.Background(), "whatever")
	require.NoError(t, err)
}

func TestCloudinary_DeleteUnexpectedResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"result":"pending"}`)
	}))
	defer srv.Close()

	err := newTestClient(srv.URL).Delete(context.Background(), "whatever")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
}
