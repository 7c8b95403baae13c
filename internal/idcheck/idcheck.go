// Package idcheck runs an advisory OCR comparison between the idNumber a
// client typed and the number printed on the uploaded ID front image.
package idcheck

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	vision "cloud.google.com/go/vision/apiv1"
	visionpb "cloud.google.com/go/vision/v2/apiv1/visionpb"
	"google.golang.org/api/option"
)

// Check outcomes. Empty string means the check was skipped.
const (
	ResultMatch    = "match"
	ResultMismatch = "mismatch"
)

var idDigitsRe = regexp.MustCompile(`\b\d{8,9}\b`)

// Checker OCRs ID images with Google Vision and falls back to Gemini when
// plain digit extraction finds nothing usable.
type Checker struct {
	CredentialsFile string
	GeminiAPIKey    string
}

func New(credentialsFile, geminiAPIKey string) *Checker {
	return &Checker{CredentialsFile: credentialsFile, GeminiAPIKey: geminiAPIKey}
}

// Check OCRs the image and reports whether idNumber appears on it.
func (c *Checker) Check(ctx context.Context, frontID []byte, idNumber string) (string, error) {
	raw, err := c.detectText(ctx, frontID)
	if err != nil {
		return "", err
	}

	candidates := idDigitsRe.FindAllString(raw, -1)
	if len(candidates) == 0 && c.GeminiAPIKey != "" {
		num, gerr := extractNumberWithGemini(ctx, c.GeminiAPIKey, raw)
		if gerr != nil {
			return "", fmt.Errorf("idcheck: gemini fallback: %w", gerr)
		}
		candidates = []string{num}
	}
	if len(candidates) == 0 {
		return "", errors.New("idcheck: no ID number found on document")
	}

	for _, cand := range candidates {
		if cand == idNumber {
			return ResultMatch, nil
		}
	}
	return ResultMismatch, nil
}

func (c *Checker) detectText(ctx context.Context, image []byte) (string, error) {
	var client *vision.ImageAnnotatorClient
	var err error
	if c.CredentialsFile != "" {
		client, err = vision.NewImageAnnotatorClient(ctx, option.WithCredentialsFile(c.CredentialsFile))
	} else {
		client, err = vision.NewImageAnnotatorClient(ctx)
	}
	if err != nil {
		return "", fmt.Errorf("idcheck: init OCR client: %w", err)
	}
	defer client.Close()

	img := &visionpb.Image{Content: image}
	anns, err := client.DetectTexts(ctx, img, nil, 1)
	if err != nil {
		return "", fmt.Errorf("idcheck: detect text: %w", err)
	}
	if len(anns) == 0 || anns[0].Description == "" {
		return "", errors.New("idcheck: no text detected on document")
	}
	return anns[0].Description, nil
}
