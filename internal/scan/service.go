package scan

import (
	"context"
	"fmt"
	"strings"

	"dcportal/internal/cloudinary"
	"dcportal/internal/user"
)

// Uploader stores the captured card photo and returns a public URL.
type Uploader interface {
	UploadBytes(data []byte, filename string) (*cloudinary.UploadResult, error)
	UploadBase64(data string) (*cloudinary.UploadResult, error)
}

// Recognizer runs text recognition on an uploaded image.
type Recognizer interface {
	Recognize(ctx context.Context, imageURL string) (string, error)
}

// Roster fetches the authoritative student roster.
type Roster interface {
	ListRoster(ctx context.Context) ([]user.RosterEntry, error)
}

// ExtractionError reports which fields could not be parsed out of the OCR
// text. It is recoverable: the caller retries the scan or falls back to
// manual entry.
type ExtractionError struct {
	Missing []string
}

func (e *ExtractionError) Error() string {
	return "could not extract " + strings.Join(e.Missing, " and ")
}

// CardImage is a captured ID-card photo, either raw bytes or a base64 data
// URL depending on how the client submitted it.
type CardImage struct {
	Data     []byte
	Filename string
	Base64   string
}

// Result bundles what a scan produced. The Extracted fields are transient;
// on a successful match the caller auto-fills from Match.Student instead.
type Result struct {
	ImageURL  string      `json:"image_url"`
	Extracted Extracted   `json:"extracted"`
	Match     MatchResult `json:"match"`
}

// Service runs the scan pipeline: upload, recognise, extract, reconcile.
// Scans are independent; nothing carries over between attempts.
type Service struct {
	uploader Uploader
	ocr      Recognizer
	roster   Roster
}

// NewService wires the pipeline.
func NewService(uploader Uploader, ocr Recognizer, roster Roster) *Service {
	return &Service{uploader: uploader, ocr: ocr, roster: roster}
}

// ScanCard processes one captured card photo. Upload and recognition
// failures come back as wrapped errors; incomplete extraction comes back as
// an ExtractionError; match outcomes, including mismatch and not-found, are
// reported in the Result rather than as errors.
func (s *Service) ScanCard(ctx context.Context, img CardImage) (Result, error) {
	var (
		uploaded *cloudinary.UploadResult
		err      error
	)
	if len(img.Data) > 0 {
		uploaded, err = s.uploader.UploadBytes(img.Data, img.Filename)
	} else {
		uploaded, err = s.uploader.UploadBase64(img.Base64)
	}
	if err != nil {
		return Result{}, fmt.Errorf("upload card photo: %w", err)
	}

	text, err := s.ocr.Recognize(ctx, uploaded.SecureURL)
	if err != nil {
		return Result{}, fmt.Errorf("recognise card text: %w", err)
	}

	extracted := Extract(text)
	res := Result{ImageURL: uploaded.SecureURL, Extracted: extracted}
	if !extracted.Complete() {
		return res, &ExtractionError{Missing: extracted.Missing()}
	}

	roster, err := s.roster.ListRoster(ctx)
	if err != nil {
		return res, fmt.Errorf("fetch roster: %w", err)
	}
	res.Match = MatchRoster(extracted, roster)
	return res, nil
}
