package scan

import (
	"context"
	"errors"
	"testing"

	"dcportal/internal/cloudinary"
	"dcportal/internal/user"
)

type fakeUploader struct{ url string }

func (f *fakeUploader) UploadBytes([]byte, string) (*cloudinary.UploadResult, error) {
	return &cloudinary.UploadResult{SecureURL: f.url}, nil
}

func (f *fakeUploader) UploadBase64(string) (*cloudinary.UploadResult, error) {
	return &cloudinary.UploadResult{SecureURL: f.url}, nil
}

type fakeRecognizer struct {
	text string
	err  error
}

func (f *fakeRecognizer) Recognize(context.Context, string) (string, error) {
	return f.text, f.err
}

type fakeRoster struct{ entries []user.RosterEntry }

func (f *fakeRoster) ListRoster(context.Context) ([]user.RosterEntry, error) {
	return f.entries, nil
}

func TestScanCardHappyPath(t *testing.T) {
	svc := NewService(
		&fakeUploader{url: "https://cdn.example/card.jpg"},
		&fakeRecognizer{text: "STUDENT ID CARD\nJOHN SMITH\n7376241CS322"},
		&fakeRoster{entries: []user.RosterEntry{{Name: "JOHN SMITH", RegNum: "7376241CS322"}}},
	)

	res, err := svc.ScanCard(context.Background(), CardImage{Data: []byte("jpeg"), Filename: "card.jpg"})
	if err != nil {
		t.Fatalf("ScanCard: %v", err)
	}
	if res.ImageURL != "https://cdn.example/card.jpg" {
		t.Fatalf("image url = %q", res.ImageURL)
	}
	if res.Match.Outcome != OutcomeMatched {
		t.Fatalf("outcome = %q, want %q", res.Match.Outcome, OutcomeMatched)
	}
	if res.Match.Student == nil || res.Match.Student.Name != "JOHN SMITH" {
		t.Fatalf("student = %+v", res.Match.Student)
	}
}

func TestScanCardIncompleteExtraction(t *testing.T) {
	svc := NewService(
		&fakeUploader{url: "https://cdn.example/card.jpg"},
		&fakeRecognizer{text: "STUDENT ID CARD\nblurred line"},
		&fakeRoster{},
	)

	res, err := svc.ScanCard(context.Background(), CardImage{Base64: "data:image/jpeg;base64,x"})
	var exErr *ExtractionError
	if !errors.As(err, &exErr) {
		t.Fatalf("ScanCard err = %v, want ExtractionError", err)
	}
	if len(exErr.Missing) != 2 {
		t.Fatalf("missing = %v, want name and registration number", exErr.Missing)
	}
	if res.ImageURL == "" {
		t.Fatal("result should still carry the uploaded image url")
	}
}

func TestScanCardRecognizerFailure(t *testing.T) {
	svc := NewService(
		&fakeUploader{url: "https://cdn.example/card.jpg"},
		&fakeRecognizer{err: errors.New("service down")},
		&fakeRoster{},
	)
	if _, err := svc.ScanCard(context.Background(), CardImage{Data: []byte("jpeg")}); err == nil {
		t.Fatal("ScanCard = nil error, want recognition failure")
	}
}
