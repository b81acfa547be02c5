package payment

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

// Minimal PNG: content sniffing only needs the magic bytes.
var pngBytes = []byte("\x89PNG\r\n\x1a\n" + "fakepixels")

func TestTargetPayload(t *testing.T) {
	d := Details{AmountCents: 1000, Recipient: "CampusHub", Account: "1234567890"}
	want := "pay://amount=10.00&recipient=CampusHub&account=1234567890"
	if got := d.TargetPayload(); got != want {
		t.Fatalf("TargetPayload() = %q, want %q", got, want)
	}
}

func TestQRCodePNG(t *testing.T) {
	d := Details{AmountCents: 1000, Recipient: "CampusHub", Account: "1234567890"}
	png, err := d.QRCodePNG(256)
	if err != nil {
		t.Fatalf("QRCodePNG failed: %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Fatal("QR output is not a PNG")
	}
}

func TestValidateSubmissionBoundary(t *testing.T) {
	cases := []struct {
		name    string
		txn     string
		proof   []byte
		wantErr error
	}{
		{"both missing", "", nil, ErrMissingTransactionID},
		{"proof without txn", "", pngBytes, ErrMissingTransactionID},
		{"txn without proof", "TXN1", nil, ErrMissingProof},
		{"both present", "TXN1", pngBytes, nil},
		{"whitespace txn counts as missing", "   ", pngBytes, ErrMissingTransactionID},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateSubmission(tc.txn, tc.proof)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("ValidateSubmission(%q, %d bytes) = %v, want %v",
					tc.txn, len(tc.proof), err, tc.wantErr)
			}
		})
	}
}

func TestEncodeDecodeProof(t *testing.T) {
	uri, err := EncodeProof(pngBytes)
	if err != nil {
		t.Fatalf("EncodeProof failed: %v", err)
	}
	if !strings.HasPrefix(uri, "data:image/png;base64,") {
		t.Fatalf("unexpected URI prefix: %q", uri[:30])
	}

	ct, data, err := DecodeProof(uri)
	if err != nil {
		t.Fatalf("DecodeProof failed: %v", err)
	}
	if ct != "image/png" {
		t.Fatalf("content type = %q", ct)
	}
	if !bytes.Equal(data, pngBytes) {
		t.Fatal("proof bytes did not round-trip")
	}
}

func TestEncodeProofRejectsNonImages(t *testing.T) {
	if _, err := EncodeProof([]byte("plain text, not an image")); !errors.Is(err, ErrNotImage) {
		t.Fatalf("expected ErrNotImage, got %v", err)
	}
	if _, err := EncodeProof(nil); !errors.Is(err, ErrMissingProof) {
		t.Fatalf("expected ErrMissingProof, got %v", err)
	}
}

func TestDecodeProofRejectsGarbage(t *testing.T) {
	for _, uri := range []string{
		"http://example.com/img.png",
		"data:image/png,notbase64marker",
		"data:image/png;base64,!!!",
	} {
		if _, _, err := DecodeProof(uri); !errors.Is(err, ErrBadProofURI) {
			t.Fatalf("DecodeProof(%q) = %v, want ErrBadProofURI", uri, err)
		}
	}
}

func TestFormatAmount(t *testing.T) {
	cases := map[int64]string{
		1000:  "10.00",
		0:     "0.00",
		5:     "0.05",
		12345: "123.45",
	}
	for cents, want := range cases {
		if got := FormatAmount(cents); got != want {
			t.Errorf("FormatAmount(%d) = %q, want %q", cents, got, want)
		}
	}
}
