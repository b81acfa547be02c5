// Package payment implements the proof-of-payment step: the scannable
// payment target and the transaction-reference/screenshot gate. No
// payment network is contacted; the reference is recorded as supplied.
package payment

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

var (
	ErrMissingTransactionID = errors.New("please enter the transaction ID first")
	ErrMissingProof         = errors.New("please upload the payment proof")
	ErrNotImage             = errors.New("payment proof must be an image")
	ErrBadProofURI          = errors.New("malformed payment proof data URI")
)

type Details struct {
	AmountCents int64
	Recipient   string
	Account     string
}

// TargetPayload builds the string encoded into the QR code. Informational
// only, not a real payment-network URI.
func (d Details) TargetPayload() string {
	return fmt.Sprintf("pay://amount=%s&recipient=%s&account=%s",
		FormatAmount(d.AmountCents), d.Recipient, d.Account)
}

func (d Details) QRCodePNG(size int) ([]byte, error) {
	png, err := qrcode.Encode(d.TargetPayload(), qrcode.High, size)
	if err != nil {
		return nil, fmt.Errorf("failed to render payment QR code: %w", err)
	}
	return png, nil
}

// ValidateSubmission enforces the submission gate: a transaction
// reference must be present before a proof is considered, and both are
// required.
func ValidateSubmission(transactionID string, proof []byte) error {
	if strings.TrimSpace(transactionID) == "" {
		return ErrMissingTransactionID
	}
	if len(proof) == 0 {
		return ErrMissingProof
	}
	return nil
}

// EncodeProof sniffs the uploaded bytes and wraps them in a
// self-contained data URI. Only image content is accepted.
func EncodeProof(data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrMissingProof
	}
	ct := http.DetectContentType(data)
	if !strings.HasPrefix(ct, "image/") {
		return "", ErrNotImage
	}
	return "data:" + ct + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// DecodeProof is the inverse of EncodeProof, used by the admin proof
// viewer.
func DecodeProof(uri string) (contentType string, data []byte, err error) {
	if !strings.HasPrefix(uri, "data:") {
		return "", nil, ErrBadProofURI
	}
	rest := strings.TrimPrefix(uri, "data:")
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok || !strings.HasSuffix(meta, ";base64") {
		return "", nil, ErrBadProofURI
	}
	contentType = strings.TrimSuffix(meta, ";base64")
	data, err = base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrBadProofURI, err)
	}
	return contentType, data, nil
}

// FormatAmount renders cents as a plain decimal amount, e.g. 1000 -> "10.00".
func FormatAmount(cents int64) string {
	return fmt.Sprintf("%d.%02d", cents/100, cents%100)
}
