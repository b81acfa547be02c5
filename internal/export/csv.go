// Package export produces the admin registration report as CSV.
package export

import (
	"fmt"
	"io"
	"strings"

	"campushub/internal/model"
	"campushub/internal/payment"
)

// Header is the fixed column set; it no longer depends on the first data
// row, so an empty filter exports a header-only file.
var Header = []string{
	"Event",
	"Registration Date",
	"Name",
	"Email",
	"Phone",
	"Payment Status",
	"Payment Amount",
	"Transaction ID",
	"Payment Date",
	"Special Requirements",
}

const timeLayout = "2006-01-02 15:04:05"

// Registrations writes one quoted row per registration, joined to its
// event's title. A dangling event reference is reported as
// "Unknown Event" rather than dropped.
func Registrations(w io.Writer, regs []model.Registration, events []model.Event) error {
	titles := make(map[string]string, len(events))
	for _, e := range events {
		titles[e.ID] = e.Title
	}

	if err := writeRow(w, Header); err != nil {
		return err
	}
	for _, reg := range regs {
		title, ok := titles[reg.EventID]
		if !ok {
			title = "Unknown Event"
		}
		txn := reg.TransactionID
		if txn == "" {
			txn = "N/A"
		}
		paymentDate := "N/A"
		if reg.PaymentSubmittedAt != nil {
			paymentDate = reg.PaymentSubmittedAt.Format(timeLayout)
		}
		requirements := reg.Requirements
		if requirements == "" {
			requirements = "None"
		}
		row := []string{
			title,
			reg.Timestamp.Format(timeLayout),
			reg.Name,
			reg.Email,
			reg.Phone,
			string(reg.PaymentStatus),
			payment.FormatAmount(reg.AmountCents),
			txn,
			paymentDate,
			requirements,
		}
		if err := writeRow(w, row); err != nil {
			return err
		}
	}
	return nil
}

// writeRow emits an RFC 4180 record with every field quoted.
// encoding/csv quotes only when required; the report format quotes
// unconditionally, so records are written by hand.
func writeRow(w io.Writer, fields []string) error {
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = `"` + strings.ReplaceAll(f, `"`, `""`) + `"`
	}
	_, err := fmt.Fprintln(w, strings.Join(quoted, ","))
	return err
}

// Filename mirrors the download name of the admin panel:
// registrations.csv, or registrations-<event title>.csv when filtered.
func Filename(eventTitle string) string {
	if eventTitle == "" {
		return "registrations.csv"
	}
	return "registrations-" + eventTitle + ".csv"
}
