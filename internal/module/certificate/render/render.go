// Package render produces certificate PDFs. Output depends only on the
// CertificateData passed in, so rendering the same certificate twice yields
// the same bytes.
package render

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
)

const dateLayout = "2 January 2006"

type CertificateData struct {
	CertificateNumber string
	HolderName        string
	CourseName        string
	DurationHours     int
	IssueDate         time.Time
	ExpiryDate        time.Time
	Issuer            string
}

func (d CertificateData) canonical() string {
	return strings.Join([]string{
		d.CertificateNumber,
		d.HolderName,
		d.CourseName,
		fmt.Sprintf("%d", d.DurationHours),
		d.IssueDate.UTC().Format("2006-01-02"),
		d.ExpiryDate.UTC().Format("2006-01-02"),
		d.Issuer,
	}, "\x1f")
}

// VerificationCode is printed on the certificate so a reader can check it
// against the issuer's records.
func VerificationCode(d CertificateData) string {
	sum := sha256.Sum256([]byte(d.canonical()))
	return strings.ToUpper(hex.EncodeToString(sum[:8]))
}

func Render(d CertificateData) ([]byte, error) {
	pdf := fpdf.New("L", "mm", "A4", "")
	// document dates come from the certificate, never the clock
	pdf.SetCreationDate(d.IssueDate.UTC())
	pdf.SetModificationDate(d.IssueDate.UTC())
	pdf.SetCatalogSort(true)
	pdf.SetCompression(true)

	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetTitle(fmt.Sprintf("Certificate %s", d.CertificateNumber), true)
	pdf.SetAuthor(d.Issuer, true)
	pdf.SetSubject(d.CourseName, true)
	pdf.SetCreator(d.Issuer, true)

	pdf.AddPage()
	w, h := pdf.GetPageSize()

	pdf.SetDrawColor(40, 70, 120)
	pdf.SetLineWidth(1.5)
	pdf.Rect(10, 10, w-20, h-20, "D")
	pdf.SetLineWidth(0.4)
	pdf.Rect(14, 14, w-28, h-28, "D")

	pdf.SetY(35)
	pdf.SetFont("Helvetica", "B", 30)
	pdf.SetTextColor(40, 70, 120)
	pdf.CellFormat(0, 14, tr("Certificate of Completion"), "", 1, "C", false, 0, "")

	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 14)
	pdf.SetTextColor(60, 60, 60)
	pdf.CellFormat(0, 8, tr("This is to certify that"), "", 1, "C", false, 0, "")

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 26)
	pdf.SetTextColor(20, 20, 20)
	pdf.CellFormat(0, 14, tr(d.HolderName), "", 1, "C", false, 0, "")

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "", 14)
	pdf.SetTextColor(60, 60, 60)
	pdf.CellFormat(0, 8, tr("has successfully completed"), "", 1, "C", false, 0, "")

	pdf.Ln(2)
	pdf.SetFont("Helvetica", "B", 20)
	pdf.SetTextColor(40, 70, 120)
	pdf.CellFormat(0, 12, tr(d.CourseName), "", 1, "C", false, 0, "")

	if d.DurationHours > 0 {
		pdf.SetFont("Helvetica", "", 12)
		pdf.SetTextColor(60, 60, 60)
		pdf.CellFormat(0, 8, tr(fmt.Sprintf("%d hours of training", d.DurationHours)), "", 1, "C", false, 0, "")
	}

	pdf.SetY(h - 60)
	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(40, 40, 40)
	col := (w - 40) / 3
	pdf.SetX(20)
	pdf.CellFormat(col, 6, tr("Issued: "+d.IssueDate.UTC().Format(dateLayout)), "", 0, "L", false, 0, "")
	pdf.CellFormat(col, 6, tr("Certificate No. "+d.CertificateNumber), "", 0, "C", false, 0, "")
	pdf.CellFormat(col, 6, tr("Valid until: "+d.ExpiryDate.UTC().Format(dateLayout)), "", 1, "R", false, 0, "")

	pdf.Ln(10)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.SetTextColor(90, 90, 90)
	pdf.CellFormat(0, 6, tr(d.Issuer), "", 1, "C", false, 0, "")
	pdf.SetFont("Courier", "", 9)
	pdf.CellFormat(0, 6, "Verification code: "+VerificationCode(d), "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render certificate %s: %w", d.CertificateNumber, err)
	}
	return buf.Bytes(), nil
}
