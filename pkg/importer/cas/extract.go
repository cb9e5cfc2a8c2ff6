package cas

import (
	"bytes"
	"errors"
	"io"
	"strings"

	"github.com/arthamitra/arthamitra/pkg/domain/portfolio"
	"github.com/ledongthuc/pdf"
)

// pdfMagic is the file signature every statement upload must start with.
var pdfMagic = []byte("%PDF")

// SniffPDF reports whether the uploaded bytes look like a PDF document.
func SniffPDF(head []byte) bool {
	return bytes.HasPrefix(head, pdfMagic)
}

// ExtractText opens the statement PDF, decrypting it with password when one
// is supplied, and returns its plain text content page by page.
func ExtractText(file io.ReaderAt, size int64, password string) (string, error) {
	reader, err := pdf.NewReaderEncrypted(file, size, func() string { return password })
	if err != nil {
		if errors.Is(err, pdf.ErrInvalidPassword) {
			return "", portfolio.ErrDecryptionFailed
		}
		return "", portfolio.ErrParseFailed
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", portfolio.ErrParseFailed
	}
	var sb strings.Builder
	if _, err := io.Copy(&sb, plain); err != nil {
		return "", portfolio.ErrParseFailed
	}
	return sb.String(), nil
}
