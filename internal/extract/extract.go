package extract

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

// MaxUploadBytes is the largest PDF accepted for extraction.
const MaxUploadBytes = 5 << 20

// shortTextThreshold flags extractions that produced suspiciously little
// text; the caller still gets the text, just with a warning set.
const shortTextThreshold = 50

var (
	// ErrWrongMimeType means the upload is not a PDF.
	ErrWrongMimeType = errors.New("only PDF files are supported")
	// ErrEmptyFile means the upload had no bytes.
	ErrEmptyFile = errors.New("file is empty")
	// ErrTooLarge means the upload exceeds MaxUploadBytes.
	ErrTooLarge = errors.New("file size must be less than 5MB")
	// ErrPasswordProtected means the PDF is encrypted and cannot be read.
	ErrPasswordProtected = errors.New("PDF is password-protected")
	// ErrScannedNoText means the PDF parsed but contains no selectable text,
	// typically a scanned document.
	ErrScannedNoText = errors.New("no selectable text found in PDF; scanned documents are not supported")
	// ErrCorrupted means the bytes do not parse as a PDF.
	ErrCorrupted = errors.New("file appears to be corrupted or is not a valid PDF")
)

// Extraction is the extracted text plus the display statistics shown next to
// the upload control.
type Extraction struct {
	Text       string `json:"text"`
	Pages      int    `json:"pages"`
	Characters int    `json:"characters"`
	Words      int    `json:"words"`
	Lines      int    `json:"lines"`

	// Warning is set when the extracted text is too short to analyze on its
	// own; the caller decides whether to proceed.
	Warning bool `json:"warning,omitempty"`
}

// FromBytes extracts plain text and statistics from an uploaded PDF.
func FromBytes(data []byte, mimeType string) (Extraction, error) {
	if !isPDFMime(mimeType) {
		return Extraction{}, ErrWrongMimeType
	}
	if len(data) == 0 {
		return Extraction{}, ErrEmptyFile
	}
	if len(data) > MaxUploadBytes {
		return Extraction{}, ErrTooLarge
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return Extraction{}, classifyPDFError(err)
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return Extraction{}, classifyPDFError(err)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return Extraction{}, classifyPDFError(err)
	}

	text := normalizeWhitespace(buf.String())
	if text == "" {
		return Extraction{}, ErrScannedNoText
	}

	ex := Extraction{
		Text:       text,
		Pages:      reader.NumPage(),
		Characters: len([]rune(text)),
		Words:      len(strings.Fields(text)),
		Lines:      strings.Count(text, "\n") + 1,
	}
	if ex.Characters < shortTextThreshold {
		ex.Warning = true
	}
	return ex, nil
}

func isPDFMime(mimeType string) bool {
	mt := strings.ToLower(strings.TrimSpace(mimeType))
	if i := strings.IndexByte(mt, ';'); i >= 0 {
		mt = strings.TrimSpace(mt[:i])
	}
	return mt == "application/pdf"
}

// normalizeWhitespace collapses runs of spaces within each line and drops
// blank lines, keeping line structure for the statistics.
func normalizeWhitespace(s string) string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

// classifyPDFError maps parser failures onto the typed extraction errors.
// The pdf package has no sentinel errors of its own, so this goes by message.
func classifyPDFError(err error) error {
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "password") || strings.Contains(msg, "encrypt") {
		return ErrPasswordProtected
	}
	return fmt.Errorf("%w: %v", ErrCorrupted, err)
}
