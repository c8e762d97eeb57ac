package attachments

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/ledongthuc/pdf"
)

// TypeValidator rejects files whose detected content type is not in
// the allow-list. Detection is done on the bytes, not the declared
// content type, so a mislabeled upload cannot sneak through.
type TypeValidator struct {
	Allowed []string
}

// Validate checks the detected content type against the allow-list.
func (v *TypeValidator) Validate(ctx context.Context, filename string, content []byte) (Outcome, error) {
	if err := ctx.Err(); err != nil {
		return Outcome{}, err
	}
	detected := mimetype.Detect(content)
	for _, allowed := range v.Allowed {
		if detected.Is(allowed) {
			return Valid(filename), nil
		}
	}
	reason := fmt.Sprintf("content type %s is not allowed (allowed: %s)", detected.String(), strings.Join(v.Allowed, ", "))
	return Invalid(filename, CategoryUnsupportedType, reason), nil
}

// PDFValidator rejects PDF files that cannot be parsed. Non-PDF
// content passes; the type check is a separate validator's concern.
type PDFValidator struct{}

// Validate parses the document structure when the content is a PDF.
func (v *PDFValidator) Validate(ctx context.Context, filename string, content []byte) (Outcome, error) {
	if err := ctx.Err(); err != nil {
		return Outcome{}, err
	}
	if !mimetype.Detect(content).Is("application/pdf") {
		return Valid(filename), nil
	}
	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return Invalid(filename, CategoryMalformedDocument, fmt.Sprintf("document cannot be parsed: %v", err)), nil
	}
	if reader.NumPage() < 1 {
		return Invalid(filename, CategoryMalformedDocument, "document has no pages"), nil
	}
	return Valid(filename), nil
}

var (
	_ Validator = (*TypeValidator)(nil)
	_ Validator = (*PDFValidator)(nil)
)
