package extract

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"io"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"

	"github.com/jaiwin14/JobnexusAI/internal/ai"
	apperrors "github.com/jaiwin14/JobnexusAI/internal/errors"
	"github.com/jaiwin14/JobnexusAI/internal/types"
)

// OCRClient transcribes resume images to plain text.
type OCRClient interface {
	ExtractImageText(ctx context.Context, mimeType string, data []byte) (string, *ai.TokenUsage, error)
}

// Extractor converts uploaded resume documents into plain text. PDF and DOCX
// are handled locally; images go through the OCR client.
type Extractor struct {
	ocr    OCRClient
	logger *apperrors.Logger
}

// New creates an extractor. ocr may be nil, in which case image uploads are
// rejected as unsupported.
func New(ocr OCRClient, logger *apperrors.Logger) *Extractor {
	return &Extractor{ocr: ocr, logger: logger}
}

// Text extracts the document's plain text. Unsupported media types and
// documents that yield no text are errors; callers rely on the text being
// non-empty.
func (e *Extractor) Text(ctx context.Context, doc types.ResumeDocument) (string, error) {
	mediaType := normalizeMediaType(doc.MediaType)

	var text string
	var err error

	switch mediaType {
	case "application/pdf":
		text, err = extractPDF(doc.Data)
	case "application/vnd.openxmlformats-officedocument.wordprocessingml.document":
		text, err = extractDOCX(doc.Data)
	case "text/plain":
		text = string(doc.Data)
	case "image/png", "image/jpeg", "image/webp":
		text, err = e.extractImage(ctx, mediaType, doc.Data)
	default:
		return "", apperrors.NewValidationError(apperrors.ErrCodeUnsupportedMediaType,
			fmt.Sprintf("Unsupported resume media type: %s", doc.MediaType), nil).
			WithContext("media_type", doc.MediaType).
			WithContext("file_name", doc.FileName)
	}

	if err != nil {
		return "", err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", apperrors.NewIOError(apperrors.ErrCodeTextExtractionFailed,
			"Document produced no extractable text", nil).
			WithContext("media_type", doc.MediaType).
			WithContext("file_name", doc.FileName)
	}

	e.logger.Debug("Extracted resume text",
		"media_type", mediaType,
		"file_name", doc.FileName,
		"text_length", len(text))

	return text, nil
}

func (e *Extractor) extractImage(ctx context.Context, mediaType string, data []byte) (string, error) {
	if e.ocr == nil {
		return "", apperrors.NewValidationError(apperrors.ErrCodeUnsupportedMediaType,
			"Image resumes require the AI transcription service", nil)
	}
	text, _, err := e.ocr.ExtractImageText(ctx, mediaType, data)
	if err != nil {
		return "", apperrors.NewIOError(apperrors.ErrCodeTextExtractionFailed,
			"Image transcription failed", err)
	}
	return text, nil
}

func extractPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", apperrors.NewIOError(apperrors.ErrCodeTextExtractionFailed,
			"Failed to open PDF document", err)
	}

	content, err := reader.GetPlainText()
	if err != nil {
		return "", apperrors.NewIOError(apperrors.ErrCodeTextExtractionFailed,
			"Failed to extract PDF text", err)
	}

	var b strings.Builder
	if _, err := io.Copy(&b, content); err != nil {
		return "", apperrors.NewIOError(apperrors.ErrCodeTextExtractionFailed,
			"Failed to read PDF text stream", err)
	}
	return b.String(), nil
}

func extractDOCX(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", apperrors.NewIOError(apperrors.ErrCodeTextExtractionFailed,
			"Failed to open DOCX document", err)
	}
	defer func() { _ = doc.Close() }()

	return docxXMLToText(doc.Editable().GetContent()), nil
}

var (
	docxParagraphEnd = regexp.MustCompile(`</w:p>`)
	docxTags         = regexp.MustCompile(`<[^>]+>`)
)

// docxXMLToText flattens WordprocessingML into plain text. Paragraph ends
// become newlines before every remaining tag is dropped.
func docxXMLToText(content string) string {
	text := docxParagraphEnd.ReplaceAllString(content, "\n")
	text = docxTags.ReplaceAllString(text, "")
	return html.UnescapeString(text)
}

// normalizeMediaType lowercases the media type and drops any parameters such
// as charset.
func normalizeMediaType(mediaType string) string {
	mediaType = strings.ToLower(strings.TrimSpace(mediaType))
	if idx := strings.IndexByte(mediaType, ';'); idx >= 0 {
		mediaType = strings.TrimSpace(mediaType[:idx])
	}
	if mediaType == "image/jpg" {
		return "image/jpeg"
	}
	return mediaType
}
