package valueobjects

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"regexp"
	"strings"

	_ "golang.org/x/image/webp"
)

type ImageFormat string

const (
	JPEG ImageFormat = "jpeg"
	PNG  ImageFormat = "png"
	WEBP ImageFormat = "webp"
)

type MimeType string

const (
	MimeTypeJPEG MimeType = "image/jpeg"
	MimeTypePNG  MimeType = "image/png"
	MimeTypeWEBP MimeType = "image/webp"
)

var dataURIPattern = regexp.MustCompile(`^data:(image/[a-zA-Z0-9.+-]+);base64,(.*)$`)

// ImageData is an image payload together with the MIME type it is sent or
// received under. The MIME type always matches the decoded format.
type ImageData struct {
	data     []byte
	format   ImageFormat
	mimeType MimeType
}

// NewImageData validates that data decodes as a supported image. The declared
// mimeType is only a hint; the detected format wins when they disagree.
func NewImageData(data []byte, mimeType string) (*ImageData, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("image data cannot be empty")
	}

	format, err := detectFormat(data)
	if err != nil {
		return nil, fmt.Errorf("unsupported image format: %w", err)
	}

	return &ImageData{
		data:     data,
		format:   format,
		mimeType: format.MimeType(),
	}, nil
}

// ParseDataURI decodes a data:<mime>;base64,<payload> string.
func ParseDataURI(uri string) (*ImageData, error) {
	matches := dataURIPattern.FindStringSubmatch(strings.TrimSpace(uri))
	if len(matches) != 3 {
		return nil, fmt.Errorf("not a base64 image data URI")
	}

	data, err := base64.StdEncoding.DecodeString(matches[2])
	if err != nil {
		return nil, fmt.Errorf("failed to decode data URI payload: %w", err)
	}

	img, err := NewImageData(data, matches[1])
	if err != nil {
		return nil, err
	}
	if img.MimeType() != MimeType(matches[1]) {
		return nil, fmt.Errorf("data URI declares %s but payload is %s", matches[1], img.MimeType())
	}

	return img, nil
}

func (i *ImageData) Data() []byte {
	return i.data
}

func (i *ImageData) Format() ImageFormat {
	return i.format
}

func (i *ImageData) MimeType() MimeType {
	return i.mimeType
}

func (i *ImageData) Size() int {
	return len(i.data)
}

func (i *ImageData) ToBase64() string {
	return base64.StdEncoding.EncodeToString(i.data)
}

func (i *ImageData) DataURI() string {
	return fmt.Sprintf("data:%s;base64,%s", i.mimeType, i.ToBase64())
}

func (f ImageFormat) MimeType() MimeType {
	switch f {
	case JPEG:
		return MimeTypeJPEG
	case PNG:
		return MimeTypePNG
	case WEBP:
		return MimeTypeWEBP
	default:
		return ""
	}
}

// detectFormat accepts the formats the model endpoints take as inline data.
// GIF decodes but is refused.
func detectFormat(data []byte) (ImageFormat, error) {
	reader := bytes.NewReader(data)
	_, format, err := image.DecodeConfig(reader)
	if err != nil {
		return "", err
	}

	switch format {
	case "jpeg":
		return JPEG, nil
	case "png":
		return PNG, nil
	case "webp":
		return WEBP, nil
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}
