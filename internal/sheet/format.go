package sheet

import (
	"errors"
	"fmt"
	"mime"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Media types accepted for upload.
const (
	MediaTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	MediaTypeXLS  = "application/vnd.ms-excel"
	MediaTypeCSV  = "text/csv"
)

// AllowedMediaTypes is the exact allow-list checked against the declared
// content type of an upload.
var AllowedMediaTypes = []string{MediaTypeXLSX, MediaTypeXLS, MediaTypeCSV}

var (
	// ErrUnsupportedMediaType is returned when the declared media type is not
	// on the allow-list.
	ErrUnsupportedMediaType = errors.New("unsupported media type")

	// ErrLegacySpreadsheet is returned for binary BIFF (.xls) workbooks.
	ErrLegacySpreadsheet = errors.New("legacy .xls workbooks are not supported")

	// ErrUnreadable wraps every failure to turn bytes into a grid.
	ErrUnreadable = errors.New("unreadable file")
)

// Format is the decoder chosen for a file.
type Format int

const (
	FormatUnknown Format = iota
	FormatCSV
	FormatXLSX
)

func (f Format) String() string {
	switch f {
	case FormatCSV:
		return "csv"
	case FormatXLSX:
		return "xlsx"
	default:
		return "unknown"
	}
}

// IsAllowedMediaType reports whether declared (parameters ignored) is on the
// allow-list.
func IsAllowedMediaType(declared string) bool {
	media, _, err := mime.ParseMediaType(declared)
	if err != nil {
		return false
	}
	for _, allowed := range AllowedMediaTypes {
		if media == allowed {
			return true
		}
	}
	return false
}

// ResolveFormat checks the declared media type against the allow-list and then
// picks a decoder from the content itself. Browsers routinely label CSV files
// as application/vnd.ms-excel, so the declared type alone is not trusted.
func ResolveFormat(declared string, data []byte) (Format, error) {
	if !IsAllowedMediaType(declared) {
		return FormatUnknown, fmt.Errorf("%w: %q", ErrUnsupportedMediaType, declared)
	}
	return DetectFormat(data)
}

// DetectFormat picks a decoder by sniffing data.
func DetectFormat(data []byte) (Format, error) {
	if len(data) == 0 {
		return FormatCSV, nil
	}

	m := mimetype.Detect(data)
	switch {
	// The sniffer only inspects a prefix of the archive, so a workbook whose
	// xl/ entries come late is reported as a plain zip. Let the workbook
	// reader decide.
	case isA(m, MediaTypeXLSX), isA(m, "application/zip"):
		return FormatXLSX, nil
	case isA(m, "application/x-ole-storage"):
		return FormatUnknown, ErrLegacySpreadsheet
	case isA(m, "text/plain"):
		return FormatCSV, nil
	default:
		return FormatUnknown, fmt.Errorf("%w: detected %s", ErrUnreadable, m.String())
	}
}

// isA walks the detected type and its parents.
func isA(m *mimetype.MIME, target string) bool {
	for ; m != nil; m = m.Parent() {
		if m.Is(target) {
			return true
		}
	}
	return false
}

// Decode turns data into a grid using the given format.
func Decode(format Format, data []byte) (Grid, error) {
	switch format {
	case FormatCSV:
		return DecodeCSV(data)
	case FormatXLSX:
		return DecodeXLSX(data)
	default:
		return nil, fmt.Errorf("%w: no decoder for format %s", ErrUnreadable, format)
	}
}

// DecodeAuto sniffs data and decodes it.
func DecodeAuto(data []byte) (Grid, Format, error) {
	format, err := DetectFormat(data)
	if err != nil {
		return nil, FormatUnknown, err
	}
	grid, err := Decode(format, data)
	return grid, format, err
}

// MediaTypeFromFileName guesses a declared type from an extension, for callers
// such as the CLI that have no Content-Type header.
func MediaTypeFromFileName(name string) string {
	lower := strings.ToLower(name)
	switch {
	case strings.HasSuffix(lower, ".xlsx"):
		return MediaTypeXLSX
	case strings.HasSuffix(lower, ".xls"):
		return MediaTypeXLS
	case strings.HasSuffix(lower, ".csv"):
		return MediaTypeCSV
	default:
		return "application/octet-stream"
	}
}
