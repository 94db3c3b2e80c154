package barcode

import (
	"regexp"
	"strings"

	"SmartCart-Backend/domain"
)

const maxQRLength = 2953

var (
	digitsOnly  = regexp.MustCompile(`^\d+$`)
	gtinPattern = regexp.MustCompile(`(?i)(?:GTIN|EAN|UPC)[:\s]*(\d{8,14})`)
	bareDigits  = regexp.MustCompile(`\b(\d{8,14})\b`)
)

type (
	// ValidationResult reports whether a scanned code is structurally valid
	// and which format it normalized to.
	ValidationResult struct {
		IsValid bool
		Format  string
	}
)

// Validate checks a raw scanned code against its claimed symbology. Numeric
// symbologies are length, digit and checksum checked; QR codes only need to
// be non-empty and within the QR capacity limit.
func Validate(raw string, symbology string) ValidationResult {
	code := strings.TrimSpace(raw)

	switch symbology {
	case domain.FormatQRCode:
		if code == "" || len(code) > maxQRLength {
			return ValidationResult{IsValid: false, Format: domain.FormatQRCode}
		}
		return ValidationResult{IsValid: true, Format: domain.FormatQRCode}
	case domain.FormatEAN13, domain.FormatEAN8, domain.FormatUPCA, domain.FormatUnknown, "":
		return validateNumeric(code)
	default:
		return ValidationResult{IsValid: false, Format: domain.FormatUnknown}
	}
}

func validateNumeric(code string) ValidationResult {
	if !digitsOnly.MatchString(code) {
		return ValidationResult{IsValid: false, Format: domain.FormatUnknown}
	}

	switch len(code) {
	case 8:
		return ValidationResult{IsValid: checkDigitValid(code), Format: domain.FormatEAN8}
	case 12:
		return ValidationResult{IsValid: checkDigitValid(code), Format: domain.FormatUPCA}
	case 13:
		return ValidationResult{IsValid: checkDigitValid(code), Format: domain.FormatEAN13}
	default:
		return ValidationResult{IsValid: false, Format: domain.FormatUnknown}
	}
}

// checkDigitValid applies the GS1 weighted checksum. EAN-13 weights run
// 1,3,1,3,... from the leftmost digit; EAN-8 and UPC-A run 3,1,3,1,...
func checkDigitValid(code string) bool {
	weights := [2]int{3, 1}
	if len(code) == 13 {
		weights = [2]int{1, 3}
	}

	sum := 0
	for i := 0; i < len(code)-1; i++ {
		sum += int(code[i]-'0') * weights[i%2]
	}

	expected := (10 - sum%10) % 10
	return int(code[len(code)-1]-'0') == expected
}

// IsProductQR reports whether a QR payload looks like it identifies a retail
// product, either via an explicit GTIN/EAN/UPC marker or a bare digit run.
func IsProductQR(payload string) bool {
	return ExtractGTIN(payload) != ""
}

// ExtractGTIN pulls the first product code out of a free-text payload.
// Returns "" when nothing barcode-shaped is present.
func ExtractGTIN(payload string) string {
	if m := gtinPattern.FindStringSubmatch(payload); m != nil {
		return m[1]
	}
	if m := bareDigits.FindStringSubmatch(payload); m != nil {
		return m[1]
	}
	return ""
}

// IsValidGTIN reports whether a code can be sent to a GTIN-keyed catalog:
// 8, 12, 13 or 14 numeric digits and not a store-internal code.
func IsValidGTIN(code string) bool {
	if !digitsOnly.MatchString(code) {
		return false
	}
	switch len(code) {
	case 8, 12, 13, 14:
		return !isStoreInternal(code)
	default:
		return false
	}
}

// isStoreInternal recognizes GS1 restricted-circulation prefixes (in-store
// scales and retailer-internal numbering): EAN-13 starting with 2, or the
// 02/04/2x company prefixes after zero padding.
func isStoreInternal(code string) bool {
	padded := code
	for len(padded) < 13 {
		padded = "0" + padded
	}
	return padded[0] == '2' || strings.HasPrefix(padded, "02") || strings.HasPrefix(padded, "04")
}

// NormalizeGTIN left-pads 8 and 12 digit codes to the 13-digit form the
// catalogs are keyed by. Other lengths pass through unchanged.
func NormalizeGTIN(code string) string {
	switch len(code) {
	case 8, 12:
		return strings.Repeat("0", 13-len(code)) + code
	default:
		return code
	}
}

// DetectFormat tags a raw code without checksum-validating it.
func DetectFormat(code string) string {
	if !digitsOnly.MatchString(code) {
		if code != "" && len(code) <= maxQRLength {
			return domain.FormatQRCode
		}
		return domain.FormatUnknown
	}
	switch len(code) {
	case 8:
		return domain.FormatEAN8
	case 12:
		return domain.FormatUPCA
	case 13:
		return domain.FormatEAN13
	default:
		return domain.FormatUnknown
	}
}
