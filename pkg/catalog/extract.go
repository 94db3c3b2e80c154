package catalog

import (
	"regexp"
	"strconv"
	"strings"

	"SmartCart-Backend/domain"
)

var (
	weightPattern = regexp.MustCompile(`(?i)(\d+(?:[.,]\d+)?)\s*(kg|g)\b`)
	volumePattern = regexp.MustCompile(`(?i)(\d+(?:[.,]\d+)?)\s*(l|lt|litros?|ml)\b`)
)

// ExtractMeasurements pulls weight and volume out of a free-text product
// name ("Arroz Tio João 1kg", "Coca-Cola 2 L"). Weights normalize to kg,
// volumes to liters; the unit field reflects what was found.
func ExtractMeasurements(name string) domain.ProductMetadata {
	var meta domain.ProductMetadata

	if m := weightPattern.FindStringSubmatch(name); m != nil {
		value := parseDecimal(m[1])
		if strings.EqualFold(m[2], "g") {
			value /= 1000
		}
		meta.WeightKg = value
		meta.Unit = "kg"
	}

	if m := volumePattern.FindStringSubmatch(name); m != nil {
		value := parseDecimal(m[1])
		if strings.EqualFold(m[2], "ml") {
			value /= 1000
		}
		meta.VolumeL = value
		if meta.Unit == "" {
			meta.Unit = "l"
		}
	}

	return meta
}

func parseDecimal(raw string) float64 {
	value, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", "."), 64)
	if err != nil {
		return 0
	}
	return value
}
