// internal/sheets/normalize.go
package sheets

import (
	"regexp"
	"strconv"
	"strings"

	"estate-match-backend/internal/common/metrics"
	"estate-match-backend/internal/models"
)

var nonDigits = regexp.MustCompile(`[^0-9]`)

// NormalizeRows coerces feed rows into typed properties. Every field
// defaults rather than rejects; the only admission requirement is a
// non-empty id and title after trimming. Source row order is preserved.
func NormalizeRows(rows []Row) []models.Property {
	properties := make([]models.Property, 0, len(rows))

	for _, row := range rows {
		property := models.Property{
			ID:          strings.TrimSpace(row["id"]),
			Title:       strings.TrimSpace(row["title"]),
			Price:       parseIntField(row["price"]),
			City:        strings.TrimSpace(row["city"]),
			Area:        strings.TrimSpace(row["area"]),
			Rooms:       parseIntField(row["rooms"]),
			Baths:       parseIntField(row["baths"]),
			Size:        parseIntField(row["size"]),
			Description: strings.TrimSpace(row["description"]),
			Status:      normalizeStatus(row["status"]),
			Images:      splitImages(row["images"]),
			Featured:    parseFlag(row["featured"]),
		}

		if property.ID == "" || property.Title == "" {
			metrics.CatalogRowsDropped.Inc()
			continue
		}

		properties = append(properties, property)
	}

	return properties
}

// parseIntField strips every non-digit character before parsing; parse
// failure or an empty result yields 0.
func parseIntField(raw string) int {
	digits := nonDigits.ReplaceAllString(raw, "")
	if digits == "" {
		return 0
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0
	}
	return n
}

// normalizeStatus maps to sold only on an exact case-insensitive match;
// everything else, including empty, is for_sale.
func normalizeStatus(raw string) models.PropertyStatus {
	if strings.ToLower(strings.TrimSpace(raw)) == "sold" {
		return models.StatusSold
	}
	return models.StatusForSale
}

// splitImages splits on comma, trims parts, drops empties, preserves
// order and duplicates.
func splitImages(raw string) []string {
	images := []string{}
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			images = append(images, part)
		}
	}
	return images
}

// parseFlag is true only for an exact case-insensitive "true".
func parseFlag(raw string) bool {
	return strings.ToLower(strings.TrimSpace(raw)) == "true"
}
