package status

import "github.com/fitz/cockpit/internal/models"

// Palette maps each status to its display color.
var Palette = map[models.Status]string{
	models.StatusFatal:       "#8b5cf6",
	models.StatusCritique:    "#ef4444",
	models.StatusMineur:      "#f59e0b",
	models.StatusInformation: "#3b82f6",
	models.StatusOK:          "#22c55e",
	models.StatusDeconnecte:  "#6b7280",
}

// Color returns the display color of s, falling back to the ok color.
func Color(s models.Status) string {
	if c, ok := Palette[s]; ok {
		return c
	}
	return Palette[models.StatusOK]
}
