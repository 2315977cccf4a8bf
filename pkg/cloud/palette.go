package cloud

import (
	"slices"
	"sort"
)

// Named palettes. Every palette carries at least six colors; selection
// cycles by rank, so a palette's length only affects how soon colors
// repeat.
var palettes = map[string][]string{
	"purple": {"#7c3aed", "#8b5cf6", "#a78bfa", "#c4b5fd", "#6d28d9", "#5b21b6"},
	"pink":   {"#db2777", "#ec4899", "#f472b6", "#f9a8d4", "#be185d", "#9d174d"},
	"blue":   {"#2563eb", "#3b82f6", "#60a5fa", "#93c5fd", "#1d4ed8", "#1e40af"},
	"green":  {"#059669", "#10b981", "#34d399", "#6ee7b7", "#047857", "#065f46"},
	"sunset": {"#f59e0b", "#f97316", "#ef4444", "#ec4899", "#d97706", "#b45309"},
	"orange": {"#ea580c", "#f97316", "#fb923c", "#fdba74", "#c2410c", "#9a3412"},
	"pastel": {"#a5b4fc", "#f9a8d4", "#6ee7b7", "#fde68a", "#fdba74", "#93c5fd"},
	"mono":   {"#111827", "#374151", "#4b5563", "#6b7280", "#9ca3af", "#d1d5db"},
}

// Themes returns the sorted list of palette names.
func Themes() []string {
	names := make([]string, 0, len(palettes))
	for name := range palettes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ValidTheme reports whether name is a known palette name.
func ValidTheme(name string) bool {
	_, ok := palettes[name]
	return ok
}

// Palette resolves a theme name to its color list. Unknown names fall
// back to the default theme so rendering never fails on configuration.
// The returned slice is a copy; callers may mutate it.
func Palette(theme string) []string {
	p, ok := palettes[theme]
	if !ok {
		p = palettes[DefaultTheme]
	}
	return slices.Clone(p)
}

// Color selects the palette entry for a rank, cycling when rank
// exceeds the palette length. An empty palette yields the first color
// of the default theme so callers always receive a drawable value.
func Color(rank int, palette []string) string {
	if len(palette) == 0 {
		return palettes[DefaultTheme][0]
	}
	if rank < 0 {
		rank = 0
	}
	return palette[rank%len(palette)]
}
