package transfer

import (
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"
)

// maxNameBytes is the FAT/exFAT limit for a single name.
const maxNameBytes = 255

// SanitizeFileName makes name safe for FAT and exFAT devices. Reserved
// characters and control characters become "_", and trailing dots and spaces
// are dropped.
func SanitizeFileName(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case strings.ContainsRune(`<>:"/\|?*`, r), unicode.IsControl(r):
			b.WriteRune('_')
		default:
			b.WriteRune(r)
		}
	}
	out := strings.TrimRight(strings.TrimSpace(b.String()), ". ")
	if out == "" {
		return "_"
	}
	return out
}

// fileName joins a sanitised stem and extension, truncating the stem on a
// rune boundary so the result fits in maxNameBytes.
func fileName(stem, ext string) string {
	stem = SanitizeFileName(stem)
	limit := maxNameBytes - len(ext)
	if len(stem) > limit {
		cut := limit
		for cut > 0 && !utf8.RuneStart(stem[cut]) {
			cut--
		}
		stem = strings.TrimRight(stem[:cut], ". ")
	}
	return stem + ext
}

// DownloadName is the flat device name of a lesson: subject_subSubject_title.
func DownloadName(subject, subSubject, title, ext string) string {
	return fileName(subject+"_"+subSubject+"_"+title, ext)
}

// ExportName is the per-folder device name of a lesson: title_year.
func ExportName(title, year, ext string) string {
	if year == "" {
		return fileName(title, ext)
	}
	return fileName(title+"_"+year, ext)
}

func extOr(path, fallback string) string {
	if ext := strings.ToLower(filepath.Ext(path)); ext != "" {
		return ext
	}
	return fallback
}
