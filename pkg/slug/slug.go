// Copyright (c) 2026 Dugout. All rights reserved.

// Package slug generates ASCII slugs from arbitrary Unicode strings.
//
// Uploaded drill videos keep a readable trace of the coach's original file
// name ("Vídeo Bullpen 1.MOV" becomes "video-bullpen-1.mov") so the upload
// directory stays browsable.
package slug

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9-]+`)
	multiHyphen     = regexp.MustCompile(`-{2,}`)
)

// maxBaseLen bounds the slugged part of a file name.
const maxBaseLen = 60

// From converts an arbitrary Unicode string into a URL-safe ASCII slug.
//
// The string is NFD-normalized, combining marks are dropped, everything is
// lowercased and runs of other characters collapse into a single hyphen.
func From(s string) string {
	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn))
	result, _, _ := transform.String(t, s)

	result = strings.ToLower(result)
	result = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return '-'
	}, result)

	result = nonAlphanumeric.ReplaceAllString(result, "-")
	result = multiHyphen.ReplaceAllString(result, "-")
	return strings.Trim(result, "-")
}

// FileName slugs the base of a file name and keeps its extension (lowercased).
// An empty result falls back to "file".
func FileName(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, `\`, "/"))
	ext := strings.ToLower(filepath.Ext(name))
	base := From(strings.TrimSuffix(name, filepath.Ext(name)))

	if len(base) > maxBaseLen {
		base = strings.Trim(base[:maxBaseLen], "-")
	}
	if base == "" {
		base = "file"
	}
	if From(ext) == "" {
		ext = ""
	}
	return base + ext
}

func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}
