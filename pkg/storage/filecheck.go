package storage

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
)

// FileKind groups the upload targets by what content they accept.
type FileKind string

const (
	FileKindImage    FileKind = "image"    // logos, photos
	FileKindDocument FileKind = "document" // resumes, licenses, certifications
)

// Magic byte signatures per extension. An extension may have multiple
// valid prefixes.
var magicBytes = map[string][][]byte{
	".jpg":  {{0xFF, 0xD8, 0xFF}},
	".jpeg": {{0xFF, 0xD8, 0xFF}},
	".png":  {{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}},
	".gif":  {{0x47, 0x49, 0x46, 0x38, 0x37, 0x61}, {0x47, 0x49, 0x46, 0x38, 0x39, 0x61}},
	".webp": {{0x52, 0x49, 0x46, 0x46}},
	".pdf":  {{0x25, 0x50, 0x44, 0x46}},
	".doc":  {{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}},
	".docx": {{0x50, 0x4B, 0x03, 0x04}},
}

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

var documentExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
}

// ContentTypeFor returns the MIME type to store alongside an object.
func ContentTypeFor(ext string) string {
	switch strings.ToLower(ext) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	case ".pdf":
		return "application/pdf"
	case ".doc":
		return "application/msword"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	default:
		return "application/octet-stream"
	}
}

// ValidateFile checks the filename extension against the kind's allowlist
// and verifies the content's magic bytes match the claimed extension, so a
// renamed binary cannot slip through. Returns the normalized extension.
func ValidateFile(kind FileKind, filename string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		return "", errors.New("file has no extension")
	}

	allowed := documentExtensions
	if kind == FileKindImage {
		allowed = imageExtensions
	}
	if !allowed[ext] {
		return "", errors.New("file extension not allowed: " + ext)
	}

	if !matchesMagicBytes(ext, data) {
		return "", errors.New("file content does not match extension")
	}
	return ext, nil
}

func matchesMagicBytes(ext string, data []byte) bool {
	if len(data) < 4 {
		return false
	}
	signatures, ok := magicBytes[ext]
	if !ok {
		return false
	}
	for _, sig := range signatures {
		if bytes.HasPrefix(data, sig) {
			return true
		}
	}
	return false
}
