package validator

import (
	"path/filepath"
	"strings"
)

var imageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".bmp":  true,
	".webp": true,
	".svg":  true,
}

// IsImage verify is image
func IsImage(ext string) bool {
	if !strings.HasPrefix(ext, ".") {
		return false
	}
	return imageExts[strings.ToLower(ext)]
}

// IsImageFile checks if a file is an image based on its name/extension
func IsImageFile(filename string) bool {
	return IsImage(filepath.Ext(filename))
}
