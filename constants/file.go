package constants

import "strings"

// AllowedExtensions holds the allowed file extensions for contract intake.
// Text files are accepted alongside PDFs so pre-extracted contracts can be
// dropped straight into the intake directory.
var AllowedExtensions = map[string]struct{}{
	"pdf": {},
	"txt": {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
