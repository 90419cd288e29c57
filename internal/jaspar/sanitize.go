// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package jaspar

import "strings"

// illegalFilenameChars maps each character that is unsafe in filenames to '-'.
var illegalFilenameChars = strings.NewReplacer(
	`\`, "-",
	"/", "-",
	":", "-",
	"*", "-",
	"?", "-",
	`"`, "-",
	"<", "-",
	">", "-",
	"|", "-",
)

// Sanitize maps a display name to a filesystem-safe string: each of
// \ / : * ? " < > | becomes '-', then surrounding whitespace is trimmed.
// No length limiting, reserved-name handling, or Unicode normalization.
func Sanitize(text string) string {
	return strings.TrimSpace(illegalFilenameChars.Replace(text))
}

// PFMFilename builds the destination filename for a motif record:
// {matrix_id}_{sanitized name}.pfm.
func PFMFilename(matrixID, name string) string {
	return matrixID + "_" + Sanitize(name) + ".pfm"
}
