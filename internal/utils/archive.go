package utils

import (
	"bytes"

	"github.com/klauspost/compress/zip"
)

// VerifyZip checks that data holds a readable zip archive by opening its
// central directory. Used to flag assets whose declared content type
// claims zip but whose bytes are something else.
func VerifyZip(data []byte) error {
	_, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	return err
}
