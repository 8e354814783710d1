package render

import (
	"bytes"

	"github.com/ledongthuc/pdf"
)

// PageCount returns the number of pages in a PDF document.
func PageCount(data []byte) (int, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return 0, err
	}
	return reader.NumPage(), nil
}
