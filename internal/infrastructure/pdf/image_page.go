package pdf

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
)

// ImageToPage converts a rendered page image into a single-page document
// sized to the image's native proportions (one pixel per point). Transparent
// and palette images are flattened onto white first.
func (e *Engine) ImageToPage(imageBytes []byte) ([]byte, error) {
	flat, pxW, pxH, err := flattenToPNG(imageBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to decode page image: %w", err)
	}

	pageW := float64(pxW)
	pageH := float64(pxH)

	doc := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: pageW, Ht: pageH},
	})
	doc.SetAutoPageBreak(false, 0)
	doc.AddPageFormat("P", fpdf.SizeType{Wd: pageW, Ht: pageH})

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	doc.RegisterImageOptionsReader("page", opts, bytes.NewReader(flat))
	doc.ImageOptions("page", 0, 0, pageW, pageH, false, opts, 0, "")

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to build page document: %w", err)
	}
	return buf.Bytes(), nil
}
