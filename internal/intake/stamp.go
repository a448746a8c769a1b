package intake

import (
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// Stamper writes a copy of the PDF at src to dst with text on page 1.
type Stamper interface {
	Stamp(src, dst, text string) error
}

// stampDescription places red 14pt Helvetica 50pt in from the top-left corner.
const stampDescription = "fontname:Helvetica, points:14, rotation:0, position:tl, offset:50 -50, fillcolor:#FF0000, scalefactor:1 abs, opacity:1"

// PDFStamper stamps with pdfcpu text watermarks.
type PDFStamper struct{}

// Stamp implements Stamper.
func (PDFStamper) Stamp(src, dst, text string) error {
	if err := api.AddTextWatermarksFile(src, dst, []string{"1"}, true, text, stampDescription, nil); err != nil {
		return fmt.Errorf("pdf stamp: %w", err)
	}
	return nil
}
