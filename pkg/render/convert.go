package render

import (
	"bytes"
	"os/exec"

	"github.com/matzehuels/fadiagram/pkg/errors"
)

// rsvgTool is the librsvg converter binary looked up on PATH.
const rsvgTool = "rsvg-convert"

// ToPDF converts SVG bytes to PDF using rsvg-convert.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func ToPDF(svg []byte) ([]byte, error) {
	return rsvgConvert(svg, "pdf")
}

// PDFAvailable reports whether rsvg-convert can be found on PATH.
func PDFAvailable() error {
	if _, err := exec.LookPath(rsvgTool); err != nil {
		return errors.Wrap(errors.ErrCodeRenderUnavailable, err,
			"pdf export requires librsvg (macOS: brew install librsvg, Linux: apt install librsvg2-bin)")
	}
	return nil
}

// rsvgConvert shells out to rsvg-convert for format conversion.
func rsvgConvert(svg []byte, format string) ([]byte, error) {
	if err := PDFAvailable(); err != nil {
		return nil, err
	}

	cmd := exec.Command(rsvgTool, "-f", format)
	cmd.Stdin = bytes.NewReader(svg)

	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "rsvg-convert: %s", errBuf.String())
	}
	return out.Bytes(), nil
}
