package pdf

import (
	"bytes"
	"fmt"
	"os"

	"github.com/go-pdf/fpdf"
	"go.uber.org/zap"
)

// RenderFrontPage draws the catalog cover: a brand-red header band with the
// company mark and tagline, the customer name, the hero image (or a
// placeholder when heroImage is nil or undecodable), and a contact footer.
func (e *Engine) RenderFrontPage(customerName string, heroImage []byte) ([]byte, error) {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetAutoPageBreak(false, 0)
	doc.AddPage()

	pageW, pageH := doc.GetPageSize()
	headerH := pageH * 0.11

	// Header band
	doc.SetFillColor(brandRedR, brandRedG, brandRedB)
	doc.Rect(0, 0, pageW, headerH, "F")
	e.drawBrandMark(doc, headerH)

	doc.SetTextColor(255, 255, 255)
	doc.SetFont("Helvetica", "", 12)
	tagline := e.branding.Tagline
	taglineW := doc.GetStringWidth(tagline)
	doc.Text(pageW-taglineW-14, headerH/2+2, tagline)

	// Title and customer name
	doc.SetTextColor(0, 0, 0)
	doc.SetFont("Helvetica", "B", 22)
	title := "Personalized Catalog"
	doc.Text((pageW-doc.GetStringWidth(title))/2, headerH+22, title)

	doc.SetFont("Helvetica", "B", 30)
	nameW := doc.GetStringWidth(customerName)
	doc.Text((pageW-nameW)/2, headerH+42, customerName)

	// Divider
	doc.SetDrawColor(brandRedR, brandRedG, brandRedB)
	doc.SetLineWidth(0.7)
	doc.Line(30, headerH+52, pageW-30, headerH+52)

	// Hero image
	heroX, heroY := 25.0, headerH+62
	heroBoxW, heroBoxH := pageW-50, 110.0
	e.drawHero(doc, heroImage, heroX, heroY, heroBoxW, heroBoxH)

	// Gradient strip fading into the footer band
	footerH := 32.0
	stripTop := pageH - footerH - 18
	for i := 0; i < 30; i++ {
		alpha := float64(30-i) / 30.0 * 0.15
		doc.SetAlpha(alpha, "Normal")
		doc.SetFillColor(brandRedR, brandRedG, brandRedB)
		doc.Rect(0, stripTop+float64(i)*0.6, pageW, 0.6, "F")
	}
	doc.SetAlpha(1.0, "Normal")

	// Footer band with contact row
	doc.SetFillColor(brandRedR, brandRedG, brandRedB)
	doc.Rect(0, pageH-footerH, pageW, footerH, "F")

	doc.SetTextColor(255, 255, 255)
	doc.SetFont("Helvetica", "B", 12)
	companyW := doc.GetStringWidth(e.branding.CompanyName)
	doc.Text((pageW-companyW)/2, pageH-footerH+9, e.branding.CompanyName)

	doc.SetFont("Helvetica", "", 9)
	doc.Text(14, pageH-13, e.branding.Email)
	phoneW := doc.GetStringWidth(e.branding.Phone)
	doc.Text((pageW-phoneW)/2, pageH-13, e.branding.Phone)
	locationW := doc.GetStringWidth(e.branding.Location)
	doc.Text(pageW-locationW-14, pageH-13, e.branding.Location)

	doc.SetFont("Helvetica", "", 8)
	websiteW := doc.GetStringWidth(e.branding.Website)
	doc.Text((pageW-websiteW)/2, pageH-5, e.branding.Website)

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render front page: %w", err)
	}
	return buf.Bytes(), nil
}

// drawBrandMark places the configured logo asset in the header, falling back
// to a styled text mark when the asset is missing or undecodable.
func (e *Engine) drawBrandMark(doc *fpdf.Fpdf, headerH float64) {
	if e.branding.LogoPath != "" {
		if data, err := os.ReadFile(e.branding.LogoPath); err == nil {
			if flat, pxW, pxH, ferr := flattenToPNG(data); ferr == nil {
				logoH := headerH * 0.7
				logoW := logoH * float64(pxW) / float64(pxH)
				opts := fpdf.ImageOptions{ImageType: "PNG"}
				doc.RegisterImageOptionsReader("brand_logo", opts, bytes.NewReader(flat))
				doc.ImageOptions("brand_logo", 10, (headerH-logoH)/2, logoW, logoH, false, opts, 0, "")
				return
			}
			e.logger.Warn("could not decode brand logo asset, using text mark",
				zap.String("path", e.branding.LogoPath))
		} else {
			e.logger.Warn("could not load brand logo asset, using text mark",
				zap.String("path", e.branding.LogoPath), zap.Error(err))
		}
	}

	doc.SetTextColor(255, 255, 255)
	doc.SetFont("Helvetica", "B", 26)
	doc.Text(12, headerH/2+3, e.branding.CompanyName)
}

// drawHero places the hero image centered in the box, preserving its aspect
// ratio, or a gray placeholder when no usable image is available.
func (e *Engine) drawHero(doc *fpdf.Fpdf, heroImage []byte, x, y, boxW, boxH float64) {
	if len(heroImage) > 0 {
		flat, pxW, pxH, err := flattenToPNG(heroImage)
		if err == nil {
			scale := boxW / float64(pxW)
			if s := boxH / float64(pxH); s < scale {
				scale = s
			}
			imgW := float64(pxW) * scale
			imgH := float64(pxH) * scale
			opts := fpdf.ImageOptions{ImageType: "PNG"}
			doc.RegisterImageOptionsReader("hero", opts, bytes.NewReader(flat))
			doc.ImageOptions("hero", x+(boxW-imgW)/2, y+(boxH-imgH)/2, imgW, imgH, false, opts, 0, "")
			return
		}
		e.logger.Warn("could not decode hero image, using placeholder", zap.Error(err))
	}

	doc.SetFillColor(grayR, grayG, grayB)
	doc.Rect(x, y, boxW, boxH, "F")

	doc.SetTextColor(255, 255, 255)
	doc.SetFont("Helvetica", "", 14)
	caption := "Picture placeholder"
	captionW := doc.GetStringWidth(caption)
	doc.Text(x+(boxW-captionW)/2, y+boxH/2, caption)
}
