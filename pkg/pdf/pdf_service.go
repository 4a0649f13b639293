package pdf

import (
	"bytes"
	"fmt"
	"foodgram-backend/domain"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
)

const (
	fontFamily    = "Montserrat"
	titleSize     = 22
	recipeSize    = 14
	bodySize      = 12
	headerLine    = 20
	bodyLine      = 6
	documentTitle = "Shopping List"
)

// Creation and modification dates are pinned to a constant so identical
// inputs produce byte-identical documents.
var pinnedDate = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

type (
	Renderer interface {
		RenderShoppingList(items []domain.ShoppingItem, recipeNames []string) ([]byte, error)
	}

	renderer struct {
		assetsDir  string
		footerLink string
	}
)

// NewRenderer expects assetsDir to contain fonts/Montserrat-{Regular,Bold,Italic}.ttf
// and logo.png. footerLink may be empty; the footer is then omitted.
func NewRenderer(assetsDir, footerLink string) Renderer {
	return &renderer{
		assetsDir:  assetsDir,
		footerLink: footerLink,
	}
}

func (r *renderer) fontPath(name string) string {
	return filepath.Join(r.assetsDir, "fonts", name)
}

func (r *renderer) logoPath() string {
	return filepath.Join(r.assetsDir, "logo.png")
}

func (r *renderer) checkAssets() error {
	paths := []string{
		r.fontPath("Montserrat-Regular.ttf"),
		r.fontPath("Montserrat-Bold.ttf"),
		r.fontPath("Montserrat-Italic.ttf"),
		r.logoPath(),
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			return fmt.Errorf("%w: %s", domain.ErrAssetMissing, p)
		}
	}
	return nil
}

func (r *renderer) RenderShoppingList(items []domain.ShoppingItem, recipeNames []string) ([]byte, error) {
	if err := r.checkAssets(); err != nil {
		return nil, err
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCreationDate(pinnedDate)
	pdf.SetModificationDate(pinnedDate)
	// Font objects are emitted in map order unless the catalog is sorted.
	pdf.SetCatalogSort(true)

	pdf.AddUTF8Font(fontFamily, "", r.fontPath("Montserrat-Regular.ttf"))
	pdf.AddUTF8Font(fontFamily, "B", r.fontPath("Montserrat-Bold.ttf"))
	pdf.AddUTF8Font(fontFamily, "I", r.fontPath("Montserrat-Italic.ttf"))

	pdf.SetHeaderFunc(func() {
		pdf.SetFont(fontFamily, "B", titleSize)
		pdf.SetTextColor(255, 255, 255)
		pdf.SetFillColor(127, 84, 178)
		pdf.Rect(0, 0, 500, 25, "F")
		pdf.CellFormat(0, 7, documentTitle, "", 0, "C", false, 0, "")
		pdf.Image(r.logoPath(), 10, 7, 33, 0, false, "", 0, "")
		pdf.Ln(headerLine)
	})

	pdf.SetFooterFunc(func() {
		if r.footerLink == "" {
			return
		}
		pdf.SetY(-15)
		pdf.SetFont(fontFamily, "", bodySize)
		pdf.SetTextColor(128, 128, 128)
		text := r.footerLink
		if i := strings.Index(text, "://"); i >= 0 {
			text = text[i+len("://"):]
		}
		pdf.CellFormat(0, 10, text, "", 0, "R", false, 0, r.footerLink)
	})

	pdf.AddPage()

	pdf.SetFont(fontFamily, "I", recipeSize)
	pdf.SetTextColor(0, 0, 0)
	for _, name := range recipeNames {
		pdf.CellFormat(0, bodyLine, name, "B", 1, "L", false, 0, "")
	}
	pdf.Ln(bodyLine)

	pdf.SetFont(fontFamily, "", bodySize)
	for _, item := range items {
		line := fmt.Sprintf("%s (%s) - %d", item.Name, item.Unit, item.Total)
		pdf.CellFormat(0, bodyLine, line, "", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
