package pdf

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
	fpdi "github.com/go-pdf/fpdf/contrib/gofpdi"
)

// DocumentMeta is the bibliographic metadata stamped onto a merged document
type DocumentMeta struct {
	Title   string
	Author  string
	Subject string
}

// Merge concatenates the pages of the given documents in order into one
// document and stamps the metadata. Each source document gets its own
// importer; the package-level gofpdi importer is shared global state.
func (e *Engine) Merge(docs [][]byte, meta DocumentMeta) ([]byte, error) {
	if len(docs) == 0 {
		return nil, errors.New("no documents to merge")
	}

	out := fpdf.NewCustom(&fpdf.InitType{OrientationStr: "P", UnitStr: "pt"})
	out.SetAutoPageBreak(false, 0)

	for i, doc := range docs {
		if err := importDocument(out, doc); err != nil {
			return nil, fmt.Errorf("failed to merge document %d: %w", i+1, err)
		}
	}

	out.SetTitle(meta.Title, true)
	out.SetAuthor(meta.Author, true)
	out.SetSubject(meta.Subject, true)
	out.SetCreator(creatorName, true)
	out.SetProducer(creatorName, true)

	var buf bytes.Buffer
	if err := out.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to write merged document: %w", err)
	}
	return buf.Bytes(), nil
}

// importDocument copies every page of one source document into out
func importDocument(out *fpdf.Fpdf, doc []byte) error {
	imp := fpdi.NewImporter()
	rs := io.ReadSeeker(bytes.NewReader(doc))

	tpl := imp.ImportPageFromStream(out, &rs, 1, "/MediaBox")
	sizes := imp.GetPageSizes()
	total := len(sizes)

	for page := 1; page <= total; page++ {
		if page > 1 {
			tpl = imp.ImportPageFromStream(out, &rs, page, "/MediaBox")
		}

		box, ok := sizes[page]["/MediaBox"]
		if !ok {
			return fmt.Errorf("page %d has no media box", page)
		}
		pageW := box["w"]
		pageH := box["h"]

		out.AddPageFormat("P", fpdf.SizeType{Wd: pageW, Ht: pageH})
		imp.UseImportedTemplate(out, tpl, 0, 0, pageW, pageH)
	}

	if out.Err() {
		return out.Error()
	}
	return nil
}
