package document_test

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/JaimeStill/assessor/internal/document"
)

func TestNormalizeText(t *testing.T) {
	input := "Cloud Migration Proposal\r\n\r\nExecutive Summary:\r\nWe will move 40 workloads.\r\n\r\n2. Timeline\r\nSix months in three waves.\r\n"

	doc, err := document.Normalize([]byte(input), "uploads/acme.txt")
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}

	if doc.Filename != "acme.txt" {
		t.Errorf("filename: got %q", doc.Filename)
	}
	if doc.Format != document.FormatText {
		t.Errorf("format: got %q", doc.Format)
	}
	if doc.Type != document.TypeProposal {
		t.Errorf("type: got %q, want proposal", doc.Type)
	}

	want := []document.Section{
		{Heading: "Executive Summary", Body: "We will move 40 workloads."},
		{Heading: "Timeline", Body: "Six months in three waves."},
	}
	if diff := cmp.Diff(want, doc.Sections); diff != "" {
		t.Errorf("sections mismatch (-want +got):\n%s", diff)
	}

	if doc.Metadata["sections"] != "2" {
		t.Errorf("metadata sections: got %q", doc.Metadata["sections"])
	}
	if doc.Metadata["format"] != "text" {
		t.Errorf("metadata format: got %q", doc.Metadata["format"])
	}
}

func TestNormalizeMarkdown(t *testing.T) {
	input := "# Migration Plan\n\nIntro text.\n\n## Approach\n\nRehost first.\n\n```\n# not a heading\n```\n\n## Empty\n"

	doc, err := document.Normalize([]byte(input), "plan.md")
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}

	if doc.Format != document.FormatMarkdown {
		t.Errorf("format: got %q", doc.Format)
	}

	if len(doc.Sections) != 2 {
		t.Fatalf("sections: got %d, want 2: %+v", len(doc.Sections), doc.Sections)
	}
	if doc.Sections[0].Heading != "Migration Plan" || doc.Sections[0].Body != "Intro text." {
		t.Errorf("section 0: got %+v", doc.Sections[0])
	}
	if doc.Sections[1].Heading != "Approach" {
		t.Errorf("section 1 heading: got %q", doc.Sections[1].Heading)
	}
}

func TestNormalizeHTML(t *testing.T) {
	input := `<html><head><style>p{}</style></head><body>
<h1>Request for Proposal</h1>
<p>Agency seeks a partner.</p>
<h2>Scope</h2>
<ul>
<li><p>Assess estate</p></li>
<li>Migrate</li>
</ul>
<script>alert(1)</script>
</body></html>`

	doc, err := document.Normalize([]byte(input), "rfp.HTML")
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}

	if doc.Format != document.FormatHTML {
		t.Errorf("format: got %q", doc.Format)
	}
	if doc.Type != document.TypeRFP {
		t.Errorf("type: got %q, want rfp", doc.Type)
	}

	wantText := "Request for Proposal\nAgency seeks a partner.\nScope\nAssess estate\nMigrate"
	if doc.Text != wantText {
		t.Errorf("text:\n got %q\nwant %q", doc.Text, wantText)
	}

	want := []document.Section{
		{Heading: "Request for Proposal", Body: "Agency seeks a partner."},
		{Heading: "Scope", Body: "Assess estate Migrate"},
	}
	if diff := cmp.Diff(want, doc.Sections); diff != "" {
		t.Errorf("sections mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalizePDF(t *testing.T) {
	data := buildPDF(
		"BT /F1 14 Tf 72 720 Td (Cloud Migration Proposal) Tj 0 -28 Td (Executive Summary:) Tj 0 -16 Td [(We will mo) -10 (ve 40 work) 20 (loads.)] TJ ET",
		"BT /F1 12 Tf 72 720 Td (Timeline) Tj T* (Six months in three waves \\(rehost first\\).) Tj ET",
	)

	doc, err := document.Normalize(data, "acme.pdf")
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}

	if doc.Format != document.FormatPDF {
		t.Errorf("format: got %q", doc.Format)
	}
	if doc.Type != document.TypeProposal {
		t.Errorf("type: got %q, want proposal", doc.Type)
	}

	wantText := "Cloud Migration Proposal\nExecutive Summary:\nWe will move 40 workloads.\n\nTimeline\nSix months in three waves (rehost first)."
	if doc.Text != wantText {
		t.Errorf("text:\n got %q\nwant %q", doc.Text, wantText)
	}

	if doc.Metadata["pages"] != "2" {
		t.Errorf("metadata pages: got %q, want 2", doc.Metadata["pages"])
	}
	if doc.Metadata["format"] != "pdf" {
		t.Errorf("metadata format: got %q", doc.Metadata["format"])
	}

	if len(doc.Sections) == 0 || doc.Sections[0].Heading != "Executive Summary" {
		t.Errorf("sections: got %+v", doc.Sections)
	}
}

func TestNormalizeDOCX(t *testing.T) {
	body := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body>
<w:p><w:pPr><w:pStyle w:val="Title"/></w:pPr><w:r><w:t>Technical Proposal</w:t></w:r></w:p>
<w:p><w:pPr><w:pStyle w:val="Heading1"/></w:pPr><w:r><w:t>Approach</w:t></w:r></w:p>
<w:p><w:r><w:t xml:space="preserve">Rehost first, </w:t></w:r><w:r><w:rPr><w:b/></w:rPr><w:t>then refactor.</w:t></w:r></w:p>
<w:tbl>
<w:tr><w:tc><w:p><w:r><w:t>Wave</w:t></w:r></w:p></w:tc><w:tc><w:p><w:r><w:t>Workloads</w:t></w:r></w:p></w:tc></w:tr>
<w:tr><w:tc><w:p><w:r><w:t>1</w:t></w:r></w:p></w:tc><w:tc><w:p/></w:tc><w:tc><w:p><w:r><w:t>12</w:t></w:r></w:p></w:tc></w:tr>
</w:tbl>
<w:p><w:pPr><w:pStyle w:val="Heading1"/></w:pPr><w:r><w:t>Timeline</w:t></w:r></w:p>
<w:p><w:r><w:t>Six months.</w:t></w:r><w:r><w:br/><w:t>Three waves.</w:t></w:r></w:p>
<w:sectPr/>
</w:body>
</w:document>`

	data := buildZip(map[string]string{"word/document.xml": body})

	doc, err := document.Normalize(data, "proposal.DOCX")
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}

	if doc.Format != document.FormatDOCX {
		t.Errorf("format: got %q", doc.Format)
	}

	wantText := "Technical Proposal\nApproach\nRehost first, then refactor.\nTimeline\nSix months.\nThree waves.\n\nWave Workloads\n1 12"
	if doc.Text != wantText {
		t.Errorf("text:\n got %q\nwant %q", doc.Text, wantText)
	}

	want := []document.Section{
		{Heading: "Approach", Body: "Rehost first, then refactor."},
		{Heading: "Timeline", Body: "Six months.\nThree waves."},
	}
	if diff := cmp.Diff(want, doc.Sections); diff != "" {
		t.Errorf("sections mismatch (-want +got):\n%s", diff)
	}

	if doc.Metadata["paragraphs"] != "5" || doc.Metadata["tables"] != "1" {
		t.Errorf("metadata: got paragraphs %q tables %q", doc.Metadata["paragraphs"], doc.Metadata["tables"])
	}
}

func TestNormalizeErrors(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		filename string
		target   error
	}{
		{"truncated pdf", []byte("%PDF-1.7"), "proposal.pdf", document.ErrParse},
		{"docx not a zip", []byte("plain text"), "proposal.docx", document.ErrParse},
		{"docx missing body", buildZip(map[string]string{"docProps/app.xml": "<Properties/>"}), "proposal.docx", document.ErrParse},
		{"doc unsupported", []byte("legacy"), "proposal.doc", document.ErrUnsupportedFormat},
		{"no extension", []byte("text"), "README", document.ErrUnsupportedFormat},
		{"empty text", []byte("  \n\t "), "empty.txt", document.ErrEmptyDocument},
		{"empty html", []byte("<html><body><script>x</script></body></html>"), "e.html", document.ErrEmptyDocument},
		{"invalid utf8", []byte{0xff, 0xfe, 0xfd}, "bad.txt", document.ErrParse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := document.Normalize(tt.data, tt.filename)
			if !errors.Is(err, tt.target) {
				t.Errorf("got %v, want %v", err, tt.target)
			}
			if !errors.Is(err, document.ErrParse) {
				t.Errorf("error %v does not wrap ErrParse", err)
			}
		})
	}
}

func TestDetectType(t *testing.T) {
	tests := []struct {
		text string
		want document.Type
	}{
		{"This RFP covers data centre exit.", document.TypeRFP},
		{"Statement of Work for phase one", document.TypeRFP},
		{"Our technical proposal follows.", document.TypeProposal},
		{"Tender response from Contoso", document.TypeResponse},
		{"The written plan is attached.", document.TypeOther},
		{"Bits and bytes", document.TypeOther},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			if got := document.DetectType(tt.text); got != tt.want {
				t.Errorf("DetectType(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestWindow(t *testing.T) {
	doc := &document.Document{Text: "héllo wörld"}

	tests := []struct {
		n    int
		want string
	}{
		{0, "héllo wörld"},
		{2, "hé"},
		{7, "héllo w"},
		{100, "héllo wörld"},
	}

	for _, tt := range tests {
		if got := doc.Window(tt.n); got != tt.want {
			t.Errorf("Window(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

// buildPDF assembles a minimal uncompressed PDF with one page per content
// stream and a correct cross-reference table.
func buildPDF(contents ...string) []byte {
	var objects []string

	kids := make([]byte, 0)
	for i := range contents {
		kids = fmt.Appendf(kids, "%d 0 R ", 4+i*2)
	}

	objects = append(objects,
		"<< /Type /Catalog /Pages 2 0 R >>",
		fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d /MediaBox [0 0 612 792] >>", bytes.TrimSpace(kids), len(contents)),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>",
	)
	for i, c := range contents {
		objects = append(objects,
			fmt.Sprintf("<< /Type /Page /Parent 2 0 R /Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>", 5+i*2),
			fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(c), c),
		)
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objects)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)

	return buf.Bytes()
}

func buildZip(files map[string]string) []byte {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.Create(name)
		if err != nil {
			panic(err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			panic(err)
		}
	}
	if err := zw.Close(); err != nil {
		panic(err)
	}
	return buf.Bytes()
}
