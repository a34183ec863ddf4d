package resume

import (
	"encoding/xml"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// Text converts the resume at path into plain text. Supported formats are
// .pdf and .docx; anything else, including a document that fails to parse,
// yields an empty string. Empty text means "no signal" for the extraction
// stages downstream, never an error.
func Text(path string) string {
	file, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return ""
	}

	return TextFromReader(file, stat.Size(), path)
}

// TextFromReader converts a resume held in memory or an open file into
// plain text. The name is used only for format dispatch by extension.
func TextFromReader(r io.ReaderAt, size int64, name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return pdfText(r, size)
	case ".docx":
		return docxText(r, size)
	default:
		return ""
	}
}

func pdfText(r io.ReaderAt, size int64) string {
	reader, err := pdf.NewReader(r, size)
	if err != nil {
		return ""
	}

	var b strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		b.WriteString(text)
	}

	return b.String()
}

func docxText(r io.ReaderAt, size int64) string {
	doc, err := docx.ReadDocxFromMemory(r, size)
	if err != nil {
		return ""
	}
	defer doc.Close()

	return flattenDocument(doc.Editable().GetContent())
}

// flattenDocument turns word/document.xml markup into plain text. Word often
// splits a single word across several <w:r> runs, so runs are concatenated
// within their paragraph and each paragraph ends with a newline.
func flattenDocument(document string) string {
	decoder := xml.NewDecoder(strings.NewReader(document))
	var b strings.Builder
	inText := false
	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		switch t := token.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				inText = true
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				b.WriteString("\n")
			}
		case xml.CharData:
			if inText {
				b.Write(t)
			}
		}
	}

	return b.String()
}
