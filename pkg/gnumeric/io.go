package gnumeric

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"

	"github.com/beevik/etree"
)

// Gnumeric files are gzip-compressed XML by default, but the application
// also reads and writes the plain XML body. Loading sniffs the container
// from the gzip magic bytes.

// Load opens a .gnumeric file, compressed or plain.
func Load(path string) (*Workbook, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, err
	}
	defer f.Close()
	return LoadReader(f)
}

// LoadReader reads a workbook from a stream, compressed or plain.
func LoadReader(r io.Reader) (*Workbook, error) {
	br := bufio.NewReader(r)
	magic, err := br.Peek(2)
	if err == nil && magic[0] == 0x1f && magic[1] == 0x8b {
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
		}
		defer gz.Close()
		return parseWorkbook(gz)
	}
	return parseWorkbook(br)
}

func parseWorkbook(r io.Reader) (*Workbook, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	root := doc.Root()
	if root == nil || root.Space != spaceGnm || root.Tag != "Workbook" {
		return nil, fmt.Errorf("%w: root element is not gnm:Workbook", ErrInvalidFormat)
	}
	return &Workbook{doc: doc}, nil
}

// Save writes the workbook as a gzip-compressed .gnumeric file.
func (wb *Workbook) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	gz := gzip.NewWriter(f)
	if err := wb.write(gz); err != nil {
		f.Close()
		return err
	}
	if err := gz.Close(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// SaveXML writes the workbook as plain uncompressed XML.
func (wb *Workbook) SaveXML(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := wb.write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// write compacts every regular sheet, then serializes the tree. Chart
// sheets carry no grid and are left alone.
func (wb *Workbook) write(w io.Writer) error {
	for _, s := range wb.Sheets() {
		if s.Type() == SheetTypeRegular {
			s.compact()
		}
	}
	_, err := wb.doc.WriteTo(w)
	return err
}
