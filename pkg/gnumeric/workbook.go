// Package gnumeric reads and writes Gnumeric spreadsheet documents.
//
// A Workbook is a live XML tree; the Sheet, Cell and Expression types are
// handles into that tree, and every read and write goes straight to it.
// Nothing is copied and nothing is locked: a workbook and everything
// reachable from it must only be used from one goroutine at a time, with
// any synchronization left to the caller.
package gnumeric

import (
	"fmt"
	"time"

	"github.com/beevik/etree"
)

// Capacity of a newly created sheet, matching what Gnumeric itself
// allocates.
const (
	defaultSheetCols = 256
	defaultSheetRows = 65536
)

const workbookVersion = "1.12.28"

// workbookSkeleton is the document a fresh workbook starts from.
const workbookSkeleton = `<?xml version="1.0" encoding="UTF-8"?>
<gnm:Workbook xmlns:gnm="http://www.gnumeric.org/v10.dtd" xmlns:office="urn:oasis:names:tc:opendocument:xmlns:office:1.0" xmlns:dc="http://purl.org/dc/elements/1.1/">
<gnm:Version Epoch="1" Major="12" Minor="28" Full="1.12.28"/>
<office:document-meta office:version="1.2">
<office:meta>
<dc:date></dc:date>
</office:meta>
</office:document-meta>
<gnm:SheetNameIndex>
</gnm:SheetNameIndex>
<gnm:Sheets>
</gnm:Sheets>
</gnm:Workbook>
`

// Workbook is a Gnumeric document: the sheet directory plus the shared
// backing tree. Two Workbook values are the same workbook only when they
// are the same pointer.
type Workbook struct {
	doc *etree.Document
}

// New returns an empty workbook with no sheets, version 1.12.28 and the
// creation date set to now.
func New() *Workbook {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(workbookSkeleton); err != nil {
		panic("gnumeric: invalid workbook skeleton: " + err.Error())
	}
	wb := &Workbook{doc: doc}
	wb.SetCreationDate(time.Now())
	return wb
}

func (wb *Workbook) root() *etree.Element {
	return wb.doc.Root()
}

func (wb *Workbook) nameIndexEl() *etree.Element {
	return findChild(wb.root(), spaceGnm, "SheetNameIndex")
}

func (wb *Workbook) sheetsEl() *etree.Element {
	return findChild(wb.root(), spaceGnm, "Sheets")
}

// Version returns the Gnumeric format version recorded in the document.
func (wb *Workbook) Version() string {
	v := findChild(wb.root(), spaceGnm, "Version")
	if v == nil {
		return ""
	}
	val, _ := attrValue(v, "Full")
	return val
}

func (wb *Workbook) dateEl() *etree.Element {
	meta := findChild(wb.root(), spaceOffice, "document-meta")
	return findChild(findChild(meta, spaceOffice, "meta"), spaceDC, "date")
}

// CreationDate returns the document's creation date from its metadata.
func (wb *Workbook) CreationDate() (time.Time, error) {
	el := wb.dateEl()
	if el == nil {
		return time.Time{}, fmt.Errorf("%w: document has no dc:date metadata", ErrInvalidFormat)
	}
	t, err := time.Parse(time.RFC3339, el.Text())
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing creation date: %w", err)
	}
	return t, nil
}

// SetCreationDate records a new creation date in the document metadata.
func (wb *Workbook) SetCreationDate(t time.Time) {
	if el := wb.dateEl(); el != nil {
		el.SetText(t.UTC().Format(time.RFC3339))
	}
}

// Len returns the number of sheets in the workbook.
func (wb *Workbook) Len() int {
	return len(findChildren(wb.nameIndexEl(), spaceGnm, "SheetName"))
}

// Sheets returns all sheets in workbook order, chart sheets included.
func (wb *Workbook) Sheets() []*Sheet {
	names := findChildren(wb.nameIndexEl(), spaceGnm, "SheetName")
	els := findChildren(wb.sheetsEl(), spaceGnm, "Sheet")
	n := len(names)
	if len(els) < n {
		n = len(els)
	}
	out := make([]*Sheet, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, &Sheet{nameEl: names[i], el: els[i], wb: wb})
	}
	return out
}

// Worksheets returns the regular sheets only.
func (wb *Workbook) Worksheets() []*Sheet {
	var out []*Sheet
	for _, s := range wb.Sheets() {
		if s.Type() == SheetTypeRegular {
			out = append(out, s)
		}
	}
	return out
}

// Chartsheets returns the object (chart) sheets only.
func (wb *Workbook) Chartsheets() []*Sheet {
	var out []*Sheet
	for _, s := range wb.Sheets() {
		if s.Type() == SheetTypeObject {
			out = append(out, s)
		}
	}
	return out
}

// SheetNames returns the sheet titles in workbook order.
func (wb *Workbook) SheetNames() []string {
	sheets := wb.Sheets()
	out := make([]string, 0, len(sheets))
	for _, s := range sheets {
		out = append(out, s.Title())
	}
	return out
}

// CreateSheet appends a new empty worksheet with the given title.
func (wb *Workbook) CreateSheet(title string) (*Sheet, error) {
	return wb.CreateSheetAt(title, wb.Len())
}

// CreateSheetAt inserts a new empty worksheet at the given position.
// Titles are unique within a workbook; a duplicate is rejected.
func (wb *Workbook) CreateSheetAt(title string, index int) (*Sheet, error) {
	for _, existing := range wb.SheetNames() {
		if existing == title {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateTitle, title)
		}
	}
	if index < 0 || index > wb.Len() {
		return nil, &SheetIndexError{Index: index, Count: wb.Len()}
	}

	nameEl := newSheetNameElement(title)
	sheetEl := newSheetElement(title)

	insertChild(wb.nameIndexEl(), nameEl, findChildren(wb.nameIndexEl(), spaceGnm, "SheetName"), index)
	insertChild(wb.sheetsEl(), sheetEl, findChildren(wb.sheetsEl(), spaceGnm, "Sheet"), index)

	return &Sheet{nameEl: nameEl, el: sheetEl, wb: wb}, nil
}

// insertChild places el at the given logical position among siblings,
// appending when the position is at the end.
func insertChild(parent, el *etree.Element, siblings []*etree.Element, index int) {
	if index >= len(siblings) {
		parent.AddChild(el)
		return
	}
	parent.InsertChildAt(siblings[index].Index(), el)
}

func newSheetNameElement(title string) *etree.Element {
	el := etree.NewElement("gnm:SheetName")
	el.CreateAttr("gnm:Cols", fmt.Sprint(defaultSheetCols))
	el.CreateAttr("gnm:Rows", fmt.Sprint(defaultSheetRows))
	el.SetText(title)
	return el
}

func newSheetElement(title string) *etree.Element {
	el := etree.NewElement("gnm:Sheet")
	el.CreateElement("gnm:Name").SetText(title)
	el.CreateElement("gnm:MaxCol").SetText("-1")
	el.CreateElement("gnm:MaxRow").SetText("-1")

	region := el.CreateElement("gnm:Styles").CreateElement("gnm:StyleRegion")
	region.CreateAttr("startCol", "0")
	region.CreateAttr("startRow", "0")
	region.CreateAttr("endCol", fmt.Sprint(defaultSheetCols-1))
	region.CreateAttr("endRow", fmt.Sprint(defaultSheetRows-1))
	style := region.CreateElement("gnm:Style")
	style.CreateAttr("HAlign", "1")
	style.CreateAttr("VAlign", "1")
	style.CreateAttr("Format", "General")

	el.CreateElement("gnm:Cells")
	return el
}

// SheetByIndex returns the sheet at the given position.
func (wb *Workbook) SheetByIndex(index int) (*Sheet, error) {
	sheets := wb.Sheets()
	if index < 0 || index >= len(sheets) {
		return nil, &SheetIndexError{Index: index, Count: len(sheets)}
	}
	return sheets[index], nil
}

// SheetByName returns the sheet with the given title.
func (wb *Workbook) SheetByName(title string) (*Sheet, error) {
	for _, s := range wb.Sheets() {
		if s.Title() == title {
			return s, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrSheetNotFound, title)
}

// Index returns the position of a sheet within this workbook, rejecting
// sheets that belong to a different workbook.
func (wb *Workbook) Index(sheet *Sheet) (int, error) {
	if sheet == nil || sheet.wb != wb {
		return 0, ErrWrongWorkbook
	}
	for i, s := range wb.Sheets() {
		if s.Equal(sheet) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrSheetNotFound, sheet.Title())
}

// RemoveSheet removes a sheet from the workbook. Removing a sheet twice,
// or a sheet from another workbook, fails.
func (wb *Workbook) RemoveSheet(sheet *Sheet) error {
	index, err := wb.Index(sheet)
	if err != nil {
		return err
	}
	return wb.RemoveSheetByIndex(index)
}

// RemoveSheetByName removes the sheet with the given title.
func (wb *Workbook) RemoveSheetByName(title string) error {
	for i, s := range wb.Sheets() {
		if s.Title() == title {
			return wb.RemoveSheetByIndex(i)
		}
	}
	return fmt.Errorf("%w: %q", ErrSheetNotFound, title)
}

// RemoveSheetByIndex removes the sheet at the given position.
func (wb *Workbook) RemoveSheetByIndex(index int) error {
	names := findChildren(wb.nameIndexEl(), spaceGnm, "SheetName")
	els := findChildren(wb.sheetsEl(), spaceGnm, "Sheet")
	if index < 0 || index >= len(names) || index >= len(els) {
		return &SheetIndexError{Index: index, Count: len(names)}
	}
	wb.nameIndexEl().RemoveChild(names[index])
	wb.sheetsEl().RemoveChild(els[index])
	return nil
}
