package gnumeric

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// testWorkbookXML mirrors the shape of a small Gnumeric file: two data
// sheets, one reduced-capacity sheet and one chart sheet.
const testWorkbookXML = `<?xml version="1.0" encoding="UTF-8"?>
<gnm:Workbook xmlns:gnm="http://www.gnumeric.org/v10.dtd" xmlns:office="urn:oasis:names:tc:opendocument:xmlns:office:1.0" xmlns:dc="http://purl.org/dc/elements/1.1/">
<gnm:Version Epoch="1" Major="12" Minor="28" Full="1.12.28"/>
<office:document-meta office:version="1.2">
<office:meta>
<dc:date>2017-04-29T17:56:48Z</dc:date>
</office:meta>
</office:document-meta>
<gnm:SheetNameIndex>
<gnm:SheetName gnm:Cols="256" gnm:Rows="65536">Sheet1</gnm:SheetName>
<gnm:SheetName gnm:Cols="256" gnm:Rows="65536">BoundingRegion</gnm:SheetName>
<gnm:SheetName gnm:Cols="51" gnm:Rows="101">Small</gnm:SheetName>
<gnm:SheetName gnm:Cols="256" gnm:Rows="65536" gnm:SheetType="object">Graph1</gnm:SheetName>
</gnm:SheetNameIndex>
<gnm:Sheets>
<gnm:Sheet>
<gnm:Name>Sheet1</gnm:Name>
<gnm:MaxCol>1</gnm:MaxCol>
<gnm:MaxRow>2</gnm:MaxRow>
<gnm:Styles>
<gnm:StyleRegion startCol="0" startRow="0" endCol="255" endRow="65535">
<gnm:Style HAlign="1" VAlign="1" Format="General"/>
</gnm:StyleRegion>
</gnm:Styles>
<gnm:Cells>
<gnm:Cell Row="0" Col="0" ValueType="30">1</gnm:Cell>
<gnm:Cell Row="1" Col="0" ValueType="30">2</gnm:Cell>
<gnm:Cell Row="0" Col="1" ValueType="60">hello</gnm:Cell>
<gnm:Cell Row="2" Col="0">=sum(A1:A2)</gnm:Cell>
</gnm:Cells>
</gnm:Sheet>
<gnm:Sheet>
<gnm:Name>BoundingRegion</gnm:Name>
<gnm:MaxCol>9</gnm:MaxCol>
<gnm:MaxRow>12</gnm:MaxRow>
<gnm:Styles>
<gnm:StyleRegion startCol="0" startRow="0" endCol="255" endRow="65535">
<gnm:Style HAlign="1" VAlign="1" Format="General"/>
</gnm:StyleRegion>
</gnm:Styles>
<gnm:Cells>
<gnm:Cell Row="6" Col="3" ValueType="60">corner</gnm:Cell>
<gnm:Cell Row="9" Col="5" ValueType="10"/>
<gnm:Cell Row="12" Col="9" ValueType="60">other corner</gnm:Cell>
</gnm:Cells>
</gnm:Sheet>
<gnm:Sheet>
<gnm:Name>Small</gnm:Name>
<gnm:MaxCol>-1</gnm:MaxCol>
<gnm:MaxRow>-1</gnm:MaxRow>
<gnm:Styles>
<gnm:StyleRegion startCol="0" startRow="0" endCol="50" endRow="100">
<gnm:Style HAlign="1" VAlign="1" Format="General"/>
</gnm:StyleRegion>
</gnm:Styles>
<gnm:Cells>
</gnm:Cells>
</gnm:Sheet>
<gnm:Sheet>
<gnm:Name>Graph1</gnm:Name>
</gnm:Sheet>
</gnm:Sheets>
</gnm:Workbook>
`

func loadTestWorkbook(t *testing.T) *Workbook {
	t.Helper()
	wb, err := LoadReader(strings.NewReader(testWorkbookXML))
	require.NoError(t, err)
	return wb
}

func testSheet(t *testing.T, wb *Workbook, name string) *Sheet {
	t.Helper()
	s, err := wb.SheetByName(name)
	require.NoError(t, err)
	return s
}

// newBlankSheet returns a fresh worksheet in a fresh workbook.
func newBlankSheet(t *testing.T) *Sheet {
	t.Helper()
	ws, err := New().CreateSheet("Title")
	require.NoError(t, err)
	return ws
}

func mustCell(t *testing.T, s *Sheet, row, col int) *Cell {
	t.Helper()
	c, err := s.Cell(row, col)
	require.NoError(t, err)
	return c
}

func mustDimension(t *testing.T, s *Sheet) Dimension {
	t.Helper()
	dim, err := s.CalculateDimension()
	require.NoError(t, err)
	return dim
}
