// Package main provides the CLI entry point for gnumeric-go.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/gnumeric/gnumeric-go/pkg/gnumeric"
)

var (
	outputPath string
	pretty     bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gnumeric-tool",
		Short: "Inspect and convert Gnumeric spreadsheet files",
	}

	dumpCmd := &cobra.Command{
		Use:   "dump [input.gnumeric]",
		Short: "Dump workbook contents as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  runDump,
	}
	dumpCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	dumpCmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")

	convertCmd := &cobra.Command{
		Use:   "convert [input.gnumeric] [output.xlsx]",
		Short: "Convert a Gnumeric workbook to xlsx",
		Args:  cobra.ExactArgs(2),
		RunE:  runConvert,
	}

	rootCmd.AddCommand(dumpCmd, convertCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// bookDump is the JSON shape of a dumped workbook.
type bookDump struct {
	BookName string      `json:"book_name"`
	Version  string      `json:"version,omitempty"`
	Sheets   []sheetDump `json:"sheets"`
}

type sheetDump struct {
	Title     string     `json:"title"`
	Type      string     `json:"type"`
	Dimension *[4]int    `json:"dimension,omitempty"`
	Cells     []cellDump `json:"cells,omitempty"`
}

type cellDump struct {
	Row    int    `json:"row"`
	Col    int    `json:"col"`
	Type   string `json:"type"`
	Text   string `json:"text,omitempty"`
	ExprID string `json:"expr_id,omitempty"`
}

func runDump(cmd *cobra.Command, args []string) error {
	wb, err := gnumeric.Load(args[0])
	if err != nil {
		return fmt.Errorf("loading workbook: %w", err)
	}

	dump := bookDump{
		BookName: filepath.Base(args[0]),
		Version:  wb.Version(),
	}
	for _, s := range wb.Sheets() {
		sd := sheetDump{Title: s.Title(), Type: "worksheet"}
		if s.Type() == gnumeric.SheetTypeObject {
			sd.Type = "chartsheet"
			dump.Sheets = append(dump.Sheets, sd)
			continue
		}
		dim, err := s.CalculateDimension()
		if err != nil {
			return fmt.Errorf("sheet %q: %w", s.Title(), err)
		}
		sd.Dimension = &[4]int{dim.MinRow, dim.MinCol, dim.MaxRow, dim.MaxCol}
		for _, c := range s.CellCollection(false, gnumeric.RowMajor) {
			t, err := c.ValueType()
			if err != nil {
				return fmt.Errorf("sheet %q: %w", s.Title(), err)
			}
			cd := cellDump{Row: c.Row(), Col: c.Column(), Type: t.String(), Text: c.Text()}
			if v, err := c.Value(); err == nil {
				if expr, ok := v.(*gnumeric.Expression); ok {
					cd.ExprID = expr.ID()
				}
			}
			sd.Cells = append(sd.Cells, cd)
		}
		dump.Sheets = append(dump.Sheets, sd)
	}

	var jsonData []byte
	if pretty {
		jsonData, err = json.MarshalIndent(dump, "", "  ")
	} else {
		jsonData, err = json.Marshal(dump)
	}
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}

	if outputPath != "" {
		if err := os.WriteFile(outputPath, jsonData, 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
	fmt.Println(string(jsonData))
	return nil
}

func runConvert(cmd *cobra.Command, args []string) error {
	wb, err := gnumeric.Load(args[0])
	if err != nil {
		return fmt.Errorf("loading workbook: %w", err)
	}
	f, err := gnumeric.ExportXLSX(wb)
	if err != nil {
		return fmt.Errorf("conversion failed: %w", err)
	}
	defer f.Close()
	if err := f.SaveAs(args[1]); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
