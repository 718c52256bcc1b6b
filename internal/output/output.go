// Package output renders sampled frames as a table, CSV or YAML.
package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"gopkg.in/yaml.v3"

	"github.com/ivlev/interpoli/internal/renderer"
)

// Writer renders one sampling result.
type Writer interface {
	Write(w io.Writer, res *renderer.Result) error
	// Ext is the file extension used when results are written to a directory.
	Ext() string
}

// New returns the writer for format: table, csv or yaml.
func New(format string) (Writer, error) {
	switch strings.ToLower(format) {
	case "table", "":
		return TableWriter{}, nil
	case "csv":
		return CSVWriter{}, nil
	case "yaml":
		return YAMLWriter{}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}

func header(res *renderer.Result) []string {
	return append([]string{"frame", "time"}, res.Columns...)
}

func row(f renderer.Frame) []string {
	return append([]string{strconv.FormatInt(f.Index, 10), f.Time.ClockString()}, f.Values...)
}

type TableWriter struct{}

func (TableWriter) Ext() string { return ".txt" }

func (TableWriter) Write(w io.Writer, res *renderer.Result) error {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.SetTitle(res.Scene)

	cols := header(res)
	h := make(table.Row, len(cols))
	for i, c := range cols {
		h[i] = c
	}
	tw.AppendHeader(h)

	for _, f := range res.Frames {
		values := row(f)
		r := make(table.Row, len(values))
		for i, v := range values {
			r[i] = v
		}
		tw.AppendRow(r)
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})

	_, err := fmt.Fprintln(w, tw.Render())
	return err
}

type CSVWriter struct{}

func (CSVWriter) Ext() string { return ".csv" }

func (CSVWriter) Write(w io.Writer, res *renderer.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header(res)); err != nil {
		return err
	}
	for _, f := range res.Frames {
		if err := cw.Write(row(f)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

type YAMLWriter struct{}

func (YAMLWriter) Ext() string { return ".yaml" }

type yamlFrame struct {
	Frame  int64             `yaml:"frame"`
	Time   string            `yaml:"time"`
	Values map[string]string `yaml:"values"`
}

type yamlResult struct {
	Scene  string      `yaml:"scene"`
	Frames []yamlFrame `yaml:"frames"`
}

func (YAMLWriter) Write(w io.Writer, res *renderer.Result) error {
	out := yamlResult{Scene: res.Scene, Frames: make([]yamlFrame, 0, len(res.Frames))}
	for _, f := range res.Frames {
		values := make(map[string]string, len(res.Columns))
		for i, c := range res.Columns {
			values[c] = f.Values[i]
		}
		out.Frames = append(out.Frames, yamlFrame{
			Frame:  f.Index,
			Time:   f.Time.ClockString(),
			Values: values,
		})
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode samples: %w", err)
	}
	return enc.Close()
}
