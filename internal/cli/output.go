package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"gopkg.in/yaml.v3"

	"mediarelay/internal/api"
	textutil "mediarelay/pkg/strings"
)

// OutputFormat selects how listings are rendered.
type OutputFormat string

const (
	OutputFormatTable OutputFormat = "table" // rounded box table
	OutputFormatPlain OutputFormat = "plain" // aligned columns without borders
	OutputFormatJSON  OutputFormat = "json"
	OutputFormatYAML  OutputFormat = "yaml"
)

// ParseOutputFormat validates an --output flag value.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case OutputFormatTable, OutputFormatPlain, OutputFormatJSON, OutputFormatYAML:
		return f, nil
	case "":
		return OutputFormatTable, nil
	}
	return "", fmt.Errorf("invalid output format %q (valid: table, plain, json, yaml)", s)
}

// OutputOptions controls rendering of listings.
type OutputOptions struct {
	Format    OutputFormat
	NoHeaders bool
	NoColor   bool
}

func (o OutputOptions) newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	if o.Format == OutputFormatPlain {
		t.SetStyle(table.StyleDefault)
		t.Style().Options = table.OptionsNoBordersAndSeparators
		t.Style().Box.PaddingLeft = ""
		t.Style().Box.PaddingRight = "   "
		t.Style().Format.Header = text.FormatUpper
	} else {
		t.SetStyle(table.StyleRounded)
	}
	return t
}

func (o OutputOptions) header(t table.Writer, cols ...string) {
	if o.NoHeaders {
		return
	}
	row := make(table.Row, len(cols))
	for i, col := range cols {
		row[i] = o.colorize(text.FgHiCyan, col)
	}
	t.AppendHeader(row)
}

func (o OutputOptions) colorize(color text.Color, s string) string {
	if o.NoColor || o.Format == OutputFormatPlain {
		return s
	}
	return color.Sprint(s)
}

// featureRecord is the serialized form of a feature for json and yaml.
type featureRecord struct {
	Name     string         `json:"name" yaml:"name"`
	State    string         `json:"state" yaml:"state"`
	Protocol string         `json:"protocol,omitempty" yaml:"protocol,omitempty"`
	Options  map[string]any `json:"options,omitempty" yaml:"options,omitempty"`
}

// RenderFeatures writes a feature listing.
func RenderFeatures(w io.Writer, features []api.NamedFeature, opts OutputOptions) error {
	switch opts.Format {
	case OutputFormatJSON, OutputFormatYAML:
		records := make([]featureRecord, 0, len(features))
		for _, f := range features {
			rec := featureRecord{Name: string(f.Name), State: f.Info.State.String()}
			if f.Protocol != 0 {
				rec.Protocol = f.Protocol.String()
			}
			if len(f.Info.Options) > 0 {
				rec.Options = f.Info.Options
			}
			records = append(records, rec)
		}
		return encode(w, opts.Format, records)
	}

	if len(features) == 0 {
		fmt.Fprintln(w, opts.colorize(text.FgYellow, "No features found"))
		return nil
	}

	t := opts.newTable(w)
	opts.header(t, "Feature", "State", "Protocol", "Options")
	for _, f := range features {
		protocol := "-"
		if f.Protocol != 0 {
			protocol = f.Protocol.String()
		}
		t.AppendRow(table.Row{string(f.Name), opts.colorize(stateColor(f.Info.State), f.Info.State.String()), protocol, formatOptions(f.Info.Options)})
	}
	t.Render()
	return nil
}

func stateColor(state api.FeatureState) text.Color {
	switch state {
	case api.FeatureStateAvailable:
		return text.FgGreen
	case api.FeatureStateUnavailable:
		return text.FgYellow
	case api.FeatureStateUnsupported:
		return text.FgRed
	default:
		return text.FgHiBlack
	}
}

func formatOptions(options map[string]any) string {
	if len(options) == 0 {
		return "-"
	}
	keys := make([]string, 0, len(options))
	for k := range options {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, options[k]))
	}
	return textutil.Cell(strings.Join(parts, ", "), textutil.CellMaxLen)
}

// FeatureLegend explains the feature states, as printed below the features
// table.
const FeatureLegend = `Legend:
  Available:   Supported by the device and usable now
  Unavailable: Supported by the device but not usable now
  Unknown:     Supported by the device but availability not known
  Unsupported: Not supported by any active protocol`

type commandRecord struct {
	Name  string `json:"name" yaml:"name"`
	Group string `json:"group" yaml:"group"`
	Usage string `json:"usage,omitempty" yaml:"usage,omitempty"`
	Help  string `json:"help" yaml:"help"`
}

// RenderCommands writes the command listing.
func RenderCommands(w io.Writer, specs []CommandSpec, opts OutputOptions) error {
	switch opts.Format {
	case OutputFormatJSON, OutputFormatYAML:
		records := make([]commandRecord, 0, len(specs))
		for _, s := range specs {
			records = append(records, commandRecord{Name: s.Name, Group: s.Group, Usage: s.Usage, Help: s.Help})
		}
		return encode(w, opts.Format, records)
	}

	t := opts.newTable(w)
	opts.header(t, "Group", "Command", "Help")
	for _, s := range specs {
		name := s.Name
		if s.Usage != "" {
			name += "=" + s.Usage
		}
		t.AppendRow(table.Row{s.Group, name, s.Help})
	}
	t.Render()
	return nil
}

// RenderVersion writes the application version. Structured formats carry it
// under a version key.
func RenderVersion(w io.Writer, version string, opts OutputOptions) error {
	switch opts.Format {
	case OutputFormatJSON, OutputFormatYAML:
		return encode(w, opts.Format, struct {
			Version string `json:"version" yaml:"version"`
		}{Version: version})
	}
	_, err := fmt.Fprintf(w, "mediarelay version %s\n", version)
	return err
}

func encode(w io.Writer, format OutputFormat, v any) error {
	if format == OutputFormatYAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(v)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
