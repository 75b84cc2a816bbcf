package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/zx06/credkeep/internal/errors"
)

type Writer struct {
	Out io.Writer
	Err io.Writer
}

func New(out, err io.Writer) Writer {
	return Writer{Out: out, Err: err}
}

func (w Writer) WriteOK(format Format, data any) error {
	return w.write(format, Envelope{OK: true, SchemaVersion: SchemaVersion, Data: data})
}

func (w Writer) WriteError(format Format, xe *errors.XError) error {
	errObj := &ErrorObject{Code: xe.Code, Message: xe.Message, Details: xe.Details}
	return w.write(format, Envelope{OK: false, SchemaVersion: SchemaVersion, Error: errObj})
}

// WriteRaw 输出不带信封的单个值（用于管道），末尾补换行。
func (w Writer) WriteRaw(s string) error {
	_, err := io.WriteString(w.Out, s+"\n")
	return err
}

func (w Writer) write(format Format, env Envelope) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w.Out)
		enc.SetEscapeHTML(false)
		return enc.Encode(env)
	case FormatYAML:
		b, err := yaml.Marshal(env)
		if err != nil {
			return err
		}
		_, err = w.Out.Write(b)
		if err != nil {
			return err
		}
		if len(b) == 0 || b[len(b)-1] != '\n' {
			_, _ = w.Out.Write([]byte("\n"))
		}
		return nil
	case FormatTable:
		return writeTable(w.Out, env)
	case FormatCSV:
		return writeCSV(w.Out, env)
	default:
		return errors.New(errors.CodeCfgInvalid, "invalid output format", map[string]any{"format": string(format)})
	}
}

// rows 把信封展开为 key/value 行；data 为 map 时逐键展开，否则整体压成一行 JSON。
func rows(env Envelope) [][2]string {
	out := [][2]string{
		{"ok", fmt.Sprintf("%v", env.OK)},
		{"schema_version", fmt.Sprintf("%d", env.SchemaVersion)},
	}
	if env.OK {
		if env.Data != nil {
			out = append(out, dataRows(env.Data)...)
		}
		return out
	}
	if env.Error != nil {
		out = append(out,
			[2]string{"error.code", string(env.Error.Code)},
			[2]string{"error.message", env.Error.Message},
		)
		for _, k := range sortedKeys(env.Error.Details) {
			out = append(out, [2]string{"error.details." + k, scalar(env.Error.Details[k])})
		}
	}
	return out
}

func dataRows(data any) [][2]string {
	m, ok := asMap(data)
	if !ok {
		return [][2]string{{"data", scalar(data)}}
	}
	out := make([][2]string, 0, len(m))
	for _, k := range sortedKeys(m) {
		out = append(out, [2]string{"data." + k, scalar(m[k])})
	}
	return out
}

// asMap 通过 JSON 往返把 struct/map 统一成 map[string]any。
func asMap(data any) (map[string]any, bool) {
	if m, ok := data.(map[string]any); ok {
		return m, true
	}
	b, err := json.Marshal(data)
	if err != nil {
		return nil, false
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, false
	}
	return m, true
}

func scalar(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case fmt.Stringer:
		return x.String()
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return strings.ReplaceAll(string(b), "\n", " ")
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func writeTable(out io.Writer, env Envelope) error {
	tw := tabwriter.NewWriter(out, 0, 2, 2, ' ', 0)
	for _, r := range rows(env) {
		_, _ = fmt.Fprintf(tw, "%s\t%s\n", r[0], r[1])
	}
	return tw.Flush()
}

func writeCSV(out io.Writer, env Envelope) error {
	cw := csv.NewWriter(out)
	for _, r := range rows(env) {
		_ = cw.Write([]string{r[0], r[1]})
	}
	cw.Flush()
	return cw.Error()
}
