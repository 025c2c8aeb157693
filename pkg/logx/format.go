package logx

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

const (
	colorReset  = "\033[0m"
	colorGray   = "\033[90m"
	colorBlue   = "\033[34m"
	colorYellow = "\033[33m"
	colorRed    = "\033[31m"
	colorPurple = "\033[35m"
)

type consoleFormatter struct {
	timeFormat string
	colors     bool
}

func (f *consoleFormatter) format(r *record) []byte {
	var buf bytes.Buffer

	buf.WriteString(r.Timestamp.Format(f.timeFormat))
	buf.WriteByte(' ')

	level := fmt.Sprintf("%-5s", r.Level)
	if f.colors {
		buf.WriteString(f.levelColor(r.Level))
		buf.WriteString(level)
		buf.WriteString(colorReset)
	} else {
		buf.WriteString(level)
	}

	buf.WriteByte(' ')
	buf.WriteString(r.Message)

	if len(r.Fields) > 0 {
		keys := make([]string, 0, len(r.Fields))
		for k := range r.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&buf, " %s=%v", k, r.Fields[k])
		}
	}

	if r.Error != nil {
		fmt.Fprintf(&buf, " error=%q", r.Error.Error())
	}

	buf.WriteByte('\n')
	return buf.Bytes()
}

func (f *consoleFormatter) levelColor(l Level) string {
	switch l {
	case LevelDebug:
		return colorGray
	case LevelInfo:
		return colorBlue
	case LevelWarn:
		return colorYellow
	case LevelError:
		return colorRed
	case LevelFatal:
		return colorPurple
	default:
		return colorReset
	}
}

type jsonFormatter struct {
	timeFormat string
}

func (f *jsonFormatter) format(r *record) []byte {
	m := make(map[string]interface{}, len(r.Fields)+4)
	for k, v := range r.Fields {
		m[k] = v
	}
	m["time"] = r.Timestamp.Format(f.timeFormat)
	m["level"] = r.Level.String()
	m["message"] = r.Message
	if r.Error != nil {
		m["error"] = r.Error.Error()
	}

	line, err := json.Marshal(m)
	if err != nil {
		line = []byte(fmt.Sprintf(`{"level":"ERROR","message":"logx: marshal failed: %v"}`, err))
	}
	return append(line, '\n')
}
