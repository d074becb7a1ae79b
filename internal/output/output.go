// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"encoding/json"
	"fmt"
	"image/color"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v2"

	"github.com/cfgdiff/cfgdiff/internal/config"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Options control how results are written.
type Options struct {
	Output  string
	Color   bool
	Titles  bool
	Padding int
	// Local prints absolute local times instead of relative ages.
	Local bool
	// Sort is a comma separated list of columns. A leading '-' sorts
	// descending, a leading '!' compares strings case sensitively.
	Sort string
}

// OptionsFrom reads the output flags of cmd.
func OptionsFrom(cmd *cli.Command) Options {
	return Options{
		Output:  cmd.String("output"),
		Color:   cmd.Bool("color"),
		Titles:  cmd.Bool("titles"),
		Padding: cmd.Int("padding"),
		Local:   cmd.Bool("local"),
		Sort:    cmd.String("sort"),
	}
}

// marshal writes v as a JSON or YAML document.
func marshal(v interface{}, format string, w io.Writer) error {
	var (
		out []byte
		err error
	)

	switch format {
	case FormatJSON:
		out, err = json.MarshalIndent(v, "", "  ")
		out = append(out, '\n')
	case FormatYAML:
		out, err = yaml.Marshal(v)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", format, err)
	}
	_, err = w.Write(out)
	return err
}

// InterfaceToString converts supported primitive values to a display string.
// A custom empty value may be provided.
func InterfaceToString(value interface{}, emptyValue ...string) string {
	if len(emptyValue) == 0 {
		emptyValue = []string{""}
	}

	switch value := value.(type) {
	case nil:
		return emptyValue[0]
	case string:
		if value == "" {
			return emptyValue[0]
		}
		return value
	case int:
		return strconv.Itoa(value)
	case int64:
		return strconv.FormatInt(value, 10)
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(value)
	case time.Time:
		if value.IsZero() {
			return emptyValue[0]
		}
		return value.Format(time.RFC3339)
	default:
		return fmt.Sprintf("%v", value)
	}
}

// formatTime renders t as an age, or as a local timestamp when local is set.
func formatTime(t time.Time, local bool) string {
	if t.IsZero() {
		return "-"
	}
	if local {
		return t.In(time.Local).Format("2006-01-02T15:04:05MST")
	}
	return humanize.Time(t)
}

// getColors returns configured color values for the given key prefix. Each
// color is selected based on terminal background color and brightness so that
// output is reasonably visible for all terminal themes.
func getColors(key string) (title, add, del, even, odd color.Color) {
	isDark := lipgloss.HasDarkBackground(os.Stdin, os.Stdout)

	// Use the explicit color if found in the config and leave it up to the user
	// to choose appropriate colors for their theme.
	resolveColor := func(key string, light string, dark string) color.Color {
		colorCfg, err := config.GetString(key)
		if err == nil {
			return lipgloss.Color(colorCfg)
		}

		if isDark {
			return lipgloss.Color(dark)
		}
		return lipgloss.Color(light)
	}

	title = resolveColor(key+".title", "#b08800", "#f6be00")
	add = resolveColor(key+".add", "#1a7f37", "#3fb950")
	del = resolveColor(key+".del", "#cf222e", "#f85149")
	even = resolveColor(key+".even", "#333333", "#ffffff")
	odd = resolveColor(key+".odd", "#0088a0", "#00c8f0")

	return
}
