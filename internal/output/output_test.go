// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package output

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v2"

	"github.com/cfgdiff/cfgdiff/internal/cnode"
	"github.com/cfgdiff/cfgdiff/internal/differ"
	"github.com/cfgdiff/cfgdiff/internal/render"
	"github.com/cfgdiff/cfgdiff/internal/revspec"
	"github.com/cfgdiff/cfgdiff/internal/session"
)

func TestSortDataset(t *testing.T) {
	t.Parallel()

	now := time.Now()
	testData := []map[string]interface{}{
		{"id": "zebra", "serial": int64(3), "created": now.Add(-time.Hour), "kind": "b"},
		{"id": "Alpha", "serial": int64(1), "created": now, "kind": "a"},
		{"id": "beta", "serial": int64(2), "created": now.Add(-2 * time.Hour), "kind": "b"},
	}

	tests := []struct {
		name      string
		spec      string
		wantOrder []string
	}{
		{"ascending by id", "id", []string{"Alpha", "beta", "zebra"}},
		{"descending by id", "-id", []string{"zebra", "beta", "Alpha"}},
		{"ascending by serial", "serial", []string{"Alpha", "beta", "zebra"}},
		{"descending by serial", "-serial", []string{"zebra", "beta", "Alpha"}},
		{"by time", "created", []string{"beta", "zebra", "Alpha"}},
		{"case sensitive", "!id", []string{"Alpha", "beta", "zebra"}},
		{"multiple fields", "-kind,serial", []string{"beta", "zebra", "Alpha"}},
		{"empty spec", "", []string{"zebra", "Alpha", "beta"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			data := make([]map[string]interface{}, len(testData))
			copy(data, testData)
			SortDataset(data, tt.spec)
			for i, expected := range tt.wantOrder {
				assert.Equal(t, expected, data[i]["id"], "at index %d", i)
			}
		})
	}
}

func TestInterfaceToString(t *testing.T) {
	t.Parallel()

	ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		value interface{}
		empty []string
		want  string
	}{
		{"nil", nil, nil, ""},
		{"nil with empty value", nil, []string{"-"}, "-"},
		{"empty string with empty value", "", []string{"-"}, "-"},
		{"string", "abc", nil, "abc"},
		{"int", 42, nil, "42"},
		{"int64", int64(7), nil, "7"},
		{"float", 1.5, nil, "1.5"},
		{"whole float", 3.0, nil, "3"},
		{"bool", true, nil, "true"},
		{"time", ts, nil, "2026-03-01T12:00:00Z"},
		{"zero time", time.Time{}, []string{"-"}, "-"},
		{"other", []string{"a"}, nil, "[a]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, InterfaceToString(tt.value, tt.empty...))
		})
	}
}

func TestGetColors(t *testing.T) {
	title, add, del, even, odd := getColors("colors")

	assert.NotNil(t, title)
	assert.NotNil(t, add)
	assert.NotNil(t, del)
	assert.NotNil(t, even)
	assert.NotNil(t, odd)
}

func commandReport() *session.Report {
	return &session.Report{
		From:     "@ACTIVE",
		To:       "@WORKING",
		Path:     []string{"interfaces"},
		Diff:     true,
		Commands: true,
		Batch: cnode.Batch{
			Delete: []cnode.Command{{Verb: cnode.VerbDelete, Path: []string{"interfaces", "bonding"}}},
			Set: []cnode.Command{{
				Verb: cnode.VerbSet,
				Path: []string{"interfaces", "ethernet", "eth0", "description"},
				Args: []string{"to core"},
			}},
		},
	}
}

func diffReport() *session.Report {
	line := func(op differ.Op, depth int, text string) differ.Line {
		return differ.Line{Op: op, Line: render.Line{Depth: depth, Text: text}}
	}
	return &session.Report{
		From: "@ACTIVE",
		To:   "@WORKING",
		Diff: true,
		Lines: []differ.Line{
			line(differ.OpContext, 0, "eth0 {"),
			line(differ.OpDel, 1, "mtu 1500"),
			line(differ.OpAdd, 1, "mtu 9000"),
			line(differ.OpContext, 0, "}"),
		},
	}
}

func TestWriteReport_Text(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteReport(commandReport(), Options{}, &buf))
	assert.Equal(t,
		"delete interfaces bonding\nset interfaces ethernet eth0 description 'to core'\n",
		buf.String())

	buf.Reset()
	require.NoError(t, WriteReport(diffReport(), Options{Output: FormatText}, &buf))
	assert.Equal(t, "  eth0 {\n-     mtu 1500\n+     mtu 9000\n  }\n", buf.String())
}

func TestWriteReport_Color(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteReport(diffReport(), Options{Color: true}, &buf))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[1], "-     mtu 1500")
	assert.Contains(t, lines[2], "+     mtu 9000")

	buf.Reset()
	require.NoError(t, WriteReport(commandReport(), Options{Color: true}, &buf))
	assert.Contains(t, buf.String(), "delete interfaces bonding")
}

func TestWriteReport_JSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteReport(commandReport(), Options{Output: FormatJSON}, &buf))

	var doc reportDoc
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "@ACTIVE", doc.From)
	assert.Equal(t, []string{"interfaces"}, doc.Path)
	require.NotNil(t, doc.Commands)
	assert.Equal(t, [][]string{{"interfaces", "bonding"}}, doc.Commands.Delete)
	assert.Equal(t, [][]string{{"interfaces", "ethernet", "eth0", "description", "to core"}}, doc.Commands.Set)
	assert.Empty(t, doc.Commands.Comment)
	assert.Empty(t, doc.Lines)

	buf.Reset()
	require.NoError(t, WriteReport(diffReport(), Options{Output: FormatJSON}, &buf))
	doc = reportDoc{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Nil(t, doc.Commands)
	assert.Equal(t, []lineDoc{
		{Depth: 0, Text: "eth0 {"},
		{Op: "-", Depth: 1, Text: "mtu 1500"},
		{Op: "+", Depth: 1, Text: "mtu 9000"},
		{Depth: 0, Text: "}"},
	}, doc.Lines)
}

func TestWriteReport_YAML(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteReport(commandReport(), Options{Output: FormatYAML}, &buf))

	var doc reportDoc
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "@WORKING", doc.To)
	require.NotNil(t, doc.Commands)
	assert.Equal(t, [][]string{{"interfaces", "bonding"}}, doc.Commands.Delete)
}

func TestWriteReport_Tree(t *testing.T) {
	t.Parallel()

	r := &session.Report{From: "@ACTIVE", To: "@ACTIVE", Tree: []render.Line{
		{Depth: 0, Text: "eth0 {", Structural: true},
		{Depth: 1, Text: "mtu 9000"},
		{Depth: 0, Text: "}", Structural: true},
	}}

	var buf bytes.Buffer
	require.NoError(t, WriteReport(r, Options{Color: true}, &buf))
	assert.Equal(t, "eth0 {\n    mtu 9000\n}\n", buf.String())
}

func TestWriteReport_UnknownFormat(t *testing.T) {
	t.Parallel()

	err := WriteReport(commandReport(), Options{Output: "xml"}, &bytes.Buffer{})
	assert.ErrorContains(t, err, "unknown output format")
}

func revisions() []*revspec.Revision {
	now := time.Now()
	return []*revspec.Revision{
		{ID: "v3", Serial: 3, CreatedAt: now.Add(-time.Hour), Size: 2048, Location: "s3://b/k"},
		{ID: "v2", Serial: 2, CreatedAt: now.Add(-48 * time.Hour), Size: 1024, Location: "s3://b/k"},
		{ID: "v1", Serial: 1, CreatedAt: now.Add(-72 * time.Hour), Location: "s3://b/k"},
	}
}

func TestWriteRevisions_Text(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteRevisions(revisions(), Options{Titles: true, Padding: 2}, &buf))
	out := buf.String()

	assert.Contains(t, out, "serial")
	assert.Contains(t, out, "location")
	assert.Contains(t, out, "1 hour ago")
	assert.Contains(t, out, "2.0 kB")

	i3, i1 := strings.Index(out, "v3"), strings.Index(out, "v1")
	require.NotEqual(t, -1, i3)
	require.NotEqual(t, -1, i1)
	assert.Less(t, i3, i1, "newest first by default")

	buf.Reset()
	require.NoError(t, WriteRevisions(revisions(), Options{Sort: "serial"}, &buf))
	out = buf.String()
	assert.Less(t, strings.Index(out, "v1"), strings.Index(out, "v3"))
	assert.NotContains(t, out, "location")
}

func TestWriteRevisions_Empty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteRevisions(nil, Options{}, &buf))
	assert.Empty(t, buf.String())

	require.NoError(t, WriteRevisions(nil, Options{Output: FormatJSON}, &buf))
	assert.Equal(t, "[]\n", buf.String())
}

func TestWriteRevisions_JSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteRevisions(revisions(), Options{Output: FormatJSON, Sort: "serial"}, &buf))

	var got []revspec.Revision
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 3)
	assert.Equal(t, "v3", got[0].ID, "structured output keeps archive order")
	assert.Equal(t, int64(2048), got[0].Size)
}

func TestCell(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "-", cell("size", int64(0), Options{}))
	assert.Equal(t, "1.5 kB", cell("size", int64(1500), Options{}))
	assert.Equal(t, "3", cell("serial", int64(3), Options{}))
	assert.Equal(t, "-", cell("created", time.Time{}, Options{}))
	assert.Equal(t, "-", cell("location", "", Options{}))
}

func TestOptionsFrom(t *testing.T) {
	t.Parallel()

	var got Options
	cmd := &cli.Command{
		Name: "test",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "output", Value: FormatText},
			&cli.BoolFlag{Name: "color"},
			&cli.BoolFlag{Name: "titles"},
			&cli.IntFlag{Name: "padding"},
			&cli.StringFlag{Name: "sort"},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			got = OptionsFrom(cmd)
			return nil
		},
	}

	require.NoError(t, cmd.Run(context.Background(), []string{"test", "--output", "yaml", "--color", "--padding", "3", "--sort", "-id"}))
	assert.Equal(t, Options{Output: FormatYAML, Color: true, Padding: 3, Sort: "-id"}, got)
}

func TestFilterRevisions(t *testing.T) {
	t.Parallel()

	got, err := FilterRevisions(revisions(), "serial>1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "v3", got[0].ID)
	assert.Equal(t, "v2", got[1].ID)

	got, err = FilterRevisions(revisions(), "id=v1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(1), got[0].Serial)

	got, err = FilterRevisions(revisions(), "")
	require.NoError(t, err)
	assert.Len(t, got, 3)

	_, err = FilterRevisions(revisions(), "id/[")
	assert.Error(t, err)
}
