// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package differ

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cfgdiff/cfgdiff/internal/cnode"
)

var m = cnode.Must

// router builds a small device configuration. mtu is the value of eth0's mtu
// leaf; an empty mtu leaves the schema default of 1500 in place.
func router(mtu string, rules ...*cnode.Node) *cnode.Node {
	mtuNode := m("mtu", cnode.WithValues("1500"), cnode.Default())
	if mtu != "" {
		mtuNode = m("mtu", cnode.WithValues(mtu))
	}

	names := []*cnode.Node{m("WAN-LOCAL", cnode.WithChildren(
		m("default-action", cnode.WithValues("drop")),
	))}
	names = append(rules, names...)

	return m("",
		cnode.WithChildren(
			m("interfaces", cnode.WithChildren(
				m("ethernet", cnode.WithChildren(
					m("eth0",
						cnode.WithComment("uplink"),
						cnode.WithChildren(
							m("address", cnode.WithValues("192.0.2.1/24")),
							m("description", cnode.WithValues("to core")),
							mtuNode,
						)),
				)),
			)),
			m("firewall", cnode.WithChildren(
				m("name", cnode.WithChildren(names...)),
			)),
			m("system", cnode.WithChildren(
				m("host-name", cnode.WithValues("r1")),
				m("login", cnode.WithChildren(
					m("user", cnode.WithChildren(
						m("admin", cnode.WithChildren(
							m("password", cnode.WithValues("hunter2"), cnode.Secret()),
						)),
					)),
				)),
			)),
		))
}

func wanIn() *cnode.Node {
	return m("WAN-IN", cnode.WithChildren(
		m("default-action", cnode.WithValues("drop")),
		m("rule", cnode.WithChildren(
			m("10", cnode.WithChildren(
				m("action", cnode.WithValues("accept")),
				m("state", cnode.WithChildren(m("established", cnode.WithValues("enable")))),
			)),
		)),
	))
}

func TestCompare_Identical(t *testing.T) {
	t.Parallel()

	d := Compare(router(""), router(""), nil)
	assert.Equal(t, Unchanged, d.Kind)
	assert.Nil(t, d.Children)
}

func TestCompare_NilSides(t *testing.T) {
	t.Parallel()

	n := m("x", cnode.WithValues("1"))

	tests := []struct {
		name   string
		c1, c2 *cnode.Node
		want   Kind
	}{
		{"both nil", nil, nil, Unchanged},
		{"only second", nil, n, Added},
		{"only first", n, nil, Removed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			d := Compare(tt.c1, tt.c2, []string{"x"})
			assert.Equal(t, tt.want, d.Kind)
			assert.Equal(t, []string{"x"}, d.Path)
		})
	}
}

func TestCompare_Classification(t *testing.T) {
	t.Parallel()

	d := Compare(router("", wanIn()), router("9000"), nil)
	require.Equal(t, Changed, d.Kind)

	kinds := map[string]Kind{}
	d.Walk(func(c *Delta) {
		kinds[cnode.FormatPath(c.Path)] = c.Kind
	})

	assert.Equal(t, Changed, kinds["interfaces/ethernet/eth0/mtu"])
	assert.Equal(t, Unchanged, kinds["interfaces/ethernet/eth0/address"])
	assert.Equal(t, Removed, kinds["firewall/name/WAN-IN"])
	assert.Equal(t, Unchanged, kinds["firewall/name/WAN-LOCAL"])
	assert.Equal(t, Unchanged, kinds["system"])

	// Descendants of removed and unchanged nodes are not expanded.
	_, ok := kinds["firewall/name/WAN-IN/rule"]
	assert.False(t, ok)
	_, ok = kinds["system/host-name"]
	assert.False(t, ok)
}

func TestCompare_OwnProperties(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name                  string
		c1, c2                *cnode.Node
		value, comment, state bool
	}{
		{
			name:  "value",
			c1:    m("mtu", cnode.WithValues("1500")),
			c2:    m("mtu", cnode.WithValues("9000")),
			value: true,
		},
		{
			name:  "default override with same value",
			c1:    m("mtu", cnode.WithValues("1500"), cnode.Default()),
			c2:    m("mtu", cnode.WithValues("1500")),
			value: true,
		},
		{
			name:    "comment",
			c1:      m("mtu", cnode.WithValues("1500"), cnode.WithComment("a")),
			c2:      m("mtu", cnode.WithValues("1500"), cnode.WithComment("b")),
			comment: true,
		},
		{
			name:  "deactivated",
			c1:    m("ssh", cnode.WithChildren(m("port", cnode.WithValues("22")))),
			c2:    m("ssh", cnode.WithChildren(m("port", cnode.WithValues("22"))), cnode.Deactivated()),
			state: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			d := Compare(tt.c1, tt.c2, []string{tt.c1.Name()})
			assert.Equal(t, Changed, d.Kind)
			assert.Equal(t, tt.value, d.ValueChanged)
			assert.Equal(t, tt.comment, d.CommentChanged)
			assert.Equal(t, tt.state, d.StateChanged)
		})
	}
}

func TestCompare_ChildOrder(t *testing.T) {
	t.Parallel()

	c1 := m("", cnode.WithChildren(m("a"), m("b"), m("c"), m("z")))
	c2 := m("", cnode.WithChildren(m("a"), m("d"), m("c")))

	d := Compare(c1, c2, nil)
	require.Equal(t, Changed, d.Kind)

	var names []string
	var kinds []Kind
	for _, c := range d.Children {
		names = append(names, c.Path[0])
		kinds = append(kinds, c.Kind)
	}
	assert.Equal(t, []string{"a", "d", "b", "c", "z"}, names)
	assert.Equal(t, []Kind{Unchanged, Added, Removed, Unchanged, Removed}, kinds)
}

func TestCompare_PathsAreIndependent(t *testing.T) {
	t.Parallel()

	base := make([]string, 1, 16)
	base[0] = "interfaces"
	c1 := m("interfaces", cnode.WithChildren(m("a", cnode.WithValues("1")), m("b", cnode.WithValues("1"))))
	c2 := m("interfaces", cnode.WithChildren(m("a", cnode.WithValues("2")), m("b", cnode.WithValues("2"))))

	d := Compare(c1, c2, base)
	require.Len(t, d.Children, 2)
	assert.Equal(t, []string{"interfaces", "a"}, d.Children[0].Path)
	assert.Equal(t, []string{"interfaces", "b"}, d.Children[1].Path)
}

func TestKind_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "unchanged", Unchanged.String())
	assert.Equal(t, "added", Added.String())
	assert.Equal(t, "removed", Removed.String())
	assert.Equal(t, "changed", Changed.String())
	assert.Equal(t, "unknown", Kind(42).String())
}
