package tools

import (
	"bytes"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Comcast/spamscan/core"
	"github.com/Comcast/spamscan/records"
)

func TestMermaid(t *testing.T) {
	g, err := core.TicketGraph()
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, Mermaid(g, &out, nil))

	s := out.String()
	assert.True(t, strings.HasPrefix(s, "graph LR\n"))
	assert.Contains(t, s, `n0(["start"])`)
	assert.Contains(t, s, `n2("num")`)
	assert.Contains(t, s, `n2 -- "'!' / flag" --> n0`)
	assert.Contains(t, s, "style n0 fill:#f98b8b")
}

func TestMermaidOpts(t *testing.T) {
	g, err := records.Build(records.DefaultGrammar())
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, Mermaid(g, &out, &MermaidOpts{
		HideCatchAlls: true,
		SpamClass:     "spam",
	}))

	s := out.String()
	assert.NotContains(t, s, "--\"")
	assert.NotContains(t, s, "#quot;*")
	assert.Contains(t, s, `("kw[free ]")`)
	assert.Contains(t, s, `("openDoc_0")`)

	spam, have := g.Lookup(records.SpamState)
	require.True(t, have)
	assert.Contains(t, s, "class n"+strconv.Itoa(int(spam))+" spam")
}
