package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraphCommand(t *testing.T) {
	var out bytes.Buffer
	root := newRootCommand()
	root.SetOut(&out)
	root.SetArgs([]string{"graph"})

	require.NoError(t, root.ExecuteContext(t.Context()))

	assert.Contains(t, out.String(), "# product")
	assert.Contains(t, out.String(), "# shipment")
	assert.Contains(t, out.String(), "ready_for_pickup")
}

func TestGraphCommand_RejectsArguments(t *testing.T) {
	root := newRootCommand()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"graph", "extra"})

	assert.Error(t, root.ExecuteContext(t.Context()))
}
