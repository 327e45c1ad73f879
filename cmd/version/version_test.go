package version

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
)

func TestVersionFunc(t *testing.T) {
	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	versionFunc(cmd, nil)

	out := buf.String()
	assert.Contains(t, out, "receipt-ledger")
	assert.Contains(t, out, Version)
	assert.Contains(t, out, GitCommit)
}
