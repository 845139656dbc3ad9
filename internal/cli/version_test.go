package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersionCmd(t *testing.T) {
	t.Parallel()

	// Test: version output names the build and the registered processors
	var out bytes.Buffer
	versionCmd.SetOut(&out)
	versionCmd.Run(versionCmd, nil)

	assert.Contains(t, out.String(), "ngx-extract dev")
	assert.Contains(t, out.String(), "Processors: [extract-inline-html]")
}
