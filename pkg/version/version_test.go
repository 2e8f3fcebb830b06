package version_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Sumatoshi-tech/autograde/pkg/version"
)

func TestString(t *testing.T) {
	t.Parallel()

	version.InitBinaryVersion()

	got := version.String()
	assert.Contains(t, got, "autograde "+version.Version)
	assert.Contains(t, got, "commit: "+version.Commit)
}
