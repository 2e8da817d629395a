package log

import (
	"bytes"
	"os"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	assert := assert.New(t)
	defer SetDebug(false)
	defer SetOutput(os.Stderr)
	var buf bytes.Buffer
	SetOutput(&buf)

	l := New("codec")
	assert.Equal("codec", l.Data["pkg"])
	assert.Equal(logrus.InfoLevel, l.Logger.GetLevel())
	l.Debugf("hidden")
	assert.Empty(buf.String())

	SetDebug(true)
	assert.Equal(logrus.DebugLevel, l.Logger.GetLevel())
	New("onchain").Debugf("shown")
	assert.Contains(buf.String(), "shown")
	assert.Contains(buf.String(), "onchain")
}
