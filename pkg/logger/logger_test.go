package logger

import (
	"bytes"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 未调用SetupLogger时日志函数也必须可用，库代码随处调用它们
func TestLogBeforeSetup(t *testing.T) {
	require.NotNil(t, InfoLogger)
	require.NotNil(t, WarningLogger)
	require.NotNil(t, ErrorLogger)

	assert.NotPanics(t, func() {
		Info("启动前的信息日志: %s", "ok")
		Warning("启动前的警告日志: %s", "ok")
		Error("启动前的错误日志: %s", "ok")
	})
}

func TestLogLevelsWriteWithPrefix(t *testing.T) {
	var buf bytes.Buffer

	old := InfoLogger
	InfoLogger = log.New(&buf, "INFO: ", log.Ldate|log.Ltime)
	defer func() { InfoLogger = old }()

	Info("通知已投递: %s", "ALT-1")

	assert.Contains(t, buf.String(), "INFO: ")
	assert.Contains(t, buf.String(), "通知已投递: ALT-1")
}
