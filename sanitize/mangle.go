package sanitize

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var lineBreaks = strings.NewReplacer("\n", "", "\r", "")

// PathField strips \r \n from paths assembled from flags or environment
// to avoid log injection (CWE-117)
func PathField(key string, path string) zapcore.Field {
	return zap.String(key, NoLineBreaks(path))
}

// NoLineBreaks removes linebreaks and carrage returns from string
func NoLineBreaks(value string) string {
	return lineBreaks.Replace(value)
}
