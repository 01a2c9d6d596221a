package middleware

import (
	"bytes"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// RequestLoggerMiddleware dumps request bodies and headers at trace level.
// Debug tooling only; it buffers the whole body.
func RequestLoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.ContentType() == "multipart/form-data" {
			logrus.Infof("Skipping body for multipart/form-data")
		} else {
			var buf bytes.Buffer
			tee := io.TeeReader(c.Request.Body, &buf)
			body, _ := io.ReadAll(tee)
			c.Request.Body = io.NopCloser(&buf)
			logrus.Tracef("Body: %s", string(body))
		}

		logrus.Tracef("Header: %v", c.Request.Header)
		c.Next()
	}
}
