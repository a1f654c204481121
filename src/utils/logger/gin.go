package logger

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// LOG returns a request-scoped log entry
func LOG(c *gin.Context) *logrus.Entry {
	return logger.WithFields(logrus.Fields{
		"module": "registry.gateway",
		"path":   c.Request.URL.Path,
	})
}

// LOGE aborts the request with the given status and returns a log
// entry carrying the error
func LOGE(c *gin.Context, err error, status int) *logrus.Entry {
	if err != nil {
		c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
		return LOG(c).WithError(err)
	}
	c.AbortWithStatus(status)
	return LOG(c)
}
