package config

import (
	"os"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm/logger"
)

// Environment represents the current runtime environment
type Environment string

const (
	Development Environment = "development"
	Test        Environment = "test"
	CI          Environment = "ci"
	Production  Environment = "production"
)

// GetEnvironment determines the current environment
func GetEnvironment() Environment {
	// CI environment is automatically detected
	if os.Getenv("CI") == "true" {
		return CI
	}

	switch Environment(os.Getenv("ENV")) {
	case Production:
		return Production
	case Test:
		return Test
	default:
		return Development
	}
}

// GinMode maps the environment to a gin mode.
func (e Environment) GinMode() string {
	switch e {
	case Production:
		return gin.ReleaseMode
	case Test, CI:
		return gin.TestMode
	default:
		return gin.DebugMode
	}
}

// LogLevel is the GORM log level for the environment. Development logs every
// statement; production only reports errors.
func (e Environment) LogLevel() logger.LogLevel {
	switch e {
	case Development:
		return logger.Info
	case Production:
		return logger.Error
	default:
		return logger.Silent
	}
}
