package api

import (
	"fintrack/config"
)

// SafeErrorMessage hides internal error detail in release mode
func SafeErrorMessage(err error, fallback string) string {
	return config.SafeErrorMessage(err, fallback)
}
