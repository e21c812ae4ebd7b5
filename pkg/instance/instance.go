package instance

import "os"

// GetID returns the process instance identifier used in startup logs.
func GetID() string {
	if id := os.Getenv("BARAKAT_INSTANCE_ID"); id != "" {
		return id
	}
	if id := os.Getenv("DYNO"); id != "" {
		return id
	}
	return "local"
}
