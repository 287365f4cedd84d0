package util

import (
	"os"
	"strings"
)

func GetEnvironmentVariables() map[string]string {
	environmentVariables := map[string]string{}

	for _, variable := range os.Environ() {
		pair := strings.SplitN(variable, "=", 2)
		if len(pair) != 2 {
			continue
		}

		environmentVariables[pair[0]] = pair[1]
	}

	return environmentVariables
}

// EnvironmentOverride returns the value of the variable when it is set and non-empty, otherwise current
func EnvironmentOverride(env map[string]string, name string, current string) string {
	if value := env[name]; value != "" {
		return value
	}

	return current
}
