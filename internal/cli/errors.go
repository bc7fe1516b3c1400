package cli

import (
	"errors"
	"fmt"
	"strings"

	"mediarelay/internal/api"
	"mediarelay/internal/config"
)

// FormatError renders err for the terminal, with guidance for the error
// types a user can act on.
func FormatError(err error) string {
	if err == nil {
		return ""
	}

	var configErrs *config.ConfigurationErrorCollection
	if errors.As(err, &configErrs) {
		return configErrs.GetDetailedReport()
	}

	var unsupported *api.UnsupportedError
	if errors.As(err, &unsupported) {
		return fmt.Sprintf(`%v

None of the configured protocols declares %s.%s.
Run 'mediarelay features --all' to see what the device supports.`, err, unsupported.Capability, unsupported.Operation)
	}

	var connErr *api.ConnectionError
	if errors.As(err, &connErr) {
		return fmt.Sprintf(`%v

Check the %s service of the device in the configuration.`, err, connErr.Protocol)
	}

	var unknown *UnknownCommandError
	if errors.As(err, &unknown) {
		if suggestion := suggestCommand(unknown.Name); suggestion != "" {
			return fmt.Sprintf("%v\n\nDid you mean '%s'?", err, suggestion)
		}
	}

	return err.Error()
}

// suggestCommand returns a known command sharing a prefix or substring
// with name.
func suggestCommand(name string) string {
	lower := strings.ToLower(name)
	for _, spec := range Commands() {
		if strings.HasPrefix(spec.Name, lower) || strings.Contains(spec.Name, lower) {
			return spec.Name
		}
	}
	return ""
}
