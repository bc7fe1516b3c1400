package cli

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"mediarelay/internal/api"
)

func TestFormatError(t *testing.T) {
	assert.Empty(t, FormatError(nil))

	unsupported := fmt.Errorf("launch_app: %w", api.NewUnsupportedError(api.CapabilityApps, api.OpLaunchApp))
	assert.Contains(t, FormatError(unsupported), "None of the configured protocols declares Apps.launch_app")

	conn := &api.ConnectionError{Protocol: api.ProtocolAirPlay, Err: errors.New("refused")}
	assert.Contains(t, FormatError(conn), "Check the AirPlay service")

	assert.Contains(t, FormatError(&UnknownCommandError{Name: "volume"}), "Did you mean 'volume_")

	assert.Equal(t, "boom", FormatError(errors.New("boom")))
}
