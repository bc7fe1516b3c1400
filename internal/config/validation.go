package config

import (
	"fmt"
	"net/url"
	"strings"

	"mediarelay/internal/api"
	"mediarelay/pkg/logging"
)

// ValidationError represents a validation error with context
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface
func (ve ValidationError) Error() string {
	if ve.Field == "" {
		return ve.Message
	}
	return fmt.Sprintf("field '%s': %s", ve.Field, ve.Message)
}

// Category returns the top-level section the field belongs to.
func (ve ValidationError) Category() string {
	section, _, _ := strings.Cut(ve.Field, ".")
	if i := strings.IndexByte(section, '['); i >= 0 {
		section = section[:i]
	}
	if section == "" {
		return "config"
	}
	return section
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for multiple validation errors
func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "no validation errors"
	}
	if len(ve) == 1 {
		return ve[0].Error()
	}

	var messages []string
	for _, err := range ve {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(messages, "; "))
}

// HasErrors returns true if there are any validation errors
func (ve ValidationErrors) HasErrors() bool {
	return len(ve) > 0
}

// Add adds a new validation error
func (ve *ValidationErrors) Add(field, message string, value ...interface{}) {
	var val interface{}
	if len(value) > 0 {
		val = value[0]
	}
	*ve = append(*ve, ValidationError{
		Field:   field,
		Value:   val,
		Message: message,
	})
}

// ValidateRequired checks if a required string field is not empty
func ValidateRequired(field, value, entityType string) error {
	if strings.TrimSpace(value) == "" {
		return ValidationError{
			Field:   field,
			Value:   value,
			Message: fmt.Sprintf("is required for %s", entityType),
		}
	}
	return nil
}

// ValidateOneOf checks if a value is in a list of allowed values
func ValidateOneOf(field, value string, allowed []string) error {
	for _, allowedValue := range allowed {
		if value == allowedValue {
			return nil
		}
	}
	return ValidationError{
		Field:   field,
		Value:   value,
		Message: fmt.Sprintf("must be one of: %s", strings.Join(allowed, ", ")),
	}
}

// Validate checks a loaded configuration and returns every problem found.
func Validate(cfg MediaRelayConfig) ValidationErrors {
	var errs ValidationErrors
	add := func(err error) {
		if ve, ok := err.(ValidationError); ok {
			errs = append(errs, ve)
		}
	}

	if len(cfg.Priorities) > 0 {
		if _, err := api.ParsePriorityList(cfg.Priorities); err != nil {
			errs.Add("priorities", err.Error(), cfg.Priorities)
		}
	}

	add(ValidateOneOf("relay.powerDedup", cfg.Relay.PowerDedup, []string{PowerDedupNone, PowerDedupConsecutive}))
	if _, err := logging.ParseLevel(cfg.Logging.Level); err != nil {
		errs.Add("logging.level", err.Error(), cfg.Logging.Level)
	}
	if _, err := logging.ParseFormat(cfg.Logging.Format); err != nil {
		errs.Add("logging.format", err.Error(), cfg.Logging.Format)
	}

	if cfg.Bridge.Broker != "" {
		if u, err := url.Parse(cfg.Bridge.Broker); err != nil || u.Scheme == "" || u.Host == "" {
			errs.Add("bridge.broker", "must be a URL such as tcp://host:1883", cfg.Bridge.Broker)
		}
	}
	if cfg.Bridge.QoS > 2 {
		errs.Add("bridge.qos", "must be 0, 1 or 2", cfg.Bridge.QoS)
	}
	if cfg.ConnectTimeout < 0 {
		errs.Add("connectTimeout", "must not be negative", cfg.ConnectTimeout)
	}
	if cfg.CloseTimeout < 0 {
		errs.Add("closeTimeout", "must not be negative", cfg.CloseTimeout)
	}

	validateDevice(cfg.Device, &errs, add)
	return errs
}

func validateDevice(device DeviceConfig, errs *ValidationErrors, add func(error)) {
	if device.Name == "" && len(device.Services) == 0 {
		// No device configured; commands that need one report it.
		return
	}

	add(ValidateRequired("device.name", device.Name, "device"))
	if len(device.Services) == 0 {
		errs.Add("device.services", "must have at least one service")
	}

	seen := make(map[api.Protocol]bool)
	for i, svc := range device.Services {
		field := fmt.Sprintf("device.services[%d]", i)
		p, err := api.ParseProtocol(svc.Protocol)
		if err != nil {
			errs.Add(field+".protocol", err.Error(), svc.Protocol)
			continue
		}
		if seen[p] {
			errs.Add(field+".protocol", fmt.Sprintf("%s is configured more than once", p), svc.Protocol)
		}
		seen[p] = true

		if svc.Port < 0 || svc.Port > 65535 {
			errs.Add(field+".port", "must be between 0 and 65535", svc.Port)
		}
		validateSimulate(field+".simulate", svc.Simulate, errs)
	}
}

func validateSimulate(field string, sim SimulateConfig, errs *ValidationErrors) {
	for _, op := range sim.Operations {
		if _, err := ResolveOperations(op); err != nil {
			errs.Add(field+".operations", err.Error(), op)
		}
	}
	for _, name := range sim.Features {
		if _, err := api.ParseFeatureName(name); err != nil {
			errs.Add(field+".features", err.Error(), name)
		}
	}
	for name, state := range sim.FeatureStates {
		if _, err := api.ParseFeatureName(name); err != nil {
			errs.Add(field+".featureStates", err.Error(), name)
		}
		if _, err := api.ParseFeatureState(state); err != nil {
			errs.Add(field+".featureStates", err.Error(), state)
		}
	}
	if _, err := api.ParsePowerState(sim.PowerState); err != nil {
		errs.Add(field+".powerState", err.Error(), sim.PowerState)
	}
	if sim.Playing.DeviceState != "" {
		if _, err := api.ParseDeviceState(sim.Playing.DeviceState); err != nil {
			errs.Add(field+".playing.deviceState", err.Error(), sim.Playing.DeviceState)
		}
	}
	if _, err := api.ParseMediaType(sim.Playing.MediaType); err != nil {
		errs.Add(field+".playing.mediaType", err.Error(), sim.Playing.MediaType)
	}
	for name := range sim.Failures.Operations {
		ops, err := ResolveOperations(name)
		if err != nil {
			errs.Add(field+".failures.operations", err.Error(), name)
			continue
		}
		if len(ops) == 1 && api.PropertyOperations.Has(ops[0].Operation) {
			errs.Add(field+".failures.operations",
				fmt.Sprintf("%s cannot fail, it reports a default value instead", ops[0].Operation), name)
		}
	}
	if sim.PowerDelay < 0 {
		errs.Add(field+".powerDelay", "must not be negative", sim.PowerDelay)
	}
}
