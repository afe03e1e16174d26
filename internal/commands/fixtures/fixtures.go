// Package fixtures provides recording doubles for command registration
// wiring, shared across command package tests.
package fixtures

import (
	command "github.com/goliatone/go-command"
)

// RecordingRegistry captures command handlers registered during wiring.
type RecordingRegistry struct {
	Handlers []any
}

// NewRecordingRegistry constructs an empty registry recorder.
func NewRecordingRegistry() *RecordingRegistry {
	return &RecordingRegistry{
		Handlers: make([]any, 0),
	}
}

// RegisterCommand records the handler and reports success.
func (r *RecordingRegistry) RegisterCommand(handler any) error {
	r.Handlers = append(r.Handlers, handler)
	return nil
}

// CronRegistration captures a single cron wiring invocation.
type CronRegistration struct {
	Config  command.HandlerConfig
	Handler func() error
}

// CronRecorder records calls to a cron registrar function.
type CronRecorder struct {
	Registrations []CronRegistration
	err           error
}

// NewCronRecorder constructs a cron recorder with an optional failure error.
func NewCronRecorder() *CronRecorder {
	return &CronRecorder{
		Registrations: make([]CronRegistration, 0),
	}
}

// Fail configures the recorder to return the supplied error on registration.
func (c *CronRecorder) Fail(err error) {
	c.err = err
}

// Registrar returns a registrar function that records invocations. The
// returned value converts to any named registrar type with the same shape.
func (c *CronRecorder) Registrar() func(command.HandlerConfig, any) error {
	return func(cfg command.HandlerConfig, handler any) error {
		if c.err != nil {
			return c.err
		}
		fn, _ := handler.(func() error)
		c.Registrations = append(c.Registrations, CronRegistration{
			Config:  cfg,
			Handler: fn,
		})
		return nil
	}
}
