package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/shandysiswandi/usere2e/internal/pkg/goerror"
	"github.com/shandysiswandi/usere2e/internal/pkg/instrument"
	"github.com/shandysiswandi/usere2e/internal/pkg/uid"
	"github.com/shandysiswandi/usere2e/internal/pkg/validator"
	"github.com/shandysiswandi/usere2e/internal/restfacade"
	"github.com/shandysiswandi/usere2e/internal/userservice"
)

// settings are the config values the harness cannot run without.
type settings struct {
	BaseURL       string        `json:"user.service.url" validate:"required,url"`
	Timeout       time.Duration `json:"rest.timeout_seconds" validate:"gte=0"`
	ReadyAttempts int           `json:"user.service.ready_attempts" validate:"gte=1"`
	ReadyInterval time.Duration `json:"user.service.ready_interval_millis" validate:"gte=0"`
	BearerToken   string        `json:"-"`
	MaskFields    []string      `json:"-"`
	UniqueUser    bool          `json:"-"`
	UserPrefix    string        `json:"-"`
}

func (a *App) initLibraries(context.Context) error {
	a.uuid = uid.NewUUID()

	v, err := validator.NewV10Validator()
	if err != nil {
		slog.Error("failed to init validation v10 validator", "error", err)
		return goerror.NewInternal(err, "init validator")
	}
	a.validator = v

	return nil
}

func (a *App) initConfig(context.Context) error {
	if a.config == nil {
		return goerror.NewInvalidInput(nil, "config is required")
	}

	s := settings{
		BaseURL:       a.config.GetString("user.service.url"),
		Timeout:       a.config.GetSecond("rest.timeout_seconds"),
		ReadyAttempts: a.config.GetInt("user.service.ready_attempts"),
		ReadyInterval: a.config.GetMillisecond("user.service.ready_interval_millis"),
		BearerToken:   a.config.GetString("rest.bearer_token"),
		MaskFields:    a.config.GetArray("instrument.log_mask_fields"),
		UniqueUser:    a.config.GetBool("scenario.unique_user"),
		UserPrefix:    a.config.GetString("scenario.user_prefix"),
	}

	if err := a.validator.Validate(s); err != nil {
		slog.Error("invalid harness configuration", "error", err)
		return goerror.NewInvalidInput(err, "invalid configuration")
	}

	a.settings = s

	return nil
}

func (a *App) initInstrument(ctx context.Context) error {
	ins, err := instrument.New(ctx, &instrument.Config{
		Enabled:          a.config.GetBool("instrument.enabled"),
		ServiceName:      a.config.GetString("instrument.service_name"),
		ServiceVersion:   a.config.GetString("instrument.service_version"),
		Environment:      a.config.GetString("instrument.env"),
		OTLPEndpoint:     a.config.GetString("instrument.otlp_endpoint"),
		OTLPSecure:       a.config.GetBool("instrument.otlp_secure"),
		TraceSampleRatio: a.config.GetFloat64("instrument.trace_sample_ratio"),
		MetricsInterval:  a.config.GetSecond("instrument.metric_interval_seconds"),
		LogLevel:         a.config.GetString("instrument.log_level"),
		MaskFields:       a.settings.MaskFields,
		Output:           a.logOutput,
	})
	if err != nil {
		slog.Error("failed to init instrumentation", "error", err)
		return goerror.NewInternal(err, "init instrumentation")
	}
	a.ins = ins

	return nil
}

func (a *App) initClients(context.Context) error {
	a.facade = restfacade.New(restfacade.Config{
		Timeout:     a.settings.Timeout,
		BearerToken: a.settings.BearerToken,
		MaskFields:  a.settings.MaskFields,
		UUID:        a.uuid,
		Instrument:  a.ins,
		Transport:   a.transport,
	})
	a.users = userservice.NewClient(a.settings.BaseURL, a.facade)

	slog.Info("harness ready", "base_url", a.settings.BaseURL, "timeout", a.settings.Timeout.String())

	return nil
}

func (a *App) initClosers(context.Context) error {
	a.closers = []struct {
		name string
		fn   func(context.Context) error
	}{
		{name: "Instrumentation", fn: a.ins.Shutdown},
		{name: "Config", fn: func(context.Context) error { return a.config.Close() }},
	}

	return nil
}
