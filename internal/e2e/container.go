package e2e

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// ContainerConfig describes how to start the user service image.
type ContainerConfig struct {
	Image          string
	Port           string
	HealthPath     string
	Env            map[string]string
	StartupTimeout time.Duration
}

// Container is a running user service started for the scenarios.
type Container struct {
	BaseURL   string
	container testcontainers.Container
}

// StartUserService runs cfg.Image and waits until HealthPath answers with a
// status below 500.
func StartUserService(ctx context.Context, cfg ContainerConfig) (*Container, error) {
	if cfg.Image == "" {
		return nil, errors.New("container image is required")
	}
	if cfg.Port == "" {
		cfg.Port = "8080/tcp"
	}
	if cfg.HealthPath == "" {
		cfg.HealthPath = "/"
	}
	if cfg.StartupTimeout <= 0 {
		cfg.StartupTimeout = 2 * time.Minute
	}

	port, err := nat.NewPort(nat.SplitProtoPort(cfg.Port))
	if err != nil {
		return nil, fmt.Errorf("parse container port %q: %w", cfg.Port, err)
	}

	c, err := testcontainers.Run(ctx, cfg.Image,
		testcontainers.WithExposedPorts(string(port)),
		testcontainers.WithEnv(cfg.Env),
		testcontainers.WithWaitStrategy(
			wait.ForHTTP(cfg.HealthPath).
				WithPort(port).
				WithStatusCodeMatcher(func(status int) bool {
					return status < http.StatusInternalServerError
				}).
				WithStartupTimeout(cfg.StartupTimeout),
		),
	)
	if err != nil {
		if c != nil {
			_ = testcontainers.TerminateContainer(c)
		}
		return nil, fmt.Errorf("start user service container: %w", err)
	}

	host, err := c.Host(ctx)
	if err != nil {
		_ = testcontainers.TerminateContainer(c)
		return nil, fmt.Errorf("get container host: %w", err)
	}

	mapped, err := c.MappedPort(ctx, port)
	if err != nil {
		_ = testcontainers.TerminateContainer(c)
		return nil, fmt.Errorf("get container port: %w", err)
	}

	baseURL := fmt.Sprintf("http://%s:%s", host, mapped.Port())
	slog.InfoContext(ctx, "user service container started", "image", cfg.Image, "base_url", baseURL)

	return &Container{BaseURL: baseURL, container: c}, nil
}

// Terminate stops and removes the container.
func (c *Container) Terminate() error {
	if c == nil || c.container == nil {
		return nil
	}

	return testcontainers.TerminateContainer(c.container)
}
