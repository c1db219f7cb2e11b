package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/vk/rspecgen/internal/ctxlog"
	"github.com/vk/rspecgen/internal/params"
	"github.com/vk/rspecgen/internal/rspec"
	"github.com/vk/rspecgen/internal/topology"
	"github.com/vk/rspecgen/internal/tour"
)

// Generate validates the configured parameters, compiles the request and
// writes it to outW, or to the configured output file. Nothing is written
// when validation fails.
func (a *App) Generate(ctx context.Context, outW io.Writer) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Generate method started.")

	profile, err := a.Profile()
	if err != nil {
		return err
	}
	ctx, logger := ctxlog.With(ctx, "profile", profile.Name)

	raw, err := a.rawParams(ctx)
	if err != nil {
		return err
	}
	cfg, err := profile.Schema.Validate(raw)
	if err != nil {
		return err
	}
	logger.Debug("Parameters validated.", "values", cfg.Values())

	node, overrides := topology.NewCompiler(profile).Compile(ctx, cfg)
	t := tour.NewBuilder(profile).Build(cfg)
	logger.Debug("Tour built.", "steps", t.Steps)

	emitter := &rspec.Emitter{
		Format:      rspec.Format(a.config.Format),
		Profile:     profile.Name,
		Fingerprint: cfg.Fingerprint(),
	}

	if a.config.writesFile() {
		if err := emitToFile(a.config.OutputPath, emitter, node, overrides, t); err != nil {
			return err
		}
	} else if err := emitter.Emit(outW, node, overrides, t); err != nil {
		return err
	}

	logger.Info("Request generated.",
		"format", emitter.Format,
		"fingerprint", emitter.Fingerprint,
		"hardware_type", node.HardwareType,
		"image", node.DiskImage,
		"output", a.outputName(),
	)
	return nil
}

func (a *App) rawParams(ctx context.Context) (params.Raw, error) {
	raw := params.Raw{}
	if a.config.ParamsFile != "" {
		fromFile, err := params.LoadFile(ctx, a.config.ParamsFile)
		if err != nil {
			return nil, err
		}
		raw = fromFile
	}
	fromFlags, err := params.ParseAssignments(a.config.Set)
	if err != nil {
		return nil, err
	}
	return raw.Merge(fromFlags), nil
}

func (a *App) outputName() string {
	if a.config.writesFile() {
		return a.config.OutputPath
	}
	return "stdout"
}

// emitToFile encodes the document first and then replaces path through a
// temporary file in the same directory, so a failure leaves any existing
// file untouched.
func emitToFile(path string, e *rspec.Emitter, node *topology.Node, overrides []topology.Override, t *tour.Tour) error {
	data, err := e.Encode(node, overrides, t)
	if err != nil {
		return err
	}

	fail := func(err error) error {
		return &rspec.EmitError{Format: e.Format, Err: err}
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".rspecgen-*")
	if err != nil {
		return fail(fmt.Errorf("failed to create output file: %w", err))
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fail(err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return fail(err)
	}
	if err := tmp.Close(); err != nil {
		return fail(err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fail(fmt.Errorf("failed to write output file: %w", err))
	}
	return nil
}
