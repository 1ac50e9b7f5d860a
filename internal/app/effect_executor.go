// Package app contains the application layer - service implementations and effect execution.
package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/example/easel/internal/core/effects"
	"github.com/example/easel/internal/ports/secondary"
)

// EffectExecutor interprets and executes effects.
// This is the "Imperative Shell" - planners stay pure and I/O happens here.
type EffectExecutor interface {
	Execute(ctx context.Context, effs []effects.Effect) error
}

// DefaultEffectExecutor implements EffectExecutor against the key/value
// store and the file system. Either may be nil if no plan needs it.
type DefaultEffectExecutor struct {
	kv  secondary.KeyValueStore
	fs  secondary.FileSystem
	log *zap.Logger
}

// NewEffectExecutor creates a new DefaultEffectExecutor.
func NewEffectExecutor(kv secondary.KeyValueStore, fs secondary.FileSystem, log *zap.Logger) *DefaultEffectExecutor {
	return &DefaultEffectExecutor{kv: kv, fs: fs, log: log}
}

// Execute processes a slice of effects, executing each in sequence.
// It stops at the first failure; earlier effects are not undone.
func (e *DefaultEffectExecutor) Execute(ctx context.Context, effs []effects.Effect) error {
	for _, eff := range effs {
		if err := e.executeOne(ctx, eff); err != nil {
			return fmt.Errorf("failed to execute %s effect: %w", eff.EffectType(), err)
		}
	}
	return nil
}

func (e *DefaultEffectExecutor) executeOne(ctx context.Context, eff effects.Effect) error {
	switch typed := eff.(type) {
	case effects.KVEffect:
		return e.executeKV(ctx, typed)
	case effects.FileEffect:
		return e.executeFile(ctx, typed)
	case effects.CompositeEffect:
		return e.Execute(ctx, typed.Effects)
	case effects.NoEffect:
		return nil
	case effects.LogEffect:
		e.executeLog(typed)
		return nil
	default:
		return fmt.Errorf("unknown effect type: %T", eff)
	}
}

func (e *DefaultEffectExecutor) executeKV(ctx context.Context, eff effects.KVEffect) error {
	if e.kv == nil {
		return fmt.Errorf("no key/value store configured")
	}
	switch eff.Operation {
	case effects.KVSet:
		return e.kv.Set(ctx, eff.Key, eff.Value)
	case effects.KVDelete:
		return e.kv.Delete(ctx, eff.Key)
	default:
		return fmt.Errorf("unknown kv operation: %s", eff.Operation)
	}
}

func (e *DefaultEffectExecutor) executeFile(ctx context.Context, eff effects.FileEffect) error {
	if e.fs == nil {
		return fmt.Errorf("no file system configured")
	}
	switch eff.Operation {
	case effects.FileMkdir:
		return e.fs.MkdirAll(ctx, eff.Path, eff.Mode)
	case effects.FileCopy:
		return e.fs.CopyFile(ctx, eff.Source, eff.Path, eff.Mode)
	default:
		return fmt.Errorf("unknown file operation: %s", eff.Operation)
	}
}

func (e *DefaultEffectExecutor) executeLog(eff effects.LogEffect) {
	fields := make([]zap.Field, 0, len(eff.Fields))
	for k, v := range eff.Fields {
		fields = append(fields, zap.Any(k, v))
	}
	switch eff.Level {
	case "debug":
		e.log.Debug(eff.Message, fields...)
	case "warn":
		e.log.Warn(eff.Message, fields...)
	case "error":
		e.log.Error(eff.Message, fields...)
	default:
		e.log.Info(eff.Message, fields...)
	}
}
