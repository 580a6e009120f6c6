// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package dough

import (
	"log/slog"
	"sync"

	dougherrors "github.com/doughlab/dough/pkg/errors"
	"github.com/doughlab/dough/pkg/header"
)

// Engine calculates dough formulas and fermentation schedules. It holds only
// read-only tables and is safe for concurrent use.
type Engine struct {
	tables  *Tables
	catalog Catalog
}

// Option is a functional option for configuring Engine instances.
type Option func(*Engine)

// WithTables sets the constant tables. Defaults to the embedded tables.
func WithTables(t *Tables) Option {
	return func(e *Engine) {
		e.tables = t
	}
}

// WithCatalog sets the style catalog. Defaults to the embedded catalog.
func WithCatalog(c Catalog) Option {
	return func(e *Engine) {
		e.catalog = c
	}
}

// NewEngine creates an Engine with the given options.
func NewEngine(opts ...Option) (*Engine, error) {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}

	if e.tables == nil {
		t, err := DefaultTables()
		if err != nil {
			return nil, err
		}
		e.tables = t
	} else if err := e.tables.Validate(); err != nil {
		return nil, dougherrors.Wrap(dougherrors.ErrCodeInvalidRequest, "invalid tables", err)
	}

	if e.catalog == nil {
		c, err := DefaultCatalog()
		if err != nil {
			return nil, err
		}
		e.catalog = c
	} else if err := e.catalog.Validate(); err != nil {
		return nil, dougherrors.Wrap(dougherrors.ErrCodeInvalidRequest, "invalid style catalog", err)
	}
	if _, ok := e.catalog[DefaultStyle]; !ok {
		return nil, dougherrors.New(dougherrors.ErrCodeInvalidRequest, "style catalog must include "+string(DefaultStyle))
	}

	return e, nil
}

// Tables returns the engine's constant tables.
func (e *Engine) Tables() *Tables {
	return e.tables
}

// Catalog returns the engine's style catalog.
func (e *Engine) Catalog() Catalog {
	return e.catalog
}

// Calculate resolves cfg into ingredient weights and a timeline. Validation
// failures are reported in Result.Errors, not as an error; the error return
// is reserved for nil input and broken invariants. cfg is not modified.
func (e *Engine) Calculate(cfg *Configuration) (*Result, error) {
	if cfg == nil {
		return nil, dougherrors.New(dougherrors.ErrCodeInvalidRequest, "configuration cannot be nil")
	}

	f, warnings := e.merge(cfg)
	lv, more, errs := e.validate(f)
	warnings = append(warnings, more...)
	sortWarnings(warnings)

	if len(errs) > 0 {
		slog.Debug("configuration rejected", "style", f.RecipeStyle, "fields", errs.Fields())
		return &Result{
			Header:        resultHeader(f),
			Configuration: f,
			Unit:          f.Unit,
			Warnings:      warnings,
			Errors:        errs,
		}, nil
	}

	m, err := resolve(f, lv)
	if err != nil {
		return nil, dougherrors.Wrap(dougherrors.ErrCodeInternal, "failed to resolve ingredient masses", err)
	}

	s, err := e.plan(f, lv)
	if err != nil {
		return nil, dougherrors.Wrap(dougherrors.ErrCodeInternal, "failed to plan fermentation", err)
	}

	res, err := e.assemble(f, m, lv, s, warnings)
	if err != nil {
		return nil, err
	}

	slog.Debug("dough calculated",
		"style", f.RecipeStyle,
		"unit", f.Unit,
		"total", res.TotalWeight,
		"leavening", res.Leavening.Percent,
		"warnings", len(warnings),
	)
	return res, nil
}

func resultHeader(f *Formula) header.Header {
	return header.New(
		header.WithKind(header.KindDoughResult),
		header.WithMetadata("recipeStyle", string(f.RecipeStyle)),
	)
}

var (
	defaultEngine     *Engine
	defaultEngineErr  error
	defaultEngineOnce sync.Once
)

// Calculate runs cfg through an engine over the embedded tables and styles.
func Calculate(cfg *Configuration) (*Result, error) {
	defaultEngineOnce.Do(func() {
		defaultEngine, defaultEngineErr = NewEngine()
	})
	if defaultEngineErr != nil {
		return nil, defaultEngineErr
	}
	return defaultEngine.Calculate(cfg)
}
