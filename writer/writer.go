// Package writer is the default plugins.Emitter. It stores package ASTs as JSON documents for an
// external C++ printer and writes the aggregate SDK header and the unit test source directly.
package writer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"text/template"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"

	"github.com/cgsdk/cppsdkgen/codegen"
	"github.com/cgsdk/cppsdkgen/cppast"
	"github.com/cgsdk/cppsdkgen/model"
	"github.com/cgsdk/cppsdkgen/plugins/assertgen"
	"github.com/cgsdk/cppsdkgen/plugins/cppgen"
)

const (
	// PackagesDir is the directory, relative to the output root, holding one AST per package.
	PackagesDir   = "SDK"
	SDKHeaderName = "SDK.h"
)

const sdkHeaderTemplate = `#pragma once

// Name: {{.GameName}}, Version: {{.GameVersion}}

#include <set>
#include <string>
#include <vector>
#include <locale>
#include <unordered_set>
#include <unordered_map>
#include <iostream>
#include <sstream>
#include <cstdint>
#include <Windows.h>
{{- if .HasMissing}}
#include "SDK/{{.MissingName}}.h"
{{- end}}
{{range .Sorted}}
{{if .Partner}}// {{.Package.Name}} <-> {{.Partner.Name}}
{{end}}#include "SDK/{{.Package.Name}}_Package.h"
{{- end}}
{{- if .Cycles}}

// # Dependency cycle headers
// # (Sorted: {{.SortedCount}}, Cycle: {{.CycleCount}})
{{range .Cycles}}
// {{.Package.Name}} <-> {{.Partner.Name}}
#include "SDK/{{.Package.Name}}_Package.h"
{{- end}}
{{- end}}
`

var sdkHeaderTmpl = template.Must(template.New("sdkHeader").Parse(sdkHeaderTemplate))

// Writer writes generated output below a root directory.
type Writer struct {
	dir    string
	logger *slog.Logger
}

type Option func(*Writer)

func WithLogger(logger *slog.Logger) Option {
	return func(w *Writer) {
		w.logger = logger
	}
}

func New(dir string, opts ...Option) *Writer {
	w := &Writer{
		dir:    dir,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// EmitPackage は SDK/<Name>_Package.json と、あればパラメータ構造体の SDK/<Name>_Params.json を書き出す。
func (w *Writer) EmitPackage(_ context.Context, out *cppgen.PackageOutput) error {
	if err := w.writeJSON(filepath.Join(PackagesDir, out.Package.Name+"_Package.json"), out.Package); err != nil {
		return err
	}
	if out.Params != nil {
		if err := w.writeJSON(filepath.Join(PackagesDir, out.Params.Name+".json"), out.Params); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) EmitMissing(_ context.Context, missing *cppast.Package) error {
	return w.writeJSON(filepath.Join(PackagesDir, missing.Name+".json"), missing)
}

// EmitPackageOrder は order の順にパッケージヘッダをインクルードする SDK.h を書き出す。
// 循環のため順序付けできなかったユーザーパッケージは衝突相手の注記とともに最後に並ぶ。
// 組み込みパッケージは循環していても先頭に並び、衝突相手の注記だけが付く。
func (w *Writer) EmitPackageOrder(_ context.Context, sdk *model.SDK, order *codegen.PackageOrder, hasMissing bool) error {
	data := struct {
		GameName    string
		GameVersion string
		HasMissing  bool
		MissingName string
		Sorted      []codegen.IncludeEntry
		Cycles      []codegen.IncludeEntry
		SortedCount int
		CycleCount  int
	}{
		GameName:    sdk.GameName,
		GameVersion: sdk.GameVersion,
		HasMissing:  hasMissing,
		MissingName: cppgen.MissingPackageName,
		Cycles:      order.Cycles(),
		SortedCount: order.SortedCount,
		CycleCount:  order.CycleCount,
	}
	for _, e := range order.Entries {
		if e.Partner == nil || e.Package.IsPredefined {
			data.Sorted = append(data.Sorted, e)
		}
	}

	return w.create(SDKHeaderName, func(f io.Writer) error {
		if err := sdkHeaderTmpl.Execute(f, data); err != nil {
			return fmt.Errorf("execute sdk header template: %w", err)
		}
		return nil
	})
}

func (w *Writer) EmitAssertions(_ context.Context, assertions []assertgen.TypeAssertion) error {
	return w.create(assertgen.UnitTestFileName, func(f io.Writer) error {
		return assertgen.Render(f, assertions)
	})
}

func (w *Writer) writeJSON(name string, v any) error {
	return w.create(name, func(f io.Writer) error {
		if err := json.MarshalWrite(f, v, jsontext.WithIndent("  ")); err != nil {
			return fmt.Errorf("encode %s: %w", name, err)
		}
		return nil
	})
}

// create は name のファイルを作成して write で書き込む。ファイルはどの経路でも閉じられる。
func (w *Writer) create(name string, write func(io.Writer) error) (err error) {
	path := filepath.Join(w.dir, name)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", name, cerr)
		}
	}()

	if err := write(f); err != nil {
		return err
	}

	w.logger.Debug("file written", "path", path)
	return nil
}
