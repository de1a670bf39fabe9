package plugins

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cgsdk/cppsdkgen/codegen"
	"github.com/cgsdk/cppsdkgen/config"
	"github.com/cgsdk/cppsdkgen/cppast"
	"github.com/cgsdk/cppsdkgen/model"
	"github.com/cgsdk/cppsdkgen/plugins/assertgen"
	"github.com/cgsdk/cppsdkgen/plugins/cppgen"
)

// ErrInvalidTarget は生成対象のダンプまたは出力先が与えられていないことを表す。
var ErrInvalidTarget = errors.New("invalid generation target")

// Emitter は生成した AST を受け取って出力する。
type Emitter interface {
	EmitPackage(ctx context.Context, out *cppgen.PackageOutput) error
	EmitMissing(ctx context.Context, missing *cppast.Package) error
	// EmitPackageOrder は全パッケージのインクルード順を受け取る。hasMissing は MISSING パッケージが出力済みかどうか。
	EmitPackageOrder(ctx context.Context, sdk *model.SDK, order *codegen.PackageOrder, hasMissing bool) error
	EmitAssertions(ctx context.Context, assertions []assertgen.TypeAssertion) error
}

// ProgressFunc is called after each package is emitted. Returning an error aborts generation.
type ProgressFunc func(ctx context.Context, done, remaining int) error

type options struct {
	logger   *slog.Logger
	progress ProgressFunc
}

type Option func(*options)

func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func WithProgress(progress ProgressFunc) Option {
	return func(o *options) {
		o.progress = progress
	}
}

func GenerateCode(ctx context.Context, cfg *config.Config, sdk *model.SDK, emitter Emitter, opts ...Option) error {
	if sdk == nil || emitter == nil || cfg == nil {
		return ErrInvalidTarget
	}

	o := &options{
		logger:   slog.New(slog.DiscardHandler),
		progress: func(context.Context, int, int) error { return nil },
	}
	for _, opt := range opts {
		opt(o)
	}
	logger := o.logger

	////////////////////////////////////////////////////////////////////////////////////////////////////////////////////
	// 依存関係と並べ替え

	codegen.ExtractDependencies(sdk.Packages)
	sorted := codegen.SortStructsClassesInPackages(sdk.Packages)
	for _, r := range sorted {
		if len(r.Classes.Cycles) > 0 || len(r.Structs.Cycles) > 0 {
			logger.Debug("dependency cycle in package",
				"package", r.Package.Name,
				"classCycles", len(r.Classes.Cycles),
				"structCycles", len(r.Structs.Cycles))
		}
	}

	////////////////////////////////////////////////////////////////////////////////////////////////////////////////////
	// cppgen

	cppGen := cppgen.New(sdk, cfg.CppOptions())
	cppGen.AddPredefinedMethods()

	logger.Info("converting packages", "plugin", cppGen.Name(), "packages", len(sdk.Packages))

	for i, pack := range sdk.Packages {
		if err := ctx.Err(); err != nil {
			return err
		}

		out := cppGen.ConvertPackage(pack)
		if err := emitter.EmitPackage(ctx, out); err != nil {
			return fmt.Errorf("emit package %s failed: %w", pack.Name, err)
		}
		logger.Debug("package emitted", "package", pack.Name, "structs", len(out.Package.Structs))

		if err := o.progress(ctx, i+1, len(sdk.Packages)-i-1); err != nil {
			return fmt.Errorf("progress: %w", err)
		}
	}

	missing, err := cppGen.GenerateMissing()
	if err != nil {
		return fmt.Errorf("%s failed: %w", cppGen.Name(), err)
	}
	if missing != nil {
		if err := emitter.EmitMissing(ctx, missing); err != nil {
			return fmt.Errorf("emit missing structs failed: %w", err)
		}
		logger.Info("missing structs emitted", "count", len(missing.Structs))
	}

	////////////////////////////////////////////////////////////////////////////////////////////////////////////////////
	// インクルード順

	order := codegen.SortPackages(sdk.Packages)
	if err := emitter.EmitPackageOrder(ctx, sdk, order, missing != nil); err != nil {
		return fmt.Errorf("emit package order failed: %w", err)
	}
	logger.Info("package order emitted", "sorted", order.SortedCount, "cycles", order.CycleCount)

	////////////////////////////////////////////////////////////////////////////////////////////////////////////////////
	// assertgen

	if !cfg.Output.UnitTests {
		return nil
	}

	assertions, err := assertgen.Generate(sdk.Namespace, assertgen.Collect(sdk.Packages))
	if err != nil {
		return fmt.Errorf("assertgen failed: %w", err)
	}
	if err := emitter.EmitAssertions(ctx, assertions); err != nil {
		return fmt.Errorf("emit assertions failed: %w", err)
	}
	logger.Info("assertions emitted", "types", len(assertions))

	return nil
}
