// Command spv2msl converts a SPIR-V shader to Metal Shading Language.
//
// Usage:
//
//	spv2msl [options] <input.spv|input.wgsl>
//
// WGSL input is compiled to SPIR-V with naga before conversion.
//
// Examples:
//
//	spv2msl shader.spv                      # Print MSL to stdout
//	spv2msl -o shader.metal shader.spv      # Write MSL to a file
//	spv2msl -msl 2.3 -entry main shader.spv # Select version and entry point
//	spv2msl -report -v shader.spv           # Show the conversion report
//	spv2msl shader.wgsl                     # Convert WGSL through SPIR-V
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/gogpu/naga"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/gogpu/spvmsl"
	"github.com/gogpu/spvmsl/msl"
	"github.com/gogpu/spvmsl/spirv"
	"github.com/gogpu/spvmsl/translate"
)

var (
	output     = flag.String("o", "", "output file (default: stdout)")
	mslVersion = flag.String("msl", "", "MSL version, e.g. 2.1 (default: the package default)")
	entry      = flag.String("entry", "", "entry point name (default: first)")
	stage      = flag.String("stage", "", "entry point stage: vertex, fragment or compute")
	noFlip     = flag.Bool("no-flip-y", false, "do not flip the Y coordinate of vertex positions")
	pointSize  = flag.Bool("point-size", false, "emit the point size builtin")
	report     = flag.Bool("report", false, "print the conversion report to stderr")
	dumpLog    = flag.Bool("log", false, "print the conversion log to stderr")
	verbose    = flag.Bool("v", false, "verbose logging")
)

var stages = map[string]spirv.ExecutionModel{
	"vertex":   spirv.ExecutionModelVertex,
	"fragment": spirv.ExecutionModelFragment,
	"compute":  spirv.ExecutionModelGLCompute,
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	keyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	usedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	unusedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))
)

// color is set when stderr is a terminal.
var color bool

func paint(style lipgloss.Style, s string) string {
	if !color {
		return s
	}
	return style.Render(s)
}

func main() {
	flag.Usage = usage
	flag.Parse()

	color = term.IsTerminal(int(os.Stderr.Fd()))

	args := flag.Args()
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, paint(errorStyle, "Error: no input file specified"))
		usage()
		os.Exit(1)
	}

	logger, err := newLogger(*verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(args[0], logger); err != nil {
		fmt.Fprintln(os.Stderr, paint(errorStyle, "Error: "+err.Error()))
		os.Exit(1)
	}
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return cfg.Build()
}

func run(path string, logger *zap.Logger) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	if strings.HasSuffix(path, ".wgsl") {
		data, err = naga.Compile(string(data))
		if err != nil {
			return fmt.Errorf("WGSL compilation failed: %w", err)
		}
		logger.Debug("compiled WGSL", zap.String("path", path), zap.Int("bytes", len(data)))
	}

	cfg, err := configuration()
	if err != nil {
		return err
	}

	conv := spvmsl.NewConverter(translate.New(translate.WithLogger(logger)), spvmsl.WithLogger(logger))
	if err := conv.SetSPIRVBytes(data); err != nil {
		return err
	}
	ok := conv.Convert(cfg, spvmsl.LogOptions{MSL: *dumpLog, GLSL: *dumpLog})
	if *dumpLog || !ok {
		fmt.Fprint(os.Stderr, conv.ResultLog())
	}
	if !ok {
		return fmt.Errorf("conversion of %s failed", path)
	}
	if *report {
		fmt.Fprintln(os.Stderr, renderReport(path, cfg, conv.Results()))
	}

	if *output == "" {
		_, err = os.Stdout.WriteString(conv.MSL())
		return err
	}
	if err := os.WriteFile(*output, []byte(conv.MSL()), 0o644); err != nil {
		return err
	}
	logger.Info("wrote MSL", zap.String("path", *output), zap.Int("bytes", len(conv.MSL())))
	return nil
}

func configuration() (*spvmsl.ConversionConfiguration, error) {
	cfg := spvmsl.NewConversionConfiguration()
	if *mslVersion != "" {
		v, err := msl.ParseVersion(*mslVersion)
		if err != nil {
			return nil, err
		}
		cfg.Options.MSL.Version = v
	}
	cfg.Options.EntryPointName = *entry
	if *stage != "" {
		s, ok := stages[strings.ToLower(*stage)]
		if !ok {
			return nil, fmt.Errorf("unknown stage %q", *stage)
		}
		cfg.Options.EntryPointStage = s
	}
	cfg.Options.ShouldFlipVertexY = !*noFlip
	cfg.Options.MSL.EnablePointSizeBuiltin = *pointSize
	return cfg, nil
}

func renderReport(path string, cfg *spvmsl.ConversionConfiguration, res spvmsl.ConversionResults) string {
	var b strings.Builder
	b.WriteString(paint(titleStyle, path))
	b.WriteByte('\n')

	row := func(key, value string) {
		b.WriteString(paint(keyStyle, fmt.Sprintf("%-26s", key)))
		b.WriteString(value)
		b.WriteByte('\n')
	}
	flagValue := func(v bool) string {
		if v {
			return paint(usedStyle, "yes")
		}
		return paint(unusedStyle, "no")
	}

	row("MSL version", msl.FormatVersion(cfg.Options.MSL.Version, false))
	row("Function", res.EntryPoint.MTLFunctionName)
	wg := res.EntryPoint.WorkgroupSize
	if wg.Width.Size > 1 || wg.Height.Size > 1 || wg.Depth.Size > 1 || wg.Width.IsSpecialized {
		row("Workgroup size", fmt.Sprintf("%s x %s x %s", dimension(wg.Width), dimension(wg.Height), dimension(wg.Depth)))
	}
	row("Rasterization disabled", flagValue(res.IsRasterizationDisabled))
	row("Position invariant", flagValue(res.IsPositionInvariant))
	row("Buffer size buffer", flagValue(res.NeedsBufferSizeBuffer))
	row("Swizzle buffer", flagValue(res.NeedsSwizzleBuffer))
	row("Dispatch base buffer", flagValue(res.NeedsDispatchBaseBuffer))
	row("Output buffer", flagValue(res.NeedsOutputBuffer))
	row("View range buffer", flagValue(res.NeedsViewRangeBuffer))

	if len(cfg.ResourceBindings) > 0 {
		b.WriteByte('\n')
		for _, rb := range cfg.ResourceBindings {
			style := unusedStyle
			if rb.OutIsUsedByShader {
				style = usedStyle
			}
			row(fmt.Sprintf("set %d binding %d", rb.DescriptorSet, rb.Binding), paint(style, rb.BaseType.String()))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func dimension(d spvmsl.WorkgroupDimension) string {
	if d.IsSpecialized {
		return fmt.Sprintf("%d (spec %d)", d.Size, d.SpecializationID)
	}
	return fmt.Sprint(d.Size)
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: spv2msl [options] <input.spv|input.wgsl>\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nExamples:\n")
	fmt.Fprintf(os.Stderr, "  spv2msl shader.spv                  Convert to stdout\n")
	fmt.Fprintf(os.Stderr, "  spv2msl -o shader.metal shader.spv  Convert to file\n")
	fmt.Fprintf(os.Stderr, "  spv2msl -msl 2.3 shader.spv         Target MSL 2.3\n")
	fmt.Fprintf(os.Stderr, "  spv2msl shader.wgsl                 Convert WGSL through SPIR-V\n")
}
