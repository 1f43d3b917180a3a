package cli

import (
	"context"
	"iter"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/fieldvar/cli/cmd"
	"github.com/ardnew/fieldvar/pkg"
)

// baseConfig is the base name of the configuration file in the
// configuration directory.
const baseConfig = "config.yaml"

// CLI is the top-level command-line interface for fieldvar.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Model []string `help:"Model file(s) or '-' for stdin" name:"model" short:"m" type:"existingfile"`

	Eval   cmd.Eval   `cmd:"" help:"Evaluate a variable at a point"`
	Nodal  cmd.Nodal  `cmd:"" help:"Evaluate a variable over the mesh"`
	Names  cmd.Names  `cmd:"" help:"List the variables of the model"`
	Repl   cmd.Repl   `cmd:"" help:"Evaluate expressions interactively"`
	Fmt    cmd.Fmt    `cmd:"" help:"Re-encode the model"`
	Digest cmd.Digest `cmd:"" help:"Print the digest of the model"`
	Init   cmd.Init   `cmd:"" help:"Initialize configuration file"`
}

// Run executes the fieldvar CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	if err := mkdirAllRequired(); err != nil {
		return err
	}

	configFilePath := filepath.Join(pkg.ConfigDir(), baseConfig)

	vars := kong.Vars{
		cmd.ConfigIdentifier: configFilePath,
		cmd.CacheIdentifier:  pkg.CacheDir(),
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Logger flags take effect before kong reports any parse error.
	cli.Log.scan(args)

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group()},
		),
		kong.DefaultEnvars(envPrefix()),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				Tree:                true,
				NoExpandSubcommands: true,
			}),
		kong.Configuration(kong.JSON, strings.TrimSuffix(configFilePath, ".yaml")+".json"),
		kong.Configuration(resolve, configFilePath),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	ctx = cmd.WithContext(ctx, ktx)
	ctx = cmd.WithSourceFiles(ctx, cli.Model)

	defer cli.Log.start(ctx)()

	// [pprofConfig.start] is no-op unless built with tag pprof and enabled.
	defer cli.Pprof.start(ctx)()

	return ktx.Run(ctx, &cli)
}

// mkdirAllRequired creates the configuration and cache directories.
func mkdirAllRequired() error {
	for _, dir := range []string{pkg.ConfigDir(), pkg.CacheDir()} {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return pkg.WrapError(err)
		}
	}

	return nil
}

// envPrefix returns the prefix of environment variables read for flags,
// such as FIELDVAR_LOG_LEVEL.
func envPrefix() string {
	return strings.ToUpper(strings.NewReplacer("-", "_", ".", "_").Replace(pkg.Prefix()))
}

// join returns the elements of seq separated by commas.
func join(seq iter.Seq[string]) string {
	return strings.Join(slices.Collect(seq), ",")
}
