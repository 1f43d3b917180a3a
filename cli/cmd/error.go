package cmd

import "github.com/ardnew/fieldvar/pkg"

var (
	ErrJSONMarshal = pkg.NewError("marshal JSON")
	ErrYAMLMarshal = pkg.NewError("marshal YAML")
	ErrWriteConfig = pkg.NewError("write configuration file")
	ErrFileExists  = pkg.NewError("file exists (use --force to overwrite)")
	ErrNoModel     = pkg.NewError("no model source (use --model)")
	ErrPoint       = pkg.NewError("invalid evaluation point")
	ErrNoMesh      = pkg.NewError("model has no mesh")
)
