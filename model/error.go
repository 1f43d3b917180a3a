package model

import "github.com/ardnew/fieldvar/pkg"

// Predefined errors (sentinel values).
var (
	ErrReadModel   = pkg.NewError("failed to read model")
	ErrDecodeModel = pkg.NewError("failed to decode model")
	ErrBuildModel  = pkg.NewError("failed to build model")
)
