package docpipe

import "go.uber.org/fx"

var Module = fx.Module("docpipe",
	fx.Provide(NewProcessor),
)
