package migration

import (
	"github.com/smallbiznis/galeri/internal/seed"
	"go.uber.org/fx"
)

var Module = fx.Module("migration",
	fx.Invoke(Run),
	fx.Invoke(seed.EnsureAdmin),
)
