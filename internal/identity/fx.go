package identity

import (
	"github.com/smallbiznis/galeri/internal/identity/repository"
	"github.com/smallbiznis/galeri/internal/identity/service"
	"go.uber.org/fx"
)

var Module = fx.Module("identity.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
