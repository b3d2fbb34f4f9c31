package adminreport

import (
	"github.com/smallbiznis/galeri/internal/adminreport/service"
	"go.uber.org/fx"
)

var Module = fx.Module("adminreport.service",
	fx.Provide(service.New),
)
