package main

import (
	"github.com/udistrital/inmobiliaria_mid/controllers/errorhandler"
	"github.com/udistrital/inmobiliaria_mid/internal/middlewares"
	internalservices "github.com/udistrital/inmobiliaria_mid/internal/services"
	_ "github.com/udistrital/inmobiliaria_mid/routers"
	rootservices "github.com/udistrital/inmobiliaria_mid/services"

	"github.com/beego/beego/v2/core/logs"
	beego "github.com/beego/beego/v2/server/web"
	cors "github.com/beego/beego/v2/server/web/filter/cors"
	"github.com/beego/beego/v2/server/web/filter/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg := rootservices.GetConfig()

	beego.BConfig.AppName = cfg.AppName
	beego.BConfig.RunMode = cfg.RunMode
	beego.BConfig.Listen.HTTPPort = cfg.HTTPPort
	beego.BConfig.RecoverPanic = true
	beego.BConfig.RecoverFunc = errorhandler.RecoverPanic

	beego.InsertFilter("*", beego.BeforeRouter, cors.Allow(&cors.Options{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     []string{"GET", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "X-Requested-With", "X-Request-Id", "Accept"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-Id"},
		AllowCredentials: true,
	}))
	middlewares.UseAccessLog()

	if cfg.MetricsEnabled {
		builder := prometheus.FilterChainBuilder{}
		beego.InsertFilterChain("/v1/*", builder.FilterChain)
		beego.Handler("/metrics", promhttp.Handler())
	}

	if err := internalservices.Bootstrap(cfg); err != nil {
		logs.Critical("no se pudo iniciar: %v", err)
		return
	}
	if beego.BConfig.RunMode == "dev" {
		beego.BConfig.WebConfig.DirectoryIndex = true
		beego.BConfig.WebConfig.StaticDir["/swagger"] = "swagger"
	}
	beego.Run()
}
