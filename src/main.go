package main

import (
	"flag"
	_ "net/http/pprof"

	"github.com/asaworks/asa-studio/src/api/router"
	"github.com/asaworks/asa-studio/src/app"
	"github.com/asaworks/asa-studio/src/config"
	"github.com/asaworks/asa-studio/src/service/svc"
)

const defaultConfigPath = "./config/config.toml"

func main() {
	conf := flag.String("conf", defaultConfigPath, "conf file path")
	flag.Parse()

	c, err := config.UnmarshalConfig(*conf)
	if err != nil {
		panic(err)
	}

	serverCtx, err := svc.NewServiceContext(c)
	if err != nil {
		panic(err)
	}

	r := router.NewRouter(serverCtx)
	app, err := app.NewPlatform(c, r, serverCtx)
	if err != nil {
		panic(err)
	}
	app.Start()
}
