package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/georeconexion/campo-api/api/handlers"
	"github.com/georeconexion/campo-api/api/scheduler"

	"go.uber.org/zap"

	"github.com/georeconexion/campo-api/config"
)

func main() {
	a := handlers.App{}
	a.Config = *config.New()

	if err := a.Initialize(); err != nil { //initialize store, gateway and router
		log.Fatal(err)
	}

	s := scheduler.NewScheduler(a.Store, a.Config)
	s.Start()
	defer s.Stop()

	zap.S().Infow("campo-api is up and running",
		"port", a.Config.Port,
		"upstream", a.Config.UpstreamURL,
	)
	log.Fatal(http.ListenAndServe(fmt.Sprintf(":%v", a.Config.Port), a.Router))
}
