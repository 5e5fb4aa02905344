package main

import (
	"flag"
	"os"
	"path/filepath"

	"github.com/politimux/politimux/collector/clients"
	"github.com/politimux/politimux/features"
	"github.com/politimux/politimux/server"
	"github.com/politimux/politimux/utils/dotenv"
	Logger "github.com/politimux/politimux/utils/log"
)

var (
	addr         = flag.String("addr", ":8080", "listen address")
	modelDir     = flag.String("model_dir", "models", "directory containing base_model.json and text_model.json")
	templateGlob = flag.String("templates", "server/templates/*.html", "glob for html templates")
)

func main() {
	flag.Parse()

	if err := dotenv.LoadDotEnvs(); err != nil {
		panic(err)
	}

	baseModel, err := features.LoadLogisticModel(filepath.Join(*modelDir, "base_model.json"))
	if err != nil {
		Logger.Log.Fatal("fail to load base model: ", err)
	}
	textModel, err := features.LoadTextModel(filepath.Join(*modelDir, "text_model.json"))
	if err != nil {
		Logger.Log.Fatal("fail to load text model: ", err)
	}

	api := clients.NewTwitterClient(clients.Credentials{
		ConsumerKey:       os.Getenv("TWITTER_CONSUMER_KEY"),
		ConsumerSecret:    os.Getenv("TWITTER_CONSUMER_SECRET"),
		AccessToken:       os.Getenv("TWITTER_ACCESS_TOKEN"),
		AccessTokenSecret: os.Getenv("TWITTER_ACCESS_TOKEN_SECRET"),
	})

	handler := server.NewPredictionHandler(api, baseModel, textModel)
	router := server.SetupRouter(handler, *templateGlob)

	Logger.Log.Info("prediction server starts up")
	router.Run(*addr)
}
