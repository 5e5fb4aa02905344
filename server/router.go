package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// SetupRouter builds the gin engine for the prediction front end.
// templateGlob points at the html templates, e.g. "server/templates/*.html".
func SetupRouter(handler *PredictionHandler, templateGlob string) *gin.Engine {
	// Default With the Logger and Recovery middleware already attached
	router := gin.Default()
	router.Use(cors.Default())
	router.LoadHTMLGlob(templateGlob)

	router.GET("/", handler.Index)
	router.POST("/predict_party/", handler.PredictParty)

	return router
}
