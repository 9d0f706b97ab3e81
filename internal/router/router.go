package router

import (
	"github.com/gin-gonic/gin"

	"hadoop-cluster-backend/internal/handler"
)

func RegisterRoutes(r *gin.Engine, clusterHandler *handler.ClusterHandler) {
	api := r.Group("/api")
	{
		clusters := api.Group("/clusters")
		{
			clusters.GET("", clusterHandler.ListClusters)
			clusters.POST("", clusterHandler.CreateCluster)
			clusters.PUT("", clusterHandler.EditCluster)
			clusters.POST("/import", clusterHandler.ImportCluster)
			clusters.GET("/:name", clusterHandler.GetCluster)
			clusters.DELETE("/:name", clusterHandler.DeleteCluster)
			clusters.POST("/:name/tests", clusterHandler.RunTests)
			clusters.GET("/:name/tests", clusterHandler.LastTestResults)
			clusters.GET("/:name/tests/stream", clusterHandler.StreamTests)
		}

		api.GET("/shims", clusterHandler.GetShims)
		api.POST("/drivers", clusterHandler.InstallDriver)
		api.GET("/files/valid", clusterHandler.IsValidConfigurationFile)
	}
}
