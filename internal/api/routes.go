package api

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.Engine, s *Server) {
	api := r.Group("/api")
	{
		api.GET("/health", s.health)
		api.POST("/deck/encode", s.encodeHandler)
		api.GET("/deck/:code", s.decodeHandler)
		api.GET("/deck/:code/text", s.textHandler)
		api.GET("/deck/:code/qr", s.qrHandler)
		api.GET("/deck/:code/image", s.deckImageHandler)
		api.POST("/cards/filter", s.filterHandler)
	}
}
