package server

import "github.com/gin-gonic/gin"

// NewRouter builds the gin engine with the authentication boundary applied
// to every route.
func NewRouter(api OrderAPI, authn gin.HandlerFunc, middleware ...gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	for _, m := range middleware {
		if m != nil {
			router.Use(m)
		}
	}
	router.Use(authn)

	router.POST("/orders", api.SubmitOrder)
	router.GET("/orders", api.GetOrders)
	return router
}
