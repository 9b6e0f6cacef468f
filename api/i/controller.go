package i

import "github.com/gin-gonic/gin"

// Controller defines a component that registers its routes on the router.
type Controller interface {
	// Register adds the controller's routes to the given group.
	Register(route *gin.RouterGroup)
}
