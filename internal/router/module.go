package router

import "github.com/gin-gonic/gin"

// Module is a feature slice that mounts its own routes on the shared API
// group. Each module owns its middleware chain (auth, rate limits).
type Module interface {
	Register(rg *gin.RouterGroup)
}
