package routes

import (
	"detailing/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterUploadRoutes maps the before/after picture routes onto r.
func RegisterUploadRoutes(r gin.IRouter, hb *handlers.HandlerBundle) {
	r.POST("/before", hb.UploadBeforePicture)
	r.POST("/after", hb.UploadAfterPicture)
	r.DELETE("/before", hb.DeleteBeforePicture)
	r.DELETE("/after", hb.DeleteAfterPicture)
}
