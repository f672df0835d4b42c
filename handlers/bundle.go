// File: detailing/handlers/bundle.go
package handlers

import "github.com/gin-gonic/gin"

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Auth endpoints
	RegisterUserHandler     gin.HandlerFunc
	AuthenticateUserHandler gin.HandlerFunc
	LoggedInHandler         gin.HandlerFunc
	LogoutHandler           gin.HandlerFunc

	// Cart endpoints
	GetCart        gin.HandlerFunc
	AddToCart      gin.HandlerFunc
	RemoveFromCart gin.HandlerFunc
	ClearCart      gin.HandlerFunc
	SelectDateTime gin.HandlerFunc

	// Booking endpoints
	GetBusyTimes  gin.HandlerFunc
	CreateBooking gin.HandlerFunc
	ListBookings  gin.HandlerFunc

	// Catalog endpoints
	GetServices   gin.HandlerFunc
	CreateService gin.HandlerFunc
	DeleteService gin.HandlerFunc

	// Upload endpoints
	UploadBeforePicture gin.HandlerFunc
	UploadAfterPicture  gin.HandlerFunc
	DeleteBeforePicture gin.HandlerFunc
	DeleteAfterPicture  gin.HandlerFunc
}

// NewHandlerBundle assembles the bundle from the per-resource handlers.
func NewHandlerBundle(auth *AuthHandler, cart *CartHandler, booking *BookingHandler, services *ServicesHandler, uploads *UploadHandler) *HandlerBundle {
	return &HandlerBundle{
		RegisterUserHandler:     auth.RegisterUserHandler,
		AuthenticateUserHandler: auth.AuthenticateUserHandler,
		LoggedInHandler:         auth.LoggedInHandler,
		LogoutHandler:           auth.LogoutHandler,

		GetCart:        cart.GetCart,
		AddToCart:      cart.AddToCart,
		RemoveFromCart: cart.RemoveFromCart,
		ClearCart:      cart.ClearCart,
		SelectDateTime: cart.SelectDateTime,

		GetBusyTimes:  booking.GetBusyTimes,
		CreateBooking: booking.CreateBooking,
		ListBookings:  booking.ListBookings,

		GetServices:   services.GetServices,
		CreateService: services.CreateService,
		DeleteService: services.DeleteService,

		UploadBeforePicture: uploads.UploadBeforePicture,
		UploadAfterPicture:  uploads.UploadAfterPicture,
		DeleteBeforePicture: uploads.DeleteBeforePicture,
		DeleteAfterPicture:  uploads.DeleteAfterPicture,
	}
}
