// File: handlers/bundle.go
package handlers

import "dreamdecol/middleware"

// HandlerBundle groups the endpoint handlers the router mounts.
type HandlerBundle struct {
	Auth middleware.Authenticator

	Booking  *BookingHandler
	Rating   *RatingHandler
	Admin    *AdminHandler
	Product  *ProductHandler
	Activity *ActivityHandler
	Contact  *ContactHandler
	Config   *ConfigHandler
	Upload   *UploadHandler
	Health   *HealthHandler
}
