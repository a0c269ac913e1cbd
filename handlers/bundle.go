// File: glowbook/handlers/bundle.go
package handlers

import "github.com/gin-gonic/gin"

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Booking endpoints
	CalculateQuote gin.HandlerFunc

	Health gin.HandlerFunc
}
