package repository

import (
	bookingRepo "detailing/database/repository/booking"
	cartRepo "detailing/database/repository/cart"
	catalogRepo "detailing/database/repository/catalog"
	userRepo "detailing/database/repository/user"
)

// Re-export the CartRepository interface and constructor.
type CartRepository = cartRepo.CartRepository

var NewMongoCartRepo = cartRepo.NewMongoCartRepo

// Re-export the CatalogRepository interface and constructor.
type CatalogRepository = catalogRepo.CatalogRepository

var NewMongoCatalogRepo = catalogRepo.NewMongoCatalogRepo

// Re-export the BookingRepository interface and constructor.
type BookingRepository = bookingRepo.BookingRepository

var NewMongoBookingRepo = bookingRepo.NewMongoBookingRepo

// Re-export the UserRepository interface and constructor.
type UserRepository = userRepo.UserRepository

var NewMongoUserRepo = userRepo.NewMongoUserRepo
