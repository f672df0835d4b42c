package models

import "time"

const (
	BookingStatusConfirmed = "confirmed"
	BookingStatusCompleted = "completed"
	BookingStatusCancelled = "cancelled"
)

// Booking represents a confirmed booking record.
type Booking struct {
	ID               string    `bson:"_id" json:"_id"`
	UserID           string    `bson:"user_id" json:"userId"`
	Services         []Service `bson:"services" json:"services"`
	CustomerLocation string    `bson:"customer_location" json:"customerLocation"`
	Start            time.Time `bson:"start" json:"start"`
	End              time.Time `bson:"end" json:"end"`
	TotalPrice       float64   `bson:"total_price" json:"totalPrice"`
	Status           string    `bson:"status" json:"status"`
	BeforePictures   []Picture `bson:"before_pictures" json:"beforePictures"`
	AfterPictures    []Picture `bson:"after_pictures" json:"afterPictures"`
	CreatedAt        time.Time `bson:"created_at" json:"createdAt"`
}

// Picture is an uploaded before/after photo of a booking.
type Picture struct {
	PublicID   string    `bson:"public_id" json:"publicId"`
	URL        string    `bson:"url" json:"url"`
	UploadedAt time.Time `bson:"uploaded_at" json:"uploadedAt"`
}

// PictureKind selects the before or after picture list of a booking.
type PictureKind string

const (
	PictureBefore PictureKind = "before"
	PictureAfter  PictureKind = "after"
)

// Pictures returns the booking's picture list of the given kind.
func (b *Booking) Pictures(kind PictureKind) []Picture {
	if kind == PictureAfter {
		return b.AfterPictures
	}
	return b.BeforePictures
}

// HasPicture reports whether the booking holds publicID under kind.
func (b *Booking) HasPicture(kind PictureKind, publicID string) bool {
	for _, p := range b.Pictures(kind) {
		if p.PublicID == publicID {
			return true
		}
	}
	return false
}

// CreateBookingRequest is the body of POST /api/bookings.
type CreateBookingRequest struct {
	CustomerLocation string `json:"customerLocation" binding:"required"`
}

// DeletePictureRequest is the body of DELETE /api/uploads/{before,after}.
type DeletePictureRequest struct {
	BookingID string `json:"bookingId" binding:"required"`
	PublicID  string `json:"publicId" binding:"required"`
}
