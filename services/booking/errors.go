package booking

import "dreamdecol/utils"

const (
	MsgSlotTaken       = "This time slot is already booked. Please choose a different time."
	MsgInvalidDate     = "Please select a valid future date"
	MsgBookingNotFound = "Booking not found"
)

func slotTakenError() *utils.AppError {
	return utils.NewConflictError(MsgSlotTaken)
}

func notFoundError() *utils.AppError {
	return utils.NewNotFoundError(MsgBookingNotFound)
}
