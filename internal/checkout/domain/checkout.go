package domain

// Service types the booking flow accepts.
const (
	ServiceWalkIn = "walkin"
	ServicePickup = "pickup"
)

// Delivery types as the order endpoint spells them.
const (
	DeliveryWalkIn   = "walkin"
	DeliveryDoorstep = "delivery"
)

// WalkInLocation is the workshop address stamped on walk-in orders.
const WalkInLocation = "MGrid Tech, KK Convention Road"

// PaymentCashOnDelivery is the only payment method the backend takes today.
const PaymentCashOnDelivery = "Cash on delivery"

// Stage is how far the booking flow has progressed. StageAddress only
// exists on the pickup path.
type Stage int

const (
	StageServiceType Stage = iota
	StageAddress
	StageSlot
	StageReady
)

func (s Stage) String() string {
	switch s {
	case StageServiceType:
		return "service-type"
	case StageAddress:
		return "address"
	case StageSlot:
		return "slot"
	case StageReady:
		return "ready"
	default:
		return "unknown"
	}
}

// Slot is one bookable appointment window. Date is the day the slot was
// queried for; the backend's slot listing does not echo it back.
type Slot struct {
	ID       int
	Date     string
	FromTime string
	ToTime   string
}

// Draft is the fully composed order request, one POST away from existing.
type Draft struct {
	UserID          int
	CarID           int
	UserAddress     string
	AppointmentDate string
	AppointmentTime string
	AppointmentID   int
	DeliveryType    string
	PaymentMethod   string
	TotalValue      float64
}

// Reference identifies a placed order.
type Reference struct {
	OrderID int
}
