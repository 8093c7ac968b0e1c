package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// BookingStatus is the lifecycle state of a booking as reported by the
// booking-management module. Only the financially relevant states matter here.
type BookingStatus string

const (
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingRefunded  BookingStatus = "REFUNDED"
	BookingCancelled BookingStatus = "CANCELLED"
)

// ServiceType identifies the kind of travel service a booking covers.
type ServiceType string

const (
	ServiceFlight   ServiceType = "FLIGHT"
	ServiceHotel    ServiceType = "HOTEL"
	ServiceVisa     ServiceType = "VISA"
	ServiceTransfer ServiceType = "TRANSFER"
	ServicePackage  ServiceType = "PACKAGE"
)

// FlightDetails carries the flight-specific part of a booking.
type FlightDetails struct {
	Airline       string `json:"airline"`
	FlightNumber  string `json:"flightNumber"`
	Origin        string `json:"origin"`
	Destination   string `json:"destination"`
	DepartureDate string `json:"departureDate"`
	ReturnDate    string `json:"returnDate,omitempty"`
	PNR           string `json:"pnr,omitempty"`
}

// HotelDetails carries the hotel-specific part of a booking.
type HotelDetails struct {
	HotelName    string `json:"hotelName"`
	City         string `json:"city"`
	CheckInDate  string `json:"checkInDate"`
	CheckOutDate string `json:"checkOutDate"`
	RoomType     string `json:"roomType,omitempty"`
	Nights       int    `json:"nights,omitempty"`
}

// VisaDetails carries the visa-specific part of a booking.
type VisaDetails struct {
	Country      string `json:"country"`
	VisaType     string `json:"visaType"`
	ApplicantRef string `json:"applicantRef,omitempty"`
}

// TransferDetails carries the ground-transfer part of a booking.
type TransferDetails struct {
	PickupLocation  string `json:"pickupLocation"`
	DropoffLocation string `json:"dropoffLocation"`
	TransferDate    string `json:"transferDate"`
	VehicleType     string `json:"vehicleType,omitempty"`
}

// PackageDetails carries the tour-package part of a booking.
type PackageDetails struct {
	PackageName string `json:"packageName"`
	Days        int    `json:"days,omitempty"`
	Pax         int    `json:"pax,omitempty"`
}

// ServiceDetails is a tagged union over the per-service payloads. Exactly the
// variant matching Type must be set; everything else stays nil.
type ServiceDetails struct {
	Type     ServiceType      `json:"type"`
	Flight   *FlightDetails   `json:"flight,omitempty"`
	Hotel    *HotelDetails    `json:"hotel,omitempty"`
	Visa     *VisaDetails     `json:"visa,omitempty"`
	Transfer *TransferDetails `json:"transfer,omitempty"`
	Package  *PackageDetails  `json:"package,omitempty"`
}

// Validate checks that the union carries exactly the variant named by its tag.
func (d ServiceDetails) Validate() error {
	variants := map[ServiceType]bool{
		ServiceFlight:   d.Flight != nil,
		ServiceHotel:    d.Hotel != nil,
		ServiceVisa:     d.Visa != nil,
		ServiceTransfer: d.Transfer != nil,
		ServicePackage:  d.Package != nil,
	}
	tagged, known := variants[d.Type]
	if !known {
		return fmt.Errorf("unknown service type %q", d.Type)
	}
	if !tagged {
		return fmt.Errorf("service details for type %q are missing", d.Type)
	}
	for typ, set := range variants {
		if typ != d.Type && set {
			return fmt.Errorf("service details carry %q payload but are tagged %q", typ, d.Type)
		}
	}
	return nil
}

// Booking is the financial projection of a booking record as consumed from the
// booking-management module. Amounts already converted to AED are carried
// alongside the raw supplier/customer amounts.
type Booking struct {
	BookingID           string          `json:"bookingID"`
	BookingNumber       string          `json:"bookingNumber"` // "BKG-YYYY-NNNNN"
	Status              BookingStatus   `json:"status"`
	Service             ServiceDetails  `json:"service"`
	CostAmount          decimal.Decimal `json:"costAmount"`
	CostCurrency        string          `json:"costCurrency"`
	SaleAmount          decimal.Decimal `json:"saleAmount"`
	SaleCurrency        string          `json:"saleCurrency"`
	CostInAED           decimal.Decimal `json:"costInAED"`
	SaleInAED           decimal.Decimal `json:"saleInAED"`
	IsUAEBooking        bool            `json:"isUAEBooking"` // Caller-supplied VAT regime flag, not re-derived
	VATApplicable       bool            `json:"vatApplicable"`
	VATRate             decimal.Decimal `json:"vatRate"`
	AgentCommissionRate decimal.Decimal `json:"agentCommissionRate"`
	CSCommissionRate    decimal.Decimal `json:"csCommissionRate"`
}
