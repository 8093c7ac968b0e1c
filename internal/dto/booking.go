package dto

import (
	"github.com/marhaba-travel/agency_accounting/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ServiceDetailsRequest mirrors the tagged service-detail union on the wire.
type ServiceDetailsRequest struct {
	Type     string                  `json:"type" binding:"required,oneof=FLIGHT HOTEL VISA TRANSFER PACKAGE"`
	Flight   *domain.FlightDetails   `json:"flight,omitempty"`
	Hotel    *domain.HotelDetails    `json:"hotel,omitempty"`
	Visa     *domain.VisaDetails     `json:"visa,omitempty"`
	Transfer *domain.TransferDetails `json:"transfer,omitempty"`
	Package  *domain.PackageDetails  `json:"package,omitempty"`
}

// BookingEventRequest is the booking financial projection as submitted by the
// booking-management collaborator.
type BookingEventRequest struct {
	BookingID           string                `json:"bookingID" binding:"required,uuid"`
	BookingNumber       string                `json:"bookingNumber" binding:"required"`
	Status              string                `json:"status" binding:"required,oneof=CONFIRMED REFUNDED CANCELLED"`
	Service             ServiceDetailsRequest `json:"service" binding:"required"`
	CostAmount          decimal.Decimal       `json:"costAmount"`
	CostCurrency        string                `json:"costCurrency" binding:"required,len=3"`
	SaleAmount          decimal.Decimal       `json:"saleAmount"`
	SaleCurrency        string                `json:"saleCurrency" binding:"required,len=3"`
	IsUAEBooking        bool                  `json:"isUAEBooking"`
	VATApplicable       bool                  `json:"vatApplicable"`
	VATRate             decimal.Decimal       `json:"vatRate"`
	AgentCommissionRate decimal.Decimal       `json:"agentCommissionRate"`
	CSCommissionRate    decimal.Decimal       `json:"csCommissionRate"`
}

// ToDomain converts the request to the domain booking projection. AED amounts
// are filled in by the service via the currency converter.
func (r BookingEventRequest) ToDomain() domain.Booking {
	return domain.Booking{
		BookingID:     r.BookingID,
		BookingNumber: r.BookingNumber,
		Status:        domain.BookingStatus(r.Status),
		Service: domain.ServiceDetails{
			Type:     domain.ServiceType(r.Service.Type),
			Flight:   r.Service.Flight,
			Hotel:    r.Service.Hotel,
			Visa:     r.Service.Visa,
			Transfer: r.Service.Transfer,
			Package:  r.Service.Package,
		},
		CostAmount:          r.CostAmount,
		CostCurrency:        r.CostCurrency,
		SaleAmount:          r.SaleAmount,
		SaleCurrency:        r.SaleCurrency,
		IsUAEBooking:        r.IsUAEBooking,
		VATApplicable:       r.VATApplicable,
		VATRate:             r.VATRate,
		AgentCommissionRate: r.AgentCommissionRate,
		CSCommissionRate:    r.CSCommissionRate,
	}
}
