package handler

import (
	"github.com/shopspring/decimal"
	"github.com/xborder/finance-engine/internal/domain/profit"
	"github.com/xborder/finance-engine/internal/domain/shipping"
)

// ShippingCalculateRequest is the wire shape of a shipping calculation.
// Decimal fields accept JSON numbers or strings; range checks live on the
// domain request so the rules stay in one place.
type ShippingCalculateRequest struct {
	Platform       string           `json:"platform" binding:"required"`
	ServiceType    string           `json:"service_type"`
	WeightG        decimal.Decimal  `json:"weight_g"`
	LengthCm       decimal.Decimal  `json:"length_cm"`
	WidthCm        decimal.Decimal  `json:"width_cm"`
	HeightCm       decimal.Decimal  `json:"height_cm"`
	DeclaredValue  decimal.Decimal  `json:"declared_value"`
	SellingPrice   decimal.Decimal  `json:"selling_price"`
	Battery        bool             `json:"battery"`
	Fragile        bool             `json:"fragile"`
	Liquid         bool             `json:"liquid"`
	Insurance      bool             `json:"insurance"`
	InsuranceValue *decimal.Decimal `json:"insurance_value"`
}

// ToDomain converts the wire shape into a domain request
func (r ShippingCalculateRequest) ToDomain() shipping.Request {
	return shipping.Request{
		Platform:       r.Platform,
		ServiceType:    r.ServiceType,
		WeightG:        r.WeightG,
		LengthCm:       r.LengthCm,
		WidthCm:        r.WidthCm,
		HeightCm:       r.HeightCm,
		DeclaredValue:  r.DeclaredValue,
		SellingPrice:   r.SellingPrice,
		Battery:        r.Battery,
		Fragile:        r.Fragile,
		Liquid:         r.Liquid,
		Insurance:      r.Insurance,
		InsuranceValue: r.InsuranceValue,
	}
}

// ShippingBatchRequest is the wire shape of a batch shipping calculation
type ShippingBatchRequest struct {
	Requests []ShippingCalculateRequest `json:"requests" binding:"required,min=1,max=500"`
}

func toShippingDomain(reqs []ShippingCalculateRequest) []shipping.Request {
	out := make([]shipping.Request, len(reqs))
	for i, r := range reqs {
		out[i] = r.ToDomain()
	}
	return out
}

// ProfitCalculateRequest is the wire shape of a profit calculation
type ProfitCalculateRequest struct {
	SKU              string           `json:"sku"`
	Platform         string           `json:"platform" binding:"required"`
	Cost             decimal.Decimal  `json:"cost"`
	SellingPrice     decimal.Decimal  `json:"selling_price"`
	WeightG          decimal.Decimal  `json:"weight_g"`
	LengthCm         decimal.Decimal  `json:"length_cm"`
	WidthCm          decimal.Decimal  `json:"width_cm"`
	HeightCm         decimal.Decimal  `json:"height_cm"`
	FulfillmentModel string           `json:"fulfillment_model"`
	CategoryCode     string           `json:"category_code"`
	PlatformFeeRate  *decimal.Decimal `json:"platform_fee_rate"`
	CompareShipping  bool             `json:"compare_shipping"`
	PreferredService string           `json:"preferred_service"`
}

// ToDomain converts the wire shape into a domain request
func (r ProfitCalculateRequest) ToDomain() profit.Request {
	return profit.Request{
		SKU:              r.SKU,
		Platform:         r.Platform,
		Cost:             r.Cost,
		SellingPrice:     r.SellingPrice,
		WeightG:          r.WeightG,
		LengthCm:         r.LengthCm,
		WidthCm:          r.WidthCm,
		HeightCm:         r.HeightCm,
		FulfillmentModel: r.FulfillmentModel,
		CategoryCode:     r.CategoryCode,
		PlatformFeeRate:  r.PlatformFeeRate,
		CompareShipping:  r.CompareShipping,
		PreferredService: r.PreferredService,
	}
}

// ProfitBatchRequest is the wire shape of a batch profit calculation
type ProfitBatchRequest struct {
	Requests []ProfitCalculateRequest `json:"requests" binding:"required,min=1,max=200"`
}

func toProfitDomain(reqs []ProfitCalculateRequest) []profit.Request {
	out := make([]profit.Request, len(reqs))
	for i, r := range reqs {
		out[i] = r.ToDomain()
	}
	return out
}
