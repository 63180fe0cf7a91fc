package shipping

import (
	"github.com/xborder/finance-engine/internal/domain/rates"
	"github.com/xborder/finance-engine/internal/domain/shared"
)

// Tags the comparator attaches to options for operator dashboards
const (
	TagCheapest = "cheapest"
	TagFastest  = "fastest"
)

// Comparison is the outcome of fanning a request out across service types.
// Rejected options are retained so the caller can see why an option was
// unavailable; Recommended is empty when every option was rejected.
type Comparison struct {
	Results     []Result `json:"results"`
	Recommended string   `json:"recommended,omitempty"`
}

// Compare calculates the request against each candidate service type
// independently. An explicit service list is honored as given; an empty list
// means every service available for the platform. No single service's
// rejection or data problem aborts the comparison of the others.
func Compare(req Request, snap *rates.Snapshot, serviceTypes []string) (Comparison, error) {
	if len(serviceTypes) == 0 {
		serviceTypes = snap.ServicesFor(req.Platform)
	}
	if len(serviceTypes) == 0 {
		return Comparison{}, shared.ErrRateNotFound
	}

	cmp := Comparison{Results: make([]Result, 0, len(serviceTypes))}
	for _, svc := range serviceTypes {
		table, err := snap.Resolve(req.Platform, svc)
		if err != nil {
			cmp.Results = append(cmp.Results, unavailableResult(req, svc, snap.Ref()))
			continue
		}
		res, err := Calculate(req, table, snap.Ref())
		if err != nil {
			cmp.Results = append(cmp.Results, unavailableResult(req, svc, snap.Ref()))
			continue
		}
		cmp.Results = append(cmp.Results, res)
	}

	cheapest, fastest := -1, -1
	for i, res := range cmp.Results {
		if res.Rejected {
			continue
		}
		if cheapest < 0 || better(res, cmp.Results[cheapest]) {
			cheapest = i
		}
		if fastest < 0 || res.DeliveryDaysMax < cmp.Results[fastest].DeliveryDaysMax {
			fastest = i
		}
	}
	if cheapest >= 0 {
		cmp.Results[cheapest].Tags = append(cmp.Results[cheapest].Tags, TagCheapest)
		cmp.Recommended = cmp.Results[cheapest].ServiceType
	}
	if fastest >= 0 && fastest != cheapest {
		cmp.Results[fastest].Tags = append(cmp.Results[fastest].Tags, TagFastest)
	}
	return cmp, nil
}

// better ranks non-rejected options by total cost ascending, ties broken by
// shorter max delivery days.
func better(a, b Result) bool {
	switch a.TotalCost.Cmp(b.TotalCost) {
	case -1:
		return true
	case 1:
		return false
	default:
		return a.DeliveryDaysMax < b.DeliveryDaysMax
	}
}

// unavailableResult records a service that could not be priced at all, kept
// in the comparison output as a rejected entry with a machine-readable reason.
func unavailableResult(req Request, serviceType string, version rates.VersionRef) Result {
	return Result{
		Platform:        req.Platform,
		ServiceType:     serviceType,
		Rejected:        true,
		RejectionReason: ReasonRateNotFound,
		Scenario:        ScenarioUnavailable,
		RateVersion:     version.RateVersion,
		EffectiveFrom:   version.EffectiveFrom,
	}
}
