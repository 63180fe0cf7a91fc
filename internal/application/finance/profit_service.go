package finance

import (
	"context"

	"github.com/google/uuid"
	"github.com/xborder/finance-engine/internal/domain/profit"
	"github.com/xborder/finance-engine/internal/domain/rates"
	"github.com/xborder/finance-engine/internal/domain/shipping"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ProfitService orchestrates profit margin calculations. Shipping cost is
// obtained from the active rate snapshot, either for the preferred service or
// by comparing every service the platform offers.
type ProfitService struct {
	registry   *rates.Registry
	calculator profit.Calculator
	log        *zap.Logger
	parallel   int
}

// NewProfitService creates a new ProfitService
func NewProfitService(registry *rates.Registry, calculator profit.Calculator, log *zap.Logger, parallel int) *ProfitService {
	if parallel <= 0 {
		parallel = 1
	}
	return &ProfitService{
		registry:   registry,
		calculator: calculator,
		log:        log.Named("profit"),
		parallel:   parallel,
	}
}

// Calculate produces a profit result for one request
func (s *ProfitService) Calculate(ctx context.Context, req profit.Request) (profit.Result, error) {
	if err := req.Validate(); err != nil {
		return profit.Result{}, err
	}
	snap, err := s.registry.Current()
	if err != nil {
		return profit.Result{}, err
	}

	quote, err := s.quote(req, snap)
	if err != nil {
		return profit.Result{}, err
	}

	res := s.calculator.Calculate(req, quote)
	res.RequestID = uuid.NewString()

	if res.ProfitAmount != nil && res.ProfitAmount.IsNegative() {
		s.log.Info("negative margin",
			zap.String("request_id", res.RequestID),
			zap.String("sku", res.SKU),
			zap.String("platform", res.Platform),
			zap.String("profit_amount", res.ProfitAmount.String()),
		)
	}
	return res, nil
}

// quote builds the shipping quote feeding a profit calculation. With
// CompareShipping set every service is priced and the recommendation drives
// the selected cost; otherwise only the preferred (or default) service is.
func (s *ProfitService) quote(req profit.Request, snap *rates.Snapshot) (profit.ShippingQuote, error) {
	shipReq := shipping.Request{
		Platform:     req.Platform,
		ServiceType:  req.PreferredService,
		WeightG:      req.WeightG,
		LengthCm:     req.LengthCm,
		WidthCm:      req.WidthCm,
		HeightCm:     req.HeightCm,
		SellingPrice: req.SellingPrice,
	}

	if req.CompareShipping {
		cmp, err := shipping.Compare(shipReq, snap, nil)
		if err != nil {
			return profit.ShippingQuote{}, err
		}
		quote := profit.ShippingQuote{
			Options:     make(map[string]shipping.Result, len(cmp.Results)),
			Recommended: cmp.Recommended,
		}
		for _, res := range cmp.Results {
			quote.Options[res.ServiceType] = res
		}

		selected := req.PreferredService
		if selected == "" {
			selected = cmp.Recommended
		}
		if res, ok := quote.Options[selected]; ok && !res.Rejected {
			cost := res.TotalCost
			quote.SelectedService = selected
			quote.SelectedCost = &cost
		} else if res, ok := quote.Options[cmp.Recommended]; ok && !res.Rejected {
			cost := res.TotalCost
			quote.SelectedService = cmp.Recommended
			quote.SelectedCost = &cost
		}
		return quote, nil
	}

	table, err := snap.Resolve(req.Platform, req.PreferredService)
	if err != nil {
		return profit.ShippingQuote{}, err
	}
	res, err := shipping.Calculate(shipReq, table, snap.Ref())
	if err != nil {
		return profit.ShippingQuote{}, err
	}
	quote := profit.ShippingQuote{
		Options: map[string]shipping.Result{res.ServiceType: res},
	}
	if !res.Rejected {
		cost := res.TotalCost
		quote.SelectedService = res.ServiceType
		quote.SelectedCost = &cost
	}
	return quote, nil
}

// ProfitBatchItem is one entry of a batch profit output
type ProfitBatchItem struct {
	Index  int            `json:"index"`
	Result *profit.Result `json:"result,omitempty"`
	Error  *ItemError     `json:"error,omitempty"`
}

// CalculateBatch runs many profit calculations concurrently against one
// snapshot. Output order matches input order; a failed item never aborts its
// siblings.
func (s *ProfitService) CalculateBatch(ctx context.Context, reqs []profit.Request) ([]ProfitBatchItem, error) {
	snap, err := s.registry.Current()
	if err != nil {
		return nil, err
	}

	items := make([]ProfitBatchItem, len(reqs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.parallel)
	for i := range reqs {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				items[i] = ProfitBatchItem{Index: i, Error: itemError(ctx.Err())}
				return nil
			default:
			}
			items[i] = s.batchOne(snap, reqs[i], i)
			return nil
		})
	}
	_ = g.Wait()
	return items, nil
}

func (s *ProfitService) batchOne(snap *rates.Snapshot, req profit.Request, index int) ProfitBatchItem {
	item := ProfitBatchItem{Index: index}
	if err := req.Validate(); err != nil {
		item.Error = itemError(err)
		return item
	}
	quote, err := s.quote(req, snap)
	if err != nil {
		item.Error = itemError(err)
		return item
	}
	res := s.calculator.Calculate(req, quote)
	res.RequestID = uuid.NewString()
	item.Result = &res
	return item
}
