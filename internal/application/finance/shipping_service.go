package finance

import (
	"context"

	"github.com/google/uuid"
	"github.com/xborder/finance-engine/internal/domain/rates"
	"github.com/xborder/finance-engine/internal/domain/shipping"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ShippingService orchestrates shipping cost calculations against the active
// rate snapshot. Every operation resolves the snapshot once and uses it
// end-to-end, so results within one call are mutually consistent.
type ShippingService struct {
	registry *rates.Registry
	log      *zap.Logger
	parallel int
}

// NewShippingService creates a new ShippingService. parallel bounds the
// fan-out of batch calculations.
func NewShippingService(registry *rates.Registry, log *zap.Logger, parallel int) *ShippingService {
	if parallel <= 0 {
		parallel = 1
	}
	return &ShippingService{
		registry: registry,
		log:      log.Named("shipping"),
		parallel: parallel,
	}
}

// CalculateOne prices a single request against one service type. An empty
// service type resolves to the platform's default service.
func (s *ShippingService) CalculateOne(ctx context.Context, req shipping.Request) (shipping.Result, error) {
	if err := req.Validate(); err != nil {
		return shipping.Result{}, err
	}
	snap, err := s.registry.Current()
	if err != nil {
		return shipping.Result{}, err
	}
	table, err := snap.Resolve(req.Platform, req.ServiceType)
	if err != nil {
		return shipping.Result{}, err
	}
	res, err := shipping.Calculate(req, table, snap.Ref())
	if err != nil {
		return shipping.Result{}, err
	}
	res.RequestID = uuid.NewString()

	if res.Rejected {
		s.log.Info("shipping calculation rejected",
			zap.String("request_id", res.RequestID),
			zap.String("platform", res.Platform),
			zap.String("service_type", res.ServiceType),
			zap.String("reason", res.RejectionReason),
		)
	}
	return res, nil
}

// CompareServices prices a request across candidate service types and tags
// the recommended option. An empty list compares every service the platform
// offers.
func (s *ShippingService) CompareServices(ctx context.Context, req shipping.Request, serviceTypes []string) (shipping.Comparison, error) {
	if err := req.Validate(); err != nil {
		return shipping.Comparison{}, err
	}
	snap, err := s.registry.Current()
	if err != nil {
		return shipping.Comparison{}, err
	}
	cmp, err := shipping.Compare(req, snap, serviceTypes)
	if err != nil {
		return shipping.Comparison{}, err
	}
	requestID := uuid.NewString()
	for i := range cmp.Results {
		cmp.Results[i].RequestID = requestID
	}
	return cmp, nil
}

// BatchItem is one entry of a batch calculation output. Exactly one of Result
// and Error is set; a failed item never aborts its siblings.
type BatchItem struct {
	Index  int              `json:"index"`
	Result *shipping.Result `json:"result,omitempty"`
	Error  *ItemError       `json:"error,omitempty"`
}

// ItemError is the in-band error shape for batch items
type ItemError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// CalculateBatch prices many requests concurrently against one snapshot.
// Output order matches input order regardless of completion order.
func (s *ShippingService) CalculateBatch(ctx context.Context, reqs []shipping.Request) ([]BatchItem, error) {
	snap, err := s.registry.Current()
	if err != nil {
		return nil, err
	}

	items := make([]BatchItem, len(reqs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.parallel)
	for i := range reqs {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				items[i] = BatchItem{Index: i, Error: itemError(ctx.Err())}
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

// batchOne prices one batch entry, turning any failure into an in-band item
// error.
func (s *ShippingService) batchOne(snap *rates.Snapshot, req shipping.Request, index int) BatchItem {
	item := BatchItem{Index: index}
	if err := req.Validate(); err != nil {
		item.Error = itemError(err)
		return item
	}
	table, err := snap.Resolve(req.Platform, req.ServiceType)
	if err != nil {
		item.Error = itemError(err)
		return item
	}
	res, err := shipping.Calculate(req, table, snap.Ref())
	if err != nil {
		item.Error = itemError(err)
		return item
	}
	res.RequestID = uuid.NewString()
	item.Result = &res
	return item
}
