package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tpraukum44/RocketryBox-Backend-sub003/internal/config"
	"github.com/tpraukum44/RocketryBox-Backend-sub003/internal/models"
	"github.com/tpraukum44/RocketryBox-Backend-sub003/internal/utils"
	"github.com/tpraukum44/RocketryBox-Backend-sub003/pkg/logger"
	"github.com/tpraukum44/RocketryBox-Backend-sub003/pkg/metrics"
	"github.com/tpraukum44/RocketryBox-Backend-sub003/pkg/partners"
)

type ServiceabilityService interface {
	ProbeAll(ctx context.Context, couriers []*models.Courier, lane *ProbeLane) []models.ServiceabilityResult
}

// ProbeLane describes one pickup-to-delivery lane to probe.
type ProbeLane struct {
	PickupPincode   string
	DeliveryPincode string
	Modes           []models.ServiceMode
	CODRequired     bool
}

type probeTask struct {
	courier *models.Courier
	mode    models.ServiceMode
}

type serviceabilityService struct {
	registry       *partners.Registry
	cache          CacheService
	logger         *logger.Logger
	metrics        *metrics.Metrics
	defaultTimeout time.Duration
	cacheTTL       time.Duration
}

func NewServiceabilityService(config *config.Config, registry *partners.Registry, cacheService CacheService, logger *logger.Logger, metrics *metrics.Metrics) ServiceabilityService {
	return &serviceabilityService{
		registry:       registry,
		cache:          cacheService,
		logger:         logger,
		metrics:        metrics,
		defaultTimeout: config.Engine.ProbeTimeout,
		cacheTTL:       config.Engine.ProbeCacheTTL,
	}
}

// ProbeAll fans out one probe per courier and mode and waits for every task.
// Each task lands its answer in its own result slot, so a slow or failing
// partner can never abort or starve its siblings.
func (s *serviceabilityService) ProbeAll(ctx context.Context, couriers []*models.Courier, lane *ProbeLane) []models.ServiceabilityResult {
	var tasks []probeTask
	for _, courier := range couriers {
		for _, mode := range lane.Modes {
			tasks = append(tasks, probeTask{courier: courier, mode: mode})
		}
	}

	results := make([]models.ServiceabilityResult, len(tasks))

	var g errgroup.Group
	for i, task := range tasks {
		i, task := i, task
		g.Go(func() error {
			results[i] = s.probeOne(ctx, task, lane)
			return nil
		})
	}

	// Tasks are isolated and report failures in-band; the group exists only
	// to wait for all of them.
	_ = g.Wait()

	return results
}

func (s *serviceabilityService) probeOne(ctx context.Context, task probeTask, lane *ProbeLane) models.ServiceabilityResult {
	result := models.ServiceabilityResult{
		Courier: task.courier.Code,
		Mode:    task.mode,
	}

	if !task.courier.SupportsMode(task.mode) {
		result.Reason = models.ReasonModeNotSupported
		return result
	}

	if lane.CODRequired && !task.courier.SupportsCOD {
		result.Reason = models.ReasonCODNotSupported
		return result
	}

	adapter, ok := s.registry.Get(string(task.courier.Code))
	if !ok {
		result.Reason = models.ReasonProbeError
		s.logger.WithCourier(string(task.courier.Code)).Error("No partner adapter registered")
		return result
	}

	response, latency, cached, err := s.checkWithCache(ctx, adapter, task, lane)
	result.LatencyMS = latency.Milliseconds()

	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			result.Reason = models.ReasonProbeTimeout
			s.metrics.RecordProbe(string(task.courier.Code), "timeout", latency)
		} else {
			result.Reason = models.ReasonProbeError
			s.metrics.RecordProbe(string(task.courier.Code), "error", latency)
		}
		s.logger.LogProbeResult(string(task.courier.Code), string(task.mode), false, err.Error(), latency)
		return result
	}

	switch {
	case !response.Serviceable:
		result.Reason = models.ReasonNotServiceable
	case lane.CODRequired && !response.CODAllowed:
		result.Reason = models.ReasonCODNotSupported
	default:
		result.Serviceable = true
	}

	logReason := result.Reason
	if response.Reason != "" {
		logReason = response.Reason
	}
	s.logger.LogProbeResult(string(task.courier.Code), string(task.mode), result.Serviceable, logReason, latency)

	// Cached answers are not partner calls and stay out of the probe metrics.
	if !cached {
		outcome := "not_serviceable"
		if result.Serviceable {
			outcome = "serviceable"
		}
		s.metrics.RecordProbe(string(task.courier.Code), outcome, latency)
	}

	return result
}

// checkWithCache serves repeat probes for the same courier and lane from
// Redis. Cache entries are keyed without the payment mode, so prepaid and COD
// requests share them.
func (s *serviceabilityService) checkWithCache(ctx context.Context, adapter partners.Adapter, task probeTask, lane *ProbeLane) (*partners.ServiceabilityResponse, time.Duration, bool, error) {
	cacheKey := fmt.Sprintf("%s%s:%s:%s:%s", utils.CacheServiceabilityPrefix, task.courier.Code, lane.PickupPincode, lane.DeliveryPincode, task.mode)

	if s.cache != nil {
		var hit partners.ServiceabilityResponse
		if err := s.cache.Get(ctx, cacheKey, &hit); err == nil {
			return &hit, 0, true, nil
		}
	}

	request := &partners.ServiceabilityRequest{
		PickupPincode:   lane.PickupPincode,
		DeliveryPincode: lane.DeliveryPincode,
		Mode:            string(task.mode),
		CODRequired:     lane.CODRequired,
	}

	timeout := task.courier.ProbeTimeout(s.defaultTimeout)
	probeCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	started := time.Now()
	response, err := adapter.CheckServiceability(probeCtx, request)
	latency := time.Since(started)

	if err != nil {
		// Rate-limiter waits and transport errors after the budget elapsed
		// count as timeouts.
		if errors.Is(probeCtx.Err(), context.DeadlineExceeded) && !errors.Is(err, context.DeadlineExceeded) {
			err = fmt.Errorf("%v: %w", err, context.DeadlineExceeded)
		}
		return nil, latency, false, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, response, s.cacheTTL); err != nil {
			s.logger.WithError(err).Debug("Failed to cache probe result")
		}
	}

	return response, latency, false, nil
}
