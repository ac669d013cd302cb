package cloudmetrics

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"sort"
	"sync/atomic"
	"time"

	"github.com/golang/snappy"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/prometheus/prompb"
	"go.uber.org/zap"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/protoadapt"
)

const (
	exportInterval = 15 * time.Second
	exportTimeout  = 5 * time.Second
)

// Pusher ships gathered engine metrics to a Prometheus remote-write endpoint.
// Export failures are logged once per outage and never block serving.
type Pusher struct {
	endpoint   string
	authToken  string
	gatherer   prometheus.Gatherer
	logger     *zap.Logger
	httpClient *http.Client

	stopCh    chan struct{}
	doneCh    chan struct{}
	errorOnce atomic.Bool
}

func NewPusher(endpoint, authToken string, gatherer prometheus.Gatherer, logger *zap.Logger) *Pusher {
	if logger == nil {
		logger = zap.NewNop()
	}
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return &Pusher{
		endpoint:   endpoint,
		authToken:  authToken,
		gatherer:   gatherer,
		logger:     logger,
		httpClient: &http.Client{Timeout: exportTimeout},
	}
}

func (p *Pusher) Start() {
	if p == nil || p.stopCh != nil {
		return
	}
	p.stopCh = make(chan struct{})
	p.doneCh = make(chan struct{})

	go func() {
		defer close(p.doneCh)
		ticker := time.NewTicker(exportInterval)
		defer ticker.Stop()
		p.exportOnce()
		for {
			select {
			case <-ticker.C:
				p.exportOnce()
			case <-p.stopCh:
				return
			}
		}
	}()
}

func (p *Pusher) Stop(ctx context.Context) error {
	if p == nil || p.stopCh == nil {
		return nil
	}
	close(p.stopCh)
	select {
	case <-p.doneCh:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *Pusher) exportOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), exportTimeout)
	defer cancel()

	families, err := p.gatherer.Gather()
	if err != nil {
		p.logExportError(err)
		return
	}
	if len(families) == 0 {
		return
	}
	if err := p.push(ctx, families); err != nil {
		p.logExportError(err)
		return
	}
	p.errorOnce.Store(false)
}

func (p *Pusher) logExportError(err error) {
	if err == nil {
		return
	}
	if p.errorOnce.CompareAndSwap(false, true) {
		p.logger.Warn("metrics push failed", zap.Error(err))
	}
}

func (p *Pusher) push(ctx context.Context, families []*dto.MetricFamily) error {
	series := buildRemoteWriteSeries(families, time.Now().UnixMilli())
	if len(series) == 0 {
		return nil
	}

	req := &prompb.WriteRequest{Timeseries: series}
	payload, err := proto.Marshal(protoadapt.MessageV2Of(req))
	if err != nil {
		return err
	}

	compressed := snappy.Encode(nil, payload)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(compressed))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/x-protobuf")
	httpReq.Header.Set("Content-Encoding", "snappy")
	httpReq.Header.Set("X-Prometheus-Remote-Write-Version", "0.1.0")
	if p.authToken != "" {
		httpReq.Header.Set("Authorization", "Bearer "+p.authToken)
	}

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("remote write returned %s", resp.Status)
	}
	return nil
}

func buildRemoteWriteSeries(families []*dto.MetricFamily, timestampMs int64) []prompb.TimeSeries {
	series := make([]prompb.TimeSeries, 0, len(families))
	for _, family := range families {
		switch family.GetType() {
		case dto.MetricType_COUNTER, dto.MetricType_GAUGE:
		default:
			continue
		}
		for _, metric := range family.GetMetric() {
			value := extractMetricValue(family.GetType(), metric)
			if value == nil {
				continue
			}
			labels := make([]prompb.Label, 0, len(metric.GetLabel())+1)
			labels = append(labels, prompb.Label{Name: "__name__", Value: family.GetName()})
			for _, label := range metric.GetLabel() {
				labels = append(labels, prompb.Label{Name: label.GetName(), Value: label.GetValue()})
			}
			sort.Slice(labels, func(i, j int) bool {
				return labels[i].Name < labels[j].Name
			})

			series = append(series, prompb.TimeSeries{
				Labels: labels,
				Samples: []prompb.Sample{{
					Value:     *value,
					Timestamp: timestampMs,
				}},
			})
		}
	}
	return series
}

func extractMetricValue(metricType dto.MetricType, metric *dto.Metric) *float64 {
	if metric == nil {
		return nil
	}
	switch metricType {
	case dto.MetricType_COUNTER:
		if metric.GetCounter() == nil {
			return nil
		}
		value := metric.GetCounter().GetValue()
		return &value
	case dto.MetricType_GAUGE:
		if metric.GetGauge() == nil {
			return nil
		}
		value := metric.GetGauge().GetValue()
		return &value
	default:
		return nil
	}
}
