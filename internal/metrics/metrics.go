// Package metrics publishes dispatch counters to CloudWatch.
package metrics

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
)

// Metric names
const (
	DirectiveCount     = "DirectiveCount"
	ErrorResponseCount = "ErrorResponseCount"
	DiscoveryCount     = "DiscoveryCount"
)

// Publisher publishes a single metric value
type Publisher interface {
	PublishMetric(ctx context.Context, name string, value float64, dimensions ...Dimension) error
}

// Dimension is a metric dimension
type Dimension struct {
	Name  string
	Value string
}

// CloudWatchClient defines the interface for CloudWatch operations
type CloudWatchClient interface {
	PutMetricData(ctx context.Context, params *cloudwatch.PutMetricDataInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error)
}

// CloudWatchPublisher implements Publisher using CloudWatch
type CloudWatchPublisher struct {
	client    CloudWatchClient
	namespace string
}

// NewCloudWatchPublisher creates a new CloudWatchPublisher
func NewCloudWatchPublisher(client CloudWatchClient, namespace string) *CloudWatchPublisher {
	return &CloudWatchPublisher{
		client:    client,
		namespace: namespace,
	}
}

// PublishMetric publishes a count metric to CloudWatch
func (p *CloudWatchPublisher) PublishMetric(ctx context.Context, name string, value float64, dimensions ...Dimension) error {
	datum := types.MetricDatum{
		MetricName: aws.String(name),
		Value:      aws.Float64(value),
		Unit:       types.StandardUnitCount,
	}
	for _, d := range dimensions {
		datum.Dimensions = append(datum.Dimensions, types.Dimension{
			Name:  aws.String(d.Name),
			Value: aws.String(d.Value),
		})
	}

	_, err := p.client.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
		Namespace:  aws.String(p.namespace),
		MetricData: []types.MetricDatum{datum},
	})
	return err
}

// NoOpPublisher discards metrics. It is used when no namespace is configured.
type NoOpPublisher struct{}

func (NoOpPublisher) PublishMetric(ctx context.Context, name string, value float64, dimensions ...Dimension) error {
	return nil
}
