package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	lambdasvc "github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/jarrod-lowe/jmap-service-libs/awsinit"
	"github.com/jarrod-lowe/jmap-service-libs/logging"
	"github.com/jarrod-lowe/jmap-service-libs/tracing"
	"go.opentelemetry.io/otel/attribute"

	"github.com/jarrod-lowe/smarthome-skill-core/internal/config"
	"github.com/jarrod-lowe/smarthome-skill-core/internal/controller"
	"github.com/jarrod-lowe/smarthome-skill-core/internal/db"
	"github.com/jarrod-lowe/smarthome-skill-core/internal/device"
	"github.com/jarrod-lowe/smarthome-skill-core/internal/devicecloud"
	"github.com/jarrod-lowe/smarthome-skill-core/internal/identity"
	"github.com/jarrod-lowe/smarthome-skill-core/internal/metrics"
	"github.com/jarrod-lowe/smarthome-skill-core/internal/registry"
	"github.com/jarrod-lowe/smarthome-skill-core/internal/statevents"
	"github.com/jarrod-lowe/smarthome-skill-core/pkg/alexa"
)

var logger = logging.New()

// UserResolver maps an account-linking token to a user id
type UserResolver interface {
	UserID(ctx context.Context, token string) (string, error)
}

// RegistryLoader loads the endpoints registered for a user
type RegistryLoader interface {
	Load(ctx context.Context, userID string) (*registry.Registry, error)
}

// AccountTracker records that a user ran discovery
type AccountTracker interface {
	EnsureAccount(ctx context.Context, userID string, now time.Time) (*db.Account, error)
}

// Dependencies for handler (injectable for testing)
type Dependencies struct {
	Users         UserResolver
	Registry      RegistryLoader
	Accounts      AccountTracker // nil when endpoints come from the S3 catalog
	Invoker       devicecloud.Invoker
	Metrics       metrics.Publisher
	Events        statevents.Publisher
	AsyncResponse bool
	Now           func() time.Time
}

var deps *Dependencies

// dynamoRegistryLoader loads a user's endpoints from DynamoDB on every request
type dynamoRegistryLoader struct {
	querier registry.EndpointQuerier
}

func (l *dynamoRegistryLoader) Load(ctx context.Context, userID string) (*registry.Registry, error) {
	reg := registry.NewRegistry()
	if err := reg.LoadFromDynamoDB(ctx, l.querier, userID); err != nil {
		return nil, err
	}
	return reg, nil
}

// staticRegistryLoader serves the catalog loaded at cold start to every user
type staticRegistryLoader struct {
	registry *registry.Registry
}

func (l *staticRegistryLoader) Load(ctx context.Context, userID string) (*registry.Registry, error) {
	return l.registry, nil
}

// handler processes Smart Home directives
func handler(ctx context.Context, event alexa.Event) (*alexa.Response, error) {
	header := event.Directive.Header
	ctx, span := tracing.StartHandlerSpan(ctx, "SmartHomeSkillHandler",
		tracing.Function("smarthome-skill"),
		tracing.RequestID(header.MessageID),
	)
	defer span.End()

	span.SetAttributes(
		attribute.String("namespace", header.Namespace),
		attribute.String("name", header.Name),
	)

	var userID string
	catalogFor := func(ctx context.Context, e alexa.Event) (*devicecloud.Catalog, error) {
		id, err := deps.Users.UserID(ctx, e.BearerToken())
		if err != nil {
			return nil, fmt.Errorf("failed to resolve user: %w", err)
		}
		userID = id
		span.SetAttributes(attribute.String("user_id", id))

		reg, err := deps.Registry.Load(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to load endpoints: %w", err)
		}

		var opts []device.Option
		if deps.AsyncResponse {
			opts = append(opts, device.WithAsyncResponse())
		}
		return devicecloud.NewCatalog(reg, id, deps.Invoker, opts...), nil
	}

	ctrl := controller.New(controller.Config{
		Discover: func(ctx context.Context, e alexa.Event) ([]alexa.DiscoveryEndpoint, error) {
			catalog, err := catalogFor(ctx, e)
			if err != nil {
				return nil, err
			}
			if deps.Accounts != nil {
				if _, err := deps.Accounts.EnsureAccount(ctx, userID, deps.Now()); err != nil {
					logger.WarnContext(ctx, "Failed to record discovery access",
						slog.String("user_id", userID),
						slog.String("error", err.Error()),
					)
				}
			}
			return catalog.Endpoints(e)
		},
		Search: func(ctx context.Context, e alexa.Event) (device.Device, error) {
			catalog, err := catalogFor(ctx, e)
			if err != nil {
				return nil, err
			}
			if d := catalog.Find(e); d != nil {
				return d, nil
			}
			return nil, nil
		},
		Logger: logger,
	})

	resp := ctrl.Run(ctx, event)

	publishMetrics(ctx, event, resp)

	if payload, ok := statevents.FromResponse(event, resp, userID, deps.Now()); ok {
		if err := deps.Events.Publish(ctx, payload); err != nil {
			logger.ErrorContext(ctx, "Failed to publish state event",
				slog.String("endpoint_id", payload.EndpointID),
				slog.String("error", err.Error()),
			)
		}
	}

	return resp, nil
}

// publishMetrics records the directive and, for error responses, the error.
// Failures are logged and never affect the response.
func publishMetrics(ctx context.Context, event alexa.Event, resp *alexa.Response) {
	namespace := metrics.Dimension{Name: "Namespace", Value: event.Directive.Header.Namespace}

	name := metrics.DirectiveCount
	if event.IsDiscovery() {
		name = metrics.DiscoveryCount
	}
	if err := deps.Metrics.PublishMetric(ctx, name, 1, namespace); err != nil {
		logger.WarnContext(ctx, "Failed to publish metric",
			slog.String("metric", name),
			slog.String("error", err.Error()),
		)
	}

	if resp.IsError() {
		if err := deps.Metrics.PublishMetric(ctx, metrics.ErrorResponseCount, 1, namespace); err != nil {
			logger.WarnContext(ctx, "Failed to publish metric",
				slog.String("metric", metrics.ErrorResponseCount),
				slog.String("error", err.Error()),
			)
		}
	}
}

func main() {
	ctx := context.Background()

	result, err := awsinit.Init(ctx)
	if err != nil {
		logger.Error("FATAL: Failed to initialize AWS",
			slog.String("error", err.Error()),
		)
		panic(err)
	}
	defer result.Cleanup()

	cfg, err := config.Load()
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		logger.Error("FATAL: Invalid configuration",
			slog.String("error", err.Error()),
		)
		panic(err)
	}

	d := &Dependencies{
		Users:         identity.NewCognitoResolver(cognitoidentityprovider.NewFromConfig(result.Config)),
		Invoker:       devicecloud.NewLambdaInvoker(lambdasvc.NewFromConfig(result.Config), cfg.DeviceCloudTimeout),
		Metrics:       metrics.NoOpPublisher{},
		Events:        statevents.NoOpPublisher{},
		AsyncResponse: cfg.AsyncResponse,
		Now:           time.Now,
	}

	if cfg.UseCatalog() {
		// The catalog is shared by every user and loaded once per cold start
		reg := registry.NewRegistry()
		if err := reg.LoadFromS3(result.Ctx, s3.NewFromConfig(result.Config), cfg.CatalogBucket, cfg.CatalogKey); err != nil {
			logger.Error("FATAL: Failed to load endpoint catalog",
				slog.String("bucket", cfg.CatalogBucket),
				slog.String("key", cfg.CatalogKey),
				slog.String("error", err.Error()),
			)
			panic(err)
		}
		d.Registry = &staticRegistryLoader{registry: reg}
	} else {
		dbClient := db.NewClientFromConfig(result.Config, cfg.TableName)
		d.Registry = &dynamoRegistryLoader{querier: dbClient}
		d.Accounts = dbClient
	}

	if cfg.MetricNamespace != "" {
		d.Metrics = metrics.NewCloudWatchPublisher(cloudwatch.NewFromConfig(result.Config), cfg.MetricNamespace)
	}
	if cfg.StateEventQueueURL != "" {
		d.Events = statevents.NewSQSPublisher(sqs.NewFromConfig(result.Config), cfg.StateEventQueueURL)
	}

	deps = d

	result.Start(handler)
}
