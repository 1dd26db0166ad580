package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"cloud.google.com/go/storage"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/service"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"golang.org/x/time/rate"
	"google.golang.org/api/option"

	"github.com/couchbase/replverify/config"
	"github.com/couchbase/replverify/objstore/objcli"
	"github.com/couchbase/replverify/objstore/objcli/objaws"
	"github.com/couchbase/replverify/objstore/objcli/objazure"
	"github.com/couchbase/replverify/objstore/objcli/objgcp"
	"github.com/couchbase/replverify/objstore/objval"
	"github.com/couchbase/replverify/verify/diag"
	"github.com/couchbase/replverify/verify/scenario"
)

// defaultRegion is used for S3 compatible endpoints which don't care about the region.
const defaultRegion = "us-east-1"

// clientFactory creates the client for a configured backend.
type clientFactory func(ctx context.Context, cfg config.BackendConfig, logger *slog.Logger) (objcli.Client, error)

// newBackendClient creates a client for the configured backend using the relevant cloud SDK.
func newBackendClient(ctx context.Context, cfg config.BackendConfig, logger *slog.Logger) (objcli.Client, error) {
	provider, err := cfg.ProviderValue()
	if err != nil {
		return nil, err
	}

	switch provider {
	case objval.ProviderAWS, objval.ProviderScality:
		return newS3Client(ctx, cfg, provider, logger)
	case objval.ProviderAzure:
		return newAzureClient(cfg, logger)
	case objval.ProviderGCP:
		return newGCPClient(ctx, cfg, logger)
	}

	return nil, fmt.Errorf("unsupported provider '%s'", provider)
}

func newS3Client(
	ctx context.Context,
	cfg config.BackendConfig,
	provider objval.Provider,
	logger *slog.Logger,
) (objcli.Client, error) {
	region := cfg.Region
	if region == "" {
		region = defaultRegion
	}

	loaders := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}

	if cfg.AccessKeyID != "" {
		loaders = append(loaders, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loaders...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	api := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}

		o.UsePathStyle = cfg.PathStyle
	})

	return objaws.NewClient(objaws.ClientOptions{ServiceAPI: api, Provider: provider, Logger: logger}), nil
}

func newAzureClient(cfg config.BackendConfig, logger *slog.Logger) (objcli.Client, error) {
	var (
		client *service.Client
		err    error
	)

	if cfg.Azure.ConnectionString != "" {
		client, err = service.NewClientFromConnectionString(cfg.Azure.ConnectionString, nil)
	} else {
		var cred *azidentity.DefaultAzureCredential

		cred, err = azidentity.NewDefaultAzureCredential(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to get Azure credentials: %w", err)
		}

		client, err = service.NewClient(cfg.Azure.AccountURL, cred, nil)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to create Azure client: %w", err)
	}

	return objazure.NewClient(objazure.ClientOptions{Client: client, Logger: logger}), nil
}

func newGCPClient(ctx context.Context, cfg config.BackendConfig, logger *slog.Logger) (objcli.Client, error) {
	var opts []option.ClientOption

	if cfg.GCP.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.GCP.CredentialsFile))
	}

	if cfg.GCP.Project != "" {
		opts = append(opts, option.WithQuotaProject(cfg.GCP.Project))
	}

	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.Endpoint))
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCP client: %w", err)
	}

	return objgcp.NewClient(objgcp.ClientOptions{Client: client, Logger: logger}), nil
}

// client creates the client for the given backend, applying the configured rate limit. The client is closed once the
// command completes.
func (a *app) client(ctx context.Context, cfg config.BackendConfig) (objcli.Client, error) {
	client, err := a.newClient(ctx, cfg, a.logger.With("backend", cfg.DisplayName()))
	if err != nil {
		return nil, fmt.Errorf("failed to create client for '%s': %w", cfg.DisplayName(), err)
	}

	a.clients = append(a.clients, client)

	if a.cfg.RateLimit.RequestsPerSecond == 0 {
		return client, nil
	}

	return objcli.NewRateLimitedClient(client, rate.NewLimiter(
		rate.Limit(a.cfg.RateLimit.RequestsPerSecond),
		max(a.cfg.RateLimit.Burst, 1),
	)), nil
}

// source returns the configured replication source.
func (a *app) source(ctx context.Context) (scenario.Endpoint, error) {
	client, err := a.client(ctx, a.cfg.Source)
	if err != nil {
		return scenario.Endpoint{}, err
	}

	return scenario.Endpoint{Name: a.cfg.Source.DisplayName(), Client: client, Bucket: a.cfg.Source.Bucket}, nil
}

// destinations returns the configured destinations, optionally filtered by name.
func (a *app) destinations(ctx context.Context, names ...string) ([]scenario.Destination, error) {
	if len(a.cfg.Destinations) == 0 {
		return nil, errors.New("no destinations configured")
	}

	wanted := make(map[string]bool, len(names))
	for _, name := range names {
		wanted[name] = true
	}

	dests := make([]scenario.Destination, 0, len(a.cfg.Destinations))

	for _, cfg := range a.cfg.Destinations {
		if len(wanted) != 0 && !wanted[cfg.DisplayName()] {
			continue
		}

		delete(wanted, cfg.DisplayName())

		rule, err := cfg.Rule()
		if err != nil {
			return nil, fmt.Errorf("invalid rule for '%s': %w", cfg.DisplayName(), err)
		}

		client, err := a.client(ctx, cfg.BackendConfig)
		if err != nil {
			return nil, err
		}

		dests = append(dests, scenario.Destination{
			Endpoint:           scenario.Endpoint{Name: cfg.DisplayName(), Client: client, Bucket: cfg.Bucket},
			Rule:               rule,
			PrefixSourceBucket: cfg.PrefixSourceBucket,
		})
	}

	for _, name := range names {
		if wanted[name] {
			return nil, fmt.Errorf("unknown destination '%s'", name)
		}
	}

	return dests, nil
}

// runner returns a scenario runner for the configured source, along with the requested destinations.
func (a *app) runner(ctx context.Context, names ...string) (*scenario.Runner, []scenario.Destination, error) {
	source, err := a.source(ctx)
	if err != nil {
		return nil, nil, err
	}

	dests, err := a.destinations(ctx, names...)
	if err != nil {
		return nil, nil, err
	}

	runner := scenario.NewRunner(scenario.Options{
		Source:    source,
		Locations: a.cfg.ReplicationLocations(),
		Delay:     a.cfg.Poll.Delay,
		Budget:    a.cfg.Poll.Budget,
		Dumper:    diag.NewFileDumper(diag.FileDumperOptions{Dir: a.cfg.Diagnostics.Dir, Logger: a.logger}),
		PoolSize:  a.cfg.Workers,
		Logger:    a.logger,
	})

	return runner, dests, nil
}
