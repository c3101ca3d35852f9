package awsclient

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
)

// Options selects the region and, optionally, static credentials. Without keys the
// SDK default credential chain is used.
type Options struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
}

// Load builds an aws.Config from opts.
func Load(ctx context.Context, opts Options) (aws.Config, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	region := strings.TrimSpace(opts.Region)
	if region == "" {
		return aws.Config{}, fmt.Errorf("aws region is empty")
	}

	loaders := []func(*awscfg.LoadOptions) error{
		awscfg.WithRegion(region),
	}
	if opts.AccessKeyID != "" && opts.SecretAccessKey != "" {
		creds := credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretAccessKey, "")
		loaders = append(loaders, awscfg.WithCredentialsProvider(creds))
	}

	cfg, err := awscfg.LoadDefaultConfig(ctx, loaders...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("load aws config: %w", err)
	}
	return cfg, nil
}
