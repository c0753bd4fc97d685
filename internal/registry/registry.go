// Package registry loads the endpoints linked to a user, either from the
// DynamoDB table or from a static JSON catalog in S3.
package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/jarrod-lowe/smarthome-skill-core/internal/db"
)

// ErrDuplicateEndpoint is returned when two records share an endpoint id
var ErrDuplicateEndpoint = errors.New("duplicate endpoint id")

// EndpointQuerier defines the interface for querying endpoint records from storage
type EndpointQuerier interface {
	QueryByPrefix(ctx context.Context, pk, skPrefix string) ([]map[string]types.AttributeValue, error)
}

// ObjectGetter defines the interface for reading the catalog object
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// Registry holds the loaded endpoint records in load order
type Registry struct {
	records []EndpointRecord
	byID    map[string]int
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		records: []EndpointRecord{},
		byID:    make(map[string]int),
	}
}

// LoadFromDynamoDB loads every endpoint registered for userID
func (r *Registry) LoadFromDynamoDB(ctx context.Context, querier EndpointQuerier, userID string) error {
	items, err := querier.QueryByPrefix(ctx, db.PKPrefixUser+userID, db.SKPrefixEndpoint)
	if err != nil {
		return fmt.Errorf("failed to query endpoints: %w", err)
	}

	for _, item := range items {
		var record EndpointRecord
		if err := attributevalue.UnmarshalMap(item, &record); err != nil {
			return fmt.Errorf("failed to unmarshal endpoint record: %w", err)
		}
		if record.CapabilitiesJSON != "" {
			if err := json.Unmarshal([]byte(record.CapabilitiesJSON), &record.Capabilities); err != nil {
				return fmt.Errorf("failed to decode capabilities of %s: %w", record.EndpointID, err)
			}
		}
		if err := r.AddRecord(record); err != nil {
			return err
		}
	}

	return nil
}

// LoadFromS3 loads the static catalog stored at bucket/key
func (r *Registry) LoadFromS3(ctx context.Context, getter ObjectGetter, bucket, key string) error {
	output, err := getter.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to get catalog: %w", err)
	}
	defer output.Body.Close()

	body, err := io.ReadAll(output.Body)
	if err != nil {
		return fmt.Errorf("failed to read catalog: %w", err)
	}

	var c catalog
	if err := json.Unmarshal(body, &c); err != nil {
		return fmt.Errorf("failed to parse catalog: %w", err)
	}

	for _, record := range c.Endpoints {
		if err := r.AddRecord(record); err != nil {
			return err
		}
	}

	return nil
}

// AddRecord adds an endpoint record to the registry
func (r *Registry) AddRecord(record EndpointRecord) error {
	if _, ok := r.byID[record.EndpointID]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateEndpoint, record.EndpointID)
	}
	r.byID[record.EndpointID] = len(r.records)
	r.records = append(r.records, record)
	return nil
}

// Records returns all endpoint records in load order
func (r *Registry) Records() []EndpointRecord {
	return r.records
}

// Lookup returns the record for endpointID, or nil if not found
func (r *Registry) Lookup(endpointID string) *EndpointRecord {
	idx, ok := r.byID[endpointID]
	if !ok {
		return nil
	}
	record := r.records[idx]
	return &record
}
