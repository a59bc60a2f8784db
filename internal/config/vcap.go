package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	jsoniter "github.com/json-iterator/go"

	cfcassandra "github.com/JCL38-ORANGE/cf-cassandra-example-app"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrNoService is returned when VCAP_SERVICES holds no matching service.
var ErrNoService = errors.New("config: no cassandra service bound")

// serviceMarker identifies Cassandra services by label, name or tag.
const serviceMarker = "cassandra"

type vcapService struct {
	Name        string         `json:"name"`
	Label       string         `json:"label"`
	Tags        []string       `json:"tags"`
	Credentials map[string]any `json:"credentials"`
}

func (s vcapService) matches(name string) bool {
	if name != "" {
		return s.Name == name
	}

	if strings.Contains(strings.ToLower(s.Label), serviceMarker) ||
		strings.Contains(strings.ToLower(s.Name), serviceMarker) {
		return true
	}

	return slices.ContainsFunc(s.Tags, func(tag string) bool {
		return strings.Contains(strings.ToLower(tag), serviceMarker)
	})
}

// ParseVCAPServices extracts the credentials of a Cassandra service
// instance from a VCAP_SERVICES document.
//
// With a non-empty name the instance with exactly that name is used.
// Otherwise the first instance whose label, name or tags mention cassandra
// wins, scanning service labels in sorted order.
//
// Parameters:
//   - raw: The VCAP_SERVICES JSON document
//   - name: Optional service instance name
//
// Returns:
//   - cfcassandra.ConnectionDetails: The instance credentials
//   - error: ErrNoService, or a JSON decoding error
func ParseVCAPServices(raw, name string) (cfcassandra.ConnectionDetails, error) {
	var services map[string][]vcapService
	if err := json.Unmarshal([]byte(raw), &services); err != nil {
		return nil, fmt.Errorf("config: decode VCAP_SERVICES: %w", err)
	}

	labels := make([]string, 0, len(services))
	for label := range services {
		labels = append(labels, label)
	}
	slices.Sort(labels)

	for _, label := range labels {
		for _, svc := range services[label] {
			if svc.Label == "" {
				svc.Label = label
			}
			if !svc.matches(name) {
				continue
			}
			if svc.Credentials == nil {
				return nil, fmt.Errorf("config: service %q has no credentials", svc.Name)
			}

			return cfcassandra.ConnectionDetails(svc.Credentials), nil
		}
	}

	if name != "" {
		return nil, fmt.Errorf("%w: no instance named %q", ErrNoService, name)
	}

	return nil, ErrNoService
}
