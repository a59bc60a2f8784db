package cfcassandra

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cast"

	"github.com/JCL38-ORANGE/cf-cassandra-example-app/adapter/cql"
	"github.com/JCL38-ORANGE/cf-cassandra-example-app/types"
)

// Connection detail keys as they appear in a service binding.
const (
	KeyKeyspaceName      = "keyspaceName"
	KeyLogin             = "login"
	KeyPassword          = "password"
	KeyContactPoints     = "contact-points"
	KeyPort              = "port"
	KeySSL               = "ssl"
	KeyConnectionTimeout = "connectionTimeout"

	// keyConnectionTimeoutAlias is the snake_case spelling some brokers emit.
	keyConnectionTimeoutAlias = "connection_timeout"
)

// DefaultConnectionTimeout bounds the initial connection when
// connectionTimeout is absent or zero.
const DefaultConnectionTimeout = 10 * time.Second

var (
	errNegative   = errors.New("must not be negative")
	errOutOfRange = errors.New("out of range")
	errNotANumber = errors.New("not a number")
)

// ConnectionDetails is the opaque configuration mapping a Client is built from.
//
// Values may be strings, numbers or booleans as decoded from JSON, so a
// Cloud Foundry service binding's credentials object can be passed as is.
//
// Recognized keys:
//
//	keyspaceName       required  target keyspace for all operations
//	login              required  authentication principal
//	password           required  authentication secret
//	contact-points     required  comma-separated hosts, or a list
//	port               0         native transport port (0: driver default)
//	ssl                false     enable transport encryption
//	connectionTimeout  10        seconds, or a duration string such as "2500ms"
type ConnectionDetails map[string]any

// ParseConnectionDetails maps ConnectionDetails onto driver connection
// parameters.
//
// The mapping is total: every recognized key is either translated or
// defaulted, and unrecognized keys are ignored. No network activity happens
// here.
//
// Parameters:
//   - details: Connection details from a service binding or flags
//
// Returns:
//   - cql.ClusterParams: Driver-facing connection parameters
//   - error: *types.MissingConfigError, *types.InvalidConfigError or
//     *types.InvalidKeyspaceNameError
func ParseConnectionDetails(details ConnectionDetails) (cql.ClusterParams, error) {
	var params cql.ClusterParams

	keyspace, err := requiredString(details, KeyKeyspaceName)
	if err != nil {
		return params, err
	}
	if err := ValidateKeyspaceName(keyspace); err != nil {
		return params, err
	}

	username, err := requiredString(details, KeyLogin)
	if err != nil {
		return params, err
	}

	raw, ok := details[KeyPassword]
	if !ok || raw == nil {
		return params, &types.MissingConfigError{Key: KeyPassword}
	}
	password, err := cast.ToStringE(raw)
	if err != nil {
		return params, &types.InvalidConfigError{Key: KeyPassword, Value: raw, Cause: err}
	}

	hosts, err := parseContactPoints(details[KeyContactPoints])
	if err != nil {
		return params, err
	}

	port, err := parsePort(details[KeyPort])
	if err != nil {
		return params, err
	}

	ssl := false
	if raw, ok := details[KeySSL]; ok && raw != nil {
		ssl, err = cast.ToBoolE(raw)
		if err != nil {
			return params, &types.InvalidConfigError{Key: KeySSL, Value: raw, Cause: err}
		}
	}

	timeout, err := parseTimeout(details)
	if err != nil {
		return params, err
	}

	return cql.ClusterParams{
		Keyspace:       keyspace,
		Username:       username,
		Password:       password,
		Hosts:          hosts,
		Port:           port,
		SSL:            ssl,
		ConnectTimeout: timeout,
	}, nil
}

func requiredString(details ConnectionDetails, key string) (string, error) {
	raw, ok := details[key]
	if !ok || raw == nil {
		return "", &types.MissingConfigError{Key: key}
	}

	s, err := cast.ToStringE(raw)
	if err != nil {
		return "", &types.InvalidConfigError{Key: key, Value: raw, Cause: err}
	}

	s = strings.TrimSpace(s)
	if s == "" {
		return "", &types.MissingConfigError{Key: key}
	}

	return s, nil
}

func parseContactPoints(raw any) ([]string, error) {
	var parts []string
	switch v := raw.(type) {
	case nil:
		return nil, &types.MissingConfigError{Key: KeyContactPoints}
	case string:
		parts = strings.Split(v, ",")
	default:
		list, err := cast.ToStringSliceE(v)
		if err != nil {
			return nil, &types.InvalidConfigError{Key: KeyContactPoints, Value: raw, Cause: err}
		}
		for _, item := range list {
			parts = append(parts, strings.Split(item, ",")...)
		}
	}

	hosts := make([]string, 0, len(parts))
	for _, part := range parts {
		if host := strings.TrimSpace(part); host != "" {
			hosts = append(hosts, host)
		}
	}
	if len(hosts) == 0 {
		return nil, &types.MissingConfigError{Key: KeyContactPoints}
	}

	return hosts, nil
}

func parsePort(raw any) (int, error) {
	if raw == nil {
		return 0, nil
	}
	if s, ok := raw.(string); ok && strings.TrimSpace(s) == "" {
		return 0, nil
	}

	var (
		port int
		err  error
	)
	// Ports are decimal: "010" is 10, not an octal 8.
	if s, ok := raw.(string); ok {
		port, err = strconv.Atoi(strings.TrimSpace(s))
	} else {
		port, err = cast.ToIntE(raw)
	}
	if err != nil {
		return 0, &types.InvalidConfigError{Key: KeyPort, Value: raw, Cause: err}
	}
	if port < 0 || port > 65535 {
		return 0, &types.InvalidConfigError{
			Key:   KeyPort,
			Value: raw,
			Cause: fmt.Errorf("port %d out of range", port),
		}
	}

	return port, nil
}

func parseTimeout(details ConnectionDetails) (time.Duration, error) {
	key := KeyConnectionTimeout
	raw, ok := details[key]
	if !ok || raw == nil {
		key = keyConnectionTimeoutAlias
		raw = details[key]
	}
	if raw == nil {
		return DefaultConnectionTimeout, nil
	}

	var timeout time.Duration
	switch v := raw.(type) {
	case time.Duration:
		timeout = v
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return DefaultConnectionTimeout, nil
		}
		if secs, err := cast.ToFloat64E(s); err == nil {
			if timeout, err = secondsToDuration(secs); err != nil {
				return 0, &types.InvalidConfigError{Key: key, Value: raw, Cause: err}
			}
			break
		}
		d, err := time.ParseDuration(s)
		if err != nil {
			return 0, &types.InvalidConfigError{Key: key, Value: raw, Cause: err}
		}
		timeout = d
	default:
		secs, err := cast.ToFloat64E(v)
		if err == nil {
			timeout, err = secondsToDuration(secs)
		}
		if err != nil {
			return 0, &types.InvalidConfigError{Key: key, Value: raw, Cause: err}
		}
	}

	switch {
	case timeout < 0:
		return 0, &types.InvalidConfigError{Key: key, Value: raw, Cause: errNegative}
	case timeout == 0:
		return DefaultConnectionTimeout, nil
	default:
		return timeout, nil
	}
}

// maxTimeoutSeconds is the largest number of seconds a time.Duration holds.
const maxTimeoutSeconds = math.MaxInt64 / float64(time.Second)

func secondsToDuration(secs float64) (time.Duration, error) {
	switch {
	case math.IsNaN(secs):
		return 0, errNotANumber
	case secs < 0:
		return 0, errNegative
	case secs >= maxTimeoutSeconds:
		return 0, errOutOfRange
	}

	return time.Duration(secs * float64(time.Second)), nil
}
