package config

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Keys of the intake configuration
const (
	KeyAPIBaseURL = "API_BASE_URL"
	KeyLOToken    = "LO_TOKEN"
)

// aliases maps canonical keys to the names the frontend build uses for the same values
var aliases = map[string]string{
	KeyAPIBaseURL: "VITE_API_BASE_URL",
	KeyLOToken:    "VITE_LO_TOKEN",
}

// ErrConfigUnavailable is returned by Entry when the intake URL or token is not set
var ErrConfigUnavailable = errors.New("intake configuration unavailable")

// LookupFunc has the signature of os.LookupEnv
type LookupFunc func(key string) (string, bool)

// Entry is the resolved intake configuration
type Entry struct {
	IntakeURL string
	AuthToken string
}

// Resolver resolves configuration keys from the environment, then from local
// key=value files. Files are read once by NewResolver and never again, so a
// Resolver is safe to share between requests.
type Resolver struct {
	lookup LookupFunc
	file   map[string]string
}

// NewResolver reads the given files in order, later files overriding earlier
// ones. Missing files are skipped. A file that cannot be read is reported in the
// returned error, but the Resolver is always usable with whatever was read.
func NewResolver(lookup LookupFunc, paths ...string) (*Resolver, error) {
	if lookup == nil {
		lookup = os.LookupEnv
	}

	file := make(map[string]string)
	var errs []error
	for _, path := range paths {
		values, err := readEnvFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("error reading %s: %w", path, err))
			continue
		}
		for key, value := range values {
			file[key] = value
		}
	}

	for canonical, alias := range aliases {
		if file[canonical] == "" && file[alias] != "" {
			file[canonical] = file[alias]
		}
	}

	return &Resolver{lookup: lookup, file: file}, errors.Join(errs...)
}

// readEnvFile parses a key=value file line by line. Blank lines and # comments
// are ignored, a line without "=" sets its key to "" and a line godotenv
// rejects is split on the first "=" as is.
func readEnvFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	values := make(map[string]string)
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, found := strings.Cut(line, "=")
		if !found {
			values[key] = ""
			continue
		}

		parsed, err := godotenv.Unmarshal(line)
		if err != nil {
			values[strings.TrimSpace(key)] = unquote(strings.TrimSpace(value))
			continue
		}
		for k, v := range parsed {
			values[k] = v
		}
	}
	return values, scanner.Err()
}

func unquote(v string) string {
	if len(v) >= 2 && (v[0] == '"' || v[0] == '\'') && v[len(v)-1] == v[0] {
		return v[1 : len(v)-1]
	}
	return v
}

// Resolve returns the value of key. Empty values count as absent.
func (r *Resolver) Resolve(key string) (string, bool) {
	if v, ok := r.lookup(key); ok && v != "" {
		return v, true
	}
	if v := r.file[key]; v != "" {
		return v, true
	}
	if alias, ok := aliases[key]; ok {
		if v, ok := r.lookup(alias); ok && v != "" {
			return v, true
		}
	}
	return "", false
}

// Entry resolves the intake URL and token. Either one missing is ErrConfigUnavailable.
func (r *Resolver) Entry() (Entry, error) {
	url, ok := r.Resolve(KeyAPIBaseURL)
	if !ok {
		return Entry{}, fmt.Errorf("%w: %s is not set", ErrConfigUnavailable, KeyAPIBaseURL)
	}
	token, ok := r.Resolve(KeyLOToken)
	if !ok {
		return Entry{}, fmt.Errorf("%w: %s is not set", ErrConfigUnavailable, KeyLOToken)
	}
	return Entry{IntakeURL: url, AuthToken: token}, nil
}
